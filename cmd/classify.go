package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/rsvpbridge/internal/config"
	"github.com/ziadkadry99/rsvpbridge/internal/rsvp"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [payload.json]",
	Short: "Print the intent of a webhook payload",
	Long: `Reads a webhook delivery body from a file, or stdin when no file is given,
and prints the intent the server would act on. Nothing is sent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		in := io.Reader(os.Stdin)
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening payload: %w", err)
			}
			defer f.Close()
			in = f
		}

		intent, err := classifyReader(in, cfg.TriggerPhrase)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), intent)
		return nil
	},
}

func classifyReader(r io.Reader, trigger string) (rsvp.Intent, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return rsvp.Intent{}, fmt.Errorf("reading payload: %w", err)
	}
	return rsvp.NewClassifier(trigger).Classify(raw), nil
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
