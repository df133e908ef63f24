package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/rsvpbridge/internal/rsvp"
)

var (
	sendTo     string
	sendIntent string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one RSVP reply to a phone number",
	Long: `Sends the reply for a single intent (greet, confirm or decline) directly
through the Graph API, without going through the webhook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runSend(cmd.Context(), newDispatcherFromConfig(cfg), sendTo, sendIntent)
	},
}

// intentDispatcher is the part of rsvp.Dispatcher used by send.
type intentDispatcher interface {
	Dispatch(ctx context.Context, intent rsvp.Intent) error
}

func runSend(ctx context.Context, d intentDispatcher, to, kind string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("--to is required")
	}
	k, err := rsvp.ParseIntentKind(kind)
	if err != nil {
		return err
	}
	if k == rsvp.NoOp {
		return fmt.Errorf("intent %q sends nothing", kind)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	intent := rsvp.Intent{Kind: k, Sender: to}
	if err := d.Dispatch(ctx, intent); err != nil {
		return err
	}
	fmt.Printf("Sent %s\n", intent)
	return nil
}

func init() {
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient phone number")
	sendCmd.Flags().StringVar(&sendIntent, "intent", "greet", "reply to send: greet, confirm or decline")
	rootCmd.AddCommand(sendCmd)
}
