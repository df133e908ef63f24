package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/rsvpbridge/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rsvpbridge",
	Short: "WhatsApp webhook bridge for event RSVPs",
	Long: `rsvpbridge receives WhatsApp Cloud API webhooks and answers guests who
want to attend an event: it asks them to confirm, then sends a QR code
ticket or a short acknowledgment.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log full webhook payloads")
}
