package cmd

import (
	"fmt"

	"github.com/ziadkadry99/rsvpbridge/internal/config"
	"github.com/ziadkadry99/rsvpbridge/internal/rsvp"
	"github.com/ziadkadry99/rsvpbridge/internal/whatsapp"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `rsvpbridge init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newDispatcherFromConfig wires a WhatsApp client into an RSVP dispatcher.
func newDispatcherFromConfig(cfg *config.Config) *rsvp.Dispatcher {
	client := whatsapp.NewClient(cfg.ClientConfig())
	return rsvp.NewDispatcher(client, cfg.RSVPMessages(), cfg.RSVPTicket())
}
