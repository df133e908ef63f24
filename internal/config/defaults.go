package config

import (
	"github.com/ziadkadry99/rsvpbridge/internal/rsvp"
	"github.com/ziadkadry99/rsvpbridge/internal/webhook"
	"github.com/ziadkadry99/rsvpbridge/internal/whatsapp"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "rsvpbridge.yml"

// DefaultConfig returns a Config with sensible defaults. Credentials are
// left empty and must come from the file or the environment.
func DefaultConfig() *Config {
	msgs := rsvp.DefaultMessages()
	return &Config{
		Port:                   3000,
		APIBaseURL:             whatsapp.DefaultBaseURL,
		APIVersion:             whatsapp.DefaultAPIVersion,
		WebhookPath:            webhook.DefaultPath,
		SendTimeoutSeconds:     30,
		ShutdownTimeoutSeconds: 10,
		TriggerPhrase:          rsvp.DefaultTrigger,
		Messages: MessageConfig{
			Prompt:        msgs.Prompt,
			ConfirmLabel:  msgs.ConfirmLabel,
			DeclineLabel:  msgs.DeclineLabel,
			TicketCaption: msgs.TicketCaption,
			DeclineText:   msgs.DeclineText,
		},
		Ticket: TicketConfig{
			QRBaseURL: rsvp.DefaultQRBaseURL,
			QRSize:    rsvp.DefaultQRSize,
		},
	}
}

// RSVPMessages converts the message section for the dispatcher.
func (c *Config) RSVPMessages() rsvp.Messages {
	return rsvp.Messages{
		Prompt:        c.Messages.Prompt,
		ConfirmLabel:  c.Messages.ConfirmLabel,
		DeclineLabel:  c.Messages.DeclineLabel,
		TicketCaption: c.Messages.TicketCaption,
		DeclineText:   c.Messages.DeclineText,
	}
}

// RSVPTicket converts the ticket section for the dispatcher.
func (c *Config) RSVPTicket() rsvp.TicketConfig {
	return rsvp.TicketConfig{
		QRBaseURL: c.Ticket.QRBaseURL,
		QRSize:    c.Ticket.QRSize,
	}
}
