package rsvp

import (
	"context"
	"fmt"
	"log"

	"github.com/ziadkadry99/rsvpbridge/internal/whatsapp"
)

// Sender submits one outbound message. *whatsapp.Client implements it.
type Sender interface {
	Send(ctx context.Context, msg whatsapp.OutboundMessage) (*whatsapp.SendResponse, error)
}

// Messages holds the user-facing reply texts.
type Messages struct {
	Prompt        string
	ConfirmLabel  string
	DeclineLabel  string
	TicketCaption string
	DeclineText   string
}

// DefaultMessages returns the stock reply texts.
func DefaultMessages() Messages {
	return Messages{
		Prompt:        "Please confirm your attendance",
		ConfirmLabel:  "Confirm",
		DeclineLabel:  "Decline",
		TicketCaption: "here is your qr code",
		DeclineText:   "thanks to participate",
	}
}

// Dispatcher turns an Intent into exactly one outbound message.
type Dispatcher struct {
	sender   Sender
	messages Messages
	ticket   TicketConfig
}

// NewDispatcher creates a Dispatcher sending through sender.
func NewDispatcher(sender Sender, messages Messages, ticket TicketConfig) *Dispatcher {
	return &Dispatcher{
		sender:   sender,
		messages: messages,
		ticket:   ticket,
	}
}

// Message builds the reply for intent. It reports false for NoOp.
func (d *Dispatcher) Message(intent Intent) (whatsapp.OutboundMessage, bool) {
	to := intent.Sender
	switch intent.Kind {
	case GreetAndAskAttendance:
		return whatsapp.NewButtonPrompt(to, d.messages.Prompt,
			whatsapp.ButtonSpec{ID: ButtonConfirm, Title: d.messages.ConfirmLabel},
			whatsapp.ButtonSpec{ID: ButtonDecline, Title: d.messages.DeclineLabel},
		), true
	case ConfirmAttendance:
		return whatsapp.NewImage(to, d.ticket.TicketImageURL(to), d.messages.TicketCaption), true
	case DeclineAttendance:
		return whatsapp.NewText(to, d.messages.DeclineText), true
	default:
		return whatsapp.OutboundMessage{}, false
	}
}

// Dispatch sends the reply for intent once. NoOp sends nothing.
// Failures are returned to the caller and never retried.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent) error {
	msg, ok := d.Message(intent)
	if !ok {
		return nil
	}

	resp, err := d.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("dispatching %s: %w", intent.Kind, err)
	}

	log.Printf("rsvp: sent %s reply to %s (message id %s)", intent.Kind, intent.Sender, resp.MessageID())
	return nil
}
