package rsvp

import (
	"encoding/json"
	"strings"

	"github.com/ziadkadry99/rsvpbridge/internal/whatsapp"
)

// Button ids sent in the attendance prompt and expected back in replies.
const (
	ButtonConfirm = "confirm"
	ButtonDecline = "decline"
)

// DefaultTrigger is the phrase pre-filled by the invitation QR code.
const DefaultTrigger = "i want to attend"

// Classifier maps a webhook payload to an Intent.
type Classifier struct {
	trigger string
}

// NewClassifier creates a Classifier matching the given trigger phrase
// case-insensitively. An empty trigger selects DefaultTrigger.
func NewClassifier(trigger string) *Classifier {
	trigger = strings.ToLower(strings.TrimSpace(trigger))
	if trigger == "" {
		trigger = DefaultTrigger
	}
	return &Classifier{trigger: trigger}
}

// Classify decodes raw and classifies it. Malformed JSON is a NoOp.
func (c *Classifier) Classify(raw []byte) Intent {
	var payload whatsapp.WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return noOp
	}
	return c.ClassifyPayload(&payload)
}

// ClassifyPayload classifies the first message of the payload:
//   - text containing the trigger phrase -> GreetAndAskAttendance
//   - "confirm" button reply -> ConfirmAttendance
//   - "decline" button reply -> DeclineAttendance
//   - anything else, including status callbacks -> NoOp
func (c *Classifier) ClassifyPayload(p *whatsapp.WebhookPayload) Intent {
	msg, ok := p.FirstMessage()
	if !ok {
		return noOp
	}
	sender := msg.From

	switch content := msg.Content().(type) {
	case whatsapp.TextContent:
		if strings.Contains(strings.ToLower(content.Body), c.trigger) {
			return Intent{Kind: GreetAndAskAttendance, Sender: sender}
		}
	case whatsapp.ButtonReplyContent:
		switch content.ID {
		case ButtonConfirm:
			return Intent{Kind: ConfirmAttendance, Sender: sender}
		case ButtonDecline:
			return Intent{Kind: DeclineAttendance, Sender: sender}
		}
	case whatsapp.UnknownContent:
	}
	return noOp
}
