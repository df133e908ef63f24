package rsvp

import (
	"net/url"
	"strings"
)

const (
	DefaultQRBaseURL = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultQRSize    = "500x500"
)

// TicketConfig controls the QR image URL sent on confirmation.
type TicketConfig struct {
	QRBaseURL string
	QRSize    string
}

// TicketToken is the value encoded in a guest's QR code. It is derived from
// the phone number alone, so it is guessable and nothing verifies it.
func TicketToken(recipient string) string {
	return "CONFIRMED_GUEST_" + recipient + "_TICKET"
}

// TicketImageURL returns the QR generator URL for the recipient's token.
func (t TicketConfig) TicketImageURL(recipient string) string {
	base := t.QRBaseURL
	if base == "" {
		base = DefaultQRBaseURL
	}
	size := t.QRSize
	if size == "" {
		size = DefaultQRSize
	}
	return base + "?size=" + encodeURIComponent(size) + "&data=" + encodeURIComponent(TicketToken(recipient))
}

// encodeURIComponent escapes s the way browsers do for a query component:
// spaces become %20 and the marks -_.!~*'() are left alone.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	return componentReplacer.Replace(escaped)
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
	"%7E", "~",
)
