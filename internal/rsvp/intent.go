package rsvp

import (
	"errors"
	"fmt"
	"strings"
)

// IntentKind is the classified meaning of an inbound message.
type IntentKind int

const (
	NoOp IntentKind = iota
	GreetAndAskAttendance
	ConfirmAttendance
	DeclineAttendance
)

// ErrUnknownIntent is returned by ParseIntentKind for unrecognized names.
var ErrUnknownIntent = errors.New("unknown intent")

var intentNames = map[IntentKind]string{
	NoOp:                  "noop",
	GreetAndAskAttendance: "greet",
	ConfirmAttendance:     "confirm",
	DeclineAttendance:     "decline",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return fmt.Sprintf("intent(%d)", int(k))
}

// ParseIntentKind maps a name produced by String back to its kind.
func ParseIntentKind(s string) (IntentKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range intentNames {
		if name == s {
			return k, nil
		}
	}
	return NoOp, fmt.Errorf("%w %q: must be one of noop, greet, confirm, decline", ErrUnknownIntent, s)
}

// Intent pairs a kind with the phone number that triggered it.
type Intent struct {
	Kind   IntentKind
	Sender string
}

// IsNoOp reports whether the intent requires no reply.
func (i Intent) IsNoOp() bool { return i.Kind == NoOp }

func (i Intent) String() string {
	if i.IsNoOp() {
		return i.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", i.Kind, i.Sender)
}

var noOp = Intent{Kind: NoOp}
