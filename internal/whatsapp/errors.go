package whatsapp

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx response from the Graph API.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Code       int
	Subcode    int
	TraceID    string
	Body       string
}

type graphErrorEnvelope struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		Subcode   int    `json:"error_subcode"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: string(body)}

	var env graphErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		e.Message = env.Error.Message
		e.Type = env.Error.Type
		e.Code = env.Error.Code
		e.Subcode = env.Error.Subcode
		e.TraceID = env.Error.FBTraceID
	}
	return e
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("whatsapp api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("whatsapp api returned status %d: %s (code %d)", e.StatusCode, e.Message, e.Code)
}
