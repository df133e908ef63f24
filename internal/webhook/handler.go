package webhook

import (
	"crypto/subtle"
	"io"
	"log"
	"net/http"
)

// maxBodyBytes bounds how much of a delivery is read.
const maxBodyBytes = 1 << 20

// Handler serves the Cloud API webhook endpoint.
type Handler struct {
	verifyToken string
	gateway     *Gateway
}

// NewHandler creates a webhook handler that verifies subscriptions against
// verifyToken and hands deliveries to gateway.
func NewHandler(verifyToken string, gateway *Gateway) *Handler {
	return &Handler{
		verifyToken: verifyToken,
		gateway:     gateway,
	}
}

// Verify answers the subscription handshake (HTTP GET).
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode != "subscribe" || !h.tokenMatches(token) {
		log.Printf("webhook: verification rejected (mode=%q)", mode)
		w.WriteHeader(http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, challenge)
}

func (h *Handler) tokenMatches(token string) bool {
	if h.verifyToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.verifyToken)) == 1
}

// Receive acknowledges a delivery (HTTP POST) with 200 and an empty body,
// then processes it in the background. The status is 200 whatever the
// payload holds, so the platform never redelivers.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	defer r.Body.Close()

	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	if err != nil {
		log.Printf("webhook: failed to read body: %v", err)
		return
	}
	h.gateway.Submit(r.Context(), body)
}
