package webhook

import "github.com/go-chi/chi/v5"

// DefaultPath is where the webhook is mounted unless configured otherwise.
const DefaultPath = "/webhook"

// RegisterRoutes mounts the webhook endpoints on the given router.
func RegisterRoutes(r chi.Router, h *Handler, path string) {
	if path == "" {
		path = DefaultPath
	}
	r.Get(path, h.Verify)
	r.Post(path, h.Receive)
}
