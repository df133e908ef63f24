package webhook

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ziadkadry99/rsvpbridge/internal/rsvp"
	"github.com/ziadkadry99/rsvpbridge/internal/whatsapp"
)

// Classifier maps a raw webhook body to an intent.
type Classifier interface {
	Classify(raw []byte) rsvp.Intent
}

// Dispatcher sends the reply for an intent.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent rsvp.Intent) error
}

// Gateway runs classification and dispatch for each delivery in the
// background, after the webhook has been acknowledged.
type Gateway struct {
	classifier Classifier
	dispatcher Dispatcher
	verbose    bool
	wg         sync.WaitGroup
}

// NewGateway creates a Gateway. With verbose set, every inbound payload is logged.
func NewGateway(classifier Classifier, dispatcher Dispatcher, verbose bool) *Gateway {
	return &Gateway{
		classifier: classifier,
		dispatcher: dispatcher,
		verbose:    verbose,
	}
}

// Submit starts processing body in a new goroutine and returns its delivery id.
// The work keeps ctx's values but is not cancelled when ctx ends.
func (g *Gateway) Submit(ctx context.Context, body []byte) string {
	deliveryID := uuid.NewString()
	ctx = context.WithoutCancel(ctx)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if _, err := g.Process(ctx, deliveryID, body); err != nil {
			logDispatchError(deliveryID, err)
		}
	}()
	return deliveryID
}

// Process classifies body and dispatches the reply synchronously.
func (g *Gateway) Process(ctx context.Context, deliveryID string, body []byte) (rsvp.Intent, error) {
	if g.verbose {
		log.Printf("webhook: delivery %s payload: %s", deliveryID, body)
	}

	intent := g.classifier.Classify(body)
	if intent.IsNoOp() {
		return intent, nil
	}

	log.Printf("webhook: delivery %s classified as %s", deliveryID, intent)
	return intent, g.dispatcher.Dispatch(ctx, intent)
}

// Wait blocks until every submitted delivery has finished.
func (g *Gateway) Wait() {
	g.wg.Wait()
}

func logDispatchError(deliveryID string, err error) {
	var apiErr *whatsapp.APIError
	if errors.As(err, &apiErr) {
		log.Printf("webhook: delivery %s failed: %v (status=%d type=%s subcode=%d trace=%s body=%s)",
			deliveryID, err, apiErr.StatusCode, apiErr.Type, apiErr.Subcode, apiErr.TraceID, apiErr.Body)
		return
	}
	log.Printf("webhook: delivery %s failed: %v", deliveryID, err)
}
