package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/rsvpbridge/internal/rsvp"
	"github.com/ziadkadry99/rsvpbridge/internal/whatsapp"
)

// mockDispatcher records dispatched intents.
type mockDispatcher struct {
	mu      sync.Mutex
	intents []rsvp.Intent
	err     error
	block   chan struct{}
}

func (m *mockDispatcher) Dispatch(_ context.Context, intent rsvp.Intent) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intents = append(m.intents, intent)
	return m.err
}

func (m *mockDispatcher) calls() []rsvp.Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]rsvp.Intent(nil), m.intents...)
}

func setupTest(t *testing.T, verifyToken string, d Dispatcher) (http.Handler, *Gateway) {
	t.Helper()
	gw := NewGateway(rsvp.NewClassifier(rsvp.DefaultTrigger), d, false)
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(verifyToken, gw), "")
	return r, gw
}

func textPayload(from, body string) string {
	return fmt.Sprintf(`{"object":"whatsapp_business_account","entry":[{"changes":[{"value":{"messages":[{"from":%q,"type":"text","text":{"body":%q}}]}}]}]}`, from, body)
}

func buttonPayload(from, id string) string {
	return fmt.Sprintf(`{"object":"whatsapp_business_account","entry":[{"changes":[{"value":{"messages":[{"from":%q,"type":"interactive","interactive":{"type":"button_reply","button_reply":{"id":%q,"title":"x"}}}]}}]}]}`, from, id)
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// --- Verification tests ---

func TestVerifySuccess(t *testing.T) {
	h, _ := setupTest(t, "my-secret", &mockDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=my-secret&hub.challenge=1158201444", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "1158201444" {
		t.Errorf("expected challenge echoed, got %q", w.Body.String())
	}
}

func TestVerifyRejected(t *testing.T) {
	h, _ := setupTest(t, "my-secret", &mockDispatcher{})

	tests := []struct {
		name  string
		query string
	}{
		{"wrong token", "hub.mode=subscribe&hub.verify_token=nope&hub.challenge=c"},
		{"wrong mode", "hub.mode=unsubscribe&hub.verify_token=my-secret&hub.challenge=c"},
		{"missing mode", "hub.verify_token=my-secret&hub.challenge=c"},
		{"missing token", "hub.mode=subscribe&hub.challenge=c"},
		{"no params", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/webhook?"+tt.query, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", w.Code)
			}
			if w.Body.Len() != 0 {
				t.Errorf("expected empty body, got %q", w.Body.String())
			}
		})
	}
}

func TestVerifyEmptyConfiguredTokenNeverMatches(t *testing.T) {
	h, _ := setupTest(t, "", &mockDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=&hub.challenge=c", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

// --- Acknowledgment tests ---

func TestReceiveAcknowledgesAnyBody(t *testing.T) {
	d := &mockDispatcher{}
	h, gw := setupTest(t, "s", d)

	for _, body := range []string{`{}`, ``, `not json`, `{"object":"whatsapp_business_account"}`} {
		w := post(h, body)
		if w.Code != http.StatusOK {
			t.Errorf("body %q: expected 200, got %d", body, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("body %q: expected empty response body, got %q", body, w.Body.String())
		}
	}
	gw.Wait()

	if got := d.calls(); len(got) != 0 {
		t.Errorf("expected no dispatches, got %v", got)
	}
}

func TestReceiveAcknowledgesBeforeDispatch(t *testing.T) {
	d := &mockDispatcher{block: make(chan struct{})}
	h, gw := setupTest(t, "s", d)

	w := post(h, textPayload("155", "I want to attend"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := d.calls(); len(got) != 0 {
		t.Fatalf("dispatch ran before acknowledgment: %v", got)
	}

	close(d.block)
	gw.Wait()

	got := d.calls()
	if len(got) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(got))
	}
	if got[0].Kind != rsvp.GreetAndAskAttendance || got[0].Sender != "155" {
		t.Errorf("unexpected intent %v", got[0])
	}
}

func TestReceiveDispatchErrorStillAcknowledged(t *testing.T) {
	d := &mockDispatcher{err: &whatsapp.APIError{StatusCode: 401, Message: "expired token"}}
	h, gw := setupTest(t, "s", d)

	w := post(h, buttonPayload("155", "decline"))
	gw.Wait()

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(d.calls()) != 1 {
		t.Errorf("expected a single attempt, got %d", len(d.calls()))
	}
}

// --- Gateway tests ---

func TestGatewayProcess(t *testing.T) {
	d := &mockDispatcher{}
	gw := NewGateway(rsvp.NewClassifier(""), d, true)

	intent, err := gw.Process(context.Background(), "delivery-1", []byte(buttonPayload("155", "confirm")))
	if err != nil {
		t.Fatal(err)
	}
	if intent.Kind != rsvp.ConfirmAttendance {
		t.Errorf("expected confirm, got %s", intent.Kind)
	}
	if len(d.calls()) != 1 {
		t.Errorf("expected 1 dispatch, got %d", len(d.calls()))
	}
}

func TestGatewayProcessNoOpSkipsDispatch(t *testing.T) {
	d := &mockDispatcher{}
	gw := NewGateway(rsvp.NewClassifier(""), d, false)

	intent, err := gw.Process(context.Background(), "delivery-1", []byte(textPayload("155", "no thanks")))
	if err != nil {
		t.Fatal(err)
	}
	if !intent.IsNoOp() {
		t.Errorf("expected noop, got %s", intent)
	}
	if len(d.calls()) != 0 {
		t.Errorf("expected no dispatch, got %d", len(d.calls()))
	}
}

func TestGatewaySubmitReturnsDistinctIDs(t *testing.T) {
	gw := NewGateway(rsvp.NewClassifier(""), &mockDispatcher{}, false)
	a := gw.Submit(context.Background(), []byte(`{}`))
	b := gw.Submit(context.Background(), []byte(`{}`))
	gw.Wait()

	if a == "" || b == "" || a == b {
		t.Errorf("expected distinct delivery ids, got %q and %q", a, b)
	}
}

func TestGatewaySubmitSurvivesCancelledContext(t *testing.T) {
	var gotErr error
	d := dispatchFunc(func(ctx context.Context, _ rsvp.Intent) error {
		gotErr = ctx.Err()
		return nil
	})
	gw := NewGateway(rsvp.NewClassifier(""), d, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gw.Submit(ctx, []byte(buttonPayload("155", "confirm")))
	gw.Wait()

	if gotErr != nil {
		t.Errorf("dispatch context should not be cancelled, got %v", gotErr)
	}
}

type dispatchFunc func(ctx context.Context, intent rsvp.Intent) error

func (f dispatchFunc) Dispatch(ctx context.Context, intent rsvp.Intent) error { return f(ctx, intent) }

// --- End-to-end tests against a fake Graph API ---

type graphRecorder struct {
	mu       sync.Mutex
	requests []whatsapp.OutboundMessage
	auth     []string
}

func (g *graphRecorder) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var msg whatsapp.OutboundMessage
	_ = json.Unmarshal(body, &msg)

	g.mu.Lock()
	g.requests = append(g.requests, msg)
	g.auth = append(g.auth, r.Header.Get("Authorization"))
	n := len(g.requests)
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"messaging_product":"whatsapp","messages":[{"id":"wamid.%d"}]}`, n)
}

func setupEndToEnd(t *testing.T) (http.Handler, *Gateway, *graphRecorder) {
	t.Helper()
	rec := &graphRecorder{}
	graph := httptest.NewServer(http.HandlerFunc(rec.handler))
	t.Cleanup(graph.Close)

	client := whatsapp.NewClient(whatsapp.ClientConfig{
		BaseURL:       graph.URL,
		PhoneNumberID: "PNID",
		AccessToken:   "token-1",
	})
	dispatcher := rsvp.NewDispatcher(client, rsvp.DefaultMessages(), rsvp.TicketConfig{})
	h, gw := setupTest(t, "s", dispatcher)
	return h, gw, rec
}

func TestEndToEndConfirmSendsTicketImage(t *testing.T) {
	h, gw, rec := setupEndToEnd(t)

	post(h, buttonPayload("15551234567", "confirm"))
	gw.Wait()

	if len(rec.requests) != 1 {
		t.Fatalf("expected 1 outbound call, got %d", len(rec.requests))
	}
	msg := rec.requests[0]
	if msg.Type != "image" || msg.Image == nil {
		t.Fatalf("expected image message, got %+v", msg)
	}
	if !strings.Contains(msg.Image.Link, "CONFIRMED_GUEST_15551234567_TICKET") {
		t.Errorf("ticket token missing from link %q", msg.Image.Link)
	}
	if rec.auth[0] != "Bearer token-1" {
		t.Errorf("expected bearer auth, got %q", rec.auth[0])
	}
}

func TestEndToEndRepeatedPayloadNotDeduplicated(t *testing.T) {
	h, gw, rec := setupEndToEnd(t)
	payload := textPayload("155", "Hi, I want to attend please")

	post(h, payload)
	post(h, payload)
	gw.Wait()

	if len(rec.requests) != 2 {
		t.Fatalf("expected 2 independent outbound calls, got %d", len(rec.requests))
	}
	for i, msg := range rec.requests {
		if msg.Type != "interactive" || msg.To != "155" {
			t.Errorf("request %d: unexpected message %+v", i, msg)
		}
	}
}

func TestEndToEndStatusCallbackSendsNothing(t *testing.T) {
	h, gw, rec := setupEndToEnd(t)

	post(h, `{"object":"whatsapp_business_account","entry":[{"changes":[{"value":{"statuses":[{"id":"wamid.1","status":"delivered","recipient_id":"155"}]}}]}]}`)
	gw.Wait()

	if len(rec.requests) != 0 {
		t.Errorf("expected no outbound calls, got %d", len(rec.requests))
	}
}
