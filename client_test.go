package sdk

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/comanda-pos/sdk-go/auth"
	"github.com/comanda-pos/sdk-go/headers"
	"github.com/comanda-pos/sdk-go/routes"
	"github.com/comanda-pos/sdk-go/session"
)

// mintToken assembles a decodable compact token for the given claims.
func mintToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

// recordedRequest is one call observed by the fake backend.
type recordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          string
}

// fakeBackend scripts the API side of the transport: every handler consumes
// one request, and the log records what arrived.
type fakeBackend struct {
	t  *testing.T
	mu sync.Mutex

	log      []recordedRequest
	handlers map[string][]http.HandlerFunc
}

func newFakeBackend(t *testing.T) *fakeBackend {
	return &fakeBackend{t: t, handlers: map[string][]http.HandlerFunc{}}
}

func (b *fakeBackend) on(path string, h http.HandlerFunc) {
	b.handlers[path] = append(b.handlers[path], h)
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.log = append(b.log, recordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get(headers.RequestID),
		Body:          string(body),
	})
	queue := b.handlers[r.URL.Path]
	if len(queue) == 0 {
		b.mu.Unlock()
		b.t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
		return
	}
	handler := queue[0]
	b.handlers[r.URL.Path] = queue[1:]
	b.mu.Unlock()
	handler(w, r)
}

func (b *fakeBackend) requests(path string) []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedRequest
	for _, r := range b.log {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func respondJSON(status int, payload any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func newTestClient(t *testing.T, backend *fakeBackend) *Client {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL, Store: session.NewMemStore()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func seedSession(t *testing.T, c *Client, access, refresh string) {
	t.Helper()
	if err := c.session.MarkAuthenticated(context.Background(), access, refresh); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func TestRequestAttachesBearerAndRequestID(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	backend.on(routes.Products, respondJSON(http.StatusOK, []Product{}))
	client := newTestClient(t, backend)
	token := mintToken(t, map[string]any{"username": "alice"})
	seedSession(t, client, token, "ref-1")

	var out []Product
	if err := client.doJSON(ctx, http.MethodGet, routes.Products, nil, &out); err != nil {
		t.Fatalf("doJSON: %v", err)
	}
	reqs := backend.requests(routes.Products)
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	if reqs[0].Authorization != "Bearer "+token {
		t.Fatalf("authorization = %q", reqs[0].Authorization)
	}
	if reqs[0].RequestID == "" {
		t.Fatalf("request id header missing")
	}
}

func TestAnonymousRequestHasNoBearer(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(routes.Health, respondJSON(http.StatusOK, HealthStatus{Status: "ok"}))
	client := newTestClient(t, backend)

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	reqs := backend.requests(routes.Health)
	if len(reqs) != 1 || reqs[0].Authorization != "" {
		t.Fatalf("requests = %+v", reqs)
	}
}

func TestUnauthorizedRefreshesOnceAndReplays(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	oldToken := mintToken(t, map[string]any{"username": "alice", "usuario_id": 7})
	newToken := mintToken(t, map[string]any{"username": "alice", "usuario_id": 7, "exp": 2000000000})

	backend.on(routes.Orders, respondJSON(http.StatusUnauthorized, map[string]string{"detail": "token expired"}))
	backend.on(routes.AuthRefresh, respondJSON(http.StatusOK, auth.LoginResponse{
		Success:      true,
		Token:        newToken,
		RefreshToken: "ref-2",
	}))
	backend.on(routes.Orders, respondJSON(http.StatusCreated, Order{ID: 42}))

	client := newTestClient(t, backend)
	seedSession(t, client, oldToken, "ref-1")

	var created Order
	payload := NewOrder{OrderType: OrderTypeTakeout}
	if err := client.doJSON(ctx, http.MethodPost, routes.Orders, payload, &created); err != nil {
		t.Fatalf("doJSON: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("order = %+v", created)
	}

	orderReqs := backend.requests(routes.Orders)
	if len(orderReqs) != 2 {
		t.Fatalf("order requests = %d, want 2", len(orderReqs))
	}
	if orderReqs[0].Authorization != "Bearer "+oldToken {
		t.Fatalf("first attempt auth = %q", orderReqs[0].Authorization)
	}
	if orderReqs[1].Authorization != "Bearer "+newToken {
		t.Fatalf("replay auth = %q, want new bearer", orderReqs[1].Authorization)
	}
	// the same request, byte for byte, with the same correlation id
	if orderReqs[0].Body != orderReqs[1].Body {
		t.Fatalf("replay body differs: %q vs %q", orderReqs[0].Body, orderReqs[1].Body)
	}
	if orderReqs[0].RequestID == "" || orderReqs[0].RequestID != orderReqs[1].RequestID {
		t.Fatalf("request ids = %q, %q", orderReqs[0].RequestID, orderReqs[1].RequestID)
	}

	refreshReqs := backend.requests(routes.AuthRefresh)
	if len(refreshReqs) != 1 {
		t.Fatalf("refresh requests = %d, want exactly 1", len(refreshReqs))
	}
	var refreshBody auth.RefreshRequest
	if err := json.Unmarshal([]byte(refreshReqs[0].Body), &refreshBody); err != nil || refreshBody.RefreshToken != "ref-1" {
		t.Fatalf("refresh body = %q (%v)", refreshReqs[0].Body, err)
	}

	// the rotated pair is persisted before the replay returns
	if got := client.session.AccessToken(ctx); got != newToken {
		t.Fatalf("session access token = %q, want rotated token", got)
	}
	if got := client.session.RefreshToken(ctx); got != "ref-2" {
		t.Fatalf("session refresh token = %q, want rotated token", got)
	}
}

func TestUnauthorizedWithoutRefreshTokenReturns401(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	backend.on(routes.Products, respondJSON(http.StatusUnauthorized, map[string]string{"detail": "not authenticated"}))
	client := newTestClient(t, backend)

	err := client.doJSON(ctx, http.MethodGet, routes.Products, nil, &[]Product{})
	if !IsUnauthorized(err) {
		t.Fatalf("error = %v, want unauthorized APIError", err)
	}
	if got := backend.requests(routes.AuthRefresh); len(got) != 0 {
		t.Fatalf("refresh was called %d time(s) with no refresh token", len(got))
	}
}

func TestRefreshRejectionLogsOutAndReturns401(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	token := mintToken(t, map[string]any{"username": "alice"})

	backend.on(routes.Products, respondJSON(http.StatusUnauthorized, map[string]string{"detail": "token expired"}))
	backend.on(routes.AuthRefresh, respondJSON(http.StatusUnauthorized, map[string]string{"detail": "refresh token expired"}))

	client := newTestClient(t, backend)
	seedSession(t, client, token, "stale-ref")

	err := client.doJSON(ctx, http.MethodGet, routes.Products, nil, &[]Product{})
	if !IsUnauthorized(err) {
		t.Fatalf("error = %v, want unauthorized APIError", err)
	}
	// the session is over: tokens cleared, state anonymous
	if snap := client.session.State(ctx); snap.Authenticated {
		t.Fatalf("session still authenticated: %+v", snap)
	}
	if got := client.session.RefreshToken(ctx); got != "" {
		t.Fatalf("refresh token = %q, want cleared", got)
	}
}

func TestRefreshEnvelopeRejectionLogsOut(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	token := mintToken(t, map[string]any{"username": "alice"})

	backend.on(routes.Products, respondJSON(http.StatusUnauthorized, map[string]string{"detail": "token expired"}))
	// 200 with exito=false is still a rejection
	backend.on(routes.AuthRefresh, respondJSON(http.StatusOK, auth.LoginResponse{Success: false, Message: "token revocado"}))

	client := newTestClient(t, backend)
	seedSession(t, client, token, "revoked-ref")

	err := client.doJSON(ctx, http.MethodGet, routes.Products, nil, &[]Product{})
	if !IsUnauthorized(err) {
		t.Fatalf("error = %v, want unauthorized APIError", err)
	}
	if snap := client.session.State(ctx); snap.Authenticated {
		t.Fatalf("session still authenticated: %+v", snap)
	}
}

func TestReplayUnauthorizedIsNotRefreshedAgain(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	oldToken := mintToken(t, map[string]any{"username": "alice"})
	newToken := mintToken(t, map[string]any{"username": "alice", "exp": 2000000000})

	backend.on(routes.Products, respondJSON(http.StatusUnauthorized, map[string]string{"detail": "token expired"}))
	backend.on(routes.AuthRefresh, respondJSON(http.StatusOK, auth.LoginResponse{
		Success:      true,
		Token:        newToken,
		RefreshToken: "ref-2",
	}))
	backend.on(routes.Products, respondJSON(http.StatusUnauthorized, map[string]string{"detail": "still no"}))

	client := newTestClient(t, backend)
	seedSession(t, client, oldToken, "ref-1")

	err := client.doJSON(ctx, http.MethodGet, routes.Products, nil, &[]Product{})
	if !IsUnauthorized(err) {
		t.Fatalf("error = %v, want unauthorized APIError", err)
	}
	if got := backend.requests(routes.AuthRefresh); len(got) != 1 {
		t.Fatalf("refresh requests = %d, want exactly 1", len(got))
	}
	if got := backend.requests(routes.Products); len(got) != 2 {
		t.Fatalf("product requests = %d, want 2", len(got))
	}
}

func TestNon401ErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	token := mintToken(t, map[string]any{"username": "alice"})
	backend.on(routes.Products+"/99", respondJSON(http.StatusNotFound, map[string]string{"detail": "Producto no encontrado"}))

	client := newTestClient(t, backend)
	seedSession(t, client, token, "ref-1")

	err := client.doJSON(ctx, http.MethodGet, routes.Products+"/99", nil, &Product{})
	if !IsNotFound(err) {
		t.Fatalf("error = %v, want not-found APIError", err)
	}
	var apiErr APIError
	if !errors.As(err, &apiErr) || apiErr.Detail != "Producto no encontrado" {
		t.Fatalf("detail = %+v", err)
	}
	if got := backend.requests(routes.AuthRefresh); len(got) != 0 {
		t.Fatalf("refresh requests = %d, want 0", len(got))
	}
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	cases := []string{"not a url at all://", "missing-scheme.example.com", "http://"}
	for _, raw := range cases {
		if _, err := NewClient(Config{BaseURL: raw}); err == nil {
			t.Errorf("NewClient(%q) accepted a bad base url", raw)
		}
	}
}
