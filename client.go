// Package sdk provides the Go client for the Comanda POS backend API.
package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/comanda-pos/sdk-go/auth"
	"github.com/comanda-pos/sdk-go/routes"
	"github.com/comanda-pos/sdk-go/session"
)

const defaultBaseURL = "http://localhost:8000"
const defaultUserAgent = "comanda-sdk/" + Version

// defaultRequestTimeout bounds every outbound call, including the refresh
// issued while recovering from a 401. No separate refresh timeout exists.
const defaultRequestTimeout = 30 * time.Second

// Config wires the token store, base URL, and telemetry for the API client.
type Config struct {
	BaseURL string
	// Store persists the token pair across restarts. Defaults to an
	// in-memory store (sessions end with the process).
	Store      session.Store
	HTTPClient *http.Client
	Telemetry  TelemetryHooks
	UserAgent  string
}

// Client provides high-level helpers for interacting with the POS backend.
// Every call routes through a transport that attaches the current bearer
// credential and resolves a 401 with a single token refresh and replay.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	authAPI    *auth.Client
	telemetry  TelemetryHooks
	userAgent  string

	// Grouped service clients.
	Auth         *AuthService
	Products     *ProductsClient
	Categories   *CategoriesClient
	Modifiers    *ModifiersClient
	Orders       *OrdersClient
	Tables       *TablesClient
	Customers    *CustomersClient
	CashRegister *CashRegisterClient
	Reports      *ReportsClient
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(defaultRequestTimeout)
	}
	store := cfg.Store
	if store == nil {
		store = session.NewMemStore()
	}
	sess, err := session.New(session.Config{Store: store})
	if err != nil {
		return nil, err
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	authAPI, err := auth.NewClient(auth.Config{
		BaseURL:    normalized,
		HTTPClient: httpClient,
		UserAgent:  ua,
	})
	if err != nil {
		return nil, err
	}
	client := &Client{
		baseURL:    normalized,
		httpClient: httpClient,
		session:    sess,
		authAPI:    authAPI,
		telemetry:  cfg.Telemetry,
		userAgent:  ua,
	}
	client.Auth = &AuthService{client: client}
	client.Products = &ProductsClient{client: client}
	client.Categories = &CategoriesClient{client: client}
	client.Modifiers = &ModifiersClient{client: client}
	client.Orders = &OrdersClient{client: client}
	client.Tables = &TablesClient{client: client}
	client.Customers = &CustomersClient{client: client}
	client.CashRegister = &CashRegisterClient{client: client}
	client.Reports = &ReportsClient{client: client}
	return client, nil
}

// Session exposes the authentication state holder, for subscribing to state
// changes and reading the current snapshot.
func (c *Client) Session() *session.Session {
	return c.session
}

// Health reports whether the backend responds on its liveness probe.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, routes.Health, nil, &out); err != nil {
		return HealthStatus{}, err
	}
	return out, nil
}

// HealthStatus is the backend liveness payload.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// PublicConfig returns the unauthenticated terminal configuration served
// before anyone logs in.
func (c *Client) PublicConfig(ctx context.Context) (PublicConfig, error) {
	var out PublicConfig
	if err := c.doJSON(ctx, http.MethodGet, routes.ConfigPublic, nil, &out); err != nil {
		return PublicConfig{}, err
	}
	return out, nil
}

// PublicConfig is the unauthenticated terminal configuration payload.
type PublicConfig struct {
	RestaurantName   string  `json:"restaurant_name"`
	Currency         string  `json:"currency"`
	TaxRate          float64 `json:"tax_rate"`
	GoogleMapsAPIKey string  `json:"google_maps_api_key,omitempty"`
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("sdk: base URL required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("sdk: invalid base URL: %w", err)
	}
	if u.Scheme == "" {
		return "", errors.New("sdk: base URL missing scheme (http/https)")
	}
	if u.Host == "" {
		return "", errors.New("sdk: base URL missing host")
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return strings.TrimSuffix(u.String(), "/"), nil
}

func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// doJSON performs a request through the refresh-aware transport and decodes
// the response body into out (skipped when out is nil).
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	req, err := c.newJSONRequest(method, path, payload)
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
