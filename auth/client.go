// Package auth is the wire client for the POS backend's authentication
// endpoints. It deliberately carries no bearer credential: the refresh call
// issued while recovering from a 401 must not itself be intercepted.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/comanda-pos/sdk-go/routes"
)

const defaultUserAgent = "ComandaPOS/1"

// Config controls how the auth client talks to the backend.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// Client issues login, refresh, and logout requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Error conveys a non-success HTTP status from the auth endpoints.
type Error struct {
	Status int
	Body   string
}

func (e Error) Error() string {
	return fmt.Sprintf("auth: http %d: %s", e.Status, strings.TrimSpace(e.Body))
}

// NewClient constructs a Client with sane defaults.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("auth: base url required")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    strings.TrimSuffix(base, "/"),
		httpClient: client,
		userAgent:  ua,
	}, nil
}

// Login exchanges staff credentials for a token pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	if strings.TrimSpace(req.UsernameOrEmail) == "" || strings.TrimSpace(req.Password) == "" {
		return LoginResponse{}, errors.New("auth: username and password required")
	}
	return c.post(ctx, routes.AuthLogin, req)
}

// LoginWithPin exchanges a user id and PIN for a token pair. Used for fast
// staff switch-over on a shared terminal.
func (c *Client) LoginWithPin(ctx context.Context, req PinLoginRequest) (LoginResponse, error) {
	if req.UserID <= 0 || strings.TrimSpace(req.Pin) == "" {
		return LoginResponse{}, errors.New("auth: user id and pin required")
	}
	return c.post(ctx, routes.AuthPinLogin, req)
}

// Refresh swaps a refresh token for a new token pair. The response carries
// the same envelope as Login.
func (c *Client) Refresh(ctx context.Context, req RefreshRequest) (LoginResponse, error) {
	if strings.TrimSpace(req.RefreshToken) == "" {
		return LoginResponse{}, errors.New("auth: refresh token required")
	}
	return c.post(ctx, routes.AuthRefresh, req)
}

// Logout revokes the refresh token server-side. The local session is cleared
// separately by the caller; a revocation failure is not fatal there.
func (c *Client) Logout(ctx context.Context, req LogoutRequest) error {
	_, err := c.post(ctx, routes.AuthLogout, req)
	return err
}

// Users lists the staff accounts shown on the PIN login screen.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+routes.AuthUsersList, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, Error{Status: resp.StatusCode, Body: string(body)}
	}
	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (LoginResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return LoginResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return LoginResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LoginResponse{}, err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return LoginResponse{}, err
	}
	if resp.StatusCode >= 400 {
		return LoginResponse{}, Error{Status: resp.StatusCode, Body: string(body)}
	}

	var out LoginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}
