package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comanda-pos/sdk-go/auth"
	"github.com/comanda-pos/sdk-go/headers"
)

// apiRequest captures an outbound call by value (method, URL, headers, body
// bytes) so the transport can replay it byte-for-byte after a token refresh
// instead of mutating an in-flight *http.Request.
type apiRequest struct {
	method string
	url    string
	header http.Header
	body   []byte
}

func (c *Client) newJSONRequest(method, path string, payload any) (*apiRequest, error) {
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = encoded
	}
	header := make(http.Header)
	if payload != nil {
		header.Set("Content-Type", "application/json")
	}
	header.Set("Accept", "application/json")
	// minted once so the replay carries the same correlation id
	header.Set(headers.RequestID, uuid.NewString())
	return &apiRequest{
		method: method,
		url:    c.buildURL(path),
		header: header,
		body:   body,
	}, nil
}

// build mints a fresh *http.Request from the captured value. Each call gets
// its own body reader, so build may be invoked once per send.
func (r *apiRequest) build(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if len(r.body) > 0 {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, err
	}
	req.Header = r.header.Clone()
	return req, nil
}

// send runs the request through the refresh-aware transport and decodes any
// remaining non-success status into an APIError.
func (c *Client) send(ctx context.Context, r *apiRequest) (*http.Response, error) {
	resp, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		//nolint:errcheck // best-effort cleanup on return
		defer func() { _ = resp.Body.Close() }()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

// do attaches the current bearer credential, performs the call, and resolves
// a 401 with a single refresh-and-replay cycle.
func (c *Client) do(ctx context.Context, r *apiRequest) (*http.Response, error) {
	if tok := c.session.AccessToken(ctx); strings.TrimSpace(tok) != "" {
		r.header.Set("Authorization", "Bearer "+tok)
	} else {
		r.header.Del("Authorization")
	}
	resp, err := c.roundTrip(ctx, r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	return c.refreshAndReplay(ctx, r, resp)
}

// refreshAndReplay trades the refresh token for a new pair and resends the
// original request once. Whatever goes wrong, the caller gets a response:
// the replay's on success, the original 401 otherwise. A second 401 from the
// replay is returned as-is; there is no refresh loop.
func (c *Client) refreshAndReplay(ctx context.Context, r *apiRequest, unauthorized *http.Response) (*http.Response, error) {
	refresh := c.session.RefreshToken(ctx)
	if strings.TrimSpace(refresh) == "" {
		return unauthorized, nil
	}

	tokens, err := c.authAPI.Refresh(ctx, auth.RefreshRequest{RefreshToken: refresh})
	if err != nil {
		var wireErr auth.Error
		if errors.As(err, &wireErr) {
			// the backend rejected the refresh token; the session is over
			c.session.MarkLoggedOut(ctx)
		}
		c.telemetry.log(ctx, LogLevelError, "token_refresh_failed", map[string]any{
			"error": err.Error(),
		})
		return unauthorized, nil
	}
	if !tokens.Success || strings.TrimSpace(tokens.Token) == "" {
		c.session.MarkLoggedOut(ctx)
		return unauthorized, nil
	}

	// the session mutation persists and broadcasts before the replay is
	// sent, so the resent request carries the freshest credential
	if err := c.session.MarkAuthenticated(ctx, tokens.Token, tokens.RefreshToken); err != nil {
		return unauthorized, nil
	}
	r.header.Set("Authorization", "Bearer "+tokens.Token)

	replay, err := c.roundTrip(ctx, r)
	if err != nil {
		c.telemetry.log(ctx, LogLevelError, "replay_failed", map[string]any{
			"error": err.Error(),
		})
		return unauthorized, nil
	}
	drainAndClose(unauthorized)
	return replay, nil
}

func (c *Client) roundTrip(ctx context.Context, r *apiRequest) (*http.Response, error) {
	req, err := r.build(ctx)
	if err != nil {
		return nil, err
	}
	c.prepare(req)
	if c.telemetry.OnHTTPRequest != nil {
		c.telemetry.OnHTTPRequest(ctx, req)
	}
	c.telemetry.log(ctx, LogLevelInfo, "http_request", map[string]any{
		"method": req.Method,
		"url":    req.URL.String(),
	})
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.telemetry.OnHTTPResponse != nil {
		c.telemetry.OnHTTPResponse(ctx, req, resp, err, time.Since(start))
	}
	c.telemetry.metric(ctx, "pos_http_request_latency_ms", float64(time.Since(start).Milliseconds()), map[string]string{
		"path": req.URL.Path,
	})
	return resp, err
}

func (c *Client) prepare(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	injectTraceparent(req.Context(), req)
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	_ = resp.Body.Close()
}
