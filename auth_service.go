package sdk

import (
	"context"
	"strings"

	"github.com/comanda-pos/sdk-go/auth"
)

// AuthService is the surface UI actions touch: credential and PIN login,
// logout, and the staff list for the PIN switcher. Outcomes are reported as
// booleans; failures are logged through telemetry and never escape as
// errors, so a flaky backend degrades to a rejected login rather than a
// crash.
type AuthService struct {
	client *Client
}

// Login authenticates with a username (or email) and password. On success
// the session transitions to authenticated and the token pair is persisted;
// any other outcome leaves the session untouched.
func (s *AuthService) Login(ctx context.Context, username, password string) bool {
	res, err := s.client.authAPI.Login(ctx, auth.LoginRequest{
		UsernameOrEmail: username,
		Password:        password,
	})
	return s.complete(ctx, res, err)
}

// LoginWithPin authenticates with a user id and PIN, for fast staff
// switch-over on a shared terminal.
func (s *AuthService) LoginWithPin(ctx context.Context, userID int, pin string) bool {
	res, err := s.client.authAPI.LoginWithPin(ctx, auth.PinLoginRequest{
		UserID: userID,
		Pin:    pin,
	})
	return s.complete(ctx, res, err)
}

func (s *AuthService) complete(ctx context.Context, res auth.LoginResponse, err error) bool {
	if err != nil {
		s.client.telemetry.log(ctx, LogLevelError, "login_failed", map[string]any{
			"error": err.Error(),
		})
		return false
	}
	if !res.Success || strings.TrimSpace(res.Token) == "" {
		s.client.telemetry.log(ctx, LogLevelInfo, "login_rejected", map[string]any{
			"message": res.Message,
		})
		return false
	}
	if err := s.client.session.MarkAuthenticated(ctx, res.Token, res.RefreshToken); err != nil {
		s.client.telemetry.log(ctx, LogLevelError, "login_token_rejected", map[string]any{
			"error": err.Error(),
		})
		return false
	}
	return true
}

// Logout revokes the refresh token server-side on a best-effort basis, then
// clears the local session. The local logout happens regardless of whether
// the revocation reached the backend.
func (s *AuthService) Logout(ctx context.Context) {
	if refresh := s.client.session.RefreshToken(ctx); strings.TrimSpace(refresh) != "" {
		if err := s.client.authAPI.Logout(ctx, auth.LogoutRequest{RefreshToken: refresh}); err != nil {
			s.client.telemetry.log(ctx, LogLevelError, "logout_revoke_failed", map[string]any{
				"error": err.Error(),
			})
		}
	}
	s.client.session.MarkLoggedOut(ctx)
}

// UsersForPinLogin returns the staff summaries shown on the PIN switch
// screen. Failures yield an empty list; the login screen must render
// regardless of backend health.
func (s *AuthService) UsersForPinLogin(ctx context.Context) []auth.User {
	users, err := s.client.authAPI.Users(ctx)
	if err != nil {
		s.client.telemetry.log(ctx, LogLevelError, "users_list_failed", map[string]any{
			"error": err.Error(),
		})
		return []auth.User{}
	}
	if users == nil {
		return []auth.User{}
	}
	return users
}
