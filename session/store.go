// Package session maintains the client's belief about who is logged in. It
// persists the access/refresh token pair across restarts, projects an
// identity out of the access token's claims, and notifies subscribers when
// the authentication state changes.
package session

import (
	"context"
	"errors"
)

// Storage keys for the persisted token pair. Fixed so newer client
// generations can read sessions written by older ones.
const (
	AccessTokenKey  = "authToken"
	RefreshTokenKey = "refreshToken"
)

// ErrStorageUnavailable reports that the storage medium is not reachable.
// This is routine during terminal start-up before the local store attaches;
// callers retry with backoff or fall back to the in-memory mirror rather
// than treating it as fatal.
var ErrStorageUnavailable = errors.New("session: storage unavailable")

// ErrNotFound reports an absent key.
var ErrNotFound = errors.New("session: key not found")

// Store is durable key-value persistence for token material.
// Implementations must be safe for concurrent use and must return
// ErrNotFound for absent keys and ErrStorageUnavailable (possibly wrapped)
// while the medium is unreachable.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
