package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Snapshot is the authentication state at a point in time. Snapshots are
// immutable; mutations replace the current one wholesale and broadcast the
// replacement to subscribers.
type Snapshot struct {
	Authenticated bool
	Identity      Identity
}

// RetryConfig bounds the storage reads performed while computing the initial
// state. Storage is routinely unreachable for the first few hundred
// milliseconds after start-up, so the defaults absorb that window: up to 4
// attempts with 100ms, 200ms, 400ms between them.
type RetryConfig struct {
	MaxAttempts int
	BaseBackoff time.Duration
}

func defaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 4,
		BaseBackoff: 100 * time.Millisecond,
	}
}

func (r RetryConfig) normalized() RetryConfig {
	cfg := r
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultRetryConfig().MaxAttempts
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = defaultRetryConfig().BaseBackoff
	}
	return cfg
}

// backoffDelay returns the sleep preceding the given 1-based attempt:
// none before the first, then base, 2*base, 4*base, ...
func (r RetryConfig) backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	return r.BaseBackoff << (attempt - 2)
}

// Config wires the durable store and retry policy for a Session.
type Config struct {
	Store Store
	Retry RetryConfig
}

// Session is the source of truth for the current identity. It mirrors the
// durable Store into memory so token reads keep working while storage is
// unreachable, and it notifies subscribers synchronously: a mutation's
// storage write and broadcast both complete before the call returns.
//
// Collaborators receive the Session by reference; there is no package-level
// instance.
type Session struct {
	store Store
	retry RetryConfig
	sleep func(time.Duration)

	mu            sync.Mutex
	loaded        bool
	snapshot      Snapshot
	cachedAccess  string
	cachedRefresh string
	subs          map[int]func(Snapshot)
	nextSub       int
}

// New validates the configuration and returns a Session in its lazy initial
// state: the stored token is not read until the first State call.
func New(cfg Config) (*Session, error) {
	if cfg.Store == nil {
		return nil, errors.New("session: store required")
	}
	return &Session{
		store: cfg.Store,
		retry: cfg.Retry.normalized(),
		sleep: time.Sleep,
		subs:  make(map[int]func(Snapshot)),
	}, nil
}

// State returns the current snapshot, computing it from the Store on first
// use. A cold start with unreachable storage resolves to anonymous after the
// retry budget; it never returns an error.
func (s *Session) State(ctx context.Context) Snapshot {
	s.mu.Lock()
	if s.loaded {
		snap := s.snapshot
		s.mu.Unlock()
		return snap
	}
	s.mu.Unlock()
	return s.loadInitial(ctx)
}

func (s *Session) loadInitial(ctx context.Context) Snapshot {
	var token string
	var err error
	for attempt := 1; attempt <= s.retry.MaxAttempts; attempt++ {
		if d := s.retry.backoffDelay(attempt); d > 0 {
			s.sleep(d)
		}
		token, err = s.store.Get(ctx, AccessTokenKey)
		if err == nil || !errors.Is(err, ErrStorageUnavailable) {
			break
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		// another caller finished initialization while we were reading
		return s.snapshot
	}
	s.loaded = true

	if err != nil || strings.TrimSpace(token) == "" {
		s.snapshot = Snapshot{}
		return s.snapshot
	}
	clean := stripQuotes(token)
	claims, decErr := DecodeClaims(clean)
	if decErr != nil {
		// the stored token rotted; purge both entries and stay anonymous
		_ = s.store.Remove(ctx, AccessTokenKey)
		_ = s.store.Remove(ctx, RefreshTokenKey)
		s.cachedAccess = ""
		s.cachedRefresh = ""
		s.snapshot = Snapshot{}
		return s.snapshot
	}
	s.cachedAccess = clean
	s.snapshot = Snapshot{Authenticated: true, Identity: IdentityFromClaims(claims)}
	return s.snapshot
}

// MarkAuthenticated records a fresh token pair and broadcasts the new
// authenticated snapshot. Storage failures are tolerated: the in-memory
// mirror still updates so outbound requests keep carrying the new bearer
// credential, and durability resumes once the store becomes reachable.
// A token that fails to decode is rejected without changing state.
func (s *Session) MarkAuthenticated(ctx context.Context, accessToken, refreshToken string) error {
	claims, err := DecodeClaims(accessToken)
	if err != nil {
		return err
	}
	_ = s.store.Set(ctx, AccessTokenKey, accessToken)
	if refreshToken != "" {
		_ = s.store.Set(ctx, RefreshTokenKey, refreshToken)
	}

	s.mu.Lock()
	s.cachedAccess = accessToken
	s.cachedRefresh = refreshToken
	s.snapshot = Snapshot{Authenticated: true, Identity: IdentityFromClaims(claims)}
	s.loaded = true
	snap := s.snapshot
	subs := s.subscriberList()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return nil
}

// MarkLoggedOut removes both tokens, clears the in-memory mirror, and
// broadcasts the anonymous snapshot.
func (s *Session) MarkLoggedOut(ctx context.Context) {
	_ = s.store.Remove(ctx, AccessTokenKey)
	_ = s.store.Remove(ctx, RefreshTokenKey)

	s.mu.Lock()
	s.cachedAccess = ""
	s.cachedRefresh = ""
	s.snapshot = Snapshot{}
	s.loaded = true
	snap := s.snapshot
	subs := s.subscriberList()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// AccessToken returns the current access token, or "" when anonymous. The
// durable store is consulted first so a login or logout from another
// terminal window is picked up; the in-memory mirror answers while storage
// is unreachable.
func (s *Session) AccessToken(ctx context.Context) string {
	return s.token(ctx, AccessTokenKey, &s.cachedAccess)
}

// RefreshToken returns the current refresh token, or "" when absent. Same
// fallback ordering as AccessToken.
func (s *Session) RefreshToken(ctx context.Context) string {
	return s.token(ctx, RefreshTokenKey, &s.cachedRefresh)
}

func (s *Session) token(ctx context.Context, key string, cache *string) string {
	value, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrStorageUnavailable) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return *cache
		}
		// absent in the store is authoritative, even if the mirror still
		// holds a value from before a cross-window logout
		return ""
	}
	clean := stripQuotes(value)
	if strings.TrimSpace(clean) != "" {
		s.mu.Lock()
		*cache = clean
		s.mu.Unlock()
	}
	return clean
}

// OnChange registers fn to run on every snapshot replacement. Callbacks run
// synchronously on the mutating goroutine, before the mutation returns. The
// returned function removes the subscription.
func (s *Session) OnChange(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// subscriberList snapshots the callbacks under s.mu so they can be invoked
// after the lock is released.
func (s *Session) subscriberList() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

// stripQuotes removes surrounding quote characters. Earlier storage layers
// serialised tokens through JSON and left the quotes in the stored value.
func stripQuotes(s string) string {
	return strings.Trim(s, `"`)
}
