// Package share implements the ephemeral share-token manager. Tokens live
// only in process memory: a restart or RevokeAll invalidates everything, by
// contract. Issuance is rate limited per requester over a sliding window.
package share

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/logger"
	"github.com/hpungsan/promptbin/internal/prompt"
)

// tokenBytes gives 128 bits of entropy per token.
const tokenBytes = 16

type entry struct {
	ref       prompt.Ref
	issuedAt  time.Time
	expiresAt time.Time // zero = process lifetime
}

// Manager maps opaque tokens to record references. Safe for concurrent use
// from multiple in-flight requests; one mutex guards the token map, the
// rate-limit counters, and the suspension flag.
type Manager struct {
	mu             sync.Mutex
	tokens         map[string]entry
	attempts       map[string][]time.Time
	max            int
	window         time.Duration
	ttl            time.Duration
	suspendedUntil time.Time
	log            logger.Logger

	// now is replaceable in tests to drive the sliding window.
	now func() time.Time
}

// NewManager creates a Manager with the configured rate limit and TTL.
func NewManager(cfg *config.Config, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		tokens:   make(map[string]entry),
		attempts: make(map[string][]time.Time),
		max:      cfg.ShareMaxPerWindow,
		window:   cfg.ShareWindow,
		ttl:      cfg.ShareTTL,
		log:      log,
		now:      time.Now,
	}
}

// Issue generates a token for the given record reference. The requester
// (network origin) is counted against the sliding window; once it has used
// up its allowance the call fails with ErrRateLimited and the manager flips
// into the suspended state until the window clears.
func (m *Manager) Issue(ref prompt.Ref, requester string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	recent := pruneWindow(m.attempts[requester], now, m.window)
	m.attempts[requester] = recent

	if len(recent) >= m.max {
		m.suspendedUntil = recent[0].Add(m.window)
		retry := int(m.suspendedUntil.Sub(now).Seconds())
		if retry < 1 {
			retry = 1
		}
		m.log.Warn("share issuance rate limited",
			logger.String("requester", requester),
			logger.Int("retry_after_s", retry))
		return "", errors.NewRateLimited(retry)
	}
	m.attempts[requester] = append(recent, now)

	token, err := newToken()
	if err != nil {
		return "", errors.NewInternal(err)
	}

	e := entry{ref: ref, issuedAt: now}
	if m.ttl > 0 {
		e.expiresAt = now.Add(m.ttl)
	}
	m.tokens[token] = e

	m.log.Info("share token issued",
		logger.String("category", ref.Category),
		logger.String("id", ref.ID))
	return token, nil
}

// Resolve returns the record reference a token exposes, or ErrInvalidToken
// if the token is unknown, revoked, or past its TTL.
func (m *Manager) Resolve(token string) (prompt.Ref, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.tokens[token]
	if !ok {
		return prompt.Ref{}, errors.NewInvalidToken()
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.tokens, token)
		return prompt.Ref{}, errors.NewInvalidToken()
	}
	return e.ref, nil
}

// Revoke removes a token. Revoking an unknown token is a no-op.
func (m *Manager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
}

// RevokeAll drops every live token. Called on process shutdown so no token
// remains valid across restarts.
func (m *Manager) RevokeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.tokens)
	m.tokens = make(map[string]entry)
	if n > 0 {
		m.log.Info("all share tokens revoked", logger.Int("count", n))
	}
}

// Suspended reports whether the manager is refusing new share requests.
// The web layer and the tunnel wrapper poll this flag; it clears on its own
// once the offending requester's window slides past.
func (m *Manager) Suspended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now().Before(m.suspendedUntil)
}

// ActiveTokens returns the number of live tokens.
func (m *Manager) ActiveTokens() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

// pruneWindow drops attempt timestamps older than the window. Attempts are
// appended in order, so the slice stays sorted.
func pruneWindow(attempts []time.Time, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	i := 0
	for i < len(attempts) && !attempts[i].After(cutoff) {
		i++
	}
	return attempts[i:]
}

// newToken returns a hex-encoded token from a cryptographically secure source.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
