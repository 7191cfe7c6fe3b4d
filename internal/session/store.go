/**
 * @description
 * In-memory bearer-token session store gating the admin panel.
 *
 * Sessions live in a process-wide map with a fixed TTL; expiry is enforced
 * on read and swept periodically by a scheduled job. The TTL is a policy
 * parameter supplied by configuration, not hardcoded. A single-instance
 * deployment is assumed — swap the Store implementation for an external
 * cache before running more than one replica.
 */
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Session is an authenticated admin session.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is the session capability used by the API layer.
type Store interface {
	Create(email string) (Session, error)
	Get(token string) (Session, bool)
	Invalidate(token string)
	SweepExpired() int
}

// MemoryStore implements Store with an in-process map.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore creates a store whose sessions expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create issues a new session token for the given admin identity.
func (s *MemoryStore) Create(email string) (Session, error) {
	token, err := newToken()
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		Token:     token,
		Email:     email,
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns the session for a token. Expired sessions are removed on
// read and reported as absent.
func (s *MemoryStore) Get(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return Session{}, false
	}
	return sess, true
}

// Invalidate removes a session, if present.
func (s *MemoryStore) Invalidate(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// SweepExpired removes all expired sessions and returns how many were
// dropped.
func (s *MemoryStore) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
