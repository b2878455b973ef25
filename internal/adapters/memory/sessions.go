package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mobigesture/jobboard/internal/domain"
	"github.com/mobigesture/jobboard/internal/ports"
)

// SessionStore is a map-backed SessionStore with lazy expiry: reads past the
// TTL behave exactly like the Redis adapter's pruned keys.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]sessionEntry
	nowFn    func() time.Time
}

type sessionEntry struct {
	session   domain.Session
	expiresAt time.Time
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: map[string]sessionEntry{},
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}

// SetNow overrides the store clock so expiry can be tested deterministically.
func (s *SessionStore) SetNow(nowFn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = nowFn
}

func (s *SessionStore) Create(_ context.Context, uid string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	session := domain.Session{
		ID:           uuid.NewString(),
		UID:          uid,
		CreatedAt:    now,
		LastAccessAt: now,
	}
	s.sessions[session.ID] = sessionEntry{session: session, expiresAt: now.Add(s.ttl)}
	return session, nil
}

func (s *SessionStore) Get(_ context.Context, sessionID string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(sessionID)
}

func (s *SessionStore) Touch(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.live(sessionID)
	if err != nil {
		return err
	}
	now := s.nowFn()
	session.LastAccessAt = now
	s.sessions[sessionID] = sessionEntry{session: session, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *SessionStore) live(sessionID string) (domain.Session, error) {
	entry, ok := s.sessions[sessionID]
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: session %s", domain.ErrNotFound, sessionID)
	}
	if !s.nowFn().Before(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return domain.Session{}, fmt.Errorf("%w: session %s", domain.ErrNotFound, sessionID)
	}
	return entry.session, nil
}
