package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mobigesture/jobboard/internal/domain"
	"github.com/mobigesture/jobboard/internal/ports"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps sessions under a rolling TTL. Redis key expiry is
// the pruning mechanism: an expired session is simply gone, so it can never
// authenticate a request.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.SessionStore = (*RedisSessionStore)(nil)

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

type sessionRecord struct {
	UID          string    `json:"uid"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessAt time.Time `json:"last_access_at"`
}

func (s *RedisSessionStore) Create(ctx context.Context, uid string) (domain.Session, error) {
	now := time.Now().UTC()
	session := domain.Session{
		ID:           uuid.NewString(),
		UID:          uid,
		CreatedAt:    now,
		LastAccessAt: now,
	}
	raw, err := json.Marshal(sessionRecord{
		UID:          session.UID,
		CreatedAt:    session.CreatedAt,
		LastAccessAt: session.LastAccessAt,
	})
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, raw, s.ttl).Err(); err != nil {
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, fmt.Errorf("%w: session %s", domain.ErrNotFound, sessionID)
		}
		return domain.Session{}, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Session{}, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return domain.Session{
		ID:           sessionID,
		UID:          rec.UID,
		CreatedAt:    rec.CreatedAt,
		LastAccessAt: rec.LastAccessAt,
	}, nil
}

// Touch refreshes both the TTL and the last-access stamp, implementing the
// extend-on-use session policy.
func (s *RedisSessionStore) Touch(ctx context.Context, sessionID string) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(sessionRecord{
		UID:          session.UID,
		CreatedAt:    session.CreatedAt,
		LastAccessAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sessionID, raw, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
