package ports

import (
	"context"

	"github.com/mobigesture/jobboard/internal/domain"
)

// DocumentRepository defines per-document atomic persistence over named collections.
// Absence is always signalled with domain.ErrNotFound, duplicate keys with
// domain.ErrDuplicateKey, and revision mismatches with domain.ErrConflict so the
// HTTP adapter can translate them uniformly.
type DocumentRepository interface {
	// Save stores a new document. A caller-supplied _key in fields is honored;
	// otherwise a key is assigned.
	Save(ctx context.Context, collection string, fields map[string]any) (domain.Document, error)
	Get(ctx context.Context, collection, key string) (domain.Document, error)
	List(ctx context.Context, collection string) ([]domain.Document, error)
	// Replace swaps the whole body. A _rev in fields, when present, must match
	// the stored revision.
	Replace(ctx context.Context, collection, key string, fields map[string]any) (domain.Document, error)
	// Update merges patch into the stored body, same _rev rules as Replace.
	Update(ctx context.Context, collection, key string, patch map[string]any) (domain.Document, error)
	Remove(ctx context.Context, collection, key string) error
	// FirstByField returns the oldest document whose body field equals value,
	// so duplicates resolve to the first-created record.
	FirstByField(ctx context.Context, collection, field, value string) (domain.Document, error)
	// DistinctValues projects the distinct non-empty values of a body field.
	DistinctValues(ctx context.Context, collection, field string) ([]string, error)
}

// SessionStore manages TTL-bound sessions. Expired entries are pruned by the
// backing store and surface as domain.ErrNotFound.
type SessionStore interface {
	Create(ctx context.Context, uid string) (domain.Session, error)
	Get(ctx context.Context, sessionID string) (domain.Session, error)
	// Touch refreshes the TTL and last-access timestamp of a live session.
	Touch(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
}
