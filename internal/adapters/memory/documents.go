// Package memory provides in-process implementations of the storage ports.
// They mirror the Postgres/Redis adapters' error contracts and back the unit
// and HTTP test suites.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mobigesture/jobboard/internal/domain"
	"github.com/mobigesture/jobboard/internal/ports"
)

type storedDocument struct {
	rev       string
	fields    map[string]any
	createdAt time.Time
	updatedAt time.Time
	seq       int
}

// DocumentStore is a map-backed DocumentRepository with the same not-found,
// duplicate-key and revision-conflict behavior as the Postgres adapter.
type DocumentStore struct {
	mu      sync.Mutex
	data    map[string]map[string]*storedDocument
	nextSeq int
}

var _ ports.DocumentRepository = (*DocumentStore)(nil)

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{data: map[string]map[string]*storedDocument{}}
}

func (s *DocumentStore) Save(_ context.Context, collection string, fields map[string]any) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, _ := fields[domain.FieldKey].(string)
	if key == "" {
		key = uuid.NewString()
	}
	coll := s.collection(collection)
	if _, exists := coll[key]; exists {
		return domain.Document{}, fmt.Errorf("%w: %s/%s", domain.ErrDuplicateKey, collection, key)
	}

	now := time.Now().UTC()
	s.nextSeq++
	coll[key] = &storedDocument{
		rev:       uuid.NewString(),
		fields:    cleanCopy(fields),
		createdAt: now,
		updatedAt: now,
		seq:       s.nextSeq,
	}
	return s.toDocument(collection, key, coll[key]), nil
}

func (s *DocumentStore) Get(_ context.Context, collection, key string) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collection(collection)[key]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, key)
	}
	return s.toDocument(collection, key, rec), nil
}

func (s *DocumentStore) List(_ context.Context, collection string) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(collection)
	keys := make([]string, 0, len(coll))
	for key := range coll {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return coll[keys[i]].seq < coll[keys[j]].seq })

	out := make([]domain.Document, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.toDocument(collection, key, coll[key]))
	}
	return out, nil
}

func (s *DocumentStore) Replace(_ context.Context, collection, key string, fields map[string]any) (domain.Document, error) {
	return s.write(collection, key, fields, func(_ map[string]any, incoming map[string]any) map[string]any {
		return incoming
	})
}

func (s *DocumentStore) Update(_ context.Context, collection, key string, patch map[string]any) (domain.Document, error) {
	return s.write(collection, key, patch, func(stored map[string]any, incoming map[string]any) map[string]any {
		for k, v := range incoming {
			stored[k] = v
		}
		return stored
	})
}

func (s *DocumentStore) write(
	collection, key string,
	fields map[string]any,
	merge func(stored, incoming map[string]any) map[string]any,
) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collection(collection)[key]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, key)
	}
	if suppliedRev, _ := fields[domain.FieldRev].(string); suppliedRev != "" && suppliedRev != rec.rev {
		return domain.Document{}, fmt.Errorf("%w: revision mismatch for %s/%s", domain.ErrConflict, collection, key)
	}

	rec.fields = merge(copyFields(rec.fields), cleanCopy(fields))
	rec.rev = uuid.NewString()
	rec.updatedAt = time.Now().UTC()
	return s.toDocument(collection, key, rec), nil
}

func (s *DocumentStore) Remove(_ context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(collection)
	if _, ok := coll[key]; !ok {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, key)
	}
	delete(coll, key)
	return nil
}

func (s *DocumentStore) FirstByField(_ context.Context, collection, field, value string) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(collection)
	var bestKey string
	var best *storedDocument
	for key, rec := range coll {
		if fieldValue, _ := rec.fields[field].(string); fieldValue != value {
			continue
		}
		if best == nil || rec.seq < best.seq {
			bestKey, best = key, rec
		}
	}
	if best == nil {
		return domain.Document{}, fmt.Errorf("%w: %s with %s=%s", domain.ErrNotFound, collection, field, value)
	}
	return s.toDocument(collection, bestKey, best), nil
}

func (s *DocumentStore) DistinctValues(_ context.Context, collection, field string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]struct{}{}
	for _, rec := range s.collection(collection) {
		if value, ok := rec.fields[field].(string); ok && value != "" {
			seen[value] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for value := range seen {
		out = append(out, value)
	}
	sort.Strings(out)
	return out, nil
}

func (s *DocumentStore) collection(name string) map[string]*storedDocument {
	coll, ok := s.data[name]
	if !ok {
		coll = map[string]*storedDocument{}
		s.data[name] = coll
	}
	return coll
}

func (s *DocumentStore) toDocument(collection, key string, rec *storedDocument) domain.Document {
	return domain.Document{
		Collection: collection,
		Key:        key,
		Rev:        rec.rev,
		Fields:     copyFields(rec.fields),
		CreatedAt:  rec.createdAt,
		UpdatedAt:  rec.updatedAt,
	}
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// cleanCopy drops the reserved meta fields, matching what the Postgres adapter
// strips before serializing a body.
func cleanCopy(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == domain.FieldKey || k == domain.FieldRev {
			continue
		}
		out[k] = v
	}
	return out
}
