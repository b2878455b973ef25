package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mobigesture/jobboard/internal/domain"
	"github.com/mobigesture/jobboard/internal/ports"
)

// DocumentRepository persists schemaless documents in a single JSONB-backed
// table keyed by (collection, key). Revisions implement the optimistic
// concurrency contract: writes carrying a stale _rev fail with ErrConflict.
type DocumentRepository struct {
	db *gorm.DB
}

var _ ports.DocumentRepository = (*DocumentRepository)(nil)

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Save(ctx context.Context, collection string, fields map[string]any) (domain.Document, error) {
	key := extractString(fields, domain.FieldKey)
	if key == "" {
		key = uuid.NewString()
	}

	body, err := marshalBody(fields)
	if err != nil {
		return domain.Document{}, err
	}

	now := time.Now().UTC()
	rec := documentModel{
		Collection: collection,
		Key:        key,
		Rev:        uuid.NewString(),
		Body:       body,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Document{}, fmt.Errorf("%w: %s/%s", domain.ErrDuplicateKey, collection, key)
		}
		return domain.Document{}, err
	}
	return toDomainDocument(rec)
}

func (r *DocumentRepository) Get(ctx context.Context, collection, key string) (domain.Document, error) {
	var rec documentModel
	err := r.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Document{}, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, key)
		}
		return domain.Document{}, err
	}
	return toDomainDocument(rec)
}

func (r *DocumentRepository) List(ctx context.Context, collection string) ([]domain.Document, error) {
	var recs []documentModel
	err := r.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at, key").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Document, 0, len(recs))
	for _, rec := range recs {
		doc, err := toDomainDocument(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *DocumentRepository) Replace(ctx context.Context, collection, key string, fields map[string]any) (domain.Document, error) {
	return r.write(ctx, collection, key, fields, func(_ map[string]any, incoming map[string]any) map[string]any {
		return incoming
	})
}

func (r *DocumentRepository) Update(ctx context.Context, collection, key string, patch map[string]any) (domain.Document, error) {
	return r.write(ctx, collection, key, patch, func(stored map[string]any, incoming map[string]any) map[string]any {
		for k, v := range incoming {
			stored[k] = v
		}
		return stored
	})
}

// write implements replace and merge-update with a shared revision check. The
// guarded UPDATE (rev = old rev) catches writers racing between the read and
// the write without a multi-statement transaction.
func (r *DocumentRepository) write(
	ctx context.Context,
	collection, key string,
	fields map[string]any,
	merge func(stored, incoming map[string]any) map[string]any,
) (domain.Document, error) {
	current, err := r.Get(ctx, collection, key)
	if err != nil {
		return domain.Document{}, err
	}
	if suppliedRev := extractString(fields, domain.FieldRev); suppliedRev != "" && suppliedRev != current.Rev {
		return domain.Document{}, fmt.Errorf("%w: revision mismatch for %s/%s", domain.ErrConflict, collection, key)
	}

	next := merge(current.Fields, fields)
	body, err := marshalBody(next)
	if err != nil {
		return domain.Document{}, err
	}

	now := time.Now().UTC()
	newRev := uuid.NewString()
	res := r.db.WithContext(ctx).
		Model(&documentModel{}).
		Where("collection = ? AND key = ? AND rev = ?", collection, key, current.Rev).
		Updates(map[string]any{
			"rev":        newRev,
			"body":       body,
			"updated_at": now,
		})
	if res.Error != nil {
		return domain.Document{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Document{}, fmt.Errorf("%w: concurrent write on %s/%s", domain.ErrConflict, collection, key)
	}

	return r.Get(ctx, collection, key)
}

func (r *DocumentRepository) Remove(ctx context.Context, collection, key string) error {
	res := r.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		Delete(&documentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, key)
	}
	return nil
}

func (r *DocumentRepository) FirstByField(ctx context.Context, collection, field, value string) (domain.Document, error) {
	var rec documentModel
	err := r.db.WithContext(ctx).
		Where("collection = ? AND body ->> ? = ?", collection, field, value).
		Order("created_at, key").
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Document{}, fmt.Errorf("%w: %s with %s=%s", domain.ErrNotFound, collection, field, value)
		}
		return domain.Document{}, err
	}
	return toDomainDocument(rec)
}

func (r *DocumentRepository) DistinctValues(ctx context.Context, collection, field string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT body ->> ? AS value
		     FROM documents
		     WHERE collection = ? AND body ->> ? IS NOT NULL
		     ORDER BY value`, field, collection, field).
		Scan(&values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

// marshalBody strips the reserved meta fields before serialization so the
// stored body never duplicates the key/rev columns.
func marshalBody(fields map[string]any) (string, error) {
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == domain.FieldKey || k == domain.FieldRev {
			continue
		}
		clean[k] = v
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return "", fmt.Errorf("%w: body is not serializable: %v", domain.ErrInvalidInput, err)
	}
	return string(raw), nil
}

func toDomainDocument(rec documentModel) (domain.Document, error) {
	fields := map[string]any{}
	if rec.Body != "" {
		if err := json.Unmarshal([]byte(rec.Body), &fields); err != nil {
			return domain.Document{}, fmt.Errorf("decode document body %s/%s: %w", rec.Collection, rec.Key, err)
		}
	}
	return domain.Document{
		Collection: rec.Collection,
		Key:        rec.Key,
		Rev:        rec.Rev,
		Fields:     fields,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}, nil
}

func extractString(fields map[string]any, name string) string {
	if raw, ok := fields[name]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
