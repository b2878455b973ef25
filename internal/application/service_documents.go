package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/mobigesture/jobboard/internal/domain"
)

// The document operations are thin pass-throughs: schema validation happens at
// the route layer and the repository supplies atomicity and error signalling.

func (s *Service) ListDocuments(ctx context.Context, collection string) ([]map[string]any, error) {
	docs, err := s.documents.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.WithMeta())
	}
	return out, nil
}

func (s *Service) CreateDocument(ctx context.Context, collection string, fields map[string]any) (domain.Document, error) {
	if len(fields) == 0 {
		return domain.Document{}, fmt.Errorf("%w: document body is required", domain.ErrInvalidInput)
	}
	return s.documents.Save(ctx, collection, fields)
}

func (s *Service) GetDocument(ctx context.Context, collection, key string) (domain.Document, error) {
	if err := requireKey(key); err != nil {
		return domain.Document{}, err
	}
	return s.documents.Get(ctx, collection, key)
}

func (s *Service) ReplaceDocument(ctx context.Context, collection, key string, fields map[string]any) (domain.Document, error) {
	if err := requireKey(key); err != nil {
		return domain.Document{}, err
	}
	if len(fields) == 0 {
		return domain.Document{}, fmt.Errorf("%w: document body is required", domain.ErrInvalidInput)
	}
	return s.documents.Replace(ctx, collection, key, fields)
}

func (s *Service) UpdateDocument(ctx context.Context, collection, key string, patch map[string]any) (domain.Document, error) {
	if err := requireKey(key); err != nil {
		return domain.Document{}, err
	}
	if len(patch) == 0 {
		return domain.Document{}, fmt.Errorf("%w: patch body is required", domain.ErrInvalidInput)
	}
	return s.documents.Update(ctx, collection, key, patch)
}

func (s *Service) RemoveDocument(ctx context.Context, collection, key string) error {
	if err := requireKey(key); err != nil {
		return err
	}
	return s.documents.Remove(ctx, collection, key)
}

// ListCategoryNames projects the distinct category names, preserving the shape
// the category listing has always returned.
func (s *Service) ListCategoryNames(ctx context.Context) ([]CategoryName, error) {
	values, err := s.documents.DistinctValues(ctx, domain.CollectionCategories, "category")
	if err != nil {
		return nil, err
	}
	out := make([]CategoryName, 0, len(values))
	for _, v := range values {
		out = append(out, CategoryName{Category: v})
	}
	return out, nil
}

func requireKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: document key is required", domain.ErrInvalidInput)
	}
	return nil
}
