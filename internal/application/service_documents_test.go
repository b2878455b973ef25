package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mobigesture/jobboard/internal/application"
	"github.com/mobigesture/jobboard/internal/domain"
)

func TestDocumentLifecycle(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	created, err := f.service.CreateDocument(ctx, domain.CollectionBusiness, map[string]any{
		"name": "Acme Plumbing",
		"city": "Austin",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Key == "" || created.Rev == "" {
		t.Fatalf("created document missing meta: %+v", created)
	}

	got, err := f.service.GetDocument(ctx, domain.CollectionBusiness, created.Key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Fields["name"] != "Acme Plumbing" {
		t.Fatalf("get returned wrong document: %+v", got.Fields)
	}

	replaced, err := f.service.ReplaceDocument(ctx, domain.CollectionBusiness, created.Key, map[string]any{
		"name": "Acme Plumbing LLC",
	})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if replaced.Rev == created.Rev {
		t.Fatalf("replace did not rotate revision")
	}
	if _, present := replaced.Fields["city"]; present {
		t.Fatalf("replace kept a field it should have dropped")
	}

	patched, err := f.service.UpdateDocument(ctx, domain.CollectionBusiness, created.Key, map[string]any{
		"city": "Dallas",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if patched.Fields["name"] != "Acme Plumbing LLC" || patched.Fields["city"] != "Dallas" {
		t.Fatalf("update did not merge: %+v", patched.Fields)
	}

	docs, err := f.service.ListDocuments(ctx, domain.CollectionBusiness)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(docs) != 1 || docs[0][domain.FieldKey] != created.Key {
		t.Fatalf("list returned %+v", docs)
	}

	if err := f.service.RemoveDocument(ctx, domain.CollectionBusiness, created.Key); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := f.service.GetDocument(ctx, domain.CollectionBusiness, created.Key); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after remove, got %v", err)
	}
	if err := f.service.RemoveDocument(ctx, domain.CollectionBusiness, created.Key); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}

func TestStaleRevisionConflicts(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	created, err := f.service.CreateDocument(ctx, domain.CollectionJobs, map[string]any{
		"title": "Pipefitter",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := f.service.UpdateDocument(ctx, domain.CollectionJobs, created.Key, map[string]any{
		"title": "Senior Pipefitter",
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	_, err = f.service.ReplaceDocument(ctx, domain.CollectionJobs, created.Key, map[string]any{
		"_rev":  created.Rev,
		"title": "Stale Write",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on stale revision, got %v", err)
	}
}

func TestListCategoryNames(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	for _, name := range []string{"plumbing", "electrical", "plumbing"} {
		if _, err := f.service.CreateDocument(ctx, domain.CollectionCategories, map[string]any{
			"category": name,
		}); err != nil {
			t.Fatalf("create category failed: %v", err)
		}
	}

	names, err := f.service.ListCategoryNames(ctx)
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	want := []application.CategoryName{{Category: "electrical"}, {Category: "plumbing"}}
	if len(names) != len(want) {
		t.Fatalf("got %+v, want %+v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %+v, want %+v", names, want)
		}
	}
}
