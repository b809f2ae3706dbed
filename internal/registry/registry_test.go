package registry

import (
	"errors"
	"reflect"
	"testing"

	"vecstore/internal/adapter/embedding"
	"vecstore/internal/adapter/memstore"
	"vecstore/internal/domain"
)

func newRegistry() *Registry {
	return New(func(name string) *memstore.Collection {
		return memstore.NewCollection(name, 8, embedding.NewRandomEmbedder(8))
	})
}

func TestCreateAndGet(t *testing.T) {
	r := newRegistry()

	c, err := r.Create("docs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != "docs" {
		t.Errorf("expected name docs, got %s", c.Name())
	}
	if err := c.Insert(domain.NewDocumentID()); err != nil {
		t.Fatal(err)
	}

	got, err := r.Get("docs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("expected the same collection back, got size %d", got.Len())
	}

	if _, err := r.Create("docs"); !errors.Is(err, ErrCollectionExists) {
		t.Errorf("expected ErrCollectionExists, got %v", err)
	}
	if _, err := r.Create(""); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	r := newRegistry()
	if _, err := r.Get("nope"); !errors.Is(err, ErrCollectionNotFound) {
		t.Errorf("expected ErrCollectionNotFound, got %v", err)
	}
	if err := r.Drop("nope"); !errors.Is(err, ErrCollectionNotFound) {
		t.Errorf("expected ErrCollectionNotFound, got %v", err)
	}
}

func TestGetOrCreate(t *testing.T) {
	r := newRegistry()
	a, err := r.GetOrCreate("docs")
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.GetOrCreate("docs")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected GetOrCreate to return the existing collection")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 collection, got %d", r.Len())
	}
}

func TestDrop(t *testing.T) {
	r := newRegistry()
	if _, err := r.Create("docs"); err != nil {
		t.Fatal(err)
	}
	if err := r.Drop("docs"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("docs"); !errors.Is(err, ErrCollectionNotFound) {
		t.Errorf("expected dropped collection to be gone, got %v", err)
	}
}

func TestList(t *testing.T) {
	r := newRegistry()
	for _, name := range []string{"docs-b", "docs-a", "images", "team/docs"} {
		if _, err := r.Create(name); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"", []string{"docs-a", "docs-b", "images", "team/docs"}},
		{"docs-*", []string{"docs-a", "docs-b"}},
		{"**/docs", []string{"team/docs"}},
		{"video*", []string{}},
	}
	for _, tt := range tests {
		got, err := r.List(tt.pattern)
		if err != nil {
			t.Fatalf("pattern %q: unexpected error: %v", tt.pattern, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("pattern %q: expected %v, got %v", tt.pattern, tt.want, got)
		}
	}

	if _, err := r.List("docs-["); err == nil {
		t.Error("expected error for malformed pattern")
	}
}
