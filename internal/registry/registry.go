// Package registry keeps named collections.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"vecstore/internal/adapter/memstore"
)

var (
	ErrCollectionExists   = errors.New("collection already exists")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrInvalidName        = errors.New("invalid collection name")
)

// Factory builds an empty collection for a name.
type Factory func(name string) *memstore.Collection

type Registry struct {
	mu          sync.RWMutex
	factory     Factory
	collections map[string]*memstore.Collection
}

func New(factory Factory) *Registry {
	return &Registry{
		factory:     factory,
		collections: make(map[string]*memstore.Collection),
	}
}

// Create adds an empty collection under name.
func (r *Registry) Create(name string) (*memstore.Collection, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.collections[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionExists, name)
	}
	c := r.factory(name)
	r.collections[name] = c
	return c, nil
}

func (r *Registry) Get(name string) (*memstore.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	return c, nil
}

func (r *Registry) GetOrCreate(name string) (*memstore.Collection, error) {
	c, err := r.Create(name)
	if errors.Is(err, ErrCollectionExists) {
		return r.Get(name)
	}
	return c, err
}

// Drop removes the collection and releases its embeddings.
func (r *Registry) Drop(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.collections[name]; !ok {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	delete(r.collections, name)
	return nil
}

// List returns the sorted names matching a doublestar pattern. An empty
// pattern matches every collection.
func (r *Registry) List(pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		if pattern != "" {
			matched, err := doublestar.Match(pattern, name)
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.collections)
}
