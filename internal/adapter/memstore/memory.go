package memstore

import (
	"errors"
	"fmt"
	"sync"

	"vecstore/internal/domain"
	"vecstore/internal/port"
)

// ErrDimensionMismatch is returned when a vector does not have the
// collection's dimension.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Collection holds the embeddings of one named set of documents.
//
// Inserting an identifier that is already present replaces its embedding.
type Collection struct {
	mu        sync.RWMutex
	name      string
	dimension int
	generator port.Embedder
	docs      map[domain.DocumentID]domain.Embedding
	gen       uint64
}

// NewCollection creates an empty collection. The generator produces the
// embedding of every document added through Insert.
func NewCollection(name string, dimension int, generator port.Embedder) *Collection {
	return &Collection{
		name:      name,
		dimension: dimension,
		generator: generator,
		docs:      make(map[domain.DocumentID]domain.Embedding),
	}
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) Dimension() int {
	return c.dimension
}

// Insert generates an embedding for id and stores it.
func (c *Collection) Insert(id domain.DocumentID) error {
	vec, err := c.generator.Embed("")
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}
	return c.put(id, vec)
}

// InsertEmbedding stores a copy of vec under id.
func (c *Collection) InsertEmbedding(id domain.DocumentID, vec domain.Embedding) error {
	return c.put(id, vec.Clone())
}

func (c *Collection) put(id domain.DocumentID, vec domain.Embedding) error {
	if len(vec) != c.dimension {
		return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, c.dimension, len(vec))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[id] = vec
	c.gen++
	return nil
}

// Get returns a copy of the embedding stored under id.
func (c *Collection) Get(id domain.DocumentID) (domain.Embedding, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.docs[id]
	return vec.Clone(), ok
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// Range calls fn for every entry until fn returns false. The order is
// unspecified. fn must not insert into the collection.
func (c *Collection) Range(fn func(id domain.DocumentID, vec domain.Embedding) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for id, vec := range c.docs {
		if !fn(id, vec) {
			return
		}
	}
}

func (c *Collection) Snapshot() []port.VectorItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]port.VectorItem, 0, len(c.docs))
	for id, vec := range c.docs {
		items = append(items, port.VectorItem{ID: id, Vector: vec})
	}
	return items
}

func (c *Collection) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *Collection) Stats() domain.Stats {
	return domain.Stats{
		Collection: c.name,
		Documents:  c.Len(),
		Dimension:  c.dimension,
	}
}
