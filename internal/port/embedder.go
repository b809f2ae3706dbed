package port

import "vecstore/internal/domain"

// Embedder turns text into an embedding vector.
type Embedder interface {
	// Embed generates the embedding for a single text.
	Embed(text string) (domain.Embedding, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int
}

// VectorStore is the read side of an embedding collection as seen by search.
type VectorStore interface {
	// Range calls fn for every stored entry until fn returns false.
	// Iteration order is unspecified.
	Range(fn func(id domain.DocumentID, vec domain.Embedding) bool)

	// Snapshot returns every stored entry. Vectors are shared with the
	// store and must not be modified.
	Snapshot() []VectorItem

	// Len returns the number of stored entries.
	Len() int

	// Generation increases on every mutation.
	Generation() uint64
}

// VectorItem represents a stored vector.
type VectorItem struct {
	ID     domain.DocumentID
	Vector domain.Embedding
}
