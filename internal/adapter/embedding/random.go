package embedding

import (
	"math/rand/v2"
	"sync"

	"vecstore/internal/domain"
)

// MaxComponent is the largest value a generated component can take.
const MaxComponent = 8

// RandomEmbedder is a synthetic placeholder embedder. Every component is drawn
// independently and uniformly from [0, MaxComponent]. The text argument is
// ignored: the vectors carry no relationship to any document or query content.
type RandomEmbedder struct {
	dimension int

	mu  sync.Mutex
	rng *rand.Rand // nil means the global source
}

// NewRandomEmbedder creates a RandomEmbedder backed by the global source.
func NewRandomEmbedder(dimension int) *RandomEmbedder {
	return &RandomEmbedder{dimension: dimension}
}

// NewSeededRandomEmbedder creates a RandomEmbedder with a reproducible stream.
func NewSeededRandomEmbedder(dimension int, seed uint64) *RandomEmbedder {
	return &RandomEmbedder{
		dimension: dimension,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (e *RandomEmbedder) Embed(_ string) (domain.Embedding, error) {
	vec := make(domain.Embedding, e.dimension)
	if e.rng == nil {
		for i := range vec {
			vec[i] = uint8(rand.IntN(MaxComponent + 1))
		}
		return vec, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range vec {
		vec[i] = uint8(e.rng.IntN(MaxComponent + 1))
	}
	return vec, nil
}

func (e *RandomEmbedder) Dimension() int {
	return e.dimension
}

// StaticEmbedder returns the same vector for every text.
type StaticEmbedder struct {
	vector domain.Embedding
}

func NewStaticEmbedder(vector domain.Embedding) *StaticEmbedder {
	return &StaticEmbedder{vector: vector.Clone()}
}

func (e *StaticEmbedder) Embed(_ string) (domain.Embedding, error) {
	return e.vector.Clone(), nil
}

func (e *StaticEmbedder) Dimension() int {
	return len(e.vector)
}
