package domain

import "github.com/google/uuid"

// DocumentID identifies a document within a collection. IDs are generated
// fresh (UUID v4) at insertion time and carry no ordering semantics.
type DocumentID = uuid.UUID

// NewDocumentID returns a fresh random identifier.
func NewDocumentID() DocumentID {
	return uuid.New()
}

// Embedding is a fixed-length vector of small non-negative components.
type Embedding []uint8

// Clone returns a copy that does not share memory with e.
func (e Embedding) Clone() Embedding {
	if e == nil {
		return nil
	}
	out := make(Embedding, len(e))
	copy(out, e)
	return out
}

// Result is a single scored search hit.
type Result struct {
	ID    DocumentID `json:"id"`
	Score float64    `json:"score"`
}

// ResultSet is ordered by descending score.
type ResultSet []Result

type Stats struct {
	Collection string
	Documents  int
	Dimension  int
}
