// Package similarity scores embedding vectors against each other.
package similarity

import (
	"math"

	"vecstore/internal/domain"
)

// Cosine calculates the cosine similarity between two vectors.
//
// The dot product runs over the common prefix when lengths differ; each norm
// covers its whole vector. If either norm is zero the similarity is 0.
func Cosine(a, b domain.Embedding) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dotProduct float64
	for i := 0; i < n; i++ {
		dotProduct += float64(a[i]) * float64(b[i])
	}

	normA := Norm(a)
	normB := Norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (normA * normB)
}

// Norm returns the Euclidean length of v.
func Norm(v domain.Embedding) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// CosineWithNorm is Cosine with the query norm precomputed, for scanning many
// vectors against one query.
func CosineWithNorm(query domain.Embedding, queryNorm float64, doc domain.Embedding) float64 {
	if queryNorm == 0 {
		return 0
	}
	n := len(query)
	if len(doc) < n {
		n = len(doc)
	}

	var dotProduct, docSum float64
	for i := 0; i < n; i++ {
		q, d := float64(query[i]), float64(doc[i])
		dotProduct += q * d
		docSum += d * d
	}
	for _, x := range doc[n:] {
		docSum += float64(x) * float64(x)
	}
	if docSum == 0 {
		return 0
	}

	return dotProduct / (queryNorm * math.Sqrt(docSum))
}
