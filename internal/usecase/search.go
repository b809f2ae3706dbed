package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"vecstore/internal/adapter/similarity"
	"vecstore/internal/domain"
	"vecstore/internal/port"
)

// DefaultParallelThreshold is the store size from which scoring is split
// across workers.
const DefaultParallelThreshold = 4096

// SearchOptions configures a SearchUseCase.
type SearchOptions struct {
	TopN              int
	Workers           int // 0 = runtime.NumCPU()
	ParallelThreshold int // 0 = DefaultParallelThreshold
	Logger            *slog.Logger
}

// SearchUseCase ranks the documents of a store against a query by cosine
// similarity and returns the best TopN.
type SearchUseCase struct {
	store             port.VectorStore
	embedder          port.Embedder
	topN              int
	workers           int
	parallelThreshold int
	logger            *slog.Logger
}

// NewSearchUseCase creates a new search use case.
func NewSearchUseCase(store port.VectorStore, embedder port.Embedder, opts SearchOptions) *SearchUseCase {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	threshold := opts.ParallelThreshold
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchUseCase{
		store:             store,
		embedder:          embedder,
		topN:              opts.TopN,
		workers:           workers,
		parallelThreshold: threshold,
		logger:            logger,
	}
}

// Search embeds queryText and returns the TopN most similar documents.
//
// With the default random embedder the query text does not influence the
// query vector.
func (u *SearchUseCase) Search(ctx context.Context, queryText string) (domain.ResultSet, error) {
	query, err := u.embedder.Embed(queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return u.SearchVector(ctx, query, u.topN)
}

// SearchVector ranks the store against an explicit query vector and returns
// at most k results.
func (u *SearchUseCase) SearchVector(ctx context.Context, query domain.Embedding, k int) (domain.ResultSet, error) {
	start := time.Now()

	scored, err := u.score(ctx, query)
	if err != nil {
		return nil, err
	}

	rank(scored)

	if k < 0 {
		k = 0
	}
	if k > len(scored) {
		k = len(scored)
	}
	results := make(domain.ResultSet, k)
	copy(results, scored[:k])

	u.logger.Debug("search complete",
		"documents", len(scored),
		"results", len(results),
		"duration", time.Since(start))

	return results, nil
}

// score computes the similarity of every stored vector to query.
func (u *SearchUseCase) score(ctx context.Context, query domain.Embedding) ([]domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queryNorm := similarity.Norm(query)

	if u.workers <= 1 || u.store.Len() < u.parallelThreshold {
		scored := make([]domain.Result, 0, u.store.Len())
		u.store.Range(func(id domain.DocumentID, vec domain.Embedding) bool {
			scored = append(scored, domain.Result{
				ID:    id,
				Score: similarity.CosineWithNorm(query, queryNorm, vec),
			})
			return true
		})
		return scored, nil
	}

	items := u.store.Snapshot()
	scored := make([]domain.Result, len(items))

	shard := (len(items) + u.workers - 1) / u.workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(items); lo += shard {
		hi := min(lo+shard, len(items))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				scored[i] = domain.Result{
					ID:    items[i].ID,
					Score: similarity.CosineWithNorm(query, queryNorm, items[i].Vector),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return scored, nil
}

// rank sorts results by descending score. Scores that cannot be ordered
// (NaN) compare as equal; equal scores are ordered by identifier bytes.
func rank(results []domain.Result) {
	slices.SortFunc(results, func(a, b domain.Result) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
}
