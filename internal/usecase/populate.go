package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vecstore/internal/domain"
)

// DocumentInserter adds a document under a fresh identifier.
type DocumentInserter interface {
	Insert(id domain.DocumentID) error
	Len() int
}

// ProgressFunc is called as documents are inserted.
type ProgressFunc func(processed, total int)

// PopulateUseCase fills a collection with synthetic documents.
type PopulateUseCase struct {
	store          DocumentInserter
	logger         *slog.Logger
	reportInterval int
}

// NewPopulateUseCase creates a new populate use case.
func NewPopulateUseCase(store DocumentInserter, logger *slog.Logger) *PopulateUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &PopulateUseCase{
		store:          store,
		logger:         logger,
		reportInterval: 1000,
	}
}

// PopulateResult contains the results of a populate operation.
type PopulateResult struct {
	Inserted int
	Total    int
	IDs      []domain.DocumentID
	Duration time.Duration
}

// Populate inserts n documents, each under a new identifier. keepIDs controls
// whether the generated identifiers are returned.
func (u *PopulateUseCase) Populate(ctx context.Context, n int, keepIDs bool, progress ProgressFunc) (*PopulateResult, error) {
	start := time.Now()
	result := &PopulateResult{}
	if keepIDs {
		result.IDs = make([]domain.DocumentID, 0, n)
	}

	for i := 0; i < n; i++ {
		if i%u.reportInterval == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if progress != nil {
				progress(i, n)
			}
		}

		id := domain.NewDocumentID()
		if err := u.store.Insert(id); err != nil {
			return result, fmt.Errorf("failed to insert document %d: %w", i, err)
		}
		result.Inserted++
		if keepIDs {
			result.IDs = append(result.IDs, id)
		}
	}
	if progress != nil {
		progress(n, n)
	}

	result.Total = u.store.Len()
	result.Duration = time.Since(start)

	u.logger.Info("populate complete",
		"inserted", result.Inserted,
		"total", result.Total,
		"duration", result.Duration)

	return result, nil
}
