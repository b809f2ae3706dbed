package port

import (
	"context"

	"vecstore/internal/domain"
)

type Searcher interface {
	Search(ctx context.Context, query string) (domain.ResultSet, error)
}
