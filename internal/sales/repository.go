package sales

import (
	"context"

	"github.com/fekuna/omnipos-sales-service/internal/model"
	"github.com/fekuna/omnipos-sales-service/internal/sales/query"
)

// Repository is the read-only storage surface of the sales table.
type Repository interface {
	Count(ctx context.Context, where query.Clause) (int64, error)
	Find(ctx context.Context, where query.Clause, orderBy string, page query.Page) ([]model.SalesRecord, error)
	Summarize(ctx context.Context, where query.Clause) (*model.SalesSummary, error)

	// Facets
	DistinctValues(ctx context.Context, column string) ([]string, error)
	AgeBounds(ctx context.Context) (*model.AgeBounds, error)
	SampleTags(ctx context.Context, limit int) ([]string, error)
}
