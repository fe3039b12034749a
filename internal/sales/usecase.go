package sales

import (
	"context"

	"github.com/fekuna/omnipos-sales-service/internal/sales/dto"
)

type UseCase interface {
	GetSalesPage(ctx context.Context, q *dto.SalesQuery) (*dto.SalesPage, error)
	GetSalesSummary(ctx context.Context, q *dto.SalesQuery) (*dto.SalesSummary, error)
	GetFilterOptions(ctx context.Context) (*dto.FilterOptions, error)
	InvalidateFilterOptions(ctx context.Context)
}
