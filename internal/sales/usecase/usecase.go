package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-sales-service/internal/sales"
	"github.com/fekuna/omnipos-sales-service/internal/sales/dto"
	"github.com/fekuna/omnipos-sales-service/internal/sales/query"
	"github.com/fekuna/omnipos-sales-service/pkg/cache"
	"github.com/fekuna/omnipos-sales-service/pkg/logger"
	"github.com/fekuna/omnipos-sales-service/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultFilterOptionsTTL = time.Hour
	DefaultTagSampleLimit   = 10000
)

type Options struct {
	FilterOptionsTTL time.Duration
	TagSampleLimit   int
	Metrics          *metrics.Metrics
}

type salesUseCase struct {
	repo    sales.Repository
	cache   cache.Store
	logger  logger.ZapLogger
	metrics *metrics.Metrics

	ttl            time.Duration
	tagSampleLimit int
	group          singleflight.Group
}

func NewSalesUseCase(repo sales.Repository, store cache.Store, log logger.ZapLogger, opts Options) sales.UseCase {
	if opts.FilterOptionsTTL <= 0 {
		opts.FilterOptionsTTL = DefaultFilterOptionsTTL
	}
	if opts.TagSampleLimit <= 0 {
		opts.TagSampleLimit = DefaultTagSampleLimit
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &salesUseCase{
		repo:           repo,
		cache:          store,
		logger:         log,
		metrics:        opts.Metrics,
		ttl:            opts.FilterOptionsTTL,
		tagSampleLimit: opts.TagSampleLimit,
	}
}

// where builds the combined search and filter predicate. The filter clause
// continues numbering from the first index the search clause left free.
func where(q *dto.SalesQuery) query.Clause {
	search, next := query.Search(q.Search, 1)
	filter, _ := query.Filter(q.Filters, next)
	return query.And(search, filter)
}

func (uc *salesUseCase) GetSalesPage(ctx context.Context, q *dto.SalesQuery) (*dto.SalesPage, error) {
	pred := where(q)

	// 1. Count
	total, err := uc.repo.Count(ctx, pred)
	if err != nil {
		return nil, err
	}

	// 2. Page of rows
	rows, err := uc.repo.Find(ctx, pred, query.Sort(q.SortBy, q.Order), query.Paginate(q.Page, q.PageSize))
	if err != nil {
		return nil, err
	}

	return &dto.SalesPage{
		Data:       dto.NewSalesRecords(rows),
		Pagination: query.Meta(total, q.Page, q.PageSize),
	}, nil
}

func (uc *salesUseCase) GetSalesSummary(ctx context.Context, q *dto.SalesQuery) (*dto.SalesSummary, error) {
	s, err := uc.repo.Summarize(ctx, where(q))
	if err != nil {
		return nil, err
	}
	summary := dto.NewSalesSummary(s)
	return &summary, nil
}

func (uc *salesUseCase) InvalidateFilterOptions(ctx context.Context) {
	uc.cache.Delete(ctx, FilterOptionsKey)
	uc.logger.Info("filter options cache invalidated")
}

func (uc *salesUseCase) logCacheMiss(reason string, err error) {
	uc.logger.Warn("filter options cache unusable", zap.String("reason", reason), zap.Error(err))
}
