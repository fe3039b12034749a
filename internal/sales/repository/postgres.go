package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-sales-service/internal/model"
	"github.com/fekuna/omnipos-sales-service/internal/sales/query"
	"github.com/fekuna/omnipos-sales-service/pkg/logger"
	"github.com/fekuna/omnipos-sales-service/pkg/metrics"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const table = "sales"

// ErrUnknownFacetColumn is returned when a facet is requested on a column
// that is not a filterable field.
var ErrUnknownFacetColumn = errors.New("unknown facet column")

var facetColumns = map[string]bool{
	"customer_region":  true,
	"gender":           true,
	"product_category": true,
	"payment_method":   true,
}

var selectColumns = strings.Join(model.SalesColumns, ", ")

type PGRepository struct {
	DB      *sqlx.DB
	logger  logger.ZapLogger
	metrics *metrics.Metrics
}

func NewPGRepository(db *sqlx.DB, log logger.ZapLogger) *PGRepository {
	if log == nil {
		log = logger.NewNop()
	}
	return &PGRepository{DB: db, logger: log}
}

// WithMetrics records query durations into m.
func (r *PGRepository) WithMetrics(m *metrics.Metrics) *PGRepository {
	r.metrics = m
	return r
}

func (r *PGRepository) Count(ctx context.Context, where query.Clause) (int64, error) {
	var count int64
	q := "SELECT COUNT(*) FROM " + table + where.Where()

	start := time.Now()
	if err := r.DB.GetContext(ctx, &count, q, where.Args...); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	r.logQuery("count", q, start, 1)
	return count, nil
}

func (r *PGRepository) Find(ctx context.Context, where query.Clause, orderBy string, page query.Page) ([]model.SalesRecord, error) {
	q := fmt.Sprintf("SELECT %s FROM %s%s %s %s", selectColumns, table, where.Where(), orderBy, page)

	start := time.Now()
	rows := []model.SalesRecord{}
	if err := r.DB.SelectContext(ctx, &rows, q, where.Args...); err != nil {
		return nil, fmt.Errorf("select sales: %w", err)
	}
	r.logQuery("find", q, start, len(rows))
	return rows, nil
}

func (r *PGRepository) Summarize(ctx context.Context, where query.Clause) (*model.SalesSummary, error) {
	q := `SELECT COALESCE(SUM(quantity), 0) AS total_units,
		COALESCE(SUM(total_amount), 0) AS total_amount,
		COALESCE(SUM(total_amount - final_amount), 0) AS total_discount
		FROM ` + table + where.Where()

	var s model.SalesSummary
	start := time.Now()
	if err := r.DB.GetContext(ctx, &s, q, where.Args...); err != nil {
		return nil, fmt.Errorf("summarize sales: %w", err)
	}
	r.logQuery("summarize", q, start, 1)
	return &s, nil
}

func (r *PGRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !facetColumns[column] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFacetColumn, column)
	}
	q := fmt.Sprintf("SELECT DISTINCT %[1]s FROM %[2]s WHERE %[1]s IS NOT NULL ORDER BY %[1]s", column, table)

	start := time.Now()
	values := []string{}
	if err := r.DB.SelectContext(ctx, &values, q); err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	r.logQuery("distinct", q, start, len(values))
	return values, nil
}

func (r *PGRepository) AgeBounds(ctx context.Context) (*model.AgeBounds, error) {
	q := "SELECT MIN(age) AS min_age, MAX(age) AS max_age FROM " + table

	var b model.AgeBounds
	start := time.Now()
	if err := r.DB.GetContext(ctx, &b, q); err != nil {
		return nil, fmt.Errorf("age bounds: %w", err)
	}
	r.logQuery("age_bounds", q, start, 1)
	return &b, nil
}

// SampleTags explodes the comma-joined tags column but stops after limit
// distinct values instead of scanning the whole table.
func (r *PGRepository) SampleTags(ctx context.Context, limit int) ([]string, error) {
	q := `SELECT DISTINCT unnest(string_to_array(tags, ',')) AS tag
		FROM ` + table + `
		WHERE tags IS NOT NULL
		LIMIT $1`

	start := time.Now()
	tags := []string{}
	if err := r.DB.SelectContext(ctx, &tags, q, limit); err != nil {
		return nil, fmt.Errorf("sample tags: %w", err)
	}
	r.logQuery("sample_tags", q, start, len(tags))
	return tags, nil
}

// IndexNames lists the indexes defined on the sales table.
func (r *PGRepository) IndexNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := r.DB.SelectContext(ctx, &names,
		"SELECT indexname FROM pg_indexes WHERE tablename = $1 ORDER BY indexname", table)
	if err != nil {
		return nil, fmt.Errorf("list indexes: %w", err)
	}
	return names, nil
}

func (r *PGRepository) logQuery(op, q string, start time.Time, rows int) {
	elapsed := time.Since(start)
	r.metrics.ObserveQuery(op, elapsed)
	r.logger.Debug("executed query",
		zap.String("op", op),
		zap.String("sql", q),
		zap.Duration("duration", elapsed),
		zap.Int("rows", rows),
	)
}
