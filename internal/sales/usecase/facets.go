package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-sales-service/internal/sales/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FilterOptionsKey is the single global cache entry for facet values.
const FilterOptionsKey = "filter_options"

const (
	defaultMinAge = 0
	defaultMaxAge = 100
)

// FallbackTags are always offered, whether or not the bounded sample saw them.
var FallbackTags = []string{
	"organic", "skincare", "portable", "wireless", "gadgets", "unisex",
	"cotton", "formal", "makeup", "beauty", "fragrance-free",
}

// GetFilterOptions returns the cached facet snapshot, recomputing it on a miss.
// Callers sharing one recomputation receive the same value and must treat it
// as read-only.
func (uc *salesUseCase) GetFilterOptions(ctx context.Context) (*dto.FilterOptions, error) {
	if raw, ok := uc.cache.Get(ctx, FilterOptionsKey); ok {
		var opts dto.FilterOptions
		err := json.Unmarshal(raw, &opts)
		if err == nil {
			uc.metrics.ObserveCache(true)
			return &opts, nil
		}
		uc.logCacheMiss("decode", err)
	}

	uc.metrics.ObserveCache(false)

	// Concurrent misses collapse into one recomputation, detached from the
	// cancellation of whichever caller started it.
	flightCtx := context.WithoutCancel(ctx)
	ch := uc.group.DoChan(FilterOptionsKey, func() (interface{}, error) {
		opts, err := uc.aggregate(flightCtx)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(opts)
		if err != nil {
			uc.logCacheMiss("encode", err)
		} else {
			uc.cache.Set(flightCtx, FilterOptionsKey, raw, uc.ttl)
		}
		return opts, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			uc.logger.Error("failed to aggregate filter options", zap.Error(res.Err))
			return nil, res.Err
		}
		if res.Shared {
			uc.logger.Debug("filter options computation shared")
		}
		return res.Val.(*dto.FilterOptions), nil
	}
}

func (uc *salesUseCase) aggregate(ctx context.Context) (*dto.FilterOptions, error) {
	var (
		opts       dto.FilterOptions
		sampleTags []string
	)

	facets := []struct {
		column string
		dst    *[]string
	}{
		{"customer_region", &opts.CustomerRegions},
		{"gender", &opts.Genders},
		{"product_category", &opts.ProductCategories},
		{"payment_method", &opts.PaymentMethods},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range facets {
		g.Go(func() error {
			values, err := uc.repo.DistinctValues(gctx, f.column)
			if err != nil {
				return err
			}
			*f.dst = values
			return nil
		})
	}
	g.Go(func() error {
		bounds, err := uc.repo.AgeBounds(gctx)
		if err != nil {
			return err
		}
		opts.AgeRange = dto.AgeRange{Min: defaultMinAge, Max: defaultMaxAge}
		if bounds.Min.Valid {
			opts.AgeRange.Min = bounds.Min.Int64
		}
		if bounds.Max.Valid {
			opts.AgeRange.Max = bounds.Max.Int64
		}
		return nil
	})
	g.Go(func() error {
		tags, err := uc.repo.SampleTags(gctx, uc.tagSampleLimit)
		if err != nil {
			return err
		}
		sampleTags = tags
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, f := range facets {
		if *f.dst == nil {
			*f.dst = []string{}
		}
	}
	opts.Tags = mergeTags(sampleTags, FallbackTags)
	return &opts, nil
}

// mergeTags trims, de-duplicates and sorts the union of the given lists.
func mergeTags(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, t := range list {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
