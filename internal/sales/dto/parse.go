package dto

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	DefaultSortBy   = "date"
	DefaultOrder    = "desc"
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*pageSize within int for any accepted page size.
	MaxPage = math.MaxInt / MaxPageSize
)

// ParseSalesQuery reads the listing parameters from a query string.
//
// Multi-valued keys accept repeated keys and comma-joined values. ageRanges
// wins over minAge/maxAge. Malformed input never fails the request: a
// non-numeric min/max age becomes 0, an unparsable date or bucket label is
// dropped, and page/pageSize are clamped.
func ParseSalesQuery(values url.Values) SalesQuery {
	q := SalesQuery{
		Search:   values.Get("search"),
		SortBy:   firstOr(values, "sortBy", DefaultSortBy),
		Order:    firstOr(values, "order", DefaultOrder),
		Page:     atoiOr(values.Get("page"), DefaultPage),
		PageSize: atoiOr(values.Get("pageSize"), DefaultPageSize),
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	q.Filters = ParseFilters(values)
	return q
}

func ParseFilters(values url.Values) Filters {
	f := Filters{
		CustomerRegion:  multi(values, "customerRegion"),
		Gender:          multi(values, "gender"),
		ProductCategory: multi(values, "productCategory"),
		Tags:            multi(values, "tags"),
		PaymentMethod:   multi(values, "paymentMethod"),
		StartDate:       date(values.Get("startDate")),
		EndDate:         date(values.Get("endDate")),
	}

	if labels := multi(values, "ageRanges"); len(labels) > 0 {
		buckets := make(AgeRanges, 0, len(labels))
		for _, l := range labels {
			if b, ok := ParseAgeBucket(l); ok {
				buckets = append(buckets, b)
			}
		}
		if len(buckets) > 0 {
			f.Age = buckets
		}
	} else {
		minAge := strings.TrimSpace(values.Get("minAge"))
		maxAge := strings.TrimSpace(values.Get("maxAge"))
		if minAge != "" || maxAge != "" {
			var mm AgeMinMax
			if minAge != "" {
				v := atoiOr(minAge, 0)
				mm.Min = &v
			}
			if maxAge != "" {
				v := atoiOr(maxAge, 0)
				mm.Max = &v
			}
			f.Age = mm
		}
	}

	return f
}

func multi(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func firstOr(values url.Values, key, fallback string) string {
	if v := strings.TrimSpace(values.Get(key)); v != "" {
		return v
	}
	return fallback
}

func atoiOr(s string, fallback int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return i
}

func date(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
