package query

import (
	"strings"
	"time"

	"github.com/fekuna/omnipos-sales-service/internal/sales/dto"
	"github.com/lib/pq"
)

var (
	// MinDate and MaxDate stand in for a missing end of a date range.
	MinDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(2100, 12, 31, 0, 0, 0, 0, time.UTC)
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Filter builds the conjunction of all present filters. Each multi-select
// binds a single array parameter; each tag and each age bucket binds its own.
func Filter(f dto.Filters, start int) (Clause, int) {
	b := newBinder(start)
	var conds []string

	anyOf := func(column string, values []string) {
		if len(values) == 0 {
			return
		}
		conds = append(conds, column+" = ANY("+b.bind(pq.Array(values))+")")
	}

	anyOf("customer_region", f.CustomerRegion)
	anyOf("gender", f.Gender)

	if age := ageCondition(f.Age, b); age != "" {
		conds = append(conds, age)
	}

	anyOf("product_category", f.ProductCategory)

	if len(f.Tags) > 0 {
		tagConds := make([]string, 0, len(f.Tags))
		for _, tag := range f.Tags {
			tagConds = append(tagConds, "tags ILIKE "+b.bind("%"+likeEscaper.Replace(tag)+"%"))
		}
		conds = append(conds, "("+strings.Join(tagConds, " OR ")+")")
	}

	anyOf("payment_method", f.PaymentMethod)

	if f.StartDate != nil || f.EndDate != nil {
		from, to := MinDate, MaxDate
		if f.StartDate != nil {
			from = *f.StartDate
		}
		if f.EndDate != nil {
			to = *f.EndDate
		}
		conds = append(conds, "date >= "+b.bind(from)+" AND date <= "+b.bind(to))
	}

	if len(conds) == 0 {
		return Clause{}, b.next
	}
	return Clause{SQL: strings.Join(conds, " AND "), Args: b.args}, b.next
}

func ageCondition(filter dto.AgeFilter, b *binder) string {
	switch af := filter.(type) {
	case dto.AgeRanges:
		if len(af) == 0 {
			return ""
		}
		parts := make([]string, 0, len(af))
		for _, bucket := range af {
			if bucket.Max == nil {
				parts = append(parts, "age >= "+b.bind(bucket.Min))
				continue
			}
			parts = append(parts, "(age >= "+b.bind(bucket.Min)+" AND age <= "+b.bind(*bucket.Max)+")")
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	case dto.AgeMinMax:
		lo, hi := dto.DefaultMinAge, dto.DefaultMaxAge
		if af.Min != nil {
			lo = *af.Min
		}
		if af.Max != nil {
			hi = *af.Max
		}
		return "age >= " + b.bind(lo) + " AND age <= " + b.bind(hi)
	default:
		return ""
	}
}
