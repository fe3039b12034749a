package dto

import (
	"strconv"
	"strings"
	"time"
)

// SalesQuery is everything a caller can ask of the sales listing.
type SalesQuery struct {
	Search   string
	Filters  Filters
	SortBy   string // date, quantity, customerName
	Order    string // asc, desc
	Page     int    // 1-based
	PageSize int
}

// Filters is a conjunctive filter set. Empty slices and nil pointers mean
// "not filtered".
type Filters struct {
	CustomerRegion  []string
	Gender          []string
	Age             AgeFilter // nil means no age filter
	ProductCategory []string
	Tags            []string // substring match, any-of
	PaymentMethod   []string
	StartDate       *time.Time
	EndDate         *time.Time
}

// AgeFilter is either AgeRanges or AgeMinMax.
type AgeFilter interface {
	isAgeFilter()
}

// AgeRanges selects the union of the given buckets.
type AgeRanges []AgeBucket

// AgeMinMax is the legacy inclusive min/max form. A nil bound is open and
// defaults to DefaultMinAge / DefaultMaxAge when the clause is built.
type AgeMinMax struct {
	Min *int
	Max *int
}

func (AgeRanges) isAgeFilter() {}
func (AgeMinMax) isAgeFilter() {}

const (
	DefaultMinAge = 0
	DefaultMaxAge = 150
)

// AgeBucket is a closed interval [Min, Max]; Max is nil for open-ended buckets like "66+".
type AgeBucket struct {
	Min int
	Max *int
}

// ParseAgeBucket accepts "lo-hi" and "lo+" labels.
func ParseAgeBucket(label string) (AgeBucket, bool) {
	label = strings.TrimSpace(label)
	if strings.HasSuffix(label, "+") {
		lo, err := strconv.Atoi(strings.TrimSuffix(label, "+"))
		if err != nil {
			return AgeBucket{}, false
		}
		return AgeBucket{Min: lo}, true
	}

	loStr, hiStr, ok := strings.Cut(label, "-")
	if !ok {
		return AgeBucket{}, false
	}
	lo, err := strconv.Atoi(strings.TrimSpace(loStr))
	if err != nil {
		return AgeBucket{}, false
	}
	hi, err := strconv.Atoi(strings.TrimSpace(hiStr))
	if err != nil || hi < lo {
		return AgeBucket{}, false
	}
	return AgeBucket{Min: lo, Max: &hi}, true
}
