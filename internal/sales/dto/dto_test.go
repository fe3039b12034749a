package dto

import (
	"database/sql"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/fekuna/omnipos-sales-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestParseAgeBucket(t *testing.T) {
	tests := []struct {
		label    string
		expected AgeBucket
		ok       bool
	}{
		{"18-25", AgeBucket{Min: 18, Max: intPtr(25)}, true},
		{" 26 - 35 ", AgeBucket{Min: 26, Max: intPtr(35)}, true},
		{"66+", AgeBucket{Min: 66}, true},
		{"66", AgeBucket{}, false},
		{"abc-10", AgeBucket{}, false},
		{"30-20", AgeBucket{}, false},
		{"x+", AgeBucket{}, false},
		{"", AgeBucket{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			b, ok := ParseAgeBucket(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, b)
		})
	}
}

func TestParseSalesQuery_Defaults(t *testing.T) {
	q := ParseSalesQuery(url.Values{})

	assert.Equal(t, "", q.Search)
	assert.Equal(t, "date", q.SortBy)
	assert.Equal(t, "desc", q.Order)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)
	assert.Nil(t, q.Filters.Age)
	assert.Empty(t, q.Filters.CustomerRegion)
	assert.Nil(t, q.Filters.StartDate)
}

func TestParseSalesQuery_ClampsPaging(t *testing.T) {
	q := ParseSalesQuery(url.Values{"page": {"0"}, "pageSize": {"5000"}})
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, MaxPageSize, q.PageSize)

	q = ParseSalesQuery(url.Values{"page": {"abc"}, "pageSize": {"-3"}})
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)
}

func TestParseSalesQuery_HugePageKeepsOffsetPositive(t *testing.T) {
	for _, size := range []string{"10", "100", "5000"} {
		q := ParseSalesQuery(url.Values{"page": {"9223372036854775807"}, "pageSize": {size}})
		assert.Equal(t, MaxPage, q.Page)
		assert.GreaterOrEqual(t, (q.Page-1)*q.PageSize, 0, "pageSize=%s", size)
	}
}

func TestParseFilters_MultiValues(t *testing.T) {
	f := ParseFilters(url.Values{
		"customerRegion": {"North,South", "East"},
		"gender":         {" Male , "},
		"tags":           {"organic,,wireless"},
	})

	assert.Equal(t, []string{"North", "South", "East"}, f.CustomerRegion)
	assert.Equal(t, []string{"Male"}, f.Gender)
	assert.Equal(t, []string{"organic", "wireless"}, f.Tags)
	assert.Nil(t, f.PaymentMethod)
}

func TestParseFilters_AgeRangesTakePrecedence(t *testing.T) {
	f := ParseFilters(url.Values{
		"ageRanges": {"18-25,66+"},
		"minAge":    {"30"},
		"maxAge":    {"40"},
	})

	ranges, ok := f.Age.(AgeRanges)
	require.True(t, ok, "expected AgeRanges, got %T", f.Age)
	assert.Equal(t, AgeRanges{{Min: 18, Max: intPtr(25)}, {Min: 66}}, ranges)
}

func TestParseFilters_InvalidBucketsDropped(t *testing.T) {
	f := ParseFilters(url.Values{"ageRanges": {"old,young"}})
	assert.Nil(t, f.Age)
}

func TestParseFilters_MinMax(t *testing.T) {
	t.Run("both bounds", func(t *testing.T) {
		f := ParseFilters(url.Values{"minAge": {"30"}, "maxAge": {"40"}})
		assert.Equal(t, AgeMinMax{Min: intPtr(30), Max: intPtr(40)}, f.Age)
	})

	t.Run("only max", func(t *testing.T) {
		f := ParseFilters(url.Values{"maxAge": {"40"}})
		assert.Equal(t, AgeMinMax{Max: intPtr(40)}, f.Age)
	})

	t.Run("non-numeric coerces to zero", func(t *testing.T) {
		f := ParseFilters(url.Values{"minAge": {"abc"}})
		assert.Equal(t, AgeMinMax{Min: intPtr(0)}, f.Age)
	})
}

func TestParseFilters_Dates(t *testing.T) {
	f := ParseFilters(url.Values{"startDate": {"2023-01-15"}, "endDate": {"15/01/2023"}})

	require.NotNil(t, f.StartDate)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), *f.StartDate)
	assert.Nil(t, f.EndDate, "malformed dates are treated as absent")
}

func TestNewSalesRecord_PreservesNull(t *testing.T) {
	m := &model.SalesRecord{
		TransactionID: 42,
		CustomerName:  sql.NullString{String: "Neha Yadav", Valid: true},
		Age:           sql.NullInt64{Int64: 25, Valid: true},
		Quantity:      sql.NullInt64{},
		PricePerUnit:  decimal.NullDecimal{Decimal: decimal.RequireFromString("199.50"), Valid: true},
		FinalAmount:   decimal.NullDecimal{},
		Date:          sql.NullTime{Time: time.Date(2023, 3, 9, 0, 0, 0, 0, time.UTC), Valid: true},
	}

	r := NewSalesRecord(m)

	assert.Equal(t, int64(42), r.TransactionID)
	require.NotNil(t, r.CustomerName)
	assert.Equal(t, "Neha Yadav", *r.CustomerName)
	require.NotNil(t, r.Age)
	assert.Equal(t, int64(25), *r.Age)
	assert.Nil(t, r.Quantity, "NULL must not become zero")
	require.NotNil(t, r.PricePerUnit)
	assert.InDelta(t, 199.5, *r.PricePerUnit, 1e-9)
	assert.Nil(t, r.FinalAmount)
	assert.Nil(t, r.PhoneNumber)
	require.NotNil(t, r.Date)
	assert.Equal(t, "2023-03-09", *r.Date)
}

func TestNewSalesRecord_JSONShape(t *testing.T) {
	r := NewSalesRecord(&model.SalesRecord{
		TransactionID: 1,
		TotalAmount:   decimal.NullDecimal{Decimal: decimal.NewFromInt(100), Valid: true},
	})

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, float64(1), out["transactionId"])
	assert.Equal(t, float64(100), out["totalAmount"])
	assert.Contains(t, out, "finalAmount")
	assert.Nil(t, out["finalAmount"])
	assert.NotContains(t, out, "total_amount")
}

func TestNewSalesRecords_EmptyIsNonNil(t *testing.T) {
	out := NewSalesRecords(nil)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestNewSalesSummary(t *testing.T) {
	s := NewSalesSummary(&model.SalesSummary{
		TotalUnits:    12,
		TotalAmount:   decimal.RequireFromString("1500.25"),
		TotalDiscount: decimal.RequireFromString("100.75"),
	})
	assert.Equal(t, int64(12), s.TotalUnits)
	assert.InDelta(t, 1500.25, s.TotalAmount, 1e-9)
	assert.InDelta(t, 100.75, s.TotalDiscount, 1e-9)
}
