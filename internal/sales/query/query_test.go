package query

import (
	"regexp"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/fekuna/omnipos-sales-service/internal/sales/dto"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// placeholders returns the placeholder numbers in order of appearance.
func placeholders(sql string) []int {
	var out []int
	for _, m := range placeholderRe.FindAllStringSubmatch(sql, -1) {
		n, _ := strconv.Atoi(m[1])
		out = append(out, n)
	}
	return out
}

func assertContiguous(t *testing.T, c Clause, start, next int) {
	t.Helper()
	nums := placeholders(c.SQL)
	require.Len(t, c.Args, len(nums), "args must match placeholders in %q", c.SQL)
	sorted := append([]int(nil), nums...)
	sort.Ints(sorted)
	for i, n := range sorted {
		assert.Equal(t, start+i, n, "placeholders must be contiguous from %d in %q", start, c.SQL)
	}
	assert.Equal(t, start+len(nums), next)
}

func intPtr(i int) *int { return &i }

func dateOf(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestSearch(t *testing.T) {
	t.Run("blank text yields no predicate", func(t *testing.T) {
		for _, text := range []string{"", "   ", "\t\n"} {
			c, next := Search(text, 1)
			assert.True(t, c.IsEmpty())
			assert.Empty(t, c.Args)
			assert.Equal(t, 1, next)
		}
	})

	t.Run("trims and binds the term", func(t *testing.T) {
		c, next := Search("  Neha  ", 1)
		assert.Equal(t,
			"(to_tsvector('english', COALESCE(customer_name, '') || ' ' || COALESCE(phone_number, '')) @@ plainto_tsquery('english', $1))",
			c.SQL)
		assert.Equal(t, []interface{}{"Neha"}, c.Args)
		assert.Equal(t, 2, next)
	})

	t.Run("honours the starting index", func(t *testing.T) {
		c, next := Search("x", 4)
		assert.Contains(t, c.SQL, "$4")
		assert.Equal(t, 5, next)
	})
}

func TestFilter_Empty(t *testing.T) {
	c, next := Filter(dto.Filters{
		CustomerRegion: []string{},
		Tags:           nil,
		Age:            dto.AgeRanges{},
	}, 3)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 3, next)
}

func TestFilter_MultiSelectUsesOneArrayParam(t *testing.T) {
	c, next := Filter(dto.Filters{CustomerRegion: []string{"North", "South", "East"}}, 1)

	assert.Equal(t, "customer_region = ANY($1)", c.SQL)
	require.Len(t, c.Args, 1)
	assert.Equal(t, pq.Array([]string{"North", "South", "East"}), c.Args[0])
	assert.Equal(t, 2, next)
}

func TestFilter_AgeRanges(t *testing.T) {
	c, _ := Filter(dto.Filters{Age: dto.AgeRanges{
		{Min: 18, Max: intPtr(25)},
		{Min: 66},
	}}, 1)

	assert.Equal(t, "((age >= $1 AND age <= $2) OR age >= $3)", c.SQL)
	assert.Equal(t, []interface{}{18, 25, 66}, c.Args)
}

func TestFilter_AgeMinMaxDefaults(t *testing.T) {
	c, _ := Filter(dto.Filters{Age: dto.AgeMinMax{Max: intPtr(40)}}, 1)
	assert.Equal(t, "age >= $1 AND age <= $2", c.SQL)
	assert.Equal(t, []interface{}{0, 40}, c.Args)

	c, _ = Filter(dto.Filters{Age: dto.AgeMinMax{Min: intPtr(30)}}, 1)
	assert.Equal(t, []interface{}{30, 150}, c.Args)
}

func TestFilter_TagsAreOredSubstrings(t *testing.T) {
	c, _ := Filter(dto.Filters{Tags: []string{"organic", "50%_off"}}, 2)

	assert.Equal(t, "(tags ILIKE $2 OR tags ILIKE $3)", c.SQL)
	assert.Equal(t, []interface{}{"%organic%", `%50\%\_off%`}, c.Args)
}

func TestFilter_DateRangeDefaults(t *testing.T) {
	t.Run("missing end is unbounded future", func(t *testing.T) {
		c, _ := Filter(dto.Filters{StartDate: dateOf("2023-01-01")}, 1)
		assert.Equal(t, "date >= $1 AND date <= $2", c.SQL)
		assert.Equal(t, []interface{}{*dateOf("2023-01-01"), MaxDate}, c.Args)
	})

	t.Run("missing start is unbounded past", func(t *testing.T) {
		c, _ := Filter(dto.Filters{EndDate: dateOf("2023-12-31")}, 1)
		assert.Equal(t, []interface{}{MinDate, *dateOf("2023-12-31")}, c.Args)
	})
}

func TestFilter_FieldOrder(t *testing.T) {
	c, next := Filter(dto.Filters{
		CustomerRegion:  []string{"North"},
		Gender:          []string{"Female"},
		Age:             dto.AgeMinMax{Min: intPtr(20), Max: intPtr(30)},
		ProductCategory: []string{"Beauty"},
		Tags:            []string{"organic"},
		PaymentMethod:   []string{"UPI"},
		StartDate:       dateOf("2023-01-01"),
		EndDate:         dateOf("2023-06-30"),
	}, 2)

	assert.Equal(t,
		"customer_region = ANY($2) AND gender = ANY($3) AND age >= $4 AND age <= $5 AND "+
			"product_category = ANY($6) AND (tags ILIKE $7) AND payment_method = ANY($8) AND "+
			"date >= $9 AND date <= $10",
		c.SQL)
	assert.Equal(t, 11, next)
}

// Every combination of filters, from several starting offsets, must produce
// contiguous placeholders that match the argument list one-to-one.
func TestFilter_PlaceholdersMatchArgs(t *testing.T) {
	type setter func(*dto.Filters)
	fields := []setter{
		func(f *dto.Filters) { f.CustomerRegion = []string{"North", "West"} },
		func(f *dto.Filters) { f.Gender = []string{"Male"} },
		func(f *dto.Filters) { f.Age = dto.AgeRanges{{Min: 18, Max: intPtr(25)}, {Min: 66}, {Min: 36, Max: intPtr(45)}} },
		func(f *dto.Filters) { f.ProductCategory = []string{"Beauty", "Electronics"} },
		func(f *dto.Filters) { f.Tags = []string{"organic", "wireless", "cotton"} },
		func(f *dto.Filters) { f.PaymentMethod = []string{"Cash"} },
		func(f *dto.Filters) { f.StartDate = dateOf("2022-01-01") },
		func(f *dto.Filters) { f.EndDate = dateOf("2022-12-31") },
	}

	for mask := 1; mask < 1<<len(fields); mask++ {
		var f dto.Filters
		for i, set := range fields {
			if mask&(1<<i) != 0 {
				set(&f)
			}
		}
		for _, start := range []int{1, 2, 7} {
			c, next := Filter(f, start)
			require.False(t, c.IsEmpty(), "mask %b", mask)
			assertContiguous(t, c, start, next)
		}
	}
}

func TestAnd_ThreadsSearchAndFilter(t *testing.T) {
	search, next := Search("neha", 1)
	filter, next := Filter(dto.Filters{
		Gender: []string{"Female"},
		Age:    dto.AgeRanges{{Min: 18, Max: intPtr(25)}},
	}, next)
	where := And(search, filter)

	assertContiguous(t, where, 1, next)
	assert.Equal(t, []interface{}{"neha", pq.Array([]string{"Female"}), 18, 25}, where.Args)
	assert.Contains(t, where.SQL, ") AND gender = ANY($2) AND ((age >= $3 AND age <= $4))")
}

func TestAnd_SkipsEmpty(t *testing.T) {
	assert.True(t, And(Clause{}, Clause{}).IsEmpty())
	assert.Equal(t, "", And().Where())

	c := And(Clause{}, Clause{SQL: "a = $1", Args: []interface{}{1}})
	assert.Equal(t, " WHERE a = $1", c.Where())
}

func TestSort(t *testing.T) {
	tests := []struct {
		name     string
		sortBy   string
		order    string
		expected string
	}{
		{"date desc", "date", "desc", "ORDER BY date DESC, transaction_id DESC"},
		{"date asc keeps desc tiebreaker", "date", "asc", "ORDER BY date ASC, transaction_id DESC"},
		{"quantity ASC uppercase", "quantity", "ASC", "ORDER BY quantity ASC, transaction_id DESC"},
		{"customer name", "customerName", "desc", "ORDER BY customer_name DESC, transaction_id DESC"},
		{"invalid order defaults to desc", "quantity", "sideways", "ORDER BY quantity DESC, transaction_id DESC"},
		{"missing order defaults to desc", "date", "", "ORDER BY date DESC, transaction_id DESC"},
		{"unknown key", "price", "asc", "ORDER BY transaction_id DESC"},
		{"empty key", "", "asc", "ORDER BY transaction_id DESC"},
		{"injection attempt", "date; DROP TABLE sales;--", "asc", "ORDER BY transaction_id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sort(tt.sortBy, tt.order))
		})
	}
}

func TestPaginate(t *testing.T) {
	for page := 1; page <= 5; page++ {
		for size := 1; size <= 25; size += 6 {
			p := Paginate(page, size)
			assert.Equal(t, size, p.Limit)
			assert.Equal(t, (page-1)*size, p.Offset)
		}
	}
	assert.Equal(t, "LIMIT 10 OFFSET 20", Paginate(3, 10).String())
}

func TestMeta(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		page     int
		size     int
		expected dto.PaginationMeta
	}{
		{"empty result", 0, 1, 10, dto.PaginationMeta{CurrentPage: 1, PageSize: 10}},
		{"exact multiple", 30, 1, 10, dto.PaginationMeta{CurrentPage: 1, PageSize: 10, TotalRecords: 30, TotalPages: 3, HasNextPage: true}},
		{"partial last page", 31, 4, 10, dto.PaginationMeta{CurrentPage: 4, PageSize: 10, TotalRecords: 31, TotalPages: 4, HasPreviousPage: true}},
		{"middle page", 25, 2, 10, dto.PaginationMeta{CurrentPage: 2, PageSize: 10, TotalRecords: 25, TotalPages: 3, HasNextPage: true, HasPreviousPage: true}},
		{"page beyond end", 5, 3, 10, dto.PaginationMeta{CurrentPage: 3, PageSize: 10, TotalRecords: 5, TotalPages: 1, HasPreviousPage: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Meta(tt.total, tt.page, tt.size))
		})
	}
}

func TestMeta_Properties(t *testing.T) {
	for total := int64(0); total <= 50; total++ {
		for size := 1; size <= 12; size++ {
			for page := 1; page <= 8; page++ {
				m := Meta(total, page, size)
				want := total / int64(size)
				if total%int64(size) != 0 {
					want++
				}
				assert.Equal(t, want, m.TotalPages)
				assert.Equal(t, int64(page) < m.TotalPages, m.HasNextPage)
				assert.Equal(t, page > 1, m.HasPreviousPage)
			}
		}
	}
}
