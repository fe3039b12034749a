package query

import (
	"fmt"

	"github.com/fekuna/omnipos-sales-service/internal/sales/dto"
)

type Page struct {
	Limit  int
	Offset int
}

// Paginate converts a 1-based page into LIMIT/OFFSET. page must already be >= 1.
func Paginate(page, pageSize int) Page {
	return Page{Limit: pageSize, Offset: (page - 1) * pageSize}
}

func (p Page) String() string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", p.Limit, p.Offset)
}

// Meta derives navigation flags from the total count alone.
func Meta(totalRecords int64, page, pageSize int) dto.PaginationMeta {
	var totalPages int64
	if pageSize > 0 {
		size := int64(pageSize)
		totalPages = (totalRecords + size - 1) / size
	}
	return dto.PaginationMeta{
		CurrentPage:     page,
		PageSize:        pageSize,
		TotalRecords:    totalRecords,
		TotalPages:      totalPages,
		HasNextPage:     int64(page) < totalPages,
		HasPreviousPage: page > 1,
	}
}
