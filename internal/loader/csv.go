package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-sales-service/internal/model"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyFile     = errors.New("csv file is empty")
	ErrMissingHeader = errors.New("csv header row is missing")
	ErrNoKnownColumn = errors.New("csv header has no sales columns")
)

// headerAliases maps each table column to the display header used by the
// sales export. The snake_case column name is accepted as well.
var headerAliases = map[string]string{
	"transaction_id":      "Transaction ID",
	"customer_id":         "Customer ID",
	"customer_name":       "Customer Name",
	"phone_number":        "Phone Number",
	"gender":              "Gender",
	"age":                 "Age",
	"customer_region":     "Customer Region",
	"customer_type":       "Customer Type",
	"product_id":          "Product ID",
	"product_name":        "Product Name",
	"brand":               "Brand",
	"product_category":    "Product Category",
	"tags":                "Tags",
	"quantity":            "Quantity",
	"price_per_unit":      "Price per Unit",
	"discount_percentage": "Discount Percentage",
	"total_amount":        "Total Amount",
	"final_amount":        "Final Amount",
	"date":                "Date",
	"payment_method":      "Payment Method",
	"order_status":        "Order Status",
	"delivery_type":       "Delivery Type",
	"store_id":            "Store ID",
	"store_location":      "Store Location",
	"salesperson_id":      "Salesperson ID",
	"employee_name":       "Employee Name",
}

// Reader streams SalesLoad records out of a headered CSV file.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
	line    int
}

func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	// UTF-8 BOM
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	rd := &Reader{csv: cr, columns: mapHeader(header), line: 1}
	if len(rd.columns) == 0 {
		return nil, ErrNoKnownColumn
	}
	return rd, nil
}

func mapHeader(header []string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	columns := make(map[string]int)
	for column, display := range headerAliases {
		if i, ok := byName[strings.ToLower(display)]; ok {
			columns[column] = i
		} else if i, ok := byName[column]; ok {
			columns[column] = i
		}
	}
	return columns
}

// Read returns the next record, or io.EOF when the input is exhausted.
func (r *Reader) Read() (*model.SalesLoad, error) {
	row, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	r.line++

	get := func(column string) string {
		i, ok := r.columns[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return &model.SalesLoad{
		TransactionID:      int64(atoi(get("transaction_id"))),
		CustomerID:         get("customer_id"),
		CustomerName:       get("customer_name"),
		PhoneNumber:        get("phone_number"),
		Gender:             get("gender"),
		Age:                atoi(get("age")),
		CustomerRegion:     get("customer_region"),
		CustomerType:       get("customer_type"),
		ProductID:          get("product_id"),
		ProductName:        get("product_name"),
		Brand:              get("brand"),
		ProductCategory:    get("product_category"),
		Tags:               get("tags"),
		Quantity:           atoi(get("quantity")),
		PricePerUnit:       dec(get("price_per_unit")),
		DiscountPercentage: dec(get("discount_percentage")),
		TotalAmount:        dec(get("total_amount")),
		FinalAmount:        dec(get("final_amount")),
		Date:               parseDate(get("date")),
		PaymentMethod:      get("payment_method"),
		OrderStatus:        get("order_status"),
		DeliveryType:       get("delivery_type"),
		StoreID:            get("store_id"),
		StoreLocation:      get("store_location"),
		SalespersonID:      get("salesperson_id"),
		EmployeeName:       get("employee_name"),
	}, nil
}

// atoi reads the leading integer of s, 0 when there is none ("42.9" is 42).
func atoi(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

func parseDate(s string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}
