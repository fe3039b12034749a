package query

import "strings"

const defaultOrderBy = "ORDER BY transaction_id DESC"

var sortColumns = map[string]string{
	"date":         "date",
	"quantity":     "quantity",
	"customerName": "customer_name",
}

// NormalizeOrder maps anything other than "asc" (case-insensitive) to DESC.
func NormalizeOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		return "ASC"
	}
	return "DESC"
}

// Sort returns the ORDER BY clause. transaction_id DESC is always the last
// key so equal primary values still page deterministically.
func Sort(sortBy, order string) string {
	column, ok := sortColumns[strings.TrimSpace(sortBy)]
	if !ok {
		return defaultOrderBy
	}
	return "ORDER BY " + column + " " + NormalizeOrder(order) + ", transaction_id DESC"
}
