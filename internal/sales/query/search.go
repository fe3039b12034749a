package query

import "strings"

// SearchVector must match the expression of the idx_customer_search GIN index,
// otherwise Postgres falls back to a sequential scan.
const SearchVector = `to_tsvector('english', COALESCE(customer_name, '') || ' ' || COALESCE(phone_number, ''))`

// Search builds the full-text predicate over customer name and phone number.
// Blank text yields the empty clause.
func Search(text string, start int) (Clause, int) {
	b := newBinder(start)
	term := strings.TrimSpace(text)
	if term == "" {
		return Clause{}, b.next
	}

	sql := "(" + SearchVector + " @@ plainto_tsquery('english', " + b.bind(term) + "))"
	return Clause{SQL: sql, Args: b.args}, b.next
}
