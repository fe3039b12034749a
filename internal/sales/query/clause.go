// Package query composes the parameterized SQL fragments used to list sales.
//
// Builders take the first free placeholder index and return the next free one,
// so fragments can be concatenated without renumbering: the arguments of the
// combined clause line up one-to-one with $1..$n.
package query

import (
	"fmt"
	"strings"
)

// Clause is a boolean SQL predicate and its positional arguments.
// The zero value is the empty predicate (match all).
type Clause struct {
	SQL  string
	Args []interface{}
}

func (c Clause) IsEmpty() bool {
	return c.SQL == ""
}

// Where renders the clause as a WHERE prefix, or "" when empty.
func (c Clause) Where() string {
	if c.IsEmpty() {
		return ""
	}
	return " WHERE " + c.SQL
}

// And joins non-empty clauses with AND. Callers must have threaded the
// placeholder index through the builders in the same order.
func And(clauses ...Clause) Clause {
	var (
		parts []string
		args  []interface{}
	)
	for _, c := range clauses {
		if c.IsEmpty() {
			continue
		}
		parts = append(parts, c.SQL)
		args = append(args, c.Args...)
	}
	return Clause{SQL: strings.Join(parts, " AND "), Args: args}
}

// binder hands out sequential placeholders starting at next.
type binder struct {
	next int
	args []interface{}
}

func newBinder(start int) *binder {
	if start < 1 {
		start = 1
	}
	return &binder{next: start}
}

func (b *binder) bind(v interface{}) string {
	b.args = append(b.args, v)
	p := fmt.Sprintf("$%d", b.next)
	b.next++
	return p
}
