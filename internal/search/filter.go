// Package search assembles parameterized WHERE clauses for the registry search
// endpoints. Column names always come from repository code; request values are
// only ever bound as arguments.
package search

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Op is the comparison a predicate renders to.
type Op int

const (
	// OpEqual renders "col = $n".
	OpEqual Op = iota
	// OpLike renders "col LIKE $n".
	OpLike
	// OpUpperLike renders "UPPER(col) LIKE $n".
	OpUpperLike
)

// Predicate is one "AND <column> <op> $n" term. Value is the bound argument,
// already carrying any LIKE wildcards.
type Predicate struct {
	Column string
	Op     Op
	Value  string
}

func (p Predicate) render(pos int) string {
	switch p.Op {
	case OpLike:
		return fmt.Sprintf(" AND %s LIKE $%d", p.Column, pos)
	case OpUpperLike:
		return fmt.Sprintf(" AND UPPER(%s) LIKE $%d", p.Column, pos)
	default:
		return fmt.Sprintf(" AND %s = $%d", p.Column, pos)
	}
}

// Filter is an ordered list of predicates. Each helper normalizes its value
// and silently skips it when empty, so callers can pass query params straight in.
type Filter struct {
	preds []Predicate
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{}
}

// Contains matches values containing v anywhere, case-insensitively.
func (f *Filter) Contains(col, v string) *Filter {
	if v = Normalize(v); v != "" {
		f.preds = append(f.preds, Predicate{Column: col, Op: OpUpperLike, Value: "%" + v + "%"})
	}
	return f
}

// StartsWith matches values beginning with v, case-insensitively.
func (f *Filter) StartsWith(col, v string) *Filter {
	if v = Normalize(v); v != "" {
		f.preds = append(f.preds, Predicate{Column: col, Op: OpUpperLike, Value: v + "%"})
	}
	return f
}

// Code matches a reference code. A single character selects the whole
// category ("v%"); anything longer is an exact match.
func (f *Filter) Code(col, v string) *Filter {
	v = Normalize(v)
	switch {
	case v == "":
	case utf8.RuneCountInString(v) == 1:
		f.preds = append(f.preds, Predicate{Column: col, Op: OpLike, Value: v + "%"})
	default:
		f.preds = append(f.preds, Predicate{Column: col, Op: OpEqual, Value: v})
	}
	return f
}

// ATC matches a full seven-character ATC code exactly and anything shorter
// as a hierarchy prefix.
func (f *Filter) ATC(col, v string) *Filter {
	v = Normalize(v)
	switch {
	case v == "":
	case utf8.RuneCountInString(v) == 7:
		f.preds = append(f.preds, Predicate{Column: col, Op: OpEqual, Value: v})
	default:
		f.preds = append(f.preds, Predicate{Column: col, Op: OpLike, Value: v + "%"})
	}
	return f
}

// Equal matches v exactly.
func (f *Filter) Equal(col, v string) *Filter {
	if v = Normalize(v); v != "" {
		f.preds = append(f.preds, Predicate{Column: col, Op: OpEqual, Value: v})
	}
	return f
}

// EqualID matches an identifier exactly. Only surrounding space is trimmed;
// keys are compared as stored.
func (f *Filter) EqualID(col, v string) *Filter {
	if v = strings.TrimSpace(v); v != "" {
		f.preds = append(f.preds, Predicate{Column: col, Op: OpEqual, Value: v})
	}
	return f
}

// Len is the number of predicates collected so far.
func (f *Filter) Len() int {
	return len(f.preds)
}

// Predicates returns a copy of the collected predicates in order.
func (f *Filter) Predicates() []Predicate {
	out := make([]Predicate, len(f.preds))
	copy(out, f.preds)
	return out
}

// Compile renders the predicates with placeholders numbered from start and
// returns the clause together with its arguments in placeholder order.
func (f *Filter) Compile(start int) (string, []interface{}) {
	var sb strings.Builder
	args := make([]interface{}, 0, len(f.preds))
	for i, p := range f.preds {
		sb.WriteString(p.render(start + i))
		args = append(args, p.Value)
	}
	return sb.String(), args
}
