// Package query compiles plastic search criteria into parameterized SQL predicates.
package query

import (
	"fmt"
	"strings"
)

// Op is a comparison operator of a predicate.
type Op string

const (
	OpILike Op = "ILIKE"
	OpEq    Op = "="
	OpGte   Op = ">="
	OpLte   Op = "<="
)

// Valid reports whether op is one of the operators above.
func (op Op) Valid() bool {
	switch op {
	case OpILike, OpEq, OpGte, OpLte:
		return true
	}
	return false
}

// Column is a filterable column of warehouse_plastics. Only the constants
// below are ever rendered into SQL text.
type Column string

const (
	ColArticle   Column = "article"
	ColMaterial  Column = "material"
	ColColor     Column = "color"
	ColWarehouse Column = "warehouse"
	ColThickness Column = "thickness"
)

// Valid reports whether col is one of the columns above.
func (col Column) Valid() bool {
	switch col {
	case ColArticle, ColMaterial, ColColor, ColWarehouse, ColThickness:
		return true
	}
	return false
}

// Predicate is a single comparison of a column against placeholder $Index.
type Predicate struct {
	Column Column
	Op     Op
	Index  int
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s %s $%d", p.Column, p.Op, p.Index)
}

// Compiled is a conjunction of predicates with its positional arguments.
// Args[i] binds placeholder $(i+1).
type Compiled struct {
	Predicates []Predicate
	Args       []any
}

// Empty reports whether the predicate matches every row.
func (c Compiled) Empty() bool { return len(c.Predicates) == 0 }

// Where renders the WHERE clause with a leading space, or "" when empty.
func (c Compiled) Where() string {
	if c.Empty() {
		return ""
	}
	parts := make([]string, len(c.Predicates))
	for i, p := range c.Predicates {
		parts[i] = p.String()
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

// Builder accumulates predicates and arguments. The placeholder index is
// taken from the argument count at append time, so indices and args can
// not drift apart.
type Builder struct {
	preds []Predicate
	args  []any
}

// Add appends "column op $n" bound to value. It panics on a column or
// operator outside the known set, since either would be spliced into SQL.
func (b *Builder) Add(col Column, op Op, value any) *Builder {
	if !col.Valid() {
		panic(fmt.Sprintf("query: unknown column %q", string(col)))
	}
	if !op.Valid() {
		panic(fmt.Sprintf("query: unknown operator %q", string(op)))
	}
	b.args = append(b.args, value)
	b.preds = append(b.preds, Predicate{Column: col, Op: op, Index: len(b.args)})
	return b
}

// Contains appends a case-insensitive substring match. Blank values are skipped.
func (b *Builder) Contains(col Column, value string) *Builder {
	if strings.TrimSpace(value) == "" {
		return b
	}
	return b.Add(col, OpILike, "%"+value+"%")
}

// Build returns the compiled predicate. The builder may keep being used;
// the result does not share storage with it.
func (b *Builder) Build() Compiled {
	c := Compiled{
		Predicates: make([]Predicate, len(b.preds)),
		Args:       make([]any, len(b.args)),
	}
	copy(c.Predicates, b.preds)
	copy(c.Args, b.args)
	return c
}
