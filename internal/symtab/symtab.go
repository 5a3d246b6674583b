// Package symtab is the assembler's symbol table: an append-only,
// insertion-ordered list of symbols with the by-name lookup the two
// passes need, and the one allowed mutation (scope promotion from a
// later .global directive).
package symtab

import (
	"errors"
	"fmt"
)

// Scope tags whether a symbol is visible only within this assembly or
// exported for (eventual, out of scope) linking.
type Scope int

const (
	Local Scope = iota
	Global
)

func (s Scope) String() string {
	if s == Global {
		return "GLOBAL"
	}
	return "LOCAL"
}

// Symbol is one entry of the symbol table: a label bound to a section
// and an offset within it, with a scope and its insertion-order index.
type Symbol struct {
	Label   string
	Section string
	Offset  int
	Scope   Scope
	Index   int
}

var (
	ErrDuplicateSymbol = errors.New("symbol already defined")
	ErrUnknownSymbol   = errors.New("undefined symbol")
)

// Table is the ordered + by-name symbol table. The zero value is
// ready to use.
type Table struct {
	order []string
	byName map[string]*Symbol
}

// Insert adds a new symbol at the table's current length (its index)
// and returns it. It is an error to insert a label already present.
func (t *Table) Insert(label, section string, offset int, scope Scope) (*Symbol, error) {
	if t.byName == nil {
		t.byName = make(map[string]*Symbol)
	}
	if _, ok := t.byName[label]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, label)
	}
	sym := &Symbol{
		Label:   label,
		Section: section,
		Offset:  offset,
		Scope:   scope,
		Index:   len(t.order),
	}
	t.order = append(t.order, label)
	t.byName[label] = sym
	return sym, nil
}

// Lookup returns the symbol bound to label, if any.
func (t *Table) Lookup(label string) (*Symbol, bool) {
	sym, ok := t.byName[label]
	return sym, ok
}

// PromoteScope marks an already-inserted symbol as Global, the one
// mutation a .global directive referring to an earlier label performs.
func (t *Table) PromoteScope(label string) error {
	sym, ok := t.byName[label]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, label)
	}
	sym.Scope = Global
	return nil
}

// Len returns the number of symbols currently in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// InOrder returns every symbol in insertion order, the order the
// report writer's symbol-table section prints them in.
func (t *Table) InOrder() []*Symbol {
	out := make([]*Symbol, len(t.order))
	for i, label := range t.order {
		out[i] = t.byName[label]
	}
	return out
}
