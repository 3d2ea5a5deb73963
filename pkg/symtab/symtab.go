// Package symtab implements the flat two-scope symbol table built while
// parsing declarations. The table only grows: symbols are never updated or
// removed, and insertion order is preserved for the persisted dump.
package symtab

import (
	"bufio"
	"fmt"
	"io"

	"github.com/minilang/minic/pkg/diag"
)

// DeclType is a symbol's declared type
type DeclType int

const (
	TypeVoid DeclType = iota
	TypeInt
	TypeChar
	TypeFunction
)

func (t DeclType) String() string {
	switch t {
	case TypeVoid:
		return "Void"
	case TypeInt:
		return "Int"
	case TypeChar:
		return "Char"
	case TypeFunction:
		return "Function"
	}
	return "?"
}

// Scope is the declaration region a symbol belongs to
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeMain
)

func (s Scope) String() string {
	if s == ScopeMain {
		return "Main"
	}
	return "Global"
}

// Symbol is one declared name. ArraySize is 0 for scalars and for arrays
// declared without a size.
type Symbol struct {
	Name      string
	Type      DeclType
	Scope     Scope
	ArraySize int
	Line      int
}

// MaxSymbols bounds the table; insertions past the cap are silently dropped.
const MaxSymbols = 4096

type tableKey struct {
	name  string
	scope Scope
}

// Table holds symbols in insertion order with a (name, scope) index for
// duplicate detection and lookup.
type Table struct {
	syms  []Symbol
	index map[tableKey]int
	diags *diag.Bag
}

// New creates an empty table reporting duplicates into diags.
func New(diags *diag.Bag) *Table {
	return &Table{index: make(map[tableKey]int), diags: diags}
}

// Insert appends a new symbol unless (name, scope) is already declared, in
// which case the duplicate is reported and dropped and the original entry
// is retained.
func (t *Table) Insert(name string, typ DeclType, scope Scope, arraySize, line int) {
	key := tableKey{name: name, scope: scope}
	if _, exists := t.index[key]; exists {
		t.diags.Errorf(line, "Multiple declarations of same identifier.")
		return
	}
	if len(t.syms) >= MaxSymbols {
		return
	}
	t.index[key] = len(t.syms)
	t.syms = append(t.syms, Symbol{
		Name:      name,
		Type:      typ,
		Scope:     scope,
		ArraySize: arraySize,
		Line:      line,
	})
}

// Lookup resolves a name in the current scope first, falling back to Global.
func (t *Table) Lookup(name string, current Scope) (Symbol, bool) {
	if i, ok := t.index[tableKey{name: name, scope: current}]; ok {
		return t.syms[i], true
	}
	if current != ScopeGlobal {
		if i, ok := t.index[tableKey{name: name, scope: ScopeGlobal}]; ok {
			return t.syms[i], true
		}
	}
	return Symbol{}, false
}

// Len returns the number of stored symbols.
func (t *Table) Len() int {
	return len(t.syms)
}

// Symbols returns the table contents in insertion order.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, len(t.syms))
	copy(out, t.syms)
	return out
}

// Write emits the persisted symbol-table dump: a header row followed by one
// tab-separated row per symbol in insertion order.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Lexeme\tType\tScope\tArray size")
	for _, s := range t.syms {
		fmt.Fprintf(bw, "%s\t%s\t%s\t%d\n", s.Name, s.Type, s.Scope, s.ArraySize)
	}
	return bw.Flush()
}
