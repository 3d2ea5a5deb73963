// Package checker evaluates expression types against declared symbol types
package checker

import (
	"github.com/minilang/minic/pkg/diag"
	"github.com/minilang/minic/pkg/lexer"
	"github.com/minilang/minic/pkg/symtab"
)

// TypeCode is the checker's internal type representation. TypeError is the
// absorbing bottom type: once a subexpression has gone wrong, no further
// diagnostics are produced downstream of it.
type TypeCode int

const (
	TypeError TypeCode = iota
	TypeInt
	TypeChar
)

func (t TypeCode) String() string {
	switch t {
	case TypeInt:
		return "Int"
	case TypeChar:
		return "Char"
	}
	return "Error"
}

// Checker resolves expression operands and applies binary-operator typing
// rules, reporting mismatches into the shared diagnostic bag.
type Checker struct {
	table *symtab.Table
	diags *diag.Bag
}

// New creates a Checker resolving identifiers through table.
func New(table *symtab.Table, diags *diag.Bag) *Checker {
	return &Checker{table: table, diags: diags}
}

// declaredCode maps a declared type to an expression type code. Void and
// Function symbols have no expression type.
func declaredCode(t symtab.DeclType) TypeCode {
	switch t {
	case symtab.TypeInt:
		return TypeInt
	case symtab.TypeChar:
		return TypeChar
	}
	return TypeError
}

// OperandType resolves one expression operand to its type code. An
// identifier that resolves to nothing reports "Undeclared identifier."
// and yields TypeError.
func (c *Checker) OperandType(tok lexer.Token, scope symtab.Scope) TypeCode {
	switch tok.Kind {
	case lexer.KindIdentifier:
		sym, ok := c.table.Lookup(tok.Lexeme, scope)
		if !ok {
			c.diags.Errorf(tok.Line, "Undeclared identifier.")
			return TypeError
		}
		return declaredCode(sym.Type)
	case lexer.KindIntConst:
		return TypeInt
	case lexer.KindCharConst:
		return TypeChar
	}
	return TypeError
}

// Apply types one binary application. An Error on either side absorbs
// silently. Assignment and arithmetic require equal operand types and keep
// the common type; relational and equality operators require equal operand
// types and always yield Int.
func (c *Checker) Apply(op lexer.TokenKind, lhs, rhs TypeCode, line int) TypeCode {
	if lhs == TypeError || rhs == TypeError {
		return TypeError
	}
	switch op {
	case lexer.KindAssign, lexer.KindPlus, lexer.KindMinus, lexer.KindStar, lexer.KindSlash:
		if lhs != rhs {
			c.diags.Errorf(line, "Type mismatch in statement or expression.")
			return TypeError
		}
		return lhs
	case lexer.KindLT, lexer.KindGT, lexer.KindEQ:
		if lhs != rhs {
			c.diags.Errorf(line, "Type mismatch in statement or expression.")
			return TypeError
		}
		return TypeInt
	}
	return TypeError
}

// CheckCondition requires an Int-typed condition. TypeError stays silent so
// that one root cause produces exactly one diagnostic.
func (c *Checker) CheckCondition(tc TypeCode, line int) {
	if tc != TypeInt && tc != TypeError {
		c.diags.Errorf(line, "Integer expected in conditional expression.")
	}
}

// CheckInitializer checks a constant initializer against the declared type
// of the symbol being declared.
func (c *Checker) CheckInitializer(declared symtab.DeclType, constTok lexer.Token) {
	var ctype TypeCode
	switch constTok.Kind {
	case lexer.KindIntConst:
		ctype = TypeInt
	case lexer.KindCharConst:
		ctype = TypeChar
	default:
		return
	}
	dtype := declaredCode(declared)
	if dtype != TypeError && ctype != dtype {
		c.diags.Errorf(constTok.Line, "Type mismatch in statement or expression.")
	}
}
