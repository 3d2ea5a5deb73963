// Package parser implements a recursive descent recognizer for the minic
// grammar. It walks the token stream once, left to right, inserting symbols
// and type-checking expressions as declarations and expressions are
// recognized.
package parser

import (
	"strconv"

	"github.com/minilang/minic/pkg/checker"
	"github.com/minilang/minic/pkg/diag"
	"github.com/minilang/minic/pkg/lexer"
	"github.com/minilang/minic/pkg/symtab"
)

// Parser recognizes the program grammar with one token of lookahead. Error
// recovery discards every remaining token on the offending source line and
// resumes at the next line's first token.
type Parser struct {
	toks    []lexer.Token
	pos     int
	scopes  []symtab.Scope
	table   *symtab.Table
	checker *checker.Checker
	diags   *diag.Bag
}

// New creates a Parser over a complete token stream.
func New(toks []lexer.Token, table *symtab.Table, chk *checker.Checker, diags *diag.Bag) *Parser {
	return &Parser{
		toks:    toks,
		scopes:  []symtab.Scope{symtab.ScopeGlobal},
		table:   table,
		checker: chk,
		diags:   diags,
	}
}

var eofToken = lexer.Token{Kind: lexer.KindEOF, Line: 0}

// LA returns the current lookahead token, or an EOF sentinel past the end.
func (p *Parser) LA() lexer.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return eofToken
}

func (p *Parser) consume() lexer.Token {
	t := p.LA()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// match consumes the lookahead when it has the wanted kind.
func (p *Parser) match(kind lexer.TokenKind) (lexer.Token, bool) {
	t := p.LA()
	if t.Kind == kind {
		p.consume()
		return t, true
	}
	return lexer.Token{}, false
}

func (p *Parser) currentScope() symtab.Scope {
	return p.scopes[len(p.scopes)-1]
}

func (p *Parser) pushScope(s symtab.Scope) {
	p.scopes = append(p.scopes, s)
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

// syntaxError reports at the offending token's line and discards the rest
// of that source line, bounding cascades to one diagnostic per malformed
// line in the common case.
func (p *Parser) syntaxError(msg string) {
	t := p.LA()
	p.diags.Errorf(t.Line, msg)
	p.skipLine(t.Line)
}

func (p *Parser) skipLine(line int) {
	for p.pos < len(p.toks) && p.toks[p.pos].Line == line {
		p.pos++
	}
}

func isTypeToken(k lexer.TokenKind) bool {
	return k == lexer.KindVoid || k == lexer.KindChar || k == lexer.KindInt
}

func declType(k lexer.TokenKind) symtab.DeclType {
	switch k {
	case lexer.KindVoid:
		return symtab.TypeVoid
	case lexer.KindChar:
		return symtab.TypeChar
	default:
		return symtab.TypeInt
	}
}

func isOperator(k lexer.TokenKind) bool {
	switch k {
	case lexer.KindPlus, lexer.KindMinus, lexer.KindStar, lexer.KindSlash,
		lexer.KindGT, lexer.KindLT, lexer.KindEQ, lexer.KindAssign:
		return true
	}
	return false
}

func isOperand(k lexer.TokenKind) bool {
	return k == lexer.KindIdentifier || k == lexer.KindIntConst || k == lexer.KindCharConst
}

// ParseProgram recognizes: program := global_decl_list function_def
func (p *Parser) ParseProgram() {
	p.globalDeclList()
	if _, ok := p.typeSpecifier(); !ok {
		p.syntaxError("Any keyword expected")
		return
	}
	p.functionDef()
}

// typeSpecifier := VOID | CHAR | INT
func (p *Parser) typeSpecifier() (symtab.DeclType, bool) {
	t := p.LA()
	if !isTypeToken(t.Kind) {
		return symtab.TypeVoid, false
	}
	p.consume()
	return declType(t.Kind), true
}

// globalDeclList := { type_specifier declaration }
//
// The list stops when a type specifier is followed by MAIN, which signals
// the start of the function definition; the specifier is rolled back so
// ParseProgram can re-read it.
func (p *Parser) globalDeclList() {
	for {
		t := p.LA()
		if !isTypeToken(t.Kind) {
			return
		}
		p.consume()
		if p.LA().Kind == lexer.KindMain {
			p.pos--
			return
		}
		p.declaration(declType(t.Kind))
	}
}

// declaration := init_declarator_list ';' (the type specifier has already
// been consumed by the caller)
func (p *Parser) declaration(typ symtab.DeclType) {
	p.initDeclaratorList(typ)
	if _, ok := p.match(lexer.KindSemicolon); !ok {
		p.syntaxError("Semicolon expected")
	}
}

// initDeclaratorList := init_declarator { ',' init_declarator }
func (p *Parser) initDeclaratorList(typ symtab.DeclType) {
	p.initDeclarator(typ)
	for {
		if _, ok := p.match(lexer.KindComma); !ok {
			return
		}
		p.initDeclarator(typ)
	}
}

// initDeclarator := IDENTIFIER array_opt init_opt
//
// Each declarator inserts one symbol in the current scope.
func (p *Parser) initDeclarator(typ symtab.DeclType) {
	id, ok := p.match(lexer.KindIdentifier)
	if !ok {
		p.syntaxError("Identifier expected")
		return
	}
	size := p.arrayOpt()
	p.initOpt(typ)
	p.table.Insert(id.Lexeme, typ, p.currentScope(), size, id.Line)
}

// arrayOpt := [ '[' INT_CONST? ']' ]
//
// Returns the declared size; 0 stands for scalars and unsized arrays alike.
func (p *Parser) arrayOpt() int {
	if _, ok := p.match(lexer.KindLBracket); !ok {
		return 0
	}
	size := 0
	if num, ok := p.match(lexer.KindIntConst); ok {
		size, _ = strconv.Atoi(num.Lexeme)
	}
	if _, ok := p.match(lexer.KindRBracket); !ok {
		p.syntaxError("Right bracket expected")
	}
	return size
}

// initOpt := [ '=' (INT_CONST|CHAR_CONST) ]
//
// A constant initializer is checked against the declared type.
func (p *Parser) initOpt(typ symtab.DeclType) {
	if _, ok := p.match(lexer.KindAssign); !ok {
		return
	}
	t := p.LA()
	if t.Kind != lexer.KindIntConst && t.Kind != lexer.KindCharConst {
		p.syntaxError("Identifier or integer constant expected")
		return
	}
	p.checker.CheckInitializer(typ, t)
	p.consume()
}

// functionDef := MAIN '(' ( VOID | param_list )? ')' block
//
// main is inserted as a Function symbol in Global scope before the scope
// register switches to Main for the body; the scope is restored afterwards.
func (p *Parser) functionDef() {
	id, ok := p.match(lexer.KindMain)
	if !ok {
		p.syntaxError("MAIN expected")
		return
	}

	p.table.Insert("main", symtab.TypeFunction, symtab.ScopeGlobal, 0, id.Line)
	p.pushScope(symtab.ScopeMain)
	defer p.popScope()

	if _, ok := p.match(lexer.KindLParen); !ok {
		p.syntaxError("Opening parenthesis missing")
	}

	t := p.LA()
	if t.Kind == lexer.KindVoid {
		p.consume()
	} else if isTypeToken(t.Kind) {
		p.paramList()
	}

	if _, ok := p.match(lexer.KindRParen); !ok {
		p.syntaxError("Closing parenthesis missing")
	}

	p.block()
}

// paramList := type_specifier IDENTIFIER { ',' type_specifier IDENTIFIER }
//
// Parameters are declared directly in Main scope.
func (p *Parser) paramList() {
	for {
		typ, ok := p.typeSpecifier()
		if !ok {
			p.syntaxError("Any keyword expected")
			return
		}
		id, ok := p.match(lexer.KindIdentifier)
		if !ok {
			p.syntaxError("Identifier expected")
			return
		}
		p.table.Insert(id.Lexeme, typ, symtab.ScopeMain, 0, id.Line)
		if _, ok := p.match(lexer.KindComma); !ok {
			return
		}
	}
}

// block := '{' { statement } '}'
func (p *Parser) block() {
	if _, ok := p.match(lexer.KindLBrace); !ok {
		p.syntaxError("{ expected")
		return
	}
	p.stmtListOpt()
	if _, ok := p.match(lexer.KindRBrace); !ok {
		p.syntaxError("} missing")
	}
}

func (p *Parser) stmtListOpt() {
	for {
		t := p.LA()
		if t.Kind == lexer.KindRBrace || t.Kind == lexer.KindEOF {
			return
		}
		p.statement()
	}
}

// statement := declaration | if_stmt | while_stmt | for_stmt | block | expr_stmt
func (p *Parser) statement() {
	t := p.LA()
	switch {
	case isTypeToken(t.Kind):
		typ, _ := p.typeSpecifier()
		p.declaration(typ)
	case t.Kind == lexer.KindIf:
		p.ifStmt()
	case t.Kind == lexer.KindWhile:
		p.whileStmt()
	case t.Kind == lexer.KindFor:
		p.forStmt()
	case t.Kind == lexer.KindLBrace:
		p.block()
	default:
		p.exprStmt()
	}
}

// exprStmt := [ expression ] ';'
func (p *Parser) exprStmt() {
	if _, ok := p.match(lexer.KindSemicolon); ok {
		return
	}
	if _, ok := p.expression(); !ok {
		p.syntaxError("Identifier or integer constant expected")
	}
	if _, ok := p.match(lexer.KindSemicolon); !ok {
		p.syntaxError("Semicolon expected")
	}
}

// condExpression parses a condition and enforces its Int typing at the
// current lookahead line. TypeError conditions stay silent.
func (p *Parser) condExpression() {
	tc, ok := p.expression()
	if !ok {
		p.syntaxError("Identifier or integer constant expected")
		return
	}
	p.checker.CheckCondition(tc, p.LA().Line)
}

// ifStmt := IF '(' expression ')' block [ ELSE block ]
func (p *Parser) ifStmt() {
	if _, ok := p.match(lexer.KindIf); !ok {
		p.syntaxError("IF expected")
		return
	}
	if _, ok := p.match(lexer.KindLParen); !ok {
		p.syntaxError("Opening parenthesis missing")
	}
	p.condExpression()
	if _, ok := p.match(lexer.KindRParen); !ok {
		p.syntaxError("Closing parenthesis missing")
	}
	p.block()
	if _, ok := p.match(lexer.KindElse); ok {
		p.block()
	}
}

// whileStmt := WHILE '(' expression ')' block
func (p *Parser) whileStmt() {
	if _, ok := p.match(lexer.KindWhile); !ok {
		p.syntaxError("WHILE expected")
		return
	}
	if _, ok := p.match(lexer.KindLParen); !ok {
		p.syntaxError("Opening parenthesis missing")
	}
	p.condExpression()
	if _, ok := p.match(lexer.KindRParen); !ok {
		p.syntaxError("Closing parenthesis missing")
	}
	p.block()
}

// forStmt := FOR '(' expression ';' expression ';' expression ')' statement
//
// Only the middle clause is a condition; the first and third clauses are
// typed but unconstrained.
func (p *Parser) forStmt() {
	if _, ok := p.match(lexer.KindFor); !ok {
		p.syntaxError("FOR expected")
		return
	}
	if _, ok := p.match(lexer.KindLParen); !ok {
		p.syntaxError("Opening parenthesis missing")
	}
	if _, ok := p.expression(); !ok {
		p.syntaxError("Identifier or integer constant expected")
	}
	if _, ok := p.match(lexer.KindSemicolon); !ok {
		p.syntaxError("Semicolon expected")
	}
	p.condExpression()
	if _, ok := p.match(lexer.KindSemicolon); !ok {
		p.syntaxError("Semicolon expected")
	}
	if _, ok := p.expression(); !ok {
		p.syntaxError("Identifier or integer constant expected")
	}
	if _, ok := p.match(lexer.KindRParen); !ok {
		p.syntaxError("Closing parenthesis missing")
	}
	p.statement()
}

// expression := operand { binop operand }
//
// Operators chain uniformly left to right with no precedence. The running
// type code is threaded through checker.Apply; the second return value is
// false when the lookahead cannot start an expression at all.
func (p *Parser) expression() (checker.TypeCode, bool) {
	a := p.LA()
	if !isOperand(a.Kind) {
		return checker.TypeError, false
	}
	cur := p.checker.OperandType(a, p.currentScope())
	p.consume()

	for {
		op := p.LA()
		if !isOperator(op.Kind) {
			break
		}
		p.consume()

		b := p.LA()
		if !isOperand(b.Kind) {
			p.syntaxError("Identifier or integer constant expected")
			break
		}
		rhs := p.checker.OperandType(b, p.currentScope())
		p.consume()

		cur = p.checker.Apply(op.Kind, cur, rhs, op.Line)
	}
	return cur, true
}
