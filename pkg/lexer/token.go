package lexer

import "strings"

// TokenKind identifies the lexical class of a token
type TokenKind int

const (
	// Special tokens
	KindEOF TokenKind = iota

	// Keywords
	KindVoid
	KindChar
	KindInt
	KindIf
	KindElse
	KindWhile
	KindFor
	KindMain

	// Literals
	KindIdentifier
	KindIntConst
	KindCharConst
	KindStringConst

	// Operators
	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindGT
	KindLT
	KindEQ
	KindAssign

	// Punctuation
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket
	KindSemicolon
	KindComma
)

// kindNames holds the wire names used by the persisted token format.
var kindNames = map[TokenKind]string{
	KindEOF:         "EOF",
	KindVoid:        "VOID",
	KindChar:        "CHAR",
	KindInt:         "INT",
	KindIf:          "IF",
	KindElse:        "ELSE",
	KindWhile:       "WHILE",
	KindFor:         "FOR",
	KindMain:        "MAIN",
	KindIdentifier:  "IDENTIFIER",
	KindIntConst:    "INT_CONST",
	KindCharConst:   "CHAR_CONST",
	KindStringConst: "STRING_CONST",
	KindPlus:        "PLUS",
	KindMinus:       "MINUS",
	KindStar:        "STAR",
	KindSlash:       "SLASH",
	KindGT:          "GT",
	KindLT:          "LT",
	KindEQ:          "EQ",
	KindAssign:      "ASSIGN",
	KindLParen:      "LPAREN",
	KindRParen:      "RPAREN",
	KindLBrace:      "LBRACE",
	KindRBrace:      "RBRACE",
	KindLBracket:    "LBRACKET",
	KindRBracket:    "RBRACKET",
	KindSemicolon:   "SEMICOLON",
	KindComma:       "COMMA",
}

func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

var namesToKinds = func() map[string]TokenKind {
	m := make(map[string]TokenKind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// KindFromName maps a persisted kind name back to its TokenKind.
func KindFromName(name string) (TokenKind, bool) {
	k, ok := namesToKinds[name]
	return k, ok
}

// Token is the smallest lexical unit: a kind, the literal text, and the
// 1-based source line it starts on. Tokens are immutable once produced.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
}

// keywords maps upper-cased identifier text to keyword kinds
var keywords = map[string]TokenKind{
	"VOID":  KindVoid,
	"CHAR":  KindChar,
	"INT":   KindInt,
	"IF":    KindIf,
	"ELSE":  KindElse,
	"WHILE": KindWhile,
	"FOR":   KindFor,
	"MAIN":  KindMain,
}

// LookupIdent classifies an identifier as a keyword kind or KindIdentifier.
// Keyword matching is case-insensitive; the caller keeps the original lexeme.
func LookupIdent(ident string) TokenKind {
	if k, ok := keywords[strings.ToUpper(ident)]; ok {
		return k
	}
	return KindIdentifier
}
