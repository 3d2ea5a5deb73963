// Package lexer tokenizes source code for the minic front end
package lexer

import (
	"github.com/minilang/minic/pkg/diag"
)

// MaxTokens bounds the token stream; tokens past the cap are silently dropped.
const MaxTokens = 100000

// Lexer scans a source buffer into the run's token stream
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int
	diags   *diag.Bag
}

// New creates a new Lexer for the given input, reporting problems into diags
func New(input string, diags *diag.Bag) *Lexer {
	l := &Lexer{input: input, line: 1, diags: diags}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

var singleCharKinds = map[byte]TokenKind{
	'+': KindPlus,
	'-': KindMinus,
	'*': KindStar,
	'/': KindSlash,
	'>': KindGT,
	'<': KindLT,
	'(': KindLParen,
	')': KindRParen,
	'{': KindLBrace,
	'}': KindRBrace,
	'[': KindLBracket,
	']': KindRBracket,
	';': KindSemicolon,
	',': KindComma,
}

// Tokenize scans the whole input and returns the token stream in source
// order. Lexical errors are reported to the diagnostic bag and recovered
// from per rule; an unterminated comment ends the stream early.
func (l *Lexer) Tokenize() []Token {
	var toks []Token
	emit := func(kind TokenKind, lexeme string, line int) {
		if len(toks) >= MaxTokens {
			return
		}
		toks = append(toks, Token{Kind: kind, Lexeme: lexeme, Line: line})
	}

	for {
		if !l.skipWhitespaceAndComments() {
			// Unterminated comment: treated as end of input for this run.
			return toks
		}
		if l.ch == 0 {
			return toks
		}

		switch {
		case isLetter(l.ch):
			line := l.line
			lex := l.readIdentifier()
			emit(LookupIdent(lex), lex, line)
		case isDigit(l.ch):
			line := l.line
			lex := l.readNumber()
			emit(KindIntConst, lex, line)
		case l.ch == '"':
			if lex, line, ok := l.scanString(); ok {
				emit(KindStringConst, lex, line)
			}
		case l.ch == '\'':
			if lex, line, ok := l.scanChar(); ok {
				emit(KindCharConst, lex, line)
			}
		case l.ch == '=':
			line := l.line
			if l.peekChar() == '=' {
				l.readChar()
				l.readChar()
				emit(KindEQ, "==", line)
			} else {
				l.readChar()
				emit(KindAssign, "=", line)
			}
		default:
			if kind, ok := singleCharKinds[l.ch]; ok {
				emit(kind, string(l.ch), l.line)
				l.readChar()
			} else {
				l.diags.Errorf(l.line, "Undefined symbol")
				l.skipRestOfLine()
			}
		}
	}
}

// skipWhitespaceAndComments returns false when an unterminated block
// comment was found, which stops scanning.
func (l *Lexer) skipWhitespaceAndComments() bool {
	for {
		for isSpace(l.ch) {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '*' {
			startLine := l.line
			l.readChar() // consume /
			l.readChar() // consume *
			closed := false
			for l.ch != 0 {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // consume *
					l.readChar() // consume /
					closed = true
					break
				}
				l.readChar()
			}
			if !closed {
				l.diags.Errorf(startLine, "Un-terminated comments")
				return false
			}
			continue
		}
		return true
	}
}

// scanString reads a string literal after the opening quote. Escaped
// characters are kept as two-character sequences. The literal must close
// before end of line.
func (l *Lexer) scanString() (string, int, bool) {
	startLine := l.line
	l.readChar() // consume opening quote
	var buf []byte
	for {
		switch l.ch {
		case 0, '\n':
			l.diags.Errorf(startLine, "String constants exceed line")
			return "", 0, false
		case '"':
			l.readChar() // consume closing quote
			return string(buf), startLine, true
		case '\\':
			l.readChar()
			if l.ch == 0 || l.ch == '\n' {
				l.diags.Errorf(startLine, "String constants exceed line")
				return "", 0, false
			}
			buf = append(buf, '\\', l.ch)
			l.readChar()
		default:
			buf = append(buf, l.ch)
			l.readChar()
		}
	}
}

// scanChar reads a character literal after the opening quote: exactly one
// possibly escaped character between quotes. On a multi-character literal
// scanning resumes at the next quote, newline, or end of input.
func (l *Lexer) scanChar() (string, int, bool) {
	startLine := l.line
	l.readChar() // consume opening quote

	if l.ch == '\\' {
		l.readChar()
		if l.ch == 0 || l.ch == '\n' {
			l.diags.Errorf(startLine, "Char constant too long")
			return "", 0, false
		}
		lex := "\\" + string(l.ch)
		l.readChar()
		if l.ch != '\'' {
			l.diags.Errorf(startLine, "Char constant too long")
			l.skipToCharEnd()
			return "", 0, false
		}
		l.readChar() // consume closing quote
		return lex, startLine, true
	}

	if l.ch == '\'' || l.ch == '\n' || l.ch == 0 {
		l.diags.Errorf(startLine, "Char constant too long")
		if l.ch == '\'' {
			l.readChar()
		}
		return "", 0, false
	}

	lex := string(l.ch)
	l.readChar()
	if l.ch != '\'' {
		l.diags.Errorf(startLine, "Char constant too long")
		l.skipToCharEnd()
		return "", 0, false
	}
	l.readChar() // consume closing quote
	return lex, startLine, true
}

func (l *Lexer) skipToCharEnd() {
	for l.ch != 0 && l.ch != '\n' && l.ch != '\'' {
		l.readChar()
	}
	if l.ch == '\'' {
		l.readChar()
	}
}

// skipRestOfLine discards input through the end of the current source line.
// The recovery unit for an undefined symbol is one line.
func (l *Lexer) skipRestOfLine() {
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
	if l.ch == '\n' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

func (l *Lexer) readNumber() string {
	pos := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}
