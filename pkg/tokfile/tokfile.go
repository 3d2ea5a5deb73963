// Package tokfile reads and writes the persisted token exchange format:
// UTF-8 text, one tab-separated row of kind, lexeme, and line number per
// token, below an optional header row.
package tokfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/minilang/minic/pkg/lexer"
)

// Header is the first row of a written token file.
const Header = "Token\tLexeme\tLine No"

// Write emits the header followed by one row per token.
func Write(w io.Writer, toks []lexer.Token) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header)
	for _, t := range toks {
		fmt.Fprintf(bw, "%s\t%s\t%d\n", t.Kind, t.Lexeme, t.Line)
	}
	return bw.Flush()
}

// WriteFile writes the token stream to the named file.
func WriteFile(name string, toks []lexer.Token) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, toks)
}

// isHeaderRow recognizes the header whether or not the producer upper-cased
// it. The third field of the header splits as "Line", so a prefix test
// covers both "Line" and "Line No".
func isHeaderRow(fields []string) bool {
	if len(fields) < 3 {
		return false
	}
	return (fields[0] == "Token" || fields[0] == "TOKEN") &&
		(fields[1] == "Lexeme" || fields[1] == "LEXEME") &&
		strings.HasPrefix(fields[2], "Line")
}

// Read parses a token file. The header row may or may not be present. Rows
// that do not split into exactly three whitespace-delimited fields, name an
// unknown token kind, or carry an unparsable line number are skipped. The
// result is bounded by lexer.MaxTokens.
func Read(r io.Reader) ([]lexer.Token, error) {
	var toks []lexer.Token
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if first {
			first = false
			if isHeaderRow(fields) {
				continue
			}
		}
		if len(fields) != 3 {
			continue
		}
		kind, ok := lexer.KindFromName(fields[0])
		if !ok {
			continue
		}
		line, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		if len(toks) >= lexer.MaxTokens {
			break
		}
		toks = append(toks, lexer.Token{Kind: kind, Lexeme: fields[1], Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

// ReadFile reads the token stream from the named file.
func ReadFile(name string) ([]lexer.Token, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
