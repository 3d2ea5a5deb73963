// Package diag collects analysis diagnostics in report order.
package diag

import (
	"fmt"
	"io"
)

// Diagnostic is a single reported problem, tagged with a 1-based source line.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Line %d: %s", d.Line, d.Message)
}

// Bag accumulates diagnostics from every phase of a run. The count only
// grows within a run; analysis never aborts on the first error.
type Bag struct {
	diags []Diagnostic
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Errorf records a diagnostic at the given line.
func (b *Bag) Errorf(line int, format string, args ...any) {
	b.diags = append(b.diags, Diagnostic{Line: line, Message: fmt.Sprintf(format, args...)})
}

// Count returns the number of diagnostics reported so far.
func (b *Bag) Count() int {
	return len(b.diags)
}

// HasErrors returns true if anything has been reported.
func (b *Bag) HasErrors() bool {
	return len(b.diags) > 0
}

// Diagnostics returns the reported diagnostics in report order.
func (b *Bag) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(b.diags))
	copy(out, b.diags)
	return out
}

// Fprint writes one "Line <n>: <message>" row per diagnostic.
func (b *Bag) Fprint(w io.Writer) {
	for _, d := range b.diags {
		fmt.Fprintf(w, "%s\n", d)
	}
}

// FprintSummary writes the end-of-run summary line.
func (b *Bag) FprintSummary(w io.Writer) {
	if len(b.diags) == 0 {
		fmt.Fprintln(w, "Semantic analysis finished with no errors.")
		return
	}
	fmt.Fprintf(w, "Semantic analysis finished with %d error(s).\n", len(b.diags))
}
