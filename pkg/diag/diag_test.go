package diag

import (
	"bytes"
	"testing"
)

func TestBagAccumulates(t *testing.T) {
	b := NewBag()
	if b.HasErrors() {
		t.Error("new bag should be empty")
	}

	b.Errorf(3, "Undeclared identifier.")
	b.Errorf(7, "Semicolon expected")

	if b.Count() != 2 {
		t.Errorf("Count = %d, want 2", b.Count())
	}

	var buf bytes.Buffer
	b.Fprint(&buf)
	want := "Line 3: Undeclared identifier.\nLine 7: Semicolon expected\n"
	if buf.String() != want {
		t.Errorf("Fprint = %q, want %q", buf.String(), want)
	}
}

func TestSummaryWording(t *testing.T) {
	var buf bytes.Buffer

	b := NewBag()
	b.FprintSummary(&buf)
	if buf.String() != "Semantic analysis finished with no errors.\n" {
		t.Errorf("clean summary = %q", buf.String())
	}

	buf.Reset()
	b.Errorf(1, "Undeclared identifier.")
	b.FprintSummary(&buf)
	if buf.String() != "Semantic analysis finished with 1 error(s).\n" {
		t.Errorf("error summary = %q", buf.String())
	}
}
