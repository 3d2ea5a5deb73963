package parser

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/minilang/minic/pkg/checker"
	"github.com/minilang/minic/pkg/diag"
	"github.com/minilang/minic/pkg/lexer"
	"github.com/minilang/minic/pkg/symtab"
	"gopkg.in/yaml.v3"
)

// TestSpec represents a test case from parse.yaml
type TestSpec struct {
	Name    string       `yaml:"name"`
	Input   string       `yaml:"input"`
	Symbols []SymbolSpec `yaml:"symbols"`
	Errors  []string     `yaml:"errors"`
}

// SymbolSpec represents one expected symbol table entry
type SymbolSpec struct {
	Lexeme    string `yaml:"lexeme"`
	Type      string `yaml:"type"`
	Scope     string `yaml:"scope"`
	ArraySize int    `yaml:"array_size"`
	Line      int    `yaml:"line"`
}

// TestFile represents the parse.yaml file structure
type TestFile struct {
	Tests []TestSpec `yaml:"tests"`
}

func analyze(input string) (*symtab.Table, *diag.Bag) {
	diags := diag.NewBag()
	toks := lexer.New(input, diags).Tokenize()
	table := symtab.New(diags)
	chk := checker.New(table, diags)
	New(toks, table, chk, diags).ParseProgram()
	return table, diags
}

func TestParseYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/parse.yaml")
	if err != nil {
		t.Fatalf("failed to read parse.yaml: %v", err)
	}

	var testFile TestFile
	if err := yaml.Unmarshal(data, &testFile); err != nil {
		t.Fatalf("failed to parse parse.yaml: %v", err)
	}

	for _, tc := range testFile.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			table, diags := analyze(tc.Input)

			gotSymbols := make([]SymbolSpec, 0, table.Len())
			for _, sym := range table.Symbols() {
				gotSymbols = append(gotSymbols, SymbolSpec{
					Lexeme:    sym.Name,
					Type:      sym.Type.String(),
					Scope:     sym.Scope.String(),
					ArraySize: sym.ArraySize,
					Line:      sym.Line,
				})
			}
			wantSymbols := tc.Symbols
			if wantSymbols == nil {
				wantSymbols = []SymbolSpec{}
			}
			if diff := cmp.Diff(wantSymbols, gotSymbols); diff != "" {
				t.Errorf("symbol table mismatch (-want +got):\n%s", diff)
			}

			gotErrors := make([]string, 0, diags.Count())
			for _, d := range diags.Diagnostics() {
				gotErrors = append(gotErrors, d.String())
			}
			wantErrors := tc.Errors
			if wantErrors == nil {
				wantErrors = []string{}
			}
			if diff := cmp.Diff(wantErrors, gotErrors); diff != "" {
				t.Errorf("diagnostic mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	input := "int g;\nint main(int a)\n{\n    g = a + 1;\n}\n"

	table1, diags1 := analyze(input)
	table2, diags2 := analyze(input)

	if diff := cmp.Diff(table1.Symbols(), table2.Symbols()); diff != "" {
		t.Errorf("symbol tables differ between runs:\n%s", diff)
	}
	if diff := cmp.Diff(diags1.Diagnostics(), diags2.Diagnostics()); diff != "" {
		t.Errorf("diagnostics differ between runs:\n%s", diff)
	}
}

func TestEmptyInput(t *testing.T) {
	table, diags := analyze("")

	if table.Len() != 0 {
		t.Errorf("expected empty symbol table, got %d entries", table.Len())
	}
	wantDiags := []diag.Diagnostic{{Line: 0, Message: "Any keyword expected"}}
	if diff := cmp.Diff(wantDiags, diags.Diagnostics()); diff != "" {
		t.Errorf("diagnostic mismatch (-want +got):\n%s", diff)
	}
}
