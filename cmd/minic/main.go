package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minilang/minic/pkg/checker"
	"github.com/minilang/minic/pkg/diag"
	"github.com/minilang/minic/pkg/lexer"
	"github.com/minilang/minic/pkg/parser"
	"github.com/minilang/minic/pkg/symtab"
	"github.com/minilang/minic/pkg/tokfile"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Dump flags for the analysis artifacts
var (
	dTokens    bool
	dSyms      bool
	fromTokens bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// dumpFlagNames lists dump flags that also accept single-dash style
var dumpFlagNames = []string{"dtokens", "dsyms"}

// normalizeFlags converts single-dash dump flags like -dtokens to --dtokens
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range dumpFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minic [file]",
		Short: "minic analyses programs in a small C-like language",
		Long: `minic is the front end of a compiler for a small C-like language.
It tokenizes a source file, recognizes the program grammar, builds the
symbol table, and type-checks expressions, collecting every diagnostic
before reporting a summary.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			return doAnalyze(args[0], out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVarP(&dTokens, "dtokens", "", false, "Dump the token stream")
	rootCmd.Flags().BoolVarP(&dSyms, "dsyms", "", false, "Dump the symbol table")
	rootCmd.Flags().BoolVar(&fromTokens, "from-tokens", false, "Input is a persisted token file; skip tokenization")

	return rootCmd
}

// doAnalyze runs the full pipeline on one input file: tokenize (or load a
// persisted token stream), parse with embedded symbol-table construction
// and type checking, then report diagnostics and the summary line.
func doAnalyze(filename string, out, errOut io.Writer) error {
	diags := diag.NewBag()

	var toks []lexer.Token
	if fromTokens {
		var err error
		toks, err = tokfile.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(errOut, "minic: error reading %s: %v\n", filename, err)
			return err
		}
	} else {
		content, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(errOut, "minic: error reading %s: %v\n", filename, err)
			return err
		}
		toks = lexer.New(string(content), diags).Tokenize()
	}

	if dTokens {
		if err := dumpTokens(filename, toks, out, errOut); err != nil {
			return err
		}
	}

	table := symtab.New(diags)
	chk := checker.New(table, diags)
	parser.New(toks, table, chk, diags).ParseProgram()

	if dSyms {
		if err := dumpSymbols(filename, table, out, errOut); err != nil {
			return err
		}
	}

	diags.Fprint(errOut)
	diags.FprintSummary(out)
	return nil
}

// dumpTokens writes the token stream to a .tokens file and echoes it to
// stdout for convenience
func dumpTokens(filename string, toks []lexer.Token, out, errOut io.Writer) error {
	outputFilename := tokensOutputFilename(filename)

	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "minic: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	if err := tokfile.Write(outFile, toks); err != nil {
		fmt.Fprintf(errOut, "minic: error writing %s: %v\n", outputFilename, err)
		return err
	}

	return tokfile.Write(out, toks)
}

// tokensOutputFilename returns the output filename for -dtokens:
// input.c -> input.tokens
func tokensOutputFilename(filename string) string {
	ext := ".c"
	if strings.HasSuffix(filename, ext) {
		return filename[:len(filename)-len(ext)] + ".tokens"
	}
	return filename + ".tokens"
}

// dumpSymbols writes the symbol table to a .symtab file and echoes it to
// stdout for convenience
func dumpSymbols(filename string, table *symtab.Table, out, errOut io.Writer) error {
	outputFilename := symsOutputFilename(filename)

	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "minic: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	if err := table.Write(outFile); err != nil {
		fmt.Fprintf(errOut, "minic: error writing %s: %v\n", outputFilename, err)
		return err
	}

	return table.Write(out)
}

// symsOutputFilename returns the output filename for -dsyms:
// input.c -> input.symtab
func symsOutputFilename(filename string) string {
	ext := ".c"
	if strings.HasSuffix(filename, ext) {
		return filename[:len(filename)-len(ext)] + ".symtab"
	}
	return filename + ".symtab"
}
