package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// AnalysisTestSpec represents a single end-to-end analysis test case
type AnalysisTestSpec struct {
	Name      string   `yaml:"name"`
	Input     string   `yaml:"input"`
	Expect    []string `yaml:"expect"`     // Strings that must appear on stdout
	ExpectErr []string `yaml:"expect_err"` // Strings that must appear on stderr
	Skip      string   `yaml:"skip,omitempty"`
}

// AnalysisTestFile represents the analysis.yaml file structure
type AnalysisTestFile struct {
	Tests []AnalysisTestSpec `yaml:"tests"`
}

func TestAnalysisYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/analysis.yaml")
	if err != nil {
		t.Fatalf("analysis.yaml not found: %v", err)
	}

	var testFile AnalysisTestFile
	if err := yaml.Unmarshal(data, &testFile); err != nil {
		t.Fatalf("failed to parse analysis.yaml: %v", err)
	}

	for _, tc := range testFile.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Skip != "" {
				t.Skip(tc.Skip)
			}

			tmpDir := t.TempDir()
			srcFile := filepath.Join(tmpDir, "test.c")
			if err := os.WriteFile(srcFile, []byte(tc.Input), 0644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			resetDumpFlags()
			var out, errOut bytes.Buffer
			cmd := newRootCmd(&out, &errOut)
			cmd.SetArgs([]string{srcFile})
			if err := cmd.Execute(); err != nil {
				t.Fatalf("minic failed: %v\nStderr: %s", err, errOut.String())
			}

			for _, exp := range tc.Expect {
				if !strings.Contains(out.String(), exp) {
					t.Errorf("expected stdout to contain %q\nGot:\n%s", exp, out.String())
				}
			}
			for _, exp := range tc.ExpectErr {
				if !strings.Contains(errOut.String(), exp) {
					t.Errorf("expected stderr to contain %q\nGot:\n%s", exp, errOut.String())
				}
			}
		})
	}
}
