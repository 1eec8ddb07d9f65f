package main

// Notes:
// - runGenerate: we test through a mock Generator so no browser is needed,
//   covering flag/config merging, input validation, output writing, summary
//   and hint wrapping. One test drives the real generator in --html-only mode.
// - Tests that touch CSV2LABELS_* variables use t.Setenv and are not parallel.
// - mergeFlags, resolveInputPath, htmlPathFor, writeOutputs: tested directly.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	csv2labels "github.com/alnah/go-csv2labels"
	"github.com/alnah/go-csv2labels/internal/config"
)

const lotesCSV = "LOTES,QTD\nL-001,10\n  ,5\nL-003,7\n"

func mockResult() *csv2labels.GenerateResult {
	return &csv2labels.GenerateResult{
		RunID:   "run-1",
		PDF:     []byte("%PDF-1.4 mock"),
		HTML:    []byte("<html>mock</html>"),
		Records: 3,
		Pages:   2,
		Rejected: []csv2labels.MissingFieldWarning{
			{Position: 2, Line: 3, Field: "LOTES", Reason: "empty"},
		},
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_Success - PDF written, summary printed
// ---------------------------------------------------------------------------

func TestRunGenerate_Success(t *testing.T) {
	t.Parallel()

	input := writeCSV(t, "lotes.csv", lotesCSV)
	output := filepath.Join(t.TempDir(), "nested", "Etiquetas.pdf")
	gen := &mockGenerator{result: mockResult(), layout: testLayout()}
	env, stdout, stderr := newMockEnv(gen)

	err := runGenerate(context.Background(), []string{input, "-o", output}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != "%PDF-1.4 mock" {
		t.Errorf("output = %q", got)
	}
	if _, err := os.Stat(htmlPathFor(output)); !os.IsNotExist(err) {
		t.Error("HTML should not be written without --html")
	}
	if !gen.closed {
		t.Error("generator should be closed")
	}
	if gen.gotLayout != csv2labels.DefaultLayout {
		t.Errorf("layout = %q, want %q", gen.gotLayout, csv2labels.DefaultLayout)
	}
	if diff := cmp.Diff([]string{"LOTES"}, gen.gotInput.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
	if gen.gotInput.Title != "lotes" {
		t.Errorf("title = %q, want lotes", gen.gotInput.Title)
	}
	if string(gen.gotInput.CSV) != lotesCSV {
		t.Error("CSV bytes not passed through")
	}

	out := stdout.String()
	for _, want := range []string{"2 labels from 3 rows", "(1 dropped)", output} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout should contain %q, got %q", want, out)
		}
	}
	if !strings.Contains(stderr.String(), "dropped: row 2 (line 3)") {
		t.Errorf("stderr should list dropped row, got %q", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_FlagsReachGenerator - CLI flags override layout defaults
// ---------------------------------------------------------------------------

func TestRunGenerate_FlagsReachGenerator(t *testing.T) {
	t.Parallel()

	input := writeCSV(t, "produtos.tsv", "CODIGO\tLOTES\nA1\tL1\n")
	output := filepath.Join(t.TempDir(), "out.pdf")
	gen := &mockGenerator{result: mockResult(), layout: testLayout()}
	env, _, _ := newMockEnv(gen)

	err := runGenerate(context.Background(), []string{
		input, "-o", output, "-l", "produto", "-r", "CODIGO", "-d", "tab", "--title", "Produtos", "--html",
	}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.gotLayout != "produto" {
		t.Errorf("layout = %q, want produto", gen.gotLayout)
	}
	if diff := cmp.Diff([]string{"CODIGO"}, gen.gotInput.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
	if gen.gotInput.Delimiter != '\t' {
		t.Errorf("delimiter = %q, want tab", gen.gotInput.Delimiter)
	}
	if gen.gotInput.Title != "Produtos" {
		t.Errorf("title = %q, want Produtos", gen.gotInput.Title)
	}
	html, err := os.ReadFile(htmlPathFor(output))
	if err != nil {
		t.Fatalf("HTML should be written with --html: %v", err)
	}
	if string(html) != "<html>mock</html>" {
		t.Errorf("html = %q", html)
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_Errors - Error paths and their exit codes
// ---------------------------------------------------------------------------

func TestRunGenerate_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	validInput := writeCSV(t, "in.csv", lotesCSV)

	tests := []struct {
		name     string
		args     []string
		gen      *mockGenerator
		wantCode int
		wantMsg  string
	}{
		{
			name:     "no input",
			args:     nil,
			gen:      &mockGenerator{layout: testLayout()},
			wantCode: ExitUsage,
		},
		{
			name:     "two inputs",
			args:     []string{"a.csv", "b.csv"},
			gen:      &mockGenerator{layout: testLayout()},
			wantCode: ExitUsage,
		},
		{
			name:     "wrong extension",
			args:     []string{"labels.xlsx"},
			gen:      &mockGenerator{layout: testLayout()},
			wantCode: ExitUsage,
		},
		{
			name:     "missing input",
			args:     []string{filepath.Join(dir, "missing.csv")},
			gen:      &mockGenerator{layout: testLayout()},
			wantCode: ExitIO,
		},
		{
			name:     "unknown delimiter",
			args:     []string{validInput, "-d", "x"},
			gen:      &mockGenerator{layout: testLayout()},
			wantCode: ExitUsage,
		},
		{
			name:     "layout not found",
			args:     []string{validInput, "-l", "nope"},
			gen:      &mockGenerator{loadErr: csv2labels.ErrLayoutNotFound, layouts: []string{"caixa", "lotes"}},
			wantCode: ExitUsage,
			wantMsg:  "available: caixa, lotes",
		},
		{
			name:     "empty input",
			args:     []string{validInput},
			gen:      &mockGenerator{layout: testLayout(), err: csv2labels.ErrEmptyInput},
			wantCode: ExitInput,
			wantMsg:  "every row needs a value in LOTES",
		},
		{
			name:     "parse error",
			args:     []string{validInput},
			gen:      &mockGenerator{layout: testLayout(), err: csv2labels.ErrParse},
			wantCode: ExitInput,
		},
		{
			name:     "browser error",
			args:     []string{validInput},
			gen:      &mockGenerator{layout: testLayout(), err: csv2labels.ErrBrowserConnect},
			wantCode: ExitBrowser,
		},
		{
			name:     "missing config",
			args:     []string{validInput, "-c", filepath.Join(dir, "none.yaml")},
			gen:      &mockGenerator{layout: testLayout()},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := newMockEnv(tt.gen)
			args := append([]string{}, tt.args...)
			args = append(args, "-o", filepath.Join(t.TempDir(), "out.pdf"))

			err := runGenerate(context.Background(), args, env)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := exitCodeFor(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.wantCode, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_NothingWrittenOnError - Fatal errors leave no output
// ---------------------------------------------------------------------------

func TestRunGenerate_NothingWrittenOnError(t *testing.T) {
	t.Parallel()

	input := writeCSV(t, "in.csv", lotesCSV)
	output := filepath.Join(t.TempDir(), "Etiquetas.pdf")
	gen := &mockGenerator{layout: testLayout(), err: csv2labels.ErrPDFGeneration}
	env, stdout, _ := newMockEnv(gen)

	if err := runGenerate(context.Background(), []string{input, "-o", output, "--html"}, env); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("PDF should not exist after a failed run")
	}
	if _, err := os.Stat(htmlPathFor(output)); !os.IsNotExist(err) {
		t.Error("HTML should not exist after a failed run")
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_QuietVerbose - Output control
// ---------------------------------------------------------------------------

func TestRunGenerate_QuietVerbose(t *testing.T) {
	t.Parallel()

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		input := writeCSV(t, "in.csv", lotesCSV)
		gen := &mockGenerator{result: mockResult(), layout: testLayout()}
		env, stdout, stderr := newMockEnv(gen)

		err := runGenerate(context.Background(), []string{input, "-q", "-o", filepath.Join(t.TempDir(), "o.pdf")}, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout.Len() != 0 || stderr.Len() != 0 {
			t.Errorf("quiet should print nothing, got stdout=%q stderr=%q", stdout, stderr)
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		input := writeCSV(t, "in.csv", lotesCSV)
		res := mockResult()
		res.ParseWarnings = []csv2labels.ParseWarning{{Line: 4, Message: "expected 2 fields, got 3"}}
		gen := &mockGenerator{result: res, layout: testLayout()}
		env, stdout, stderr := newMockEnv(gen)

		err := runGenerate(context.Background(), []string{input, "-v", "-o", filepath.Join(t.TempDir(), "o.pdf")}, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout.String(), " in ") {
			t.Errorf("verbose summary should include timing, got %q", stdout.String())
		}
		if !strings.Contains(stderr.String(), "warning: ") {
			t.Errorf("verbose should print parse warnings, got %q", stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunGenerate_HTMLOnlyRealGenerator - End to end without a browser
// ---------------------------------------------------------------------------

func TestRunGenerate_HTMLOnlyRealGenerator(t *testing.T) {
	t.Parallel()

	input := writeCSV(t, "lotes.csv", lotesCSV)
	output := filepath.Join(t.TempDir(), "Etiquetas.pdf")
	env, stdout, _ := newMockEnv(nil)
	env.NewGenerator = DefaultEnv().NewGenerator

	err := runGenerate(context.Background(), []string{input, "-o", output, "--html-only", "-q"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("--html-only should not write a PDF")
	}
	html, err := os.ReadFile(htmlPathFor(output))
	if err != nil {
		t.Fatalf("reading HTML: %v", err)
	}
	if got := strings.Count(string(html), `<section class="label"`); got != 2 {
		t.Errorf("labels = %d, want 2", got)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet run printed %q", stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_EnvOverrides - CSV2LABELS_* variables
// ---------------------------------------------------------------------------

func TestRunGenerate_EnvOverrides(t *testing.T) {
	input := writeCSV(t, "in.csv", lotesCSV)
	output := filepath.Join(t.TempDir(), "from-env.pdf")
	t.Setenv("CSV2LABELS_OUTPUT", output)
	t.Setenv("CSV2LABELS_LAYOUT", "caixa")
	t.Setenv("CSV2LABELS_TYPO", "1")

	gen := &mockGenerator{result: mockResult(), layout: testLayout()}
	env, _, stderr := newMockEnv(gen)

	if err := runGenerate(context.Background(), []string{input}, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output from env not written: %v", err)
	}
	if gen.gotLayout != "caixa" {
		t.Errorf("layout = %q, want caixa", gen.gotLayout)
	}
	if !strings.Contains(stderr.String(), "CSV2LABELS_TYPO") {
		t.Errorf("unknown env var should warn, got %q", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_ConfigFile - Config file with flag precedence
// ---------------------------------------------------------------------------

func TestRunGenerate_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "labels.yaml")
	cfgYAML := "layout:\n  name: produto\n  required: [CODIGO]\ninput:\n  delimiter: \";\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	input := writeCSV(t, "in.csv", "CODIGO;LOTES\nA;B\n")

	gen := &mockGenerator{result: mockResult(), layout: testLayout()}
	env, _, _ := newMockEnv(gen)

	err := runGenerate(context.Background(), []string{input, "-c", cfgPath, "-l", "lotes", "-o", filepath.Join(dir, "o.pdf")}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.gotLayout != "lotes" {
		t.Errorf("flag should win over config: layout = %q", gen.gotLayout)
	}
	if diff := cmp.Diff([]string{"CODIGO"}, gen.gotInput.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
	if gen.gotInput.Delimiter != ';' {
		t.Errorf("delimiter = %q, want ;", gen.gotInput.Delimiter)
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI wins over config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Output: config.OutputConfig{File: "cfg.pdf"},
		Layout: config.LayoutConfig{Name: "caixa", Required: []string{"A"}},
		Assets: config.AssetsConfig{Style: "compact"},
	}
	mergeFlags(&generateFlags{output: "cli.pdf", required: []string{"B"}}, cfg)

	if cfg.Output.File != "cli.pdf" {
		t.Errorf("Output.File = %q, want cli.pdf", cfg.Output.File)
	}
	if cfg.Layout.Name != "caixa" {
		t.Errorf("Layout.Name = %q, want caixa (unset flag)", cfg.Layout.Name)
	}
	if diff := cmp.Diff([]string{"B"}, cfg.Layout.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
	if cfg.Assets.Style != "compact" {
		t.Errorf("Assets.Style = %q, want compact", cfg.Assets.Style)
	}

	empty := &config.Config{}
	mergeFlags(&generateFlags{}, empty)
	if empty.Output.File != config.DefaultOutputFile {
		t.Errorf("Output.File = %q, want %q", empty.Output.File, config.DefaultOutputFile)
	}
}

// ---------------------------------------------------------------------------
// TestResolveInputPath - Input validation
// ---------------------------------------------------------------------------

func TestResolveInputPath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{"csv", []string{"a.csv"}, "a.csv", nil},
		{"upper case", []string{"A.CSV"}, "A.CSV", nil},
		{"tsv", []string{"a.tsv"}, "a.tsv", nil},
		{"txt", []string{"dir/a.txt"}, "dir/a.txt", nil},
		{"none", nil, "", ErrNoInput},
		{"two", []string{"a.csv", "b.csv"}, "", ErrUsage},
		{"pdf", []string{"a.pdf"}, "", ErrInvalidExtension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveInputPath(tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHTMLPathFor - HTML sibling path
// ---------------------------------------------------------------------------

func TestHTMLPathFor(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"Etiquetas.pdf", "Etiquetas.html"},
		{"out/labels.pdf", "out/labels.html"},
		{"noext", "noext.html"},
	}
	for _, tt := range tests {
		if got := htmlPathFor(tt.in); got != tt.want {
			t.Errorf("htmlPathFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWriteOutputs_ReplacesExisting - Atomic overwrite
// ---------------------------------------------------------------------------

func TestWriteOutputs_ReplacesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Etiquetas.pdf")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}

	res := &csv2labels.GenerateResult{PDF: []byte("new")}
	if err := writeOutputs(path, res, false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}
}
