package main

// Notes:
// - printUsage/printGenerateUsage: we test that required content strings are
//   present in the output. We don't test exact formatting.
// - runHelp: we test routing to the correct help topic.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Main usage output
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	output := buf.String()

	for _, s := range []string{"Usage: csv2labels", "Commands:", "generate", "layouts", "doctor", "version", "help"} {
		if !strings.Contains(output, s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintGenerateUsage - Generate command usage output
// ---------------------------------------------------------------------------

func TestPrintGenerateUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printGenerateUsage(&buf)
	output := buf.String()

	for _, s := range []string{
		"--output", "--layout", "--required", "--delimiter", "--html-only",
		"--timeout", "--quiet", "--verbose", "Etiquetas.pdf", "Exit codes",
	} {
		if !strings.Contains(output, s) {
			t.Errorf("printGenerateUsage output should contain %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Topic routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{"no topic", nil, "Commands:", ""},
		{"generate", []string{"generate"}, "--required", ""},
		{"layouts", []string{"layouts"}, "csv2labels layouts", ""},
		{"doctor", []string{"doctor"}, "--json", ""},
		{"version", []string{"version"}, "csv2labels version", ""},
		{"help", []string{"help"}, "csv2labels help", ""},
		{"unknown", []string{"nope"}, "", "Unknown command: nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			runHelp(tt.args, &Environment{Stdout: &stdout, Stderr: &stderr})

			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout should contain %q, got %q", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, stderr.String())
			}
		})
	}
}
