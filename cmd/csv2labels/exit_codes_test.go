package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every category plus wrapped
//   errors to verify the errors.Is() chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general,
//   2=usage) and custom codes below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	csv2labels "github.com/alnah/go-csv2labels"
	"github.com/alnah/go-csv2labels/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Input data errors (exit 5)
		{"parse", csv2labels.ErrParse, ExitInput},
		{"empty input", csv2labels.ErrEmptyInput, ExitInput},
		{"wrapped empty input", fmt.Errorf("run: %w", csv2labels.ErrEmptyInput), ExitInput},

		// Browser errors (exit 4)
		{"browser connect", csv2labels.ErrBrowserConnect, ExitBrowser},
		{"page create", csv2labels.ErrPageCreate, ExitBrowser},
		{"page load", csv2labels.ErrPageLoad, ExitBrowser},
		{"pdf generation", csv2labels.ErrPDFGeneration, ExitBrowser},
		{"deadline", context.DeadlineExceeded, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("converting to PDF: %w", csv2labels.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write pdf", ErrWritePDF, ExitIO},
		{"wrapped read input", fmt.Errorf("%w: %w", ErrReadInput, os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config invalid", config.ErrConfigInvalid, ExitUsage},
		{"invalid layout", csv2labels.ErrInvalidLayout, ExitUsage},
		{"layout not found", csv2labels.ErrLayoutNotFound, ExitUsage},
		{"style not found", csv2labels.ErrStyleNotFound, ExitUsage},
		{"invalid asset path", csv2labels.ErrInvalidAssetPath, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"busy", csv2labels.ErrBusy, ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	seen := map[int]bool{}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser, ExitInput} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
		if seen[code] {
			t.Errorf("exit code %d used twice", code)
		}
		seen[code] = true
	}
}
