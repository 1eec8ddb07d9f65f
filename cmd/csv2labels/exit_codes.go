package main

import (
	"context"
	"errors"
	"os"

	csv2labels "github.com/alnah/go-csv2labels"
	"github.com/alnah/go-csv2labels/internal/config"
)

// Exit codes for csv2labels CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Labels generated
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, layout, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitInput   = 5 // Input file unreadable or without printable rows
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Input data errors (exit 5)
	if errors.Is(err, csv2labels.ErrParse) ||
		errors.Is(err, csv2labels.ErrEmptyInput) {
		return ExitInput
	}

	// Browser errors (exit 4)
	if errors.Is(err, csv2labels.ErrBrowserConnect) ||
		errors.Is(err, csv2labels.ErrPageCreate) ||
		errors.Is(err, csv2labels.ErrPageLoad) ||
		errors.Is(err, csv2labels.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, csv2labels.ErrInvalidLayout) ||
		errors.Is(err, csv2labels.ErrLayoutNotFound) ||
		errors.Is(err, csv2labels.ErrStyleNotFound) ||
		errors.Is(err, csv2labels.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
