package csv2labels

import (
	"errors"

	"github.com/alnah/go-csv2labels/internal/barcode"
)

// Sentinel errors for library operations.
var (
	// Input data errors. Both abort a run before layout.
	ErrParse      = errors.New("cannot parse input file")
	ErrEmptyInput = errors.New("no records to print")

	// ErrBusy is returned when a run is started on a RunState that is running.
	ErrBusy = errors.New("a generation run is already in progress")

	// Layout errors.
	ErrInvalidLayout  = errors.New("invalid layout")
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrBarcodeRender is wrapped by every RenderError from the built-in renderer.
	ErrBarcodeRender = barcode.ErrRender

	// Document sink errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
