// Package csv2labels prints barcode labels from CSV files.
//
// # Quick Start
//
// Create a generator, generate labels, and close when done:
//
//	gen, err := csv2labels.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	data, _ := os.ReadFile("lotes.csv")
//	result, err := gen.Generate(ctx, nil, csv2labels.Input{CSV: data})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("Etiquetas.pdf", result.PDF, 0644)
//
// Each accepted CSV row becomes exactly one page, in file order. The result
// also carries the intermediate HTML (result.HTML) and every diagnostic:
// rows dropped for missing required fields, elements skipped for empty
// values, and barcodes that failed to render.
//
// # Generation Pipeline
//
//  1. CSV parsing with delimiter detection and UTF-8/UTF-16 decoding
//  2. Filtering: rows need every required field, non-empty after trimming
//  3. Layout: one page per row, barcodes and text placed per the layout
//  4. PDF rendering via headless Chrome (go-rod)
//
// Rows are processed strictly in sequence. A field that is empty or fails to
// render is left off its page and reported; it never drops the page.
//
// # Layouts
//
// A layout is a YAML document naming the page size, the required fields and
// the elements to place. Built-in presets are "lotes" (default), "produto"
// and "caixa":
//
//	name: lotes
//	page: {width: 10, height: 7, unit: cm, orientation: landscape}
//	required: [LOTES]
//	barcode: {symbology: code128, scale: 3, height: 10, includeText: true}
//	elements:
//	  - {type: barcode, field: LOTES, x: 2, y: 1, width: 6, height: 4}
//
// Load one with Generator.LoadLayout or parse your own with ParseLayout.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := csv2labels.NewGenerator(
//	    csv2labels.WithTimeout(2 * time.Minute),
//	    csv2labels.WithStyle("outlined"),
//	    csv2labels.WithAssetPath("/path/to/custom/assets"),
//	    csv2labels.WithLogger(logger),
//	)
//
// # Run State
//
// A RunState tracks one run at a time for a user interface: Generate returns
// ErrBusy while a run on the same state is active, and RunState.Label gives
// the trigger text for the current phase.
//
// # Errors
//
// Fatal errors wrap the sentinels in this package and can be matched with
// errors.Is: ErrParse and ErrEmptyInput for input data, ErrInvalidLayout and
// ErrLayoutNotFound for layouts, ErrBrowserConnect, ErrPageLoad and
// ErrPDFGeneration for the PDF sink.
package csv2labels
