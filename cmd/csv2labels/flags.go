package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logFile string
}

// assetFlags holds asset-related flags (CSS style, custom asset path).
type assetFlags struct {
	style     string // Name or path for CSS
	assetPath string // Override asset directory
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common     commonFlags
	output     string
	layout     string
	required   []string
	delimiter  string
	title      string
	timeout    string
	assets     assetFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show diagnostics and timing")
	fs.StringVar(&f.logFile, "log-file", "", "write the JSON diagnostics log to a file")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with styles/ and layouts/ overrides")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "also write the HTML used to print the PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write the HTML only, skip PDF")
}

// parseGenerateFlags parses generate flags and returns the positional arguments.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	f := &generateFlags{}
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVarP(&f.output, "output", "o", "", "output PDF file (default Etiquetas.pdf)")
	fs.StringVarP(&f.layout, "layout", "l", "", "layout preset name or .yaml path")
	fs.StringSliceVarP(&f.required, "required", "r", nil, "required fields, comma-separated")
	fs.StringVarP(&f.delimiter, "delimiter", "d", "", "field delimiter: , ; | or tab (default: detect)")
	fs.StringVar(&f.title, "title", "", "HTML document title (default: input file name)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "browser page load timeout (e.g. 30s, 2m)")
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, fs.Args(), nil
}

// layoutsFlags holds flags for the layouts command.
type layoutsFlags struct {
	assetPath string
}

// parseLayoutsFlags parses layouts flags and returns the positional arguments.
func parseLayoutsFlags(args []string) (*layoutsFlags, []string, error) {
	f := &layoutsFlags{}
	fs := flag.NewFlagSet("layouts", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with layouts/ overrides")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-v", "--verbose":
			return true
		}
	}
	return false
}
