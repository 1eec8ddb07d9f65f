package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	csv2labels "github.com/alnah/go-csv2labels"
	"github.com/alnah/go-csv2labels/internal/config"
	"github.com/alnah/go-csv2labels/internal/fileutil"
	"github.com/alnah/go-csv2labels/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input file specified")
	ErrReadInput        = errors.New("failed to read input file")
	ErrWritePDF         = errors.New("failed to write output file")
	ErrInvalidExtension = errors.New("input must have a .csv, .tsv or .txt extension")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// inputExtensions are the accepted input file extensions.
var inputExtensions = []string{".csv", ".tsv", ".txt"}

// runGenerate reads one CSV file and writes one label document.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	logger, closeLog, err := newLogger(flags.common, cfg.Log, env.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []csv2labels.Option{
		csv2labels.WithLogger(logger),
		csv2labels.WithStyle(cfg.Assets.Style),
		csv2labels.WithAssetPath(cfg.Assets.BasePath),
	}
	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, csv2labels.WithTimeout(d))
	}
	gen, err := env.NewGenerator(opts...)
	if err != nil {
		return withStyleHint(err)
	}
	defer gen.Close()

	layoutName := cfg.Layout.Name
	if layoutName == "" {
		layoutName = csv2labels.DefaultLayout
	}
	lay, err := gen.LoadLayout(layoutName)
	if err != nil {
		if errors.Is(err, csv2labels.ErrLayoutNotFound) {
			available, _ := gen.Layouts()
			return fmt.Errorf("%w%s", err, hints.ForLayoutNotFound(available))
		}
		return err
	}

	required := cfg.Layout.Required
	if len(required) == 0 {
		required = lay.Required
	}
	title := flags.title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}

	start := env.Now()
	res, err := gen.Generate(ctx, &csv2labels.RunState{}, csv2labels.Input{
		CSV:       data,
		Layout:    lay,
		Required:  required,
		Delimiter: cfg.DelimiterRune(),
		Title:     title,
		HTMLOnly:  flags.outputMode.htmlOnly,
	})
	if err != nil {
		return withGenerateHint(err, required)
	}

	outputPath := cfg.Output.File
	if err := writeOutputs(outputPath, res, flags.outputMode.htmlOnly, flags.outputMode.html || cfg.Output.HTML); err != nil {
		return err
	}

	printSummary(env, flags.common, inputPath, outputPath, res, env.Now().Sub(start))
	return nil
}

// loadConfig loads the config named by flag, else by env, else defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over the config (CLI wins).
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.File = flags.output
	}
	if flags.layout != "" {
		cfg.Layout.Name = flags.layout
	}
	if len(flags.required) > 0 {
		cfg.Layout.Required = flags.required
	}
	if flags.delimiter != "" {
		cfg.Input.Delimiter = flags.delimiter
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.assets.style != "" {
		cfg.Assets.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.outputMode.html {
		cfg.Output.HTML = true
	}
	if cfg.Output.File == "" {
		cfg.Output.File = config.DefaultOutputFile
	}
}

// resolveInputPath checks there is exactly one input with a known extension.
func resolveInputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
	default:
		return "", fmt.Errorf("%w: expected one input file, got %d", ErrUsage, len(args))
	}
	path := args[0]
	if !fileutil.HasExtension(path, inputExtensions...) {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	return path, nil
}

// htmlPathFor returns the HTML file written next to a PDF path.
func htmlPathFor(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".html"
}

// writeOutputs writes the PDF and, when asked, the HTML. Files are replaced
// atomically so a failed run never leaves a truncated document.
func writeOutputs(pdfPath string, res *csv2labels.GenerateResult, htmlOnly, withHTML bool) error {
	if dir := filepath.Dir(pdfPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %w%s", ErrWritePDF, err, hints.ForOutputDirectory())
		}
	}
	if htmlOnly || withHTML {
		if err := fileutil.WriteFileAtomic(htmlPathFor(pdfPath), res.HTML, filePermissions); err != nil {
			return fmt.Errorf("%w: %w", ErrWritePDF, err)
		}
	}
	if htmlOnly {
		return nil
	}
	if err := fileutil.WriteFileAtomic(pdfPath, res.PDF, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWritePDF, err)
	}
	return nil
}

// withGenerateHint appends the hint matching a generation error.
func withGenerateHint(err error, required []string) error {
	switch {
	case errors.Is(err, csv2labels.ErrEmptyInput):
		return fmt.Errorf("%w%s", err, hints.ForEmptyInput(required))
	case errors.Is(err, csv2labels.ErrParse):
		return fmt.Errorf("%w%s", err, hints.ForParse())
	case errors.Is(err, csv2labels.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, csv2labels.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}

// withStyleHint lists the built-in styles when a style name is unknown.
func withStyleHint(err error) error {
	if !errors.Is(err, csv2labels.ErrStyleNotFound) {
		return err
	}
	loader, lerr := csv2labels.NewAssetLoader("")
	if lerr != nil {
		return err
	}
	available, _ := loader.ListStyles()
	return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(available))
}

// printSummary reports the result on stdout and the per-row diagnostics on
// stderr. Quiet mode prints nothing.
func printSummary(env *Environment, f commonFlags, inputPath, outputPath string, res *csv2labels.GenerateResult, elapsed time.Duration) {
	if f.quiet {
		return
	}

	for _, w := range res.Rejected {
		fmt.Fprintf(env.Stderr, "dropped: %s\n", w)
	}
	for _, re := range res.RenderErrors {
		fmt.Fprintf(env.Stderr, "failed: %v\n", re)
	}
	if f.verbose {
		for _, w := range res.ParseWarnings {
			fmt.Fprintf(env.Stderr, "warning: %s\n", w)
		}
		for _, s := range res.Skipped {
			fmt.Fprintf(env.Stderr, "skipped: %s\n", s)
		}
	}

	target := outputPath
	if res.PDF == nil {
		target = htmlPathFor(outputPath)
	}
	fmt.Fprintf(env.Stdout, "%s -> %s: %d %s from %d %s",
		inputPath, target, res.Pages, plural(res.Pages, "label", "labels"),
		res.Records, plural(res.Records, "row", "rows"))
	if n := len(res.Rejected); n > 0 {
		fmt.Fprintf(env.Stdout, " (%d dropped)", n)
	}
	if n := len(res.RenderErrors); n > 0 {
		fmt.Fprintf(env.Stdout, " (%d %s failed)", n, plural(n, "field", "fields"))
	}
	if f.verbose {
		fmt.Fprintf(env.Stdout, " in %s", elapsed.Round(time.Millisecond))
	}
	fmt.Fprintln(env.Stdout)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
