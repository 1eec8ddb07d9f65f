package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: csv2labels <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Print one barcode label per CSV row to a PDF")
	fmt.Fprintln(w, "  layouts    List label layouts or show one")
	fmt.Fprintln(w, "  doctor     Check the browser and bundled assets")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'csv2labels <file.csv>' is short for 'csv2labels generate <file.csv>'.")
	fmt.Fprintln(w, "Run 'csv2labels help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: csv2labels generate <input.csv> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print one label per CSV row. Rows missing a required field are dropped")
	fmt.Fprintln(w, "and reported; a field that cannot be printed leaves the rest of its label.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    CSV file with a header row (.csv, .tsv or .txt)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (default Etiquetas.pdf, replaced atomically)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -d, --delimiter <s>       Field delimiter: , ; | or tab (default: detect)")
	fmt.Fprintln(w, "      --title <s>           HTML document title (default: input file name)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -l, --layout <name>       Layout preset (lotes, produto, caixa) or .yaml path")
	fmt.Fprintln(w, "  -r, --required <list>     Required fields, comma-separated (default: from layout)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name>        CSS style name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and layouts/ overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Debugging:")
	fmt.Fprintln(w, "      --html                Also write the HTML next to the PDF")
	fmt.Fprintln(w, "      --html-only           Write the HTML only, skip PDF")
	fmt.Fprintln(w, "  -t, --timeout <d>         Browser page load timeout (default 30s)")
	fmt.Fprintln(w, "      --log-file <path>     Write the JSON diagnostics log to a file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show diagnostics and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage/config, 3 file I/O, 4 browser, 5 input data.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "layouts":
		fmt.Fprintln(env.Stdout, "Usage: csv2labels layouts [list | show <name>] [--asset-path <dir>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List the available label layouts, or print the YAML of one.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: csv2labels doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, the temp directory, layouts and fonts.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: csv2labels version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: csv2labels help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
