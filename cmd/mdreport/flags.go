package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrTooManyArgs indicates more than one positional input was given.
var ErrTooManyArgs = errors.New("too many arguments")

// commonFlags holds output verbosity and config selection.
type commonFlags struct {
	config   string
	quiet    bool
	verbose  bool
	logLevel string
}

// documentFlags holds input, output, and page content flags.
type documentFlags struct {
	input     string
	output    string
	title     string
	style     string
	css       string
	assetPath string
}

// pdfFlags holds PDF export flags.
type pdfFlags struct {
	enabled  bool
	pageSize string
	margin   float64
	timeout  string
}

// cliFlags holds every flag of the mdreport command.
type cliFlags struct {
	common   commonFlags
	document documentFlags
	pdf      pdfFlags
	help     bool
	version  bool
	args     []string

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// isSet reports whether the named flag was given explicitly.
func (f *cliFlags) isSet(name string) bool {
	return f.changed != nil && f.changed(name)
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timings and debug traces")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// addDocumentFlags adds input/output and styling flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.input, "input", "i", "", "markdown file (default report.md)")
	fs.StringVarP(&f.output, "output", "o", "", "output file name or path (default report.html)")
	fs.StringVar(&f.title, "title", "", "page title")
	fs.StringVar(&f.style, "style", "", "embedded or custom style name")
	fs.StringVar(&f.css, "css", "", "extra CSS file")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addPDFFlags adds PDF export flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.BoolVar(&f.enabled, "pdf", false, "also write a PDF via headless Chrome")
	fs.StringVar(&f.pageSize, "page-size", "", "PDF page size: letter, a4, legal")
	fs.Float64Var(&f.margin, "margin", 0, "PDF margin in inches")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF timeout (e.g. 30s)")
}

// parseFlags parses command-line arguments, excluding the program name.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("mdreport", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addPDFFlags(fs, &f.pdf)
	fs.BoolVarP(&f.help, "help", "h", false, "show usage")
	fs.BoolVar(&f.version, "version", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	f.args = fs.Args()
	if len(f.args) > 1 {
		return nil, fmt.Errorf("%w: expected at most one input file, got %d", ErrTooManyArgs, len(f.args))
	}
	f.changed = fs.Changed

	return f, nil
}
