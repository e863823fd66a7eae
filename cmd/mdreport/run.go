package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	mdreport "github.com/alnah/go-mdreport"
	"github.com/alnah/go-mdreport/internal/assets"
	"github.com/alnah/go-mdreport/internal/config"
	"github.com/alnah/go-mdreport/internal/fileutil"
	"github.com/alnah/go-mdreport/internal/hints"
)

// Sentinel errors for CLI file I/O.
var (
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// outputPerm is the permission for generated files.
const outputPerm = 0o644

// run converts one report as described by flags.
func run(ctx context.Context, flags *cliFlags, env *Environment) error {
	if flags.help {
		printUsage(env.Stdout)
		return nil
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "mdreport %s\n", Version)
		return nil
	}

	logger, err := newLogger(flags, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := cfg.PDF.TimeoutDuration()
	if err != nil {
		return err
	}

	inputPath := resolveInputPath(flags, cfg)
	markdown, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		hint := ""
		if errors.Is(err, os.ErrNotExist) {
			hint = hints.ForInputNotFound()
		}
		return fmt.Errorf("%w: %w%s", ErrReadInput, err, hint)
	}
	logger.WithFields(logrus.Fields{"path": inputPath, "bytes": len(markdown)}).Debug("read input")

	var extraCSS string
	if cfg.CSS.File != "" {
		data, err := os.ReadFile(cfg.CSS.File) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: css file: %w", ErrReadInput, err)
		}
		extraCSS = string(data)
	}

	conv, err := mdreport.NewConverter(
		mdreport.WithTimeout(timeout),
		mdreport.WithStyle(cfg.CSS.Style),
		mdreport.WithAssetPath(cfg.Assets.BasePath),
		mdreport.WithTitle(cfg.Document.Title),
		mdreport.WithLang(cfg.Document.Lang),
		mdreport.WithBrowserBin(cfg.PDF.BrowserBin),
		mdreport.WithNoSandbox(cfg.PDF.NoSandbox),
		mdreport.WithLogger(logger),
	)
	if err != nil {
		if errors.Is(err, mdreport.ErrStyleNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.NewEmbeddedLoader().StyleNames()))
		}
		return err
	}
	defer func() {
		if closeErr := conv.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("closing converter")
		}
	}()

	result, err := conv.Convert(ctx, mdreport.Input{
		Markdown:  string(markdown),
		CSS:       extraCSS,
		SourceDir: filepath.Dir(inputPath),
		PDF:       cfg.PDF.Enabled,
		Page:      &mdreport.PageSettings{Size: cfg.PDF.PageSize, Margin: cfg.PDF.Margin},
	})
	if err != nil {
		return withConvertHint(err, cfg)
	}

	htmlPath := fileutil.SiblingPath(inputPath, cfg.Output.Filename)
	if err := writeOutput(htmlPath, result.HTML, flags.common.quiet, env.Stdout); err != nil {
		return err
	}

	if cfg.PDF.Enabled {
		pdfPath := fileutil.SiblingPath(inputPath, cfg.PDF.Filename)
		if err := writeOutput(pdfPath, result.PDF, flags.common.quiet, env.Stdout); err != nil {
			return err
		}
	}

	return nil
}

// newLogger builds the diagnostics logger on w. The level is warn by
// default, debug with --verbose, error with --quiet, and --log-level wins
// over both.
func newLogger(flags *cliFlags, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.Out = w
	logger.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	logger.Level = logrus.WarnLevel

	switch {
	case flags.common.logLevel != "":
		level, err := logrus.ParseLevel(flags.common.logLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.Level = level
	case flags.common.quiet:
		logger.Level = logrus.ErrorLevel
	case flags.common.verbose:
		logger.Level = logrus.DebugLevel
	}

	return logger, nil
}

// loadConfig loads the named config, or returns defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(userConfigCandidates(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// userConfigCandidates lists where a named config would be looked up in the
// user config directory.
func userConfigCandidates(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-mdreport", name+".yaml")}
}

// mergeFlags applies explicitly set flags over cfg values (CLI wins).
func mergeFlags(cfg *config.Config, flags *cliFlags) {
	doc := flags.document
	if flags.isSet("input") {
		cfg.Input.Path = doc.input
	}
	if flags.isSet("output") {
		cfg.Output.Filename = doc.output
	}
	if flags.isSet("title") {
		cfg.Document.Title = doc.title
	}
	if flags.isSet("style") {
		cfg.CSS.Style = doc.style
	}
	if flags.isSet("css") {
		cfg.CSS.File = doc.css
	}
	if flags.isSet("asset-path") {
		cfg.Assets.BasePath = doc.assetPath
	}

	pdf := flags.pdf
	if flags.isSet("pdf") {
		cfg.PDF.Enabled = pdf.enabled
	}
	if flags.isSet("page-size") {
		cfg.PDF.PageSize = pdf.pageSize
	}
	if flags.isSet("margin") {
		cfg.PDF.Margin = pdf.margin
	}
	if flags.isSet("timeout") {
		cfg.PDF.Timeout = pdf.timeout
	}
}

// resolveInputPath picks the input file: positional argument, then
// config (already merged with --input), then report.md.
func resolveInputPath(flags *cliFlags, cfg *config.Config) string {
	if len(flags.args) > 0 {
		return flags.args[0]
	}
	if cfg.Input.Path != "" {
		return cfg.Input.Path
	}
	return config.DefaultInputPath
}

// writeOutput writes data to path and reports it on stdout unless quiet.
func writeOutput(path string, data []byte, quiet bool, stdout io.Writer) error {
	if err := os.WriteFile(path, data, outputPerm); err != nil { // #nosec G306 -- generated report is meant to be shared
		return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if !quiet {
		fmt.Fprintf(stdout, "✓ Generated %s\n", path)
	}
	return nil
}

// withConvertHint appends an actionable hint to PDF export failures.
func withConvertHint(err error, cfg *config.Config) error {
	switch {
	case errors.Is(err, mdreport.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect(cfg.PDF.NoSandbox, cfg.PDF.BrowserBin))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, mdreport.ErrPageLoad):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	default:
		return err
	}
}
