package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdreport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxTitleLength    = 200
	MaxLangLength     = 35 // BCP 47 practical limit
	MaxStyleLength    = 100
	MaxPageSizeLength = 10 // "letter", "a4", "legal"
	MaxTimeoutLength  = 20
)

// Defaults applied by DefaultConfig and for zero values.
const (
	DefaultInputPath      = "report.md"
	DefaultOutputFilename = "report.html"
	DefaultPDFFilename    = "report.pdf"
	DefaultLang           = "en"
	DefaultStyle          = "default"
	DefaultPageSize       = "letter"
	DefaultMargin         = 0.5
	DefaultTimeout        = 30 * time.Second
)

// Margin bounds in inches.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// appDirName is the directory under the user config dir searched for
// config files.
const appDirName = "go-mdreport"

var validPageSizes = []string{"letter", "a4", "legal"}

// Config holds the report generation settings.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	CSS      CSSConfig      `yaml:"css"`
	Assets   AssetsConfig   `yaml:"assets"`
	PDF      PDFConfig      `yaml:"pdf"`
}

// InputConfig defines the markdown source.
type InputConfig struct {
	Path string `yaml:"path"` // default report.md
}

// OutputConfig defines the HTML destination.
type OutputConfig struct {
	Filename string `yaml:"filename"` // written next to the input unless it contains a separator
}

// DocumentConfig defines page-level settings.
type DocumentConfig struct {
	Title string `yaml:"title"` // empty = first "# " heading, then "Report"
	Lang  string `yaml:"lang"`
}

// CSSConfig defines the stylesheet.
type CSSConfig struct {
	Style string `yaml:"style"` // embedded or custom style name
	File  string `yaml:"file"`  // extra CSS appended after the style
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// PDFConfig defines the optional PDF export.
type PDFConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Filename   string  `yaml:"filename"`
	PageSize   string  `yaml:"pageSize"`
	Margin     float64 `yaml:"margin"` // inches, 0 = default
	Timeout    string  `yaml:"timeout"`
	BrowserBin string  `yaml:"browserBin"`
	NoSandbox  bool    `yaml:"noSandbox"`
}

// TimeoutDuration parses Timeout. An empty value yields DefaultTimeout.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout: must be positive, got %s", ErrInvalidValue, p.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for callers who build
// a Config in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.path", c.Input.Path, MaxPathLength},
		{"output.filename", c.Output.Filename, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"css.style", c.CSS.Style, MaxStyleLength},
		{"css.file", c.CSS.File, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"pdf.filename", c.PDF.Filename, MaxPathLength},
		{"pdf.pageSize", c.PDF.PageSize, MaxPageSizeLength},
		{"pdf.timeout", c.PDF.Timeout, MaxTimeoutLength},
		{"pdf.browserBin", c.PDF.BrowserBin, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.PDF.PageSize != "" && !isValidPageSize(c.PDF.PageSize) {
		return fmt.Errorf("%w: pdf.pageSize %q (must be %s)", ErrInvalidValue, c.PDF.PageSize, strings.Join(validPageSizes, ", "))
	}
	if c.PDF.Margin != 0 && (c.PDF.Margin < MinMargin || c.PDF.Margin > MaxMargin) {
		return fmt.Errorf("%w: pdf.margin must be between %.2f and %.1f, got %.2f", ErrInvalidValue, MinMargin, MaxMargin, c.PDF.Margin)
	}
	if _, err := c.PDF.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

func isValidPageSize(size string) bool {
	size = strings.ToLower(size)
	for _, s := range validPageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:    InputConfig{Path: DefaultInputPath},
		Output:   OutputConfig{Filename: DefaultOutputFilename},
		Document: DocumentConfig{Lang: DefaultLang},
		CSS:      CSSConfig{Style: DefaultStyle},
		PDF: PDFConfig{
			Filename: DefaultPDFFilename,
			PageSize: DefaultPageSize,
			Margin:   DefaultMargin,
			Timeout:  DefaultTimeout.String(),
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := DefaultConfig()
	if err := yamlutil.ReadStrict(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, {UserConfigDir}/go-mdreport/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, appDirName))
	}

	for _, dir := range dirs {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, name+ext)
			if fileExists(candidate) {
				return candidate, nil
			}
			triedPaths = append(triedPaths, candidate)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
