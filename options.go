package mdreport

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string // name, file path, or CSS content
	resolvedStyle string
	assetPath     string
	title         string
	lang          string
	browserBin    string
	noSandbox     bool
}

// defaultTimeout bounds PDF export when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdreport: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the stylesheet. The value is a style name resolved through
// the asset loader ("default"), a file path ("./report.css"), or raw CSS
// content (anything containing "{").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ entries
// override the embedded assets. Missing entries fall back to embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithLogger sets the logger used for stage timings and diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithTitle sets the page title used when Input.Title is empty.
func WithTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.title = title
	}
}

// WithLang sets the document language attribute.
func WithLang(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}

// WithBrowserBin sets the Chrome binary used for PDF export.
// Empty means the launcher locates or downloads one.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithNoSandbox disables the Chrome sandbox, required in most containers.
func WithNoSandbox(noSandbox bool) Option {
	return func(c *Converter) {
		c.cfg.noSandbox = noSandbox
	}
}

// discardLogger returns a logger that drops every entry.
func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}
