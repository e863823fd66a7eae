package main

// Notes:
// - parseFlags: we test defaults, short/long forms, positional handling, and
//   change tracking used by mergeFlags. pflag's own parsing is not retested.

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseFlags - Flag parsing and change tracking
// ---------------------------------------------------------------------------

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("no arguments", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.args) != 0 || f.help || f.version || f.pdf.enabled {
			t.Errorf("unexpected defaults: %+v", f)
		}
		if f.isSet("input") {
			t.Error("input should not be marked as set")
		}
	})

	t.Run("short flags", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{"-i", "in.md", "-o", "out.html", "-c", "work", "-q", "-v", "-t", "1m"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.document.input != "in.md" || f.document.output != "out.html" {
			t.Errorf("input/output = %q/%q", f.document.input, f.document.output)
		}
		if f.common.config != "work" || !f.common.quiet || !f.common.verbose {
			t.Errorf("common = %+v", f.common)
		}
		if f.pdf.timeout != "1m" {
			t.Errorf("timeout = %q, want 1m", f.pdf.timeout)
		}
		for _, name := range []string{"input", "output", "config", "timeout"} {
			if !f.isSet(name) {
				t.Errorf("%s should be marked as set", name)
			}
		}
	})

	t.Run("long flags", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{
			"--title", "Q3", "--style", "default", "--css", "extra.css",
			"--asset-path", "assets", "--pdf", "--page-size", "a4",
			"--margin", "1.5", "--log-level", "info",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.document.title != "Q3" || f.document.style != "default" || f.document.css != "extra.css" || f.document.assetPath != "assets" {
			t.Errorf("document = %+v", f.document)
		}
		if !f.pdf.enabled || f.pdf.pageSize != "a4" || f.pdf.margin != 1.5 {
			t.Errorf("pdf = %+v", f.pdf)
		}
		if f.common.logLevel != "info" {
			t.Errorf("logLevel = %q", f.common.logLevel)
		}
	})

	t.Run("positional input", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{"quarterly.md", "--pdf"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.args) != 1 || f.args[0] != "quarterly.md" {
			t.Errorf("args = %v, want [quarterly.md]", f.args)
		}
	})

	t.Run("help and version", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{"-h", "--version"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !f.help || !f.version {
			t.Errorf("help=%v version=%v, want both true", f.help, f.version)
		}
	})

	t.Run("too many arguments", func(t *testing.T) {
		t.Parallel()

		_, err := parseFlags([]string{"a.md", "b.md"})
		if !errors.Is(err, ErrTooManyArgs) {
			t.Errorf("expected ErrTooManyArgs, got %v", err)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		if _, err := parseFlags([]string{"--nope"}); err == nil {
			t.Error("expected error for unknown flag")
		}
	})

	t.Run("invalid margin", func(t *testing.T) {
		t.Parallel()

		if _, err := parseFlags([]string{"--margin", "wide"}); err == nil {
			t.Error("expected error for non-numeric margin")
		}
	})
}
