package pipeline

// Notes:
// - RewriteImageSources always parses a full document; the CLI never hands
//   it a fragment.
// - Only img[src] is rewritten. Links, scripts and media keep their values.
// - Traversal tests check the observable behavior (source left as is)
//   rather than isWithin directly.

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func testBaseDir() string {
	if runtime.GOOS == "windows" {
		return `C:\reports`
	}
	return "/reports"
}

func wrapDocument(body string) string {
	return "<!DOCTYPE html>\n<html lang=\"en\"><head><title>T</title></head><body><main class=\"page\">" +
		body + "</main></body></html>"
}

// ---------------------------------------------------------------------------
// TestRewriteImageSources
// ---------------------------------------------------------------------------

func TestRewriteImageSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image rewritten",
			body:         `<img src="charts/revenue.png" alt="Revenue" />`,
			wantContains: []string{`src="file://`, "charts/revenue.png", `alt="Revenue"`},
		},
		{
			name:         "dot slash image rewritten",
			body:         `<img src="./logo.png" />`,
			wantContains: []string{`src="file://`},
			wantExcludes: []string{`src="./logo.png"`},
		},
		{
			name:         "image row rewritten",
			body:         "<div class=\"image-row\">\n  <img src=\"a.png\" alt=\"a\" />  <img src=\"b.png\" alt=\"b\" />\n</div>",
			wantContains: []string{`class="image-row"`},
			wantExcludes: []string{`src="a.png"`, `src="b.png"`},
		},
		{
			name:         "absolute path unchanged",
			body:         `<img src="/abs/logo.png" />`,
			wantContains: []string{`src="/abs/logo.png"`},
		},
		{
			name:         "https unchanged",
			body:         `<img src="https://example.com/logo.png" />`,
			wantContains: []string{`src="https://example.com/logo.png"`},
		},
		{
			name:         "data URI unchanged",
			body:         `<img src="data:image/png;base64,AAAA" />`,
			wantContains: []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:         "protocol relative unchanged",
			body:         `<img src="//cdn.example.com/x.png" />`,
			wantContains: []string{`src="//cdn.example.com/x.png"`},
		},
		{
			name:         "empty source unchanged",
			body:         `<img src="" alt="" />`,
			wantContains: []string{`src=""`},
		},
		{
			name:         "parent traversal unchanged",
			body:         `<img src="../../etc/passwd" />`,
			wantContains: []string{`src="../../etc/passwd"`},
		},
		{
			name:         "traversal through subdirectory unchanged",
			body:         `<img src="images/../../secret.png" />`,
			wantContains: []string{`src="images/../../secret.png"`},
		},
		{
			name:         "links are not rewritten",
			body:         `<a href="./other.html">x</a>`,
			wantContains: []string{`href="./other.html"`},
		},
		{
			name:         "script source is not rewritten",
			body:         `<script src="./app.js"></script>`,
			wantContains: []string{`src="./app.js"`},
		},
		{
			name:         "spaces are percent encoded",
			body:         `<img src="my images/logo.png" />`,
			wantContains: []string{"my%20images/logo.png"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteImageSources(wrapDocument(tt.body), testBaseDir())
			if err != nil {
				t.Fatalf("RewriteImageSources() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output should contain %q, got:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("output should not contain %q, got:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestRewriteImageSources_EmptyBaseDir(t *testing.T) {
	t.Parallel()

	doc := wrapDocument(`<img src="./logo.png" />`)

	got, err := RewriteImageSources(doc, "")
	if err != nil {
		t.Fatalf("RewriteImageSources() error = %v", err)
	}
	if got != doc {
		t.Errorf("empty base dir should return the document unchanged, got:\n%s", got)
	}
}

func TestRewriteImageSources_PreservesDocument(t *testing.T) {
	t.Parallel()

	got, err := RewriteImageSources(wrapDocument(`<h1>Report</h1><img src="a.png" />`), testBaseDir())
	if err != nil {
		t.Fatalf("RewriteImageSources() error = %v", err)
	}

	checks := []string{"<!DOCTYPE html>", `<html lang="en">`, "<title>T</title>", `<main class="page">`, "<h1>Report</h1>"}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Errorf("output should contain %q, got:\n%s", check, got)
		}
	}
}

func TestRewriteImageSources_RelativeBaseDir(t *testing.T) {
	t.Parallel()

	got, err := RewriteImageSources(wrapDocument(`<img src="a.png" />`), "testdata")
	if err != nil {
		t.Fatalf("RewriteImageSources() error = %v", err)
	}

	abs, err := filepath.Abs("testdata")
	if err != nil {
		t.Fatalf("filepath.Abs() error = %v", err)
	}
	want := fileURL(filepath.Join(abs, "a.png"))
	if !strings.Contains(got, `src="`+want+`"`) {
		t.Errorf("output should contain %q, got:\n%s", want, got)
	}
}

// ---------------------------------------------------------------------------
// TestIsRelativeSource
// ---------------------------------------------------------------------------

func TestIsRelativeSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want bool
	}{
		{"logo.png", true},
		{"./logo.png", true},
		{"images/sub/logo.png", true},
		{"../logo.png", true},
		{"", false},
		{"#anchor", false},
		{"//cdn.example.com/a.png", false},
		{"http://example.com/a.png", false},
		{"file:///a.png", false},
		{"data:image/png;base64,AAAA", false},
	}

	for _, tt := range tests {
		if got := isRelativeSource(tt.src); got != tt.want {
			t.Errorf("isRelativeSource(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsWithin
// ---------------------------------------------------------------------------

func TestIsWithin(t *testing.T) {
	t.Parallel()

	base := testBaseDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"same directory", base, true},
		{"child", filepath.Join(base, "a.png"), true},
		{"grandchild", filepath.Join(base, "x", "y.png"), true},
		{"parent", filepath.Dir(base), false},
		{"sibling with prefix", base + "-other", false},
		{"dotdot named file", filepath.Join(base, "..file"), true},
	}

	for _, tt := range tests {
		if got := isWithin(tt.path, base); got != tt.want {
			t.Errorf("%s: isWithin(%q, %q) = %v, want %v", tt.name, tt.path, base, got, tt.want)
		}
	}
}
