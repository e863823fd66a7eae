package mdreport

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdreport/internal/pipeline"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// DefaultTitle is the page title used when neither the caller nor the
// document provides one.
const DefaultTitle = "Report"

// pageDimensions maps page sizes to width and height in inches.
var pageDimensions = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures the PDF page layout.
// An empty Size means letter and a zero Margin means DefaultMargin.
type PageSettings struct {
	Size   string
	Margin float64
}

// DefaultPageSettings returns US Letter with the default margin.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{Size: PageSizeLetter, Margin: DefaultMargin}
}

// Validate checks page size and margin. A nil receiver is valid.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if p.Size != "" && !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPageSize, p.Size)
	}
	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f inches)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns page width and height in inches.
// An empty Size means letter.
func (p *PageSettings) dimensions() (float64, float64) {
	size := strings.ToLower(p.Size)
	if size == "" {
		size = PageSizeLetter
	}
	d := pageDimensions[size]
	return d[0], d[1]
}

// margin returns the configured margin or the default.
func (p *PageSettings) margin() float64 {
	if p.Margin == 0 {
		return DefaultMargin
	}
	return p.Margin
}

func isValidPageSize(size string) bool {
	_, ok := pageDimensions[strings.ToLower(size)]
	return ok
}

// Input contains the markdown source and per-conversion options.
type Input struct {
	Markdown  string        // required; empty yields an empty page body
	Title     string        // overrides WithTitle and the first heading
	CSS       string        // appended after the converter style
	SourceDir string        // resolves relative image paths for PDF export
	PDF       bool          // also render a PDF
	Page      *PageSettings // nil = DefaultPageSettings
}

// DiagnosticKind classifies content dropped during rendering.
type DiagnosticKind string

// Diagnostic kinds.
const (
	DiagnosticShortTable  = DiagnosticKind(pipeline.DiagnosticShortTable)
	DiagnosticEmptyImage  = DiagnosticKind(pipeline.DiagnosticEmptyImage)
	DiagnosticIgnoredLine = DiagnosticKind(pipeline.DiagnosticIgnoredLine)
)

// Diagnostic describes markdown content that did not render.
// Line is 1-based.
type Diagnostic struct {
	Line    int
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Message)
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	HTML        []byte // complete HTML document
	PDF         []byte // nil unless Input.PDF was set
	Title       string // resolved page title
	Diagnostics []Diagnostic
}

// toDiagnostics converts pipeline diagnostics to the public type.
func toDiagnostics(in []pipeline.Diagnostic) []Diagnostic {
	if len(in) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(in))
	for i, d := range in {
		out[i] = Diagnostic{Line: d.Line, Kind: DiagnosticKind(d.Kind), Message: d.Message}
	}
	return out
}
