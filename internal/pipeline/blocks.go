package pipeline

import (
	"context"
	"fmt"
	"strings"
)

// Line prefixes recognized by the block classifier.
const (
	h1Prefix   = "# "
	h2Prefix   = "## "
	metaMarker = "_"
	hrMarker   = "---"
	imgPrefix  = "!["
	tablePipe  = "|"
	boldLead   = "**"
)

// blockSeparator joins rendered blocks in the document body.
const blockSeparator = "\n\n"

// DiagnosticKind classifies content dropped during block rendering.
type DiagnosticKind string

// Diagnostic kinds.
const (
	DiagnosticShortTable  DiagnosticKind = "short-table"
	DiagnosticEmptyImage  DiagnosticKind = "empty-image"
	DiagnosticIgnoredLine DiagnosticKind = "ignored-line"
)

// Diagnostic describes source content that did not render.
// Line is 1-based.
type Diagnostic struct {
	Line    int
	Kind    DiagnosticKind
	Message string
}

type diagnostics []Diagnostic

func (d *diagnostics) add(index int, kind DiagnosticKind, format string, args ...any) {
	*d = append(*d, Diagnostic{Line: index + 1, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Body is the rendered document body.
// Kinds lists the rule name of each rendered block, in order.
type Body struct {
	HTML        string
	Kinds       []string
	Diagnostics []Diagnostic
}

// BodyRenderer defines the contract for rendering source lines into an HTML body.
type BodyRenderer interface {
	RenderBody(ctx context.Context, lines []string) (*Body, error)
}

// blockHandler renders the block starting at lines[start] and returns the
// HTML and the number of lines consumed. A handler returning 0 consumed
// lines declines the block and the next matching rule is tried.
type blockHandler func(lines []string, start int, diags *diagnostics) (string, int)

// blockRule pairs a line predicate with the handler it selects.
type blockRule struct {
	name    string
	matches func(line string) bool
	render  blockHandler
}

// blockRules is the classification chain, evaluated top to bottom.
var blockRules = []blockRule{
	{
		name:    "h1",
		matches: func(line string) bool { return strings.HasPrefix(line, h1Prefix) },
		render:  single(func(line string) string { return "<h1>" + EscapeHTML(line[len(h1Prefix):]) + "</h1>" }),
	},
	{
		name: "meta",
		matches: func(line string) bool {
			return strings.HasPrefix(line, metaMarker) && strings.HasSuffix(line, metaMarker)
		},
		render: single(renderMeta),
	},
	{
		name:    "rule",
		matches: func(line string) bool { return strings.TrimSpace(line) == hrMarker },
		render:  single(func(string) string { return "<hr />" }),
	},
	{
		name:    "h2",
		matches: func(line string) bool { return strings.HasPrefix(line, h2Prefix) },
		render:  single(func(line string) string { return "<h2>" + EscapeHTML(line[len(h2Prefix):]) + "</h2>" }),
	},
	{
		name:    "images",
		matches: func(line string) bool { return strings.HasPrefix(line, imgPrefix) },
		render:  renderImages,
	},
	{
		name:    "table",
		matches: func(line string) bool { return strings.HasPrefix(line, tablePipe) },
		render:  renderTable,
	},
	{
		name:    "ordered-list",
		matches: func(line string) bool { return orderedMarker.MatchString(strings.TrimSpace(line)) },
		render:  renderOrderedList,
	},
	{
		name:    "unordered-list",
		matches: func(line string) bool { return strings.HasPrefix(strings.TrimSpace(line), unorderedMarker) },
		render:  renderUnorderedList,
	},
	{
		name:    "bold-paragraph",
		matches: func(line string) bool { return strings.HasPrefix(line, boldLead) },
		render:  single(renderParagraph),
	},
	{
		name: "paragraph",
		matches: func(line string) bool {
			return strings.TrimSpace(line) != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t")
		},
		render: single(renderParagraph),
	},
}

// single adapts a one-line renderer to a blockHandler.
func single(fn func(line string) string) blockHandler {
	return func(lines []string, start int, _ *diagnostics) (string, int) {
		return fn(lines[start]), 1
	}
}

func renderMeta(line string) string {
	inner := ""
	if len(line) >= 2 {
		inner = line[1 : len(line)-1]
	}
	return `<p class="meta">` + EscapeHTML(inner) + "</p>"
}

func renderParagraph(line string) string {
	return "<p>" + FormatInline(line) + "</p>"
}

// BlockRenderer renders the report markdown dialect block by block.
type BlockRenderer struct{}

// NewBlockRenderer creates a BlockRenderer.
func NewBlockRenderer() *BlockRenderer {
	return &BlockRenderer{}
}

// RenderBody walks lines with an explicit cursor, dispatching each position
// to the first matching block rule and advancing by the lines it consumed.
// Lines no rule accepts are skipped; indented ones are reported as
// diagnostics.
func (r *BlockRenderer) RenderBody(ctx context.Context, lines []string) (*Body, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		blocks []string
		kinds  []string
		diags  diagnostics
	)

	for i := 0; i < len(lines); {
		kind, html, consumed := dispatch(lines, i, &diags)
		if consumed == 0 {
			if strings.TrimSpace(lines[i]) != "" {
				diags.add(i, DiagnosticIgnoredLine, "indented line outside a list ignored")
			}
			i++
			continue
		}
		blocks = append(blocks, html)
		kinds = append(kinds, kind)
		i += consumed
	}

	return &Body{
		HTML:        strings.Join(blocks, blockSeparator),
		Kinds:       kinds,
		Diagnostics: diags,
	}, nil
}

// dispatch returns the rule name and output of the first rule that matches
// and accepts the line at index i, or 0 consumed lines when none does.
func dispatch(lines []string, i int, diags *diagnostics) (string, string, int) {
	line := lines[i]
	for _, r := range blockRules {
		if !r.matches(line) {
			continue
		}
		if html, consumed := r.render(lines, i, diags); consumed > 0 {
			return r.name, html, consumed
		}
	}
	return "", "", 0
}

// Compile-time interface check.
var _ BodyRenderer = (*BlockRenderer)(nil)
