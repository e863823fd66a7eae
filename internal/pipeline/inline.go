package pipeline

import (
	"regexp"
	"strings"
)

// Entities whose presence marks text as already encoded.
const (
	entityMdash = "&mdash;"
	entityGt    = "&gt;"
)

// boldPattern matches a non-greedy **span** without inner asterisks.
var boldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// FormatInline applies inline formatting to paragraph and list item text:
// it unescapes \$ and \>, then converts **bold** spans to <strong>.
// The text is not HTML-escaped.
func FormatInline(text string) string {
	text = strings.ReplaceAll(text, `\$`, "$")
	text = strings.ReplaceAll(text, `\>`, ">")
	return boldPattern.ReplaceAllString(text, "<strong>${1}</strong>")
}

// EscapeHTML escapes &, < and >.
// Text that already contains &mdash; or &gt; is returned unchanged so that
// pre-encoded content is not escaped twice.
func EscapeHTML(text string) string {
	if strings.Contains(text, entityMdash) || strings.Contains(text, entityGt) {
		return text
	}
	return htmlEscaper.Replace(text)
}
