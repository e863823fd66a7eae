package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// orderedMarker selects the ordered list handler; checked on the trimmed line.
	orderedMarker = regexp.MustCompile(`^\d+\.`)

	// orderedItem matches a numbered item with content.
	orderedItem = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)

	// nestedOpener matches the first line of a nested run.
	nestedOpener = regexp.MustCompile(`^(\d+)\.\s+`)
)

const unorderedMarker = "- "

// indentOf returns the number of leading whitespace bytes of line.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
}

// renderUnorderedList consumes the run of lines whose trimmed form starts
// with "- ". Unordered lists are flat.
func renderUnorderedList(lines []string, start int, _ *diagnostics) (string, int) {
	parts := []string{"<ul>"}
	i := start
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, unorderedMarker) {
			break
		}
		parts = append(parts, "  <li>"+FormatInline(line[len(unorderedMarker):])+"</li>")
		i++
	}
	parts = append(parts, "</ul>")
	return strings.Join(parts, "\n"), i - start
}

// renderOrderedList consumes numbered items starting at start.
//
// Blank lines inside the list are consumed and skipped. A top-level item
// followed directly by an indented numbered line owns the indented run as a
// nested <ol>; nesting is one level deep. The list ends at the first
// non-blank line that is not a top-level item. It returns 0 consumed lines
// when the first line is not a top-level item, so the caller can try the
// next block kind.
func renderOrderedList(lines []string, start int, _ *diagnostics) (string, int) {
	parts := []string{"<ol>"}
	i := start
	for i < len(lines) {
		line := strings.TrimRightFunc(lines[i], unicode.IsSpace)
		stripped := strings.TrimLeftFunc(line, unicode.IsSpace)
		if stripped == "" {
			i++
			continue
		}

		m := orderedItem.FindStringSubmatch(stripped)
		if m == nil || indentOf(line) > 0 {
			break
		}
		content := FormatInline(m[2])

		if i+1 < len(lines) && opensNestedList(lines[i+1]) {
			parts = append(parts, "  <li>"+content, "    <ol>")
			i++
			for ; i < len(lines); i++ {
				nested := lines[i]
				if indentOf(nested) == 0 {
					break
				}
				nm := orderedItem.FindStringSubmatch(strings.TrimLeftFunc(nested, unicode.IsSpace))
				if nm == nil {
					break
				}
				parts = append(parts, "      <li>"+FormatInline(nm[2])+"</li>")
			}
			parts = append(parts, "    </ol>", "  </li>")
			continue
		}

		parts = append(parts, "  <li>"+content+"</li>")
		i++
	}

	if i == start {
		return "", 0
	}
	parts = append(parts, "</ol>")
	return strings.Join(parts, "\n"), i - start
}

// opensNestedList reports whether line is an indented numbered item.
func opensNestedList(line string) bool {
	return indentOf(line) > 0 && nestedOpener.MatchString(strings.TrimLeftFunc(line, unicode.IsSpace))
}
