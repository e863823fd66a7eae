package pipeline

import (
	"regexp"
	"strings"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// SplitLines normalizes line endings and splits content into lines.
// The result always has at least one element; a trailing newline yields a
// final empty line, which the block renderer treats as blank.
func SplitLines(content string) []string {
	return strings.Split(normalizeLineEndings(content), "\n")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ExtractTitle returns the text of the first level-1 heading, or "".
func ExtractTitle(lines []string) string {
	for _, line := range lines {
		if strings.HasPrefix(line, h1Prefix) {
			return strings.TrimSpace(line[len(h1Prefix):])
		}
	}
	return ""
}
