package pipeline

import (
	"regexp"
	"strings"
)

// imagePattern matches ![alt](src).
var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^\)]+)\)`)

// renderImages renders every image reference on the line. Several images
// on one line share an image-row grid container. Alt and src are emitted
// verbatim.
func renderImages(lines []string, start int, diags *diagnostics) (string, int) {
	matches := imagePattern.FindAllStringSubmatch(lines[start], -1)

	switch len(matches) {
	case 0:
		diags.add(start, DiagnosticEmptyImage, "no valid image reference found")
		return "", 1
	case 1:
		return imageTag(matches[0][1], matches[0][2]), 1
	}

	tags := make([]string, len(matches))
	for i, m := range matches {
		tags[i] = imageTag(m[1], m[2])
	}
	return "<div class=\"image-row\">\n  " + strings.Join(tags, "  ") + "\n</div>", 1
}

// imageTag renders one <img>. Sources mentioning "chart" get the chart class.
func imageTag(alt, src string) string {
	class := ""
	if strings.Contains(strings.ToLower(src), "chart") {
		class = ` class="chart-image"`
	}
	return "<img" + class + ` src="` + src + `" alt="` + alt + `" />`
}
