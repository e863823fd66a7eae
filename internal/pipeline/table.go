package pipeline

import "strings"

// emDash is the literal character rendered as the &mdash; entity in cells.
const emDash = "—"

// cellClassRule attaches a CSS class to body cells.
// An empty header matches any column.
type cellClassRule struct {
	header string
	value  string
	class  string
}

var cellClassRules = []cellClassRule{
	{value: "Yes", class: "cell-yes"},
}

// cellClass returns the CSS class for a cell, or "" when no rule applies.
func cellClass(header, cell string) string {
	for _, r := range cellClassRules {
		if r.header != "" && r.header != header {
			continue
		}
		if r.value == cell {
			return r.class
		}
	}
	return ""
}

// renderTable consumes the run of |-prefixed lines starting at start.
// The second line is the separator and is skipped without validation.
// A run shorter than two lines renders as "" but is still consumed.
func renderTable(lines []string, start int, diags *diagnostics) (string, int) {
	end := start
	for end < len(lines) && strings.HasPrefix(lines[end], "|") {
		end++
	}
	run := lines[start:end]

	if len(run) < 2 {
		diags.add(start, DiagnosticShortTable, "table needs a header and a separator line; dropped %d line(s)", len(run))
		return "", len(run)
	}

	headers := splitRow(run[0])

	var b strings.Builder
	b.WriteString("<table>\n  <thead>\n    <tr>\n")
	for _, h := range headers {
		b.WriteString("      <th>" + EscapeHTML(h) + "</th>\n")
	}
	b.WriteString("    </tr>\n  </thead>\n  <tbody>\n")

	for _, line := range run[2:] {
		b.WriteString("    <tr>\n")
		for idx, cell := range splitRow(line) {
			b.WriteString(renderCell(headerAt(headers, idx), cell))
		}
		b.WriteString("    </tr>\n")
	}
	b.WriteString("  </tbody>\n</table>")

	return b.String(), len(run)
}

// renderCell renders one body cell line, including its trailing newline.
func renderCell(header, cell string) string {
	if cell == emDash || cell == entityMdash {
		return "      <td>" + entityMdash + "</td>\n"
	}
	attr := ""
	if cls := cellClass(header, cell); cls != "" {
		attr = ` class="` + cls + `"`
	}
	return "      <td" + attr + ">" + EscapeHTML(cell) + "</td>\n"
}

// splitRow splits a pipe-delimited line, dropping the fields outside the
// outer pipes and trimming each cell.
func splitRow(line string) []string {
	fields := strings.Split(line, "|")
	if len(fields) < 2 {
		return nil
	}
	cells := fields[1 : len(fields)-1]
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

func headerAt(headers []string, idx int) string {
	if idx < len(headers) {
		return headers[idx]
	}
	return ""
}
