package markdown

import "strings"

// TableFields splits a table row into trimmed cells. At most one leading
// and one trailing '|' are removed first; empty cells are kept.
func TableFields(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	fields := strings.Split(row, "|")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// trimBlankLines drops leading and trailing blank lines, keeping interior
// ones.
func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	if start == end {
		return nil
	}
	return lines[start:end]
}
