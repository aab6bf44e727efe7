package errors

import (
	"fmt"
	"strings"
)

// Context window around an error line: lines shown before and after.
const (
	contextBefore = 2
	contextAfter  = 1
)

// RenderContext renders a snippet of source around the given 1-based error
// position: up to two preceding lines, the offending line, a caret line
// pointing at the column, and one following line, clipped at document
// boundaries. It returns "" when the position is unknown (line 0) or outside
// the document.
func RenderContext(source string, line, col int) string {
	lines := strings.Split(source, "\n")

	if line <= 0 || line > len(lines) {
		return ""
	}

	start := line - contextBefore
	if start < 1 {
		start = 1
	}
	end := line + contextAfter
	if end > len(lines) {
		end = len(lines)
	}

	numWidth := len(fmt.Sprintf("%d", end))

	var sb strings.Builder
	for i := start; i <= end; i++ {
		sb.WriteString(fmt.Sprintf("  %*d | %s\n", numWidth, i, lines[i-1]))

		if i == line {
			caret := ""
			if col > 0 {
				caret = strings.Repeat(" ", col-1)
			}
			sb.WriteString(fmt.Sprintf("  %s | %s^\n", strings.Repeat(" ", numWidth), caret))
		}
	}

	return sb.String()
}
