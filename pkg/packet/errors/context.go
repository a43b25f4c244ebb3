package errors

import (
	"fmt"
	"strings"
)

// maxContextWidth bounds how much of a long line is echoed back in an error.
const maxContextWidth = 72

// LineContext renders the offending line with its line number and a caret under
// the given 1-based column. Long lines are windowed around the column.
func LineContext(line string, lineNum, column int) string {
	if lineNum <= 0 {
		lineNum = 1
	}

	// Window long lines so the caret stays visible
	start := 0
	if len(line) > maxContextWidth && column > maxContextWidth/2 {
		start = column - maxContextWidth/2
		if start > len(line)-maxContextWidth {
			start = len(line) - maxContextWidth
		}
	}
	end := start + maxContextWidth
	if end > len(line) {
		end = len(line)
	}
	shown := line[start:end]
	if start > 0 {
		shown = "..." + shown
	}
	if end < len(line) {
		shown += "..."
	}

	var sb strings.Builder
	lineNumStr := fmt.Sprintf("%d", lineNum)
	sb.WriteString(fmt.Sprintf("  %s | %s\n", lineNumStr, shown))

	// Add column indicator
	if column > 0 {
		offset := column - 1 - start
		if start > 0 {
			offset += 3
		}
		if offset < 0 {
			offset = 0
		}
		sb.WriteString(fmt.Sprintf("  %s | %s^\n", strings.Repeat(" ", len(lineNumStr)), strings.Repeat(" ", offset)))
	}

	return sb.String()
}

// WithLine fills in the location and context of an error raised while parsing
// one line of a multi-line input. It returns the same error for chaining.
func WithLine(err *Error, source string, lineNum int, line string) *Error {
	err.Location.Source = source
	err.Location.Line = lineNum
	if err.Context == "" {
		err.Context = LineContext(line, lineNum, err.Location.Column)
	}
	if err.Suggestion == "" {
		err.Suggestion = Suggest(err, line)
	}
	return err
}
