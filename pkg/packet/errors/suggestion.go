package errors

import (
	"fmt"
	"strings"
)

// maxEchoedBrackets is the most missing brackets spelled out in a suggestion;
// beyond it the count is given instead.
const maxEchoedBrackets = 4

// Suggest proposes a fix for a malformed document based on the error column and
// the document text. It returns an empty string when nothing useful can be said.
func Suggest(err *Error, line string) string {
	if err == nil {
		return ""
	}

	switch err.Type {
	case ErrorTypeUnpaired:
		return "separate pairs with a blank line and give every pair exactly two documents"
	case ErrorTypeLimit:
		return "raise the parser limits in the configuration if the input is trusted"
	case ErrorTypeIO:
		return ""
	}

	if strings.TrimSpace(line) != line || strings.ContainsAny(line, " \t") {
		return "remove whitespace; documents may only contain digits, ',', '[' and ']'"
	}

	opens := strings.Count(line, "[")
	closes := strings.Count(line, "]")
	switch {
	case line == "":
		return "a document must start with '['"
	case !strings.HasPrefix(line, "["):
		return "a document must start with '['"
	case opens > closes:
		missing := opens - closes
		if missing > maxEchoedBrackets {
			return fmt.Sprintf("add %d closing ']' at the end of the document", missing)
		}
		return "add " + strings.Repeat("]", missing) + " at the end of the document"
	case closes > opens:
		return "remove the extra ']' or add the missing '['"
	case strings.Contains(line, ",,") || strings.Contains(line, "[,") || strings.Contains(line, ",]"):
		return "',' must sit between two values"
	}

	return ""
}
