package ast

import "fmt"

// Location represents where a packet document (or an error inside it) came from.
// It enables precise error reporting with source, line, and column information.
type Location struct {
	Source string // Input name (file path, "stdin", "memory://...")
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns a human-readable representation of the location.
// Format: "source:line:column"
func (l Location) String() string {
	if l.Source == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.Source, l.Line, l.Column)
}

// IsValid returns true if the location has valid source and line information.
func (l Location) IsValid() bool {
	return l.Source != "" && l.Line > 0
}
