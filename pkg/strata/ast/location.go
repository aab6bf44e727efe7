package ast

import "fmt"

// Location identifies where a node or error originated in the source text.
// Line and column are 1-based; zero means unknown.
type Location struct {
	File   string // Source name (file path, or "" for inline text)
	Line   int    // Line number (1-based, 0 = unknown)
	Column int    // Column number (1-based, 0 = unknown)
}

// String returns a human-readable representation of the location.
// Format: "file:line:column".
func (l Location) String() string {
	name := l.File
	if name == "" {
		name = "<input>"
	}
	if l.Line == 0 {
		return name
	}
	return fmt.Sprintf("%s:%d:%d", name, l.Line, l.Column)
}

// IsValid returns true if the location carries a usable line number.
func (l Location) IsValid() bool {
	return l.Line > 0
}
