package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"quarry-hq/strata/pkg/strata/ast"
)

// Kind categorizes a pipeline failure by its root cause.
type Kind string

const (
	KindParse         Kind = "parse"          // YAML syntax error
	KindUnsafeTag     Kind = "unsafe_tag"     // Deny-listed tag in the tree
	KindInvalidNumber Kind = "invalid_number" // Unrepresentable numeric literal
	KindFileNotFound  Kind = "file_not_found" // Missing or invalid path
	KindDecoding      Kind = "decoding"       // Non-decodable byte stream
)

// Error is a rich diagnostic with kind, position and optional context.
type Error struct {
	Kind     Kind
	Message  string
	Location ast.Location // Zero line means position unknown
	Context  string       // Rendered source snippet, may be empty

	// Kind-specific details.
	Tag     string // KindUnsafeTag: the exact offending tag
	Literal string // KindInvalidNumber: the raw numeric token
	Path    string // KindFileNotFound: the requested path

	Suggestion string // Optional hint for the caller
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location))
	}

	if e.Context != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Context)
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// NewParse creates a syntax error at the given position.
// Pass a zero location when the position is unknown.
func NewParse(loc ast.Location, message string) *Error {
	return &Error{
		Kind:     KindParse,
		Message:  message,
		Location: loc,
	}
}

// NewParseWithContext creates a syntax error enriched with a rendered snippet
// of the original source text around the error position. The snippet is
// omitted entirely when the position is unknown.
func NewParseWithContext(loc ast.Location, message, source string) *Error {
	err := NewParse(loc, message)
	if loc.IsValid() {
		err.Context = RenderContext(source, loc.Line, loc.Column)
	}
	return err
}

// NewUnsafeTag creates a safety rejection naming the exact offending tag.
func NewUnsafeTag(tag string) *Error {
	return &Error{
		Kind:       KindUnsafeTag,
		Message:    fmt.Sprintf("unsafe tag detected: %s", tag),
		Tag:        tag,
		Suggestion: "use an unsafe loader if you trust this source",
	}
}

// NewInvalidNumber creates an error for a numeric literal that fits no
// supported numeric type.
func NewInvalidNumber(literal string) *Error {
	return &Error{
		Kind:    KindInvalidNumber,
		Message: fmt.Sprintf("invalid number format: %s", literal),
		Literal: literal,
	}
}

// NewFileNotFound creates an error for a missing or invalid path.
func NewFileNotFound(path string) *Error {
	return &Error{
		Kind:    KindFileNotFound,
		Message: fmt.Sprintf("file not found: %s", path),
		Path:    path,
	}
}

// NewDecoding creates an error for input that is not valid UTF-8.
func NewDecoding(message string) *Error {
	return &Error{
		Kind:    KindDecoding,
		Message: fmt.Sprintf("decoding error: %s", message),
	}
}

// KindOf returns the Kind of err if it is (or wraps) an *Error,
// or the empty string otherwise.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
