package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/jneufeld/slushy/pkg/packet/ast"
)

// ErrorType categorizes the type of error encountered during parsing or loading.
type ErrorType string

const (
	ErrorTypeMalformed ErrorType = "malformed" // Grammar violation inside one document
	ErrorTypeUnpaired  ErrorType = "unpaired"  // Pair group without exactly two documents
	ErrorTypeLimit     ErrorType = "limit"     // Depth or size limit exceeded
	ErrorTypeIO        ErrorType = "io"        // File I/O error
)

// Sentinel errors matched by errors.Is against an *Error of the corresponding type.
var (
	ErrMalformedDocument = stderrors.New("malformed document")
	ErrUnpairedDocument  = stderrors.New("unpaired document")
	ErrLimitExceeded     = stderrors.New("limit exceeded")
	ErrIO                = stderrors.New("input unreadable")
)

// Error represents a rich error with location, context, and suggestions.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	Location   ast.Location // Source location (source, line, column)
	Context    string       // Offending line with a caret marker
	Suggestion string       // Suggested fix (optional)
	Cause      error        // Underlying error (I/O, strconv), optional
}

// Error implements the error interface.
// It returns a formatted error message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	// Error type and message
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	sb.WriteString("\n")

	// Location
	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
	}

	// Context (offending line)
	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	// Suggestion
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// Is reports whether target is the sentinel for this error's type.
func (e *Error) Is(target error) bool {
	switch e.Type {
	case ErrorTypeMalformed:
		return target == ErrMalformedDocument
	case ErrorTypeUnpaired:
		return target == ErrUnpairedDocument
	case ErrorTypeLimit:
		// Limit violations reject the document just like grammar violations.
		return target == ErrLimitExceeded || target == ErrMalformedDocument
	case ErrorTypeIO:
		return target == ErrIO
	}
	return false
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Malformed creates a grammar error at the given column of a document.
func Malformed(column int, format string, args ...any) *Error {
	return &Error{
		Type:     ErrorTypeMalformed,
		Message:  fmt.Sprintf(format, args...),
		Location: ast.Location{Column: column},
	}
}

// Limit creates a limit error at the given column of a document.
func Limit(column int, format string, args ...any) *Error {
	return &Error{
		Type:     ErrorTypeLimit,
		Message:  fmt.Sprintf(format, args...),
		Location: ast.Location{Column: column},
	}
}

// ErrorList represents a collection of errors encountered while checking an input.
// It allows accumulating multiple errors instead of failing on the first error.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (el *ErrorList) Unwrap() []error {
	errs := make([]error, len(el.Errors))
	for i, e := range el.Errors {
		errs[i] = e
	}
	return errs
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the error list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
