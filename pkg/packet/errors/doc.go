// Package errors provides rich error types for packet parsing and loading.
//
// The error types include source location, the offending line with a caret
// under the failing column, and suggestions to help users quickly fix an input.
//
// # Error Types
//
// ErrorTypeMalformed: The document text does not follow the packet grammar
// (unbalanced brackets, stray characters, misplaced separators)
//
// ErrorTypeUnpaired: In pairing mode, a group of lines did not hold exactly two documents
//
// ErrorTypeLimit: A configured limit (nesting depth, input size) was exceeded
//
// ErrorTypeIO: File I/O errors
//
// # Basic Usage
//
// Check for a category with the standard library:
//
//	_, err := parser.Parse("[1,2")
//	if errors.Is(err, packetErrors.ErrMalformedDocument) {
//	    // reject the batch
//	}
//
// Inspect position details:
//
//	var perr *packetErrors.Error
//	if errors.As(err, &perr) {
//	    fmt.Println(perr.Location.Line, perr.Location.Column, perr.Message)
//	}
//
// Accumulate multiple errors:
//
//	errList := packetErrors.NewErrorList()
//	errList.Add(perr)
//	if errList.HasErrors() {
//	    return errList.ToError()
//	}
//
// # Error Format
//
//	[malformed] missing ']' to close list opened at column 1
//	  --> input.txt:3:5
//	  |
//	  3 | [1,2
//	    |     ^
//	  |
//	  = suggestion: add ']' at the end of the document
package errors
