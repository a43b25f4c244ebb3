// Package parser reads packet documents and multi-document inputs into value trees.
//
// A document is one line of the grammar:
//
//	document   := '[' list_body ']'
//	list_body  := (value (',' value)*)?
//	value      := integer | document
//	integer    := digit+
//
// No whitespace is allowed inside a document. Inputs hold one document per
// line; in pairing mode, groups of two lines are separated by blank lines.
//
// # Basic Usage
//
// Parse a single document:
//
//	v, err := parser.Parse("[1,[2,3],4]")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parse a pairing-mode input:
//
//	pairs, err := parser.ParsePairs("[1,1,3,1,1]\n[1,1,5,1,1]\n\n[[1],[2,3,4]]\n[[1],4]\n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(pairs)) // 2
//
// Parse a file:
//
//	p := parser.NewParser()
//	docs, err := p.ParseFile("testdata/sample.txt")
//
// # Configuration
//
//	p := parser.NewParser().
//	    WithDigitMode(parser.DigitModeLegacy). // reproduce historical answers
//	    WithMaxDepth(64).                     // max list nesting
//	    WithMaxInputBytes(1 << 20)            // 1MB input limit
//
// # Error Handling
//
// Failures are *errors.Error values (package
// github.com/jneufeld/slushy/pkg/packet/errors) carrying the line, column and
// the offending line with a caret. Loading never returns partial results: one
// malformed line fails the whole input. Use CheckPairs or CheckDocuments to
// collect every problem at once.
//
//	_, err := parser.Parse("[1,2")
//	errors.Is(err, packetErrors.ErrMalformedDocument) // true
package parser
