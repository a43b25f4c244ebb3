// Package ast provides the in-memory tree for packet documents.
//
// A packet is a bracketed list whose elements are unsigned integers or further
// lists, for example:
//
//	[1,[2,[3,[4,[5,6,7]]]],8,9]
//
// The parser in package parser turns one line of text into a *Value whose root
// is always a list. Values are immutable once built: nothing in this module
// mutates a tree after the parser returns it, and every list owns its children.
//
// # Core Types
//
// Value: Tagged union of a digit (KindDigit) or an ordered list (KindList)
//
// Location: Source location (source name, line, column) used for error reporting
//
// # Basic Usage
//
// Build a value by hand and render it:
//
//	v := ast.List(ast.Digit(1), ast.List(ast.Digit(2), ast.Digit(3)), ast.Digit(4))
//	fmt.Println(v)         // [1,[2,3],4]
//	fmt.Println(v.Depth()) // 2
//
// Structural equality:
//
//	a := ast.List(ast.Digit(1))
//	b := ast.List(ast.Digit(1))
//	fmt.Println(a.Equal(b)) // true
//
// Traverse a tree:
//
//	ast.Walk(v, func(n *ast.Value, depth int) bool {
//	    fmt.Println(depth, n)
//	    return true
//	})
//
// Ordering between values lives in package order, not here; Equal only answers
// whether two trees have the same shape and leaves.
package ast
