package order

import (
	"slices"

	"github.com/jneufeld/slushy/pkg/packet/ast"
)

// Ordering is the result of a three-way comparison.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// String returns "less", "equal" or "greater".
func (o Ordering) String() string {
	switch {
	case o < 0:
		return "less"
	case o > 0:
		return "greater"
	default:
		return "equal"
	}
}

// Invert swaps Less and Greater.
func (o Ordering) Invert() Ordering {
	return -o
}

// Int returns -1, 0 or 1, for use with slices.SortFunc and friends.
func (o Ordering) Int() int {
	return int(o)
}

// Compare orders left against right. It is total over well-formed trees and
// never mutates its operands. A nil value orders before any non-nil value.
func Compare(left, right *ast.Value) Ordering {
	if left == nil || right == nil {
		switch {
		case left == right:
			return Equal
		case left == nil:
			return Less
		default:
			return Greater
		}
	}

	switch {
	case left.IsDigit() && right.IsDigit():
		return compareInts(left.Digit, right.Digit)
	case left.IsList() && right.IsDigit():
		return compareLists(left.Items, []*ast.Value{right})
	case left.IsDigit() && right.IsList():
		return compareLists([]*ast.Value{left}, right.Items)
	default:
		return compareLists(left.Items, right.Items)
	}
}

// compareLists compares the common prefix element by element, then lengths.
func compareLists(left, right []*ast.Value) Ordering {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		if o := Compare(left[i], right[i]); o != Equal {
			return o
		}
	}
	return compareInts(len(left), len(right))
}

func compareInts(a, b int) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

// IsLess reports whether left orders strictly before right.
func IsLess(left, right *ast.Value) bool {
	return Compare(left, right) == Less
}

// Sort orders values in place. The sort is stable, so values that compare
// Equal keep their input order.
func Sort(values []*ast.Value) {
	slices.SortStableFunc(values, func(a, b *ast.Value) int {
		return Compare(a, b).Int()
	})
}

// IsSorted reports whether values are in non-decreasing order.
func IsSorted(values []*ast.Value) bool {
	return slices.IsSortedFunc(values, func(a, b *ast.Value) int {
		return Compare(a, b).Int()
	})
}

// Position returns the 1-based index of the first value structurally equal to
// target, or 0 if there is none.
func Position(values []*ast.Value, target *ast.Value) int {
	for i, v := range values {
		if v.Equal(target) {
			return i + 1
		}
	}
	return 0
}
