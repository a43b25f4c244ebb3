// Package order implements the structural ordering of packet values.
//
// Two digits compare numerically. A digit compared against a list is first
// promoted to a one-element list. Two lists compare element by element; the
// first unequal pair of elements decides, and when one list is a prefix of the
// other the shorter list orders first.
//
// Compare is total over well-formed trees and antisymmetric:
// Compare(a, b) == Compare(b, a).Invert() for every a and b. Sort is stable, so
// documents that compare Equal keep their input order.
package order
