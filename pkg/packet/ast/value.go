package ast

import (
	"strconv"
	"strings"
)

// Kind discriminates the two shapes a Value can take.
type Kind int

const (
	KindList Kind = iota
	KindDigit
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindDigit:
		return "digit"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one node of a packet tree.
// When Kind is KindDigit only Digit is meaningful; when Kind is KindList only
// Items is meaningful. Items of a list are never nil, an empty list has a
// zero-length slice.
type Value struct {
	Kind
	Digit int
	Items []*Value
}

// Digit creates a digit node. Negative numbers are not part of the grammar and
// callers should not construct them.
func Digit(n int) *Value {
	return &Value{
		Kind:  KindDigit,
		Digit: n,
	}
}

// List creates a list node owning the given children in order.
func List(items ...*Value) *Value {
	if items == nil {
		items = make([]*Value, 0)
	}
	return &Value{
		Kind:  KindList,
		Items: items,
	}
}

// Promote wraps a digit into a singleton list. Lists are returned unchanged.
func Promote(v *Value) *Value {
	if v == nil || v.Kind == KindList {
		return v
	}
	return List(Digit(v.Digit))
}

// IsDigit returns true if v is a digit node.
func (v *Value) IsDigit() bool {
	return v != nil && v.Kind == KindDigit
}

// IsList returns true if v is a list node.
func (v *Value) IsList() bool {
	return v != nil && v.Kind == KindList
}

// Len returns the number of direct children of a list, or 0 for a digit.
func (v *Value) Len() int {
	if !v.IsList() {
		return 0
	}
	return len(v.Items)
}

// Depth returns the bracket nesting depth: 0 for a digit, 1 for a flat list.
func (v *Value) Depth() int {
	deepest := 0
	Walk(v, func(n *Value, depth int) bool {
		if n.IsList() && depth+1 > deepest {
			deepest = depth + 1
		}
		return true
	})
	return deepest
}

// Equal reports whether two trees have the same shape and the same leaves in
// the same order. Two nil values are equal.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.Kind != other.Kind {
		return false
	}
	if v.Kind == KindDigit {
		return v.Digit == other.Digit
	}
	if len(v.Items) != len(other.Items) {
		return false
	}
	for i := range v.Items {
		if !v.Items[i].Equal(other.Items[i]) {
			return false
		}
	}
	return true
}

// String renders the canonical bracketed form, e.g. "[1,[2,3],4]".
// Parsing the result in decimal mode yields an Equal tree.
func (v *Value) String() string {
	var sb strings.Builder
	v.appendTo(&sb)
	return sb.String()
}

func (v *Value) appendTo(sb *strings.Builder) {
	if v == nil {
		return
	}

	switch v.Kind {
	case KindDigit:
		sb.WriteString(strconv.Itoa(v.Digit))
	case KindList:
		sb.WriteByte('[')
		for i, c := range v.Items {
			if i > 0 {
				sb.WriteByte(',')
			}
			c.appendTo(sb)
		}
		sb.WriteByte(']')
	}
}
