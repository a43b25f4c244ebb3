package ast

// WalkFunc is called for every node visited by Walk. depth is 0 for the root.
// Returning false stops descent into the node's children; siblings are still visited.
type WalkFunc func(v *Value, depth int) bool

// Walk traverses the tree in pre-order (parent before children, children left
// to right).
func Walk(root *Value, fn WalkFunc) {
	walk(root, 0, fn)
}

func walk(v *Value, depth int, fn WalkFunc) {
	if v == nil {
		return
	}
	if !fn(v, depth) {
		return
	}
	if v.Kind != KindList {
		return
	}
	for _, c := range v.Items {
		walk(c, depth+1, fn)
	}
}

// CountDigits returns the number of digit leaves in the tree.
func CountDigits(root *Value) int {
	n := 0
	Walk(root, func(v *Value, _ int) bool {
		if v.IsDigit() {
			n++
		}
		return true
	})
	return n
}
