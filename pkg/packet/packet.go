package packet

import (
	"github.com/jneufeld/slushy/pkg/packet/ast"
	"github.com/jneufeld/slushy/pkg/packet/order"
	"github.com/jneufeld/slushy/pkg/packet/parser"
)

// CompareText parses two documents and compares them.
func CompareText(left, right string) (order.Ordering, error) {
	p := parser.NewParser()

	l, err := p.Parse(left)
	if err != nil {
		return order.Equal, err
	}
	r, err := p.Parse(right)
	if err != nil {
		return order.Equal, err
	}

	return order.Compare(l, r), nil
}

// SortText parses a multi-document input and returns its documents in order.
func SortText(input string) ([]*ast.Value, error) {
	docs, err := parser.ParseDocuments(input)
	if err != nil {
		return nil, err
	}

	order.Sort(docs)
	return docs, nil
}

// MustParse parses a document and panics on failure. Use it for literals in
// tests and examples only.
func MustParse(text string) *ast.Value {
	v, err := parser.Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}
