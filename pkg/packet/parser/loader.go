package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/jneufeld/slushy/pkg/packet/ast"
	packetErrors "github.com/jneufeld/slushy/pkg/packet/errors"
)

// Pair is two documents read as one unit in pairing mode.
type Pair struct {
	Index int        // 1-based position of the pair in the input
	Line  int        // Line number of the left document
	Left  *ast.Value // First document of the group
	Right *ast.Value // Second document of the group
}

// line is one non-blank input line with its 1-based line number.
type line struct {
	num  int
	text string
}

// splitGroups splits input into groups of consecutive non-blank lines.
// A line holding only whitespace counts as blank; a trailing '\r' is dropped.
func splitGroups(input string) [][]line {
	var (
		groups  [][]line
		current []line
	)

	for i, text := range strings.Split(input, "\n") {
		text = strings.TrimSuffix(text, "\r")
		if strings.TrimSpace(text) == "" {
			if len(current) > 0 {
				groups = append(groups, current)
				current = nil
			}
			continue
		}
		current = append(current, line{num: i + 1, text: text})
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}

func (p *Parser) checkInputSize(input string) *packetErrors.Error {
	if p.maxInputBytes > 0 && int64(len(input)) > p.maxInputBytes {
		return &packetErrors.Error{
			Type:     packetErrors.ErrorTypeLimit,
			Message:  fmt.Sprintf("input size %d exceeds maximum %d bytes", len(input), p.maxInputBytes),
			Location: ast.Location{Source: p.source},
		}
	}
	return nil
}

// parseAt parses one line and attaches its location on failure.
func (p *Parser) parseAt(l line) (*ast.Value, *packetErrors.Error) {
	v, err := p.parseLine(l.text)
	if err != nil {
		return nil, packetErrors.WithLine(err, p.source, l.num, l.text)
	}
	return v, nil
}

// ParseDocuments parses every non-blank line of input as one document.
// Blank lines are skipped. Documents are returned in source order. The first
// malformed line fails the whole load.
func (p *Parser) ParseDocuments(input string) ([]*ast.Value, error) {
	if err := p.checkInputSize(input); err != nil {
		return nil, err
	}

	docs := make([]*ast.Value, 0)
	for _, group := range splitGroups(input) {
		for _, l := range group {
			v, err := p.parseAt(l)
			if err != nil {
				return nil, err
			}
			docs = append(docs, v)
		}
	}

	return docs, nil
}

// ParsePairs parses input in pairing mode: groups of non-blank lines separated
// by one or more blank lines, each group holding exactly two documents.
// Pairs are returned in source order with 1-based indices.
func (p *Parser) ParsePairs(input string) ([]Pair, error) {
	if err := p.checkInputSize(input); err != nil {
		return nil, err
	}

	groups := splitGroups(input)
	pairs := make([]Pair, 0, len(groups))

	for _, group := range groups {
		values := make([]*ast.Value, 0, len(group))
		for _, l := range group {
			v, err := p.parseAt(l)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}

		if len(values) != 2 {
			return nil, p.unpaired(group)
		}

		pairs = append(pairs, Pair{
			Index: len(pairs) + 1,
			Line:  group[0].num,
			Left:  values[0],
			Right: values[1],
		})
	}

	return pairs, nil
}

func (p *Parser) unpaired(group []line) *packetErrors.Error {
	first := group[0]
	err := &packetErrors.Error{
		Type:    packetErrors.ErrorTypeUnpaired,
		Message: fmt.Sprintf("group starting at line %d has %d document(s), want 2", first.num, len(group)),
		Location: ast.Location{
			Column: 1,
		},
	}
	return packetErrors.WithLine(err, p.source, first.num, first.text)
}

// CheckPairs validates input in pairing mode and reports every problem instead
// of stopping at the first one. It returns nil when the input is well-formed.
func (p *Parser) CheckPairs(input string) *packetErrors.ErrorList {
	errList := packetErrors.NewErrorList()
	if err := p.checkInputSize(input); err != nil {
		errList.Add(err)
		return errList
	}

	for _, group := range splitGroups(input) {
		for _, l := range group {
			if _, err := p.parseAt(l); err != nil {
				errList.Add(err)
			}
		}
		if len(group) != 2 {
			errList.Add(p.unpaired(group))
		}
	}

	if !errList.HasErrors() {
		return nil
	}
	return errList
}

// CheckDocuments validates every non-blank line as a document and reports every
// malformed line. It returns nil when all lines parse.
func (p *Parser) CheckDocuments(input string) *packetErrors.ErrorList {
	errList := packetErrors.NewErrorList()
	if err := p.checkInputSize(input); err != nil {
		errList.Add(err)
		return errList
	}

	for _, group := range splitGroups(input) {
		for _, l := range group {
			if _, err := p.parseAt(l); err != nil {
				errList.Add(err)
			}
		}
	}

	if !errList.HasErrors() {
		return nil
	}
	return errList
}

// ReadFile reads a whole input file, enforcing the size limit before reading.
func (p *Parser) ReadFile(path string) (string, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return "", &packetErrors.Error{
			Type:     packetErrors.ErrorTypeIO,
			Message:  "failed to access file",
			Location: ast.Location{Source: path},
			Cause:    err,
		}
	}

	if p.maxInputBytes > 0 && fileInfo.Size() > p.maxInputBytes {
		return "", &packetErrors.Error{
			Type:     packetErrors.ErrorTypeLimit,
			Message:  fmt.Sprintf("file size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxInputBytes),
			Location: ast.Location{Source: path},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &packetErrors.Error{
			Type:     packetErrors.ErrorTypeIO,
			Message:  "failed to read file",
			Location: ast.Location{Source: path},
			Cause:    err,
		}
	}

	return string(data), nil
}

// ParseFile reads path and parses it with ParseDocuments.
func (p *Parser) ParseFile(path string) ([]*ast.Value, error) {
	input, err := p.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.WithSource(path).ParseDocuments(input)
}

// ParsePairsFile reads path and parses it with ParsePairs.
func (p *Parser) ParsePairsFile(path string) ([]Pair, error) {
	input, err := p.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.WithSource(path).ParsePairs(input)
}

// Flatten returns the documents of pairs in source order (left then right).
func Flatten(pairs []Pair) []*ast.Value {
	docs := make([]*ast.Value, 0, 2*len(pairs))
	for _, pair := range pairs {
		docs = append(docs, pair.Left, pair.Right)
	}
	return docs
}

// Parse parses a single document with a default parser.
func Parse(text string) (*ast.Value, error) {
	return NewParser().Parse(text)
}

// ParseDocuments parses a multi-document input with a default parser.
func ParseDocuments(input string) ([]*ast.Value, error) {
	return NewParser().ParseDocuments(input)
}

// ParsePairs parses a pairing-mode input with a default parser.
func ParsePairs(input string) ([]Pair, error) {
	return NewParser().ParsePairs(input)
}
