package parser

import (
	"fmt"
	"math"

	"github.com/jneufeld/slushy/pkg/packet/ast"
	packetErrors "github.com/jneufeld/slushy/pkg/packet/errors"
)

// DigitMode selects how runs of digit characters become digit values.
type DigitMode string

const (
	// DigitModeDecimal reads every run of consecutive digits as one integer.
	DigitModeDecimal DigitMode = "decimal"

	// DigitModeLegacy reproduces the historical single-character reader: every
	// digit character is its own value, except that a digit immediately followed
	// by '0' reads as the fixed value 10. "[10,2]" and "[40]" both yield [10,...];
	// "[12]" yields [1,2]. Only use it to reproduce answers computed that way.
	DigitModeLegacy DigitMode = "legacy"
)

// legacyTen is the value the legacy reader substitutes for "<digit>0".
const legacyTen = 10

// ParseDigitMode converts a configuration string into a DigitMode.
// The empty string selects DigitModeDecimal.
func ParseDigitMode(s string) (DigitMode, error) {
	switch DigitMode(s) {
	case "", DigitModeDecimal:
		return DigitModeDecimal, nil
	case DigitModeLegacy:
		return DigitModeLegacy, nil
	default:
		return DigitModeDecimal, fmt.Errorf("unknown digit mode %q (valid: decimal, legacy)", s)
	}
}

// MaxDepthLimit is the deepest nesting any parser accepts. Lists are parsed
// recursively, so the depth limit can be lowered but never removed.
const MaxDepthLimit = 4096

// Parser parses packet documents into value trees.
// A Parser holds only configuration and is safe for concurrent use. The With
// methods return a modified copy and leave the receiver unchanged.
type Parser struct {
	// Configuration
	digitMode     DigitMode // How digit runs are read (default: decimal)
	maxDepth      int       // Maximum list nesting depth, 1..MaxDepthLimit (default: 256)
	maxInputBytes int64     // Maximum input size in bytes, <= 0 for no limit (default: 10MB)
	source        string    // Name reported in error locations (default: "input")
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		digitMode:     DigitModeDecimal,
		maxDepth:      256,
		maxInputBytes: 10 * 1024 * 1024, // 10MB
		source:        "input",
	}
}

// WithDigitMode returns a copy of p that reads digit runs with mode.
func (p *Parser) WithDigitMode(mode DigitMode) *Parser {
	cp := *p
	cp.digitMode = mode
	return &cp
}

// WithMaxDepth returns a copy of p with the given nesting limit. Values
// outside 1..MaxDepthLimit select MaxDepthLimit.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	if depth <= 0 || depth > MaxDepthLimit {
		depth = MaxDepthLimit
	}
	cp := *p
	cp.maxDepth = depth
	return &cp
}

// WithMaxInputBytes returns a copy of p with the given input size limit.
func (p *Parser) WithMaxInputBytes(size int64) *Parser {
	cp := *p
	cp.maxInputBytes = size
	return &cp
}

// WithSource returns a copy of p that reports errors against name.
func (p *Parser) WithSource(name string) *Parser {
	cp := *p
	cp.source = name
	return &cp
}

// DigitMode returns the configured digit mode.
func (p *Parser) DigitMode() DigitMode {
	return p.digitMode
}

// Parse parses a single document. The text must start with '[' and end with the
// matching ']' with no surrounding whitespace. On failure the returned error is
// a *packetErrors.Error and the value is nil.
func (p *Parser) Parse(text string) (*ast.Value, error) {
	v, perr := p.parseLine(text)
	if perr != nil {
		return nil, packetErrors.WithLine(perr, p.source, 1, text)
	}
	return v, nil
}

// parseLine parses one document without attaching line context, so the loader
// can attach its own line number.
func (p *Parser) parseLine(text string) (*ast.Value, *packetErrors.Error) {
	if p.maxInputBytes > 0 && int64(len(text)) > p.maxInputBytes {
		return nil, packetErrors.Limit(1, "document size %d exceeds maximum %d bytes", len(text), p.maxInputBytes)
	}

	s := &scanner{
		text:   text,
		parser: p,
	}
	return s.document()
}

// scanner holds the read position for one document.
type scanner struct {
	text   string
	pos    int // byte offset of the next unread character
	depth  int // number of currently open lists
	parser *Parser
}

// column returns the 1-based column of the next unread character.
func (s *scanner) column() int {
	return s.pos + 1
}

func (s *scanner) document() (*ast.Value, *packetErrors.Error) {
	if len(s.text) == 0 {
		return nil, packetErrors.Malformed(1, "empty document")
	}

	c := s.text[0]
	if c != '[' {
		switch {
		case isDigit(c):
			return nil, packetErrors.Malformed(1, "digit outside of any list")
		case c == ']':
			return nil, packetErrors.Malformed(1, "']' without matching '['")
		default:
			return nil, packetErrors.Malformed(1, "unexpected character %q; a document starts with '['", c)
		}
	}

	v, err := s.list()
	if err != nil {
		return nil, err
	}

	// The outermost list must be the whole document
	if s.pos < len(s.text) {
		c := s.text[s.pos]
		switch {
		case c == ']':
			return nil, packetErrors.Malformed(s.column(), "']' without matching '['")
		case isDigit(c):
			return nil, packetErrors.Malformed(s.column(), "digit outside of any list")
		default:
			return nil, packetErrors.Malformed(s.column(), "unexpected %q after end of document", c)
		}
	}

	return v, nil
}

// list parses a list starting at the '[' under the read position.
func (s *scanner) list() (*ast.Value, *packetErrors.Error) {
	openCol := s.column()
	s.pos++ // consume '['
	s.depth++
	limit := s.parser.maxDepth
	if limit <= 0 || limit > MaxDepthLimit {
		limit = MaxDepthLimit
	}
	if s.depth > limit {
		return nil, packetErrors.Limit(openCol, "nesting depth exceeds maximum %d", limit)
	}

	items := make([]*ast.Value, 0)
	afterComma := false
	lastWasDigit := false

	for {
		if s.pos >= len(s.text) {
			return nil, packetErrors.Malformed(s.column(), "missing ']' to close list opened at column %d", openCol)
		}

		c := s.text[s.pos]

		if c == ']' {
			if afterComma {
				return nil, packetErrors.Malformed(s.column(), "expected a value after ','")
			}
			s.pos++
			s.depth--
			return ast.List(items...), nil
		}

		// Between two values only a separator is allowed, except that the
		// legacy reader splits a digit run into adjacent values.
		needSeparator := len(items) > 0 && !afterComma
		legacyRun := lastWasDigit && isDigit(c) && s.parser.digitMode == DigitModeLegacy
		if needSeparator && !legacyRun {
			if c != ',' {
				return nil, packetErrors.Malformed(s.column(), "expected ',' or ']' but found %q", c)
			}
			s.pos++
			afterComma = true
			continue
		}

		var (
			item *ast.Value
			err  *packetErrors.Error
		)
		switch {
		case c == '[':
			item, err = s.list()
			lastWasDigit = false
		case isDigit(c):
			item, err = s.digit()
			lastWasDigit = true
		case c == ',':
			return nil, packetErrors.Malformed(s.column(), "unexpected ','; expected a value")
		default:
			return nil, packetErrors.Malformed(s.column(), "unexpected character %q", c)
		}
		if err != nil {
			return nil, err
		}

		items = append(items, item)
		afterComma = false
	}
}

// digit reads one digit value according to the digit mode.
func (s *scanner) digit() (*ast.Value, *packetErrors.Error) {
	if s.parser.digitMode == DigitModeLegacy {
		n := int(s.text[s.pos] - '0')
		s.pos++
		if s.pos < len(s.text) && s.text[s.pos] == '0' {
			s.pos++
			n = legacyTen
		}
		return ast.Digit(n), nil
	}

	startCol := s.column()
	n := 0
	for s.pos < len(s.text) && isDigit(s.text[s.pos]) {
		d := int(s.text[s.pos] - '0')
		if n > (math.MaxInt-d)/10 {
			return nil, packetErrors.Malformed(startCol, "integer too large")
		}
		n = n*10 + d
		s.pos++
	}
	return ast.Digit(n), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
