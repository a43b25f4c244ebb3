package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/jneufeld/slushy/pkg/packet/ast"
	"github.com/jneufeld/slushy/pkg/packet/order"
	"github.com/jneufeld/slushy/pkg/packet/parser"
)

// DefaultDividers are the marker documents inserted before sorting.
var DefaultDividers = []string{"[[2]]", "[[6]]"}

// ErrNoDividers is returned when a decoder key is requested without dividers.
var ErrNoDividers = errors.New("solver: at least one divider is required")

// Comparisons counts comparator results, by outcome.
type Comparisons struct {
	Less    int `json:"less"`
	Equal   int `json:"equal"`
	Greater int `json:"greater"`
}

// Total returns the number of comparisons made.
func (c Comparisons) Total() int {
	return c.Less + c.Equal + c.Greater
}

func (c *Comparisons) add(o order.Ordering) {
	switch o {
	case order.Less:
		c.Less++
	case order.Greater:
		c.Greater++
	default:
		c.Equal++
	}
}

// compare runs order.Compare and counts the outcome.
func (c *Comparisons) compare(left, right *ast.Value) order.Ordering {
	o := order.Compare(left, right)
	c.add(o)
	return o
}

// Key is the decoder key: the 1-based positions of the dividers after sorting
// and their product.
type Key struct {
	Positions []int `json:"positions"`
	Product   int   `json:"product"`
}

// Report holds both answers for one input plus some counts.
type Report struct {
	Pairs           int           `json:"pairs"`
	Documents       int           `json:"documents"`
	OrderedPairs    []int         `json:"ordered_pairs"`
	OrderedIndexSum int           `json:"ordered_index_sum"`
	DecoderKey      Key           `json:"decoder_key"`
	Comparisons     Comparisons   `json:"comparisons"`
	Duration        time.Duration `json:"duration_ns"`
}

// Recorder receives solve measurements. The telemetry metrics collector
// satisfies it.
type Recorder interface {
	RecordComparisons(less, equal, greater int)
	RecordSolve(status string, duration time.Duration)
}

// Solve statuses passed to Recorder.RecordSolve.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type nopRecorder struct{}

func (nopRecorder) RecordComparisons(less, equal, greater int)        {}
func (nopRecorder) RecordSolve(status string, duration time.Duration) {}

// Solver computes the ordered-pair sum and the decoder key for parsed inputs.
type Solver struct {
	dividers []*ast.Value
	logger   *slog.Logger
	metrics  Recorder
}

// Option configures a Solver.
type Option func(*Solver)

// WithDividers replaces the default divider documents. Passing none makes
// Solve fail with ErrNoDividers.
func WithDividers(dividers ...*ast.Value) Option {
	return func(s *Solver) {
		s.dividers = append([]*ast.Value{}, dividers...)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics reports comparison counts and solve outcomes to r.
func WithMetrics(r Recorder) Option {
	return func(s *Solver) {
		if r != nil {
			s.metrics = r
		}
	}
}

// New creates a Solver. Without WithDividers it uses DefaultDividers.
func New(opts ...Option) *Solver {
	s := &Solver{
		logger:  slog.Default().With("component", "solver"),
		metrics: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.dividers == nil {
		dividers, err := ParseDividers(parser.NewParser(), DefaultDividers)
		if err != nil {
			// The defaults are constants; failing here is a programming error.
			panic(err)
		}
		s.dividers = dividers
	}

	return s
}

// Solve computes both answers for pairs. The context is checked between pairs
// and before sorting.
func (s *Solver) Solve(ctx context.Context, pairs []parser.Pair) (*Report, error) {
	start := time.Now()

	report, err := s.solve(ctx, pairs)
	if err != nil {
		s.metrics.RecordSolve(StatusError, time.Since(start))
		return nil, err
	}

	report.Duration = time.Since(start)
	c := report.Comparisons
	s.metrics.RecordComparisons(c.Less, c.Equal, c.Greater)
	s.metrics.RecordSolve(StatusSuccess, report.Duration)

	s.logger.Debug("input solved",
		"pairs", report.Pairs,
		"ordered_index_sum", report.OrderedIndexSum,
		"decoder_key", report.DecoderKey.Product,
		"comparisons", c.Total(),
	)

	return report, nil
}

func (s *Solver) solve(ctx context.Context, pairs []parser.Pair) (*Report, error) {
	report := &Report{
		Pairs:        len(pairs),
		Documents:    2 * len(pairs),
		OrderedPairs: make([]int, 0),
	}

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		o := report.Comparisons.compare(pair.Left, pair.Right)
		s.logger.Debug("pair compared",
			"index", pair.Index,
			"line", pair.Line,
			"result", o.String(),
		)

		if o == order.Less {
			report.OrderedPairs = append(report.OrderedPairs, pair.Index)
			report.OrderedIndexSum += pair.Index
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := decoderKey(parser.Flatten(pairs), s.dividers, &report.Comparisons)
	if err != nil {
		return nil, err
	}
	report.DecoderKey = key

	return report, nil
}

// OrderedPairs returns the 1-based indices of pairs whose left document orders
// strictly before the right one.
func OrderedPairs(pairs []parser.Pair) []int {
	indices := make([]int, 0)
	for _, pair := range pairs {
		if order.Compare(pair.Left, pair.Right) == order.Less {
			indices = append(indices, pair.Index)
		}
	}
	return indices
}

// OrderedIndexSum returns the sum of OrderedPairs.
func OrderedIndexSum(pairs []parser.Pair) int {
	sum := 0
	for _, i := range OrderedPairs(pairs) {
		sum += i
	}
	return sum
}

// DecoderKey sorts docs together with the dividers and returns the dividers'
// positions and their product. docs is not modified.
func DecoderKey(docs []*ast.Value, dividers []*ast.Value) (Key, error) {
	var c Comparisons
	return decoderKey(docs, dividers, &c)
}

func decoderKey(docs []*ast.Value, dividers []*ast.Value, counts *Comparisons) (Key, error) {
	if len(dividers) == 0 {
		return Key{}, ErrNoDividers
	}

	all := make([]*ast.Value, 0, len(docs)+len(dividers))
	all = append(all, docs...)
	all = append(all, dividers...)

	slices.SortStableFunc(all, func(a, b *ast.Value) int {
		return counts.compare(a, b).Int()
	})

	// Dividers are found by identity so that an input document equal to a
	// divider does not shadow it.
	key := Key{
		Positions: make([]int, len(dividers)),
		Product:   1,
	}
	for i, d := range dividers {
		pos := slices.Index(all, d) + 1
		key.Positions[i] = pos
		key.Product *= pos
	}

	return key, nil
}

// ParseDividers parses divider documents with p.
func ParseDividers(p *parser.Parser, texts []string) ([]*ast.Value, error) {
	dividers := make([]*ast.Value, 0, len(texts))
	for _, text := range texts {
		v, err := p.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("invalid divider %q: %w", text, err)
		}
		dividers = append(dividers, v)
	}
	return dividers, nil
}
