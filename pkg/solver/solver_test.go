package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jneufeld/slushy/pkg/packet/ast"
	packetErrors "github.com/jneufeld/slushy/pkg/packet/errors"
	"github.com/jneufeld/slushy/pkg/packet/parser"
)

func loadPairs(t *testing.T, path string) []parser.Pair {
	t.Helper()
	pairs, err := parser.NewParser().ParsePairsFile(path)
	require.NoError(t, err)
	return pairs
}

func TestSolve_Sample(t *testing.T) {
	pairs := loadPairs(t, "../packet/testdata/sample.txt")

	report, err := New().Solve(context.Background(), pairs)
	require.NoError(t, err)

	assert.Equal(t, 8, report.Pairs)
	assert.Equal(t, 16, report.Documents)
	assert.Equal(t, []int{1, 2, 4, 6}, report.OrderedPairs)
	assert.Equal(t, 13, report.OrderedIndexSum)
	assert.Equal(t, []int{10, 14}, report.DecoderKey.Positions)
	assert.Equal(t, 140, report.DecoderKey.Product)
	assert.GreaterOrEqual(t, report.Comparisons.Total(), 8)
}

func TestSolve_SixPairs(t *testing.T) {
	pairs := loadPairs(t, "../packet/testdata/six_pairs.txt")

	report, err := New().Solve(context.Background(), pairs)
	require.NoError(t, err)

	assert.Equal(t, 13, report.OrderedIndexSum)
	assert.Equal(t, []int{6, 10}, report.DecoderKey.Positions)
	assert.Equal(t, 60, report.DecoderKey.Product)
}

func TestSolve_CountsPairComparisons(t *testing.T) {
	pairs, err := parser.ParsePairs("[1]\n[2]\n\n[3]\n[3]\n\n[5]\n[4]\n")
	require.NoError(t, err)

	report, err := New(WithDividers()).Solve(context.Background(), pairs[:0])
	assert.ErrorIs(t, err, ErrNoDividers)
	assert.Nil(t, report)

	// Only pair comparisons are made when there is nothing to sort against
	report, err = New(WithDividers(ast.List())).Solve(context.Background(), pairs)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, report.OrderedPairs)
	assert.GreaterOrEqual(t, report.Comparisons.Less, 1)
	assert.GreaterOrEqual(t, report.Comparisons.Equal, 1)
	assert.GreaterOrEqual(t, report.Comparisons.Greater, 1)
	assert.Equal(t, []int{1}, report.DecoderKey.Positions, "[] sorts first")
}

func TestSolve_Cancelled(t *testing.T) {
	pairs := loadPairs(t, "../packet/testdata/sample.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := New().Solve(ctx, pairs)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, report)
}

func TestOrderedIndexSum(t *testing.T) {
	pairs := loadPairs(t, "../packet/testdata/sample.txt")

	assert.Equal(t, []int{1, 2, 4, 6}, OrderedPairs(pairs))
	assert.Equal(t, 13, OrderedIndexSum(pairs))
	assert.Equal(t, 0, OrderedIndexSum(nil))
}

func TestDecoderKey(t *testing.T) {
	docs := parser.Flatten(loadPairs(t, "../packet/testdata/sample.txt"))
	before := make([]string, len(docs))
	for i, d := range docs {
		before[i] = d.String()
	}

	dividers, err := ParseDividers(parser.NewParser(), DefaultDividers)
	require.NoError(t, err)

	key, err := DecoderKey(docs, dividers)
	require.NoError(t, err)
	assert.Equal(t, 140, key.Product)

	for i, d := range docs {
		assert.Equal(t, before[i], d.String(), "input order untouched")
	}

	_, err = DecoderKey(docs, nil)
	assert.ErrorIs(t, err, ErrNoDividers)
}

func TestDecoderKey_DividerAlreadyInInput(t *testing.T) {
	docs, err := parser.ParseDocuments("[[2]]\n[1]\n[[6]]\n")
	require.NoError(t, err)

	dividers, err := ParseDividers(parser.NewParser(), DefaultDividers)
	require.NoError(t, err)

	// Stable sort keeps the input copy first; the inserted divider follows it.
	key, err := DecoderKey(docs, dividers)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, key.Positions)
	assert.Equal(t, 15, key.Product)
}

func TestParseDividers_Invalid(t *testing.T) {
	_, err := ParseDividers(parser.NewParser(), []string{"[[2]]", "[[6]"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, packetErrors.ErrMalformedDocument))
	assert.Contains(t, err.Error(), `invalid divider "[[6]"`)
}

func TestSolve_LegacyDigitsChangeTheAnswer(t *testing.T) {
	input := "[10]\n[9]\n\n[1,2]\n[12]\n"

	decimal, err := parser.NewParser().ParsePairs(input)
	require.NoError(t, err)
	legacy, err := parser.NewParser().WithDigitMode(parser.DigitModeLegacy).ParsePairs(input)
	require.NoError(t, err)

	// decimal: 10 > 9, and [1,2] < [12]
	assert.Equal(t, []int{2}, OrderedPairs(decimal))
	// legacy: [10] > [9] still, but "[12]" reads as [1,2] so the second pair is Equal
	assert.Empty(t, OrderedPairs(legacy))
}

type recordedSolve struct {
	status string
	less   int
	equal  int
	more   int
}

type fakeRecorder struct {
	solves []recordedSolve
}

func (f *fakeRecorder) RecordComparisons(less, equal, greater int) {
	f.solves = append(f.solves, recordedSolve{status: "counts", less: less, equal: equal, more: greater})
}

func (f *fakeRecorder) RecordSolve(status string, _ time.Duration) {
	f.solves = append(f.solves, recordedSolve{status: status})
}

func TestSolve_ReportsToRecorder(t *testing.T) {
	pairs := loadPairs(t, "../packet/testdata/sample.txt")
	rec := &fakeRecorder{}

	report, err := New(WithMetrics(rec)).Solve(context.Background(), pairs)
	require.NoError(t, err)

	require.Len(t, rec.solves, 2)
	assert.Equal(t, "counts", rec.solves[0].status)
	assert.Equal(t, report.Comparisons.Less, rec.solves[0].less)
	assert.Equal(t, report.Comparisons.Equal, rec.solves[0].equal)
	assert.Equal(t, report.Comparisons.Greater, rec.solves[0].more)
	assert.Equal(t, StatusSuccess, rec.solves[1].status)
}

func TestSolve_ReportsFailureToRecorder(t *testing.T) {
	rec := &fakeRecorder{}

	_, err := New(WithDividers(), WithMetrics(rec)).Solve(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoDividers)

	require.Len(t, rec.solves, 1)
	assert.Equal(t, StatusError, rec.solves[0].status)
}
