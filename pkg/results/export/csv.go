package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/jneufeld/slushy/pkg/results"
)

// CSVExporter writes runs as CSV, one row per run.
type CSVExporter struct {
	// IncludeHeader writes a header row first.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{IncludeHeader: includeHeader}
}

var csvHeader = []string{
	"id", "created_at", "status", "input", "input_hash", "digit_mode",
	"pairs", "documents", "ordered_index_sum", "decoder_key", "duration_ms", "error",
}

// Export writes runs to w.
func (e *CSVExporter) Export(ctx context.Context, runs []*results.Run, w io.Writer) error {
	writer := csv.NewWriter(w)

	if e.IncludeHeader {
		if err := writer.Write(csvHeader); err != nil {
			return results.NewExportError("csv", len(runs), err)
		}
	}

	for _, run := range runs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writer.Write(runToRow(run)); err != nil {
			return results.NewExportError("csv", len(runs), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return results.NewExportError("csv", len(runs), err)
	}
	return nil
}

func runToRow(run *results.Run) []string {
	return []string{
		run.ID,
		run.CreatedAt.Format(time.RFC3339),
		string(run.Status),
		run.Input,
		run.InputHash,
		run.DigitMode,
		strconv.Itoa(run.Pairs),
		strconv.Itoa(run.Documents),
		strconv.Itoa(run.OrderedIndexSum),
		strconv.Itoa(run.DecoderKey),
		strconv.FormatFloat(float64(run.Duration)/float64(time.Millisecond), 'f', 3, 64),
		run.Error,
	}
}
