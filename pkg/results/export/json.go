package export

import (
	"context"
	"encoding/json"
	"io"

	"github.com/jneufeld/slushy/pkg/results"
)

// JSONExporter writes runs as a JSON array.
type JSONExporter struct {
	// Pretty enables indentation.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Export writes runs to w as a JSON array followed by a newline. An empty
// slice is written as [].
func (e *JSONExporter) Export(ctx context.Context, runs []*results.Run, w io.Writer) error {
	if runs == nil {
		runs = []*results.Run{}
	}

	enc := json.NewEncoder(w)
	if e.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(runs); err != nil {
		return results.NewExportError("json", len(runs), err)
	}
	return nil
}
