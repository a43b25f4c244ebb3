package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jneufeld/slushy/pkg/cli"
	"github.com/jneufeld/slushy/pkg/results"
	"github.com/jneufeld/slushy/pkg/results/export"
	"github.com/jneufeld/slushy/pkg/results/storage"
)

var historyFlags struct {
	limit     int
	offset    int
	inputHash string
	status    string
	since     string
	format    string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long: `List runs recorded by solve --record and watch, newest first.

Runs are read from the store configured in the storage section.

Examples:
  # Last 20 runs
  slushy history

  # Failed runs of one input over the last day, as CSV
  slushy history --status error --since 24h --format csv

  # Every run of a given input content
  slushy history --input-hash 9f86d081884c7d65... --format json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "max runs to list (0 for all)")
	historyCmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "pagination offset")
	historyCmd.Flags().StringVar(&historyFlags.inputHash, "input-hash", "", "only runs of input content with this SHA-256")
	historyCmd.Flags().StringVar(&historyFlags.status, "status", "", "only runs with this status: success, error")
	historyCmd.Flags().StringVar(&historyFlags.since, "since", "", "only runs newer than this duration (e.g. 24h) or RFC3339 time")
	historyCmd.Flags().StringVarP(&historyFlags.format, "format", "f", "text", "output format: text, json, csv")
}

func runHistory(cmd *cobra.Command, args []string) error {
	query, err := historyQuery(time.Now())
	if err != nil {
		return err
	}

	cfg := currentConfig()
	store, err := storage.Open(&cfg.Storage)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("failed to open storage: %w", err))
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Query(cmd.Context(), query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(historyFlags.format) {
	case "json":
		return export.NewJSONExporter(true).Export(cmd.Context(), runs, out)
	case "csv":
		return export.NewCSVExporter(true).Export(cmd.Context(), runs, out)
	case "text", "":
		return writeRunTable(out, runs)
	default:
		return cli.NewConfigError("format", fmt.Sprintf("unsupported output format %q (want text, json or csv)", historyFlags.format))
	}
}

// historyQuery builds the store query from the history flags.
func historyQuery(now time.Time) (*results.Query, error) {
	query := &results.Query{
		InputHash: historyFlags.inputHash,
		Limit:     historyFlags.limit,
		Offset:    historyFlags.offset,
	}

	switch results.Status(historyFlags.status) {
	case "":
	case results.StatusSuccess, results.StatusError:
		query.Status = results.Status(historyFlags.status)
	default:
		return nil, cli.NewConfigError("status", fmt.Sprintf("unknown status %q (want success or error)", historyFlags.status))
	}

	if historyFlags.since != "" {
		since, err := parseSince(historyFlags.since, now)
		if err != nil {
			return nil, cli.NewConfigError("since", err.Error())
		}
		query.Since = &since
	}

	return query, nil
}

// parseSince accepts a duration before now or an RFC3339 timestamp.
func parseSince(s string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since %q: want a duration such as 24h or an RFC3339 time", s)
	}
	return t, nil
}

func writeRunTable(w io.Writer, runs []*results.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "no runs recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSTATUS\tINPUT\tSUM\tKEY\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			shortID(run.ID),
			run.CreatedAt.Local().Format(time.DateTime),
			run.Status,
			run.Input,
			run.OrderedIndexSum,
			run.DecoderKey,
			run.Duration.Round(time.Microsecond),
		)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
