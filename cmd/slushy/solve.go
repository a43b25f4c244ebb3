package main

import (
	"github.com/spf13/cobra"

	"github.com/jneufeld/slushy/pkg/cli"
)

var solveFlags struct {
	format    string
	digitMode string
	dividers  []string
	record    bool
}

var solveCmd = &cobra.Command{
	Use:   "solve <file>",
	Short: "Solve both parts for a pair file",
	Long: `Read a file of document pairs and print both answers:

  - ordered index sum: the sum of the 1-based indices of pairs whose left
    document orders before the right one
  - decoder key: all documents plus the dividers are sorted and the 1-based
    divider positions are multiplied

Pairs are two documents on consecutive lines; pairs are separated by one or
more blank lines.

Examples:
  # Solve with the configured digit mode and dividers
  slushy solve input.txt

  # JSON output, recorded to the run store
  slushy solve input.txt --format json --record

  # Custom dividers
  slushy solve input.txt --divider '[[2]]' --divider '[[6]]' --divider '[[10]]'`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveFlags.format, "format", "f", "text", "output format: text, json")
	solveCmd.Flags().StringVar(&solveFlags.digitMode, "digit-mode", "", "digit mode: decimal, legacy (default from config)")
	solveCmd.Flags().StringArrayVar(&solveFlags.dividers, "divider", nil, "divider document, repeatable (default from config)")
	solveCmd.Flags().BoolVar(&solveFlags.record, "record", false, "record the run in the configured store")
}

func runSolve(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatter(solveFlags.format)
	if err != nil {
		return err
	}

	cfg := currentConfig()
	pl, closeStore, err := newPipeline(cfg, oneShotCollector(cfg), pipelineOptions{
		digitMode: solveFlags.digitMode,
		dividers:  solveFlags.dividers,
		record:    solveFlags.record,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	result, err := pl.run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return formatter.FormatTo(cmd.OutOrStdout(), result)
}
