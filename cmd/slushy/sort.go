package main

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jneufeld/slushy/pkg/cli"
	"github.com/jneufeld/slushy/pkg/packet/ast"
	"github.com/jneufeld/slushy/pkg/packet/order"
)

var sortFlags struct {
	format    string
	digitMode string
	dividers  []string
}

// sortResult is the output of sort.
type sortResult struct {
	Documents []string `json:"documents"`

	// DividerPositions are the 1-based positions of the --divider documents.
	DividerPositions []int `json:"divider_positions,omitempty"`
}

func (r sortResult) String() string {
	return strings.Join(r.Documents, "\n")
}

var sortCmd = &cobra.Command{
	Use:   "sort <file>",
	Short: "Print every document of a file in order",
	Long: `Read every non-blank line of a file as a document, add any --divider
documents and print them all in order, one per line. Blank lines are ignored,
so pair files can be sorted directly. Equal documents keep their input order.

Examples:
  slushy sort input.txt
  slushy sort input.txt --divider '[[2]]' --divider '[[6]]' --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func init() {
	rootCmd.AddCommand(sortCmd)

	sortCmd.Flags().StringVarP(&sortFlags.format, "format", "f", "text", "output format: text, json")
	sortCmd.Flags().StringVar(&sortFlags.digitMode, "digit-mode", "", "digit mode: decimal, legacy (default from config)")
	sortCmd.Flags().StringArrayVar(&sortFlags.dividers, "divider", nil, "divider document to add, repeatable")
}

func runSort(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatter(sortFlags.format)
	if err != nil {
		return err
	}

	cfg := currentConfig()
	p, err := newParser(cfg, sortFlags.digitMode)
	if err != nil {
		return err
	}

	var divs []*ast.Value
	if len(sortFlags.dividers) > 0 {
		if divs, err = dividers(cfg, p, sortFlags.dividers); err != nil {
			return err
		}
	}

	docs, err := p.ParseFile(args[0])
	if err != nil {
		return err
	}

	all := append(docs, divs...)
	order.Sort(all)

	result := sortResult{Documents: make([]string, len(all))}
	for i, v := range all {
		result.Documents[i] = v.String()
	}
	// Dividers are located by identity so an equal input document does not
	// shadow them.
	for _, d := range divs {
		result.DividerPositions = append(result.DividerPositions, slices.Index(all, d)+1)
	}

	return formatter.FormatTo(cmd.OutOrStdout(), result)
}
