package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jneufeld/slushy/pkg/cli"
	"github.com/jneufeld/slushy/pkg/packet/order"
)

var compareFlags struct {
	format    string
	digitMode string
}

// compareResult is the output of compare.
type compareResult struct {
	Left    string `json:"left"`
	Right   string `json:"right"`
	Result  string `json:"result"`
	Ordered bool   `json:"ordered"`
}

func (r compareResult) String() string {
	return r.Result
}

var compareCmd = &cobra.Command{
	Use:   "compare <left> <right>",
	Short: "Compare two documents",
	Long: `Compare two documents and print less, equal or greater.

"less" means the pair is in the right order.

Examples:
  slushy compare '[1,1,3,1,1]' '[1,1,5,1,1]'
  slushy compare '[[1],[2,3,4]]' '[[1],4]' --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&compareFlags.format, "format", "f", "text", "output format: text, json")
	compareCmd.Flags().StringVar(&compareFlags.digitMode, "digit-mode", "", "digit mode: decimal, legacy (default from config)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatter(compareFlags.format)
	if err != nil {
		return err
	}

	p, err := newParser(currentConfig(), compareFlags.digitMode)
	if err != nil {
		return err
	}

	left, err := p.WithSource("left").Parse(args[0])
	if err != nil {
		return fmt.Errorf("left document: %w", err)
	}
	right, err := p.WithSource("right").Parse(args[1])
	if err != nil {
		return fmt.Errorf("right document: %w", err)
	}

	o := order.Compare(left, right)
	return formatter.FormatTo(cmd.OutOrStdout(), compareResult{
		Left:    left.String(),
		Right:   right.String(),
		Result:  o.String(),
		Ordered: o == order.Less,
	})
}
