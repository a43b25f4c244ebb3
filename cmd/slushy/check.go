package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jneufeld/slushy/pkg/cli"
	packetErrors "github.com/jneufeld/slushy/pkg/packet/errors"
	"github.com/jneufeld/slushy/pkg/packet/parser"
)

var checkFlags struct {
	documents bool
	digitMode string
	progress  bool
}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Report every malformed or unpaired document",
	Long: `Validate input files and report every problem with its location, the
offending line and a suggested fix. Unlike solve, checking does not stop at the
first error. The command exits non-zero when any problem is found.

By default files are checked in pairing mode; --documents checks each line on
its own and ignores grouping.

Examples:
  slushy check input.txt
  slushy check day13/*.txt --progress
  slushy check sorted.txt --documents`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkFlags.documents, "documents", false, "check one document per line instead of pairs")
	checkCmd.Flags().StringVar(&checkFlags.digitMode, "digit-mode", "", "digit mode: decimal, legacy (default from config)")
	checkCmd.Flags().BoolVar(&checkFlags.progress, "progress", false, "show progress on stderr")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	p, err := newParser(cfg, checkFlags.digitMode)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var progress cli.ProgressReporter
	if checkFlags.progress {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr())
		progress.Start(int64(len(args)))
	}

	problems := 0
	for i, path := range args {
		errs := checkFile(p, path)
		if errs != nil {
			for _, e := range errs.Errors {
				fmt.Fprintln(out, e.Error())
			}
			problems += errs.Count()
		}
		if progress != nil {
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	if problems > 0 {
		return &cli.CheckError{Files: len(args), Problems: problems}
	}

	fmt.Fprintf(out, "%d file(s) checked, no problems found\n", len(args))
	return nil
}

// checkFile returns every problem in path, or nil. Read failures are
// reported as a single problem.
func checkFile(p *parser.Parser, path string) *packetErrors.ErrorList {
	input, err := p.ReadFile(path)
	if err != nil {
		errs := packetErrors.NewErrorList()
		var perr *packetErrors.Error
		if errors.As(err, &perr) {
			errs.Add(perr)
		} else {
			errs.Add(&packetErrors.Error{Type: packetErrors.ErrorTypeIO, Message: err.Error()})
		}
		return errs
	}

	fp := p.WithSource(path)
	if checkFlags.documents {
		return fp.CheckDocuments(input)
	}
	return fp.CheckPairs(input)
}
