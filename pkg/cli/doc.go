/*
Package cli provides helpers shared by the slushy commands.

Output formatting:

Commands print their results as text or JSON depending on --format:

	formatter, err := cli.NewFormatter(cli.OutputFormat(format))
	if err != nil {
		return err
	}
	return formatter.FormatTo(cmd.OutOrStdout(), report)

The text formatter uses a value's String method when it has one.

Progress:

check reports progress across many files on stderr:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(int64(len(files)))

Signals:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
