package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/quantconv/internal/convert"
	"github.com/samcharles93/quantconv/internal/version"
)

const usageText = "quantconv --src <model> --out <model> [--q int8]"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), normalizeArgs(os.Args)); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	var opts options

	return &cli.Command{
		Name:      "quantconv",
		Usage:     "Quantize a model artifact (reports the request unless --tool is set)",
		UsageText: usageText,
		Version:   version.String(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     append(opts.conversionFlags(), opts.loggingFlags()...),
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, _ bool) error {
			return usageFailure(cmd, err)
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireFlags(cmd, "src", "out"); err != nil {
				return usageFailure(cmd, err)
			}
			return runConvert(ctx, cmd, &opts)
		},
	}
}

// usageError marks a bad command line. It exits with 2.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// usageFailure writes the short usage line to stderr so stdout only ever
// carries a report.
func usageFailure(cmd *cli.Command, err error) error {
	_, _ = fmt.Fprintf(cmd.Root().ErrWriter, "Usage: %s\n", usageText)
	return &usageError{err: err}
}

// requireFlags reports flags that were never given. An explicitly empty value
// counts as given.
func requireFlags(cmd *cli.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.IsSet(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("required flags not set: %s", strings.Join(missing, ", "))
}

// normalizeArgs splits an empty "--q=" into "--q" "" because the flag parser
// rejects an empty inline value. Arguments after "--" are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args)+1)
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		switch arg {
		case "--q=", "-q=", "--quant=", "-quant=":
			out = append(out, strings.TrimSuffix(arg, "="), "")
		default:
			out = append(out, arg)
		}
	}
	return out
}

// exitCode maps an error from the app to a process exit status. A failing
// external converter passes its own status through.
func exitCode(err error) int {
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		return 2
	}
	var toolErr *convert.ToolError
	if errors.As(err, &toolErr) && toolErr.Code > 0 {
		return toolErr.Code
	}
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
