// Package ready is the command line front end of the harness. A benchmark
// program hands its benchmarks to Go from main:
//
//	func main() {
//		os.Exit(ready.Go(os.Args[1:],
//			benchmark.Func("Formatting an integer", func() { _ = fmt.Sprint(42) }),
//		))
//	}
//
// Running the program with --record stores the results as the baseline;
// --compare draws each result against it.
package ready

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"readygo/pkg/benchmark"
)

// Exit statuses returned by Go and Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrNoBenchmarks is reported when the program registers nothing to measure.
var ErrNoBenchmarks = errors.New("no benchmarks registered")

// UsageError marks a command line that cannot be run as given.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}

// Go runs the command line in args against benchmarks using the process's
// standard streams. Interrupts stop the run between samples.
func Go(args []string, benchmarks ...benchmark.Benchmark) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, args, os.Stdout, os.Stderr, benchmarks...)
}

// Run is Go with explicit streams and context. It returns the exit status.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, benchmarks ...benchmark.Benchmark) int {
	root := newRootCmd(stdout, stderr, benchmarks)
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return ExitOK
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitFailure
}
