package ready

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"readygo/internal/baseline"
	"readygo/internal/config"
	"readygo/internal/history"
	"readygo/internal/metrics"
	"readygo/internal/telemetry"
	"readygo/internal/ui"
	"readygo/pkg/benchmark"
	"readygo/pkg/report"
)

// newHistoryStore allows mocking in tests.
var newHistoryStore = history.NewStore

type options struct {
	record  bool
	compare bool
	noColor bool
	cfgFile string
}

func newRootCmd(stdout, stderr io.Writer, benchmarks []benchmark.Benchmark) *cobra.Command {
	opts := &options{}
	v := config.New()

	cmd := &cobra.Command{
		Use:   "readygo",
		Short: "Measure the registered benchmarks",
		Long: `Measures every registered benchmark and draws its minimum and 80th
percentile time per call as a bar. With --record the results replace the
stored baseline; with --compare each result is drawn against the baseline.`,
		Args: func(cmd *cobra.Command, args []string) error {
			return usageError(cobra.NoArgs(cmd, args))
		},
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.record && opts.compare {
				return usageError(errors.New("--record and --compare are mutually exclusive"))
			}
			if len(benchmarks) == 0 {
				return usageError(ErrNoBenchmarks)
			}
			return runBenchmarks(cmd, v, opts, benchmarks)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.Flags().BoolVar(&opts.record, "record", false, "Replace the stored baseline with this run")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "Compare this run against the stored baseline")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./readygo.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")

	bindFlags(v, cmd.PersistentFlags())

	cmd.AddCommand(newHistoryCmd(v, opts))
	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	v.BindPFlag("verbose", flags.Lookup("verbose"))
}

func loadSettings(cmd *cobra.Command, v *viper.Viper, opts *options) (*config.Settings, *slog.Logger, func() error, error) {
	s, err := config.Load(v, opts.cfgFile)
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.noColor {
		s.Color = ui.ColorNever
	}

	logger, closeLog := telemetry.NewLogger(cmd.ErrOrStderr(), s.Verbose, s.LogFile)
	return s, logger, closeLog, nil
}

func runBenchmarks(cmd *cobra.Command, v *viper.Viper, opts *options, benchmarks []benchmark.Benchmark) error {
	s, logger, closeLog, err := loadSettings(cmd, v, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	// 1. Load the baseline before measuring so a bad file fails fast
	var base *baseline.Baseline
	if opts.compare {
		base, err = baseline.Load(s.Baseline.File)
		if err != nil {
			return fmt.Errorf("failed to load baseline: %w", err)
		}
		logger.Info("Loaded baseline", "file", s.Baseline.File, "benchmarks", len(base.Results))
	}

	// 2. Measure
	recorder := metrics.NewRecorder()
	runner, err := benchmark.NewRunner(benchmarks,
		benchmark.WithOuterIterations(s.OuterIterations),
		benchmark.WithMinimumTime(s.MinimumTimeMs),
		benchmark.WithMaxIterations(s.MaxIterations),
		benchmark.WithObserver(benchmark.Observers(benchmark.NewProgress(cmd.OutOrStdout()), recorder)),
		benchmark.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	results, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("benchmark run failed: %w", err)
	}

	// 3. Report
	printer := ui.NewPrinter(cmd.OutOrStdout(), s.Color, report.Formatter{LineWidth: s.LineWidth}, s.RegressionThreshold)
	for i := range results {
		if err := printer.PrintResult(&results[i], base.Lookup(results[i].Name)); err != nil {
			return err
		}
	}
	if opts.compare {
		if err := printer.PrintComparisons(baseline.Compare(base, results)); err != nil {
			return err
		}
	}

	// 4. Record
	if opts.record {
		if err := record(cmd, s, logger, results); err != nil {
			return err
		}
	}

	if s.Metrics.Textfile != "" {
		if err := recorder.WriteTextfile(s.Metrics.Textfile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.Debug("Wrote metrics", "file", s.Metrics.Textfile)
	}
	return nil
}

func record(cmd *cobra.Command, s *config.Settings, logger *slog.Logger, results []benchmark.Result) error {
	b := &baseline.Baseline{}
	b.Replace(results)
	if err := b.Save(s.Baseline.File); err != nil {
		return fmt.Errorf("failed to save baseline: %w", err)
	}
	logger.Info("Saved baseline", "file", s.Baseline.File, "benchmarks", len(results))

	if !s.History.Enabled {
		return nil
	}

	store, err := newHistoryStore(history.Config{Type: s.History.Type, DSN: s.History.DSN})
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	if err := store.Save(cmd.Context(), time.Now(), results); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	logger.Info("Saved history", "type", s.History.Type, "benchmarks", len(results))
	return nil
}
