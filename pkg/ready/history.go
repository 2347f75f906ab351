package ready

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"readygo/internal/config"
	"readygo/internal/history"
	"readygo/pkg/report"
)

func newHistoryCmd(v *viper.Viper, opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [name]",
		Short: "List recorded results",
		Long: `Lists the most recent results stored by --record when history is enabled,
newest first. A name restricts the listing to one benchmark.`,
		Args: func(cmd *cobra.Command, args []string) error {
			return usageError(cobra.MaximumNArgs(1)(cmd, args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return usageError(fmt.Errorf("invalid limit %d: must be positive", limit))
			}
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return runHistory(cmd, v, opts, name, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results to list")
	return cmd
}

func runHistory(cmd *cobra.Command, v *viper.Viper, opts *options, name string, limit int) error {
	s, _, closeLog, err := loadSettings(cmd, v, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	if !hasHistory(s.History) {
		fmt.Fprintln(cmd.OutOrStdout(), "No history recorded.")
		return nil
	}

	store, err := newHistoryStore(history.Config{Type: s.History.Type, DSN: s.History.DSN})
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	records, err := store.Recent(cmd.Context(), name, limit)
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "RECORDED\tBENCHMARK\tMIN\tP80")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			r.RecordedAt.Local().Format(time.DateTime), r.Name, report.FormatTime(r.MinimumTime), report.FormatTime(r.P80))
	}
	return w.Flush()
}

// hasHistory reports whether there can be anything to list. A SQLite file
// that does not exist yet is not created just to be found empty.
func hasHistory(h config.History) bool {
	switch strings.ToLower(h.Type) {
	case "", "sqlite", "sqlite3":
		path := h.DSN
		if path == "" {
			path = history.DefaultPath
		}
		_, err := os.Stat(path)
		return !errors.Is(err, os.ErrNotExist)
	}
	return true
}
