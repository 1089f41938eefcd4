package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/stoich/internal/ir"
	"github.com/roach88/stoich/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	RunID    string
	ID       string
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Records []*ir.Record `json:"records"`
	Total   int          `json:"total"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show balance outcomes recorded with --db",
		Long: `List outcomes recorded by "balance --db" and "batch --db", oldest first.

Filters:
  --run  only records written by one run
  --id   the latest record for one equation ID

Examples:
  stoich history --db ./stoich.db
  stoich history --db ./stoich.db --limit 5
  stoich history --db ./stoich.db --run 01926f3e-... --format json`,
		Args:          argsExactly(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "show at most this many records (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "only show records from this run ID")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show the latest record for this equation ID")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	if opts.RunID != "" && opts.ID != "" {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgs, "--run and --id are mutually exclusive", nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, fmt.Sprintf("failed to open database: %v", err), nil)
	}
	defer st.Close()

	var records []*ir.Record
	switch {
	case opts.ID != "":
		rec, err := st.ReadRecord(ctx, opts.ID)
		if errors.Is(err, store.ErrNotFound) {
			return formatter.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("no record for equation %s", opts.ID), nil)
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
		}
		records = []*ir.Record{rec}
	case opts.RunID != "":
		records, err = st.ReadRun(ctx, opts.RunID)
	default:
		records, err = st.ListRecords(ctx, opts.Limit)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(HistoryResult{Records: records, Total: len(records)})
	}

	if len(records) == 0 {
		fmt.Fprintln(formatter.Writer, "No records found.")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(formatter.Writer, "%4d  %s  %s\n", rec.Seq, shortID(rec.RunID), describeRecord(rec))
		formatter.VerboseLog("      id=%s outcome=%s", rec.ID, rec.OutcomeHash)
	}
	return nil
}

func describeRecord(rec *ir.Record) string {
	if rec.OK() {
		return rec.Balanced
	}
	return fmt.Sprintf("%s >>> %s  [%s] %s", rec.Reagents, rec.Products, rec.ErrorKind, rec.ErrorMessage)
}

// shortID truncates a run ID for tabular output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
