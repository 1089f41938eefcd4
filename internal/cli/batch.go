package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/stoich/internal/batch"
	"github.com/roach88/stoich/internal/store"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Database string

	// RunIDs defaults to batch.UUIDv7Generator. Tests inject a fixed one.
	RunIDs batch.RunIDGenerator
}

// BatchCaseOutput is one case in the JSON batch payload.
type BatchCaseOutput struct {
	Name      string `json:"name"`
	Outcome   string `json:"outcome"`
	Balanced  string `json:"balanced,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// BatchOutput is the JSON payload of the batch command.
type BatchOutput struct {
	Name   string            `json:"name"`
	Cases  []BatchCaseOutput `json:"cases"`
	Passed int               `json:"passed"`
	Failed int               `json:"failed"`
	Errors int               `json:"errors"`
	Total  int               `json:"total"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Balance every equation in a YAML or CUE batch file",
		Long: `Balance every equation in a batch file and compare each result with
its expectation, if any.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed or errored
  2 - Command error (unreadable file, database error)

Examples:
  stoich batch ./equations.yaml
  stoich batch ./equations.cue --db ./stoich.db
  stoich batch ./equations.yaml --format json`,
		Args:          argsExactly(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "append every outcome to this SQLite history database")

	return cmd
}

func runBatch(opts *BatchOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("batch file not found: %s", path), nil)
	}

	b, err := batch.LoadFile(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, err.Error(), nil)
	}
	logger.Debug("batch loaded", "path", path, "cases", len(b.Cases))

	runOpts := batch.Options{
		Balancer: newBalancer(opts.RootOptions, logger),
		RunIDs:   opts.RunIDs,
		Logger:   logger,
	}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, fmt.Sprintf("failed to open database: %v", err), nil)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		runOpts.Sink = st
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := batch.Run(ctx, b, runOpts)
	if err != nil {
		code := ErrCodeStoreFailed
		if ctx.Err() != nil {
			code = ErrCodeGeneric
		}
		return formatter.Fail(ExitCommandError, code, err.Error(), nil)
	}
	if opts.Database != "" {
		formatter.RunID = report.RunID
	}

	if formatter.Format == "json" {
		out := toBatchOutput(report)
		if !report.OK() {
			_ = formatter.Error(ErrCodeBatchFailed, report.Summary(), out)
			return &ExitError{Code: ExitFailure, Message: report.Summary(), Reported: true}
		}
		return formatter.Success(out)
	}

	outputBatchText(formatter, report)
	if !report.OK() {
		return &ExitError{Code: ExitFailure, Message: report.Summary(), Reported: true}
	}
	return nil
}

func toBatchOutput(report *batch.Report) BatchOutput {
	out := BatchOutput{
		Name:   report.Name,
		Cases:  make([]BatchCaseOutput, 0, len(report.Cases)),
		Passed: report.Passed,
		Failed: report.Failed,
		Errors: report.Errored,
		Total:  len(report.Cases),
	}
	for _, c := range report.Cases {
		out.Cases = append(out.Cases, BatchCaseOutput{
			Name:      c.Name,
			Outcome:   string(c.Outcome),
			Balanced:  c.Balanced,
			ErrorKind: c.ErrorKind,
			Detail:    c.Detail,
		})
	}
	return out
}

func outputBatchText(formatter *OutputFormatter, report *batch.Report) {
	w := formatter.Writer
	for _, c := range report.Cases {
		switch c.Outcome {
		case batch.OutcomePass:
			if c.Balanced != "" {
				fmt.Fprintf(w, "✓ %s: %s\n", c.Name, c.Balanced)
			} else {
				fmt.Fprintf(w, "✓ %s: %s\n", c.Name, c.ErrorKind)
			}
		case batch.OutcomeFail:
			fmt.Fprintf(w, "✗ %s: %s\n", c.Name, c.Detail)
		case batch.OutcomeError:
			fmt.Fprintf(w, "! %s: %s: %s\n", c.Name, c.ErrorKind, c.Detail)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %s\n", report.Name, report.Summary())
	if formatter.RunID != "" {
		formatter.VerboseLog("run id: %s", formatter.RunID)
	}
}
