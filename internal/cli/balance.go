package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/stoich/internal/balance"
	"github.com/roach88/stoich/internal/batch"
	"github.com/roach88/stoich/internal/formula"
	"github.com/roach88/stoich/internal/ir"
	"github.com/roach88/stoich/internal/store"
)

// BalanceOptions holds flags for the balance command.
type BalanceOptions struct {
	*RootOptions
	Factor   int64
	Equation string
	Database string

	// RunIDs defaults to batch.UUIDv7Generator. Tests inject a fixed one.
	RunIDs batch.RunIDGenerator
}

// BalanceResult is the JSON payload of a successful balance.
type BalanceResult struct {
	ID           string   `json:"id"`
	Reagents     string   `json:"reagents"`
	Products     string   `json:"products"`
	Balanced     string   `json:"balanced"`
	Coefficients []string `json:"coefficients"`
	Factor       int64    `json:"factor"`
}

// NewBalanceCommand creates the balance command.
func NewBalanceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BalanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "balance [<reagents> <products>]",
		Short: "Balance a chemical equation",
		Long: `Balance a chemical equation and print the smallest whole-number
coefficients, multiplied by --factor.

The equation is given either as two arguments or as one combined
string with --equation, using ">>>", "->", "→" or "=" between sides.

With --db, the outcome is appended to the history database.

Exit codes:
  0 - Balanced
  1 - The equation could not be balanced
  2 - Command error (bad arguments, database error)

Examples:
  stoich balance "CH4 + O2" "CO2 + H2O"
  stoich balance --equation "Al2O3 + HCl -> AlCl3 + H2O" --factor 2
  stoich balance "NaCl" "Na + Cl" --db ./stoich.db --format json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.Equation != "" {
				return argsExactly(0)(cmd, args)
			}
			return argsExactly(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(opts, args, cmd)
		},
	}

	cmd.Flags().Int64VarP(&opts.Factor, "factor", "f", 1, "multiply every coefficient by this positive integer")
	cmd.Flags().StringVarP(&opts.Equation, "equation", "e", "", "combined equation, e.g. \"H2 + O2 >>> H2O\"")
	cmd.Flags().StringVar(&opts.Database, "db", "", "append the outcome to this SQLite history database")

	return cmd
}

func runBalance(opts *BalanceOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	bal := newBalancer(opts.RootOptions, logger)

	reagents, products, err := sides(opts, args)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeFormulaSyntax, err.Error(), nil)
	}

	ans, solveErr := bal.Solve(reagents, products, opts.Factor)

	if opts.Database != "" {
		runIDs := opts.RunIDs
		if runIDs == nil {
			runIDs = batch.UUIDv7Generator{}
		}
		formatter.RunID = runIDs.Generate()
		if err := recordOutcome(opts, formatter.RunID, reagents, products, ans, solveErr, cmd); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
		}
		logger.Debug("outcome recorded", "db", opts.Database, "run_id", formatter.RunID)
	}

	if solveErr != nil {
		kind := balance.KindOf(solveErr)
		var details interface{}
		if opts.Verbose {
			details = solveErr.Error()
		}
		return formatter.Fail(ExitFailure, MapKindToErrorCode(kind), failureMessage(solveErr), details)
	}

	id, err := ir.EquationID(reagents, products, opts.Factor)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInternal, err.Error(), nil)
	}
	result := BalanceResult{
		ID:           id,
		Reagents:     ans.Reagents,
		Products:     ans.Products,
		Balanced:     ans.String(),
		Coefficients: ir.CoefficientStrings(ans.Scaled()),
		Factor:       opts.Factor,
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, result.Balanced)
	formatter.VerboseLog("coefficients: %s", strings.Join(ir.CoefficientStrings(ans.Coefficients), " "))
	return nil
}

// sides resolves the two equation sides from args or --equation.
func sides(opts *BalanceOptions, args []string) (string, string, error) {
	if opts.Equation == "" {
		return args[0], args[1], nil
	}
	text := opts.Equation
	if opts.Normalize {
		text = formula.Normalize(text)
	}
	return formula.Split(text)
}

func recordOutcome(opts *BalanceOptions, runID, reagents, products string, ans *balance.Answer, solveErr error, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	rec, err := batch.NewRecord(runID, reagents, products, opts.Factor, ans, solveErr)
	if err != nil {
		return err
	}
	return st.WriteRecord(commandContext(cmd), rec)
}

// failureMessage is the user-facing text of a balance failure. The
// unbalanced-elements case names the offending elements.
func failureMessage(err error) string {
	var be *balance.Error
	if !errors.As(err, &be) {
		return err.Error()
	}
	if be.Kind == balance.KindUnbalancedElements && be.Err != nil {
		return be.Err.Error()
	}
	return be.Message
}
