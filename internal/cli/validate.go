package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/stoich/internal/formula"
)

// SideValidation is the grammar check result for one argument.
type SideValidation struct {
	Input     string   `json:"input"`
	Valid     bool     `json:"valid"`
	Molecules []string `json:"molecules,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Sides []SideValidation `json:"sides"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <side>...",
		Short: "Check formulas against the grammar without balancing",
		Long: `Check that each argument is a well-formed side of an equation:
molecules joined by "+", each an optional leading multiplier followed by
element symbols with optional atom counts. Spaces are ignored.

Exit codes:
  0 - Every argument is valid
  1 - At least one argument is invalid

Examples:
  stoich validate "CH4 + O2" "CO2 + H2O"
  stoich validate "2H2O" --format json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return WrapExitError(ExitCommandError, "invalid arguments", err)
			}
			return nil
		},
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	result := ValidationResult{Valid: true, Sides: make([]SideValidation, 0, len(args))}
	for _, arg := range args {
		input := arg
		if opts.Normalize {
			input = formula.Normalize(input)
		}

		sv := SideValidation{Input: arg, Valid: formula.IsValid(input)}
		if sv.Valid {
			molecules, err := formula.ParseSide(input)
			if err != nil {
				// atom count overflow passes the grammar but not the parser
				sv.Valid = false
			} else {
				for _, m := range molecules {
					sv.Molecules = append(sv.Molecules, m.Text)
				}
			}
		}
		if !sv.Valid {
			result.Valid = false
		}
		formatter.VerboseLog("validated %q: %t", arg, sv.Valid)
		result.Sides = append(result.Sides, sv)
	}

	if formatter.Format == "json" {
		if !result.Valid {
			return outputValidationErrors(formatter, result)
		}
		return formatter.Success(result)
	}

	for _, sv := range result.Sides {
		if sv.Valid {
			fmt.Fprintf(formatter.Writer, "✓ %s\n", sv.Input)
		} else {
			fmt.Fprintf(formatter.Writer, "✗ %s\n", sv.Input)
		}
	}
	if !result.Valid {
		return &ExitError{Code: ExitFailure, Message: "validation failed", Reported: true}
	}
	return nil
}

// outputValidationErrors writes the JSON error envelope carrying the full
// per-side result.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	invalid := 0
	for _, sv := range result.Sides {
		if !sv.Valid {
			invalid++
		}
	}

	_ = formatter.Error(ErrCodeFormulaSyntax, fmt.Sprintf("%d of %d formula(s) invalid", invalid, len(result.Sides)), result)

	// Validation failures = exit code 1
	return &ExitError{
		Code:     ExitFailure,
		Message:  fmt.Sprintf("validation failed with %d error(s)", invalid),
		Reported: true,
	}
}
