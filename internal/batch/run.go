package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/stoich/internal/balance"
	"github.com/roach88/stoich/internal/ir"
)

// Outcome is the verdict on a single case.
type Outcome string

const (
	OutcomePass  Outcome = "pass"
	OutcomeFail  Outcome = "fail"
	OutcomeError Outcome = "error"
)

// Sink receives one record per case. *store.Store satisfies it.
type Sink interface {
	WriteRecord(ctx context.Context, rec *ir.Record) error
}

// Options configures Run. The zero value is usable.
type Options struct {
	// Balancer defaults to balance.New().
	Balancer *balance.Balancer

	// Sink, if set, stores every case outcome under the run ID.
	Sink Sink

	// RunIDs defaults to UUIDv7Generator.
	RunIDs RunIDGenerator

	Logger *slog.Logger
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name     string
	Reagents string
	Products string
	Factor   int64
	Outcome  Outcome

	// Balanced is the rendered equation when balancing succeeded.
	Balanced string

	// Coefficients are the unscaled coefficients when balancing succeeded.
	Coefficients []string

	// ErrorKind is set when balancing failed.
	ErrorKind string

	// Detail explains a fail or error outcome.
	Detail string
}

// Report is the outcome of a batch run.
type Report struct {
	Name    string
	RunID   string
	Cases   []CaseResult
	Passed  int
	Failed  int
	Errored int
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}

// Summary returns a one-line tally such as "3 passed, 1 failed, 0 errors".
func (r *Report) Summary() string {
	return fmt.Sprintf("%d passed, %d failed, %d errors", r.Passed, r.Failed, r.Errored)
}

func (r *Report) add(res CaseResult) {
	r.Cases = append(r.Cases, res)
	switch res.Outcome {
	case OutcomePass:
		r.Passed++
	case OutcomeFail:
		r.Failed++
	case OutcomeError:
		r.Errored++
	}
}

// Run balances every case of b in order.
//
// A case that fails to balance is an outcome, not an error: Run only returns
// an error when ctx is done or the sink rejects a record. The partial report
// is returned alongside the error.
func Run(ctx context.Context, b *Batch, opts Options) (*Report, error) {
	if opts.Balancer == nil {
		opts.Balancer = balance.New()
	}
	if opts.RunIDs == nil {
		opts.RunIDs = UUIDv7Generator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	report := &Report{
		Name:  b.Name,
		RunID: opts.RunIDs.Generate(),
		Cases: []CaseResult{},
	}
	logger.Info("batch started", "batch", b.Name, "run_id", report.RunID, "cases", len(b.Cases))

	for _, c := range b.Cases {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("batch %s: %w", b.Name, err)
		}

		factor := b.factor(c)
		ans, err := opts.Balancer.Solve(c.Reagents, c.Products, factor)
		res := judge(c, factor, ans, err)
		report.add(res)

		logger.Debug("case finished",
			"case", c.Name,
			"outcome", string(res.Outcome),
			"error_kind", res.ErrorKind)

		if opts.Sink != nil {
			rec, recErr := NewRecord(report.RunID, c.Reagents, c.Products, factor, ans, err)
			if recErr != nil {
				return report, fmt.Errorf("case %s: %w", c.Name, recErr)
			}
			if err := opts.Sink.WriteRecord(ctx, rec); err != nil {
				return report, fmt.Errorf("case %s: %w", c.Name, err)
			}
		}
	}

	logger.Info("batch finished",
		"batch", b.Name,
		"run_id", report.RunID,
		"passed", report.Passed,
		"failed", report.Failed,
		"errors", report.Errored)
	return report, nil
}

// judge compares one solve against the case expectation.
func judge(c Case, factor int64, ans *balance.Answer, err error) CaseResult {
	res := CaseResult{
		Name:     c.Name,
		Reagents: c.Reagents,
		Products: c.Products,
		Factor:   factor,
	}
	if err != nil {
		res.ErrorKind = string(balance.KindOf(err))
		res.Detail = errorMessage(err)
	} else {
		res.Balanced = ans.String()
		res.Coefficients = ir.CoefficientStrings(ans.Coefficients)
	}

	switch exp := c.Expect; {
	case exp == nil && err == nil:
		res.Outcome = OutcomePass
	case exp == nil:
		res.Outcome = OutcomeError
	case exp.Error != "":
		if res.ErrorKind == exp.Error {
			res.Outcome = OutcomePass
			res.Detail = ""
		} else {
			res.Outcome = OutcomeFail
			res.Detail = fmt.Sprintf("expected error %s, got %s", exp.Error, describe(res))
		}
	case err != nil:
		res.Outcome = OutcomeFail
		res.Detail = fmt.Sprintf("expected %s >>> %s, got error %s", exp.Reagents, exp.Products, res.ErrorKind)
	case sameTerms(exp.Reagents, ans.Reagents) && sameTerms(exp.Products, ans.Products):
		res.Outcome = OutcomePass
	default:
		res.Outcome = OutcomeFail
		res.Detail = fmt.Sprintf("expected %s >>> %s, got %s", exp.Reagents, exp.Products, res.Balanced)
	}
	return res
}

func describe(res CaseResult) string {
	if res.ErrorKind != "" {
		return res.ErrorKind
	}
	return res.Balanced
}

// sameTerms compares rendered sides with all whitespace removed. Molecule
// text never starts with a digit, so "1H2" can only mean "1 H2".
func sameTerms(a, b string) bool {
	return strings.Join(strings.Fields(a), "") == strings.Join(strings.Fields(b), "")
}

// errorMessage returns the user-facing message of a balance failure.
func errorMessage(err error) string {
	var be *balance.Error
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}

// NewRecord builds the storable record of one solve. Exactly one of ans and
// solveErr must be non-nil.
func NewRecord(runID, reagents, products string, scale int64, ans *balance.Answer, solveErr error) (*ir.Record, error) {
	id, err := ir.EquationID(reagents, products, scale)
	if err != nil {
		return nil, err
	}
	rec := &ir.Record{
		ID:       id,
		RunID:    runID,
		Reagents: reagents,
		Products: products,
		Scale:    scale,
	}
	if solveErr != nil {
		kind := balance.KindOf(solveErr)
		if kind == "" {
			kind = balance.KindInternal
		}
		rec.ErrorKind = string(kind)
		rec.ErrorMessage = errorMessage(solveErr)
	} else {
		rec.Coefficients = ir.CoefficientStrings(ans.Coefficients)
		rec.Balanced = ans.String()
	}

	hash, err := ir.OutcomeHash(rec)
	if err != nil {
		return nil, err
	}
	rec.OutcomeHash = hash
	return rec, nil
}
