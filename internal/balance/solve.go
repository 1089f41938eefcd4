package balance

import (
	"errors"
	"io"
	"log/slog"
	"math/big"

	"github.com/roach88/stoich/internal/formula"
	"github.com/roach88/stoich/internal/stoich"
)

// Answer is a successfully balanced equation.
type Answer struct {
	Equation *formula.Equation

	// Coefficients is the minimal vector, before scaling.
	Coefficients []*big.Int

	// Scale is the factor applied when rendering.
	Scale int64

	// Reagents and Products are the rendered sides.
	Reagents string
	Products string
}

// Scaled returns the coefficients multiplied by Scale.
func (a *Answer) Scaled() []*big.Int {
	return Scale(a.Coefficients, a.Scale)
}

// String renders the answer as a single line with the canonical separator.
func (a *Answer) String() string {
	return a.Reagents + " " + formula.Separator + " " + a.Products
}

// Balancer runs the full text-to-text pipeline. A Balancer holds no mutable
// state and is safe for concurrent use.
type Balancer struct {
	logger    *slog.Logger
	normalize bool
}

// Option configures a Balancer.
type Option func(*Balancer)

// WithLogger sets the logger used for debug tracing of each solve.
func WithLogger(l *slog.Logger) Option {
	return func(b *Balancer) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithNormalization folds typographic variants (subscript digits, full-width
// letters) into the plain grammar before validation. See formula.Normalize.
func WithNormalization() Option {
	return func(b *Balancer) { b.normalize = true }
}

// New creates a Balancer. Logs are discarded unless WithLogger is given.
func New(opts ...Option) *Balancer {
	b := &Balancer{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Solve balances the equation reagentsText -> productsText and renders it with
// every coefficient multiplied by scale. Failures are returned as *Error.
func Solve(reagentsText, productsText string, scale int64) (*Answer, error) {
	return New().Solve(reagentsText, productsText, scale)
}

// Solve balances pre-split sides. See the package-level Solve.
func (b *Balancer) Solve(reagentsText, productsText string, scale int64) (*Answer, error) {
	if b.normalize {
		reagentsText = formula.Normalize(reagentsText)
		productsText = formula.Normalize(productsText)
	}
	if scale < 1 {
		return nil, &Error{Kind: KindInvalidScale, Message: "scale factor must be a positive integer"}
	}
	if !formula.IsValid(reagentsText) {
		return nil, &Error{Kind: KindInvalidFormulaSyntax, Message: "reagents formula does not match the grammar"}
	}
	if !formula.IsValid(productsText) {
		return nil, &Error{Kind: KindInvalidFormulaSyntax, Message: "products formula does not match the grammar"}
	}

	eq, err := formula.ParsePair(reagentsText, productsText)
	if err != nil {
		return nil, classify(err)
	}
	return b.solve(eq, scale)
}

// SolveEquation balances a combined "reagents >>> products" string. See
// formula.Split for the accepted separators.
func (b *Balancer) SolveEquation(text string, scale int64) (*Answer, error) {
	if scale < 1 {
		return nil, &Error{Kind: KindInvalidScale, Message: "scale factor must be a positive integer"}
	}
	if b.normalize {
		text = formula.Normalize(text)
	}
	reagents, products, err := formula.Split(text)
	if err != nil {
		return nil, classify(err)
	}
	return b.Solve(reagents, products, scale)
}

func (b *Balancer) solve(eq *formula.Equation, scale int64) (*Answer, error) {
	b.logger.Debug("balancing equation",
		"equation", eq.String(),
		"molecules", len(eq.Reagents)+len(eq.Products))

	res, err := Balance(eq)
	if err != nil {
		b.logger.Debug("balance failed", "equation", eq.String(), "error", err)
		return nil, classify(err)
	}

	b.logger.Debug("reduced matrix",
		"elements", res.System.Elements,
		"rref", res.Matrix().String())

	if !Conserves(eq, res.Coefficients) {
		b.logger.Debug("coefficient readout does not conserve elements",
			"equation", eq.String(),
			"coefficients", len(res.Coefficients))
		return nil, &Error{
			Kind:    KindIndeterminate,
			Message: "the equation has no unique balancing",
		}
	}

	reagents, products := Render(eq, res.Coefficients, scale)
	return &Answer{
		Equation:     eq,
		Coefficients: res.Coefficients,
		Scale:        scale,
		Reagents:     reagents,
		Products:     products,
	}, nil
}

// classify maps pipeline errors onto Kinds.
func classify(err error) error {
	var (
		syntaxErr *formula.SyntaxError
		unbalErr  *stoich.UnbalancedElementsError
		noSolErr  *NoSolutionError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return &Error{Kind: KindInvalidFormulaSyntax, Message: syntaxErr.Side + " formula does not match the grammar", Err: err}
	case errors.As(err, &unbalErr):
		return &Error{Kind: KindUnbalancedElements, Message: "element exists on only one side", Err: err}
	case errors.As(err, &noSolErr):
		return &Error{Kind: KindNoSolution, Message: "impossible", Err: err}
	default:
		return &Error{Kind: KindInternal, Message: "unexpected balancing failure", Err: err}
	}
}
