package batch

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/stoich/internal/ir"
)

// toCanonicalMap converts a Report to a map[string]any for canonical JSON
// serialization. Empty optional fields are omitted.
func (r *Report) toCanonicalMap() map[string]any {
	cases := make([]any, len(r.Cases))
	for i, c := range r.Cases {
		m := map[string]any{
			"name":     c.Name,
			"outcome":  string(c.Outcome),
			"reagents": c.Reagents,
			"products": c.Products,
			"factor":   c.Factor,
		}
		if c.Balanced != "" {
			m["balanced"] = c.Balanced
		}
		if len(c.Coefficients) > 0 {
			m["coefficients"] = c.Coefficients
		}
		if c.ErrorKind != "" {
			m["error_kind"] = c.ErrorKind
		}
		if c.Detail != "" {
			m["detail"] = c.Detail
		}
		cases[i] = m
	}

	result := map[string]any{
		"name":  r.Name,
		"cases": cases,
		"summary": map[string]any{
			"passed": r.Passed,
			"failed": r.Failed,
			"errors": r.Errored,
		},
	}
	if r.RunID != "" {
		result["run_id"] = r.RunID
	}
	return result
}

// MarshalCanonical renders the report as canonical JSON.
func (r *Report) MarshalCanonical() ([]byte, error) {
	return ir.MarshalCanonical(r.toCanonicalMap())
}

// AssertGolden compares report against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/batch -update
func AssertGolden(t *testing.T, name string, report *Report) error {
	t.Helper()

	data, err := report.MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
