package ir

import (
	"math/big"
	"strings"
)

// Record is the canonical, storable outcome of one balance request.
//
// Exactly one of Coefficients and ErrorKind is set. Coefficients are decimal
// strings so that arbitrarily large integers survive JSON round trips.
type Record struct {
	// ID is EquationID(Reagents, Products, Scale).
	ID string `json:"id"`

	// RunID groups records written by one CLI invocation or batch run.
	RunID string `json:"run_id"`

	// Seq orders records within the store. Assigned on write.
	Seq int64 `json:"seq"`

	Reagents string `json:"reagents"`
	Products string `json:"products"`
	Scale    int64  `json:"scale"`

	// Coefficients are the unscaled minimal coefficients.
	Coefficients []string `json:"coefficients,omitempty"`

	// Balanced is the rendered, scaled equation.
	Balanced string `json:"balanced,omitempty"`

	ErrorKind    string `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	// OutcomeHash is OutcomeHash(record).
	OutcomeHash string `json:"outcome_hash"`
}

// OK reports whether the record describes a successful balance.
func (r *Record) OK() bool { return r.ErrorKind == "" }

// ToObject converts the record to an Object for canonical serialization.
// Empty optional fields are omitted.
func (r *Record) ToObject() Object {
	obj := Object{
		"id":           String(r.ID),
		"reagents":     String(r.Reagents),
		"products":     String(r.Products),
		"scale":        NewInt(r.Scale),
		"outcome_hash": String(r.OutcomeHash),
	}
	if r.RunID != "" {
		obj["run_id"] = String(r.RunID)
	}
	if r.Seq != 0 {
		obj["seq"] = NewInt(r.Seq)
	}
	if len(r.Coefficients) > 0 {
		obj["coefficients"] = stringArray(r.Coefficients)
	}
	if r.Balanced != "" {
		obj["balanced"] = String(r.Balanced)
	}
	if r.ErrorKind != "" {
		obj["error_kind"] = String(r.ErrorKind)
		obj["error_message"] = String(r.ErrorMessage)
	}
	return obj
}

// CoefficientStrings formats coefficients as decimal strings.
func CoefficientStrings(coefs []*big.Int) []string {
	out := make([]string, len(coefs))
	for i, c := range coefs {
		out[i] = c.String()
	}
	return out
}

func compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
