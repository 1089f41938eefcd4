package ir

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquationIDDeterminism(t *testing.T) {
	id1, err := EquationID("CH4 + O2", "CO2 + H2O", 1)
	require.NoError(t, err)
	id2, err := EquationID("CH4 + O2", "CO2 + H2O", 1)
	require.NoError(t, err)

	assert.Equal(t, id1, id2, "EquationID must be deterministic")
	assert.Len(t, id1, 64, "SHA-256 hex is 64 characters")
}

func TestEquationIDIgnoresSpaces(t *testing.T) {
	assert.Equal(t,
		MustEquationID("CH4 + O2", "CO2 + H2O", 1),
		MustEquationID("CH4+O2", " CO2+H2O ", 1))
}

func TestEquationIDChangesWithInput(t *testing.T) {
	base := MustEquationID("CH4 + O2", "CO2 + H2O", 1)

	assert.NotEqual(t, base, MustEquationID("CH4 + O2", "CO2 + H2O", 2), "scale")
	assert.NotEqual(t, base, MustEquationID("CO2 + H2O", "CH4 + O2", 1), "swapped sides")
	assert.NotEqual(t, base, MustEquationID("CH4 + O3", "CO2 + H2O", 1), "reagents")
}

func TestHashWithDomainSeparation(t *testing.T) {
	data := []byte(`{"a":1}`)
	assert.NotEqual(t, hashWithDomain(DomainEquation, data), hashWithDomain(DomainOutcome, data))
}

func TestOutcomeHash(t *testing.T) {
	ok := &Record{Coefficients: CoefficientStrings([]*big.Int{big.NewInt(1), big.NewInt(2)})}
	same := &Record{Coefficients: []string{"1", "2"}, RunID: "other-run", Seq: 9}
	failed := &Record{ErrorKind: "NO_SOLUTION"}

	h1, err := OutcomeHash(ok)
	require.NoError(t, err)
	h2, err := OutcomeHash(same)
	require.NoError(t, err)
	h3, err := OutcomeHash(failed)
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "run metadata must not affect the outcome hash")
	assert.NotEqual(t, h1, h3)
}

func TestRecordToObject(t *testing.T) {
	rec := &Record{
		ID:          "id",
		Reagents:    "H2 + Cl2",
		Products:    "HCl + Cl2",
		Scale:       1,
		ErrorKind:   "NO_SOLUTION",
		OutcomeHash: "h",
	}
	assert.False(t, rec.OK())

	out, err := MarshalCanonical(rec.ToObject())
	require.NoError(t, err)
	assert.Equal(t,
		`{"error_kind":"NO_SOLUTION","error_message":"","id":"id","outcome_hash":"h","products":"HCl + Cl2","reagents":"H2 + Cl2","scale":1}`,
		string(out))
}
