package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix allows a
// future change of algorithm without colliding with stored IDs.
const (
	DomainEquation = "stoich/equation/v1"
	DomainOutcome  = "stoich/outcome/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data). The null byte keeps
// the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EquationID computes the content address of a balance request. Spaces in the
// sides are insignificant to the grammar, so they are removed first: "H2 + O2"
// and "H2+O2" share an ID.
func EquationID(reagents, products string, scale int64) (string, error) {
	obj := Object{
		"reagents": String(compact(reagents)),
		"products": String(compact(products)),
		"scale":    NewInt(scale),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("EquationID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainEquation, canonical), nil
}

// OutcomeHash computes a digest of what a balance produced: either the
// coefficients or the error kind. Two runs of the same equation must produce
// the same OutcomeHash.
func OutcomeHash(rec *Record) (string, error) {
	obj := Object{
		"coefficients": stringArray(rec.Coefficients),
		"error_kind":   String(rec.ErrorKind),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("OutcomeHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainOutcome, canonical), nil
}

// MustEquationID is like EquationID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustEquationID(reagents, products string, scale int64) string {
	id, err := EquationID(reagents, products, scale)
	if err != nil {
		panic(err)
	}
	return id
}

func stringArray(ss []string) Array {
	arr := make(Array, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return arr
}
