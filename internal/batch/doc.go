// Package batch runs files of equations through the balancer and checks each
// result against an optional expectation.
//
// # File Format
//
// Batches are YAML or CUE. In YAML:
//
//	name: combustion
//	factor: 1
//	equations:
//	  - name: methane
//	    reagents: "CH4 + O2"
//	    products: "CO2 + H2O"
//	    expect:
//	      reagents: "1 CH4 + 2 O2"
//	      products: "1 CO2 + 2 H2O"
//	  - name: impossible
//	    reagents: "H2 + Cl2"
//	    products: "HCl + Cl2"
//	    expect:
//	      error: NO_SOLUTION
//
// CUE files use the same fields and may additionally declare cases keyed by
// name:
//
//	equation: methane: {
//		reagents: "CH4 + O2"
//		products: "CO2 + H2O"
//	}
//
// # Outcomes
//
// Each case ends in one of three outcomes:
//
//   - pass: the result matches the expectation, or no expectation was given
//     and the equation balanced
//   - fail: an expectation was given and the result differs
//   - error: no expectation was given and balancing failed
//
// A case-level factor overrides the batch factor, which defaults to 1.
package batch
