// Package ir provides the canonical record of a balance request and its
// content-addressed identity.
//
// This package imports nothing internal. Key constraints:
//   - NO float types anywhere; integers may be arbitrarily large
//   - All JSON tags use snake_case
//   - Identity hashes are computed over RFC 8785 canonical JSON with
//     SHA-256 and domain separation
package ir
