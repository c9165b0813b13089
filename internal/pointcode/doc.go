// Package pointcode owns the point-code conversion primitives.
//
// Ownership boundary:
// - radix formatting and parsing for bases 2..36
// - bit-field encode/decode against a schema.Schema
// - the conversion error taxonomy shared by every caller
//
// Nothing in this package performs I/O or holds mutable state.
package pointcode
