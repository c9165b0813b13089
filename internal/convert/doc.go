// Package convert assembles the multi-representation views on top of the
// pointcode primitives.
//
// A Converter reads an input in one notation (decimal, hexadecimal, or the
// formatted text of some schema), re-encodes it under a target schema, and
// builds the comparison table of every schema sharing a table width. It also
// serves the plain base-converter breakdown (decimal/binary/octal/hex).
//
// Converters are safe for concurrent use; they only read the registry they
// were built with.
package convert
