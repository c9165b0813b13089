package pointcode

import (
	"strconv"
	"strings"
)

// Value is the result of a successful encode or decode under one schema.
//
// Binary is exactly TotalBits characters, most significant bit first.
// Concatenating each Fields[i] as a Widths[i]-bit binary string reproduces
// Binary.
type Value struct {
	Schema    string   `json:"schema" yaml:"schema"`
	Decimal   uint64   `json:"decimal" yaml:"decimal"`
	Binary    string   `json:"binary" yaml:"binary"`
	Hex       string   `json:"hex" yaml:"hex"`
	Fields    []uint64 `json:"fields" yaml:"fields"`
	Formatted string   `json:"formatted" yaml:"formatted"`
	Widths    []int    `json:"widths" yaml:"widths"`
}

// TotalBits is the width of the binary form.
func (v Value) TotalBits() int {
	return len(v.Binary)
}

// FieldBits returns each field's zero-padded bit slice, in field order.
func (v Value) FieldBits() []string {
	out := make([]string, 0, len(v.Widths))
	offset := 0
	for _, w := range v.Widths {
		if offset+w > len(v.Binary) {
			break
		}
		out = append(out, v.Binary[offset:offset+w])
		offset += w
	}
	return out
}

// TrimmedBinary is the binary form without leading zeros ("0" for zero).
func (v Value) TrimmedBinary() string {
	t := strings.TrimLeft(v.Binary, "0")
	if t == "" {
		return "0"
	}
	return t
}

// Octal renders the decimal value in base 8.
func (v Value) Octal() string {
	return FormatRadix(v.Decimal, Octal, 0)
}

func joinFields(fields []uint64) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(FieldSeparator)
		}
		b.WriteString(strconv.FormatUint(f, 10))
	}
	return b.String()
}
