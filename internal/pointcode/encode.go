package pointcode

import "github.com/danmuck/pointcode/internal/pointcode/schema"

// FieldSeparator joins field values in formatted text.
const FieldSeparator = '-'

// Encode splits value into the fields of s. Negative values and values above
// s.MaxValue() fail with OutOfRange.
func Encode(value int64, s schema.Schema) (Value, error) {
	if s.IsZero() {
		return Value{}, UnknownSchema("")
	}
	if value < 0 || uint64(value) > s.MaxValue() {
		return Value{}, OutOfRange(0, s.MaxValue())
	}
	return encode(uint64(value), s)
}

// EncodeUint is Encode for callers already holding an unsigned value.
func EncodeUint(value uint64, s schema.Schema) (Value, error) {
	if s.IsZero() {
		return Value{}, UnknownSchema("")
	}
	if value > s.MaxValue() {
		return Value{}, OutOfRange(0, s.MaxValue())
	}
	return encode(value, s)
}

func encode(value uint64, s schema.Schema) (Value, error) {
	widths := s.Widths()
	binary := FormatRadix(value, Binary, s.TotalBits())
	slices := splitBinary(binary, widths)
	fields := make([]uint64, len(slices))
	for i, bits := range slices {
		f, err := ParseRadix(bits, Binary)
		if err != nil {
			return Value{}, err
		}
		fields[i] = f
	}
	return Value{
		Schema:    s.ID(),
		Decimal:   value,
		Binary:    binary,
		Hex:       FormatRadix(value, Hexadecimal, 0),
		Fields:    fields,
		Formatted: joinFields(fields),
		Widths:    widths,
	}, nil
}

// splitBinary cuts binary left to right into consecutive slices of widths.
// The caller guarantees len(binary) == sum(widths).
func splitBinary(binary string, widths []int) []string {
	parts := make([]string, 0, len(widths))
	offset := 0
	for _, w := range widths {
		parts = append(parts, binary[offset:offset+w])
		offset += w
	}
	return parts
}
