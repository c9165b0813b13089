package pointcode

import (
	"strings"

	"github.com/danmuck/pointcode/internal/pointcode/schema"
)

// Decode reads formatted text ("f0-f1-...") under s. Whitespace around the
// whole text and around each field is ignored.
func Decode(text string, s schema.Schema) (Value, error) {
	if s.IsZero() {
		return Value{}, UnknownSchema("")
	}
	parts := strings.Split(strings.TrimSpace(text), string(FieldSeparator))
	if len(parts) != s.FieldCount() {
		return Value{}, MalformedFieldText(s.FieldCount(), len(parts))
	}

	fields := make([]uint64, len(parts))
	for i, part := range parts {
		f, err := ParseRadix(part, Decimal)
		if err != nil {
			if ce, ok := AsError(err); ok && ce.Kind == KindOutOfRange {
				return Value{}, FieldOverflow(i, s.FieldMax(i))
			}
			return Value{}, err
		}
		if f > s.FieldMax(i) {
			return Value{}, FieldOverflow(i, s.FieldMax(i))
		}
		fields[i] = f
	}

	var b strings.Builder
	b.Grow(s.TotalBits())
	for i, f := range fields {
		b.WriteString(FormatRadix(f, Binary, s.Width(i)))
	}
	binary := b.String()

	decimal, err := ParseRadix(binary, Binary)
	if err != nil {
		return Value{}, err
	}
	return Value{
		Schema:    s.ID(),
		Decimal:   decimal,
		Binary:    binary,
		Hex:       FormatRadix(decimal, Hexadecimal, 0),
		Fields:    fields,
		Formatted: joinFields(fields),
		Widths:    s.Widths(),
	}, nil
}
