package pointcode

import (
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/pointcode/internal/pointcode/schema"
	"github.com/danmuck/pointcode/internal/testutil/testlog"
)

func mustSchema(t *testing.T, id string) schema.Schema {
	t.Helper()
	s, ok := schema.Default().Lookup(id)
	if !ok {
		t.Fatalf("schema %q not registered", id)
	}
	return s
}

func TestEncodePC77KnownValues(t *testing.T) {
	testlog.Start(t)
	pc77 := mustSchema(t, schema.PC77)
	cases := map[int64]string{
		0:     "0-0",
		1234:  "9-82",
		16383: "127-127",
		8192:  "64-0",
		127:   "0-127",
		128:   "1-0",
		1024:  "8-0",
		8010:  "62-74",
	}
	for in, want := range cases {
		v, err := Encode(in, pc77)
		if err != nil {
			t.Fatalf("encode %d: %v", in, err)
		}
		if v.Formatted != want {
			t.Fatalf("encode %d = %q, want %q", in, v.Formatted, want)
		}
	}
}

func TestEncode1234BinaryBreakdown(t *testing.T) {
	testlog.Start(t)
	v, err := Encode(1234, mustSchema(t, schema.PC77))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if v.Binary != "00010011010010" {
		t.Fatalf("binary = %q", v.Binary)
	}
	if v.TrimmedBinary() != "10011010010" {
		t.Fatalf("trimmed binary = %q", v.TrimmedBinary())
	}
	bits := v.FieldBits()
	if len(bits) != 2 || bits[0] != "0001001" || bits[1] != "1010010" {
		t.Fatalf("field bits = %v", bits)
	}
	if v.Hex != "4D2" || v.Octal() != "2322" || v.Decimal != 1234 {
		t.Fatalf("unexpected value: %+v", v)
	}
	if v.Schema != schema.PC77 || v.TotalBits() != 14 {
		t.Fatalf("unexpected schema metadata: %+v", v)
	}
}

func TestDecode982Is1234(t *testing.T) {
	testlog.Start(t)
	v, err := Decode("9-82", mustSchema(t, schema.PC77))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Decimal != 1234 || v.Binary != "00010011010010" || v.Formatted != "9-82" {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestDecodeTrimsWholeInputAndEachField(t *testing.T) {
	testlog.Start(t)
	v, err := Decode("  62 -\t74  ", mustSchema(t, schema.PC77))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Decimal != 8010 || v.Formatted != "62-74" {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestEncodeBoundariesEverySchema(t *testing.T) {
	testlog.Start(t)
	for _, s := range schema.Default().All() {
		zero, err := Encode(0, s)
		if err != nil {
			t.Fatalf("%s encode 0: %v", s.ID(), err)
		}
		for i, f := range zero.Fields {
			if f != 0 {
				t.Fatalf("%s zero field %d = %d", s.ID(), i, f)
			}
		}
		if zero.Binary != strings.Repeat("0", s.TotalBits()) {
			t.Fatalf("%s zero binary = %q", s.ID(), zero.Binary)
		}

		hi, err := Encode(int64(s.MaxValue()), s)
		if err != nil {
			t.Fatalf("%s encode max: %v", s.ID(), err)
		}
		for i, f := range hi.Fields {
			if f != s.FieldMax(i) {
				t.Fatalf("%s max field %d = %d, want %d", s.ID(), i, f, s.FieldMax(i))
			}
		}
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	testlog.Start(t)
	for _, s := range schema.Default().All() {
		for _, v := range []int64{-1, int64(s.MaxValue()) + 1} {
			_, err := Encode(v, s)
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("%s encode %d: expected ErrOutOfRange, got %v", s.ID(), v, err)
			}
			ce, _ := AsError(err)
			if ce.Min != 0 || ce.Max != s.MaxValue() {
				t.Fatalf("%s encode %d: unexpected bounds %+v", s.ID(), v, ce)
			}
		}
		if _, err := EncodeUint(s.MaxValue()+1, s); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%s EncodeUint above max: %v", s.ID(), err)
		}
	}
	_, err := Encode(16384, mustSchema(t, schema.PC77))
	ce, _ := AsError(err)
	if ce == nil || ce.UserMessage() != "Invalid (Range: 0-16383)" {
		t.Fatalf("unexpected user message for pc77 overflow: %v", err)
	}
}

func TestDecodeFieldCountMismatch(t *testing.T) {
	testlog.Start(t)
	pc77 := mustSchema(t, schema.PC77)
	for text, got := range map[string]int{"1-2-3": 3, "127": 1, "": 1} {
		_, err := Decode(text, pc77)
		if !errors.Is(err, ErrMalformedFieldText) {
			t.Fatalf("decode %q: expected ErrMalformedFieldText, got %v", text, err)
		}
		ce, _ := AsError(err)
		if ce.Expected != 2 || ce.Got != got {
			t.Fatalf("decode %q: expected (2, %d), got %+v", text, got, ce)
		}
	}
}

func TestDecodeFieldOverflow(t *testing.T) {
	testlog.Start(t)
	_, err := Decode("128-0", mustSchema(t, schema.PC77))
	if !errors.Is(err, ErrFieldOverflow) {
		t.Fatalf("expected ErrFieldOverflow, got %v", err)
	}
	ce, _ := AsError(err)
	if ce.Field != 0 || ce.FieldMax != 127 {
		t.Fatalf("expected FieldOverflow(0, 127), got %+v", ce)
	}
	if ce.UserMessage() != "Part 1 exceeds range (0-127)" {
		t.Fatalf("unexpected user message %q", ce.UserMessage())
	}

	_, err = Decode("0-0-99999999999999999999999", mustSchema(t, schema.Russian))
	ce, _ = AsError(err)
	if ce == nil || ce.Kind != KindFieldOverflow || ce.Field != 2 || ce.FieldMax != 2047 {
		t.Fatalf("huge field must report FieldOverflow(2, 2047), got %v", err)
	}
}

func TestDecodeNonNumericField(t *testing.T) {
	testlog.Start(t)
	for _, text := range []string{"a-1", "1-", "1--", " - ", "0x1-2", "-1-2"} {
		_, err := Decode(text, mustSchema(t, schema.PC77))
		if err == nil {
			t.Fatalf("decode %q: expected error", text)
		}
		if !errors.Is(err, ErrInvalidNumeral) && !errors.Is(err, ErrMalformedFieldText) {
			t.Fatalf("decode %q: unexpected error %v", text, err)
		}
	}
	_, err := Decode("a-1", mustSchema(t, schema.PC77))
	ce, _ := AsError(err)
	if ce == nil || ce.Kind != KindInvalidNumeral || ce.Base != Decimal {
		t.Fatalf("expected InvalidNumeral(10), got %v", err)
	}
}

func TestRoundTripAllValuesNarrowSchemas(t *testing.T) {
	testlog.Start(t)
	reg := schema.Default()
	for _, bits := range []int{schema.Width14, schema.Width16} {
		for _, s := range reg.AllForWidth(bits) {
			for v := uint64(0); v <= s.MaxValue(); v++ {
				enc, err := EncodeUint(v, s)
				if err != nil {
					t.Fatalf("%s encode %d: %v", s.ID(), v, err)
				}
				dec, err := Decode(enc.Formatted, s)
				if err != nil {
					t.Fatalf("%s decode %q: %v", s.ID(), enc.Formatted, err)
				}
				if dec.Decimal != v || dec.Binary != enc.Binary {
					t.Fatalf("%s round trip %d -> %q -> %d", s.ID(), v, enc.Formatted, dec.Decimal)
				}
			}
		}
	}
}

func TestRoundTripStrided24BitSchemas(t *testing.T) {
	testlog.Start(t)
	for _, s := range schema.Default().AllForWidth(schema.Width24) {
		for v := uint64(0); v <= s.MaxValue(); v += 4099 {
			checkRoundTrip(t, s, v)
		}
		checkRoundTrip(t, s, s.MaxValue())
	}
}

func checkRoundTrip(t *testing.T, s schema.Schema, v uint64) {
	t.Helper()
	enc, err := EncodeUint(v, s)
	if err != nil {
		t.Fatalf("%s encode %d: %v", s.ID(), v, err)
	}
	var rebuilt strings.Builder
	for i, f := range enc.Fields {
		if f > s.FieldMax(i) {
			t.Fatalf("%s field %d = %d exceeds %d", s.ID(), i, f, s.FieldMax(i))
		}
		rebuilt.WriteString(FormatRadix(f, Binary, s.Width(i)))
	}
	if rebuilt.String() != enc.Binary {
		t.Fatalf("%s fields do not reproduce binary: %q vs %q", s.ID(), rebuilt.String(), enc.Binary)
	}
	dec, err := Decode(enc.Formatted, s)
	if err != nil {
		t.Fatalf("%s decode %q: %v", s.ID(), enc.Formatted, err)
	}
	if dec.Decimal != v {
		t.Fatalf("%s round trip %d -> %q -> %d", s.ID(), v, enc.Formatted, dec.Decimal)
	}
}

func TestExtendedSamples(t *testing.T) {
	testlog.Start(t)
	v, err := Encode(1234567, mustSchema(t, schema.ANSI))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if v.Formatted != "18-214-135" || v.Hex != "12D687" {
		t.Fatalf("unexpected ansi value: %+v", v)
	}
	d, err := Decode("75-37-103", mustSchema(t, "8-8-8"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Decimal != 4924775 || d.Schema != schema.ANSI {
		t.Fatalf("unexpected ansi decode: %+v", d)
	}
}

func TestZeroSchemaIsRejected(t *testing.T) {
	testlog.Start(t)
	if _, err := Encode(1, schema.Schema{}); !errors.Is(err, ErrMalformedFieldText) {
		t.Fatalf("encode with zero schema: %v", err)
	}
	if _, err := Decode("1", schema.Schema{}); !errors.Is(err, ErrMalformedFieldText) {
		t.Fatalf("decode with zero schema: %v", err)
	}
}
