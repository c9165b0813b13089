package pointcode

import (
	"math"
	"strconv"
	"strings"
)

// Base is a positional numeral system radix in [MinBase, MaxBase].
type Base int

const (
	MinBase Base = 2
	MaxBase Base = 36

	Binary      Base = 2
	Octal       Base = 8
	Decimal     Base = 10
	Hexadecimal Base = 16
)

const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// digitValue maps an ASCII byte to its digit value, or 0xFF when it is not
// a digit in any supported base. Lowercase letters map like uppercase.
var digitValue [256]uint8

func init() {
	for i := range digitValue {
		digitValue[i] = 0xFF
	}
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		digitValue[c] = uint8(i)
		if c >= 'A' && c <= 'Z' {
			digitValue[c+('a'-'A')] = uint8(i)
		}
	}
}

// Valid reports whether b is within [MinBase, MaxBase].
func (b Base) Valid() bool {
	return b >= MinBase && b <= MaxBase
}

// Name returns the conventional name for the common bases and "" otherwise.
func (b Base) Name() string {
	switch b {
	case Binary:
		return "Binary"
	case Octal:
		return "Octal"
	case Decimal:
		return "Decimal"
	case Hexadecimal:
		return "Hexadecimal"
	default:
		return ""
	}
}

func (b Base) String() string {
	if n := b.Name(); n != "" {
		return strings.ToLower(n)
	}
	return "base" + strconv.Itoa(int(b))
}

// ParseBase resolves a base from its number ("16") or a common name
// ("hex", "hexadecimal", "bin", "oct", "dec").
func ParseBase(raw string) (Base, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bin", "binary":
		return Binary, true
	case "oct", "octal":
		return Octal, true
	case "dec", "decimal":
		return Decimal, true
	case "hex", "hexadecimal":
		return Hexadecimal, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	b := Base(n)
	if !b.Valid() {
		return 0, false
	}
	return b, true
}

// FormatRadix renders v in base, left-padded with '0' to minWidth. Longer
// natural representations are never truncated. Digits above 9 are uppercase.
// FormatRadix panics if base is invalid.
func FormatRadix(v uint64, base Base, minWidth int) string {
	if !base.Valid() {
		panic("pointcode: illegal base " + strconv.Itoa(int(base)))
	}
	var buf [64]byte // base 2 worst case
	i := len(buf)
	b := uint64(base)
	for {
		i--
		buf[i] = digits[v%b]
		v /= b
		if v == 0 {
			break
		}
	}
	out := buf[i:]
	if pad := minWidth - len(out); pad > 0 {
		return strings.Repeat("0", pad) + string(out)
	}
	return string(out)
}

// ParseRadix reads a bare digit string in base. Surrounding whitespace is
// ignored; signs and prefixes such as "0x" are rejected. Values that do not
// fit in a uint64 fail with OutOfRange.
func ParseRadix(text string, base Base) (uint64, error) {
	if !base.Valid() {
		return 0, InvalidNumeral(base)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, InvalidNumeral(base)
	}
	b := uint64(base)
	cutoff := math.MaxUint64 / b
	var n uint64
	overflow := false
	for i := 0; i < len(text); i++ {
		d := digitValue[text[i]]
		if d == 0xFF || uint64(d) >= b {
			return 0, InvalidNumeral(base)
		}
		if overflow {
			continue
		}
		if n > cutoff {
			overflow = true
			continue
		}
		n *= b
		next := n + uint64(d)
		if next < n {
			overflow = true
			continue
		}
		n = next
	}
	if overflow {
		return 0, OutOfRange(0, math.MaxUint64)
	}
	return n, nil
}
