package convert

import (
	"strings"

	"github.com/danmuck/pointcode/internal/pointcode"
)

// Breakdown is the base-converter view of one number.
type Breakdown struct {
	Input      string         `json:"input" yaml:"input"`
	InputBase  pointcode.Base `json:"input_base" yaml:"input_base"`
	Decimal    uint64         `json:"decimal" yaml:"decimal"`
	Binary     string         `json:"binary" yaml:"binary"`
	Octal      string         `json:"octal" yaml:"octal"`
	Hex        string         `json:"hex" yaml:"hex"`
	Output     string         `json:"output,omitempty" yaml:"output,omitempty"`
	OutputBase pointcode.Base `json:"output_base,omitempty" yaml:"output_base,omitempty"`
}

// Breakdown parses text in base from and renders it in every common base.
func (c *Converter) Breakdown(text string, from pointcode.Base) (Breakdown, error) {
	b, err := breakdown(text, from)
	c.report(OpBreakdown, baseLabel(from), err)
	if err != nil {
		return Breakdown{}, err
	}
	return b, nil
}

// ConvertBase parses text in base from and renders it in base to.
func (c *Converter) ConvertBase(text string, from, to pointcode.Base) (Breakdown, error) {
	if !to.Valid() {
		err := pointcode.InvalidNumeral(to)
		c.report(OpBreakdown, baseLabel(from), err)
		return Breakdown{}, err
	}
	b, err := c.Breakdown(text, from)
	if err != nil {
		return Breakdown{}, err
	}
	b.Output = pointcode.FormatRadix(b.Decimal, to, 0)
	b.OutputBase = to
	return b, nil
}

func breakdown(text string, from pointcode.Base) (Breakdown, error) {
	v, err := pointcode.ParseRadix(text, from)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{
		Input:     strings.TrimSpace(text),
		InputBase: from,
		Decimal:   v,
		Binary:    pointcode.FormatRadix(v, pointcode.Binary, 0),
		Octal:     pointcode.FormatRadix(v, pointcode.Octal, 0),
		Hex:       pointcode.FormatRadix(v, pointcode.Hexadecimal, 0),
	}, nil
}

func baseLabel(b pointcode.Base) string {
	if !b.Valid() {
		return "unknown"
	}
	return b.String()
}
