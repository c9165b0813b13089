package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/pointcode/internal/pointcode"
	"github.com/danmuck/pointcode/internal/pointcode/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownNotation = errors.New("convert: unknown input notation")
	ErrUnknownWidth    = errors.New("convert: no schemas for table width")
)

// Operation labels reported to an Observer.
const (
	OpConvert         = "convert"
	OpRepresentations = "representations"
	OpBreakdown       = "breakdown"
)

// Notation names how an input string is written.
type Notation int

const (
	NotationDecimal Notation = iota + 1
	NotationHexadecimal
	NotationFormatted
)

func (n Notation) String() string {
	switch n {
	case NotationDecimal:
		return "decimal"
	case NotationHexadecimal:
		return "hexadecimal"
	case NotationFormatted:
		return "formatted"
	default:
		return fmt.Sprintf("notation(%d)", int(n))
	}
}

// ParseNotation accepts "decimal"/"dec", "hexadecimal"/"hex" and
// "formatted"/"fmt".
func ParseNotation(raw string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "decimal", "dec", "":
		return NotationDecimal, nil
	case "hexadecimal", "hex":
		return NotationHexadecimal, nil
	case "formatted", "fmt":
		return NotationFormatted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNotation, raw)
	}
}

// Input is one value to convert. SchemaID names the layout of a formatted
// Text; it is ignored for decimal and hexadecimal input. An empty SchemaID
// on formatted input means "same as the target".
type Input struct {
	Text     string
	Notation Notation
	SchemaID string
}

// Representation is one row of the comparison table.
type Representation struct {
	SchemaID   string   `json:"schema" yaml:"schema"`
	SchemaName string   `json:"name" yaml:"name"`
	Formatted  string   `json:"formatted" yaml:"formatted"`
	Fields     []uint64 `json:"fields" yaml:"fields"`
}

// Observer receives the outcome of every facade operation. err is nil on
// success.
type Observer interface {
	ObserveConversion(op, schemaID string, err error)
}

// Converter is the conversion facade over one schema registry.
type Converter struct {
	registry *schema.Registry
	logger   *zerolog.Logger
	observer Observer
}

type Option func(*Converter)

// WithLogger pins the logger; by default the global zerolog logger is used.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = &l
	}
}

// WithObserver attaches an outcome observer (metrics).
func WithObserver(o Observer) Option {
	return func(c *Converter) {
		c.observer = o
	}
}

// New returns a Converter over reg, or over schema.Default() when reg is nil.
func New(reg *schema.Registry, opts ...Option) *Converter {
	if reg == nil {
		reg = schema.Default()
	}
	c := &Converter{registry: reg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry exposes the registry the converter reads.
func (c *Converter) Registry() *schema.Registry {
	return c.registry
}

// Schemas lists the schemas of one table width, or all of them when bits is 0.
func (c *Converter) Schemas(bits int) []schema.Schema {
	if bits == 0 {
		return c.registry.All()
	}
	return c.registry.AllForWidth(bits)
}

// Widths lists the populated table widths.
func (c *Converter) Widths() []int {
	return c.registry.Widths()
}

// Lookup resolves a schema by id or alias.
func (c *Converter) Lookup(id string) (schema.Schema, error) {
	s, ok := c.registry.Lookup(id)
	if !ok {
		return schema.Schema{}, pointcode.UnknownSchema(id)
	}
	return s, nil
}

// Convert reads in and encodes it under the target schema. Formatted input
// is decoded under its own schema first, which must share the target's
// table width.
func (c *Converter) Convert(in Input, targetID string) (pointcode.Value, error) {
	v, err := c.convert(in, targetID)
	c.report(OpConvert, c.label(targetID), err)
	if err != nil {
		c.log().Debug().
			Str("notation", in.Notation.String()).
			Str("input_schema", in.SchemaID).
			Str("target", targetID).
			Err(err).
			Msg("convert rejected")
		return pointcode.Value{}, err
	}
	c.log().Debug().
		Str("notation", in.Notation.String()).
		Str("target", v.Schema).
		Uint64("decimal", v.Decimal).
		Str("formatted", v.Formatted).
		Msg("convert ok")
	return v, nil
}

func (c *Converter) convert(in Input, targetID string) (pointcode.Value, error) {
	target, err := c.Lookup(targetID)
	if err != nil {
		return pointcode.Value{}, err
	}
	switch in.Notation {
	case NotationFormatted:
		srcID := in.SchemaID
		if strings.TrimSpace(srcID) == "" {
			srcID = target.ID()
		}
		src, err := c.Lookup(srcID)
		if err != nil {
			return pointcode.Value{}, err
		}
		decoded, err := pointcode.Decode(in.Text, src)
		if err != nil {
			return pointcode.Value{}, err
		}
		if src.TotalBits() != target.TotalBits() {
			return pointcode.Value{}, pointcode.OutOfRange(0, target.MaxValue())
		}
		return pointcode.EncodeUint(decoded.Decimal, target)
	case NotationDecimal, NotationHexadecimal:
		value, err := parseNumber(in.Text, in.Notation, target.MaxValue())
		if err != nil {
			return pointcode.Value{}, err
		}
		return pointcode.EncodeUint(value, target)
	default:
		return pointcode.Value{}, fmt.Errorf("%w: %s", ErrUnknownNotation, in.Notation)
	}
}

// AllRepresentations encodes value under every schema of one table width,
// in registry order.
func (c *Converter) AllRepresentations(value uint64, totalBits int) ([]Representation, error) {
	rows, err := c.allRepresentations(value, totalBits)
	c.report(OpRepresentations, c.widthLabel(totalBits), err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Converter) allRepresentations(value uint64, totalBits int) ([]Representation, error) {
	schemas := c.registry.AllForWidth(totalBits)
	if len(schemas) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWidth, totalBits)
	}
	limit := schemas[0].MaxValue()
	if value > limit {
		return nil, pointcode.OutOfRange(0, limit)
	}
	rows := make([]Representation, 0, len(schemas))
	for _, s := range schemas {
		v, err := pointcode.EncodeUint(value, s)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Representation{
			SchemaID:   s.ID(),
			SchemaName: s.Name(),
			Formatted:  v.Formatted,
			Fields:     v.Fields,
		})
	}
	return rows, nil
}

// Representations is AllRepresentations for a textual input. Decimal and
// hexadecimal input use totalBits; formatted input is decoded under its
// schema and compared within that schema's width.
func (c *Converter) Representations(in Input, totalBits int) ([]Representation, error) {
	var value uint64
	switch in.Notation {
	case NotationFormatted:
		src, err := c.Lookup(in.SchemaID)
		if err != nil {
			c.report(OpRepresentations, c.label(in.SchemaID), err)
			return nil, err
		}
		decoded, err := pointcode.Decode(in.Text, src)
		if err != nil {
			c.report(OpRepresentations, src.ID(), err)
			return nil, err
		}
		value, totalBits = decoded.Decimal, src.TotalBits()
	case NotationDecimal, NotationHexadecimal:
		schemas := c.registry.AllForWidth(totalBits)
		if len(schemas) == 0 {
			err := fmt.Errorf("%w: %d", ErrUnknownWidth, totalBits)
			c.report(OpRepresentations, c.widthLabel(totalBits), err)
			return nil, err
		}
		v, err := parseNumber(in.Text, in.Notation, schemas[0].MaxValue())
		if err != nil {
			c.report(OpRepresentations, c.widthLabel(totalBits), err)
			return nil, err
		}
		value = v
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownNotation, in.Notation)
	}
	return c.AllRepresentations(value, totalBits)
}

// parseNumber reads a decimal or hexadecimal input bounded by limit. A leading
// '-' in front of otherwise valid digits is a negative value and reports
// OutOfRange rather than InvalidNumeral.
func parseNumber(text string, n Notation, limit uint64) (uint64, error) {
	base := pointcode.Decimal
	if n == NotationHexadecimal {
		base = pointcode.Hexadecimal
	}
	t := strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(t, "-"); ok {
		v, err := pointcode.ParseRadix(rest, base)
		if err != nil && !errors.Is(err, pointcode.ErrOutOfRange) {
			return 0, pointcode.InvalidNumeral(base)
		}
		if err == nil && v == 0 {
			return 0, nil
		}
		return 0, pointcode.OutOfRange(0, limit)
	}
	v, err := pointcode.ParseRadix(t, base)
	if err != nil {
		if errors.Is(err, pointcode.ErrOutOfRange) {
			return 0, pointcode.OutOfRange(0, limit)
		}
		return 0, err
	}
	if v > limit {
		return 0, pointcode.OutOfRange(0, limit)
	}
	return v, nil
}

func (c *Converter) report(op, label string, err error) {
	if c.observer != nil {
		c.observer.ObserveConversion(op, label, err)
	}
}

// label canonicalizes a schema id for observers; ids outside the registry
// collapse to "unknown" so arbitrary input cannot mint new label values.
func (c *Converter) label(id string) string {
	if s, ok := c.registry.Lookup(id); ok {
		return s.ID()
	}
	return "unknown"
}

func (c *Converter) widthLabel(bits int) string {
	if len(c.registry.AllForWidth(bits)) == 0 {
		return "unknown"
	}
	return strconv.Itoa(bits) + "-bit"
}

func (c *Converter) log() *zerolog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return &log.Logger
}
