package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidSchema    = errors.New("schema: invalid schema")
	ErrWidthMismatch    = errors.New("schema: field widths do not sum to table width")
	ErrUnsupportedWidth = errors.New("schema: unsupported table width")
	ErrDuplicateSchema  = errors.New("schema: id already registered")
	ErrSealed           = errors.New("schema: registry is sealed")
)

// Table widths a schema may be registered under.
const (
	Width14 = 14
	Width16 = 16
	Width24 = 24
)

// MaxTotalBits bounds a schema so every value fits a signed 64-bit integer.
const MaxTotalBits = 63

// Schema partitions a fixed-width unsigned integer into ordered fields,
// most significant field first. Schemas are values with unexported state;
// accessors hand out copies so a registered schema cannot be mutated.
type Schema struct {
	id          string
	name        string
	description string
	aliases     []string
	widths      []int
	total       int
}

// Info is the exported, serializable view of a Schema.
type Info struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Widths      []int    `json:"widths" yaml:"widths"`
	TotalBits   int      `json:"total_bits" yaml:"total_bits"`
}

// New validates widths and returns a schema whose total width is their sum.
func New(id, name string, widths ...int) (Schema, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Schema{}, fmt.Errorf("%w: id is required", ErrInvalidSchema)
	}
	if len(widths) == 0 {
		return Schema{}, fmt.Errorf("%w: %q has no fields", ErrInvalidSchema, id)
	}
	total := 0
	for i, w := range widths {
		if w <= 0 {
			return Schema{}, fmt.Errorf("%w: %q field %d has width %d", ErrInvalidSchema, id, i, w)
		}
		total += w
	}
	if total > MaxTotalBits {
		return Schema{}, fmt.Errorf("%w: %q spans %d bits (max %d)", ErrInvalidSchema, id, total, MaxTotalBits)
	}
	if strings.TrimSpace(name) == "" {
		name = id
	}
	return Schema{
		id:     id,
		name:   strings.TrimSpace(name),
		widths: append([]int(nil), widths...),
		total:  total,
	}, nil
}

// MustNew is New for static tables; it panics on an invalid layout.
func MustNew(id, name string, widths ...int) Schema {
	s, err := New(id, name, widths...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithDescription returns a copy of s carrying a free-form description.
func (s Schema) WithDescription(desc string) Schema {
	s.description = strings.TrimSpace(desc)
	return s
}

// WithAliases returns a copy of s that the registry also resolves by each alias.
func (s Schema) WithAliases(aliases ...string) Schema {
	out := make([]string, 0, len(s.aliases)+len(aliases))
	out = append(out, s.aliases...)
	for _, a := range aliases {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	s.aliases = out
	return s
}

func (s Schema) ID() string          { return s.id }
func (s Schema) Name() string        { return s.name }
func (s Schema) Description() string { return s.description }
func (s Schema) TotalBits() int      { return s.total }
func (s Schema) FieldCount() int     { return len(s.widths) }
func (s Schema) IsZero() bool        { return s.id == "" }
func (s Schema) String() string      { return s.id }

// Aliases returns a copy of the alternate ids.
func (s Schema) Aliases() []string {
	return append([]string(nil), s.aliases...)
}

// Widths returns a copy of the field widths, most significant first.
func (s Schema) Widths() []int {
	return append([]int(nil), s.widths...)
}

// Width returns the bit width of field i.
func (s Schema) Width(i int) int {
	return s.widths[i]
}

// FieldMax is the largest value field i can hold.
func (s Schema) FieldMax(i int) uint64 {
	return 1<<uint(s.widths[i]) - 1
}

// MaxValue is the largest value the whole schema can hold.
func (s Schema) MaxValue() uint64 {
	return 1<<uint(s.total) - 1
}

// Layout renders the widths the way schema ids are written, e.g. "4-3-4-3".
func (s Schema) Layout() string {
	parts := make([]string, len(s.widths))
	for i, w := range s.widths {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, "-")
}

// Info returns the serializable view of s.
func (s Schema) Info() Info {
	return Info{
		ID:          s.id,
		Name:        s.name,
		Description: s.description,
		Aliases:     s.Aliases(),
		Widths:      s.Widths(),
		TotalBits:   s.total,
	}
}
