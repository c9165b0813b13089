package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Registry stores schemas by id and by table width. It is filled once and
// read-only afterwards; concurrent Lookup/AllForWidth calls need no locking
// once registration is done.
type Registry struct {
	byID    map[string]Schema
	order   []Schema
	byWidth map[int][]Schema
	sealed  bool
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Schema),
		byWidth: make(map[int][]Schema),
	}
}

// SupportedWidth reports whether bits is one of the table widths.
func SupportedWidth(bits int) bool {
	switch bits {
	case Width14, Width16, Width24:
		return true
	default:
		return false
	}
}

// Register adds s to the table for totalBits. It fails when the field widths
// do not add up to totalBits, when totalBits is not a supported table width,
// or when the id or one of its aliases is already taken.
func (r *Registry) Register(s Schema, totalBits int) error {
	if r.sealed {
		return fmt.Errorf("%w: %q", ErrSealed, s.id)
	}
	if s.IsZero() {
		return fmt.Errorf("%w: zero schema", ErrInvalidSchema)
	}
	if !SupportedWidth(totalBits) {
		return fmt.Errorf("%w: %d (schema %q)", ErrUnsupportedWidth, totalBits, s.id)
	}
	if s.total != totalBits {
		return fmt.Errorf("%w: %q sums to %d, table is %d", ErrWidthMismatch, s.id, s.total, totalBits)
	}
	keys := append([]string{s.id}, s.aliases...)
	for _, k := range keys {
		if _, ok := r.byID[k]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateSchema, k)
		}
	}
	for _, k := range keys {
		r.byID[k] = s
	}
	r.order = append(r.order, s)
	r.byWidth[totalBits] = append(r.byWidth[totalBits], s)
	return nil
}

// Seal rejects any further Register call.
func (r *Registry) Seal() {
	r.sealed = true
}

// Lookup resolves a schema by id or alias.
func (r *Registry) Lookup(id string) (Schema, bool) {
	s, ok := r.byID[strings.TrimSpace(id)]
	return s, ok
}

// AllForWidth returns the schemas of one table width in registration order.
func (r *Registry) AllForWidth(totalBits int) []Schema {
	list := r.byWidth[totalBits]
	return append([]Schema(nil), list...)
}

// All returns every schema in registration order.
func (r *Registry) All() []Schema {
	return append([]Schema(nil), r.order...)
}

// Widths returns the populated table widths in ascending order.
func (r *Registry) Widths() []int {
	out := make([]int, 0, len(r.byWidth))
	for w := range r.byWidth {
		out = append(out, w)
	}
	sort.Ints(out)
	return out
}

// Len is the number of registered schemas (aliases not counted).
func (r *Registry) Len() int {
	return len(r.order)
}
