package pointcode

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNumeral     = errors.New("pointcode: invalid numeral")
	ErrOutOfRange         = errors.New("pointcode: value out of range")
	ErrMalformedFieldText = errors.New("pointcode: malformed field text")
	ErrFieldOverflow      = errors.New("pointcode: field overflow")
)

// Kind tags a conversion failure.
type Kind uint8

const (
	KindInvalidNumeral Kind = iota + 1
	KindOutOfRange
	KindMalformedFieldText
	KindFieldOverflow
)

func (k Kind) String() string {
	switch k {
	case KindInvalidNumeral:
		return "invalid_numeral"
	case KindOutOfRange:
		return "out_of_range"
	case KindMalformedFieldText:
		return "malformed_field_text"
	case KindFieldOverflow:
		return "field_overflow"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidNumeral:
		return ErrInvalidNumeral
	case KindOutOfRange:
		return ErrOutOfRange
	case KindMalformedFieldText:
		return ErrMalformedFieldText
	case KindFieldOverflow:
		return ErrFieldOverflow
	default:
		return nil
	}
}

// Error is a conversion failure caused by malformed input. Only the members
// relevant to Kind are populated.
type Error struct {
	Kind Kind

	// InvalidNumeral
	Base Base

	// OutOfRange
	Min uint64
	Max uint64

	// MalformedFieldText
	Expected int
	Got      int
	// Schema names the id that could not be resolved; Expected is 0 then.
	Schema string

	// FieldOverflow
	Field    int
	FieldMax uint64
}

// InvalidNumeral reports input that is empty or holds a digit outside base.
func InvalidNumeral(base Base) *Error {
	return &Error{Kind: KindInvalidNumeral, Base: base}
}

// OutOfRange reports an integer outside [min, max].
func OutOfRange(min, max uint64) *Error {
	return &Error{Kind: KindOutOfRange, Min: min, Max: max}
}

// MalformedFieldText reports a formatted input with the wrong number of parts.
func MalformedFieldText(expected, got int) *Error {
	return &Error{Kind: KindMalformedFieldText, Expected: expected, Got: got}
}

// UnknownSchema reports a schema id that is not in the registry. It is a
// MalformedFieldText failure: the text cannot be interpreted without a layout.
func UnknownSchema(id string) *Error {
	return &Error{Kind: KindMalformedFieldText, Schema: id}
}

// FieldOverflow reports field index whose value exceeds max.
func FieldOverflow(index int, max uint64) *Error {
	return &Error{Kind: KindFieldOverflow, Field: index, FieldMax: max}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case KindInvalidNumeral:
		return fmt.Sprintf("pointcode: invalid numeral for base %d", e.Base)
	case KindOutOfRange:
		return fmt.Sprintf("pointcode: value out of range [%d, %d]", e.Min, e.Max)
	case KindMalformedFieldText:
		if e.Expected == 0 {
			return fmt.Sprintf("pointcode: unknown schema %q", e.Schema)
		}
		return fmt.Sprintf("pointcode: malformed field text: expected %d fields, got %d", e.Expected, e.Got)
	case KindFieldOverflow:
		return fmt.Sprintf("pointcode: field %d exceeds range [0, %d]", e.Field, e.FieldMax)
	default:
		return "pointcode: conversion failed"
	}
}

// Is matches the package sentinel for e.Kind, so callers can write
// errors.Is(err, pointcode.ErrOutOfRange).
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// UserMessage renders the short text shown next to an input field.
func (e *Error) UserMessage() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindInvalidNumeral:
		if name := e.Base.Name(); name != "" {
			return fmt.Sprintf("Invalid %s number", name)
		}
		return fmt.Sprintf("Invalid base-%d number", e.Base)
	case KindOutOfRange:
		return fmt.Sprintf("Invalid (Range: %d-%d)", e.Min, e.Max)
	case KindMalformedFieldText:
		if e.Expected == 0 {
			return "Invalid format"
		}
		return "Invalid formatted input"
	case KindFieldOverflow:
		return fmt.Sprintf("Part %d exceeds range (0-%d)", e.Field+1, e.FieldMax)
	default:
		return "Invalid input"
	}
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
