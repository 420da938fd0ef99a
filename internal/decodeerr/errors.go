// Package decodeerr classifies failures raised while decoding a symbol
// segment: malformed data, dangling references, and reads past the end.
package decodeerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a decode failure.
type Kind uint8

const (
	// Format means the data violates the layout (bad version, unknown tag,
	// table boundary mismatch).
	Format Kind = iota + 1
	// Reference means an ordinal names no record in its target table.
	Reference
	// Bounds means a read ran past the end of the buffer or block.
	Bounds
)

// Sentinels matched with errors.Is against any *Error of the same kind.
var (
	ErrFormat    = errors.New("format error")
	ErrReference = errors.New("reference error")
	ErrBounds    = errors.New("bounds error")
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Format:
		return "format"
	case Reference:
		return "reference"
	case Bounds:
		return "bounds"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case Format:
		return ErrFormat
	case Reference:
		return ErrReference
	case Bounds:
		return ErrBounds
	default:
		return nil
	}
}

// Error describes where decoding failed.
type Error struct {
	Kind    Kind
	Table   string // table name, empty for the header
	Ordinal int    // record ordinal, -1 when unknown
	Offset  int    // absolute word offset, -1 when unknown
	Detail  string
	Cause   error
}

// Error formats the kind, the table position and the detail.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.Table != "" {
		fmt.Fprintf(&b, " in %s", e.Table)
	}
	if e.Ordinal >= 0 {
		fmt.Fprintf(&b, " record %d", e.Ordinal)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at word 0x%x", e.Offset)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Newf builds an error with no table context.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Ordinal: -1, Offset: -1, Detail: fmt.Sprintf(format, args...)}
}

// Formatf is shorthand for a format error.
func Formatf(format string, args ...any) *Error {
	return Newf(Format, format, args...)
}

// InTable attaches table and position context to err. An *Error that
// already names a table is returned unchanged; any other error becomes
// the cause of a new error of kind fallback.
func InTable(err error, fallback Kind, table string, ordinal, offset int) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		if de.Table != "" {
			return err
		}
		c := *de
		c.Table = table
		if c.Ordinal < 0 {
			c.Ordinal = ordinal
		}
		if c.Offset < 0 {
			c.Offset = offset
		}
		return &c
	}
	return &Error{Kind: fallback, Table: table, Ordinal: ordinal, Offset: offset, Cause: err}
}

// KindOf reports the kind of err, or 0 when err is not a decode error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
