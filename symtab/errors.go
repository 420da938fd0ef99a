// Package symtab decodes a Mesa symbol segment into a bound graph of
// tables and answers navigation queries over it.
package symtab

import (
	"errors"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
)

// Sentinel errors for common conditions.
var (
	// ErrNotSymbols indicates the data is neither a BCD nor a symbol segment.
	ErrNotSymbols = errors.New("symtab: not a BCD or symbol segment")

	// ErrEntryNotFound indicates a name has no entry in the outer context.
	ErrEntryNotFound = errors.New("symtab: entry not found")
)

// Decode failure kinds, matched with errors.Is.
var (
	ErrFormat    = decodeerr.ErrFormat
	ErrReference = decodeerr.ErrReference
	ErrBounds    = decodeerr.ErrBounds
)

// DecodeError provides detailed information about decoding failures:
// the kind, the table and record, and the word offset.
type DecodeError = decodeerr.Error

func referencef(table string, ordinal uint16, format string, args ...any) error {
	e := decodeerr.Newf(decodeerr.Reference, format, args...)
	e.Table = table
	e.Ordinal = int(ordinal)
	return e
}
