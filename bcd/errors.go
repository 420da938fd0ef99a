package bcd

import "errors"

// Sentinel errors for common conditions.
var (
	// ErrNotBCD indicates the data does not start with a BCD header.
	ErrNotBCD = errors.New("bcd: not a BCD file")

	// ErrEmptyFile indicates a zero-length file, which cannot be mapped.
	ErrEmptyFile = errors.New("bcd: empty file")

	// ErrNoSymbols indicates the BCD has no symbol segment of its own.
	ErrNoSymbols = errors.New("bcd: no symbol segment")
)
