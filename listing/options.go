package listing

import (
	"fmt"
	"strings"
)

// BitMode selects when record fields are annotated with their bit
// positions.
type BitMode uint8

const (
	// BitsAuto annotates the fields of machine dependent records.
	BitsAuto BitMode = iota
	// BitsAlways annotates every field.
	BitsAlways
	// BitsNever annotates no field.
	BitsNever
)

// String returns the flag spelling of the mode.
func (m BitMode) String() string {
	switch m {
	case BitsAuto:
		return "auto"
	case BitsAlways:
		return "always"
	case BitsNever:
		return "never"
	default:
		return fmt.Sprintf("BitMode(%d)", uint8(m))
	}
}

// ParseBitMode parses "auto", "always" or "never".
func ParseBitMode(s string) (BitMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return BitsAuto, nil
	case "always":
		return BitsAlways, nil
	case "never":
		return BitsNever, nil
	default:
		return BitsAuto, fmt.Errorf("listing: unknown bit mode %q (want auto, always or never)", s)
	}
}

// Set implements the flag value interface.
func (m *BitMode) Set(s string) error {
	v, err := ParseBitMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Type implements the flag value interface.
func (m *BitMode) Type() string { return "bits" }

// UnmarshalText decodes a bit mode from configuration files.
func (m *BitMode) UnmarshalText(b []byte) error { return m.Set(string(b)) }

// MarshalText encodes the bit mode by name.
func (m BitMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Options controls the listing layout.
type Options struct {
	// Indent is the number of spaces per nesting level.
	Indent int `toml:"indent"`
	// Bits selects when fields show their bit positions.
	Bits BitMode `toml:"bits"`
	// Versions prints the version stamps under the file name.
	Versions bool `toml:"versions"`
}

// DefaultOptions returns two space indentation, automatic bit positions
// and version stamps.
func DefaultOptions() Options {
	return Options{Indent: 2, Bits: BitsAuto, Versions: true}
}
