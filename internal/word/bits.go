package word

// Bits extracts bits first..last of w, where bit 0 is the most
// significant bit of the word.
func Bits(w uint16, first, last int) uint16 {
	width := last - first + 1
	shift := 15 - last
	return (w >> shift) & (1<<width - 1)
}

// Bit reports whether bit n of w is set, bit 0 being the most significant.
func Bit(w uint16, n int) bool {
	return w&(0x8000>>n) != 0
}

// Field describes a bit range inside a word for Pack.
type Field struct {
	First, Last int
	Value       uint16
}

// Pack assembles a word from bit ranges. Values wider than their range
// are truncated.
func Pack(fields ...Field) uint16 {
	var w uint16
	for _, f := range fields {
		width := f.Last - f.First + 1
		mask := uint16(1<<width - 1)
		w |= (f.Value & mask) << (15 - f.Last)
	}
	return w
}

// Flag is a one-bit Field.
func Flag(n int, set bool) Field {
	f := Field{First: n, Last: n}
	if set {
		f.Value = 1
	}
	return f
}

// Append shifts acc left by the width of bits first..last of w and puts
// those bits in the vacated low end. Decoders use it to gather the unused
// ranges of a record, in word order, into one spare value.
func Append(acc, w uint16, first, last int) uint16 {
	return acc<<(last-first+1) | Bits(w, first, last)
}
