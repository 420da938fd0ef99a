// Package word provides a bounds checked cursor over big-endian 16-bit
// words, the unit every Mesa table is laid out in.
package word

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/crypto/cryptobyte"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
)

// Errors returned by Buffer.
var (
	ErrUnexpectedEnd = errors.New("word: unexpected end of data")
	ErrNegative      = errors.New("word: negative offset or size")
)

// Size is the number of bytes in a word.
const Size = 2

// Buffer reads words from a byte slice. Positions are absolute word
// offsets from the start of the root buffer, so a sub-range created with
// Range reports the same positions its parent would.
type Buffer struct {
	data  []byte
	start int
	end   int
	pos   int
}

// New creates a Buffer over data. A trailing odd byte is not addressable.
func New(data []byte) *Buffer {
	n := len(data) / Size
	return &Buffer{data: data[:n*Size], end: n}
}

// Pos returns the current absolute word position.
func (b *Buffer) Pos() int { return b.pos }

// Start returns the first word of this buffer's range.
func (b *Buffer) Start() int { return b.start }

// End returns one past the last word of this buffer's range.
func (b *Buffer) End() int { return b.end }

// Len returns the number of words in the range.
func (b *Buffer) Len() int { return b.end - b.start }

// Remaining returns the number of words left before End.
func (b *Buffer) Remaining() int {
	if b.pos >= b.end {
		return 0
	}
	return b.end - b.pos
}

// Relative returns the current position as an offset from Start, the
// form table ordinals take.
func (b *Buffer) Relative() (uint16, error) {
	v, err := safecast.Conv[uint16](b.pos - b.start)
	if err != nil {
		return 0, decodeerr.Newf(decodeerr.Bounds, "position %d does not fit an ordinal", b.pos-b.start)
	}
	return v, nil
}

// SetPos moves the cursor to an absolute word position within the range.
func (b *Buffer) SetPos(pos int) error {
	if pos < b.start || pos > b.end {
		return b.boundsError(pos, 0)
	}
	b.pos = pos
	return nil
}

// Skip advances the cursor by n words.
func (b *Buffer) Skip(n int) error {
	if n < 0 {
		return ErrNegative
	}
	if b.pos+n > b.end {
		return b.boundsError(b.pos, n)
	}
	b.pos += n
	return nil
}

func (b *Buffer) rest() cryptobyte.String {
	return cryptobyte.String(b.data[b.pos*Size : b.end*Size])
}

// Get16 reads one word.
func (b *Buffer) Get16() (uint16, error) {
	s := b.rest()
	var v uint16
	if !s.ReadUint16(&v) {
		return 0, b.boundsError(b.pos, 1)
	}
	b.pos++
	return v, nil
}

// Get32 reads a long: the low half-word first, then the high half-word.
func (b *Buffer) Get32() (uint32, error) {
	s := b.rest()
	var lo, hi uint16
	if !s.ReadUint16(&lo) || !s.ReadUint16(&hi) {
		return 0, b.boundsError(b.pos, 2)
	}
	b.pos += 2
	return uint32(hi)<<16 | uint32(lo), nil
}

// GetInt16 reads one word as a two's complement INTEGER.
func (b *Buffer) GetInt16() (int16, error) {
	v, err := b.Get16()
	return int16(v), err
}

// Words reads n words.
func (b *Buffer) Words(n int) ([]uint16, error) {
	if n < 0 {
		return nil, ErrNegative
	}
	if b.pos+n > b.end {
		return nil, b.boundsError(b.pos, n)
	}
	s := b.rest()
	out := make([]uint16, n)
	for i := range out {
		s.ReadUint16(&out[i])
	}
	b.pos += n
	return out, nil
}

// Bytes reads n packed characters, two per word with the first in the
// high byte, consuming whole words.
func (b *Buffer) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegative
	}
	words := (n + 1) / Size
	if b.pos+words > b.end {
		return nil, b.boundsError(b.pos, words)
	}
	s := b.rest()
	var raw []byte
	s.ReadBytes(&raw, words*Size)
	b.pos += words
	out := make([]byte, n)
	copy(out, raw)
	return out, nil
}

// ByteAt returns the byte at a byte offset from Start without moving the
// cursor.
func (b *Buffer) ByteAt(off int) (byte, error) {
	i := b.start*Size + off
	if off < 0 || i >= b.end*Size {
		return 0, b.boundsError(b.start+off/Size, 1)
	}
	return b.data[i], nil
}

// Range returns an independent cursor over size words starting at the
// absolute word offset, positioned at its start.
func (b *Buffer) Range(offset, size int) (*Buffer, error) {
	if offset < 0 || size < 0 {
		return nil, ErrNegative
	}
	if offset < b.start || offset+size > b.end {
		return nil, b.boundsError(offset, size)
	}
	return &Buffer{data: b.data, start: offset, end: offset + size, pos: offset}, nil
}

func (b *Buffer) boundsError(pos, n int) error {
	return &decodeerr.Error{
		Kind:    decodeerr.Bounds,
		Ordinal: -1,
		Offset:  pos,
		Detail:  fmt.Sprintf("need %d words, range is [0x%x, 0x%x)", n, b.start, b.end),
		Cause:   ErrUnexpectedEnd,
	}
}
