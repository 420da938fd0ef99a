package word

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
)

func TestGet16(t *testing.T) {
	b := New([]byte{0x12, 0x34, 0xab, 0xcd, 0xff})
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (odd byte dropped)", b.Len())
	}
	for _, want := range []uint16{0x1234, 0xabcd} {
		got, err := b.Get16()
		if err != nil {
			t.Fatalf("Get16: %v", err)
		}
		if got != want {
			t.Errorf("Get16 = 0x%04x, want 0x%04x", got, want)
		}
	}
	_, err := b.Get16()
	if !errors.Is(err, decodeerr.ErrBounds) || !errors.Is(err, ErrUnexpectedEnd) {
		t.Errorf("Get16 past end = %v, want bounds error", err)
	}
}

func TestGet32HalfWordOrder(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{"zero", []byte{0, 0, 0, 0}, 0},
		{"low only", []byte{0xff, 0xff, 0, 0}, 0x0000ffff},
		{"high only", []byte{0, 0, 0x00, 0x01}, 0x00010000},
		{"carry boundary", []byte{0x00, 0x00, 0x00, 0x01}, 65536},
		{"max", []byte{0xff, 0xff, 0xff, 0xff}, 0xffffffff},
		{"mixed", []byte{0x56, 0x78, 0x12, 0x34}, 0x12345678},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.data).Get32()
			if err != nil {
				t.Fatalf("Get32: %v", err)
			}
			if got != tt.want {
				t.Errorf("Get32 = 0x%08x, want 0x%08x", got, tt.want)
			}
		})
	}

	if _, err := New([]byte{1, 2}).Get32(); !errors.Is(err, decodeerr.ErrBounds) {
		t.Errorf("Get32 on one word = %v, want bounds error", err)
	}
}

func TestRangeKeepsAbsolutePositions(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	root := New(data)
	sub, err := root.Range(3, 4)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if sub.Pos() != 3 || sub.Start() != 3 || sub.End() != 7 {
		t.Fatalf("Range cursor = pos %d [%d,%d)", sub.Pos(), sub.Start(), sub.End())
	}
	w, _ := sub.Get16()
	if w != 0x0607 {
		t.Errorf("first word = 0x%04x, want 0x0607", w)
	}
	if rel, _ := sub.Relative(); rel != 1 {
		t.Errorf("Relative() = %d, want 1", rel)
	}
	if root.Pos() != 0 {
		t.Errorf("Range moved the parent cursor to %d", root.Pos())
	}
	if err := sub.Skip(4); !errors.Is(err, decodeerr.ErrBounds) {
		t.Errorf("Skip past range = %v", err)
	}
	if _, err := root.Range(8, 3); !errors.Is(err, decodeerr.ErrBounds) {
		t.Errorf("Range past end = %v", err)
	}
	if _, err := sub.Range(1, 1); err == nil {
		t.Errorf("Range before parent start succeeded")
	}
}

func TestBytesAndWords(t *testing.T) {
	b := New([]byte{'a', 'b', 'c', 0, 0x00, 0x05})
	got, err := b.Bytes(3)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("Bytes = %q", got)
	}
	if b.Pos() != 2 {
		t.Errorf("Bytes consumed %d words, want 2", b.Pos())
	}
	ws, err := b.Words(1)
	if err != nil || !cmp.Equal(ws, []uint16{5}) {
		t.Errorf("Words = %v, %v", ws, err)
	}
	if c, _ := b.ByteAt(1); c != 'b' {
		t.Errorf("ByteAt(1) = %q", c)
	}
}

func TestBits(t *testing.T) {
	w := uint16(0b1010_0000_0000_0111)
	tests := []struct {
		first, last int
		want        uint16
	}{
		{0, 0, 1},
		{1, 1, 0},
		{0, 2, 0b101},
		{13, 15, 0b111},
		{0, 15, w},
		{3, 12, 0},
	}
	for _, tt := range tests {
		if got := Bits(w, tt.first, tt.last); got != tt.want {
			t.Errorf("Bits(%d..%d) = %b, want %b", tt.first, tt.last, got, tt.want)
		}
	}
	if !Bit(w, 2) || Bit(w, 3) {
		t.Errorf("Bit mismatch")
	}
	packed := Pack(Field{0, 0, 1}, Field{2, 2, 1}, Field{13, 15, 7})
	if packed != w {
		t.Errorf("Pack = %016b, want %016b", packed, w)
	}
	if Pack(Flag(4, true), Flag(5, false)) != 0x0800 {
		t.Errorf("Flag packing wrong")
	}
}

func TestAppend(t *testing.T) {
	var acc uint16
	acc = Append(acc, 0b1100_0000_0000_0011, 0, 1)
	acc = Append(acc, 0b0000_0000_0000_0101, 13, 15)
	if acc != 0b11_101 {
		t.Errorf("Append = %b, want %b", acc, 0b11_101)
	}
}
