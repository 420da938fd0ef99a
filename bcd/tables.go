package bcd

import (
	"fmt"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// FTIndex is a word offset in the file table.
type FTIndex uint16

// Reserved file indexes.
const (
	FTNull FTIndex = 0xFFFF
	FTSelf FTIndex = 0xFFFE
)

// String formats the index, naming the reserved FTSelf and FTNull values.
func (i FTIndex) String() string {
	switch i {
	case FTNull:
		return "null"
	case FTSelf:
		return "self"
	default:
		return fmt.Sprintf("ft[%d]", uint16(i))
	}
}

// NameRecord is a byte offset into the name strings. The byte there is
// the name's length, followed by its characters.
type NameRecord uint16

// FTRecord names a file the BCD depends on.
type FTRecord struct {
	Name    NameRecord
	Version records.Stamp
}

// DecodeFT reads a file table record.
func DecodeFT(b *word.Buffer) (FTRecord, error) {
	name, err := b.Get16()
	if err != nil {
		return FTRecord{}, err
	}
	v, err := records.DecodeStamp(b)
	if err != nil {
		return FTRecord{}, err
	}
	return FTRecord{Name: NameRecord(name), Version: v}, nil
}

// SegClass is the kind of a segment.
type SegClass uint8

const (
	ClassCode SegClass = iota
	ClassSymbols
	ClassAcMap
	ClassOther
)

// String returns the name of the segment class.
func (c SegClass) String() string {
	return [...]string{"code", "symbols", "acMap", "other"}[c&3]
}

// SGRecord locates a segment in a file, in pages.
type SGRecord struct {
	File       FTIndex
	Base       uint16
	Pages      uint8
	ExtraPages uint8
	Class      SegClass
}

// DecodeSG reads a segment table record.
func DecodeSG(b *word.Buffer) (SGRecord, error) {
	ws, err := b.Words(3)
	if err != nil {
		return SGRecord{}, err
	}
	return SGRecord{
		File:       FTIndex(ws[0]),
		Base:       ws[1],
		Pages:      uint8(word.Bits(ws[2], 0, 7)),
		ExtraPages: uint8(word.Bits(ws[2], 8, 13)),
		Class:      SegClass(word.Bits(ws[2], 14, 15)),
	}, nil
}

// References lists the file table index held by the segment.
func (r *SGRecord) References() []table.Ref {
	return []table.Ref{{Target: "ft", Ordinal: uint16(r.File), Field: "file"}}
}

func isReservedFile(o uint16) bool {
	return FTIndex(o) == FTNull || FTIndex(o) == FTSelf
}

// nameAt returns the length-prefixed name at byte offset n.
func nameAt(ss *records.StringBody, n NameRecord) (string, error) {
	i := int(n)
	if i >= int(ss.Length) {
		return "", &decodeerr.Error{Kind: decodeerr.Bounds, Table: "ss", Ordinal: i, Offset: -1,
			Detail: fmt.Sprintf("name offset beyond %d bytes", ss.Length)}
	}
	end := i + 1 + int(ss.Text[i])
	if end > int(ss.Length) {
		return "", &decodeerr.Error{Kind: decodeerr.Bounds, Table: "ss", Ordinal: i, Offset: -1,
			Detail: fmt.Sprintf("name of %d bytes runs past the strings", ss.Text[i])}
	}
	return string(ss.Text[i+1 : end]), nil
}
