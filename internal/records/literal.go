package records

import (
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// LTRecord is a numeric literal: *ShortLiteral or *LongLiteral.
type LTRecord struct {
	Link  LTIndex
	Value Literal
}

// Literal is the variant part of an LTRecord.
type Literal interface {
	literal()
}

// ShortLiteral fits in one word.
type ShortLiteral struct {
	Value uint16
}

// LongLiteral is a multi-word value placed in the code segment.
type LongLiteral struct {
	CodeIndex uint16
	Words     []uint16
}

func (*ShortLiteral) literal() {}
func (*LongLiteral) literal()  {}

// Uint32 joins a two-word literal, low half first.
func (l *LongLiteral) Uint32() (uint32, bool) {
	if len(l.Words) != 2 {
		return 0, false
	}
	return uint32(l.Words[1])<<16 | uint32(l.Words[0]), true
}

// DecodeLT reads a literal record.
func DecodeLT(b *word.Buffer) (LTRecord, error) {
	w0, err := b.Get16()
	if err != nil {
		return LTRecord{}, err
	}
	r := LTRecord{Link: LTIndex(word.Bits(w0, 0, 12))}
	switch kind := word.Bits(w0, 13, 15); kind {
	case 0:
		v, err := b.Get16()
		if err != nil {
			return LTRecord{}, err
		}
		r.Value = &ShortLiteral{Value: v}
	case 1:
		codeIndex, err := b.Get16()
		if err != nil {
			return LTRecord{}, err
		}
		n, err := b.Get16()
		if err != nil {
			return LTRecord{}, err
		}
		ws, err := b.Words(int(n))
		if err != nil {
			return LTRecord{}, err
		}
		r.Value = &LongLiteral{CodeIndex: codeIndex, Words: ws}
	default:
		return LTRecord{}, decodeerr.Formatf("unknown literal kind %d", kind)
	}
	return r, nil
}

// References lists the hash chain link of the literal.
func (r *LTRecord) References() []table.Ref {
	return []table.Ref{{Target: TableLT, Ordinal: uint16(r.Link), Field: "link"}}
}

// STRecord is a string literal: *MasterString holds the text,
// *SlaveString refers to a master.
type STRecord struct {
	Value StringLiteral
}

// StringLiteral is the variant part of an STRecord.
type StringLiteral interface {
	stringLiteral()
}

// MasterString owns its characters.
type MasterString struct {
	CodeIndex uint16
	Info      uint16
	Local     bool
	Spare     uint16
	Body      StringBody
}

// SlaveString shares the text of Link.
type SlaveString struct {
	Link STIndex
}

func (*MasterString) stringLiteral() {}
func (*SlaveString) stringLiteral()  {}

// DecodeST reads a string literal record.
func DecodeST(b *word.Buffer) (STRecord, error) {
	w0, err := b.Get16()
	if err != nil {
		return STRecord{}, err
	}
	if word.Bit(w0, 0) {
		return STRecord{Value: &SlaveString{Link: STIndex(word.Bits(w0, 1, 15))}}, nil
	}
	ws, err := b.Words(2)
	if err != nil {
		return STRecord{}, err
	}
	body, err := DecodeStringBody(b)
	if err != nil {
		return STRecord{}, err
	}
	return STRecord{Value: &MasterString{
		CodeIndex: word.Bits(w0, 1, 15),
		Info:      ws[0],
		Local:     word.Bit(ws[1], 0),
		Spare:     word.Bits(ws[1], 1, 15),
		Body:      body,
	}}, nil
}

// References lists the master of a slave string.
func (r *STRecord) References() []table.Ref {
	if s, ok := r.Value.(*SlaveString); ok {
		return []table.Ref{{Target: TableST, Ordinal: uint16(s.Link), Field: "link"}}
	}
	return nil
}
