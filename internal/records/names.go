package records

import (
	"fmt"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// HTRecord is one interned identifier. Its text is the pool slice from
// the previous record's SSIndex to its own.
type HTRecord struct {
	AnyInternal bool
	AnyPublic   bool
	Link        HTIndex
	SSIndex     uint16
	Spare       uint16
}

// DecodeHT reads a hash table record.
func DecodeHT(b *word.Buffer) (HTRecord, error) {
	w0, err := b.Get16()
	if err != nil {
		return HTRecord{}, err
	}
	ss, err := b.Get16()
	if err != nil {
		return HTRecord{}, err
	}
	return HTRecord{
		AnyInternal: word.Bit(w0, 0),
		AnyPublic:   word.Bit(w0, 1),
		Spare:       word.Bits(w0, 2, 2),
		Link:        HTIndex(word.Bits(w0, 3, 15)),
		SSIndex:     ss,
	}, nil
}

// References lists the hash chain link of the record.
func (r *HTRecord) References() []table.Ref {
	return []table.Ref{htRef("link", r.Link)}
}

// HVEntry is one bucket head of the hash vector.
type HVEntry struct {
	Head HTIndex
}

// DecodeHV reads a hash vector slot.
func DecodeHV(b *word.Buffer) (HVEntry, error) {
	w, err := b.Get16()
	if err != nil {
		return HVEntry{}, err
	}
	return HVEntry{Head: HTIndex(w)}, nil
}

// References lists the hash table entry the bucket starts at.
func (e *HVEntry) References() []table.Ref {
	return []table.Ref{htRef("head", e.Head)}
}

// StringBody is a length-prefixed packed string with room for
// MaxLength characters, of which Length are live.
type StringBody struct {
	Length    uint16
	MaxLength uint16
	Text      []byte
}

// DecodeStringBody reads a string body, consuming all MaxLength bytes.
func DecodeStringBody(b *word.Buffer) (StringBody, error) {
	length, err := b.Get16()
	if err != nil {
		return StringBody{}, err
	}
	maxLength, err := b.Get16()
	if err != nil {
		return StringBody{}, err
	}
	if length > maxLength {
		return StringBody{}, decodeerr.Formatf("string length %d exceeds maxLength %d", length, maxLength)
	}
	text, err := b.Bytes(int(maxLength))
	if err != nil {
		return StringBody{}, err
	}
	return StringBody{Length: length, MaxLength: maxLength, Text: text}, nil
}

// String returns the live characters.
func (s StringBody) String() string {
	return string(s.Text[:s.Length])
}

// StringPool is the ss block: one string body holding every identifier.
type StringPool struct {
	StringBody
}

// DecodeStringPool reads the ss block. The body must fill the block.
func DecodeStringPool(b *word.Buffer) (*StringPool, error) {
	body, err := DecodeStringBody(b)
	if err != nil {
		return nil, decodeerr.InTable(err, decodeerr.Format, TableSS, -1, b.Pos())
	}
	if b.Remaining() != 0 {
		return nil, &decodeerr.Error{Kind: decodeerr.Format, Table: TableSS, Ordinal: -1, Offset: b.Pos(),
			Detail: fmt.Sprintf("%d words after the string body", b.Remaining())}
	}
	return &StringPool{StringBody: body}, nil
}

// Slice returns the live text in [from, to).
func (p *StringPool) Slice(from, to uint16) (string, error) {
	if from > to || to > p.Length {
		return "", &decodeerr.Error{Kind: decodeerr.Bounds, Table: TableSS, Ordinal: -1, Offset: -1,
			Detail: fmt.Sprintf("slice [%d,%d) outside pool of length %d", from, to, p.Length)}
	}
	return string(p.Text[from:to]), nil
}
