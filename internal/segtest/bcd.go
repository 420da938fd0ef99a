package segtest

import "github.com/yokwe/mesa-emulator-unix-sub002/internal/word"

// BCDVersionID is the BCD version word.
const BCDVersionID = 6103

// BCDHeaderWords is the size of the BCD header.
const BCDHeaderWords = 48

// PageWords is the size of a file page.
const PageWords = 256

// BCDTableOrder is the order of (offset, limit) pairs in the BCD header.
var BCDTableOrder = []string{
	"ss", "ct", "mt", "imp", "exp", "ev", "sg", "ft",
	"sp", "nt", "typ", "tm", "fp", "lf", "at", "ap",
}

// File table sentinels.
const (
	FTNull = 0xFFFF
	FTSelf = 0xFFFE
)

// Segment classes.
const (
	ClassCode    = 0
	ClassSymbols = 1
	ClassAcMap   = 2
	ClassOther   = 3
)

// BCD is a BCD file under construction. Symbols, when set, is placed at
// the 1-origin SymbolsPage.
type BCD struct {
	VersionIdent uint16
	Version      [3]uint16
	NModules     uint16
	Definitions  bool
	Tables       map[string]*Table
	Symbols      []uint16
	SymbolsPage  uint16
}

// NewBCD returns a BCD with empty tables.
func NewBCD() *BCD {
	b := &BCD{VersionIdent: BCDVersionID, Tables: make(map[string]*Table)}
	for _, name := range BCDTableOrder {
		b.Tables[name] = &Table{}
	}
	return b
}

// T returns the named table.
func (b *BCD) T(name string) *Table { return b.Tables[name] }

// Names fills ss with length-prefixed names and returns each name's
// byte offset.
func (b *BCD) Names(names ...string) map[string]uint16 {
	var text []byte
	out := make(map[string]uint16, len(names))
	for _, n := range names {
		out[n] = uint16(len(text))
		text = append(text, byte(len(n)))
		text = append(text, n...)
	}
	b.T("ss").Words = StringBody(string(text), len(text))
	return out
}

// FT encodes a file table record.
func FT(name uint16, stamp [3]uint16) []uint16 {
	return append([]uint16{name}, stamp[:]...)
}

// SG encodes a segment table record.
func SG(file, base uint16, pages uint8, class uint16) []uint16 {
	return []uint16{file, base, word.Pack(
		word.Field{First: 0, Last: 7, Value: uint16(pages)},
		word.Field{First: 14, Last: 15, Value: class},
	)}
}

// Words lays out the header, the tables and the symbol segment.
func (b *BCD) Words() []uint16 {
	out := []uint16{b.VersionIdent}
	out = append(out, b.Version[:]...)
	out = append(out, 0, 0, 0) // creator
	out = append(out, FTSelf, FTNull, 0, b.NModules, 0, 0,
		word.Pack(word.Flag(8, b.Definitions)), 0, 0)
	offset := BCDHeaderWords
	var body []uint16
	for _, name := range BCDTableOrder {
		ws := b.Tables[name].Words
		out = append(out, uint16(offset), uint16(len(ws)))
		body = append(body, ws...)
		offset += len(ws)
	}
	out = append(out, body...)
	if b.Symbols != nil {
		at := int(b.SymbolsPage-1) * PageWords
		for len(out) < at {
			out = append(out, 0)
		}
		out = append(out[:at], b.Symbols...)
	}
	return out
}

// Bytes returns the BCD as big-endian bytes.
func (b *BCD) Bytes() []byte { return Bytes(b.Words()...) }
