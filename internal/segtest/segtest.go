// Package segtest assembles symbol segments word by word for tests.
package segtest

import (
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// VersionID is the symbol segment version word.
const VersionID = 8140

// HeaderWords is the size of the segment header.
const HeaderWords = 47

// BlockOrder is the order of block descriptors in the header.
var BlockOrder = []string{
	"hv", "ht", "ss", "outerPack", "innerPack", "constants",
	"se", "ctx", "md", "body", "ext", "tree", "lit", "sLit",
	"epMap", "spare",
}

// Table accumulates the words of one table and hands out ordinals.
type Table struct {
	Words []uint16
}

// Add appends a record and returns its word offset.
func (t *Table) Add(ws ...uint16) uint16 {
	off := uint16(len(t.Words))
	t.Words = append(t.Words, ws...)
	return off
}

// Next returns the offset the next record will get.
func (t *Table) Next() uint16 { return uint16(len(t.Words)) }

// Segment is a symbol segment under construction.
type Segment struct {
	VersionIdent uint16
	Stamps       [3][3]uint16
	Definitions  bool
	DirectoryCtx uint16
	ImportCtx    uint16
	OuterCtx     uint16
	Tables       map[string]*Table
}

// New returns a segment with empty tables and the current version.
func New() *Segment {
	s := &Segment{VersionIdent: VersionID, Tables: make(map[string]*Table)}
	for _, name := range BlockOrder {
		s.Tables[name] = &Table{}
	}
	return s
}

// T returns the named table.
func (s *Segment) T(name string) *Table { return s.Tables[name] }

// Words lays out the header followed by every table in header order.
func (s *Segment) Words() []uint16 {
	out := []uint16{s.VersionIdent}
	for _, st := range s.Stamps {
		out = append(out, st[:]...)
	}
	out = append(out,
		word.Pack(word.Flag(0, s.Definitions), word.Field{First: 5, Last: 15, Value: s.DirectoryCtx}),
		word.Pack(word.Field{First: 5, Last: 15, Value: s.ImportCtx}),
		word.Pack(word.Field{First: 5, Last: 15, Value: s.OuterCtx}),
	)
	offset := HeaderWords
	var body []uint16
	for _, name := range BlockOrder {
		ws := s.Tables[name].Words
		out = append(out, uint16(offset), uint16(len(ws)))
		body = append(body, ws...)
		offset += len(ws)
	}
	out = append(out, 0, 0) // fine grain table
	return append(out, body...)
}

// Bytes returns the segment as big-endian bytes.
func (s *Segment) Bytes() []byte {
	return Bytes(s.Words()...)
}

// Bytes encodes words big-endian.
func Bytes(ws ...uint16) []byte {
	out := make([]byte, 0, 2*len(ws))
	for _, w := range ws {
		out = append(out, byte(w>>8), byte(w))
	}
	return out
}

// Stamp encodes a time stamp.
func Stamp(net, host uint8, t uint32) [3]uint16 {
	return [3]uint16{uint16(net)<<8 | uint16(host), uint16(t), uint16(t >> 16)}
}

// StringBody encodes a length, maxLength and packed characters.
func StringBody(text string, maxLength int) []uint16 {
	buf := make([]byte, maxLength+maxLength%2)
	copy(buf, text)
	out := []uint16{uint16(len(text)), uint16(maxLength)}
	for i := 0; i < len(buf); i += 2 {
		out = append(out, uint16(buf[i])<<8|uint16(buf[i+1]))
	}
	return out
}

// Names fills ht and ss from a list of identifiers, returning each
// identifier's hash index. Entry 0 is the empty name.
func (s *Segment) Names(names ...string) map[string]uint16 {
	ht := s.T("ht")
	ht.Words = append(ht.Words[:0], 0, 0)
	pool := ""
	out := make(map[string]uint16, len(names))
	for i, n := range names {
		pool += n
		ht.Add(0, uint16(len(pool)))
		out[n] = uint16(i + 1)
	}
	s.T("ss").Words = StringBody(pool, len(pool))
	return out
}

// ID describes an identifier entry.
type ID struct {
	Extended  bool
	Public    bool
	Ctx       uint16
	Immutable bool
	Constant  bool
	Type      uint16
	Info      uint16
	Value     uint16
	Hash      uint16
	LinkTag   uint16 // 0 terminal, 1 sequential, 2 linked
	Link      uint16
}

// Link tags.
const (
	Terminal   = 0
	Sequential = 1
	Linked     = 2
)

// Words encodes the identifier.
func (id ID) Words() []uint16 {
	ws := []uint16{
		word.Pack(word.Flag(3, id.Extended), word.Flag(4, id.Public), word.Field{First: 5, Last: 15, Value: id.Ctx}),
		word.Pack(word.Flag(0, id.Immutable), word.Flag(1, id.Constant), word.Field{First: 2, Last: 15, Value: id.Type}),
		id.Info,
		id.Value,
		word.Pack(word.Field{First: 0, Last: 12, Value: id.Hash}, word.Field{First: 14, Last: 15, Value: id.LinkTag}),
	}
	if id.LinkTag == Linked {
		ws = append(ws, id.Link)
	}
	return ws
}

// Cons encodes a constructor: the class, the variant flag byte (bits
// 8-15 of the first word) and the remaining words.
func Cons(class uint8, flags uint8, rest ...uint16) []uint16 {
	w0 := word.Pack(word.Flag(2, true), word.Field{First: 3, Last: 7, Value: uint16(class)}) | uint16(flags)
	return append([]uint16{w0}, rest...)
}

// Flags builds a variant flag byte from bit numbers 8-15.
func Flags(bits ...int) uint8 {
	var f uint8
	for _, b := range bits {
		f |= 1 << (15 - b)
	}
	return f
}

// CtxWord puts a context index in bits 5-15, the position every
// constructor uses.
func CtxWord(ctx uint16) uint16 {
	return word.Pack(word.Field{First: 5, Last: 15, Value: ctx})
}

// Context encodes a context record. Type is 0 simple, 1 included,
// 2 imported, 3 nil; payload goes in bits 5-15 of word 1; extra holds the
// two words of an included context.
func Context(seList uint16, level uint16, ctxType uint16, payload uint16, extra ...uint16) []uint16 {
	ws := []uint16{
		word.Pack(word.Field{First: 2, Last: 15, Value: seList}),
		word.Pack(word.Field{First: 0, Last: 2, Value: level}, word.Field{First: 3, Last: 4, Value: ctxType},
			word.Field{First: 5, Last: 15, Value: payload}),
	}
	return append(ws, extra...)
}

// Included encodes the two extra words of an included context.
func Included(module uint16, mapCtx uint16, closed, complete bool) []uint16 {
	return []uint16{
		word.Pack(word.Field{First: 0, Last: 1, Value: 3}, word.Field{First: 2, Last: 15, Value: module}),
		word.Pack(word.Field{First: 0, Last: 10, Value: mapCtx}, word.Flag(11, closed), word.Flag(12, complete)),
	}
}

// MD encodes a module record.
func MD(stamp [3]uint16, moduleID, fileID, ctx, defaultImport, file uint16) []uint16 {
	ws := append([]uint16(nil), stamp[:]...)
	return append(ws,
		word.Pack(word.Field{First: 3, Last: 15, Value: moduleID}),
		word.Pack(word.Field{First: 3, Last: 15, Value: fileID}),
		word.Pack(word.Field{First: 2, Last: 12, Value: ctx}),
		word.Pack(word.Field{First: 5, Last: 15, Value: defaultImport}),
		file,
	)
}

// Link tags of tree links.
const (
	LinkSubtree = 0
	LinkHash    = 1
	LinkSymbol  = 2
	LinkLiteral = 3
)

// TreeLink encodes a tree link.
func TreeLink(tag, index uint16) uint16 {
	return word.Pack(word.Field{First: 0, Last: 1, Value: tag}, word.Field{First: 2, Last: 15, Value: index})
}

// WordLiteral encodes a literal tree link to lit[index].
func WordLiteral(index uint16) uint16 {
	return TreeLink(LinkLiteral, index)
}

// StringLiteral encodes a literal tree link to sLit[index].
func StringLiteral(index uint16) uint16 {
	return TreeLink(LinkLiteral, 1<<13|index)
}

// Node encodes a tree node.
func Node(name uint8, info uint16, sons ...uint16) []uint16 {
	ws := []uint16{word.Pack(word.Field{First: 1, Last: 8, Value: uint16(name)}), info, uint16(len(sons))}
	return append(ws, sons...)
}

// ShortLit encodes a one-word literal.
func ShortLit(v uint16) []uint16 {
	return []uint16{word.Pack(word.Field{First: 0, Last: 12, Value: 0x1FFF}), v}
}

// LongLit encodes a multi-word literal.
func LongLit(codeIndex uint16, ws ...uint16) []uint16 {
	out := []uint16{word.Pack(word.Field{First: 0, Last: 12, Value: 0x1FFF}, word.Field{First: 13, Last: 15, Value: 1}), codeIndex, uint16(len(ws))}
	return append(out, ws...)
}

// MasterString encodes a string literal owning its text.
func MasterString(text string) []uint16 {
	return append([]uint16{0, 0, 0}, StringBody(text, len(text))...)
}

// Ext encodes an extension record. Type is 0 value, 1 form, 2 default.
func Ext(extType, sei, tree uint16) []uint16 {
	return []uint16{word.Pack(word.Field{First: 0, Last: 1, Value: extType}, word.Field{First: 2, Last: 15, Value: sei}), tree}
}

// Body encodes a body record. A callable body passes its id and ioType;
// pass callable false for an other body.
func Body(parentLink bool, link, firstSon, typ, ctx uint16, level uint16, callable bool, id, ioType uint16, nesting, nestPayload uint16) []uint16 {
	ws := []uint16{
		word.Pack(word.Flag(0, parentLink), word.Field{First: 2, Last: 15, Value: link}),
		word.Pack(word.Field{First: 2, Last: 15, Value: firstSon}),
		word.Pack(word.Field{First: 2, Last: 15, Value: typ}),
		word.Pack(word.Field{First: 0, Last: 2, Value: level}, word.Field{First: 5, Last: 15, Value: ctx}),
		0, // sourceIndex
		8, // internal, frame size 8
		0, // bodyTree
		0, // thread
	}
	if !callable {
		return append(ws, word.Pack(word.Flag(0, true), word.Field{First: 1, Last: 15, Value: 4}))
	}
	return append(ws,
		word.Pack(word.Field{First: 2, Last: 15, Value: id}),
		word.Pack(word.Field{First: 2, Last: 15, Value: ioType}),
		0,
		word.Pack(word.Field{First: 0, Last: 1, Value: nesting}, word.Field{First: 6, Last: 15, Value: nestPayload}),
	)
}

// Constructor classes.
const (
	ClassMode = iota
	ClassBasic
	ClassEnumerated
	ClassRecord
	ClassRef
	ClassArray
	ClassArrayDesc
	ClassTransfer
	ClassDefinition
	ClassUnion
	ClassSequence
	ClassRelative
	ClassSubrange
	ClassLong
	ClassReal
	ClassOpaque
	ClassZone
	ClassAny
	ClassNil
	ClassBits
)

// Context types.
const (
	CtxSimple = iota
	CtxIncluded
	CtxImported
	CtxNil
)

// Well-known semantic entries laid down by Standard.
const (
	SENil     = 0
	TypeTYPE  = 1
	TypeANY   = 2
	FirstFree = 3
)

// Standard returns a segment holding the records every segment starts
// with: the nil, mode and any constructors at se 0, 1 and 2, and
// placeholder records under ctx 0 and tree 0.
func Standard() *Segment {
	s := New()
	s.T("se").Add(Cons(ClassNil, 0)...)
	s.T("se").Add(Cons(ClassMode, 0)...)
	s.T("se").Add(Cons(ClassAny, 0)...)
	s.T("ctx").Add(Context(0, 0, CtxNil, 0)...)
	s.T("tree").Add(Node(0, 0)...)
	return s
}

// Chain adds identifiers to se as one context chain, linking each to the
// next in table order and ending the last. It returns their offsets.
func (s *Segment) Chain(ids ...ID) []uint16 {
	out := make([]uint16, len(ids))
	for i, id := range ids {
		if id.LinkTag != Linked {
			id.LinkTag = Sequential
			if i == len(ids)-1 {
				id.LinkTag = Terminal
			}
		}
		out[i] = s.T("se").Add(id.Words()...)
	}
	return out
}
