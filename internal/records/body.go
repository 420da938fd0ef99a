package records

import (
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// BodyLink points at a body's next sibling, or at its parent when it is
// the last child.
type BodyLink struct {
	Parent bool
	Index  BTIndex
}

// BodyRecord describes a procedure or nested block. Spare holds the
// unused bits of words 0-3 in word order; the variants keep their own.
type BodyRecord struct {
	Link        BodyLink
	FirstSon    BTIndex
	Type        SEIndex
	Level       uint8
	LocalCtx    CTXIndex
	SourceIndex uint16
	Info        BodyInfo
	Kind        BodyKind
	Spare       uint16
}

// BodyInfo is *InternalBody or *ExternalBody.
type BodyInfo interface {
	bodyInfo()
}

// InternalBody locates the body's parse tree in this segment.
type InternalBody struct {
	FrameSize uint16
	BodyTree  TreeIndex
	Thread    TreeIndex
	Spare     uint16
}

// ExternalBody locates the body's code in another file.
type ExternalBody struct {
	Bytes       uint16
	StartIndex  uint16
	IndexLength uint16
}

func (*InternalBody) bodyInfo() {}
func (*ExternalBody) bodyInfo() {}

// BodyKind is *CallableBody or *OtherBody.
type BodyKind interface {
	bodyKind()
}

// CallableHints summarize a callable body.
type CallableHints struct {
	Safe       bool
	ArgUpdated bool
	NameSafe   bool
	NeedsFixup bool
}

// CallableBody is a procedure, catch phrase or nested procedure.
type CallableBody struct {
	Inline     bool
	ID         SEIndex
	IOType     SEIndex
	Monitored  bool
	NoXfers    bool
	Resident   bool
	Entry      bool
	Internal   bool
	EntryIndex uint8
	Hints      CallableHints
	Nesting    Nesting
	Spare      uint16
}

// OtherBody is a nested block.
type OtherBody struct {
	RelOffset uint16
}

func (*CallableBody) bodyKind() {}
func (*OtherBody) bodyKind()    {}

// Nesting is how a callable body is nested:
// OuterNesting, *InnerNesting or *CatchNesting.
type Nesting interface {
	nesting()
}

// OuterNesting is a top-level procedure.
type OuterNesting struct{}

// InnerNesting is a nested procedure with its frame offset.
type InnerNesting struct {
	FrameOffset uint16
}

// CatchNesting is a catch phrase.
type CatchNesting struct {
	Index uint16
}

func (OuterNesting) nesting()  {}
func (*InnerNesting) nesting() {}
func (*CatchNesting) nesting() {}

// DecodeBody reads a body record.
func DecodeBody(b *word.Buffer) (BodyRecord, error) {
	ws, err := b.Words(9)
	if err != nil {
		return BodyRecord{}, err
	}
	var sp spares
	sp.take(ws[0], 1, 1)
	r := BodyRecord{
		Link:     BodyLink{Parent: word.Bit(ws[0], 0), Index: BTIndex(word.Bits(ws[0], 2, 15))},
		FirstSon: BTIndex(sp.index(ws[1])),
		Type:     sp.se(ws[2]),
		Level:    uint8(word.Bits(ws[3], 0, 2)),
	}
	sp.take(ws[3], 3, 4)
	r.LocalCtx = ctxField(ws[3])
	r.SourceIndex = ws[4]
	r.Spare = uint16(sp)

	if word.Bit(ws[5], 0) {
		r.Info = &ExternalBody{Bytes: word.Bits(ws[5], 1, 15), StartIndex: ws[6], IndexLength: ws[7]}
	} else {
		var isp spares
		in := &InternalBody{
			FrameSize: word.Bits(ws[5], 1, 15),
			BodyTree:  TreeIndex(isp.index(ws[6])),
			Thread:    TreeIndex(isp.index(ws[7])),
		}
		in.Spare = uint16(isp)
		r.Info = in
	}
	if word.Bit(ws[8], 0) {
		r.Kind = &OtherBody{RelOffset: word.Bits(ws[8], 1, 15)}
		return r, nil
	}

	cs, err := b.Words(3)
	if err != nil {
		return BodyRecord{}, err
	}
	var csp spares
	c := &CallableBody{
		Inline:     word.Bit(ws[8], 1),
		ID:         seField(ws[8]),
		IOType:     csp.se(cs[0]),
		Monitored:  word.Bit(cs[1], 0),
		NoXfers:    word.Bit(cs[1], 1),
		Resident:   word.Bit(cs[1], 2),
		Entry:      word.Bit(cs[1], 3),
		Internal:   word.Bit(cs[1], 4),
		EntryIndex: uint8(word.Bits(cs[1], 8, 15)),
		Hints: CallableHints{
			Safe:       word.Bit(cs[2], 2),
			ArgUpdated: word.Bit(cs[2], 3),
			NameSafe:   word.Bit(cs[2], 4),
			NeedsFixup: word.Bit(cs[2], 5),
		},
	}
	csp.take(cs[1], 5, 7)
	c.Spare = uint16(csp)
	payload := word.Bits(cs[2], 6, 15)
	switch n := word.Bits(cs[2], 0, 1); n {
	case 0:
		c.Nesting = OuterNesting{}
	case 1:
		c.Nesting = &InnerNesting{FrameOffset: payload}
	case 2:
		c.Nesting = &CatchNesting{Index: payload}
	default:
		return BodyRecord{}, decodeerr.Formatf("unknown body nesting %d", n)
	}
	r.Kind = c
	return r, nil
}

// References lists the relative indexes held by the body, including
// those of its variant parts.
func (r *BodyRecord) References() []table.Ref {
	refs := []table.Ref{
		btRef("link", r.Link.Index),
		btRef("firstSon", r.FirstSon),
		seRef("type", r.Type),
		ctxRef("localCtx", r.LocalCtx),
	}
	if in, ok := r.Info.(*InternalBody); ok {
		refs = append(refs, treeRef("bodyTree", in.BodyTree), treeRef("thread", in.Thread))
	}
	if c, ok := r.Kind.(*CallableBody); ok {
		refs = append(refs, seRef("id", c.ID), seRef("ioType", c.IOType))
	}
	return refs
}
