package records

import (
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// CtxType selects the variant of a context record.
type CtxType uint8

const (
	CtxSimple CtxType = iota
	CtxIncluded
	CtxImported
	CtxNil
)

// String returns the name of the context type.
func (t CtxType) String() string {
	switch t {
	case CtxSimple:
		return "simple"
	case CtxIncluded:
		return "included"
	case CtxImported:
		return "imported"
	case CtxNil:
		return "nil"
	default:
		return "CtxType(?)"
	}
}

// Closure is how much of an included module's context was copied.
type Closure uint8

const (
	ClosureNone Closure = iota
	ClosureUnit
	ClosureRC
	ClosureFull
)

// String returns the name of the closure.
func (c Closure) String() string {
	return [...]string{"none", "unit", "rc", "full"}[c&3]
}

// ContextRecord is one scope: the head of its entry chain, its lexical
// level and a variant selected by CtxType.
type ContextRecord struct {
	Mark       bool
	VarUpdated bool
	SEList     SEIndex
	Level      uint8
	Extension  CtxExtension
}

// CtxExtension is the variant part of a context record:
// *SimpleCtx, *IncludedCtx, *ImportedCtx or *NilCtx.
type CtxExtension interface {
	CtxType() CtxType
	references() []table.Ref
}

// SimpleCtx is an ordinary scope.
type SimpleCtx struct {
	CtxNew CTXIndex
}

// IncludedCtx copies entries from another module.
type IncludedCtx struct {
	Chain      CTXIndex
	Copied     Closure
	Module     MDIndex
	Map        CTXIndex
	Closed     bool
	Complete   bool
	Restricted bool
	Reset      bool
	Spare      uint16
}

// ImportedCtx stands for an included context.
type ImportedCtx struct {
	IncludeLink CTXIndex
}

// NilCtx is the empty scope.
type NilCtx struct {
	Spare uint16
}

// CtxType reports which variant the extension is.
func (*SimpleCtx) CtxType() CtxType   { return CtxSimple }
func (*IncludedCtx) CtxType() CtxType { return CtxIncluded }
func (*ImportedCtx) CtxType() CtxType { return CtxImported }
func (*NilCtx) CtxType() CtxType      { return CtxNil }

func (c *SimpleCtx) references() []table.Ref {
	return []table.Ref{ctxRef("ctxNew", c.CtxNew)}
}

func (c *IncludedCtx) references() []table.Ref {
	return []table.Ref{
		ctxRef("chain", c.Chain),
		mdRef("module", c.Module),
		ctxRef("map", c.Map),
	}
}

func (c *ImportedCtx) references() []table.Ref {
	return []table.Ref{ctxRef("includeLink", c.IncludeLink)}
}

func (*NilCtx) references() []table.Ref { return nil }

// DecodeContext reads a context record.
func DecodeContext(b *word.Buffer) (ContextRecord, error) {
	ws, err := b.Words(2)
	if err != nil {
		return ContextRecord{}, err
	}
	r := ContextRecord{
		Mark:       word.Bit(ws[0], 0),
		VarUpdated: word.Bit(ws[0], 1),
		SEList:     SEIndex(word.Bits(ws[0], 2, 15)),
		Level:      uint8(word.Bits(ws[1], 0, 2)),
	}
	payload := word.Bits(ws[1], 5, 15)

	switch t := CtxType(word.Bits(ws[1], 3, 4)); t {
	case CtxSimple:
		r.Extension = &SimpleCtx{CtxNew: CTXIndex(payload)}
	case CtxIncluded:
		ext, err := decodeIncluded(b)
		if err != nil {
			return ContextRecord{}, err
		}
		ext.Chain = CTXIndex(payload)
		r.Extension = ext
	case CtxImported:
		r.Extension = &ImportedCtx{IncludeLink: CTXIndex(payload)}
	case CtxNil:
		r.Extension = &NilCtx{Spare: payload}
	default:
		return ContextRecord{}, decodeerr.Formatf("unknown context type %d", t)
	}
	return r, nil
}

func decodeIncluded(b *word.Buffer) (*IncludedCtx, error) {
	ws, err := b.Words(2)
	if err != nil {
		return nil, err
	}
	return &IncludedCtx{
		Copied:     Closure(word.Bits(ws[0], 0, 1)),
		Module:     MDIndex(word.Bits(ws[0], 2, 15)),
		Map:        CTXIndex(word.Bits(ws[1], 0, 10)),
		Closed:     word.Bit(ws[1], 11),
		Complete:   word.Bit(ws[1], 12),
		Restricted: word.Bit(ws[1], 13),
		Reset:      word.Bit(ws[1], 14),
		Spare:      word.Bits(ws[1], 15, 15),
	}, nil
}

// References lists the relative indexes held by the context and its
// extension.
func (r *ContextRecord) References() []table.Ref {
	return append([]table.Ref{seRef("seList", r.SEList)}, r.Extension.references()...)
}
