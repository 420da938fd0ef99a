package records

import (
	"fmt"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// TypeClass selects the variant of a constructor entry.
type TypeClass uint8

const (
	ClassMode TypeClass = iota
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

var typeClassNames = [...]string{
	"mode", "basic", "enumerated", "record", "ref", "array", "arraydesc",
	"transfer", "definition", "union", "sequence", "relative", "subrange",
	"long", "real", "opaque", "zone", "any", "nil", "bits",
}

// String returns the lower-case name of the class.
func (c TypeClass) String() string {
	if int(c) < len(typeClassNames) {
		return typeClassNames[c]
	}
	return fmt.Sprintf("TypeClass(%d)", uint8(c))
}

// TransferMode is the kind of a transfer (procedure-like) type.
type TransferMode uint8

const (
	ModeProc TransferMode = iota
	ModePort
	ModeSignal
	ModeError
	ModeProcess
	ModeProgram
	ModeNone
)

var transferModeNames = [...]string{"proc", "port", "signal", "error", "process", "program", "none"}

// String returns the lower-case name of the mode.
func (m TransferMode) String() string {
	if int(m) < len(transferModeNames) {
		return transferModeNames[m]
	}
	return fmt.Sprintf("TransferMode(%d)", uint8(m))
}

// Basic type codes.
const (
	CodeANY  uint8 = 0
	CodeINT  uint8 = 1
	CodeCHAR uint8 = 2
)

// Constructor is a semantic entry describing a type. The concrete type
// is one of the *XxxCons structs below.
//
// Every constructor keeps the bits its layout leaves unused in Spare:
// the unused variant bits of word 0 followed by the high bits of each
// index word, concatenated in word order.
type Constructor interface {
	SEBody
	Class() TypeClass
}

// ModeCons is the type of types.
type ModeCons struct {
	Spare uint16
}

// BasicCons is a predefined scalar type.
type BasicCons struct {
	Ordered bool
	Code    uint8
	Length  uint16
	Spare   uint16
}

// EnumeratedCons lists its elements in ValueCtx.
type EnumeratedCons struct {
	Ordered    bool
	MachineDep bool
	Unpainted  bool
	Sparse     bool
	ValueCtx   CTXIndex
	NValues    uint16
	Spare      uint16
}

// RecordHints summarize a record's fields.
type RecordHints struct {
	Comparable    bool
	Assignable    bool
	Unifield      bool
	Variant       bool
	PrivateFields bool
	RefField      bool
	Default       bool
	Voidable      bool
}

// RecordCons is a record; a linked record extends LinkType.
type RecordCons struct {
	Hints      RecordHints
	Length     uint16
	Argument   bool
	Monitored  bool
	MachineDep bool
	Painted    bool
	FieldCtx   CTXIndex
	Linked     bool
	LinkType   SEIndex
	Spare      uint16
}

// RefCons is a pointer, REF, LIST or VAR type.
type RefCons struct {
	Counted  bool
	Ordered  bool
	ReadOnly bool
	List     bool
	Var      bool
	Basing   bool
	RefType  SEIndex
	Spare    uint16
}

// ArrayCons is ARRAY IndexType OF ComponentType.
type ArrayCons struct {
	Packed        bool
	IndexType     SEIndex
	ComponentType SEIndex
	Spare         uint16
}

// ArrayDescCons is DESCRIPTOR FOR DescribedType.
type ArrayDescCons struct {
	Var           bool
	ReadOnly      bool
	DescribedType SEIndex
	Spare         uint16
}

// TransferCons is a procedure-like type with argument records.
type TransferCons struct {
	Safe    bool
	Mode    TransferMode
	TypeIn  SEIndex
	TypeOut SEIndex
	Spare   uint16
}

// DefinitionCons is the type of an interface module.
type DefinitionCons struct {
	Named  bool
	DefCtx CTXIndex
	Spare  uint16
}

// UnionHints summarize a variant part.
type UnionHints struct {
	EqualLengths bool
	RefField     bool
	Default      bool
	Voidable     bool
}

// UnionCons is a variant part; its cases are the identifiers of CaseCtx.
type UnionCons struct {
	MachineDep bool
	Overlaid   bool
	Controlled bool
	Hints      UnionHints
	CaseCtx    CTXIndex
	TagSei     SEIndex
	Spare      uint16
}

// SequenceCons is SEQUENCE tag OF ComponentType.
type SequenceCons struct {
	Packed        bool
	Controlled    bool
	MachineDep    bool
	TagSei        SEIndex
	ComponentType SEIndex
	Spare         uint16
}

// RelativeCons is BaseType RELATIVE OffsetType.
type RelativeCons struct {
	BaseType   SEIndex
	OffsetType SEIndex
	ResultType SEIndex
	Spare      uint16
}

// SubrangeCons is [Origin..Origin+Range] of RangeType.
type SubrangeCons struct {
	Filled    bool
	Empty     bool
	RangeType SEIndex
	Origin    int16
	Range     uint16
	Spare     uint16
}

// LongCons is LONG RangeType.
type LongCons struct {
	RangeType SEIndex
	Spare     uint16
}

// RealCons is REAL.
type RealCons struct {
	RangeType SEIndex
	Spare     uint16
}

// OpaqueCons is an opaque type, optionally of known size.
type OpaqueCons struct {
	LengthKnown bool
	Length      uint16
	ID          SEIndex
	Spare       uint16
}

// ZoneCons is a storage zone.
type ZoneCons struct {
	Counted bool
	MDS     bool
	Spare   uint16
}

// AnyCons is the type ANY.
type AnyCons struct {
	Spare uint16
}

// NilCons is the empty type.
type NilCons struct {
	Spare uint16
}

// BitsCons is an uninterpreted bit field.
type BitsCons struct {
	Length uint16
	Spare  uint16
}

// Class reports which constructor variant the entry is.
func (*ModeCons) Class() TypeClass       { return ClassMode }
func (*BasicCons) Class() TypeClass      { return ClassBasic }
func (*EnumeratedCons) Class() TypeClass { return ClassEnumerated }
func (*RecordCons) Class() TypeClass     { return ClassRecord }
func (*RefCons) Class() TypeClass        { return ClassRef }
func (*ArrayCons) Class() TypeClass      { return ClassArray }
func (*ArrayDescCons) Class() TypeClass  { return ClassArrayDesc }
func (*TransferCons) Class() TypeClass   { return ClassTransfer }
func (*DefinitionCons) Class() TypeClass { return ClassDefinition }
func (*UnionCons) Class() TypeClass      { return ClassUnion }
func (*SequenceCons) Class() TypeClass   { return ClassSequence }
func (*RelativeCons) Class() TypeClass   { return ClassRelative }
func (*SubrangeCons) Class() TypeClass   { return ClassSubrange }
func (*LongCons) Class() TypeClass       { return ClassLong }
func (*RealCons) Class() TypeClass       { return ClassReal }
func (*OpaqueCons) Class() TypeClass     { return ClassOpaque }
func (*ZoneCons) Class() TypeClass       { return ClassZone }
func (*AnyCons) Class() TypeClass        { return ClassAny }
func (*NilCons) Class() TypeClass        { return ClassNil }
func (*BitsCons) Class() TypeClass       { return ClassBits }

func (*ModeCons) references() []table.Ref  { return nil }
func (*BasicCons) references() []table.Ref { return nil }
func (c *EnumeratedCons) references() []table.Ref {
	return []table.Ref{ctxRef("valueCtx", c.ValueCtx)}
}
func (c *RecordCons) references() []table.Ref {
	refs := []table.Ref{ctxRef("fieldCtx", c.FieldCtx)}
	if c.Linked {
		refs = append(refs, seRef("linkType", c.LinkType))
	}
	return refs
}
func (c *RefCons) references() []table.Ref {
	return []table.Ref{seRef("refType", c.RefType)}
}
func (c *ArrayCons) references() []table.Ref {
	return []table.Ref{seRef("indexType", c.IndexType), seRef("componentType", c.ComponentType)}
}
func (c *ArrayDescCons) references() []table.Ref {
	return []table.Ref{seRef("describedType", c.DescribedType)}
}
func (c *TransferCons) references() []table.Ref {
	return []table.Ref{seRef("typeIn", c.TypeIn), seRef("typeOut", c.TypeOut)}
}
func (c *DefinitionCons) references() []table.Ref {
	return []table.Ref{ctxRef("defCtx", c.DefCtx)}
}
func (c *UnionCons) references() []table.Ref {
	return []table.Ref{ctxRef("caseCtx", c.CaseCtx), seRef("tagSei", c.TagSei)}
}
func (c *SequenceCons) references() []table.Ref {
	return []table.Ref{seRef("tagSei", c.TagSei), seRef("componentType", c.ComponentType)}
}
func (c *RelativeCons) references() []table.Ref {
	return []table.Ref{seRef("baseType", c.BaseType), seRef("offsetType", c.OffsetType), seRef("resultType", c.ResultType)}
}
func (c *SubrangeCons) references() []table.Ref {
	return []table.Ref{seRef("rangeType", c.RangeType)}
}
func (c *LongCons) references() []table.Ref {
	return []table.Ref{seRef("rangeType", c.RangeType)}
}
func (c *RealCons) references() []table.Ref {
	return []table.Ref{seRef("rangeType", c.RangeType)}
}
func (c *OpaqueCons) references() []table.Ref {
	return []table.Ref{seRef("id", c.ID)}
}
func (*ZoneCons) references() []table.Ref { return nil }
func (*AnyCons) references() []table.Ref  { return nil }
func (*NilCons) references() []table.Ref  { return nil }
func (*BitsCons) references() []table.Ref { return nil }

func seField(w uint16) SEIndex   { return SEIndex(word.Bits(w, 2, 15)) }
func ctxField(w uint16) CTXIndex { return CTXIndex(word.Bits(w, 5, 15)) }

// spares gathers the unused bits of a record while its fields are read.
type spares uint16

func (s *spares) take(w uint16, first, last int) {
	*s = spares(word.Append(uint16(*s), w, first, last))
}

// index reads a 14-bit index word, keeping its two high bits.
func (s *spares) index(w uint16) uint16 {
	s.take(w, 0, 1)
	return word.Bits(w, 2, 15)
}

func (s *spares) se(w uint16) SEIndex { return SEIndex(s.index(w)) }

// ctx reads a CTXIndex word, keeping its five high bits.
func (s *spares) ctx(w uint16) CTXIndex {
	s.take(w, 0, 4)
	return ctxField(w)
}

// decodeConstructor reads the words after w0 of a constructor entry.
func decodeConstructor(b *word.Buffer, w0 uint16) (Constructor, error) {
	f := func(n int) bool { return word.Bit(w0, n) }
	class := TypeClass(word.Bits(w0, 3, 7))

	var extra int
	switch class {
	case ClassMode, ClassZone, ClassAny, ClassNil:
		extra = 0
	case ClassBasic, ClassRef, ClassArrayDesc, ClassDefinition, ClassLong, ClassReal, ClassBits:
		extra = 1
	case ClassEnumerated, ClassRecord, ClassArray, ClassTransfer, ClassUnion, ClassSequence, ClassOpaque:
		extra = 2
	case ClassRelative, ClassSubrange:
		extra = 3
	default:
		return nil, decodeerr.Formatf("unknown type class %d", class)
	}
	ws, err := b.Words(extra)
	if err != nil {
		return nil, err
	}

	var sp spares
	switch class {
	case ClassMode:
		sp.take(w0, 8, 15)
		return &ModeCons{Spare: uint16(sp)}, nil
	case ClassBasic:
		return &BasicCons{Ordered: f(8), Spare: word.Bits(w0, 9, 11), Code: uint8(word.Bits(w0, 12, 15)), Length: ws[0]}, nil
	case ClassEnumerated:
		sp.take(w0, 12, 15)
		c := &EnumeratedCons{
			Ordered: f(8), MachineDep: f(9), Unpainted: f(10), Sparse: f(11),
			ValueCtx: sp.ctx(ws[0]),
			NValues:  ws[1],
		}
		c.Spare = uint16(sp)
		return c, nil
	case ClassRecord:
		rc := &RecordCons{
			Hints: RecordHints{
				Comparable: f(8), Assignable: f(9), Unifield: f(10), Variant: f(11),
				PrivateFields: f(12), RefField: f(13), Default: f(14), Voidable: f(15),
			},
			Length:     ws[0],
			Argument:   word.Bit(ws[1], 0),
			Monitored:  word.Bit(ws[1], 1),
			MachineDep: word.Bit(ws[1], 2),
			Painted:    word.Bit(ws[1], 3),
			Linked:     word.Bit(ws[1], 4),
			FieldCtx:   ctxField(ws[1]),
		}
		if rc.Linked {
			w, err := b.Get16()
			if err != nil {
				return nil, err
			}
			rc.LinkType = sp.se(w)
			rc.Spare = uint16(sp)
		}
		return rc, nil
	case ClassRef:
		sp.take(w0, 14, 15)
		c := &RefCons{
			Counted: f(8), Ordered: f(9), ReadOnly: f(10), List: f(11), Var: f(12), Basing: f(13),
			RefType: sp.se(ws[0]),
		}
		c.Spare = uint16(sp)
		return c, nil
	case ClassArray:
		sp.take(w0, 9, 15)
		c := &ArrayCons{Packed: f(8), IndexType: sp.se(ws[0]), ComponentType: sp.se(ws[1])}
		c.Spare = uint16(sp)
		return c, nil
	case ClassArrayDesc:
		sp.take(w0, 10, 15)
		c := &ArrayDescCons{Var: f(8), ReadOnly: f(9), DescribedType: sp.se(ws[0])}
		c.Spare = uint16(sp)
		return c, nil
	case ClassTransfer:
		mode := TransferMode(word.Bits(w0, 9, 11))
		if mode > ModeNone {
			return nil, decodeerr.Formatf("unknown transfer mode %d", mode)
		}
		sp.take(w0, 12, 15)
		c := &TransferCons{Safe: f(8), Mode: mode, TypeIn: sp.se(ws[0]), TypeOut: sp.se(ws[1])}
		c.Spare = uint16(sp)
		return c, nil
	case ClassDefinition:
		sp.take(w0, 9, 15)
		c := &DefinitionCons{Named: f(8), DefCtx: sp.ctx(ws[0])}
		c.Spare = uint16(sp)
		return c, nil
	case ClassUnion:
		sp.take(w0, 15, 15)
		c := &UnionCons{
			MachineDep: f(8), Overlaid: f(9), Controlled: f(10),
			Hints:   UnionHints{EqualLengths: f(11), RefField: f(12), Default: f(13), Voidable: f(14)},
			CaseCtx: sp.ctx(ws[0]),
			TagSei:  sp.se(ws[1]),
		}
		c.Spare = uint16(sp)
		return c, nil
	case ClassSequence:
		sp.take(w0, 11, 15)
		c := &SequenceCons{
			Packed: f(8), Controlled: f(9), MachineDep: f(10),
			TagSei: sp.se(ws[0]), ComponentType: sp.se(ws[1]),
		}
		c.Spare = uint16(sp)
		return c, nil
	case ClassRelative:
		sp.take(w0, 8, 15)
		c := &RelativeCons{BaseType: sp.se(ws[0]), OffsetType: sp.se(ws[1]), ResultType: sp.se(ws[2])}
		c.Spare = uint16(sp)
		return c, nil
	case ClassSubrange:
		sp.take(w0, 10, 15)
		c := &SubrangeCons{Filled: f(8), Empty: f(9), RangeType: sp.se(ws[0]), Origin: int16(ws[1]), Range: ws[2]}
		c.Spare = uint16(sp)
		return c, nil
	case ClassLong:
		sp.take(w0, 8, 15)
		c := &LongCons{RangeType: sp.se(ws[0])}
		c.Spare = uint16(sp)
		return c, nil
	case ClassReal:
		sp.take(w0, 8, 15)
		c := &RealCons{RangeType: sp.se(ws[0])}
		c.Spare = uint16(sp)
		return c, nil
	case ClassOpaque:
		sp.take(w0, 9, 15)
		c := &OpaqueCons{LengthKnown: f(8), Length: ws[0], ID: sp.se(ws[1])}
		c.Spare = uint16(sp)
		return c, nil
	case ClassZone:
		sp.take(w0, 10, 15)
		return &ZoneCons{Counted: f(8), MDS: f(9), Spare: uint16(sp)}, nil
	case ClassAny:
		sp.take(w0, 8, 15)
		return &AnyCons{Spare: uint16(sp)}, nil
	case ClassNil:
		sp.take(w0, 8, 15)
		return &NilCons{Spare: uint16(sp)}, nil
	case ClassBits:
		sp.take(w0, 8, 15)
		return &BitsCons{Length: ws[0], Spare: uint16(sp)}, nil
	}
	panic("unreachable")
}
