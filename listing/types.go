package listing

import (
	"fmt"
	"strings"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
)

var transferKeywords = map[records.TransferMode]string{
	records.ModeProc:    "PROCEDURE",
	records.ModePort:    "PORT",
	records.ModeSignal:  "SIGNAL",
	records.ModeError:   "ERROR",
	records.ModeProcess: "PROCESS",
	records.ModeProgram: "PROGRAM",
}

// typeExpr writes the type at sei. Named types print as their name.
func (p *printer) typeExpr(st state, sei records.SEIndex) error {
	st, err := st.enter(records.TableSE, uint16(sei))
	if err != nil {
		return err
	}
	e, err := p.g.Entry(sei)
	if err != nil {
		return err
	}
	switch v := e.Body.(type) {
	case *records.Identifier:
		if !v.IsType() {
			return referencef(sei, "identifier is used as a type")
		}
		name, err := p.qualifiedName(v)
		if err != nil {
			return err
		}
		p.w.write(name)
		return nil
	case records.Constructor:
		return p.constructor(st, sei, v)
	default:
		return referencef(sei, "unknown entry %T", v)
	}
}

func (p *printer) constructor(st state, sei records.SEIndex, c records.Constructor) error {
	switch c := c.(type) {
	case *records.ModeCons:
		p.w.write("TYPE")
	case *records.BasicCons:
		p.w.write(basicName(c.Code))
	case *records.EnumeratedCons:
		return p.enumeration(c)
	case *records.RecordCons:
		return p.record(st, c)
	case *records.RefCons:
		return p.reference(st, c)
	case *records.ArrayCons:
		if c.Packed {
			p.w.write("PACKED ")
		}
		p.w.write("ARRAY ")
		if err := p.typeExpr(st, c.IndexType); err != nil {
			return err
		}
		p.w.write(" OF ")
		return p.typeExpr(st, c.ComponentType)
	case *records.ArrayDescCons:
		p.w.write("DESCRIPTOR FOR ")
		if c.ReadOnly {
			p.w.write("READONLY ")
		}
		return p.typeExpr(st, c.DescribedType)
	case *records.TransferCons:
		return p.transfer(st, c)
	case *records.DefinitionCons:
		p.w.write("DEFINITIONS")
	case *records.UnionCons:
		return p.union(st, c)
	case *records.SequenceCons:
		return p.sequence(st, c)
	case *records.RelativeCons:
		if err := p.typeExpr(st, c.BaseType); err != nil {
			return err
		}
		p.w.write(" RELATIVE ")
		return p.typeExpr(st, c.OffsetType)
	case *records.SubrangeCons:
		return p.subrange(st, c)
	case *records.LongCons:
		p.w.write("LONG ")
		return p.typeExpr(st, c.RangeType)
	case *records.RealCons:
		p.w.write("REAL")
	case *records.OpaqueCons:
		p.w.write(opaque(c))
	case *records.ZoneCons:
		if !c.Counted {
			p.w.write("UNCOUNTED ")
		}
		p.w.write("ZONE")
	case *records.AnyCons:
		p.w.write("ANY")
	case *records.NilCons:
		p.w.write("NIL")
	case *records.BitsCons:
		p.w.printf("BITS[%d]", c.Length)
	default:
		return referencef(sei, "unknown constructor %T", c)
	}
	return nil
}

func basicName(code uint8) string {
	switch code {
	case records.CodeINT:
		return "INTEGER"
	case records.CodeCHAR:
		return "CHARACTER"
	default:
		return "UNSPECIFIED"
	}
}

func opaque(c *records.OpaqueCons) string {
	if c.LengthKnown {
		return fmt.Sprintf("TYPE [%d]", c.Length/16)
	}
	return "TYPE"
}

// qualifiedName prefixes the name of a type identifier with its module
// when it was copied from another interface.
func (p *printer) qualifiedName(id *records.Identifier) (string, error) {
	name, err := p.g.HashString(id.Hash)
	if err != nil {
		return "", err
	}
	mdi, err := p.g.ContextModule(id.IdCtx)
	if err != nil || mdi.IsOwn() {
		return name, err
	}
	mod, err := p.g.ModuleName(mdi)
	if err != nil {
		return "", err
	}
	return mod + "." + name, nil
}

func (p *printer) enumeration(c *records.EnumeratedCons) error {
	elems, err := p.g.Entries(c.ValueCtx)
	if err != nil {
		return err
	}
	if c.MachineDep {
		p.w.write("MACHINE DEPENDENT ")
	}
	names := make([]string, len(elems))
	for i, sei := range elems {
		id, err := p.g.Identifier(sei)
		if err != nil {
			return err
		}
		if names[i], err = p.g.HashString(id.Hash); err != nil {
			return err
		}
		if c.MachineDep || int(id.IdValue) != i {
			names[i] += fmt.Sprintf("(%d)", id.IdValue)
		}
	}
	p.w.write("{" + strings.Join(names, ", ") + "}")
	return nil
}

// fieldState is the state for the fields of a record.
func (p *printer) fieldState(st state, c *records.RecordCons) state {
	st.public = st.public != c.Hints.PrivateFields
	switch p.opts.Bits {
	case BitsAuto:
		st.bits = c.MachineDep
	case BitsAlways:
		st.bits = true
	default:
		st.bits = false
	}
	st.depth++
	return st
}

func (p *printer) record(st state, c *records.RecordCons) error {
	if c.Argument {
		return p.fields(st, c, true)
	}
	if c.MachineDep {
		p.w.write("MACHINE DEPENDENT ")
	}
	if c.Monitored {
		p.w.write("MONITORED ")
	}
	p.w.write("RECORD ")
	return p.fields(st, c, st.flat)
}

// fields writes the bracketed field list of a record, either on one line
// or one field per line.
func (p *printer) fields(st state, c *records.RecordCons, inline bool) error {
	entries, err := p.g.Entries(c.FieldCtx)
	if err != nil {
		return err
	}
	inner := p.fieldState(st, c)
	if inline {
		inner.flat = true
	}
	p.w.write("[")
	for i, sei := range entries {
		if i > 0 {
			p.w.write(",")
			if inline {
				p.w.write(" ")
			}
		}
		if !inline {
			p.w.line(inner.depth)
		}
		if err := p.field(inner, sei); err != nil {
			return err
		}
	}
	p.w.write("]")
	return nil
}

func (p *printer) field(st state, sei records.SEIndex) error {
	id, err := p.g.Identifier(sei)
	if err != nil {
		return err
	}
	if err := p.fieldHead(st, id); err != nil {
		return err
	}
	p.w.write(visibility(st, id))
	if err := p.typeExpr(st, id.IdType); err != nil {
		return err
	}
	ext, tree, err := p.g.FindExtension(sei)
	if err != nil || ext != records.ExtDefault {
		return err
	}
	return p.initializer(st, " ← ", tree, id.IdType)
}

// fieldHead writes "name (w:f..l): ", or nothing for an anonymous field.
func (p *printer) fieldHead(st state, id *records.Identifier) error {
	name, err := p.g.HashString(id.Hash)
	if err != nil || name == "" {
		return err
	}
	p.w.write(name)
	if st.bits {
		p.w.write(" " + bitSpec(id))
	}
	p.w.write(": ")
	return nil
}

// bitSpec formats the position of a field: IdValue is its bit offset and
// IdInfo its bit length.
func bitSpec(id *records.Identifier) string {
	w, first := id.IdValue/16, id.IdValue%16
	last := int(first) + int(id.IdInfo) - 1
	return fmt.Sprintf("(%d:%d..%d)", w, first, last)
}

func (p *printer) reference(st state, c *records.RefCons) error {
	readOnly := func() {
		if c.ReadOnly {
			p.w.write("READONLY ")
		}
	}
	switch {
	case c.Var:
		p.w.write("VAR ")
		readOnly()
	case c.List:
		p.w.write("LIST OF ")
		readOnly()
	case c.Counted:
		p.w.write("REF ")
		readOnly()
	default:
		if c.Ordered {
			p.w.write("ORDERED ")
		}
		if c.Basing {
			p.w.write("BASE ")
		}
		p.w.write("POINTER")
		e, err := p.g.Entry(c.RefType)
		if err != nil {
			return err
		}
		if _, ok := e.Body.(*records.AnyCons); ok && !c.ReadOnly {
			return nil
		}
		p.w.write(" TO ")
		readOnly()
	}
	return p.typeExpr(st, c.RefType)
}

func (p *printer) transfer(st state, c *records.TransferCons) error {
	if c.Safe {
		p.w.write("SAFE ")
	}
	kw, ok := transferKeywords[c.Mode]
	if !ok {
		kw = strings.ToUpper(c.Mode.String())
	}
	p.w.write(kw)
	inline := st
	inline.flat = true
	if !c.TypeIn.IsNull() {
		p.w.write(" ")
		if err := p.typeExpr(inline, c.TypeIn); err != nil {
			return err
		}
	}
	if !c.TypeOut.IsNull() {
		p.w.write(" RETURNS ")
		if err := p.typeExpr(inline, c.TypeOut); err != nil {
			return err
		}
	}
	return nil
}

// tag writes the discriminant of a variant part or sequence.
func (p *printer) tag(st state, tagSei records.SEIndex, controlled bool, computed string) error {
	if tagSei.IsNull() {
		p.w.write(computed + " *")
		return nil
	}
	id, err := p.g.Identifier(tagSei)
	if err != nil {
		return err
	}
	if controlled {
		if err := p.fieldHead(st, id); err != nil {
			return err
		}
	} else {
		p.w.write(computed + " ")
	}
	return p.typeExpr(st, id.IdType)
}

func (p *printer) union(st state, c *records.UnionCons) error {
	p.w.write("SELECT ")
	computed := "COMPUTED"
	if c.Overlaid {
		computed = "OVERLAID"
	}
	if err := p.tag(st, c.TagSei, c.Controlled, computed); err != nil {
		return err
	}
	p.w.write(" FROM")

	arms, err := p.g.Entries(c.CaseCtx)
	if err != nil {
		return err
	}
	ids := make([]*records.Identifier, len(arms))
	for i, sei := range arms {
		if ids[i], err = p.g.Identifier(sei); err != nil {
			return err
		}
	}
	next := func() {
		if st.flat {
			p.w.write(" ")
		} else {
			p.w.line(st.depth + 1)
		}
	}
	for i := 0; i < len(ids); {
		j := i + 1
		for j < len(ids) && ids[j].IdInfo == ids[i].IdInfo {
			j++
		}
		names := make([]string, 0, j-i)
		for _, id := range ids[i:j] {
			name, err := p.g.HashString(id.Hash)
			if err != nil {
				return err
			}
			names = append(names, name)
		}
		next()
		p.w.write(strings.Join(names, ", ") + " => ")
		if err := p.variant(st, records.SEIndex(ids[i].IdInfo)); err != nil {
			return err
		}
		p.w.write(",")
		i = j
	}
	next()
	p.w.write("ENDCASE")
	return nil
}

// variant writes the fields of one arm of a variant part on one line.
func (p *printer) variant(st state, sei records.SEIndex) error {
	e, err := p.g.Entry(sei)
	if err != nil {
		return err
	}
	if rc, ok := e.Body.(*records.RecordCons); ok {
		return p.fields(st, rc, true)
	}
	return p.typeExpr(st, sei)
}

func (p *printer) sequence(st state, c *records.SequenceCons) error {
	if c.Packed {
		p.w.write("PACKED ")
	}
	p.w.write("SEQUENCE ")
	if err := p.tag(st, c.TagSei, c.Controlled, "COMPUTED"); err != nil {
		return err
	}
	p.w.write(" OF ")
	return p.typeExpr(st, c.ComponentType)
}

// subrange writes [lo..hi], or [lo..hi) when the range is empty. Bounds
// of a non-integer range are prefixed by the range type.
func (p *printer) subrange(st state, c *records.SubrangeCons) error {
	_, under, err := p.g.UnderlyingType(c.RangeType)
	if err != nil {
		return err
	}
	if b, ok := under.(*records.BasicCons); !ok || b.Code != records.CodeINT {
		if err := p.typeExpr(st, c.RangeType); err != nil {
			return err
		}
		p.w.write(" ")
	}
	lo := uint16(c.Origin)
	hi := lo + c.Range
	los, err := p.bound(c, lo)
	if err != nil {
		return err
	}
	his, err := p.bound(c, hi)
	if err != nil {
		return err
	}
	closing := "]"
	if c.Empty {
		closing = ")"
	}
	p.w.write("[" + los + ".." + his + closing)
	return nil
}

func (p *printer) bound(c *records.SubrangeCons, v uint16) (string, error) {
	_, under, err := p.g.UnderlyingType(c.RangeType)
	if err != nil {
		return "", err
	}
	if b, ok := under.(*records.BasicCons); ok && b.Code == records.CodeINT {
		return signedOrNot(c.Origin < 0, v), nil
	}
	s, _, err := p.scalarConstant(c.RangeType, v)
	return s, err
}

// inlineType renders a type on one line, for use inside expressions.
func (p *printer) inlineType(st state, sei records.SEIndex) (string, error) {
	sub := &printer{g: p.g, opts: p.opts, w: newWriter(p.opts.Indent)}
	st.flat = true
	if err := sub.typeExpr(st, sei); err != nil {
		return "", err
	}
	return sub.w.String(), nil
}
