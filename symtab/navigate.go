package symtab

import (
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
)

// HashString returns the text of a hash entry. HTNull is the empty name.
func (g *Graph) HashString(hti records.HTIndex) (string, error) {
	if hti.IsNull() {
		return "", nil
	}
	if int(hti) >= len(g.names) {
		return "", referencef(records.TableHT, uint16(hti), "no hash entry")
	}
	return g.names[hti], nil
}

// HashStrings returns the text of every hash entry in ordinal order.
func (g *Graph) HashStrings() []string {
	return append([]string(nil), g.names...)
}

// Entry returns the semantic entry at sei.
func (g *Graph) Entry(sei records.SEIndex) (*records.SERecord, error) {
	return g.se.Resolve(uint16(sei))
}

// Identifier returns the identifier entry at sei. A constructor there is
// a reference error.
func (g *Graph) Identifier(sei records.SEIndex) (*records.Identifier, error) {
	e, err := g.Entry(sei)
	if err != nil {
		return nil, err
	}
	id, ok := e.Body.(*records.Identifier)
	if !ok {
		return nil, referencef(records.TableSE, uint16(sei), "entry is a constructor, not an identifier")
	}
	return id, nil
}

// Constructor returns the constructor entry at sei. An identifier there
// is a reference error.
func (g *Graph) Constructor(sei records.SEIndex) (records.Constructor, error) {
	e, err := g.Entry(sei)
	if err != nil {
		return nil, err
	}
	c, ok := e.Body.(records.Constructor)
	if !ok {
		return nil, referencef(records.TableSE, uint16(sei), "entry is an identifier, not a constructor")
	}
	return c, nil
}

// Name returns the name of the identifier at sei.
func (g *Graph) Name(sei records.SEIndex) (string, error) {
	id, err := g.Identifier(sei)
	if err != nil {
		return "", err
	}
	return g.HashString(id.Hash)
}

// Context returns the context record at ci.
func (g *Graph) Context(ci records.CTXIndex) (*records.ContextRecord, error) {
	return g.ctx.Resolve(uint16(ci))
}

// Module returns the module record at mdi. OwnMdi is the module itself.
func (g *Graph) Module(mdi records.MDIndex) (*records.MDRecord, error) {
	return g.md.Resolve(uint16(mdi))
}

// OwnModule returns the record of the module the segment describes.
func (g *Graph) OwnModule() (*records.MDRecord, error) {
	return g.Module(records.OwnMdi)
}

// ModuleName returns the name of the module at mdi.
func (g *Graph) ModuleName(mdi records.MDIndex) (string, error) {
	md, err := g.Module(mdi)
	if err != nil {
		return "", err
	}
	return g.HashString(md.ModuleID)
}

// Body returns the body record at bti.
func (g *Graph) Body(bti records.BTIndex) (*records.BodyRecord, error) {
	return g.bt.Resolve(uint16(bti))
}

// Node returns the parse tree node at ti.
func (g *Graph) Node(ti records.TreeIndex) (*records.TreeNode, error) {
	return g.tree.Resolve(uint16(ti))
}

// Literal returns the numeric literal at lti.
func (g *Graph) Literal(lti records.LTIndex) (*records.LTRecord, error) {
	return g.lt.Resolve(uint16(lti))
}

// StringLiteral returns the string literal at sti.
func (g *Graph) StringLiteral(sti records.STIndex) (*records.STRecord, error) {
	return g.st.Resolve(uint16(sti))
}

// StringText returns the characters of a string literal, following a
// slave to its master.
func (g *Graph) StringText(sti records.STIndex) (string, error) {
	for steps := 0; steps <= g.st.Len(); steps++ {
		rec, err := g.StringLiteral(sti)
		if err != nil {
			return "", err
		}
		switch v := rec.Value.(type) {
		case *records.MasterString:
			return v.Body.String(), nil
		case *records.SlaveString:
			sti = v.Link
		}
	}
	return "", referencef(records.TableST, uint16(sti), "slave chain does not reach a master")
}

// NextEntry returns the entry following sei in its context's chain, or
// SENull at the end. sei must be an identifier.
func (g *Graph) NextEntry(sei records.SEIndex) (records.SEIndex, error) {
	id, err := g.Identifier(sei)
	if err != nil {
		return records.SENull, err
	}
	switch l := id.CtxLink.(type) {
	case records.TerminalLink:
		return records.SENull, nil
	case records.SequentialLink:
		next, ok := g.se.Next(uint16(sei))
		if !ok {
			return records.SENull, referencef(records.TableSE, uint16(sei), "sequential link past the end of the table")
		}
		return records.SEIndex(next), nil
	case *records.LinkedLink:
		return l.Link, nil
	default:
		return records.SENull, referencef(records.TableSE, uint16(sei), "unknown chain link %T", l)
	}
}

// Entries returns the entries of a context in chain order. An imported
// context yields the entries of the context it includes. A chain longer
// than the entry table is reported as a reference error.
func (g *Graph) Entries(ci records.CTXIndex) ([]records.SEIndex, error) {
	if ci.IsNull() {
		return nil, nil
	}
	ci, err := g.resolveImport(ci)
	if err != nil {
		return nil, err
	}
	c, err := g.Context(ci)
	if err != nil {
		return nil, err
	}

	var out []records.SEIndex
	limit := g.se.Len()
	for sei := c.SEList; !sei.IsNull(); {
		if len(out) >= limit {
			return nil, referencef(records.TableCTX, uint16(ci), "entry chain does not terminate within %d entries", limit)
		}
		out = append(out, sei)
		if sei, err = g.NextEntry(sei); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// resolveImport follows imported contexts to the context they stand for.
func (g *Graph) resolveImport(ci records.CTXIndex) (records.CTXIndex, error) {
	for steps := 0; steps <= g.ctx.Len(); steps++ {
		c, err := g.Context(ci)
		if err != nil {
			return ci, err
		}
		imp, ok := c.Extension.(*records.ImportedCtx)
		if !ok || imp.IncludeLink.IsNull() {
			return ci, nil
		}
		ci = imp.IncludeLink
	}
	return ci, referencef(records.TableCTX, uint16(ci), "import links form a cycle")
}

// UnderlyingType follows type identifiers through idInfo until it
// reaches a constructor. A non-type identifier on the way is a
// reference error.
func (g *Graph) UnderlyingType(sei records.SEIndex) (records.SEIndex, records.Constructor, error) {
	start := sei
	for steps := 0; steps <= g.se.Len(); steps++ {
		e, err := g.Entry(sei)
		if err != nil {
			return records.SENull, nil, err
		}
		switch v := e.Body.(type) {
		case records.Constructor:
			return sei, v, nil
		case *records.Identifier:
			if !v.IsType() {
				return records.SENull, nil, referencef(records.TableSE, uint16(sei),
					"identifier in the type chain of %s does not name a type", start)
			}
			sei = records.SEIndex(v.IdInfo)
		}
	}
	return records.SENull, nil, referencef(records.TableSE, uint16(start), "type chain does not reach a constructor")
}

// TransferMode returns the mode of a transfer type, or ModeNone for any
// other type.
func (g *Graph) TransferMode(sei records.SEIndex) (records.TransferMode, error) {
	_, c, err := g.UnderlyingType(sei)
	if err != nil {
		return records.ModeNone, err
	}
	if t, ok := c.(*records.TransferCons); ok {
		return t.Mode, nil
	}
	return records.ModeNone, nil
}

// TypeLink returns the type a linked record extends, or SENull.
func (g *Graph) TypeLink(sei records.SEIndex) (records.SEIndex, error) {
	_, c, err := g.UnderlyingType(sei)
	if err != nil {
		return records.SENull, err
	}
	if r, ok := c.(*records.RecordCons); ok && r.Linked {
		return r.LinkType, nil
	}
	return records.SENull, nil
}

// FindExtension returns the extension attached to sei: its type and
// tree. An entry with no extension yields ExtNone and the empty tree.
func (g *Graph) FindExtension(sei records.SEIndex) (records.ExtensionType, records.TreeLink, error) {
	for _, ext := range g.ext.All() {
		if ext.Sei == sei {
			return ext.Type, ext.Tree, nil
		}
	}
	return records.ExtNone, records.NullTree, nil
}
