package symtab

import (
	"fmt"
	"iter"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
)

// ContextModule returns the module a context belongs to: the module an
// included context was copied from, or OwnMdi for anything else.
func (g *Graph) ContextModule(ci records.CTXIndex) (records.MDIndex, error) {
	if ci.IsNull() {
		return records.OwnMdi, nil
	}
	ci, err := g.resolveImport(ci)
	if err != nil {
		return records.MDNull, err
	}
	c, err := g.Context(ci)
	if err != nil {
		return records.MDNull, err
	}
	if inc, ok := c.Extension.(*records.IncludedCtx); ok && !inc.Module.IsNull() {
		return inc.Module, nil
	}
	return records.OwnMdi, nil
}

// EnumName returns the name of the element of an enumerated type with
// the given value. ok is false when the type is not enumerated or has
// no such element.
func (g *Graph) EnumName(typeSei records.SEIndex, value uint16) (name string, ok bool, err error) {
	_, c, err := g.UnderlyingType(typeSei)
	if err != nil {
		return "", false, err
	}
	enum, isEnum := c.(*records.EnumeratedCons)
	if !isEnum {
		return "", false, nil
	}
	elems, err := g.Entries(enum.ValueCtx)
	if err != nil {
		return "", false, err
	}
	for _, sei := range elems {
		id, err := g.Identifier(sei)
		if err != nil {
			return "", false, err
		}
		if id.IdValue == value {
			name, err := g.HashString(id.Hash)
			return name, err == nil, err
		}
	}
	return "", false, nil
}

// Lookup finds a top-level entry of the outer context by name.
func (g *Graph) Lookup(name string) (records.SEIndex, error) {
	entries, err := g.Entries(g.header.OuterCtx)
	if err != nil {
		return records.SENull, err
	}
	for _, sei := range entries {
		n, err := g.Name(sei)
		if err != nil {
			return records.SENull, err
		}
		if n == name {
			return sei, nil
		}
	}
	return records.SENull, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

// Bodies returns every body in table order.
func (g *Graph) Bodies() []records.BTIndex {
	out := make([]records.BTIndex, 0, g.bt.Len())
	for _, o := range g.bt.Ordinals() {
		out = append(out, records.BTIndex(o))
	}
	return out
}

// RootBodies returns the bodies with no parent: those no other body
// names as a child.
func (g *Graph) RootBodies() ([]records.BTIndex, error) {
	child := make(map[records.BTIndex]bool)
	for _, bti := range g.Bodies() {
		kids, err := g.BodyChildren(bti)
		if err != nil {
			return nil, err
		}
		for _, k := range kids {
			child[k] = true
		}
	}
	var out []records.BTIndex
	for _, bti := range g.Bodies() {
		if !child[bti] {
			out = append(out, bti)
		}
	}
	return out, nil
}

// BodyChildren returns the children of a body: its first son, then each
// sibling until a link points back at the parent.
func (g *Graph) BodyChildren(bti records.BTIndex) ([]records.BTIndex, error) {
	b, err := g.Body(bti)
	if err != nil {
		return nil, err
	}
	var out []records.BTIndex
	for child := b.FirstSon; !child.IsNull(); {
		if len(out) >= g.bt.Len() {
			return nil, referencef(records.TableBT, uint16(bti), "child list does not return to its parent")
		}
		out = append(out, child)
		cb, err := g.Body(child)
		if err != nil {
			return nil, err
		}
		if cb.Link.Parent {
			break
		}
		child = cb.Link.Index
	}
	return out, nil
}

// Modules iterates the module table in table order.
func (g *Graph) Modules() iter.Seq2[records.MDIndex, *records.MDRecord] {
	return func(yield func(records.MDIndex, *records.MDRecord) bool) {
		for o, md := range g.md.All() {
			if !yield(records.MDIndex(o), md) {
				return
			}
		}
	}
}
