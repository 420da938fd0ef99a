package records

import (
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// TreeLink is one word naming a subtree, identifier, symbol or literal:
// SubtreeLink, HashLink, SymbolLink or LiteralLink.
type TreeLink interface {
	ref(field string) table.Ref
}

// SubtreeLink points at a node; index 0 is the empty tree.
type SubtreeLink struct{ Index TreeIndex }

// HashLink is an unresolved identifier.
type HashLink struct{ Index HTIndex }

// SymbolLink is a resolved identifier.
type SymbolLink struct{ Index SEIndex }

// LiteralLink carries a compact literal reference.
type LiteralLink struct{ Lit LitRecord }

// LitRecord names a literal: WordLit or StringLit.
type LitRecord interface {
	ref(field string) table.Ref
}

// WordLit is a numeric literal in the lit table.
type WordLit struct{ Index LTIndex }

// StringLit is a string literal in the sLit table.
type StringLit struct{ Index STIndex }

func (l SubtreeLink) ref(field string) table.Ref { return treeRef(field, l.Index) }
func (l HashLink) ref(field string) table.Ref    { return htRef(field, l.Index) }
func (l SymbolLink) ref(field string) table.Ref  { return seRef(field, l.Index) }
func (l LiteralLink) ref(field string) table.Ref { return l.Lit.ref(field) }

func (l WordLit) ref(field string) table.Ref {
	return table.Ref{Target: TableLT, Ordinal: uint16(l.Index), Field: field}
}

func (l StringLit) ref(field string) table.Ref {
	return table.Ref{Target: TableST, Ordinal: uint16(l.Index), Field: field}
}

// NullTree is the link to the empty tree.
var NullTree TreeLink = SubtreeLink{Index: NullIndex}

// IsNullTree reports whether l is the empty tree.
func IsNullTree(l TreeLink) bool {
	s, ok := l.(SubtreeLink)
	return ok && s.Index.IsNull()
}

// DecodeTreeLink unpacks a tree link word.
func DecodeTreeLink(w uint16) (TreeLink, error) {
	payload := word.Bits(w, 2, 15)
	switch tag := word.Bits(w, 0, 1); tag {
	case 0:
		return SubtreeLink{Index: TreeIndex(payload)}, nil
	case 1:
		return HashLink{Index: HTIndex(payload)}, nil
	case 2:
		return SymbolLink{Index: SEIndex(payload)}, nil
	case 3:
		lit, err := DecodeLitRecord(payload)
		if err != nil {
			return nil, err
		}
		return LiteralLink{Lit: lit}, nil
	default:
		return nil, decodeerr.Formatf("unknown tree link tag %d", tag)
	}
}

// DecodeLitRecord unpacks the 14-bit payload of a literal tree link.
// Shifted left by two it forms a word whose bit 0 selects word or string
// and whose bits 1-13 are the index.
func DecodeLitRecord(payload uint16) (LitRecord, error) {
	v := payload << 2
	index := word.Bits(v, 1, 13)
	switch tag := word.Bits(v, 0, 0); tag {
	case 0:
		return WordLit{Index: LTIndex(index)}, nil
	case 1:
		return StringLit{Index: STIndex(index)}, nil
	default:
		return nil, decodeerr.Formatf("unknown literal tag %d", tag)
	}
}

// TreeNode is an operator applied to a list of sons.
type TreeNode struct {
	Free   bool
	Name   NodeName
	Attr1  bool
	Attr2  bool
	Attr3  bool
	Shared bool
	Spare  uint16
	Info   uint16
	Sons   []TreeLink
}

// Son returns the n'th son, counting from 1, or the empty tree.
func (n *TreeNode) Son(i int) TreeLink {
	if i < 1 || i > len(n.Sons) {
		return NullTree
	}
	return n.Sons[i-1]
}

// DecodeTreeNode reads a parse tree node.
func DecodeTreeNode(b *word.Buffer) (TreeNode, error) {
	ws, err := b.Words(3)
	if err != nil {
		return TreeNode{}, err
	}
	n := TreeNode{
		Free:   word.Bit(ws[0], 0),
		Name:   NodeName(word.Bits(ws[0], 1, 8)),
		Attr1:  word.Bit(ws[0], 9),
		Attr2:  word.Bit(ws[0], 10),
		Attr3:  word.Bit(ws[0], 11),
		Shared: word.Bit(ws[0], 12),
		Spare:  word.Bits(ws[0], 13, 15),
		Info:   ws[1],
	}
	if !n.Name.Valid() {
		return TreeNode{}, decodeerr.Formatf("unknown tree node name %d", n.Name)
	}
	links, err := b.Words(int(ws[2]))
	if err != nil {
		return TreeNode{}, err
	}
	n.Sons = make([]TreeLink, len(links))
	for i, w := range links {
		if n.Sons[i], err = DecodeTreeLink(w); err != nil {
			return TreeNode{}, err
		}
	}
	return n, nil
}

// References lists the sons of the node.
func (n *TreeNode) References() []table.Ref {
	refs := make([]table.Ref, len(n.Sons))
	for i, s := range n.Sons {
		refs[i] = s.ref("son")
	}
	return refs
}

// ExtensionType classifies an extension.
type ExtensionType uint8

const (
	ExtValue ExtensionType = iota
	ExtForm
	ExtDefault
	ExtNone
)

// String returns the name of the extension type.
func (t ExtensionType) String() string {
	return [...]string{"value", "form", "default", "none"}[t&3]
}

// ExtRecord attaches a parse tree to a semantic entry: a constant value,
// an inline body, or a default.
type ExtRecord struct {
	Type ExtensionType
	Sei  SEIndex
	Tree TreeLink
}

// DecodeExt reads an extension record.
func DecodeExt(b *word.Buffer) (ExtRecord, error) {
	ws, err := b.Words(2)
	if err != nil {
		return ExtRecord{}, err
	}
	t := ExtensionType(word.Bits(ws[0], 0, 1))
	if t == ExtNone {
		return ExtRecord{}, decodeerr.Formatf("extension type %s in table", t)
	}
	link, err := DecodeTreeLink(ws[1])
	if err != nil {
		return ExtRecord{}, err
	}
	return ExtRecord{Type: t, Sei: seField(ws[0]), Tree: link}, nil
}

// References lists the entry and tree the extension joins.
func (r *ExtRecord) References() []table.Ref {
	return []table.Ref{seRef("sei", r.Sei), r.Tree.ref("tree")}
}
