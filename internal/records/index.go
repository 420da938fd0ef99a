// Package records decodes the tables of a Mesa symbol segment into typed
// records. Records hold plain ordinals; binding them into the tables they
// name is done by the caller once every table has been built.
package records

import (
	"fmt"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
)

// Table names, used as binding targets and in error messages.
const (
	TableHV   = "hv"
	TableHT   = "ht"
	TableSS   = "ss"
	TableSE   = "se"
	TableCTX  = "ctx"
	TableMD   = "md"
	TableBT   = "body"
	TableEXT  = "ext"
	TableTree = "tree"
	TableLT   = "lit"
	TableST   = "sLit"
)

// HTIndex is a record number in the hash table.
type HTIndex uint16

// HTNull names no identifier.
const HTNull HTIndex = 0

// IsNull reports whether i is HTNull.
func (i HTIndex) IsNull() bool { return i == HTNull }

// SEIndex is a word offset in the semantic entry table. ISEIndex (an
// identifier entry), CSEIndex (a constructor) and RecordSEIndex share
// this representation.
type SEIndex uint16

// Well-known semantic entries. The first three records of every se
// table are the nil, mode and any constructors.
const (
	SENull   SEIndex = 0
	TypeTYPE SEIndex = 1
	TypeANY  SEIndex = 2
)

// IsNull reports whether i is SENull.
func (i SEIndex) IsNull() bool { return i == SENull }

// CTXIndex is a word offset in the context table.
type CTXIndex uint16

// CTXNull names no context.
const CTXNull CTXIndex = 0

// IsNull reports whether i is CTXNull.
func (i CTXIndex) IsNull() bool { return i == CTXNull }

// MDIndex is a word offset in the module table.
type MDIndex uint16

const (
	// OwnMdi is the module being described. It resolves to a real record.
	OwnMdi MDIndex = 0
	// MDNull names no module.
	MDNull MDIndex = 0x3FFF
)

// IsNull reports whether i is MDNull. OwnMdi is not null.
func (i MDIndex) IsNull() bool { return i == MDNull }

// IsOwn reports whether i names the module being described.
func (i MDIndex) IsOwn() bool { return i == OwnMdi }

// BTIndex is a word offset in the body table.
type BTIndex uint16

// BTNull names no body.
const BTNull BTIndex = 0x3FFF

// IsNull reports whether i is BTNull.
func (i BTIndex) IsNull() bool { return i == BTNull }

// TreeIndex is a word offset in the parse tree table.
type TreeIndex uint16

// NullIndex names the empty tree.
const NullIndex TreeIndex = 0

// IsNull reports whether i is the empty tree.
func (i TreeIndex) IsNull() bool { return i == NullIndex }

// LTIndex is a word offset in the literal table.
type LTIndex uint16

// LTNull ends a literal hash chain.
const LTNull LTIndex = 0x1FFF

// IsNull reports whether i is LTNull.
func (i LTIndex) IsNull() bool { return i == LTNull }

// STIndex is a word offset in the string literal table.
type STIndex uint16

// STNull names no string literal.
const STNull STIndex = 0x1FFF

// IsNull reports whether i is STNull.
func (i STIndex) IsNull() bool { return i == STNull }

// Sentinels returns the reserved-ordinal predicate of a table.
func Sentinels(tableName string) table.Sentinel {
	switch tableName {
	case TableHT, TableHV:
		return func(o uint16) bool { return HTIndex(o).IsNull() }
	case TableSE:
		return func(o uint16) bool { return SEIndex(o).IsNull() }
	case TableCTX:
		return func(o uint16) bool { return CTXIndex(o).IsNull() }
	case TableMD:
		return func(o uint16) bool { return MDIndex(o).IsNull() }
	case TableBT:
		return func(o uint16) bool { return BTIndex(o).IsNull() }
	case TableTree:
		return func(o uint16) bool { return TreeIndex(o).IsNull() }
	case TableLT:
		return func(o uint16) bool { return LTIndex(o).IsNull() }
	case TableST:
		return func(o uint16) bool { return STIndex(o).IsNull() }
	default:
		return nil
	}
}

func seRef(field string, i SEIndex) table.Ref {
	return table.Ref{Target: TableSE, Ordinal: uint16(i), Field: field}
}

func ctxRef(field string, i CTXIndex) table.Ref {
	return table.Ref{Target: TableCTX, Ordinal: uint16(i), Field: field}
}

func htRef(field string, i HTIndex) table.Ref {
	return table.Ref{Target: TableHT, Ordinal: uint16(i), Field: field}
}

func mdRef(field string, i MDIndex) table.Ref {
	return table.Ref{Target: TableMD, Ordinal: uint16(i), Field: field}
}

func btRef(field string, i BTIndex) table.Ref {
	return table.Ref{Target: TableBT, Ordinal: uint16(i), Field: field}
}

func treeRef(field string, i TreeIndex) table.Ref {
	return table.Ref{Target: TableTree, Ordinal: uint16(i), Field: field}
}

// ordinal formats a raw ordinal for dumps.
func ordinal(name string, v uint16) string {
	return fmt.Sprintf("%s[%d]", name, v)
}

// String formats an ordinal as table[n].
func (i HTIndex) String() string   { return ordinal("ht", uint16(i)) }
func (i SEIndex) String() string   { return ordinal("se", uint16(i)) }
func (i CTXIndex) String() string  { return ordinal("ctx", uint16(i)) }
func (i MDIndex) String() string   { return ordinal("md", uint16(i)) }
func (i BTIndex) String() string   { return ordinal("bt", uint16(i)) }
func (i TreeIndex) String() string { return ordinal("tree", uint16(i)) }
func (i LTIndex) String() string   { return ordinal("lt", uint16(i)) }
func (i STIndex) String() string   { return ordinal("st", uint16(i)) }
