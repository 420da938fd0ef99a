package records

import (
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// VersionID is the versionIdent word of a symbol segment.
const VersionID = 8140

// HeaderWords is the size of the segment header.
const HeaderWords = 47

// Header is the symbol segment header: stamps, the three root contexts
// and the block descriptors of every table.
type Header struct {
	VersionIdent  uint16
	Version       Stamp
	Creator       Stamp
	SourceVersion Stamp

	DefinitionsFile bool
	DirectoryCtx    CTXIndex
	ImportCtx       CTXIndex
	OuterCtx        CTXIndex

	HV        table.Block
	HT        table.Block
	SS        table.Block
	OuterPack table.Block
	InnerPack table.Block
	Constants table.Block
	SE        table.Block
	CTX       table.Block
	MD        table.Block
	Body      table.Block
	Ext       table.Block
	Tree      table.Block
	Lit       table.Block
	SLit      table.Block
	EPMap     table.Block
	Spare     table.Block

	FGRelPgBase uint16
	FGPgCount   uint16

	// SpareBits holds the unused high bits of words 10-12.
	SpareBits [3]uint16
}

// NamedBlock pairs a block descriptor with its table name.
type NamedBlock struct {
	Name  string
	Block table.Block
}

// Blocks lists every block descriptor in header order.
func (h *Header) Blocks() []NamedBlock {
	return []NamedBlock{
		{TableHV, h.HV}, {TableHT, h.HT}, {TableSS, h.SS},
		{"outerPack", h.OuterPack}, {"innerPack", h.InnerPack}, {"constants", h.Constants},
		{TableSE, h.SE}, {TableCTX, h.CTX}, {TableMD, h.MD}, {TableBT, h.Body},
		{TableEXT, h.Ext}, {TableTree, h.Tree}, {TableLT, h.Lit}, {TableST, h.SLit},
		{"epMap", h.EPMap}, {"spare", h.Spare},
	}
}

// References lists the root contexts.
func (h *Header) References() []table.Ref {
	return []table.Ref{
		ctxRef("directoryCtx", h.DirectoryCtx),
		ctxRef("importCtx", h.ImportCtx),
		ctxRef("outerCtx", h.OuterCtx),
	}
}

// DecodeHeader reads the header at the cursor and checks its version.
func DecodeHeader(b *word.Buffer) (*Header, error) {
	h := &Header{}
	var err error
	if h.VersionIdent, err = b.Get16(); err != nil {
		return nil, err
	}
	if h.VersionIdent != VersionID {
		return nil, decodeerr.Formatf("symbol segment version %d, want %d", h.VersionIdent, VersionID)
	}
	for _, s := range []*Stamp{&h.Version, &h.Creator, &h.SourceVersion} {
		if *s, err = DecodeStamp(b); err != nil {
			return nil, err
		}
	}

	ws, err := b.Words(3)
	if err != nil {
		return nil, err
	}
	h.DefinitionsFile = word.Bit(ws[0], 0)
	h.DirectoryCtx = CTXIndex(word.Bits(ws[0], 5, 15))
	h.ImportCtx = CTXIndex(word.Bits(ws[1], 5, 15))
	h.OuterCtx = CTXIndex(word.Bits(ws[2], 5, 15))
	h.SpareBits = [3]uint16{word.Bits(ws[0], 1, 4), word.Bits(ws[1], 0, 4), word.Bits(ws[2], 0, 4)}

	blocks := []*table.Block{
		&h.HV, &h.HT, &h.SS, &h.OuterPack, &h.InnerPack, &h.Constants,
		&h.SE, &h.CTX, &h.MD, &h.Body, &h.Ext, &h.Tree, &h.Lit, &h.SLit,
		&h.EPMap, &h.Spare,
	}
	for _, blk := range blocks {
		off, err := b.Get16()
		if err != nil {
			return nil, err
		}
		size, err := b.Get16()
		if err != nil {
			return nil, err
		}
		*blk = table.Block{Offset: int(off), Size: int(size)}
	}

	if h.FGRelPgBase, err = b.Get16(); err != nil {
		return nil, err
	}
	if h.FGPgCount, err = b.Get16(); err != nil {
		return nil, err
	}
	return h, nil
}
