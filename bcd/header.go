// Package bcd reads the outer BCD file: its header, name strings, file
// table and segment table, far enough to find the symbol segment.
package bcd

import (
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// VersionID is the versionIdent word of a BCD.
const VersionID = 6103

// HeaderWords is the size of the BCD header.
const HeaderWords = 48

// Header is the BCD header. Table offsets are in words from the start of
// the file.
type Header struct {
	VersionIdent   uint16
	Version        records.Stamp
	Creator        records.Stamp
	SourceFile     FTIndex
	UnpackagedFile FTIndex

	NConfigs uint16
	NModules uint16
	NImports uint16
	NExports uint16

	NPages        uint8
	Definitions   bool
	Repackaged    bool
	TypeExported  bool
	TableCompiled bool
	SpareFlags    uint8

	FirstDummy uint16
	NDummies   uint16

	SS  table.Block // name strings
	CT  table.Block // configurations
	MT  table.Block // modules
	IMP table.Block // imports
	EXP table.Block // exports
	EV  table.Block // export vectors
	SG  table.Block // segments
	FT  table.Block // files
	SP  table.Block // spaces
	NT  table.Block // instance names
	TYP table.Block // exported types
	TM  table.Block // type map
	FP  table.Block // frame packs
	LF  table.Block // link fragments
	AT  table.Block // atoms
	AP  table.Block // atom printnames
}

// Tables lists the header's table descriptors with their names.
func (h *Header) Tables() []records.NamedBlock {
	return []records.NamedBlock{
		{Name: "ss", Block: h.SS}, {Name: "ct", Block: h.CT}, {Name: "mt", Block: h.MT},
		{Name: "imp", Block: h.IMP}, {Name: "exp", Block: h.EXP}, {Name: "ev", Block: h.EV},
		{Name: "sg", Block: h.SG}, {Name: "ft", Block: h.FT}, {Name: "sp", Block: h.SP},
		{Name: "nt", Block: h.NT}, {Name: "typ", Block: h.TYP}, {Name: "tm", Block: h.TM},
		{Name: "fp", Block: h.FP}, {Name: "lf", Block: h.LF}, {Name: "at", Block: h.AT},
		{Name: "ap", Block: h.AP},
	}
}

// DecodeHeader reads a BCD header and checks its version.
func DecodeHeader(b *word.Buffer) (*Header, error) {
	h := &Header{}
	var err error
	if h.VersionIdent, err = b.Get16(); err != nil {
		return nil, err
	}
	if h.VersionIdent != VersionID {
		return nil, decodeerr.Formatf("BCD version %d, want %d", h.VersionIdent, VersionID)
	}
	if h.Version, err = records.DecodeStamp(b); err != nil {
		return nil, err
	}
	if h.Creator, err = records.DecodeStamp(b); err != nil {
		return nil, err
	}

	ws, err := b.Words(9)
	if err != nil {
		return nil, err
	}
	h.SourceFile = FTIndex(ws[0])
	h.UnpackagedFile = FTIndex(ws[1])
	h.NConfigs, h.NModules, h.NImports, h.NExports = ws[2], ws[3], ws[4], ws[5]
	h.NPages = uint8(word.Bits(ws[6], 0, 7))
	h.Definitions = word.Bit(ws[6], 8)
	h.Repackaged = word.Bit(ws[6], 9)
	h.TypeExported = word.Bit(ws[6], 10)
	h.TableCompiled = word.Bit(ws[6], 11)
	h.SpareFlags = uint8(word.Bits(ws[6], 12, 15))
	h.FirstDummy, h.NDummies = ws[7], ws[8]

	blocks := []*table.Block{
		&h.SS, &h.CT, &h.MT, &h.IMP, &h.EXP, &h.EV, &h.SG, &h.FT,
		&h.SP, &h.NT, &h.TYP, &h.TM, &h.FP, &h.LF, &h.AT, &h.AP,
	}
	for _, blk := range blocks {
		pair, err := b.Words(2)
		if err != nil {
			return nil, err
		}
		*blk = table.Block{Offset: int(pair[0]), Size: int(pair[1])}
	}
	return h, nil
}
