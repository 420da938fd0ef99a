package bcd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
)

// PageWords is the size of a file page.
const PageWords = 256

// SymbolOffset returns the word offset of the symbol segment. A BCD with
// no modules keeps its symbols one page past the file start; otherwise
// the segment table must hold exactly one symbols segment in the BCD
// itself, whose 1-origin base page gives the offset.
func (f *File) SymbolOffset() (int, error) {
	if f.header.NModules == 0 {
		Logger().Debug("symbol segment", zap.String("source", "no modules"), zap.Int("offset", PageWords))
		return PageWords, nil
	}

	var found []SGRecord
	for _, sg := range f.segments.All() {
		if sg.Class == ClassSymbols && sg.File == FTSelf {
			found = append(found, *sg)
		}
	}
	switch len(found) {
	case 0:
		return 0, &decodeerr.Error{Kind: decodeerr.Format, Table: "sg", Ordinal: -1, Offset: f.header.SG.Offset,
			Detail: "no symbols segment in self", Cause: ErrNoSymbols}
	case 1:
	default:
		return 0, &decodeerr.Error{Kind: decodeerr.Format, Table: "sg", Ordinal: -1, Offset: f.header.SG.Offset,
			Detail: fmt.Sprintf("%d symbols segments in self", len(found))}
	}

	sg := found[0]
	if sg.Base == 0 {
		return 0, &decodeerr.Error{Kind: decodeerr.Format, Table: "sg", Ordinal: -1, Offset: f.header.SG.Offset,
			Detail: "symbols segment at page 0"}
	}
	offset := (int(sg.Base) - 1) * PageWords
	if offset >= len(f.data)/2 {
		return 0, &decodeerr.Error{Kind: decodeerr.Bounds, Table: "sg", Ordinal: -1, Offset: offset,
			Detail: fmt.Sprintf("symbols segment page %d past the end of the file", sg.Base)}
	}
	Logger().Debug("symbol segment", zap.Uint16("base", sg.Base), zap.Int("offset", offset))
	return offset, nil
}

// SymbolSegment returns the word offset of the symbol segment and the
// bytes from there to the end of the file.
func (f *File) SymbolSegment() (offset int, seg []byte, err error) {
	offset, err = f.SymbolOffset()
	if err != nil {
		return 0, nil, err
	}
	return offset, f.data[offset*2:], nil
}
