package records

import (
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// MDRecord describes a module whose symbols were referenced. The record
// at OwnMdi describes the module itself.
type MDRecord struct {
	Stamp         Stamp
	ModuleID      HTIndex
	FileID        HTIndex
	Shared        bool
	Exported      bool
	Ctx           CTXIndex
	DefaultImport CTXIndex
	File          uint16
	Spare         [4]uint16
}

// DecodeMD reads a module record.
func DecodeMD(b *word.Buffer) (MDRecord, error) {
	stamp, err := DecodeStamp(b)
	if err != nil {
		return MDRecord{}, err
	}
	ws, err := b.Words(5)
	if err != nil {
		return MDRecord{}, err
	}
	return MDRecord{
		Stamp:         stamp,
		ModuleID:      HTIndex(word.Bits(ws[0], 3, 15)),
		FileID:        HTIndex(word.Bits(ws[1], 3, 15)),
		Shared:        word.Bit(ws[2], 0),
		Exported:      word.Bit(ws[2], 1),
		Ctx:           CTXIndex(word.Bits(ws[2], 2, 12)),
		DefaultImport: CTXIndex(word.Bits(ws[3], 5, 15)),
		File:          ws[4],
		Spare: [4]uint16{
			word.Bits(ws[0], 0, 2), word.Bits(ws[1], 0, 2),
			word.Bits(ws[2], 13, 15), word.Bits(ws[3], 0, 4),
		},
	}, nil
}

// References lists the names and contexts of the module.
func (r *MDRecord) References() []table.Ref {
	return []table.Ref{
		htRef("moduleId", r.ModuleID),
		htRef("fileId", r.FileID),
		ctxRef("ctx", r.Ctx),
		ctxRef("defaultImport", r.DefaultImport),
	}
}
