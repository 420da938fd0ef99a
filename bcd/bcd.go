package bcd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// File is a decoded BCD: the header plus the tables needed to name files
// and locate segments. It keeps no reference to the mapping it came from
// beyond the byte slice it was parsed from.
type File struct {
	data     []byte
	header   *Header
	names    records.StringBody
	files    *table.Table[FTRecord]
	segments *table.Table[SGRecord]
}

// IsBCD reports whether data starts with a BCD version word.
func IsBCD(data []byte) bool {
	return len(data) >= word.Size && uint16(data[0])<<8|uint16(data[1]) == VersionID
}

// Parse decodes the BCD header, name strings, file table and segment
// table of data.
func Parse(data []byte) (*File, error) {
	if !IsBCD(data) {
		return nil, ErrNotBCD
	}
	buf := word.New(data)
	hb, err := buf.Range(0, HeaderWords)
	if err != nil {
		return nil, decodeerr.InTable(err, decodeerr.Bounds, "bcd header", -1, 0)
	}
	h, err := DecodeHeader(hb)
	if err != nil {
		return nil, decodeerr.InTable(err, decodeerr.Format, "bcd header", -1, hb.Pos())
	}

	f := &File{data: data, header: h}
	if h.SS.Size > 0 {
		sb, err := buf.Range(h.SS.Offset, h.SS.Size)
		if err != nil {
			return nil, decodeerr.InTable(err, decodeerr.Bounds, "ss", -1, h.SS.Offset)
		}
		if f.names, err = records.DecodeStringBody(sb); err != nil {
			return nil, decodeerr.InTable(err, decodeerr.Format, "ss", -1, sb.Pos())
		}
	}
	if f.files, err = table.Build("ft", buf, h.FT, DecodeFT); err != nil {
		return nil, err
	}
	if f.segments, err = table.Build("sg", buf, h.SG, DecodeSG); err != nil {
		return nil, err
	}

	b := table.NewBinder()
	table.Target(b, f.files, isReservedFile)
	table.Source(b, f.segments)
	if err := b.Bind(); err != nil {
		return nil, err
	}

	Logger().Debug("parsed bcd",
		zap.Uint16("modules", h.NModules),
		zap.Int("files", f.files.Len()),
		zap.Int("segments", f.segments.Len()))
	return f, nil
}

// Header returns the BCD header.
func (f *File) Header() *Header { return f.header }

// Data returns the bytes the file was parsed from.
func (f *File) Data() []byte { return f.data }

// Name returns the string a NameRecord points at.
func (f *File) Name(n NameRecord) (string, error) {
	return nameAt(&f.names, n)
}

// FileName returns the name of a file table entry. FTSelf is the BCD
// itself and FTNull has no name.
func (f *File) FileName(fti FTIndex) (string, error) {
	switch fti {
	case FTNull:
		return "", nil
	case FTSelf:
		return "(self)", nil
	}
	rec, err := f.files.Resolve(uint16(fti))
	if err != nil {
		return "", err
	}
	return f.Name(rec.Name)
}

// Files returns the file table in table order.
func (f *File) Files() []FileEntry {
	out := make([]FileEntry, 0, f.files.Len())
	for o, rec := range f.files.All() {
		out = append(out, FileEntry{Index: FTIndex(o), Record: *rec})
	}
	return out
}

// Segments returns the segment table in table order.
func (f *File) Segments() []SGRecord {
	out := make([]SGRecord, 0, f.segments.Len())
	for _, rec := range f.segments.All() {
		out = append(out, *rec)
	}
	return out
}

// FileEntry is a file table record with its index.
type FileEntry struct {
	Index  FTIndex
	Record FTRecord
}

// String formats the entry as name and version stamp.
func (e FileEntry) String() string {
	return fmt.Sprintf("%s name=%d version=%s", e.Index, e.Record.Name, e.Record.Version)
}
