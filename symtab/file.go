package symtab

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/yokwe/mesa-emulator-unix-sub002/bcd"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// Format is the kind of file a graph was decoded from.
type Format uint8

const (
	FormatBCD Format = iota + 1
	FormatSymbols
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatBCD:
		return "bcd"
	case FormatSymbols:
		return "symbols"
	default:
		return "unknown"
	}
}

// File is an opened BCD or standalone symbol segment.
type File struct {
	path    string
	mapping *bcd.Mapping
	format  Format
	bcd     *bcd.File
	graph   *Graph
	offset  int

	mu     sync.Mutex
	closed bool
}

// Open maps the file at path and decodes its symbol segment.
func Open(path string) (*File, error) {
	m, err := bcd.Open(path)
	if err != nil {
		return nil, err
	}
	f, err := FromBytes(m.Bytes())
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.path = path
	f.mapping = m
	return f, nil
}

// FromBytes decodes data, sniffing its first word: a BCD is searched for
// its symbol segment; a symbol segment is decoded directly.
func FromBytes(data []byte) (*File, error) {
	if len(data) < word.Size {
		return nil, decodeerr.InTable(ErrNotSymbols, decodeerr.Format, "header", -1, 0)
	}
	f := &File{}
	switch v := uint16(data[0])<<8 | uint16(data[1]); v {
	case bcd.VersionID:
		b, err := bcd.Parse(data)
		if err != nil {
			return nil, err
		}
		off, seg, err := b.SymbolSegment()
		if err != nil {
			return nil, err
		}
		f.format, f.bcd, f.offset = FormatBCD, b, off
		if f.graph, err = Decode(seg); err != nil {
			return nil, err
		}
	case records.VersionID:
		g, err := Decode(data)
		if err != nil {
			return nil, err
		}
		f.format, f.graph = FormatSymbols, g
	default:
		return nil, &decodeerr.Error{Kind: decodeerr.Format, Table: "header", Ordinal: -1, Offset: 0,
			Detail: fmt.Sprintf("version word %d", v), Cause: ErrNotSymbols}
	}
	Logger().Debug("opened",
		zap.Stringer("format", f.format),
		zap.Int("segmentOffset", f.offset))
	return f, nil
}

// Path returns the path the file was opened from, if any.
func (f *File) Path() string { return f.path }

// Format reports whether the file was a BCD or a bare symbol segment.
func (f *File) Format() Format { return f.format }

// BCD returns the outer BCD, or nil for a bare symbol segment.
func (f *File) BCD() *bcd.File { return f.bcd }

// SegmentOffset returns the word offset of the symbol segment.
func (f *File) SegmentOffset() int { return f.offset }

// Graph returns the decoded symbol graph.
func (f *File) Graph() *Graph { return f.graph }

// Close releases the file mapping. The graph stays usable; the BCD
// tables do not.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	if f.mapping != nil {
		return f.mapping.Close()
	}
	return nil
}
