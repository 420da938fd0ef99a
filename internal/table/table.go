// Package table builds the ordinal-addressed tables of a symbol segment
// and binds the relative indexes that records hold into them.
package table

import (
	"errors"
	"fmt"
	"iter"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
)

// Errors returned by Table.
var (
	// ErrUnbound is returned when a table is queried before binding.
	ErrUnbound = errors.New("table: unbound index")
)

// Block locates a table within the segment, in words.
type Block struct {
	Offset int
	Size   int
}

// End returns one past the last word of the block.
func (b Block) End() int { return b.Offset + b.Size }

// String formats the block as [offset+size] in hex.
func (b Block) String() string {
	return fmt.Sprintf("[0x%x+0x%x]", b.Offset, b.Size)
}

// Sentinel reports whether an ordinal is a reserved value that never
// resolves to a record (null, self).
type Sentinel func(ordinal uint16) bool

// Table holds the records of one block keyed by ordinal, in the order
// they appear in the block.
type Table[T any] struct {
	name     string
	block    Block
	order    []uint16
	records  map[uint16]*T
	index    map[uint16]int
	sentinel Sentinel
	sealed   bool
}

func newTable[T any](name string, block Block) *Table[T] {
	return &Table[T]{
		name:    name,
		block:   block,
		records: make(map[uint16]*T),
		index:   make(map[uint16]int),
	}
}

func (t *Table[T]) add(ordinal uint16, rec *T) {
	t.index[ordinal] = len(t.order)
	t.order = append(t.order, ordinal)
	t.records[ordinal] = rec
}

// Name returns the table name used in errors.
func (t *Table[T]) Name() string { return t.name }

// Block returns where the table was decoded from.
func (t *Table[T]) Block() Block { return t.block }

// Len returns the number of records.
func (t *Table[T]) Len() int { return len(t.order) }

// Has reports whether a record starts at ordinal.
func (t *Table[T]) Has(ordinal uint16) bool {
	_, ok := t.records[ordinal]
	return ok
}

// IsSentinel reports whether ordinal is reserved for this table.
func (t *Table[T]) IsSentinel(ordinal uint16) bool {
	return t.sentinel != nil && t.sentinel(ordinal)
}

// Resolve returns the record at ordinal. It fails with ErrUnbound until
// the table has been sealed by a Binder, and with a reference error for
// sentinels and ordinals that name no record.
func (t *Table[T]) Resolve(ordinal uint16) (*T, error) {
	if !t.sealed {
		return nil, fmt.Errorf("%w: %s ordinal %d", ErrUnbound, t.name, ordinal)
	}
	if t.IsSentinel(ordinal) {
		return nil, &decodeerr.Error{Kind: decodeerr.Reference, Table: t.name, Ordinal: int(ordinal), Offset: -1,
			Detail: "reserved ordinal does not resolve"}
	}
	rec, ok := t.records[ordinal]
	if !ok {
		return nil, &decodeerr.Error{Kind: decodeerr.Reference, Table: t.name, Ordinal: int(ordinal), Offset: -1,
			Detail: "no record at ordinal"}
	}
	return rec, nil
}

// Next returns the ordinal of the record following ordinal in table order.
func (t *Table[T]) Next(ordinal uint16) (uint16, bool) {
	i, ok := t.index[ordinal]
	if !ok || i+1 >= len(t.order) {
		return 0, false
	}
	return t.order[i+1], true
}

// Ordinals returns the record ordinals in table order.
func (t *Table[T]) Ordinals() []uint16 {
	return append([]uint16(nil), t.order...)
}

// All iterates the records in table order.
func (t *Table[T]) All() iter.Seq2[uint16, *T] {
	return func(yield func(uint16, *T) bool) {
		for _, o := range t.order {
			if !yield(o, t.records[o]) {
				return
			}
		}
	}
}

func (t *Table[T]) seal() { t.sealed = true }
