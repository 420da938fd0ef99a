package table

import (
	"fmt"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
)

// Ref is one relative index held by a record: the table it points into,
// the raw ordinal, and the field it was read from.
type Ref struct {
	Target  string
	Ordinal uint16
	Field   string
}

// Referrer is implemented by records that hold relative indexes.
type Referrer interface {
	References() []Ref
}

type target interface {
	Name() string
	Has(ordinal uint16) bool
	IsSentinel(ordinal uint16) bool
	seal()
}

type source struct {
	name string
	each func(yield func(ordinal uint16, refs []Ref) error) error
}

// Binder checks every relative index recorded during one decode against
// the tables they point into, then seals those tables for Resolve. A
// Binder belongs to a single decode and is discarded afterwards.
type Binder struct {
	targets map[string]target
	sources []source
	bound   bool
}

// NewBinder returns an empty Binder.
func NewBinder() *Binder {
	return &Binder{targets: make(map[string]target)}
}

// Target registers t as a table that references may point into.
func Target[T any](b *Binder, t *Table[T], sentinel Sentinel) {
	t.sentinel = sentinel
	b.targets[t.name] = t
}

// Source registers the records of t as holders of references.
func Source[T any, P interface {
	*T
	Referrer
}](b *Binder, t *Table[T]) {
	b.sources = append(b.sources, source{
		name: t.name,
		each: func(yield func(uint16, []Ref) error) error {
			for o, rec := range t.All() {
				if err := yield(o, P(rec).References()); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

// Refs registers references that live outside any table, such as the
// segment header.
func (b *Binder) Refs(name string, refs []Ref) {
	b.sources = append(b.sources, source{
		name: name,
		each: func(yield func(uint16, []Ref) error) error {
			return yield(0, refs)
		},
	})
}

// Bind verifies every registered reference. A reference must either be
// a sentinel of its target or name a record present in it. On success
// all targets are sealed.
func (b *Binder) Bind() error {
	if b.bound {
		return nil
	}
	for _, src := range b.sources {
		err := src.each(func(ordinal uint16, refs []Ref) error {
			for _, r := range refs {
				if err := b.check(r); err != nil {
					return &decodeerr.Error{
						Kind:    decodeerr.Reference,
						Table:   src.name,
						Ordinal: int(ordinal),
						Offset:  -1,
						Detail:  fmt.Sprintf("field %s: %v", r.Field, err),
					}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	for _, t := range b.targets {
		t.seal()
	}
	b.bound = true
	return nil
}

// Bound reports whether Bind has succeeded.
func (b *Binder) Bound() bool { return b.bound }

func (b *Binder) check(r Ref) error {
	t, ok := b.targets[r.Target]
	if !ok {
		return fmt.Errorf("no table %q registered", r.Target)
	}
	if t.IsSentinel(r.Ordinal) || t.Has(r.Ordinal) {
		return nil
	}
	return fmt.Errorf("%s ordinal %d names no record", r.Target, r.Ordinal)
}
