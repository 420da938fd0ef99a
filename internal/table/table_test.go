package table

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// node is a variable length test record: a word holding the count of
// following words, each a reference into the "node" table.
type node struct {
	Links []uint16
}

func (n *node) References() []Ref {
	refs := make([]Ref, len(n.Links))
	for i, l := range n.Links {
		refs[i] = Ref{Target: "node", Ordinal: l, Field: "link"}
	}
	return refs
}

func decodeNode(b *word.Buffer) (node, error) {
	n, err := b.Get16()
	if err != nil {
		return node{}, err
	}
	links, err := b.Words(int(n))
	if err != nil {
		return node{}, err
	}
	return node{Links: links}, nil
}

func wordsToBytes(ws ...uint16) []byte {
	out := make([]byte, 0, 2*len(ws))
	for _, w := range ws {
		out = append(out, byte(w>>8), byte(w))
	}
	return out
}

func TestBuildOrdinalsAreWordOffsets(t *testing.T) {
	// two padding words, then records at offsets 0, 2 and 5 of the block
	buf := word.New(wordsToBytes(0xdead, 0xbeef, 1, 0, 2, 0, 2, 0))
	tbl, err := Build("node", buf, Block{Offset: 2, Size: 6}, decodeNode)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if diff := cmp.Diff([]uint16{0, 2, 5}, tbl.Ordinals()); diff != "" {
		t.Errorf("ordinals mismatch (-want +got):\n%s", diff)
	}
	if next, ok := tbl.Next(2); !ok || next != 5 {
		t.Errorf("Next(2) = %d, %v", next, ok)
	}
	if _, ok := tbl.Next(5); ok {
		t.Errorf("Next(last) reported a record")
	}
}

func TestBuildBoundary(t *testing.T) {
	data := wordsToBytes(1, 0, 2, 0, 0, 9)
	tests := []struct {
		name  string
		block Block
		ok    bool
	}{
		{"exact", Block{0, 5}, true},
		{"overshoot", Block{0, 4}, false},
		{"empty", Block{0, 0}, true},
		{"beyond buffer", Block{4, 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build("node", word.New(data), tt.block, decodeNode)
			if tt.ok && err != nil {
				t.Fatalf("Build: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("Build succeeded, want error")
				}
				var de *decodeerr.Error
				if !errors.As(err, &de) || de.Table != "node" {
					t.Errorf("error %v carries no table name", err)
				}
			}
		})
	}

	_, err := Build("node", word.New(data), Block{0, 4}, decodeNode)
	if !errors.Is(err, decodeerr.ErrFormat) {
		t.Errorf("overshoot = %v, want format error", err)
	}
}

func TestBuildArray(t *testing.T) {
	tbl, err := BuildArray("hv", word.New(wordsToBytes(7, 8, 9)), Block{0, 3}, func(b *word.Buffer) (uint16, error) {
		return b.Get16()
	})
	if err != nil {
		t.Fatalf("BuildArray: %v", err)
	}
	if diff := cmp.Diff([]uint16{0, 1, 2}, tbl.Ordinals()); diff != "" {
		t.Errorf("ordinals mismatch (-want +got):\n%s", diff)
	}
}

func TestBindTotality(t *testing.T) {
	isNull := func(o uint16) bool { return o == 0xffff }

	t.Run("all references resolve", func(t *testing.T) {
		// record 0 -> 2, record 2 -> 0 and null
		buf := word.New(wordsToBytes(1, 2, 2, 0, 0xffff))
		tbl, err := Build("node", buf, Block{0, 5}, decodeNode)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if _, err := tbl.Resolve(0); !errors.Is(err, ErrUnbound) {
			t.Errorf("Resolve before Bind = %v, want ErrUnbound", err)
		}
		b := NewBinder()
		Target(b, tbl, isNull)
		Source(b, tbl)
		if err := b.Bind(); err != nil {
			t.Fatalf("Bind: %v", err)
		}
		rec, err := tbl.Resolve(2)
		if err != nil {
			t.Fatalf("Resolve(2): %v", err)
		}
		if diff := cmp.Diff([]uint16{0, 0xffff}, rec.Links); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
		if _, err := tbl.Resolve(0xffff); !errors.Is(err, decodeerr.ErrReference) {
			t.Errorf("Resolve(sentinel) = %v", err)
		}
		if _, err := tbl.Resolve(1); !errors.Is(err, decodeerr.ErrReference) {
			t.Errorf("Resolve(mid-record) = %v", err)
		}
	})

	t.Run("dangling ordinal", func(t *testing.T) {
		// record 0 points at word 1, which is inside record 0
		buf := word.New(wordsToBytes(1, 1))
		tbl, err := Build("node", buf, Block{0, 2}, decodeNode)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		b := NewBinder()
		Target(b, tbl, isNull)
		Source(b, tbl)
		err = b.Bind()
		if !errors.Is(err, decodeerr.ErrReference) {
			t.Fatalf("Bind = %v, want reference error", err)
		}
		if b.Bound() {
			t.Errorf("Bound() after failure")
		}
		if _, err := tbl.Resolve(0); !errors.Is(err, ErrUnbound) {
			t.Errorf("table sealed after failed bind: %v", err)
		}
	})

	t.Run("header references", func(t *testing.T) {
		tbl, _ := Build("node", word.New(wordsToBytes(0)), Block{0, 1}, decodeNode)
		b := NewBinder()
		Target(b, tbl, isNull)
		b.Refs("header", []Ref{{Target: "node", Ordinal: 3, Field: "outerCtx"}})
		err := b.Bind()
		var de *decodeerr.Error
		if !errors.As(err, &de) || de.Table != "header" {
			t.Errorf("Bind = %v, want error naming header", err)
		}
	})
}
