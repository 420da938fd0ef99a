package table

import (
	"fortio.org/safecast"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// Decoder reads one record at the cursor.
type Decoder[T any] func(b *word.Buffer) (T, error)

// Build decodes consecutive records filling block. Each record's ordinal
// is its word offset from the block start. The last record must end
// exactly at the block end.
func Build[T any](name string, buf *word.Buffer, block Block, decode Decoder[T]) (*Table[T], error) {
	return build(name, buf, block, decode, func(b *word.Buffer, _ int) (uint16, error) {
		return b.Relative()
	})
}

// BuildArray decodes consecutive records filling block, numbering them
// 0, 1, 2 ... in order.
func BuildArray[T any](name string, buf *word.Buffer, block Block, decode Decoder[T]) (*Table[T], error) {
	return build(name, buf, block, decode, func(_ *word.Buffer, n int) (uint16, error) {
		return safecast.Conv[uint16](n)
	})
}

func build[T any](name string, buf *word.Buffer, block Block, decode Decoder[T],
	ordinalOf func(*word.Buffer, int) (uint16, error)) (*Table[T], error) {
	sub, err := buf.Range(block.Offset, block.Size)
	if err != nil {
		return nil, decodeerr.InTable(err, decodeerr.Bounds, name, -1, block.Offset)
	}

	t := newTable[T](name, block)
	for n := 0; sub.Remaining() > 0; n++ {
		at := sub.Pos()
		ordinal, err := ordinalOf(sub, n)
		if err != nil {
			return nil, decodeerr.InTable(err, decodeerr.Bounds, name, n, at)
		}
		rec, err := decode(sub)
		if err != nil {
			if decodeerr.KindOf(err) == decodeerr.Bounds {
				err = &decodeerr.Error{Kind: decodeerr.Format, Ordinal: int(ordinal), Offset: at,
					Detail: "record crosses the table boundary", Cause: err}
			}
			return nil, decodeerr.InTable(err, decodeerr.Format, name, int(ordinal), at)
		}
		if sub.Pos() == at {
			return nil, &decodeerr.Error{Kind: decodeerr.Format, Table: name, Ordinal: int(ordinal), Offset: at,
				Detail: "decoder consumed no words"}
		}
		t.add(ordinal, &rec)
	}
	if sub.Pos() != block.End() {
		return nil, &decodeerr.Error{Kind: decodeerr.Format, Table: name, Ordinal: -1, Offset: sub.Pos(),
			Detail: "decoding did not land on the table boundary"}
	}
	return t, nil
}
