package symtab

import (
	"go.uber.org/zap"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// Graph is a decoded and bound symbol segment. It is immutable once
// Decode returns and safe for concurrent readers.
type Graph struct {
	header *records.Header
	pool   *records.StringPool
	names  []string

	hv   *table.Table[records.HVEntry]
	ht   *table.Table[records.HTRecord]
	md   *table.Table[records.MDRecord]
	ctx  *table.Table[records.ContextRecord]
	se   *table.Table[records.SERecord]
	bt   *table.Table[records.BodyRecord]
	ext  *table.Table[records.ExtRecord]
	tree *table.Table[records.TreeNode]
	lt   *table.Table[records.LTRecord]
	st   *table.Table[records.STRecord]
}

// tableSpec describes how one table is decoded and bound.
type tableSpec struct {
	name  string
	block func(*records.Header) table.Block
	build func(g *Graph, buf *word.Buffer, blk table.Block, b *table.Binder) (int, error)
}

func spec[T any, P interface {
	*T
	table.Referrer
}](name string, block func(*records.Header) table.Block, array bool,
	decode table.Decoder[T], field func(*Graph) **table.Table[T]) tableSpec {
	return tableSpec{
		name:  name,
		block: block,
		build: func(g *Graph, buf *word.Buffer, blk table.Block, b *table.Binder) (int, error) {
			builder := table.Build[T]
			if array {
				builder = table.BuildArray[T]
			}
			t, err := builder(name, buf, blk, decode)
			if err != nil {
				return 0, err
			}
			*field(g) = t
			table.Target(b, t, records.Sentinels(name))
			table.Source[T, P](b, t)
			return t.Len(), nil
		},
	}
}

// tableSpecs lists the tables in decode order. Name strings precede
// every table that refers to them.
var tableSpecs = []tableSpec{
	spec(records.TableHV, func(h *records.Header) table.Block { return h.HV }, true,
		records.DecodeHV, func(g *Graph) **table.Table[records.HVEntry] { return &g.hv }),
	spec(records.TableHT, func(h *records.Header) table.Block { return h.HT }, true,
		records.DecodeHT, func(g *Graph) **table.Table[records.HTRecord] { return &g.ht }),
	spec(records.TableMD, func(h *records.Header) table.Block { return h.MD }, false,
		records.DecodeMD, func(g *Graph) **table.Table[records.MDRecord] { return &g.md }),
	spec(records.TableCTX, func(h *records.Header) table.Block { return h.CTX }, false,
		records.DecodeContext, func(g *Graph) **table.Table[records.ContextRecord] { return &g.ctx }),
	spec(records.TableSE, func(h *records.Header) table.Block { return h.SE }, false,
		records.DecodeSE, func(g *Graph) **table.Table[records.SERecord] { return &g.se }),
	spec(records.TableBT, func(h *records.Header) table.Block { return h.Body }, false,
		records.DecodeBody, func(g *Graph) **table.Table[records.BodyRecord] { return &g.bt }),
	spec(records.TableEXT, func(h *records.Header) table.Block { return h.Ext }, false,
		records.DecodeExt, func(g *Graph) **table.Table[records.ExtRecord] { return &g.ext }),
	spec(records.TableTree, func(h *records.Header) table.Block { return h.Tree }, false,
		records.DecodeTreeNode, func(g *Graph) **table.Table[records.TreeNode] { return &g.tree }),
	spec(records.TableLT, func(h *records.Header) table.Block { return h.Lit }, false,
		records.DecodeLT, func(g *Graph) **table.Table[records.LTRecord] { return &g.lt }),
	spec(records.TableST, func(h *records.Header) table.Block { return h.SLit }, false,
		records.DecodeST, func(g *Graph) **table.Table[records.STRecord] { return &g.st }),
}

// Decode decodes the symbol segment that starts at the first word of
// data. Every table is built before any reference is bound; the graph
// is returned only when every reference resolves.
func Decode(data []byte) (*Graph, error) {
	buf := word.New(data)
	hb, err := buf.Range(0, records.HeaderWords)
	if err != nil {
		return nil, decodeerr.InTable(err, decodeerr.Bounds, "header", -1, 0)
	}
	h, err := records.DecodeHeader(hb)
	if err != nil {
		return nil, decodeerr.InTable(err, decodeerr.Format, "header", -1, hb.Pos())
	}

	g := &Graph{header: h}
	sb, err := buf.Range(h.SS.Offset, h.SS.Size)
	if err != nil {
		return nil, decodeerr.InTable(err, decodeerr.Bounds, records.TableSS, -1, h.SS.Offset)
	}
	if g.pool, err = records.DecodeStringPool(sb); err != nil {
		return nil, err
	}
	Logger().Debug("decoded table",
		zap.String("table", records.TableSS),
		zap.Int("bytes", int(g.pool.Length)),
		zap.Int("words", h.SS.Size))

	b := table.NewBinder()
	for _, ts := range tableSpecs {
		blk := ts.block(h)
		n, err := ts.build(g, buf, blk, b)
		if err != nil {
			return nil, err
		}
		Logger().Debug("decoded table",
			zap.String("table", ts.name),
			zap.Int("records", n),
			zap.Int("words", blk.Size))
	}

	if err := g.sliceNames(); err != nil {
		return nil, err
	}

	b.Refs("header", h.References())
	if err := b.Bind(); err != nil {
		return nil, err
	}
	Logger().Debug("bound segment", zap.Bool("definitions", h.DefinitionsFile))
	return g, nil
}

// sliceNames cuts each hash entry's text out of the string pool. Entry i
// spans from the previous entry's ssIndex to its own.
func (g *Graph) sliceNames() error {
	g.names = make([]string, 0, g.ht.Len())
	var from uint16
	for o, rec := range g.ht.All() {
		s, err := g.pool.Slice(from, rec.SSIndex)
		if err != nil {
			return decodeerr.InTable(err, decodeerr.Bounds, records.TableHT, int(o), -1)
		}
		g.names = append(g.names, s)
		from = rec.SSIndex
	}
	return nil
}

// Header returns the segment header.
func (g *Graph) Header() *records.Header { return g.header }

// Definitions reports whether the segment describes a DEFINITIONS module.
func (g *Graph) Definitions() bool { return g.header.DefinitionsFile }
