package symtab

import (
	"fmt"
	"sort"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
)

// TableInfo summarizes one decoded table.
type TableInfo struct {
	Name    string `json:"name" msgpack:"name"`
	Offset  int    `json:"offset" msgpack:"offset"`
	Words   int    `json:"words" msgpack:"words"`
	Records int    `json:"records" msgpack:"records"`
}

// Record is one decoded record with its ordinal, for dumps.
type Record struct {
	Ordinal uint16 `json:"ordinal" msgpack:"ordinal"`
	Value   any    `json:"value" msgpack:"value"`
}

// TableNames lists the tables Dump accepts, in decode order.
func TableNames() []string {
	names := []string{records.TableSS}
	for _, ts := range tableSpecs {
		names = append(names, ts.name)
	}
	return names
}

// Tables summarizes every decoded table in decode order.
func (g *Graph) Tables() []TableInfo {
	out := []TableInfo{{
		Name:    records.TableSS,
		Offset:  g.header.SS.Offset,
		Words:   g.header.SS.Size,
		Records: len(g.names),
	}}
	for _, ts := range tableSpecs {
		blk := ts.block(g.header)
		out = append(out, TableInfo{Name: ts.name, Offset: blk.Offset, Words: blk.Size, Records: g.count(ts.name)})
	}
	return out
}

func (g *Graph) count(name string) int {
	recs, _ := g.Dump(name)
	return len(recs)
}

// Dump returns the records of the named table in table order. The ss
// table dumps the hash entries' names.
func (g *Graph) Dump(name string) ([]Record, error) {
	switch name {
	case records.TableSS:
		out := make([]Record, len(g.names))
		for i, s := range g.names {
			out[i] = Record{Ordinal: uint16(i), Value: s}
		}
		return out, nil
	case records.TableHV:
		return dumpTable(g.hv), nil
	case records.TableHT:
		return dumpTable(g.ht), nil
	case records.TableMD:
		return dumpTable(g.md), nil
	case records.TableCTX:
		return dumpTable(g.ctx), nil
	case records.TableSE:
		return dumpTable(g.se), nil
	case records.TableBT:
		return dumpTable(g.bt), nil
	case records.TableEXT:
		return dumpTable(g.ext), nil
	case records.TableTree:
		return dumpTable(g.tree), nil
	case records.TableLT:
		return dumpTable(g.lt), nil
	case records.TableST:
		return dumpTable(g.st), nil
	default:
		names := TableNames()
		sort.Strings(names)
		return nil, fmt.Errorf("symtab: unknown table %q (have %v)", name, names)
	}
}

func dumpTable[T any](t *table.Table[T]) []Record {
	out := make([]Record, 0, t.Len())
	for o, rec := range t.All() {
		out = append(out, Record{Ordinal: o, Value: rec})
	}
	return out
}
