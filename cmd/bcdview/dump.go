package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yokwe/mesa-emulator-unix-sub002/symtab"
)

var (
	dumpFormat string
	dumpTables []string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Dump decoded symbol tables",
	Long: `Dump the records of each table of a symbol segment.

Supported formats:
  - text: Human-readable text (default)
  - json: JSON format
  - msgpack: MessagePack binary format`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json, msgpack)")
	dumpCmd.Flags().StringSliceVarP(&dumpTables, "table", "t", nil, "tables to dump (default all)")
}

// TableDump is one table's summary and records.
type TableDump struct {
	symtab.TableInfo `msgpack:",inline"`
	Records          []symtab.Record `json:"records" msgpack:"records"`
}

// SegmentDump is the whole dump of one file.
type SegmentDump struct {
	File   string      `json:"file" msgpack:"file"`
	Format string      `json:"format" msgpack:"format"`
	Tables []TableDump `json:"tables" msgpack:"tables"`
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := symtab.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dump, err := collectDump(f, path, dumpTables)
	if err != nil {
		return err
	}

	switch dumpFormat {
	case "json":
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(dump)
	case "msgpack":
		return msgpack.NewEncoder(output).Encode(dump)
	case "text":
		return dumpText(dump)
	default:
		return fmt.Errorf("unknown format: %s", dumpFormat)
	}
}

func collectDump(f *symtab.File, path string, only []string) (*SegmentDump, error) {
	g := f.Graph()
	want := make(map[string]bool, len(only))
	for _, name := range only {
		want[name] = true
	}

	dump := &SegmentDump{File: path, Format: f.Format().String()}
	for _, ti := range g.Tables() {
		if len(want) > 0 && !want[ti.Name] {
			continue
		}
		delete(want, ti.Name)
		recs, err := g.Dump(ti.Name)
		if err != nil {
			return nil, err
		}
		dump.Tables = append(dump.Tables, TableDump{TableInfo: ti, Records: recs})
	}
	if len(want) > 0 {
		missing := slices.Sorted(maps.Keys(want))
		return nil, fmt.Errorf("unknown tables %v (known: %v)", missing, symtab.TableNames())
	}
	return dump, nil
}

func dumpText(dump *SegmentDump) error {
	fmt.Fprintf(output, "File: %s (%s)\n", dump.File, dump.Format)
	for _, t := range dump.Tables {
		fmt.Fprintln(output)
		fmt.Fprintf(output, "=== %s: offset %d, %d words, %d records ===\n", t.Name, t.Offset, t.Words, t.Records)
		for _, r := range t.Records {
			fmt.Fprintf(output, "%6d  %+v\n", r.Ordinal, r.Value)
		}
	}
	return nil
}
