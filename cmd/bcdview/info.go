package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yokwe/mesa-emulator-unix-sub002/bcd"
	"github.com/yokwe/mesa-emulator-unix-sub002/symtab"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Display file and symbol segment information",
	Long: `Display the format, version stamps, root contexts and table sizes of
a symbol segment, and the file and segment tables of an enclosing BCD.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := symtab.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	g := f.Graph()
	h := g.Header()
	fmt.Fprintf(output, "File: %s\n", path)
	fmt.Fprintf(output, "Format: %s\n", f.Format())
	fmt.Fprintf(output, "Segment Offset: %d words\n", f.SegmentOffset())
	if name, err := g.ModuleName(0); err == nil {
		fmt.Fprintf(output, "Module: %s\n", name)
	}
	fmt.Fprintf(output, "Version: %s\n", h.Version)
	fmt.Fprintf(output, "Creator: %s\n", h.Creator)
	fmt.Fprintf(output, "Source: %s\n", h.SourceVersion)
	fmt.Fprintf(output, "Definitions: %t\n", h.DefinitionsFile)
	fmt.Fprintf(output, "Directory: %s  Imports: %s  Outer: %s\n", h.DirectoryCtx, h.ImportCtx, h.OuterCtx)

	fmt.Fprintln(output, "Tables:")
	for _, ti := range g.Tables() {
		fmt.Fprintf(output, "  %-6s offset %6d  words %6d  records %6d\n", ti.Name, ti.Offset, ti.Words, ti.Records)
	}

	if b := f.BCD(); b != nil {
		printBCD(b)
	}
	return nil
}

func printBCD(b *bcd.File) {
	bh := b.Header()
	fmt.Fprintf(output, "BCD Version: %s\n", bh.Version)
	fmt.Fprintf(output, "BCD Creator: %s\n", bh.Creator)
	fmt.Fprintf(output, "Modules: %d  Configs: %d  Imports: %d  Exports: %d\n",
		bh.NModules, bh.NConfigs, bh.NImports, bh.NExports)

	fmt.Fprintln(output, "Files:")
	for _, e := range b.Files() {
		name, err := b.Name(e.Record.Name)
		if err != nil {
			name = fmt.Sprintf("<%v>", err)
		}
		fmt.Fprintf(output, "  %-8s %-24s %s\n", e.Index, name, e.Record.Version)
	}

	fmt.Fprintln(output, "Segments:")
	for _, sg := range b.Segments() {
		name, err := b.FileName(sg.File)
		if err != nil {
			name = fmt.Sprintf("<%v>", err)
		}
		fmt.Fprintf(output, "  %-8s base %5d  pages %3d+%-2d  %s\n", sg.Class, sg.Base, sg.Pages, sg.ExtraPages, name)
	}
}
