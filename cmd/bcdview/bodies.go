package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
	"github.com/yokwe/mesa-emulator-unix-sub002/symtab"
)

var bodiesCmd = &cobra.Command{
	Use:   "bodies <file>",
	Short: "Display the body tree",
	Long: `Display the procedures and nested blocks of a module as a tree, with
their nesting, frame size and local context.`,
	Args: cobra.ExactArgs(1),
	RunE: runBodies,
}

func runBodies(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := symtab.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	g := f.Graph()
	roots, err := g.RootBodies()
	if err != nil {
		return err
	}
	for _, bti := range roots {
		if err := printBody(g, bti, 0); err != nil {
			return err
		}
	}
	return nil
}

func printBody(g *symtab.Graph, bti records.BTIndex, depth int) error {
	if depth > len(g.Bodies()) {
		return fmt.Errorf("body %s nests deeper than the body table", bti)
	}
	b, err := g.Body(bti)
	if err != nil {
		return err
	}
	desc, err := describeBody(g, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "%s%s level %d ctx %s %s\n", strings.Repeat("  ", depth), bti, b.Level, b.LocalCtx, desc)

	kids, err := g.BodyChildren(bti)
	if err != nil {
		return err
	}
	for _, k := range kids {
		if err := printBody(g, k, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func describeBody(g *symtab.Graph, b *records.BodyRecord) (string, error) {
	var parts []string
	switch k := b.Kind.(type) {
	case *records.CallableBody:
		name := "?"
		if !k.ID.IsNull() {
			n, err := g.Name(k.ID)
			if err != nil {
				return "", err
			}
			name = n
		}
		parts = append(parts, "procedure "+name)
		switch n := k.Nesting.(type) {
		case records.OuterNesting:
			parts = append(parts, "outer")
		case *records.InnerNesting:
			parts = append(parts, fmt.Sprintf("inner frame+%d", n.FrameOffset))
		case *records.CatchNesting:
			parts = append(parts, fmt.Sprintf("catch %d", n.Index))
		}
		if k.Inline {
			parts = append(parts, "inline")
		}
		if k.Entry {
			parts = append(parts, fmt.Sprintf("entry %d", k.EntryIndex))
		}
	case *records.OtherBody:
		parts = append(parts, fmt.Sprintf("block +%d", k.RelOffset))
	}
	switch info := b.Info.(type) {
	case *records.InternalBody:
		parts = append(parts, fmt.Sprintf("frame %d", info.FrameSize))
	case *records.ExternalBody:
		parts = append(parts, fmt.Sprintf("external %d bytes", info.Bytes))
	}
	return strings.Join(parts, ", "), nil
}
