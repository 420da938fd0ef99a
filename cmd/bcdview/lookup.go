package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
	"github.com/yokwe/mesa-emulator-unix-sub002/listing"
	"github.com/yokwe/mesa-emulator-unix-sub002/symtab"
)

var lookupType bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <file> <name>",
	Short: "Print one top-level declaration",
	Long: `Look up a name in the module's outer context and print its
declaration.

With --type only the declared type is printed.`,
	Args: cobra.ExactArgs(2),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVarP(&lookupType, "type", "t", false, "print only the entry's type")
}

func runLookup(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]

	f, err := symtab.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	g := f.Graph()
	sei, err := g.Lookup(name)
	if errors.Is(err, symtab.ErrEntryNotFound) {
		return fmt.Errorf("no declaration named %q in %s", name, path)
	}
	if err != nil {
		return err
	}

	if !lookupType {
		return listing.PrintEntry(output, g, sei, cfg.Listing)
	}
	id, err := g.Identifier(sei)
	if err != nil {
		return err
	}
	typ := id.IdType
	if id.IsType() {
		typ = records.SEIndex(id.IdInfo)
	}
	s, err := listing.TypeString(g, typ, cfg.Listing)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, s)
	return nil
}
