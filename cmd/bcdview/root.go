package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yokwe/mesa-emulator-unix-sub002/bcd"
	"github.com/yokwe/mesa-emulator-unix-sub002/symtab"
)

var (
	outputFile string
	configFile string
	verbose    bool
	output     io.Writer
	cfg        config
)

var rootCmd = &cobra.Command{
	Use:   "bcdview",
	Short: "Mesa BCD and symbol segment viewer",
	Long: `bcdview is a command-line tool for viewing the symbol tables of
Mesa BCD files and standalone symbol segments.

It can print a module's declarations as source text, and dump the
decoded tables, bodies and headers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = loadConfig(configFile); err != nil {
			return err
		}
		if verbose {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			symtab.SetLogger(logger)
			bcd.SetLogger(logger)
		}
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
		symtab.Logger().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "read listing and batch settings from a TOML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decoding progress to stderr")

	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(bodiesCmd)
}
