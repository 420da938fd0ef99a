package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yokwe/mesa-emulator-unix-sub002/listing"
	"github.com/yokwe/mesa-emulator-unix-sub002/symtab"
)

var (
	printIndent   int
	printBits     listing.BitMode
	printVersions bool
	printJobs     int
)

var errorColor = color.New(color.FgRed)

var printCmd = &cobra.Command{
	Use:   "print <file>...",
	Short: "Print declarations as source text",
	Long: `Print the declarations of each file's symbol segment as Mesa-like
source text.

Several files are decoded in parallel and printed in argument order. A
file that fails to decode is reported and does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrint,
}

func init() {
	printCmd.Flags().IntVar(&printIndent, "indent", 2, "spaces per nesting level")
	printCmd.Flags().Var(&printBits, "bits", "field bit positions (auto, always, never)")
	printCmd.Flags().BoolVar(&printVersions, "versions", true, "print version stamp comments")
	printCmd.Flags().IntVarP(&printJobs, "jobs", "j", 0, "files decoded at once (0 = GOMAXPROCS)")
}

// listingOptions starts from the configuration file and applies the flags
// given on the command line.
func listingOptions(cmd *cobra.Command) listing.Options {
	opts := cfg.Listing
	flags := cmd.Flags()
	if flags.Changed("indent") {
		opts.Indent = printIndent
	}
	if flags.Changed("bits") {
		opts.Bits = printBits
	}
	if flags.Changed("versions") {
		opts.Versions = printVersions
	}
	return opts
}

type printResult struct {
	text string
	err  error
}

func runPrint(cmd *cobra.Command, args []string) error {
	opts := listingOptions(cmd)
	jobs := cfg.Batch.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = printJobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each slot is written by exactly one goroutine
	results := make([]printResult, len(args))
	var g errgroup.Group
	g.SetLimit(min(jobs, len(args)))
	for i, path := range args {
		g.Go(func() error {
			results[i].text, results[i].err = printFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, r := range results {
		if r.err != nil {
			failed++
			errorColor.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[i], r.err)
			continue
		}
		if len(args) > 1 {
			fmt.Fprintf(output, "==> %s <==\n", args[i])
		}
		fmt.Fprint(output, r.text)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func printFile(path string, opts listing.Options) (string, error) {
	f, err := symtab.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	if err := listing.PrintModule(&buf, f.Graph(), opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}
