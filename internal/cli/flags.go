package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqview/pkg/pipeline"
)

// recordFlags are the flags shared by commands that lay out a record.
type recordFlags struct {
	opts    pipeline.Options
	window  string
	output  string
	refresh bool
}

// bindPrepare registers the record display flags.
func (f *recordFlags) bindPrepare(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file (default: derived from the input)")
	fl.StringVarP(&f.window, "window", "w", "", "crop to start:end before layout")
	fl.BoolVar(&f.opts.Circular, "circular", false, "treat the record as circular")
	fl.BoolVar(&f.opts.SplitOverflow, "split", false, "split features overflowing the sequence ends")
	fl.Float64Var(&f.opts.LevelHeight, "level-height", 0, "feature level height (default from the record)")
	fl.Float64Var(&f.opts.LabelsSpacing, "labels-spacing", 0, "label padding in pixels (default from the record)")
	fl.StringVar(&f.opts.Indexing, "indexing", "", "ruler indexing: biopython (0-based) or genbank (1-based)")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
}

// bindLayout registers the label placement flags.
func (f *recordFlags) bindLayout(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&f.opts.Width, "width", pipeline.DefaultWidth, "frame width in pixels")
	fl.Float64Var(&f.opts.CharWidth, "char-width", 0, "character width as a fraction of the font size")
	fl.BoolVar(&f.opts.NoLabels, "no-labels", false, "skip label placement")
}

// options returns the pipeline options for input, with config defaults
// applied to unset flags.
func (c *CLI) options(cmd *cobra.Command, f *recordFlags, input string) (pipeline.Options, error) {
	opts := f.opts
	opts.Input = input
	opts.Refresh = f.refresh
	opts.Logger = c.Logger

	w, err := parseWindow(f.window)
	if err != nil {
		return opts, err
	}
	opts.Window = w

	c.applyConfig(cmd, &opts)
	return opts, nil
}
