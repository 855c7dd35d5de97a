package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	seqio "github.com/matzehuels/seqview/pkg/io"
	"github.com/matzehuels/seqview/pkg/record"
)

// cropCommand creates the crop command, which writes a record cropped to a
// window.
func (c *CLI) cropCommand() *cobra.Command {
	var window, output string

	cmd := &cobra.Command{
		Use:   "crop [record] --window start:end",
		Short: "Crop a record to a window",
		Long: `Crop a record to a window.

Features outside the window are dropped and features cut by it are marked
open on the cut side. The window indexes the record's own sequence; the
cropped record starts at the window start. The output format follows the
output extension (.json or .toml).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := parseWindow(window)
			if err != nil {
				return err
			}
			if w == nil {
				return fmt.Errorf("--window is required")
			}
			return c.editRecord(args[0], output, "crop", func(rec *record.Record) (*record.Record, error) {
				return rec.Crop(*w)
			})
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "", "window start:end")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.crop.<ext>)")
	return cmd
}

// splitCommand creates the split command, which splits features running
// past either end of a circular sequence.
func (c *CLI) splitCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "split [record]",
		Short: "Split features overflowing the sequence ends",
		Long: `Split features overflowing the sequence ends.

A feature starting before the sequence start or ending after the sequence end
is cut at the origin into two fragments, and the overflowing fragment is
moved to the other end. Both fragments keep the label and style.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editRecord(args[0], output, "split", func(rec *record.Record) (*record.Record, error) {
				out := rec.Clone()
				out.SplitOverflowingFeaturesCircularly()
				return out, nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.split.<ext>)")
	return cmd
}

// editRecord reads input, applies edit and writes the result.
func (c *CLI) editRecord(input, output, suffix string, edit func(*record.Record) (*record.Record, error)) error {
	prog := newProgress(c.Logger)

	rec, err := seqio.ImportFile(input)
	if err != nil {
		return err
	}
	out, err := edit(rec)
	if err != nil {
		return err
	}

	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + "." + suffix + ext
	}
	if err := seqio.ExportFile(out, output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %s", output))

	printSuccess("%d → %d feature(s)", len(rec.Features), len(out.Features))
	printFile(output)
	if start, end := out.Span(); start != 0 || end != out.SequenceLength {
		printDetail("span %d..%d", start, end)
	}
	return nil
}
