package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqview/pkg/pipeline"
)

// renderCommand creates the render command for generating track drawings.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		f          recordFlags
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "render [record]",
		Short: "Render a record's feature track to SVG, PNG, PDF or JSON",
		Long: `Render a record's feature track.

Formats (comma-separated with -f):
  svg       feature track (default)
  png, pdf  the SVG converted with rsvg-convert
  json      the computed layout
  dot       overlap graph in Graphviz DOT
  overlaps  overlap graph rendered to SVG

With one format, -o names the output file; with several it is the base path
and each format gets its own extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f, args[0])
			if err != nil {
				return err
			}
			if formatsStr != "" {
				opts.Formats = parseFormats(formatsStr)
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), opts, f.output)
		},
	}

	f.bindPrepare(cmd)
	f.bindLayout(cmd)
	fl := cmd.Flags()
	fl.StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, overlaps")
	fl.StringVar(&f.opts.Title, "title", "", "title drawn above the track")
	fl.BoolVar(&f.opts.Ruler, "ruler", false, "draw a position ruler under the axis")
	fl.Float64Var(&f.opts.LevelPixels, "level-pixels", pipeline.DefaultLevelPixels, "height of one level in pixels")
	fl.Float64Var(&f.opts.PNGScale, "png-scale", pipeline.DefaultPNGScale, "PNG scale factor")

	return cmd
}

// runRender runs the pipeline and writes one file per format. An artifact
// written to stdout is the command's only output; status lines are dropped.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(opts.Input)+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(output, opts.Input, result.Artifacts)
	for _, format := range sortedFormats(result.Artifacts) {
		if err := writeArtifact(stdout, paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	if slices.Contains(slices.Collect(maps.Values(paths)), "-") {
		return nil
	}

	printSuccess("Rendered %d feature(s)", result.Stats.FeatureCount)
	for _, format := range sortedFormats(result.Artifacts) {
		printFile(paths[format])
	}
	printStats(result.Stats.FeatureCount, result.Stats.LevelCount, result.CacheInfo.RenderHit)
	return nil
}

// outputPaths maps each rendered format to its file. A single format with
// an explicit output uses that path unchanged.
func outputPaths(output, input string, artifacts map[string][]byte) map[string]string {
	paths := make(map[string]string, len(artifacts))
	if len(artifacts) == 1 && output != "" {
		for format := range artifacts {
			paths[format] = output
		}
		return paths
	}
	base := basePath(output, input)
	for format := range artifacts {
		paths[format] = base + "." + pipeline.FileExtension(format)
	}
	return paths
}

// writeArtifact writes data to path, or to stdout when path is "-".
func writeArtifact(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// sortedFormats returns the artifact formats in a stable order.
func sortedFormats(artifacts map[string][]byte) []string {
	return slices.Sorted(maps.Keys(artifacts))
}
