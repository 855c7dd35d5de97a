package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqview/pkg/pipeline"
)

// overlapsCommand creates the overlaps command, a debugging view of the
// overlap graph behind level assignment.
func (c *CLI) overlapsCommand() *cobra.Command {
	var (
		f   recordFlags
		svg bool
	)

	cmd := &cobra.Command{
		Use:   "overlaps [record]",
		Short: "Show which features overlap and the level each was given",
		Long: `Show which features overlap and the level each was given.

Features are graph nodes grouped by level; overlapping pairs are joined by
an edge. Without --svg the graph is written as Graphviz DOT to stdout (or
to -o); with --svg it is laid out with Graphviz and written as SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f, args[0])
			if err != nil {
				return err
			}
			opts.NoLabels = true
			format := pipeline.FormatDOT
			if svg {
				format = pipeline.FormatOverlaps
			}
			opts.Formats = []string{format}

			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}

			output := f.output
			if output == "" && svg {
				output = basePath("", opts.Input) + "." + pipeline.FileExtension(format)
			}
			if output == "" {
				output = "-"
			}
			if err := writeArtifact(cmd.OutOrStdout(), output, result.Artifacts[format]); err != nil {
				return err
			}
			if output != "-" {
				printSuccess("Overlap graph: %d feature(s) on %d level(s)", result.Stats.FeatureCount, result.Stats.LevelCount)
				printFile(output)
			}
			return nil
		},
	}

	f.bindPrepare(cmd)
	cmd.Flags().BoolVar(&svg, "svg", false, "render the graph to SVG with Graphviz")
	return cmd
}
