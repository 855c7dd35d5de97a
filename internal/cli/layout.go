package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqview/pkg/pipeline"
)

// layoutCommand creates the layout command for computing feature layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var f recordFlags

	cmd := &cobra.Command{
		Use:   "layout [record]",
		Short: "Compute feature levels and label placement for a record",
		Long: `Compute feature levels and label placement for a record.

The layout command reads a record (JSON or TOML), optionally crops it to a
window and splits features overflowing the sequence ends, then stacks
overlapping features on levels and places their labels. The output is a
layout.json file (same format as 'render -f json').

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f, args[0])
			if err != nil {
				return err
			}
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runLayout(cmd.Context(), opts, f.output)
		},
	}

	f.bindPrepare(cmd)
	f.bindLayout(cmd)
	return cmd
}

// runLayout runs the pipeline and writes the JSON layout.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", opts.Input) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, result.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.FeatureCount, result.Stats.LevelCount, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" render "+opts.Input)

	return nil
}
