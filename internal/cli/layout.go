package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/engine"
	"github.com/matzehuels/archlayout/pkg/layout/rank"
	"github.com/matzehuels/archlayout/pkg/pipeline"
)

// layoutFlags holds the engine overrides shared by layout, render and inspect.
type layoutFlags struct {
	ranker   string
	rankDir  string
	cellDir  string
	noCache  bool
	refresh  bool
	spacing  float64
	cellsGap float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ranker, "ranker", "", "ranking algorithm: "+strings.Join(rank.Names(), ", "))
	cmd.Flags().StringVar(&f.rankDir, "rank-dir", "", "rank direction inside cells: TB, BT, LR, RL")
	cmd.Flags().StringVar(&f.cellDir, "cell-dir", "", "rank direction between cells: TB, BT, LR, RL")
	cmd.Flags().Float64Var(&f.spacing, "node-spacing", 0, "gap between components (0 keeps the configured value)")
	cmd.Flags().Float64Var(&f.cellsGap, "cell-spacing", 0, "gap between cells (0 keeps the configured value)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached layout exists")

	_ = cmd.RegisterFlagCompletionFunc("ranker", cobra.FixedCompletions(rank.Names(), cobra.ShellCompDirectiveNoFileComp))
	directions := cobra.FixedCompletions([]string{"TB", "BT", "LR", "RL"}, cobra.ShellCompDirectiveNoFileComp)
	_ = cmd.RegisterFlagCompletionFunc("rank-dir", directions)
	_ = cmd.RegisterFlagCompletionFunc("cell-dir", directions)
}

// options turns the set flags into engine options.
func (f *layoutFlags) options() []engine.Option {
	var opts []engine.Option
	if f.ranker != "" {
		opts = append(opts, engine.WithRanker(f.ranker))
	}
	if f.rankDir != "" {
		opts = append(opts, engine.WithRankDirection(rank.Direction(f.rankDir)))
	}
	if f.cellDir != "" {
		opts = append(opts, engine.WithCellRankDirection(rank.Direction(f.cellDir)))
	}
	if f.spacing > 0 {
		opts = append(opts, engine.WithNodeSpacing(f.spacing))
	}
	if f.cellsGap > 0 {
		opts = append(opts, engine.WithCellSpacing(f.cellsGap))
	}
	return opts
}

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram.json]",
		Short: "Compute positions and edge paths for a diagram",
		Long: `Compute positions and edge paths for an architecture diagram.

The layout command takes a diagram.json file and writes a layout result
(node boxes, cell dimensions, routed edges, bounds and warnings) that can be
previewed with the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the diagram, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, flags layoutFlags) error {
	d, err := diagram.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	result, err := c.execute(ctx, d, flags, pipeline.Options{})
	if err != nil {
		return err
	}
	res := result.Layout

	outputPath := output
	if outputPath == "" {
		outputPath = derivePath(input, ".layout.json")
	}
	if err := diagram.WriteResultFile(res, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(d.NodeCount(), d.EdgeCount(), result.CacheInfo.LayoutHit)
	printWarnings(res.Warnings)
	printNewline()
	printNextStep("Preview", appName+" render "+outputPath)

	return nil
}

// execute runs the cached pipeline behind a spinner.
func (c *CLI) execute(ctx context.Context, d diagram.Diagram, flags layoutFlags, opts pipeline.Options) (*pipeline.Result, error) {
	runner, err := c.newRunner(flags.noCache, flags.options()...)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Refresh = opts.Refresh || flags.refresh
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	prog.done(fmt.Sprintf("Laid out %d nodes", result.Stats.NodeCount))
	return result, nil
}

// derivePath replaces the extension of input with suffix.
func derivePath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}
