package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/pipeline"
)

// renderCommand creates the render command for SVG previews.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		labels bool
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [diagram.json|layout.json]",
		Short: "Render an SVG preview of a diagram or layout result",
		Long: `Render an SVG preview of a diagram or a layout result.

A diagram is laid out first (using the cache like 'layout' does). A layout
result written by 'layout' is drawn as is; layout flags are ignored then.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, labels, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().BoolVar(&labels, "labels", true, "print node ids on boxes")
	flags.register(cmd)

	return cmd
}

// runRender sniffs the input, lays it out if needed and writes the SVG.
func (c *CLI) runRender(ctx context.Context, input, output string, labels bool, flags layoutFlags) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	var (
		svg    []byte
		cached bool
		nodes  int
		edges  int
	)
	if diagram.Sniff(data) {
		svg, cached, nodes, edges, err = c.renderResult(ctx, data, labels)
	} else {
		svg, cached, nodes, edges, err = c.renderDiagram(ctx, data, labels, flags)
	}
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = derivePath(input, ".svg")
	}
	if err := os.WriteFile(outputPath, svg, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Rendered SVG")
	printFile(outputPath)
	printStats(nodes, edges, cached)
	return nil
}

func (c *CLI) renderResult(ctx context.Context, data []byte, labels bool) ([]byte, bool, int, int, error) {
	res, err := diagram.ReadResult(bytes.NewReader(data))
	if err != nil {
		return nil, false, 0, 0, fmt.Errorf("load layout: %w", err)
	}
	runner, err := c.newRunner(false)
	if err != nil {
		return nil, false, 0, 0, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	svg, hit, err := runner.RenderWithCacheInfo(ctx, res, pipeline.FormatSVG, labels)
	if err != nil {
		return nil, false, 0, 0, fmt.Errorf("render: %w", err)
	}
	return svg, hit, len(res.Nodes), len(res.Edges), nil
}

func (c *CLI) renderDiagram(ctx context.Context, data []byte, labels bool, flags layoutFlags) ([]byte, bool, int, int, error) {
	d, err := diagram.ReadDiagram(bytes.NewReader(data))
	if err != nil {
		return nil, false, 0, 0, fmt.Errorf("load diagram: %w", err)
	}
	result, err := c.execute(ctx, d, flags, pipeline.Options{
		Formats: []string{pipeline.FormatSVG},
		Labels:  labels,
	})
	if err != nil {
		return nil, false, 0, 0, err
	}
	printWarnings(result.Layout.Warnings)
	return result.Artifacts[pipeline.FormatSVG], result.CacheInfo.LayoutHit, d.NodeCount(), d.EdgeCount(), nil
}
