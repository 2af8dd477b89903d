package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/pipeline"
)

// inspectCommand creates the inspect command, an interactive browser over
// the placed boxes of a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		flags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [diagram.json|layout.json]",
		Short: "Browse node positions and edges of a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.loadResult(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}
			model := NewNodeListModel(res)
			if plain {
				model.Height = len(model.IDs)
				fmt.Fprintln(cmd.OutOrStdout(), model.View())
				return nil
			}
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table once instead of starting the browser")
	flags.register(cmd)

	return cmd
}

// loadResult reads a layout result, laying the file out first when it holds
// a diagram.
func (c *CLI) loadResult(ctx context.Context, input string, flags layoutFlags) (*diagram.Result, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	if diagram.Sniff(data) {
		return diagram.ReadResult(bytes.NewReader(data))
	}
	d, err := diagram.ReadDiagram(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load diagram %s: %w", input, err)
	}
	result, err := c.execute(ctx, d, flags, pipeline.Options{})
	if err != nil {
		return nil, err
	}
	return result.Layout, nil
}
