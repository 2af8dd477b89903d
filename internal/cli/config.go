package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archlayout/pkg/config"
)

// configCommand creates the config command, which prints the effective
// layout options as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective layout options as TOML",
		Long: `Print the effective layout options as TOML.

The output merges the built-in defaults with the --config file (or
./archlayout.toml when present). Redirect it to a file to start a new
configuration:

  $ archlayout config > archlayout.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return c.writeConfig(w)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func (c *CLI) writeConfig(w io.Writer) error {
	eng, err := c.newEngine()
	if err != nil {
		return err
	}
	return config.Encode(w, eng.Options())
}
