package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archlayout/pkg/buildinfo"
	"github.com/matzehuels/archlayout/pkg/cache"
	"github.com/matzehuels/archlayout/pkg/config"
	"github.com/matzehuels/archlayout/pkg/engine"
	"github.com/matzehuels/archlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "archlayout"

	// defaultConfigFile is looked up in the working directory when --config
	// is not given.
	defaultConfigFile = "archlayout.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is bound to the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Archlayout positions and routes architecture diagrams",
		Long:         `Archlayout is a CLI tool that computes positions for cells, components, gateways and external actors of an architecture diagram and routes the connections between them as SVG paths.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "layout options file (default: ./"+defaultConfigFile+" if present)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options & Runner Factory
// =============================================================================

// layoutOptions resolves engine options: defaults, then the config file,
// then the flag overrides in extra.
func (c *CLI) layoutOptions(extra ...engine.Option) ([]engine.Option, error) {
	opts := engine.DefaultOptions()

	path := c.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		f, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		opts = f.Apply(opts)
		c.Logger.Debug("loaded config", "path", path)
	}

	return append([]engine.Option{engine.WithOptions(opts), engine.WithLogger(c.Logger)}, extra...), nil
}

// newEngine builds an engine from the resolved options.
func (c *CLI) newEngine(extra ...engine.Option) (*engine.Engine, error) {
	opts, err := c.layoutOptions(extra...)
	if err != nil {
		return nil, err
	}
	return engine.New(opts...)
}

// newRunner creates a pipeline runner for CLI use, backed by the local file
// cache unless noCache is set.
func (c *CLI) newRunner(noCache bool, extra ...engine.Option) (*pipeline.Runner, error) {
	eng, err := c.newEngine(extra...)
	if err != nil {
		return nil, err
	}
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, eng, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", dir, err)
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/archlayout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
