package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archlayout/pkg/api"
	"github.com/matzehuels/archlayout/pkg/cache"
	"github.com/matzehuels/archlayout/pkg/pipeline"
)

// Environment variables read by serve. Flags take precedence.
const (
	envAddr        = "ARCHLAYOUT_ADDR"
	envRedisURL    = "ARCHLAYOUT_REDIS_URL"
	envCachePrefix = "ARCHLAYOUT_CACHE_PREFIX"

	defaultAddr    = ":8080"
	defaultEnvFile = ".env"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redisURL string // redis://... enables the shared cache
	prefix   string // key namespace inside Redis
	envFile  string // dotenv file to load before reading the environment
	noCache  bool   // disable caching entirely
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Endpoints:
  GET  /healthz      liveness probe
  POST /v1/layout    diagram JSON in, layout result JSON out
  POST /v1/render    diagram JSON in, SVG preview out

Settings are read from flags, then from the environment (` + envAddr + `,
` + envRedisURL + `, ` + envCachePrefix + `), which may be seeded from a
.env file. Without Redis the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(opts.envFile, cmd.Flags().Changed("env-file")); err != nil {
				return err
			}
			opts.fillFromEnv(cmd.Flags().Changed("addr"), cmd.Flags().Changed("redis"), cmd.Flags().Changed("prefix"))
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "cache key prefix")
	cmd.Flags().StringVar(&opts.envFile, "env-file", defaultEnvFile, "dotenv file to load")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// loadEnv loads a dotenv file. A missing default file is not an error.
func loadEnv(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// fillFromEnv copies environment values into fields whose flag was not set.
func (o *serveOpts) fillFromEnv(addrSet, redisSet, prefixSet bool) {
	if v := os.Getenv(envAddr); v != "" && !addrSet {
		o.addr = v
	}
	if v := os.Getenv(envRedisURL); v != "" && !redisSet {
		o.redisURL = v
	}
	if v := os.Getenv(envCachePrefix); v != "" && !prefixSet {
		o.prefix = v
	}
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	eng, err := c.newEngine()
	if err != nil {
		return err
	}

	var (
		store   cache.Cache
		keyer   cache.Keyer
		backend string
	)
	switch {
	case opts.noCache:
		store, backend = cache.NewNullCache(), "disabled"
	case opts.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: opts.redisURL})
		if err != nil {
			return err
		}
		store, backend = rc, "redis"
	default:
		if store, err = newCache(false); err != nil {
			return err
		}
		backend = "file"
	}
	if opts.prefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.prefix)
	}

	printKeyValue("Address", opts.addr)
	printKeyValue("Cache", backend)
	printKeyValue("Ranker", eng.Options().Ranker)
	logger.Debug("serving", "addr", opts.addr, "cache", backend, "prefix", opts.prefix)

	runner := pipeline.NewRunner(store, keyer, eng, logger)
	defer runner.Close()

	err = api.New(runner).ListenAndServe(ctx, opts.addr)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
