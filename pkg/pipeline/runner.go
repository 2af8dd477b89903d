package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archlayout/pkg/cache"
	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/engine"
	"github.com/matzehuels/archlayout/pkg/observability"
	"github.com/matzehuels/archlayout/pkg/render/svg"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, engine and logger. Multiple
// goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Engine *engine.Engine
	Logger *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If eng is nil, an engine with default options is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, eng *engine.Engine, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if eng == nil {
		// Default options always validate.
		eng, _ = engine.New(engine.WithLogger(logger))
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Engine: eng,
		Logger: logger,
	}
}

// Execute runs layout and then renders every requested format.
func (r *Runner) Execute(ctx context.Context, d diagram.Diagram, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}
	if data, err := diagram.MarshalDiagram(d); err == nil {
		result.DiagramHash = cache.Hash(data)
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	res, hit, err := r.layout(ctx, d, result.DiagramHash, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats = Stats{
		NodeCount:  len(res.Nodes),
		EdgeCount:  len(res.Edges),
		Warnings:   len(res.Warnings),
		LayoutTime: time.Since(layoutStart),
	}
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"warnings", result.Stats.Warnings,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	if len(opts.Formats) == 0 {
		return result, nil
	}

	// Stage 2: Render
	renderStart := time.Now()
	allHit := true
	for _, format := range opts.Formats {
		data, hit, err := r.RenderWithCacheInfo(ctx, res, format, opts.Labels)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		allHit = allHit && hit
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = allHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo lays out d with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d diagram.Diagram) (*diagram.Result, bool, error) {
	data, err := diagram.MarshalDiagram(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	return r.layout(ctx, d, cache.Hash(data), false)
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, d diagram.Diagram) (*diagram.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, d)
	return res, err
}

func (r *Runner) layout(ctx context.Context, d diagram.Diagram, diagramHash string, refresh bool) (*diagram.Result, bool, error) {
	opts := r.Engine.Options()
	optsData, _ := json.Marshal(opts)
	cacheKey := r.Keyer.LayoutKey(diagramHash, cache.LayoutKeyOpts{
		Ranker:      opts.Ranker,
		OptionsHash: cache.Hash(optsData),
	})

	// Try cache first (unless refresh requested)
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := diagram.ReadResult(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				r.Logger.Debug("layout cache hit", "key", cacheKey)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	nodes := d.NodeCount()
	observability.Layout().OnLayoutStart(ctx, nodes)
	start := time.Now()
	res, err := r.Engine.LayoutContext(ctx, d)
	warnings := 0
	if res != nil {
		warnings = len(res.Warnings)
	}
	observability.Layout().OnLayoutComplete(ctx, nodes, warnings, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	for _, w := range res.Warnings {
		r.Logger.Warn(w.Message, "code", w.Code, "ref", w.Ref)
	}

	if data, err := diagram.MarshalResult(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return res, false, nil
}

// RenderWithCacheInfo produces one artifact with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *diagram.Result, format string, labels bool) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}

	layoutData, err := diagram.MarshalResult(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	if format == FormatJSON {
		return layoutData, false, nil
	}

	cacheKey := r.Keyer.ArtifactKey(cache.Hash(layoutData), cache.ArtifactKeyOpts{Format: format, Labels: labels})
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	observability.Layout().OnRenderStart(ctx, format)
	start := time.Now()
	var opts []svg.Option
	if labels {
		opts = append(opts, svg.WithLabels())
	}
	data := svg.Render(res, opts...)
	observability.Layout().OnRenderComplete(ctx, format, len(data), time.Since(start), nil)

	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *diagram.Result, format string, labels bool) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, res, format, labels)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
