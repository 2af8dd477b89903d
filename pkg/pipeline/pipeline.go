// Package pipeline runs diagram layouts with caching.
//
// This package implements the validate → layout → render pipeline shared by
// the CLI and the HTTP API. Centralizing it keeps cache keys, logging, and
// hooks identical across entry points.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: validate the diagram and run the layout engine
//  2. Render: produce output artifacts (the result JSON, an SVG preview)
//
// Both stages are cache-aside: the key of a layout is derived from the
// marshalled diagram and the engine options, the key of an artifact from the
// marshalled layout and the render options.
//
// # Usage
//
//	eng, _ := engine.New()
//	runner := pipeline.NewRunner(cache, nil, eng, logger)
//	result, err := runner.Execute(ctx, d, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	res, err := runner.Layout(ctx, d)
//	svg, err := runner.Render(ctx, res, pipeline.FormatSVG, true)
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/errors"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
}

// ValidateFormat checks if a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (want json or svg)", format)
	}
	return nil
}

// ValidateFormats checks if all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options controls a pipeline run. Layout settings live on the engine.
type Options struct {
	Formats []string // artifacts to produce; empty means layout only
	Labels  bool     // print node ids in SVG output
	Refresh bool     // bypass cached layouts and overwrite them
}

// Validate checks the options.
func (o Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return fmt.Errorf("formats: %w", err)
	}
	return nil
}

// Result is the output of [Runner.Execute].
type Result struct {
	Layout      *diagram.Result
	Artifacts   map[string][]byte
	DiagramHash string
	Stats       Stats
	CacheInfo   CacheInfo
}

// Stats records the size of a run and where its time went.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Warnings   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}
