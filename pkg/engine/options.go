package engine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archlayout/pkg/errors"
	"github.com/matzehuels/archlayout/pkg/layout/rank"
	"github.com/matzehuels/archlayout/pkg/route"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and config files
// =============================================================================

const (
	DefaultRankDirection         = rank.TopBottom
	DefaultCellRankDirection     = rank.LeftRight
	DefaultNodeSpacing           = 50.0
	DefaultRankSpacing           = 80.0
	DefaultCellSpacing           = 120.0
	DefaultMinCellSize           = 300.0
	DefaultCellPaddingMultiplier = 1.5
	DefaultMinCellPadding        = 20.0
	DefaultExternalSpacing       = 40.0
	DefaultExternalOffset        = 80.0
	DefaultEdgeCurveRadius       = 20.0
	DefaultCurveOffset           = 10.0
	DefaultStraightLineTolerance = 1.0
	DefaultBidirectionalOffset   = 12.0
	DefaultOverlapPadding        = 10.0
	DefaultGridSpacing           = 50.0
	DefaultGridVerticalOffset    = 50.0
	DefaultRanker                = rank.NameSugiyama
	DefaultEdgeStyle             = route.StyleCurved
)

// =============================================================================
// Options - Layout Configuration
// =============================================================================

// Options is the complete, immutable layout configuration. It supports JSON
// serialization so it can be hashed into cache keys and echoed by the API.
type Options struct {
	// Ranking
	RankDirection     rank.Direction `json:"rankDirection"`
	CellRankDirection rank.Direction `json:"cellRankDirection"`
	NodeSpacing       float64        `json:"nodeSpacing"`
	RankSpacing       float64        `json:"rankSpacing"`
	CellSpacing       float64        `json:"cellSpacing"`
	Ranker            string         `json:"ranker"`

	// Cell sizing
	MinCellSize           float64 `json:"minCellSize"`
	CellPaddingMultiplier float64 `json:"cellPaddingMultiplier"`
	MinCellPadding        float64 `json:"minCellPadding"`

	// External actors
	ExternalSpacing float64 `json:"externalSpacing"`
	ExternalOffset  float64 `json:"externalOffset"`

	// Edge routing
	EdgeCurveRadius       float64     `json:"edgeCurveRadius"`
	CurveOffset           float64     `json:"curveOffset"`
	StraightLineTolerance float64     `json:"straightLineTolerance"`
	BidirectionalOffset   float64     `json:"bidirectionalOffset"`
	EdgeStyle             route.Style `json:"edgeStyle"`

	// Overlap resolution
	OverlapPadding     float64 `json:"overlapPadding"`
	GridSpacing        float64 `json:"gridSpacing"`
	GridVerticalOffset float64 `json:"gridVerticalOffset"`
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		RankDirection:         DefaultRankDirection,
		CellRankDirection:     DefaultCellRankDirection,
		NodeSpacing:           DefaultNodeSpacing,
		RankSpacing:           DefaultRankSpacing,
		CellSpacing:           DefaultCellSpacing,
		Ranker:                DefaultRanker,
		MinCellSize:           DefaultMinCellSize,
		CellPaddingMultiplier: DefaultCellPaddingMultiplier,
		MinCellPadding:        DefaultMinCellPadding,
		ExternalSpacing:       DefaultExternalSpacing,
		ExternalOffset:        DefaultExternalOffset,
		EdgeCurveRadius:       DefaultEdgeCurveRadius,
		CurveOffset:           DefaultCurveOffset,
		StraightLineTolerance: DefaultStraightLineTolerance,
		BidirectionalOffset:   DefaultBidirectionalOffset,
		EdgeStyle:             DefaultEdgeStyle,
		OverlapPadding:        DefaultOverlapPadding,
		GridSpacing:           DefaultGridSpacing,
		GridVerticalOffset:    DefaultGridVerticalOffset,
	}
}

// Validate rejects negative spacings, multipliers below one, and unknown
// directions, rankers or edge styles with an INVALID_OPTION error.
func (o Options) Validate() error {
	if _, err := rank.ParseDirection(string(o.RankDirection)); err != nil {
		return fmt.Errorf("rankDirection: %w", err)
	}
	if _, err := rank.ParseDirection(string(o.CellRankDirection)); err != nil {
		return fmt.Errorf("cellRankDirection: %w", err)
	}
	if _, err := rank.New(o.Ranker); err != nil {
		return err
	}
	switch o.EdgeStyle {
	case route.StyleCurved, route.StyleOrthogonal:
	default:
		return errors.New(errors.ErrCodeInvalidOption, "unknown edge style %q (want curved or orthogonal)", o.EdgeStyle)
	}

	numeric := []struct {
		name string
		v    float64
	}{
		{"nodeSpacing", o.NodeSpacing},
		{"rankSpacing", o.RankSpacing},
		{"cellSpacing", o.CellSpacing},
		{"minCellSize", o.MinCellSize},
		{"minCellPadding", o.MinCellPadding},
		{"externalSpacing", o.ExternalSpacing},
		{"externalOffset", o.ExternalOffset},
		{"edgeCurveRadius", o.EdgeCurveRadius},
		{"curveOffset", o.CurveOffset},
		{"straightLineTolerance", o.StraightLineTolerance},
		{"bidirectionalOffset", o.BidirectionalOffset},
		{"overlapPadding", o.OverlapPadding},
		{"gridSpacing", o.GridSpacing},
		{"gridVerticalOffset", o.GridVerticalOffset},
	}
	for _, n := range numeric {
		if err := errors.ValidateNonNegative(n.name, n.v); err != nil {
			return err
		}
	}
	if !(o.CellPaddingMultiplier >= 1) {
		return errors.New(errors.ErrCodeInvalidOption, "cellPaddingMultiplier must be at least 1, got %v", o.CellPaddingMultiplier)
	}
	return nil
}

// normalized upper-cases directions and lower-cases the ranker name so
// equivalent spellings produce identical engines and cache keys.
func (o Options) normalized() Options {
	if d, err := rank.ParseDirection(string(o.RankDirection)); err == nil {
		o.RankDirection = d
	}
	if d, err := rank.ParseDirection(string(o.CellRankDirection)); err == nil {
		o.CellRankDirection = d
	}
	if r, err := rank.New(o.Ranker); err == nil {
		o.Ranker = r.Name()
	}
	return o
}

// =============================================================================
// Functional Options
// =============================================================================

// settings is what an Option mutates while an engine is being built.
type settings struct {
	opts   Options
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*settings)

// WithOptions replaces the whole configuration.
func WithOptions(o Options) Option { return func(s *settings) { s.opts = o } }

// WithLogger sets the logger used for per-phase debug output.
func WithLogger(l *log.Logger) Option { return func(s *settings) { s.logger = l } }

func WithRankDirection(d rank.Direction) Option {
	return func(s *settings) { s.opts.RankDirection = d }
}

func WithCellRankDirection(d rank.Direction) Option {
	return func(s *settings) { s.opts.CellRankDirection = d }
}

func WithNodeSpacing(v float64) Option { return func(s *settings) { s.opts.NodeSpacing = v } }
func WithRankSpacing(v float64) Option { return func(s *settings) { s.opts.RankSpacing = v } }
func WithCellSpacing(v float64) Option { return func(s *settings) { s.opts.CellSpacing = v } }
func WithRanker(name string) Option    { return func(s *settings) { s.opts.Ranker = name } }
func WithMinCellSize(v float64) Option { return func(s *settings) { s.opts.MinCellSize = v } }

func WithCellPadding(multiplier, minPadding float64) Option {
	return func(s *settings) {
		s.opts.CellPaddingMultiplier = multiplier
		s.opts.MinCellPadding = minPadding
	}
}

func WithExternalPlacement(spacing, offset float64) Option {
	return func(s *settings) {
		s.opts.ExternalSpacing = spacing
		s.opts.ExternalOffset = offset
	}
}

func WithEdgeStyle(st route.Style) Option { return func(s *settings) { s.opts.EdgeStyle = st } }
func WithOverlapPadding(v float64) Option { return func(s *settings) { s.opts.OverlapPadding = v } }
