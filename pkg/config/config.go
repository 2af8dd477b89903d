// Package config reads layout options from TOML files.
//
// A config file only needs the keys it wants to change; everything else
// keeps the value it is applied on top of:
//
//	[layout]
//	rank_direction = "LR"
//	ranker = "graphviz"
//
//	[cells]
//	min_size = 240
//
//	[edges]
//	style = "orthogonal"
//
// [Encode] writes a fully populated file, which is what "archlayout config"
// prints.
package config

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/archlayout/pkg/engine"
	"github.com/matzehuels/archlayout/pkg/errors"
	"github.com/matzehuels/archlayout/pkg/layout/rank"
	"github.com/matzehuels/archlayout/pkg/route"
)

// File is the on-disk configuration. Nil fields are not set in the file.
type File struct {
	Layout    Layout    `toml:"layout"`
	Cells     Cells     `toml:"cells"`
	Externals Externals `toml:"externals"`
	Edges     Edges     `toml:"edges"`
	Overlap   Overlap   `toml:"overlap"`
}

type Layout struct {
	RankDirection     *string  `toml:"rank_direction,omitempty"`
	CellRankDirection *string  `toml:"cell_rank_direction,omitempty"`
	NodeSpacing       *float64 `toml:"node_spacing,omitempty"`
	RankSpacing       *float64 `toml:"rank_spacing,omitempty"`
	CellSpacing       *float64 `toml:"cell_spacing,omitempty"`
	Ranker            *string  `toml:"ranker,omitempty"`
}

type Cells struct {
	MinSize           *float64 `toml:"min_size,omitempty"`
	PaddingMultiplier *float64 `toml:"padding_multiplier,omitempty"`
	MinPadding        *float64 `toml:"min_padding,omitempty"`
}

type Externals struct {
	Spacing *float64 `toml:"spacing,omitempty"`
	Offset  *float64 `toml:"offset,omitempty"`
}

type Edges struct {
	CurveRadius           *float64 `toml:"curve_radius,omitempty"`
	CurveOffset           *float64 `toml:"curve_offset,omitempty"`
	StraightLineTolerance *float64 `toml:"straight_line_tolerance,omitempty"`
	BidirectionalOffset   *float64 `toml:"bidirectional_offset,omitempty"`
	Style                 *string  `toml:"style,omitempty"`
}

type Overlap struct {
	Padding            *float64 `toml:"padding,omitempty"`
	GridSpacing        *float64 `toml:"grid_spacing,omitempty"`
	GridVerticalOffset *float64 `toml:"grid_vertical_offset,omitempty"`
}

// Load reads a config file. A missing file is a FILE_NOT_FOUND error.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open config %s", path)
		}
		return File{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open config %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a config file. Unknown keys are rejected so typos surface
// instead of being silently ignored.
func Parse(r io.Reader) (File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return File{}, errors.New(errors.ErrCodeInvalidFormat, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return f, nil
}

// Apply returns base with every key set in f overridden. The result is not
// validated; engine.New does that.
func (f File) Apply(base engine.Options) engine.Options {
	o := base
	setDir(&o.RankDirection, f.Layout.RankDirection)
	setDir(&o.CellRankDirection, f.Layout.CellRankDirection)
	set(&o.NodeSpacing, f.Layout.NodeSpacing)
	set(&o.RankSpacing, f.Layout.RankSpacing)
	set(&o.CellSpacing, f.Layout.CellSpacing)
	set(&o.Ranker, f.Layout.Ranker)

	set(&o.MinCellSize, f.Cells.MinSize)
	set(&o.CellPaddingMultiplier, f.Cells.PaddingMultiplier)
	set(&o.MinCellPadding, f.Cells.MinPadding)

	set(&o.ExternalSpacing, f.Externals.Spacing)
	set(&o.ExternalOffset, f.Externals.Offset)

	set(&o.EdgeCurveRadius, f.Edges.CurveRadius)
	set(&o.CurveOffset, f.Edges.CurveOffset)
	set(&o.StraightLineTolerance, f.Edges.StraightLineTolerance)
	set(&o.BidirectionalOffset, f.Edges.BidirectionalOffset)
	if f.Edges.Style != nil {
		o.EdgeStyle = route.Style(*f.Edges.Style)
	}

	set(&o.OverlapPadding, f.Overlap.Padding)
	set(&o.GridSpacing, f.Overlap.GridSpacing)
	set(&o.GridVerticalOffset, f.Overlap.GridVerticalOffset)
	return o
}

// FromOptions returns a File with every key set to the value in o.
func FromOptions(o engine.Options) File {
	str := func(s string) *string { return &s }
	num := func(v float64) *float64 { return &v }
	return File{
		Layout: Layout{
			RankDirection:     str(string(o.RankDirection)),
			CellRankDirection: str(string(o.CellRankDirection)),
			NodeSpacing:       num(o.NodeSpacing),
			RankSpacing:       num(o.RankSpacing),
			CellSpacing:       num(o.CellSpacing),
			Ranker:            str(o.Ranker),
		},
		Cells: Cells{
			MinSize:           num(o.MinCellSize),
			PaddingMultiplier: num(o.CellPaddingMultiplier),
			MinPadding:        num(o.MinCellPadding),
		},
		Externals: Externals{
			Spacing: num(o.ExternalSpacing),
			Offset:  num(o.ExternalOffset),
		},
		Edges: Edges{
			CurveRadius:           num(o.EdgeCurveRadius),
			CurveOffset:           num(o.CurveOffset),
			StraightLineTolerance: num(o.StraightLineTolerance),
			BidirectionalOffset:   num(o.BidirectionalOffset),
			Style:                 str(string(o.EdgeStyle)),
		},
		Overlap: Overlap{
			Padding:            num(o.OverlapPadding),
			GridSpacing:        num(o.GridSpacing),
			GridVerticalOffset: num(o.GridVerticalOffset),
		},
	}
}

// Encode writes o as a complete config file.
func Encode(w io.Writer, o engine.Options) error {
	if err := toml.NewEncoder(w).Encode(FromOptions(o)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDir(dst *rank.Direction, v *string) {
	if v != nil {
		*dst = rank.Direction(*v)
	}
}
