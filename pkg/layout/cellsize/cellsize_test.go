package cellsize

import (
	"testing"

	"github.com/matzehuels/archlayout/pkg/geom"
)

var defaultSizer = Sizer{
	MinCellSize:       DefaultMinCellSize,
	PaddingMultiplier: DefaultPaddingMultiplier,
	MinPadding:        DefaultMinPadding,
}

func TestCalculateEmpty(t *testing.T) {
	got := defaultSizer.Calculate(nil, nil)
	if got.Width != 300 || got.Height != 300 {
		t.Errorf("empty cell = %vx%v, want 300x300", got.Width, got.Height)
	}
	if got.ContentOffset != (geom.Position{}) {
		t.Errorf("empty cell offset = %v, want zero", got.ContentOffset)
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		sizer Sizer
		pos   map[string]geom.Position
		dims  map[string]geom.Dimensions
		side  float64
	}{
		{
			name:  "small content uses min size times multiplier",
			sizer: defaultSizer,
			pos:   map[string]geom.Position{"a": {}},
			dims:  map[string]geom.Dimensions{"a": {Width: 100, Height: 50}},
			side:  450,
		},
		{
			name:  "large content scales with extent",
			sizer: defaultSizer,
			pos:   map[string]geom.Position{"a": {}, "b": {X: 300, Y: 100}},
			dims:  map[string]geom.Dimensions{"a": {Width: 100, Height: 100}, "b": {Width: 100, Height: 100}},
			side:  600,
		},
		{
			name:  "padding floor wins over multiplier",
			sizer: Sizer{MinCellSize: 10, PaddingMultiplier: 1, MinPadding: 20},
			pos:   map[string]geom.Position{"a": {}},
			dims:  map[string]geom.Dimensions{"a": {Width: 100, Height: 40}},
			side:  140,
		},
		{
			name:  "zero multiplier falls back to default",
			sizer: Sizer{MinCellSize: 100},
			pos:   map[string]geom.Position{"a": {}},
			dims:  map[string]geom.Dimensions{"a": {Width: 10, Height: 10}},
			side:  150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sizer.Calculate(tt.pos, tt.dims)
			if got.Width != tt.side || got.Height != tt.side {
				t.Errorf("Calculate() = %vx%v, want %v square", got.Width, got.Height, tt.side)
			}
		})
	}
}

func TestCalculateCentersContent(t *testing.T) {
	pos := map[string]geom.Position{"a": {X: -40, Y: 10}, "b": {X: 60, Y: 70}}
	dims := map[string]geom.Dimensions{"a": {Width: 50, Height: 50}, "b": {Width: 50, Height: 50}}

	cd := defaultSizer.Calculate(pos, dims)
	shifted := Apply(pos, cd)

	box := geom.BoundsOf([]string{"a", "b"}, shifted, dims)
	left, right := box.MinX, cd.Width-box.MaxX
	top, bottom := box.MinY, cd.Height-box.MaxY
	if left != right || top != bottom {
		t.Errorf("content not centered: left=%v right=%v top=%v bottom=%v", left, right, top, bottom)
	}
	if left < defaultSizer.MinPadding || top < defaultSizer.MinPadding {
		t.Errorf("padding below minimum: left=%v top=%v", left, top)
	}
}

func TestFit(t *testing.T) {
	pos := map[string]geom.Position{"a": {X: 0, Y: 0}}
	dims := map[string]geom.Dimensions{"a": {Width: 100, Height: 40}}

	cd := defaultSizer.Fit(pos, dims, geom.Dimensions{Width: 200, Height: 100})
	if cd.Width != 200 || cd.Height != 100 {
		t.Errorf("Fit() size = %vx%v", cd.Width, cd.Height)
	}
	if cd.ContentOffset != (geom.Position{X: 50, Y: 30}) {
		t.Errorf("Fit() offset = %v", cd.ContentOffset)
	}

	empty := defaultSizer.Fit(nil, nil, geom.Dimensions{Width: 80, Height: 60})
	if empty.Width != 80 || empty.ContentOffset != (geom.Position{}) {
		t.Errorf("Fit(empty) = %+v", empty)
	}
}
