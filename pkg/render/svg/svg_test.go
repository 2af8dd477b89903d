package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
)

func sample() *diagram.Result {
	res := diagram.NewResult()
	res.Nodes["A"] = diagram.NodeLayout{
		Position:   geom.Position{X: 0, Y: 0},
		Dimensions: geom.Dimensions{Width: 300, Height: 300},
		Kind:       diagram.KindCell,
	}
	res.Nodes["api"] = diagram.NodeLayout{
		Position:   geom.Position{X: 100, Y: 50},
		Dimensions: geom.Dimensions{Width: 100, Height: 50},
		Kind:       diagram.KindComponent,
		Parent:     "A",
	}
	res.Nodes["db<1>"] = diagram.NodeLayout{
		Position:   geom.Position{X: 100, Y: 200},
		Dimensions: geom.Dimensions{Width: 100, Height: 50},
		Kind:       diagram.KindComponent,
		Parent:     "A",
	}
	res.Edges["e"] = diagram.EdgePath{ID: "e", Source: "api", Target: "db<1>", Path: "M 150 100 L 150 200"}
	res.Bounds = res.ComputeBounds()
	return res
}

func TestRender(t *testing.T) {
	out := string(Render(sample()))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-40 -40 380 380"`) {
		t.Errorf("unexpected header: %.120s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if !strings.Contains(out, `d="M 150 100 L 150 200"`) {
		t.Error("edge path not rendered verbatim")
	}
	// Cells are drawn before components.
	if strings.Index(out, `id="node-A"`) > strings.Index(out, `id="node-api"`) {
		t.Error("cell drawn after its component")
	}
	if strings.Contains(out, "<text") {
		t.Error("labels rendered without WithLabels")
	}
}

func TestRenderLabelsEscaped(t *testing.T) {
	out := string(Render(sample(), WithLabels(), WithPadding(0)))
	if !strings.Contains(out, `viewBox="0 0 300 300"`) {
		t.Errorf("padding not applied: %.120s", out)
	}
	if !strings.Contains(out, ">db&lt;1&gt;</text>") {
		t.Error("label not escaped")
	}
	if strings.Contains(out, "db<1>") {
		t.Error("raw id leaked into markup")
	}
}

func TestRenderEmpty(t *testing.T) {
	out := string(Render(diagram.NewResult(), WithPadding(10)))
	if !strings.Contains(out, `viewBox="-10 -10 20 20"`) {
		t.Errorf("empty result: %s", out)
	}
}
