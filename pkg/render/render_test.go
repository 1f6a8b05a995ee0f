package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/shapes"
)

const (
	boxSVG = `<svg width="10" height="12">
  <circle id="attach-top" cx="5" cy="2"/>
  <circle id="attach-bottom" cx="5" cy="8"/>
  <circle id="attach-front-left" cx="2" cy="6"/>
  <circle id="attach-back-right" cx="8" cy="4"/>
  <circle id="attach-top-left" cx="3" cy="2"/>
</svg>`
	negBoxSVG = `<svg width="10" height="12">
  <circle id="attach-top" cx="-5" cy="-2"/>
  <circle id="attach-bottom" cx="-5" cy="-8"/>
</svg>`
	iconSVG    = `<svg><rect width="2" height="2"/><circle id="attach-point" cx="1" cy="1"/></svg>`
	negIconSVG = `<svg><circle id="attach-point" cx="-1" cy="-1"/></svg>`
	bareSVG    = `<svg><rect width="2" height="2"/></svg>`
)

func testLibrary(t *testing.T) *shapes.Library {
	t.Helper()
	lib, err := shapes.NewLibrary([]shapes.Definition{
		{Name: "box", Kind: shapes.Solid, Markup: boxSVG},
		{Name: "negbox", Kind: shapes.Solid, Markup: negBoxSVG},
		{Name: "broken", Kind: shapes.Solid, Markup: `<svg><g></svg>`},
		{Name: "icon", Kind: shapes.Flat, AttachTo: "top", Markup: iconSVG},
		{Name: "negicon", Kind: shapes.Flat, AttachTo: "top", Markup: negIconSVG},
		{Name: "bare", Kind: shapes.Flat, Markup: bareSVG},
	})
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

func comp(id, shape, parent, position string) diagram.Component {
	c := diagram.Component{ID: id, Shape: shape, Position: position}
	if parent != "" {
		c.RelativeToID = diagram.Ref(parent)
	}
	return c
}

var canvas = Canvas{Width: 100, Height: 80}

func TestExtractAttachmentPoints(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []diagram.AttachmentPoint
		wantErr bool
	}{
		{
			name: "document order",
			src:  boxSVG,
			want: []diagram.AttachmentPoint{
				{Name: "top", X: 5, Y: 2},
				{Name: "bottom", X: 5, Y: 8},
				{Name: "front-left", X: 2, Y: 6},
				{Name: "back-right", X: 8, Y: 4},
				{Name: "top-left", X: 3, Y: 2},
			},
		},
		{
			name: "nested and filtered",
			src: `<svg><g><circle id="attach-point" cx="1.5" cy="2"/></g>` +
				`<circle id="marker" cx="1" cy="1"/><rect id="attach-top" x="1" y="1"/>` +
				`<circle id="attach-nox" cy="3"/><circle id="attach-bad" cx="a" cy="3"/></svg>`,
			want: []diagram.AttachmentPoint{{Name: "point", X: 1.5, Y: 2}},
		},
		{name: "no anchors", src: bareSVG, want: []diagram.AttachmentPoint{}},
		{name: "malformed", src: `<svg><circle`, wantErr: true},
		{name: "not svg", src: `<html/>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractAttachmentPoints(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractAttachmentPoints() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" && !tt.wantErr {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSolve(t *testing.T) {
	root := comp("a", "box", "", "center")
	root.AbsolutePosition = diagram.Point{X: 50, Y: 40}
	root.AttachmentPoints = []diagram.AttachmentPoint{
		{Name: "top", X: 5, Y: 2}, {Name: "front-left", X: 2, Y: 6}, {Name: "top-left", X: 3, Y: 2},
	}
	child := func(position string) diagram.Component {
		c := comp("b", "box", "a", position)
		c.AttachmentPoints = []diagram.AttachmentPoint{
			{Name: "bottom", X: 5, Y: 8}, {Name: "back-right", X: 8, Y: 4},
		}
		return c
	}
	processed := []diagram.Component{root}

	tests := []struct {
		name      string
		c         diagram.Component
		want      diagram.Point
		wantDiags int
	}{
		{name: "root", c: comp("a", "box", "", "center"), want: diagram.Point{X: 50, Y: 40}},
		{name: "top", c: child("top"), want: diagram.Point{X: 50, Y: 34}},
		{name: "front-left", c: child("front-left"), want: diagram.Point{X: 44, Y: 42}},
		{name: "specific anchor", c: child("top-left"), want: diagram.Point{X: 48, Y: 34}},
		{name: "missing ref anchor", c: child("front-right"), want: diagram.Point{X: 50, Y: 40}, wantDiags: 2},
		{name: "missing contact anchor", c: comp("b", "box", "a", "top"), want: diagram.Point{X: 55, Y: 42}, wantDiags: 1},
		{name: "unknown face", c: child("sideways"), want: diagram.Point{X: 50, Y: 40}, wantDiags: 1},
		{name: "missing reference", c: comp("b", "box", "ghost", "top"), want: diagram.Point{X: 50, Y: 40}, wantDiags: 1},
		{name: "root not centered", c: comp("a", "box", "", "top"), want: diagram.Point{X: 50, Y: 40}, wantDiags: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := Solve(tt.c, processed, canvas)
			if got != tt.want {
				t.Errorf("Solve() = %+v, want %+v", got, tt.want)
			}
			if len(diags) != tt.wantDiags {
				t.Errorf("diagnostics = %v, want %d", diags, tt.wantDiags)
			}
		})
	}
}

func TestSolveNormalizesAnchors(t *testing.T) {
	ref := comp("a", "negbox", "", "center")
	ref.AbsolutePosition = diagram.Point{X: 50, Y: 40}
	ref.AttachmentPoints = []diagram.AttachmentPoint{{Name: "top", X: -5, Y: -2}}
	c := comp("b", "box", "a", "top")
	c.AttachmentPoints = []diagram.AttachmentPoint{{Name: "bottom", X: 5, Y: 8}}

	got, _ := Solve(c, []diagram.Component{ref}, canvas)
	if want := (diagram.Point{X: 50, Y: 34}); got != want {
		t.Errorf("Solve() = %+v, want %+v", got, want)
	}
}

func TestCompile(t *testing.T) {
	lib := testLibrary(t)
	list := []diagram.Component{
		comp("a", "box", "", "center"),
		comp("b", "box", "a", "top"),
		comp("c", "box", "a", "front-left"),
	}
	list[1].Attached2DShapes = []diagram.Attached2DShape{{Name: "icon", AttachedTo: "top"}}

	res := Compile(list, lib, Options{Canvas: canvas})

	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
	want := map[string]diagram.Point{
		"a": {X: 50, Y: 40},
		"b": {X: 50, Y: 34},
		"c": {X: 44, Y: 42},
	}
	for _, c := range res.Components {
		if c.AbsolutePosition != want[c.ID] {
			t.Errorf("%s at %+v, want %+v", c.ID, c.AbsolutePosition, want[c.ID])
		}
		if len(c.AttachmentPoints) != 5 {
			t.Errorf("%s has %d anchors, want 5", c.ID, len(c.AttachmentPoints))
		}
	}
	if res.Components[1].AbsolutePosition.Y >= res.Components[0].AbsolutePosition.Y {
		t.Error("a component attached on top should be placed above its reference")
	}

	for _, s := range []string{
		`<g id="a" transform="translate(50, 40)">`,
		`<g id="b" transform="translate(50, 34)">`,
		`<g id="c" transform="translate(44, 42)">`,
		`<g id="top-icon" transform="translate(4, 1)">`,
		`display="none"`,
	} {
		if !strings.Contains(res.SVG, s) {
			t.Errorf("compiled markup missing %s:\n%s", s, res.SVG)
		}
	}
	if strings.Index(res.SVG, `id="a"`) > strings.Index(res.SVG, `id="b"`) {
		t.Error("components should be emitted in list order")
	}
	if res.Placed() != 3 || res.Bounds[0].Width != 10 || res.Bounds[0].Height != 12 {
		t.Errorf("bounds = %+v", res.Bounds)
	}

	if list[0].AttachmentPoints != nil || list[1].AbsolutePosition != (diagram.Point{}) {
		t.Error("Compile modified its input")
	}
}

func TestCompileShowAnchors(t *testing.T) {
	res := Compile([]diagram.Component{comp("a", "box", "", "center")}, testLibrary(t), Options{Canvas: canvas, ShowAnchors: true})
	if strings.Contains(res.SVG, "display") {
		t.Errorf("anchors should be visible:\n%s", res.SVG)
	}
}

func TestCompileDegrades(t *testing.T) {
	lib := testLibrary(t)
	list := []diagram.Component{
		comp("a", "box", "", "center"),
		comp("b", "missing", "a", "top"),
		comp("c", "broken", "a", "top"),
		comp("d", "icon", "a", "top"),
		comp("e", "box", "a", "top"),
	}
	list[4].Attached2DShapes = []diagram.Attached2DShape{
		{Name: "nope", AttachedTo: "top"},
		{Name: "bare", AttachedTo: "top"},
		{Name: "icon", AttachedTo: "screen"},
		{Name: "box", AttachedTo: "top"},
	}

	res := Compile(list, lib, Options{Canvas: canvas})

	if len(res.Components) != len(list) {
		t.Fatalf("got %d components, want %d", len(res.Components), len(list))
	}
	if res.Placed() != 2 {
		t.Errorf("placed %d components, want 2", res.Placed())
	}
	byID := map[string]int{}
	for _, d := range res.Diagnostics {
		byID[d.ComponentID]++
	}
	want := map[string]int{"b": 1, "c": 1, "d": 1, "e": 4}
	if diff := cmp.Diff(want, byID); diff != "" {
		t.Errorf("diagnostics per component (-want +got):\n%s", diff)
	}
	if strings.Contains(res.SVG, `id="b"`) || strings.Contains(res.SVG, `id="top-nope"`) {
		t.Error("skipped components or decorations should not be emitted")
	}
	if !strings.Contains(res.SVG, `id="e"`) {
		t.Error("a component after failures should still compile")
	}
}

func TestCompileMissingReference(t *testing.T) {
	list := []diagram.Component{
		comp("a", "box", "", "center"),
		comp("b", "box", "ghost", "top"),
	}
	res := Compile(list, testLibrary(t), Options{Canvas: canvas})
	if got := res.Components[1].AbsolutePosition; got != canvas.Center() {
		t.Errorf("missing reference placed at %+v, want center", got)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Level != diagram.LevelError {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
}

func TestCompileDeterministic(t *testing.T) {
	lib := shapes.Default()
	list := []diagram.Component{
		comp("a", "layer4x3", "", "center"),
		comp("b", "microservice", "a", "top-left"),
		comp("c", "database", "a", "front-right"),
		comp("d", "monitor", "b", "top"),
	}
	list[3].Attached2DShapes = []diagram.Attached2DShape{{Name: "bits-on-screen", AttachedTo: "screen"}}

	first := Compile(list, lib, Options{Canvas: DefaultCanvas})
	second := Compile(list, lib, Options{Canvas: DefaultCanvas})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("compile is not deterministic:\n%s", diff)
	}
	if len(first.Diagnostics) != 0 {
		t.Errorf("default library diagram produced diagnostics: %v", first.Diagnostics)
	}
}

func TestWelderNormalizesAnchors(t *testing.T) {
	lib := testLibrary(t)
	list := []diagram.Component{comp("a", "negbox", "", "center")}
	list[0].Attached2DShapes = []diagram.Attached2DShape{{Name: "negicon", AttachedTo: "top"}}

	res := Compile(list, lib, Options{Canvas: canvas})
	if !strings.Contains(res.SVG, `<g id="top-negicon" transform="translate(4, 1)">`) {
		t.Errorf("welder should normalize anchors like the solver:\n%s", res.SVG)
	}
}

func TestWelderRepeatedDecorationSharesID(t *testing.T) {
	lib := testLibrary(t)
	list := []diagram.Component{comp("a", "negbox", "", "center")}
	deco := diagram.Attached2DShape{Name: "negicon", AttachedTo: "top"}
	list[0].Attached2DShapes = []diagram.Attached2DShape{deco, deco}

	res := Compile(list, lib, Options{Canvas: canvas})
	if n := strings.Count(res.SVG, `id="top-negicon"`); n != 2 {
		t.Errorf("got %d welded groups, want 2:\n%s", n, res.SVG)
	}
}
