package render_test

import (
	"fmt"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/render"
	"github.com/matzehuels/isostack/pkg/shapes"
)

func ExampleCompile() {
	list := []diagram.Component{
		{ID: "base", Shape: "microservice", Position: "center"},
		{ID: "cache", Shape: "database", Position: "top", RelativeToID: diagram.Ref("base")},
		{ID: "api", Shape: "microservice", Position: "front-left", RelativeToID: diagram.Ref("base"),
			Attached2DShapes: []diagram.Attached2DShape{{Name: "process", AttachedTo: "top"}}},
	}

	res := render.Compile(list, shapes.Default(), render.Options{Canvas: render.DefaultCanvas})
	for _, c := range res.Components {
		fmt.Printf("%s: (%g, %g)\n", c.ID, c.AbsolutePosition.X, c.AbsolutePosition.Y)
	}
	fmt.Println("diagnostics:", len(res.Diagnostics))
	// Output:
	// base: (400, 300)
	// cache: (400, 240)
	// api: (350, 329)
	// diagnostics: 0
}

func ExampleSolve() {
	ref := diagram.Component{
		ID:               "a",
		Position:         "center",
		AbsolutePosition: diagram.Point{X: 100, Y: 100},
		AttachmentPoints: []diagram.AttachmentPoint{{Name: "top", X: 50, Y: 29}},
	}
	c := diagram.Component{
		ID:               "b",
		Position:         "top",
		RelativeToID:     diagram.Ref("a"),
		AttachmentPoints: []diagram.AttachmentPoint{{Name: "bottom", X: 50, Y: 89}},
	}

	p, diags := render.Solve(c, []diagram.Component{ref}, render.DefaultCanvas)
	fmt.Println(p.X, p.Y, len(diags))
	// Output: 100 40 0
}
