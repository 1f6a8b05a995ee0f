package sink

import (
	"encoding/json"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/render"
)

type jsonOutput struct {
	Width       float64              `json:"width"`
	Height      float64              `json:"height"`
	Components  []jsonComponent      `json:"components"`
	Diagnostics []diagram.Diagnostic `json:"diagnostics,omitempty"`
}

type jsonComponent struct {
	ID       string   `json:"id"`
	Shape    string   `json:"shape"`
	Parent   string   `json:"parent,omitempty"`
	Position string   `json:"position"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Placed   bool     `json:"placed"`
	Cut      bool     `json:"cut,omitempty"`
	Anchors  []string `json:"anchors,omitempty"`
}

// RenderJSON exports component positions, bounds and diagnostics as a
// pretty-printed JSON document. Components keep list order; Placed is false
// for components the compiler had to skip.
func RenderJSON(res render.Result) ([]byte, error) {
	bounds := make(map[string]render.Bounds, len(res.Bounds))
	for _, b := range res.Bounds {
		bounds[b.ID] = b
	}

	out := jsonOutput{
		Width:       res.Canvas.Width,
		Height:      res.Canvas.Height,
		Components:  make([]jsonComponent, 0, len(res.Components)),
		Diagnostics: res.Diagnostics,
	}
	for _, c := range res.Components {
		b, placed := bounds[c.ID]
		jc := jsonComponent{
			ID:       c.ID,
			Shape:    c.Shape,
			Parent:   c.Parent(),
			Position: c.Position,
			X:        c.AbsolutePosition.X,
			Y:        c.AbsolutePosition.Y,
			Width:    b.Width,
			Height:   b.Height,
			Placed:   placed,
			Cut:      c.Cut,
		}
		for _, a := range c.AttachmentPoints {
			jc.Anchors = append(jc.Anchors, a.Name)
		}
		out.Components = append(out.Components, jc)
	}
	return json.MarshalIndent(out, "", "  ")
}
