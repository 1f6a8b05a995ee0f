package pipeline

import (
	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/render"
	"github.com/matzehuels/isostack/pkg/render/nodelink"
	"github.com/matzehuels/isostack/pkg/render/sink"
)

// Render exports a compiled result in the given format.
func Render(res render.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(res, opts.SVGOptions()...)
	case FormatPNG, FormatPDF:
		svg, err := sink.RenderSVG(res, opts.SVGOptions()...)
		if err != nil {
			return nil, err
		}
		if format == FormatPNG {
			return render.ToPNG(svg, opts.Scale)
		}
		return render.ToPDF(svg)
	case FormatJSON:
		return sink.RenderJSON(res)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

// RenderTree draws the component hierarchy of list through Graphviz.
func RenderTree(list []diagram.Component, format string, detailed bool) ([]byte, error) {
	dot := nodelink.ToDOT(list, nodelink.Options{Detailed: detailed})
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(dot)
	case FormatPNG:
		return nodelink.RenderPNG(dot, DefaultScale)
	case FormatPDF:
		return nodelink.RenderPDF(dot)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported tree format: %s", format)
	}
}
