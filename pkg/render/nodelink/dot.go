package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the absolute position and decorations to node labels.
	// When false, labels show the shape name and a short id.
	Detailed bool
}

// ToDOT converts a component list to Graphviz DOT format.
// Edges to references that are not in list are drawn from a red
// placeholder node so dangling references stay visible.
func ToDOT(list []diagram.Component, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	known := make(map[string]bool, len(list))
	for _, c := range list {
		known[c.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(fmtAttrs(c, fmtLabel(c, opts.Detailed)), ", "))
	}

	buf.WriteString("\n")
	for _, c := range list {
		if c.RelativeToID == nil {
			continue
		}
		ref := *c.RelativeToID
		if !known[ref] {
			known[ref] = true
			fmt.Fprintf(&buf, "  %q [label=%q, color=red, fontcolor=red];\n", ref, "missing "+shortID(ref))
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", ref, c.ID, c.Position)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c diagram.Component, detailed bool) string {
	label := c.Shape + "\n" + shortID(c.ID)
	if !detailed {
		return label
	}
	parts := []string{fmt.Sprintf("at: %g, %g", c.AbsolutePosition.X, c.AbsolutePosition.Y)}
	for _, d := range c.Attached2DShapes {
		parts = append(parts, fmt.Sprintf("%s @ %s", d.Name, d.AttachedTo))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(c diagram.Component, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case c.Cut:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case c.IsRoot():
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

// shortID trims the generated prefix and keeps the first block of a UUID.
func shortID(id string) string {
	s := strings.TrimPrefix(id, diagram.IDPrefix)
	if i := strings.IndexByte(s, '-'); i > 0 && len(s) == 36 {
		return s[:i]
	}
	return s
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
