package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/planarfaces/pkg/planar"
)

// DefaultScale maps one input unit to an inch.
const DefaultScale = 72.0

// palette colours face boundaries in detection order; it wraps around.
var palette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231",
	"#911eb4", "#42d4f4", "#f032e6", "#9a6324",
}

// Options configures node-link diagram rendering.
type Options struct {
	// Scale is the number of points per input unit. Zero means DefaultScale.
	Scale float64
	// HideFaces draws the bare graph without face highlighting.
	HideFaces bool
	// Handles labels vertices with their handles instead of their indices.
	Handles bool
}

// ToDOT converts a graph and its detected faces to Graphviz DOT.
// The result can be rendered with [RenderSVG].
func ToDOT(g *planar.Graph, faces []planar.Face, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	for i, v := range g.Vertices() {
		label := strconv.Itoa(i)
		if opts.Handles {
			label = v.ID.String()
		}
		fmt.Fprintf(&buf, "  %s [label=%q, pos=%q];\n", vertexName(i), label, pos(v.X, v.Y, scale))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -- %s;\n", vertexName(e.V1), vertexName(e.V2))
	}

	if !opts.HideFaces && len(faces) > 0 {
		buf.WriteString("\n")
		for i, f := range faces {
			writeFace(&buf, g, f, palette[i%len(palette)], scale)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeFace(buf *bytes.Buffer, g *planar.Graph, f planar.Face, color string, scale float64) {
	n := len(f.Vertices)
	if n == 0 {
		return
	}
	var cx, cy float64
	for i, v := range f.Vertices {
		next := f.Vertices[(i+1)%n]
		fmt.Fprintf(buf, "  %s -- %s [color=%q, penwidth=2];\n", vertexName(v), vertexName(next), color)
		vx := g.Vertex(v)
		cx += vx.X
		cy += vx.Y
	}
	cx /= float64(n)
	cy /= float64(n)
	fmt.Fprintf(buf, "  %q [shape=plaintext, style=\"\", label=%q, fontcolor=%q, pos=%q];\n",
		"f"+f.ID.String(), f.ID.String(), color, pos(cx, cy, scale))
}

func vertexName(i int) string { return "v" + strconv.Itoa(i) }

func pos(x, y, scale float64) string {
	return strconv.FormatFloat(x*scale, 'f', -1, 64) + "," + strconv.FormatFloat(y*scale, 'f', -1, 64) + "!"
}

// RenderSVG lays out a DOT graph with the neato engine, which honours pinned
// positions, and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag, which carries pt units,
// with one sized in plain pixels.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
