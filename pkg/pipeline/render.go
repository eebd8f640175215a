package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	pio "github.com/matzehuels/planarfaces/pkg/io"
	"github.com/matzehuels/planarfaces/pkg/observability"
	"github.com/matzehuels/planarfaces/pkg/planar"
	"github.com/matzehuels/planarfaces/pkg/render"
	"github.com/matzehuels/planarfaces/pkg/render/nodelink"
)

// Render encodes the detection result in each of the given formats.
func Render(ctx context.Context, g *planar.Graph, faces []planar.Face, formats []render.Format, opts Options) (map[string][]byte, error) {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	observability.Pipeline().OnRenderStart(ctx, names)
	start := time.Now()

	artifacts, err := renderAll(ctx, g, faces, formats, opts)
	observability.Pipeline().OnRenderComplete(ctx, names, time.Since(start), err)
	return artifacts, err
}

func renderAll(ctx context.Context, g *planar.Graph, faces []planar.Face, formats []render.Format, opts Options) (map[string][]byte, error) {
	set := NewFaceSet(g, faces, opts)
	artifacts := make(map[string][]byte, len(formats))

	var dot string
	for _, format := range formats {
		var buf bytes.Buffer
		var err error

		switch format {
		case render.FormatJSON:
			err = pio.WriteFaces(&buf, set)
		case render.FormatMsgpack:
			err = pio.WriteMsgpack(&buf, set)
		case render.FormatDOT, render.FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(g, faces, nodelink.Options{
					Scale:     opts.Scale,
					HideFaces: opts.HideFaces,
					Handles:   opts.Handles,
				})
			}
			if format == render.FormatDOT {
				buf.WriteString(dot)
				break
			}
			var svg []byte
			svg, err = nodelink.RenderSVG(ctx, dot)
			buf.Write(svg)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[string(format)] = buf.Bytes()
	}
	return artifacts, nil
}

// NewFaceSet builds the serialized result and stamps it with the strategy
// used.
func NewFaceSet(g *planar.Graph, faces []planar.Face, opts Options) pio.FaceSet {
	set := pio.NewFaceSet(g, faces)
	set.Strategy = opts.Strategy
	return set
}
