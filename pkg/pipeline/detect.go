package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/planarfaces/pkg/observability"
	"github.com/matzehuels/planarfaces/pkg/planar"
)

// Detect builds the graph container for doc and detects its faces.
// opts must have been validated.
func Detect(ctx context.Context, doc planar.Document, opts Options) (*planar.Graph, []planar.Face, error) {
	graphOpts := []planar.Option{planar.WithLogger(opts.Logger)}
	if opts.AllowParallelEdges {
		graphOpts = append(graphOpts, planar.WithParallelEdges())
	}

	observability.Pipeline().OnDetectStart(ctx, len(doc.Vertices), len(doc.Edges))
	start := time.Now()

	g, err := planar.New(doc, graphOpts...)
	if err != nil {
		observability.Pipeline().OnDetectComplete(ctx, 0, time.Since(start), err)
		return nil, nil, fmt.Errorf("build graph: %w", err)
	}

	faces, err := planar.Detect(g, planar.DetectOptions{Strategy: opts.StrategyValue()})
	observability.Pipeline().OnDetectComplete(ctx, len(faces), time.Since(start), err)
	if err != nil {
		return nil, nil, fmt.Errorf("detect faces: %w", err)
	}
	return g, faces, nil
}
