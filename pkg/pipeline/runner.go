package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/planarfaces/pkg/cache"
	pio "github.com/matzehuels/planarfaces/pkg/io"
	"github.com/matzehuels/planarfaces/pkg/planar"
	"github.com/matzehuels/planarfaces/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of cached artifacts. Zero means cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs detection on doc and encodes the result, reusing cached
// artifacts where possible.
func (r *Runner) Execute(ctx context.Context, doc planar.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])

	hash, err := DocumentHash(doc)
	if err != nil {
		return nil, err
	}
	result.DocHash = hash

	// Stage 1: Detect
	detectStart := time.Now()
	g, faces, err := Detect(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.FaceSet = NewFaceSet(g, faces, opts)
	result.Stats.DetectTime = time.Since(detectStart)
	result.Stats.VertexCount = g.VertexCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.FaceCount = len(faces)

	logger.Info("detected faces",
		"vertices", g.VertexCount(),
		"edges", g.EdgeCount(),
		"faces", len(faces),
		"strategy", opts.Strategy,
		"duration", result.Stats.DetectTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hit, err := r.renderWithCache(ctx, hash, g, faces, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderWithCache returns cached artifacts for every format that has one and
// renders the rest.
func (r *Runner) renderWithCache(ctx context.Context, hash string, g *planar.Graph, faces []planar.Face, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.formats))
	var missing []render.Format

	for _, format := range opts.formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			if err == nil && hit {
				artifacts[string(format)] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, g, faces, missing, opts)
	if err != nil {
		return nil, false, err
	}

	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.DefaultTTL
	}
	for _, format := range missing {
		data := rendered[string(format)]
		artifacts[string(format)] = data
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
		}
	}
	return artifacts, false, nil
}

// Input is one named document of a batch.
type Input struct {
	Name string
	Doc  planar.Document
}

// ExecuteBatch runs Execute for every input concurrently, at most
// opts.Concurrency at a time. Results are returned in input order. The first
// failure cancels the remaining runs.
func (r *Runner) ExecuteBatch(ctx context.Context, inputs []Input, opts Options) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	results := make([]*Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			runOpts := opts
			runOpts.Logger = opts.Logger.With("input", in.Name)
			res, err := r.Execute(ctx, in.Doc, runOpts)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DocumentHash returns the content hash of doc in its canonical encoding.
func DocumentHash(doc planar.Document) (string, error) {
	var buf bytes.Buffer
	if err := pio.WriteDocument(&buf, doc); err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
