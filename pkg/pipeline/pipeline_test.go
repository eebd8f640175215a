package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/planarfaces/pkg/cache"
	"github.com/matzehuels/planarfaces/pkg/errors"
	"github.com/matzehuels/planarfaces/pkg/ids"
	pio "github.com/matzehuels/planarfaces/pkg/io"
	"github.com/matzehuels/planarfaces/pkg/planar"
	"github.com/matzehuels/planarfaces/pkg/planar/cycles"
	"github.com/matzehuels/planarfaces/pkg/render"
)

var diagonalQuad = planar.Document{
	Vertices: [][2]float64{{0, 0}, {2, 0}, {2, 3}, {0, 2}},
	Edges:    [][2]int{{0, 1}, {1, 2}, {0, 2}, {0, 3}, {2, 3}},
}

var twoTriangles = planar.Document{
	Vertices: [][2]float64{{0, 0}, {1, 0}, {0, 1}, {5, 5}, {6, 5}, {5, 6}},
	Edges:    [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}},
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should be valid: %v", err)
	}

	if opts.Strategy != DefaultStrategy {
		t.Errorf("Strategy should be %q, got %q", DefaultStrategy, opts.Strategy)
	}
	if opts.StrategyValue() != cycles.Components {
		t.Errorf("StrategyValue should be Components, got %v", opts.StrategyValue())
	}
	if diff := cmp.Diff([]string{DefaultFormat}, opts.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if opts.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency should be %d, got %d", DefaultConcurrency, opts.Concurrency)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsNormalization(t *testing.T) {
	opts := Options{Strategy: " Legacy ", Formats: []string{"JSON", "mp", "json"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Strategy != "legacy" {
		t.Errorf("Strategy should be normalized, got %q", opts.Strategy)
	}
	want := []render.Format{render.FormatJSON, render.FormatMsgpack}
	if diff := cmp.Diff(want, opts.FormatValues()); diff != "" {
		t.Errorf("FormatValues mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"unknown strategy", Options{Strategy: "bfs"}, errors.ErrCodeInvalidStrategy},
		{"unknown format", Options{Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{Scale: -1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsRevalidateAfterEdit(t *testing.T) {
	base := Options{Strategy: "components", Formats: []string{"json"}}
	if err := base.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	edited := base
	edited.Strategy = "legacy"
	edited.Formats = []string{"dot"}
	if err := edited.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if edited.StrategyValue() != cycles.Legacy {
		t.Errorf("StrategyValue = %v, want Legacy", edited.StrategyValue())
	}
	if diff := cmp.Diff([]render.Format{render.FormatDOT}, edited.FormatValues()); diff != "" {
		t.Errorf("FormatValues mismatch (-want +got):\n%s", diff)
	}
	if base.StrategyValue() != cycles.Components {
		t.Error("editing a copy should not change the original")
	}

	edited.Strategy = "bfs"
	if err := edited.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidStrategy) {
		t.Errorf("error = %v, want INVALID_STRATEGY", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Strategy: "legacy", Formats: []string{"json", "svg"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	scaled := opts
	scaled.Scale = 10

	if opts.ArtifactKeyOpts(render.FormatJSON) != scaled.ArtifactKeyOpts(render.FormatJSON) {
		t.Error("scale should not affect JSON keys")
	}
	if opts.ArtifactKeyOpts(render.FormatSVG) == scaled.ArtifactKeyOpts(render.FormatSVG) {
		t.Error("scale should affect SVG keys")
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), diagonalQuad, Options{
		Strategy: "legacy",
		Formats:  []string{"json", "dot"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.RunID == "" || res.DocHash == "" {
		t.Error("RunID and DocHash should be set")
	}
	if res.CacheHit {
		t.Error("NullCache run should not be a cache hit")
	}
	want := Stats{VertexCount: 4, EdgeCount: 5, FaceCount: 2}
	got := res.Stats
	got.DetectTime, got.RenderTime = 0, 0
	if got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}

	var faceIDs []ids.Handle
	for _, f := range res.FaceSet.Faces {
		faceIDs = append(faceIDs, f.ID)
	}
	if diff := cmp.Diff([]int64{110, 111}, toInt64(faceIDs)); diff != "" {
		t.Errorf("face ids mismatch (-want +got):\n%s", diff)
	}
	if res.FaceSet.Strategy != "legacy" {
		t.Errorf("FaceSet.Strategy = %q", res.FaceSet.Strategy)
	}

	var decoded pio.FaceSet
	if err := json.Unmarshal(res.Artifacts["json"], &decoded); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if diff := cmp.Diff(res.FaceSet, decoded); diff != "" {
		t.Errorf("json artifact mismatch (-want +got):\n%s", diff)
	}
	if !bytes.HasPrefix(res.Artifacts["dot"], []byte("graph G {")) {
		t.Errorf("dot artifact = %.40s", res.Artifacts["dot"])
	}
}

func toInt64(hs []ids.Handle) []int64 {
	out := make([]int64, len(hs))
	for i, h := range hs {
		out[i] = int64(h)
	}
	return out
}

func TestExecuteStrategies(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	legacy, err := runner.Execute(ctx, twoTriangles, Options{Strategy: "legacy"})
	if err != nil {
		t.Fatal(err)
	}
	components, err := runner.Execute(ctx, twoTriangles, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if legacy.Stats.FaceCount != 1 {
		t.Errorf("legacy should only see the component of vertex 1, got %d faces", legacy.Stats.FaceCount)
	}
	if components.Stats.FaceCount != 2 {
		t.Errorf("components should find both triangles, got %d faces", components.Stats.FaceCount)
	}
}

func TestExecuteInvalidDocument(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	doc := planar.Document{
		Vertices: [][2]float64{{0, 0}, {1, 0}},
		Edges:    [][2]int{{0, 2}},
	}
	_, err := runner.Execute(context.Background(), doc, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidEdgeReference) {
		t.Errorf("error = %v, want INVALID_EDGE_REFERENCE", err)
	}
}

// countingCache records Get and Set traffic on top of a map.
type countingCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newCountingCache() *countingCache {
	return &countingCache{data: make(map[string][]byte)}
}

func (c *countingCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *countingCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *countingCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *countingCache) Close() error { return nil }

var _ cache.Cache = (*countingCache)(nil)

func TestExecuteCache(t *testing.T) {
	ctx := context.Background()
	c := newCountingCache()
	runner := NewRunner(c, nil, nil)
	opts := Options{Strategy: "legacy", Formats: []string{"json", "msgpack"}}

	first, err := runner.Execute(ctx, diagonalQuad, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first run should miss")
	}
	if c.sets != 2 {
		t.Errorf("first run should store 2 artifacts, stored %d", c.sets)
	}

	second, err := runner.Execute(ctx, diagonalQuad, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should hit")
	}
	if c.sets != 2 {
		t.Errorf("cache hit should not store again, sets = %d", c.sets)
	}
	if diff := cmp.Diff(first.Artifacts, second.Artifacts); diff != "" {
		t.Errorf("cached artifacts differ (-first +second):\n%s", diff)
	}

	// Refresh bypasses reads but still writes
	opts.Refresh = true
	third, err := runner.Execute(ctx, diagonalQuad, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("refresh run should not report a hit")
	}
	if c.sets != 4 {
		t.Errorf("refresh should rewrite artifacts, sets = %d", c.sets)
	}
}

func TestExecuteFileCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, cache.NewScopedKeyer(nil, "test:"), nil)
	defer runner.Close()

	if _, err := runner.Execute(ctx, diagonalQuad, Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := runner.Execute(ctx, diagonalQuad, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheHit {
		t.Error("second run against the file cache should hit")
	}
}

func TestExecuteBatch(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	inputs := []Input{
		{Name: "quad", Doc: diagonalQuad},
		{Name: "triangles", Doc: twoTriangles},
		{Name: "empty", Doc: planar.Document{}},
	}

	results, err := runner.ExecuteBatch(context.Background(), inputs, Options{Concurrency: 2})
	if err != nil {
		t.Fatalf("ExecuteBatch: %v", err)
	}
	if len(results) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(results), len(inputs))
	}
	want := []int{2, 2, 0}
	for i, res := range results {
		if res.Stats.FaceCount != want[i] {
			t.Errorf("%s: %d faces, want %d", inputs[i].Name, res.Stats.FaceCount, want[i])
		}
	}
}

func TestExecuteBatchError(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	inputs := []Input{
		{Name: "quad", Doc: diagonalQuad},
		{Name: "loop.json", Doc: planar.Document{
			Vertices: [][2]float64{{0, 0}},
			Edges:    [][2]int{{0, 0}},
		}},
	}

	_, err := runner.ExecuteBatch(context.Background(), inputs, Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "loop.json") {
		t.Errorf("error should name the failing input: %v", err)
	}
	if !errors.Is(err, errors.ErrCodeSelfLoop) {
		t.Errorf("error = %v, want SELF_LOOP", err)
	}
}

func TestDocumentHash(t *testing.T) {
	h1, err := DocumentHash(diagonalQuad)
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := DocumentHash(diagonalQuad)
	h3, _ := DocumentHash(twoTriangles)
	if h1 != h2 {
		t.Error("DocumentHash should be deterministic")
	}
	if h1 == h3 {
		t.Error("different documents should hash differently")
	}
}
