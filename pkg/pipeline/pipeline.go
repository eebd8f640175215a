// Package pipeline runs face detection end to end for the CLI and the HTTP
// server.
//
// This package implements the complete decode → detect → render pipeline so
// that every entry point applies the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Detect: Build the graph container and find its faces
//  2. Render: Encode the result in each requested format (JSON, MessagePack,
//     DOT, SVG)
//
// Encoded artifacts are cached by document content hash and options.
// Detection itself is cheap and always runs, so the [Result] always carries
// the face set.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Strategy: "legacy",
//	    Formats:  []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Several documents can be processed concurrently with [Runner.ExecuteBatch].
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planarfaces/pkg/cache"
	pio "github.com/matzehuels/planarfaces/pkg/io"
	"github.com/matzehuels/planarfaces/pkg/planar/cycles"
	"github.com/matzehuels/planarfaces/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStrategy is the DFS root selection used when none is given.
	DefaultStrategy = "components"

	// DefaultFormat is the output format used when none is given.
	DefaultFormat = string(render.FormatJSON)

	// DefaultConcurrency bounds ExecuteBatch when Options.Concurrency is 0.
	DefaultConcurrency = 4
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a detection run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Detection options
	Strategy           string `json:"strategy,omitempty"`
	AllowParallelEdges bool   `json:"allow_parallel_edges,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	HideFaces bool     `json:"hide_faces,omitempty"`
	Handles   bool     `json:"handles,omitempty"`

	// Runtime options (not serialized)
	Refresh     bool        `json:"-"` // Skip cache reads
	Concurrency int         `json:"-"` // ExecuteBatch worker limit
	Logger      *log.Logger `json:"-"`

	strategy cycles.Strategy
	formats  []render.Format
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// DocHash is the content hash of the input document.
	DocHash string

	// FaceSet is the serialized detection result.
	FaceSet pio.FaceSet

	// Artifacts contains encoded outputs keyed by format name.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	FaceCount   int
	DetectTime  time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// It is idempotent, and the parsed strategy and formats are always derived
// again from Strategy and Formats, so a validated copy may be edited and
// validated once more.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	s, err := cycles.ParseStrategy(o.Strategy)
	if err != nil {
		return err
	}
	o.strategy = s
	o.Strategy = s.String()

	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	formats, err := render.ParseFormats(o.Formats)
	if err != nil {
		return err
	}
	o.formats = formats
	o.Formats = make([]string, len(formats))
	for i, f := range formats {
		o.Formats[i] = string(f)
	}

	if o.Scale < 0 {
		return fmt.Errorf("scale must not be negative: %g", o.Scale)
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// StrategyValue returns the parsed strategy. Only valid after
// ValidateAndSetDefaults.
func (o *Options) StrategyValue() cycles.Strategy { return o.strategy }

// FormatValues returns the parsed formats. Only valid after
// ValidateAndSetDefaults.
func (o *Options) FormatValues() []render.Format { return o.formats }

// ArtifactKeyOpts returns cache key options for one encoded artifact.
// Render-only options are folded into the format string because they only
// change drawings.
func (o *Options) ArtifactKeyOpts(format render.Format) cache.ArtifactKeyOpts {
	f := string(format)
	if format == render.FormatDOT || format == render.FormatSVG {
		f = fmt.Sprintf("%s;scale=%g;hide=%t;handles=%t", format, o.Scale, o.HideFaces, o.Handles)
	}
	return cache.ArtifactKeyOpts{
		Strategy:      o.Strategy,
		Format:        f,
		ParallelEdges: o.AllowParallelEdges,
	}
}
