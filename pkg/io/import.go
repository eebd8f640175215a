package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/matzehuels/planarfaces/pkg/errors"
	"github.com/matzehuels/planarfaces/pkg/planar"
)

type document struct {
	Vertices [][]float64 `json:"vertices"`
	Edges    [][]float64 `json:"edges"`
}

// ReadDocument decodes and validates a JSON graph document from r.
//
// Decoding failures return INVALID_FORMAT. Structural problems return
// INVALID_INPUT, out-of-range edge indices INVALID_EDGE_REFERENCE and self
// loops SELF_LOOP. ReadDocument does not close r.
func ReadDocument(r io.Reader) (planar.Document, error) {
	var raw document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return planar.Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
	}
	return raw.validate()
}

// ParseDocument decodes and validates a JSON graph document held in memory.
func ParseDocument(data []byte) (planar.Document, error) {
	return ReadDocument(bytes.NewReader(data))
}

// ImportDocument reads and validates the JSON graph document at path.
func ImportDocument(path string) (planar.Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return planar.Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return planar.Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadDocument(f)
	if err != nil {
		return planar.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadGraph decodes a document from r and builds a graph from it.
func ReadGraph(r io.Reader, opts ...planar.Option) (*planar.Graph, error) {
	doc, err := ReadDocument(r)
	if err != nil {
		return nil, err
	}
	return planar.New(doc, opts...)
}

func (d document) validate() (planar.Document, error) {
	out := planar.Document{
		Vertices: make([][2]float64, len(d.Vertices)),
		Edges:    make([][2]int, len(d.Edges)),
	}

	for i, v := range d.Vertices {
		if len(v) != 2 {
			return planar.Document{}, errors.New(errors.ErrCodeInvalidInput, "vertex %d: want 2 coordinates, got %d", i, len(v))
		}
		if err := errors.ValidateCoordinate(i, v[0], v[1]); err != nil {
			return planar.Document{}, err
		}
		out.Vertices[i] = [2]float64{v[0], v[1]}
	}

	for i, e := range d.Edges {
		if len(e) != 2 {
			return planar.Document{}, errors.New(errors.ErrCodeInvalidInput, "edge %d: want 2 vertex indices, got %d", i, len(e))
		}
		v1, err := index(i, e[0], len(d.Vertices))
		if err != nil {
			return planar.Document{}, err
		}
		v2, err := index(i, e[1], len(d.Vertices))
		if err != nil {
			return planar.Document{}, err
		}
		if err := errors.ValidateEdgeIndices(i, v1, v2, len(d.Vertices)); err != nil {
			return planar.Document{}, err
		}
		out.Edges[i] = [2]int{v1, v2}
	}

	return out, nil
}

// index converts the JSON number f to a vertex index of edge i. Whole
// numbers too large for an int can never name one of n vertices.
func index(i int, f float64, n int) (int, error) {
	if f != math.Trunc(f) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "edge %d: vertex indices must be integers", i)
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, errors.New(errors.ErrCodeInvalidEdgeReference, "edge %d: vertex index %g out of range [0, %d)", i, f, n)
	}
	return int(f), nil
}
