package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/planarfaces/pkg/ids"
	"github.com/matzehuels/planarfaces/pkg/planar"
)

// VertexRecord is the serialized form of a vertex.
type VertexRecord struct {
	ID ids.Handle `json:"id" msgpack:"id"`
	X  float64    `json:"x" msgpack:"x"`
	Y  float64    `json:"y" msgpack:"y"`
}

// EdgeRecord is the serialized form of an edge, with endpoint handles.
type EdgeRecord struct {
	ID ids.Handle `json:"id" msgpack:"id"`
	V1 ids.Handle `json:"v1" msgpack:"v1"`
	V2 ids.Handle `json:"v2" msgpack:"v2"`
}

// FaceRecord is the serialized form of a face.
type FaceRecord struct {
	ID       ids.Handle     `json:"id" msgpack:"id"`
	Vertices []VertexRecord `json:"vertices" msgpack:"vertices"`
	Edges    []EdgeRecord   `json:"edges" msgpack:"edges"`
}

// BoundsRecord is the serialized bounding box. Empty is set when the graph
// has no vertices, in which case the minimums exceed the maximums.
type BoundsRecord struct {
	MinX  float64 `json:"min_x" msgpack:"min_x"`
	MaxX  float64 `json:"max_x" msgpack:"max_x"`
	MinY  float64 `json:"min_y" msgpack:"min_y"`
	MaxY  float64 `json:"max_y" msgpack:"max_y"`
	Empty bool    `json:"empty,omitempty" msgpack:"empty,omitempty"`
}

// FaceSet is the serialized result of one detection run.
type FaceSet struct {
	Count    int          `json:"count" msgpack:"count"`
	Strategy string       `json:"strategy,omitempty" msgpack:"strategy,omitempty"`
	Bounds   BoundsRecord `json:"bounds" msgpack:"bounds"`
	Faces    []FaceRecord `json:"faces" msgpack:"faces"`
}

// NewFaceRecord resolves f against g.
func NewFaceRecord(g *planar.Graph, f planar.Face) FaceRecord {
	rec := FaceRecord{
		ID:       f.ID,
		Vertices: make([]VertexRecord, 0, len(f.Vertices)),
		Edges:    make([]EdgeRecord, 0, len(f.Edges)),
	}
	for _, v := range g.FaceVertices(f) {
		rec.Vertices = append(rec.Vertices, VertexRecord{ID: v.ID, X: v.X, Y: v.Y})
	}
	for _, i := range f.Edges {
		e := g.Edge(i)
		rec.Edges = append(rec.Edges, EdgeRecord{ID: e.ID, V1: g.Vertex(e.V1).ID, V2: g.Vertex(e.V2).ID})
	}
	return rec
}

// NewBoundsRecord converts b for serialization.
func NewBoundsRecord(b planar.Bounds) BoundsRecord {
	return BoundsRecord{
		MinX:  b.X.Min,
		MaxX:  b.X.Max,
		MinY:  b.Y.Min,
		MaxY:  b.Y.Max,
		Empty: b.Empty(),
	}
}

// NewFaceSet builds the serialized result for faces detected on g.
func NewFaceSet(g *planar.Graph, faces []planar.Face) FaceSet {
	set := FaceSet{
		Count:  len(faces),
		Bounds: NewBoundsRecord(g.Bounds()),
		Faces:  make([]FaceRecord, len(faces)),
	}
	for i, f := range faces {
		set.Faces[i] = NewFaceRecord(g, f)
	}
	return set
}

// MarshalFace encodes one face as compact JSON.
func MarshalFace(g *planar.Graph, f planar.Face) ([]byte, error) {
	data, err := json.Marshal(NewFaceRecord(g, f))
	if err != nil {
		return nil, fmt.Errorf("encode face %d: %w", f.ID, err)
	}
	return data, nil
}

// WriteFaces encodes set as indented JSON and writes it to w.
func WriteFaces(w io.Writer, set FaceSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteMsgpack encodes set as MessagePack and writes it to w.
func WriteMsgpack(w io.Writer, set FaceSet) error {
	if err := msgpack.NewEncoder(w).Encode(set); err != nil {
		return fmt.Errorf("encode msgpack: %w", err)
	}
	return nil
}

// ReadMsgpack decodes a FaceSet written by WriteMsgpack.
func ReadMsgpack(r io.Reader) (FaceSet, error) {
	var set FaceSet
	if err := msgpack.NewDecoder(r).Decode(&set); err != nil {
		return FaceSet{}, fmt.Errorf("decode msgpack: %w", err)
	}
	return set, nil
}

// WriteDocument encodes doc in the input format.
func WriteDocument(w io.Writer, doc planar.Document) error {
	out := document{
		Vertices: make([][]float64, len(doc.Vertices)),
		Edges:    make([][]float64, len(doc.Edges)),
	}
	for i, v := range doc.Vertices {
		out.Vertices[i] = []float64{v[0], v[1]}
	}
	for i, e := range doc.Edges {
		out.Edges[i] = []float64{float64(e[0]), float64(e[1])}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFaces writes set as JSON to the file at path.
func ExportFaces(set FaceSet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeAndClose(f, set); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeAndClose writes set to wc and closes it, reporting the Close error
// when the write succeeded.
func writeAndClose(wc io.WriteCloser, set FaceSet) (err error) {
	defer func() {
		if cerr := wc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()
	return WriteFaces(wc, set)
}
