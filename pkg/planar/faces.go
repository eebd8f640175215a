package planar

import (
	"slices"

	"github.com/matzehuels/planarfaces/pkg/errors"
	"github.com/matzehuels/planarfaces/pkg/ids"
	"github.com/matzehuels/planarfaces/pkg/planar/cycles"
)

// DetectOptions configures face detection.
type DetectOptions struct {
	// Strategy selects the DFS roots. The zero value searches every
	// connected component; cycles.Legacy matches the original single-root
	// detector.
	Strategy cycles.Strategy
}

// Detect computes the faces of g without recording them on g.
// Each call allocates new face handles from g's allocator.
func Detect(g *Graph, opts DetectOptions) ([]Face, error) {
	res, err := cycles.Find(g.Adjacency(), cycles.Options{Strategy: opts.Strategy})
	if err != nil {
		if errors.Is(err, errors.ErrCodeDegenerateCycle) {
			g.logger.Error("degenerate cycle", "err", err)
		}
		return nil, err
	}
	faces := make([]Face, 0, len(res.Cycles))
	for _, c := range res.Cycles {
		faces = append(faces, g.assemble(c))
	}
	g.logger.Debug("detected faces",
		"strategy", opts.Strategy,
		"roots", len(res.Roots),
		"faces", len(faces))
	return faces, nil
}

func (g *Graph) assemble(cycle []int) Face {
	return Face{
		ID:       g.alloc.Next(),
		Vertices: slices.Clone(cycle),
		Edges:    []int{},
	}
}

// DetectFaces detects the faces of g, appends them to the graph's face list
// and returns how many were found by this call. Faces from earlier calls are
// kept; call ClearFaces first to replace them.
func (g *Graph) DetectFaces(opts DetectOptions) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	faces, err := Detect(g, opts)
	if err != nil {
		return 0, err
	}
	g.faces = append(g.faces, faces...)
	return len(faces), nil
}

// ClearFaces drops all detected faces.
func (g *Graph) ClearFaces() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.faces = nil
}

// Faces returns a copy of the accumulated face list.
func (g *Graph) Faces() []Face {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.faces)
}

// FaceCount returns the number of accumulated faces.
func (g *Graph) FaceCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.faces)
}

// Face returns the accumulated face with handle id.
func (g *Graph) Face(id ids.Handle) (Face, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, f := range g.faces {
		if f.ID == id {
			return f, nil
		}
	}
	return Face{}, errors.New(errors.ErrCodeNotFound, "face %d not found", id)
}

// EachFace calls fn for every accumulated face in detection order and stops
// at the first error, which it returns.
func (g *Graph) EachFace(fn func(Face) error) error {
	for _, f := range g.Faces() {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// FaceVertices resolves the boundary of f to vertex records, preserving the
// boundary order.
func (g *Graph) FaceVertices(f Face) []Vertex {
	out := make([]Vertex, len(f.Vertices))
	for i, v := range f.Vertices {
		out[i] = g.vertices[v]
	}
	return out
}
