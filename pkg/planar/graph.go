package planar

import (
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planarfaces/pkg/errors"
	"github.com/matzehuels/planarfaces/pkg/ids"
)

// Document is the raw input of a graph: vertex coordinates, and edges as
// pairs of 0-based positions into Vertices.
type Document struct {
	Vertices [][2]float64
	Edges    [][2]int
}

// Vertex is a point of the graph.
type Vertex struct {
	ID   ids.Handle
	X, Y float64
}

// Edge joins two vertices, referenced by their index in the graph.
// Endpoint order carries no meaning.
type Edge struct {
	ID     ids.Handle
	V1, V2 int
}

// Other returns the endpoint opposite v, or -1 if v is not an endpoint.
func (e Edge) Other(v int) int {
	switch v {
	case e.V1:
		return e.V2
	case e.V2:
		return e.V1
	}
	return -1
}

// Face is a region bounded by a cycle of the graph.
type Face struct {
	ID ids.Handle
	// Vertices lists the boundary as vertex indices in DFS backtrack order,
	// which is not necessarily a consistent winding.
	Vertices []int
	// Edges lists boundary edge indices. Boundary edges are not resolved,
	// so it is always empty.
	Edges []int
}

// Len returns the number of boundary vertices.
func (f Face) Len() int { return len(f.Vertices) }

// Option configures a Graph.
type Option func(*config)

type config struct {
	alloc    *ids.Allocator
	logger   *log.Logger
	parallel bool
}

// WithAllocator makes the graph draw handles from a, typically to share one
// numbering sequence between graphs.
func WithAllocator(a *ids.Allocator) Option {
	return func(c *config) { c.alloc = a }
}

// WithLogger attaches a logger. Without one, the graph logs nothing.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithParallelEdges accepts several edges between the same pair of
// vertices. Each parallel copy of a closing edge reports its cycle again.
func WithParallelEdges() Option {
	return func(c *config) { c.parallel = true }
}

// Graph is the container for one planar graph and the faces detected on it.
//
// The zero value is an empty graph with no allocator; use New.
type Graph struct {
	vertices []Vertex
	edges    []Edge
	byID     map[ids.Handle]int
	alloc    *ids.Allocator
	logger   *log.Logger

	mu    sync.Mutex
	faces []Face
}

// New builds a graph from doc. Vertices are created in input order, then
// edges. Unless [WithParallelEdges] is given, a repeated vertex pair fails
// with DUPLICATE_EDGE.
//
// Any invalid edge fails the whole construction: an endpoint outside the
// vertex range returns INVALID_EDGE_REFERENCE and a self loop returns
// SELF_LOOP. Empty documents are valid.
func New(doc Document, opts ...Option) (*Graph, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.alloc == nil {
		cfg.alloc = ids.New()
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	n := len(doc.Vertices)
	for i, e := range doc.Edges {
		if err := errors.ValidateEdgeIndices(i, e[0], e[1], n); err != nil {
			return nil, err
		}
	}
	if !cfg.parallel {
		if err := checkParallel(doc.Edges); err != nil {
			return nil, err
		}
	}

	g := &Graph{
		vertices: make([]Vertex, n),
		edges:    make([]Edge, len(doc.Edges)),
		byID:     make(map[ids.Handle]int, n),
		alloc:    cfg.alloc,
		logger:   cfg.logger,
	}
	for i, p := range doc.Vertices {
		v := Vertex{ID: cfg.alloc.Next(), X: p[0], Y: p[1]}
		g.vertices[i] = v
		g.byID[v.ID] = i
	}
	for i, e := range doc.Edges {
		g.edges[i] = Edge{ID: cfg.alloc.Next(), V1: e[0], V2: e[1]}
	}

	g.logger.Debug("built graph", "vertices", n, "edges", len(doc.Edges))
	return g, nil
}

func checkParallel(edges [][2]int) error {
	seen := make(map[[2]int]int, len(edges))
	for i, e := range edges {
		key := [2]int{min(e[0], e[1]), max(e[0], e[1])}
		if j, ok := seen[key]; ok {
			return errors.New(errors.ErrCodeDuplicateEdge, "edge %d repeats edge %d between vertices %d and %d", i, j, key[0], key[1])
		}
		seen[key] = i
	}
	return nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Vertex returns the vertex at index i. It panics if i is out of range.
func (g *Graph) Vertex(i int) Vertex { return g.vertices[i] }

// Edge returns the edge at index i. It panics if i is out of range.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// Vertices returns a copy of all vertices in input order.
func (g *Graph) Vertices() []Vertex { return slices.Clone(g.vertices) }

// Edges returns a copy of all edges in input order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// VertexByID returns the index of the vertex with handle h.
func (g *Graph) VertexByID(h ids.Handle) (int, bool) {
	i, ok := g.byID[h]
	return i, ok
}

// Allocator returns the allocator the graph draws handles from.
func (g *Graph) Allocator() *ids.Allocator { return g.alloc }

// Document returns the input form of the graph.
func (g *Graph) Document() Document {
	doc := Document{
		Vertices: make([][2]float64, len(g.vertices)),
		Edges:    make([][2]int, len(g.edges)),
	}
	for i, v := range g.vertices {
		doc.Vertices[i] = [2]float64{v.X, v.Y}
	}
	for i, e := range g.edges {
		doc.Edges[i] = [2]int{e.V1, e.V2}
	}
	return doc
}
