package planar

import "github.com/matzehuels/planarfaces/pkg/planar/cycles"

// Adjacency returns the neighbour lists of the graph, one per vertex.
// Both directions of each edge are inserted in edge order, so the lists are
// sized by vertex count and isolated vertices get an empty list.
func (g *Graph) Adjacency() cycles.Adjacency {
	adj := make(cycles.Adjacency, len(g.vertices))
	for _, e := range g.edges {
		adj[e.V1] = append(adj[e.V1], e.V2)
		adj[e.V2] = append(adj[e.V2], e.V1)
	}
	return adj
}

// Degree returns the number of edges incident to vertex i.
func (g *Graph) Degree(i int) int {
	d := 0
	for _, e := range g.edges {
		if e.V1 == i || e.V2 == i {
			d++
		}
	}
	return d
}
