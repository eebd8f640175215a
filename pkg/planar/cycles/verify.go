package cycles

import (
	"slices"

	"github.com/matzehuels/planarfaces/pkg/errors"
)

// Verify checks that every cycle in r is closed: it has at least three
// vertices, each vertex's recorded parent is the next one in the cycle, and
// the last vertex is adjacent to the first through a back-edge.
func (r Result) Verify(adj Adjacency) error {
	for i, c := range r.Cycles {
		if len(c) < 3 {
			return errors.New(errors.ErrCodeDegenerateCycle, "cycle %d has %d vertices", i, len(c))
		}
		for j := 0; j < len(c)-1; j++ {
			if r.Parent[c[j]] != c[j+1] {
				return errors.New(errors.ErrCodeInternal, "cycle %d: parent of %d is %d, want %d", i, c[j], r.Parent[c[j]], c[j+1])
			}
		}
		first, last := c[0], c[len(c)-1]
		if !slices.Contains(adj[first], last) {
			return errors.New(errors.ErrCodeInternal, "cycle %d: no back-edge %d-%d", i, first, last)
		}
	}
	return nil
}

// Rank returns the cycle rank (circuit rank) of the simple graph adj:
// E - V + C, where C is the number of connected components. It equals the
// number of cycles Find reports under the Components strategy.
func Rank(adj Adjacency) int {
	parent := make([]int, len(adj))
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	edges, components := 0, len(adj)
	for v, nbrs := range adj {
		for _, u := range nbrs {
			if u <= v {
				continue
			}
			edges++
			if a, b := find(u), find(v); a != b {
				parent[a] = b
				components--
			}
		}
	}
	return edges - len(adj) + components
}
