package cycles

import (
	"fmt"
	"strings"

	"github.com/matzehuels/planarfaces/pkg/errors"
)

// NoParent is the parent recorded for a DFS root.
const NoParent = -1

// Legacy traversal start. The root's recorded parent is a real vertex, so
// the edge between them is never followed from the root.
const (
	LegacyRoot   = 1
	LegacyParent = 0
)

// Adjacency lists the neighbours of each vertex by index. It must hold both
// directions of every undirected edge.
type Adjacency [][]int

// State is the DFS color of a vertex.
type State uint8

const (
	// Unvisited vertices have not been reached yet.
	Unvisited State = iota
	// InProgress vertices lie on the current DFS path.
	InProgress
	// Done vertices have had every neighbour explored.
	Done
)

func (s State) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case InProgress:
		return "in-progress"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Strategy selects the DFS roots.
type Strategy int

const (
	// Components roots a search at every unvisited vertex in ascending order.
	Components Strategy = iota
	// Legacy roots a single search at LegacyRoot with LegacyParent as its parent.
	Legacy
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case Components:
		return "components"
	case Legacy:
		return "legacy"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy converts a configuration name into a Strategy.
// The empty string selects Components.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "components":
		return Components, nil
	case "legacy":
		return Legacy, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q (want components or legacy)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	switch s {
	case Components, Legacy:
		return []byte(s.String()), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %d", int(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Options configures Find. The zero value uses the Components strategy.
type Options struct {
	Strategy Strategy
}

// Result holds the cycles found by one search together with the final DFS
// state, which callers can use to check closure.
type Result struct {
	// Cycles lists each fundamental cycle as vertex indices in backtrack
	// order: the back-edge's descendant endpoint first, the ancestor last.
	Cycles [][]int
	// Parent is the DFS-tree predecessor of each vertex, NoParent for
	// unreached vertices and free roots.
	Parent []int
	// State is the final color of each vertex.
	State []State
	// Roots lists the vertices searches were started from.
	Roots []int
}

// Find returns the fundamental cycles of adj.
//
// Find returns an INVALID_INPUT error if adj refers to a vertex outside
// its range or contains a self loop, and a DEGENERATE_CYCLE error if a
// reconstructed cycle has fewer than three vertices.
func Find(adj Adjacency, opts Options) (Result, error) {
	if err := validate(adj); err != nil {
		return Result{}, err
	}

	d := newDetector(adj)
	switch opts.Strategy {
	case Components:
		for v := range adj {
			if d.state[v] == Unvisited {
				if err := d.visit(v, NoParent); err != nil {
					return Result{}, err
				}
			}
		}
	case Legacy:
		if len(adj) > LegacyRoot {
			if err := d.visit(LegacyRoot, LegacyParent); err != nil {
				return Result{}, err
			}
		}
	default:
		return Result{}, errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %d", int(opts.Strategy))
	}

	return Result{
		Cycles: d.cycles,
		Parent: d.parent,
		State:  d.state,
		Roots:  d.roots,
	}, nil
}

func validate(adj Adjacency) error {
	n := len(adj)
	for v, nbrs := range adj {
		for _, u := range nbrs {
			if u < 0 || u >= n {
				return errors.New(errors.ErrCodeInvalidInput, "vertex %d: neighbour %d out of range [0, %d)", v, u, n)
			}
			if u == v {
				return errors.New(errors.ErrCodeSelfLoop, "vertex %d: self loop", v)
			}
		}
	}
	return nil
}

type detector struct {
	adj    Adjacency
	state  []State
	parent []int
	roots  []int
	cycles [][]int
}

func newDetector(adj Adjacency) *detector {
	parent := make([]int, len(adj))
	for i := range parent {
		parent[i] = NoParent
	}
	return &detector{
		adj:    adj,
		state:  make([]State, len(adj)),
		parent: parent,
	}
}

// frame is one level of the explicit DFS stack: a vertex and the index of
// the next neighbour to examine.
type frame struct {
	v    int
	next int
}

func (d *detector) visit(root, parent int) error {
	d.roots = append(d.roots, root)
	d.parent[root] = parent
	d.state[root] = InProgress

	stack := []frame{{v: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		nbrs := d.adj[top.v]
		if top.next == len(nbrs) {
			d.state[top.v] = Done
			stack = stack[:len(stack)-1]
			continue
		}

		v, u := top.v, nbrs[top.next]
		top.next++
		if u == d.parent[v] {
			continue
		}

		switch d.state[u] {
		case Unvisited:
			d.parent[u] = v
			d.state[u] = InProgress
			stack = append(stack, frame{v: u})
		case InProgress:
			cycle, err := d.backtrack(v, u)
			if err != nil {
				return err
			}
			d.cycles = append(d.cycles, cycle)
		}
	}
	return nil
}

// backtrack walks parent pointers from v until it reaches ancestor.
func (d *detector) backtrack(v, ancestor int) ([]int, error) {
	cycle := []int{v}
	for cur := v; cur != ancestor; {
		cur = d.parent[cur]
		if cur == NoParent || len(cycle) > len(d.adj) {
			return nil, errors.New(errors.ErrCodeInternal, "vertex %d is not a DFS ancestor of %d", ancestor, v)
		}
		cycle = append(cycle, cur)
	}
	if len(cycle) < 3 {
		return nil, errors.New(errors.ErrCodeDegenerateCycle, "back-edge %d-%d closes a cycle of %d vertices", v, ancestor, len(cycle))
	}
	return cycle, nil
}
