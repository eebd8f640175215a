// Package cycles finds the fundamental cycles of an undirected graph.
//
// # Algorithm
//
// [Find] runs a coloring depth-first search over an [Adjacency]. Every vertex
// starts [Unvisited], becomes [InProgress] while it sits on the current DFS
// path and [Done] once all of its neighbours have been explored. A neighbour
// that is still in progress closes a back-edge: the cycle is recovered by
// walking the recorded parent pointers from the current vertex up to that
// neighbour. Each back-edge yields exactly one cycle, so for a connected
// graph the number of cycles equals E - V + 1.
//
// The neighbour equal to a vertex's recorded parent is always skipped. It is
// the tree edge seen from the other side, and following it would report a
// two-vertex cycle.
//
// The search keeps an explicit stack instead of recursing, so memory use is
// bounded by the number of vertices rather than the goroutine stack. The
// visiting order matches the recursive formulation exactly: neighbours are
// explored in adjacency-list order and cycles are reported in the order
// their back-edges are met.
//
// # Strategies
//
// [Components] starts a search from every still-unvisited vertex in
// ascending order, so cycles in every connected component are reported.
//
// [Legacy] reproduces the single-root traversal of the original face
// detector: the search starts at vertex 1 with vertex 0 recorded as its
// parent, and components unreachable from vertex 1 are silently skipped.
// Use it only when output must match that detector.
//
// # Complexity
//
// O(V + E) time and O(V) auxiliary space.
package cycles
