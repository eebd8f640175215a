// Package planar detects the faces of a planar straight-line graph.
//
// # Overview
//
// A [Graph] holds the vertices and edges of a planar subdivision, built once
// from a [Document] and never mutated afterwards. Face detection derives the
// bounded regions of the subdivision from the fundamental cycles of the
// graph (see package cycles) and turns each cycle into a [Face].
//
//	g, err := planar.New(doc)
//	if err != nil {
//	    return err
//	}
//	n, err := g.DetectFaces(planar.DetectOptions{})
//	if err != nil {
//	    return err
//	}
//	_ = g.EachFace(func(f planar.Face) error {
//	    drawFace(g.FaceVertices(f))
//	    return nil
//	})
//
// # Handles
//
// Vertices, edges and faces are stored in arenas and refer to each other by
// index. Each entity also carries an [ids.Handle] from the graph's allocator.
// A graph owns a fresh allocator unless [WithAllocator] injects a shared one,
// so handles are deterministic per graph: the vertices of a graph built with
// its own allocator are numbered 101, 102, ... in input order, followed by
// the edges and then the faces in detection order.
//
// # Repeated detection
//
// [Graph.DetectFaces] appends to the graph's face list and is therefore not
// idempotent: running it twice without [Graph.ClearFaces] yields every face
// twice. [Detect] is the pure alternative; it returns a fresh list and leaves
// the graph untouched.
//
// # Capabilities
//
// Adjacent-face lookup, hit testing and neighbouring face sets are not
// implemented. Their methods return an UNIMPLEMENTED error; [Capabilities]
// lists them.
//
// # Concurrency
//
// A Graph is safe for concurrent use. Detection runs are serialized per
// graph.
package planar
