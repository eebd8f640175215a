// Package nodelink draws planar graphs as node-link diagrams.
//
// # Overview
//
// Every vertex is pinned at its input coordinates, so the drawing shows the
// embedding the faces were detected on. Graphviz only routes the straight
// edges and places labels. Detected faces are highlighted by recolouring
// their boundary edges and placing the face handle at the boundary centroid.
//
// # Usage
//
//	faces, _ := planar.Detect(g, planar.DetectOptions{})
//	dot := nodelink.ToDOT(g, faces, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] emits an undirected graph with node positions written as
// pos="x,y!", which the neato engine treats as fixed. The source can be
// rendered by [RenderSVG] or processed by external tools with
// neato -n2.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
