// Package render defines the output encodings of a detection run.
//
// Structured encodings (JSON and MessagePack) are written by
// [github.com/matzehuels/planarfaces/pkg/io]. Drawings are produced by the
// [nodelink] subpackage, which pins every vertex at its input coordinates
// and lays the graph out with Graphviz:
//
//	dot := nodelink.ToDOT(g, faces, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/planarfaces/pkg/render/nodelink
package render
