// Package pkg holds the planarfaces libraries.
//
// Data flows through the packages as follows:
//
//	JSON document
//	     ↓
//	[io] decode and validate
//	     ↓
//	[planar] vertex/edge store, adjacency
//	     ↓
//	[planar/cycles] DFS fundamental cycles
//	     ↓
//	[planar] face assembly, bounds
//	     ↓
//	[render] JSON, MessagePack, DOT, SVG
//
// [pipeline] runs these stages with caching ([cache]) and is shared by the
// CLI and the HTTP API ([server]). Handles come from [ids]; structured
// errors from [errors].
//
// A minimal program:
//
//	g, _ := io.ReadGraph(os.Stdin)
//	faces, _ := planar.Detect(g, planar.DetectOptions{})
//	for _, f := range faces {
//	    data, _ := io.MarshalFace(g, f)
//	    fmt.Println(string(data))
//	}
package pkg
