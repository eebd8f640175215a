// Package io reads planar graph documents and writes detected faces.
//
// # Input Format
//
// A document has two arrays. Vertices are [x, y] coordinate pairs; their
// position in the array is their index. Edges are [i, j] pairs of vertex
// indices:
//
//	{
//	  "vertices": [[0, 0], [2, 0], [2, 3], [0, 2]],
//	  "edges":    [[0, 1], [1, 2], [0, 2], [0, 3], [2, 3]]
//	}
//
// [ReadDocument] and [ImportDocument] reject malformed documents before a
// graph is built: non-numeric or non-finite coordinates, pairs that do not
// have exactly two entries, fractional indices, indices outside the vertex
// range and self loops. Every failure carries an error code from package
// errors and names the offending vertex or edge.
//
// # Face Output
//
// [MarshalFace] encodes one face the way the original detector printed it,
// with the boundary resolved to vertex records:
//
//	{"id":110,"vertices":[{"id":101,"x":0,"y":0},{"id":103,"x":2,"y":3},{"id":102,"x":2,"y":0}],"edges":[]}
//
// [WriteFaces] writes a whole result set as indented JSON, and
// [WriteMsgpack] writes the same structure as MessagePack.
package io
