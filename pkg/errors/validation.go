package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateCoordinate checks that a vertex coordinate is a finite number.
// NaN and infinities are rejected because bounds and rendering cannot
// represent them.
func ValidateCoordinate(index int, x, y float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return New(ErrCodeInvalidInput, "vertex %d: x coordinate is not finite", index)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return New(ErrCodeInvalidInput, "vertex %d: y coordinate is not finite", index)
	}
	return nil
}

// ValidateEdgeIndices checks that both endpoints of edge index refer to one
// of n vertices and that the edge is not a self loop.
func ValidateEdgeIndices(index, v1, v2, n int) error {
	if v1 < 0 || v1 >= n {
		return New(ErrCodeInvalidEdgeReference, "edge %d: vertex index %d out of range [0, %d)", index, v1, n)
	}
	if v2 < 0 || v2 >= n {
		return New(ErrCodeInvalidEdgeReference, "edge %d: vertex index %d out of range [0, %d)", index, v2, n)
	}
	if v1 == v2 {
		return New(ErrCodeSelfLoop, "edge %d: both endpoints are vertex %d", index, v1)
	}
	return nil
}

// ValidatePath validates a local input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory by ending in a separator
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidInput, "path must name a file, not a directory")
	}

	return nil
}
