package planar

// Reference inputs shared by the tests in this package.
var (
	diagonalQuadDoc = Document{
		Vertices: [][2]float64{{0, 0}, {2, 0}, {2, 3}, {0, 2}},
		Edges:    [][2]int{{0, 1}, {1, 2}, {0, 2}, {0, 3}, {2, 3}},
	}

	ladderDoc = Document{
		Vertices: [][2]float64{{10, 0}, {20, 0}, {30, 0}, {40, 0}, {40, 50}, {30, 50}, {20, 50}, {10, 50}},
		Edges:    [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 7}, {7, 0}, {1, 6}, {2, 5}},
	}

	twoTrianglesDoc = Document{
		Vertices: [][2]float64{{0, 0}, {1, 0}, {0, 1}, {5, 5}, {6, 5}, {5, 6}},
		Edges:    [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}},
	}
)
