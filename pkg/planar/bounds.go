package planar

import "math"

// Range is a closed interval on one axis.
type Range struct {
	Min, Max float64
}

// Size returns Max - Min. It is negative for the empty range.
func (r Range) Size() float64 { return r.Max - r.Min }

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	X, Y Range
}

// EmptyBounds is the bounding box of no points: both ranges have Min above
// Max, so any point widens it correctly.
var EmptyBounds = Bounds{
	X: Range{Min: math.MaxFloat64, Max: -math.MaxFloat64},
	Y: Range{Min: math.MaxFloat64, Max: -math.MaxFloat64},
}

// Empty reports whether b contains no points.
func (b Bounds) Empty() bool { return b.X.Min > b.X.Max || b.Y.Min > b.Y.Max }

// Width returns the extent along x.
func (b Bounds) Width() float64 { return b.X.Size() }

// Height returns the extent along y.
func (b Bounds) Height() float64 { return b.Y.Size() }

// Extend returns b widened to contain (x, y).
func (b Bounds) Extend(x, y float64) Bounds {
	b.X.Min = math.Min(b.X.Min, x)
	b.X.Max = math.Max(b.X.Max, x)
	b.Y.Min = math.Min(b.Y.Min, y)
	b.Y.Max = math.Max(b.Y.Max, y)
	return b
}

// Bounds returns the bounding box of all vertices. A graph with no vertices
// returns EmptyBounds.
func (g *Graph) Bounds() Bounds {
	b := EmptyBounds
	for _, v := range g.vertices {
		b = b.Extend(v.X, v.Y)
	}
	return b
}
