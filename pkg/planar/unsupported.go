package planar

import (
	"github.com/matzehuels/planarfaces/pkg/errors"
	"github.com/matzehuels/planarfaces/pkg/ids"
)

// Capability names a face query.
type Capability string

const (
	CapabilityDetectFaces      Capability = "detect_faces"
	CapabilityBounds           Capability = "bounds"
	CapabilityAdjacentFaces    Capability = "adjacent_faces"
	CapabilityHitTest          Capability = "hit_test"
	CapabilityNeighborFaceSets Capability = "neighbor_face_sets"
)

// CapabilityInfo describes whether a capability is available.
type CapabilityInfo struct {
	Name      Capability `json:"name"`
	Supported bool       `json:"supported"`
}

// Capabilities lists every face query and whether it is implemented.
func Capabilities() []CapabilityInfo {
	return []CapabilityInfo{
		{Name: CapabilityDetectFaces, Supported: true},
		{Name: CapabilityBounds, Supported: true},
		{Name: CapabilityAdjacentFaces, Supported: false},
		{Name: CapabilityHitTest, Supported: false},
		{Name: CapabilityNeighborFaceSets, Supported: false},
	}
}

// AdjacentFaces would return the faces sharing at least one boundary edge
// with the face identified by id. It always returns UNIMPLEMENTED because
// faces carry no boundary edges.
//
// Once boundary edges are attached, the lookup is: find the target face,
// then for each of its edges scan every other face's edges for the same
// edge handle.
func (g *Graph) AdjacentFaces(id ids.Handle) ([]Face, error) {
	return nil, errors.Unimplemented(string(CapabilityAdjacentFaces))
}

// HitTest would return the face containing (x, y). It always returns
// UNIMPLEMENTED.
func (g *Graph) HitTest(x, y float64) (Face, error) {
	return Face{}, errors.Unimplemented(string(CapabilityHitTest))
}

// NeighborFaceSets would group faces into sets of mutual neighbours. It
// always returns UNIMPLEMENTED.
func (g *Graph) NeighborFaceSets() ([][]Face, error) {
	return nil, errors.Unimplemented(string(CapabilityNeighborFaceSets))
}
