package planar

import (
	"testing"

	"github.com/matzehuels/planarfaces/pkg/errors"
)

func TestUnsupportedCapabilities(t *testing.T) {
	g, err := New(diagonalQuadDoc)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := g.DetectFaces(legacy); err != nil {
		t.Fatalf("DetectFaces() error: %v", err)
	}

	if _, err := g.AdjacentFaces(110); !errors.Is(err, errors.ErrCodeUnimplemented) {
		t.Errorf("AdjacentFaces() error = %v, want %s", err, errors.ErrCodeUnimplemented)
	}
	if _, err := g.HitTest(1, 1); !errors.Is(err, errors.ErrCodeUnimplemented) {
		t.Errorf("HitTest() error = %v, want %s", err, errors.ErrCodeUnimplemented)
	}
	if _, err := g.NeighborFaceSets(); !errors.Is(err, errors.ErrCodeUnimplemented) {
		t.Errorf("NeighborFaceSets() error = %v, want %s", err, errors.ErrCodeUnimplemented)
	}
}

func TestCapabilities(t *testing.T) {
	supported := map[Capability]bool{}
	for _, c := range Capabilities() {
		supported[c.Name] = c.Supported
	}
	want := map[Capability]bool{
		CapabilityDetectFaces:      true,
		CapabilityBounds:           true,
		CapabilityAdjacentFaces:    false,
		CapabilityHitTest:          false,
		CapabilityNeighborFaceSets: false,
	}
	for name, ok := range want {
		got, listed := supported[name]
		if !listed {
			t.Errorf("capability %s not listed", name)
			continue
		}
		if got != ok {
			t.Errorf("capability %s supported = %v, want %v", name, got, ok)
		}
	}
}
