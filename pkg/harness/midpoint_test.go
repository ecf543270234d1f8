package harness

import (
	"reflect"
	"testing"
)

func TestLocateMidpointSingleSegment(t *testing.T) {
	topo := newTestTopology()
	res := fakeGeometry{cells: map[string]int{"seg_a": 10}}

	mp, err := topo.LocateMidpoint([]string{"seg_a"}, res)
	if err != nil {
		t.Fatalf("LocateMidpoint failed: %v", err)
	}
	want := Midpoint{Segment: "seg_a", Index: 6}
	if mp != want {
		t.Errorf("LocateMidpoint = %+v, want %+v", mp, want)
	}
}

func TestLocateMidpointForwardConnection(t *testing.T) {
	topo := newTestTopology()
	res := fakeGeometry{
		cells: map[string]int{"seg_a": 4, "seg_b": 6},
		ends: map[string][2]Endpoint{
			"seg_a": {at(0, 0, 0), at(4, 0, 0)},
			"seg_b": {at(4, 0, 0), at(10, 0, 0)},
		},
	}

	mp, err := topo.LocateMidpoint([]string{"seg_a", "seg_b"}, res)
	if err != nil {
		t.Fatalf("LocateMidpoint failed: %v", err)
	}
	want := Midpoint{Segment: "seg_b", Index: 2}
	if mp != want {
		t.Errorf("LocateMidpoint = %+v, want %+v", mp, want)
	}
}

func TestLocateMidpointReversedConnection(t *testing.T) {
	// seg_b's node order runs away from the junction, so the index
	// counts from its far end.
	topo := newTestTopology()
	res := fakeGeometry{
		cells: map[string]int{"seg_a": 4, "seg_b": 6},
		ends: map[string][2]Endpoint{
			"seg_a": {at(0, 0, 0), at(4, 0, 0)},
			"seg_b": {at(10, 0, 0), at(4, 0, 0)},
		},
	}

	mp, err := topo.LocateMidpoint([]string{"seg_a", "seg_b"}, res)
	if err != nil {
		t.Fatalf("LocateMidpoint failed: %v", err)
	}
	want := Midpoint{Segment: "seg_b", Index: 5}
	if mp != want {
		t.Errorf("LocateMidpoint = %+v, want %+v", mp, want)
	}
}

func TestLocateMidpointAmbiguousAssumesForward(t *testing.T) {
	topo := newTestTopology()
	res := fakeGeometry{
		cells: map[string]int{"seg_a": 4, "seg_b": 6},
		ends: map[string][2]Endpoint{
			"seg_a": {at(0, 0, 0), at(4, 0, 0)},
			"seg_b": {at(100, 100, 100), at(110, 100, 100)},
		},
	}

	mp, err := topo.LocateMidpoint([]string{"seg_a", "seg_b"}, res)
	if err != nil {
		t.Fatalf("LocateMidpoint failed: %v", err)
	}
	want := Midpoint{Segment: "seg_b", Index: 2}
	if mp != want {
		t.Errorf("LocateMidpoint = %+v, want %+v", mp, want)
	}
}

func TestLocateMidpointTieBreaksEarlier(t *testing.T) {
	// Equal halves: the running total reaches half at the first segment.
	topo := newTestTopology()
	res := fakeGeometry{
		cells: map[string]int{"seg_a": 5, "seg_b": 5},
		ends: map[string][2]Endpoint{
			"seg_a": {at(0, 0, 0), at(5, 0, 0)},
			"seg_b": {at(5, 0, 0), at(10, 0, 0)},
		},
	}

	mp, err := topo.LocateMidpoint([]string{"seg_a", "seg_b"}, res)
	if err != nil {
		t.Fatalf("LocateMidpoint failed: %v", err)
	}
	want := Midpoint{Segment: "seg_a", Index: 6}
	if mp != want {
		t.Errorf("LocateMidpoint = %+v, want %+v", mp, want)
	}
}

func TestLocateMidpointErrors(t *testing.T) {
	topo := newTestTopology()

	if _, err := topo.LocateMidpoint(nil, fakeGeometry{}); err == nil {
		t.Error("expected error for empty limb")
	}
	if _, err := topo.LocateMidpoint([]string{"seg_a"}, fakeGeometry{}); err == nil {
		t.Error("expected error for segment missing from geometry")
	}
}

func TestMidpointProbes(t *testing.T) {
	topo := newTestTopology(
		"!SEGMENT",
		"!!COMPLEX",
		"seg_a j1 j2",
		"wire1 1 2",
		"",
		"!JUNCTION AND NODE",
		"seg_a wire1",
		"seg_b wire1",
		"",
		"!JUNCTION AND NODE",
		"seg_b wire1",
		"seg_c wire1",
		"seg_d wire1",
		"",
	)
	res := fakeGeometry{
		cells: map[string]int{"seg_a": 4, "seg_b": 6, "seg_c": 8},
		ends: map[string][2]Endpoint{
			"seg_a": {at(0, 0, 0), at(4, 0, 0)},
			"seg_b": {at(4, 0, 0), at(10, 0, 0)},
			"seg_c": {at(10, 0, 0), at(10, 8, 0)},
		},
	}

	// Limbs are {seg_a, seg_b}, {seg_c}, {seg_d}; seg_d has no geometry
	// and is skipped.
	mps, err := topo.MidpointProbes("wire1", res)
	if err != nil {
		t.Fatalf("MidpointProbes failed: %v", err)
	}
	want := []Midpoint{
		{Segment: "seg_b", Index: 2},
		{Segment: "seg_c", Index: 5},
	}
	if !reflect.DeepEqual(mps, want) {
		t.Errorf("MidpointProbes = %v, want %v", mps, want)
	}
}

func TestMidpointProbesNoSegments(t *testing.T) {
	topo := newTestTopology()
	if _, err := topo.MidpointProbes("wire1", fakeGeometry{}); err == nil {
		t.Error("expected error for conductor with no segments")
	}
}

func TestMidpointProbesAllLimbsUnresolvable(t *testing.T) {
	topo := newTestTopology(
		"!JUNCTION AND NODE",
		"seg_a wire1",
		"seg_b wire1",
		"",
	)
	if _, err := topo.MidpointProbes("wire1", fakeGeometry{}); err == nil {
		t.Error("expected error when no limb resolves")
	}
}
