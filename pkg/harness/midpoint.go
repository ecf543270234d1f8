package harness

import "fmt"

// Midpoint identifies the mesh node nearest the electrical midpoint of
// an ordered limb: a segment plus a 1-indexed mesh index within it.
type Midpoint struct {
	Segment string
	Index   int
}

// LocateMidpoint computes the midpoint of an ordered limb from the
// per-segment mesh-cell counts. Ties between segments break toward the
// earlier one. For multi-segment limbs the mesh index counts from the
// end of the midpoint segment that faces its predecessor; an ambiguous
// connection is logged and treated as forward.
func (t *Topology) LocateMidpoint(limb []string, res GeometryResolver) (Midpoint, error) {
	if len(limb) == 0 {
		return Midpoint{}, fmt.Errorf("harness: cannot locate midpoint of empty limb")
	}

	cells := make([]int, len(limb))
	total := 0
	for i, seg := range limb {
		n, ok := res.SegmentCells(seg)
		if !ok {
			return Midpoint{}, fmt.Errorf("harness: segment %s not found in geometry description", seg)
		}
		cells[i] = n
		total += n
	}

	// First segment whose running total reaches or exceeds half.
	half := float64(total) / 2
	k := 0
	cum := 0
	for i, n := range cells {
		cum += n
		if float64(cum) >= half {
			k = i
			break
		}
	}

	nMid := total / 2
	nBefore := 0
	for _, n := range cells[:k] {
		nBefore += n
	}

	// Mesh nodes are 1-indexed.
	index := nMid - nBefore + 1

	if len(limb) > 1 && k > 0 {
		switch ConnectsAtStartNode(limb[k], limb[k-1], res) {
		case ConnectsAtEnd:
			// Traversal enters at the segment's far end; count inward.
			index = (nBefore + cells[k]) - nMid
		case ConnectionUnknown:
			t.sink.Warnf("ambiguous connection between %s and %s; assuming forward direction",
				limb[k], limb[k-1])
		}
	}

	return Midpoint{Segment: limb[k], Index: index}, nil
}

// MidpointProbes runs the full pipeline for one conductor: build the
// adjacency graph, partition segments into limbs, order each limb, and
// locate its midpoint. Limbs whose geometry cannot be resolved are
// skipped with a warning; the conductor fails only when no probe
// placement could be computed at all.
func (t *Topology) MidpointProbes(conductor string, res GeometryResolver) ([]Midpoint, error) {
	graph := t.BuildGraph(conductor)
	limbs := t.BuildLimbs(conductor)
	if len(limbs) == 0 {
		return nil, fmt.Errorf("harness: no segments found for conductor %s", conductor)
	}

	var midpoints []Midpoint
	for _, limb := range limbs {
		ordered := t.OrderLimb(limb, graph)
		mp, err := t.LocateMidpoint(ordered, res)
		if err != nil {
			t.sink.Warnf("skipping limb %v of conductor %s: %v", limb, conductor, err)
			continue
		}
		midpoints = append(midpoints, mp)
	}
	if len(midpoints) == 0 {
		return nil, fmt.Errorf("harness: no limb of conductor %s could be resolved", conductor)
	}
	return midpoints, nil
}
