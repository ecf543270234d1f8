package harness

// endpoints returns the segments of limb with exactly one neighbor
// inside the limb, in limb order. Interior segments of a well-formed
// chain have two in-limb neighbors.
func endpoints(limb []string, g Graph) []string {
	var ends []string
	for _, seg := range limb {
		count := 0
		for _, conn := range g.Neighbors(seg) {
			if contains(limb, conn) {
				count++
			}
		}
		if count == 1 {
			ends = append(ends, seg)
		}
	}
	return ends
}

// OrderLimb arranges a limb's segments end to end by walking the
// adjacency graph from an endpoint. The result is always a permutation
// of a subset of the input; on an inconsistent topology the partial
// order is returned with a warning rather than failing.
func (t *Topology) OrderLimb(limb []string, g Graph) []string {
	if len(limb) <= 1 {
		return limb
	}

	ends := endpoints(limb, g)
	var active string
	if len(ends) == 0 {
		// Cyclic limb. Degenerate topology; start anywhere.
		t.sink.Warnf("no endpoints detected for limb %v; starting from %s", limb, limb[0])
		active = limb[0]
	} else {
		active = ends[0]
	}

	ordered := []string{active}
	t.sink.Infof("ordering limb starting from segment %s", active)

	for len(ordered) < len(limb) {
		next := ""
		for _, seg := range g.Neighbors(active) {
			if contains(limb, seg) && !contains(ordered, seg) {
				next = seg
				break
			}
		}
		if next == "" {
			t.sink.Warnf("limb %v has no connected continuation after %s; returning partial order %v",
				limb, active, ordered)
			break
		}
		t.sink.Infof("connecting %s to %s", active, next)
		ordered = append(ordered, next)
		active = next
	}
	return ordered
}
