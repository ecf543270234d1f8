package harness

import "math"

// Point is a mesh-node coordinate triple.
type Point struct {
	X, Y, Z int
}

func (p Point) distanceTo(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	dz := float64(p.Z - q.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Endpoint is a segment terminus: a mesh node plus the direction marker
// of the cell recorded there.
type Endpoint struct {
	Point
	Dir string
}

// GeometryResolver looks up per-segment mesh data from the geometry
// description. Implementations normalize segment names themselves
// (topology-disambiguation suffixes are stripped before lookup). A
// false return marks an unresolvable segment; callers exclude it or
// fail the enclosing limb, never panic.
type GeometryResolver interface {
	// SegmentCells returns the number of mesh cells in a segment.
	SegmentCells(segment string) (int, bool)
	// SegmentEndpoints returns the first and last usable mesh nodes of
	// a segment. The final recorded cell direction is ambiguous in the
	// source format, so the end node is the second-to-last entry.
	SegmentEndpoints(segment string) (start, end Endpoint, ok bool)
}

// Connection reports where two adjacent segments join relative to the
// first segment's node order.
type Connection int

const (
	// ConnectionUnknown means no endpoint pairing fell within the
	// adjacent-cell tolerance. Callers decide how to proceed; the
	// probing pipeline logs it and assumes a forward connection.
	ConnectionUnknown Connection = iota
	// ConnectsAtStart means the shared junction sits at the segment's
	// first mesh node.
	ConnectsAtStart
	// ConnectsAtEnd means the shared junction sits at the segment's
	// last mesh node, i.e. traversal reverses through the segment.
	ConnectsAtEnd
)

// connectionTolerance accepts endpoint pairs up to one diagonal mesh
// cell apart, covering the ambiguous final-cell direction.
var connectionTolerance = math.Sqrt(3)

// ConnectsAtStartNode determines whether segment seg joins its neighbor
// prev at seg's first mesh node. Exactly coincident start nodes short-
// circuit to ConnectsAtStart; otherwise the closest of the four
// endpoint pairings decides, provided it lies within tolerance.
func ConnectsAtStartNode(seg, prev string, res GeometryResolver) Connection {
	segStart, segEnd, ok := res.SegmentEndpoints(seg)
	if !ok {
		return ConnectionUnknown
	}
	prevStart, prevEnd, ok := res.SegmentEndpoints(prev)
	if !ok {
		return ConnectionUnknown
	}

	if segStart.Point == prevStart.Point {
		return ConnectsAtStart
	}

	type pairing struct {
		dist    float64
		atStart bool
	}
	pairs := []pairing{
		{segStart.distanceTo(prevStart.Point), true},
		{segStart.distanceTo(prevEnd.Point), true},
		{segEnd.distanceTo(prevStart.Point), false},
		{segEnd.distanceTo(prevEnd.Point), false},
	}

	best := pairs[0]
	for _, p := range pairs[1:] {
		if p.dist < best.dist {
			best = p
		}
	}
	if best.dist > connectionTolerance {
		return ConnectionUnknown
	}
	if best.atStart {
		return ConnectsAtStart
	}
	return ConnectsAtEnd
}
