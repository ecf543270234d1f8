package harness

// Limb grouping. Segments that meet at pass-through junctions (two or
// fewer connections) chain together; a junction with three or more
// connections is a branch point and never merges the segments meeting
// there. Merging uses a union-find over segment names so the resulting
// partition does not depend on the order junctions appear in the file.

// limbSet is a union-find over segment names with union by rank and
// path compression. Insertion order is tracked so the final grouping
// comes out deterministically.
type limbSet struct {
	parent map[string]string
	rank   map[string]int
	order  []string
}

func newLimbSet() *limbSet {
	return &limbSet{
		parent: make(map[string]string),
		rank:   make(map[string]int),
	}
}

// add registers a segment as its own singleton limb if unseen.
func (ls *limbSet) add(seg string) {
	if _, ok := ls.parent[seg]; ok {
		return
	}
	ls.parent[seg] = seg
	ls.rank[seg] = 0
	ls.order = append(ls.order, seg)
}

// find returns the representative for seg, compressing the path.
func (ls *limbSet) find(seg string) string {
	root := seg
	for ls.parent[root] != root {
		root = ls.parent[root]
	}
	for seg != root {
		next := ls.parent[seg]
		ls.parent[seg] = root
		seg = next
	}
	return root
}

// union merges the limbs containing a and b.
func (ls *limbSet) union(a, b string) {
	rootA, rootB := ls.find(a), ls.find(b)
	if rootA == rootB {
		return
	}
	switch {
	case ls.rank[rootA] < ls.rank[rootB]:
		ls.parent[rootA] = rootB
	case ls.rank[rootA] > ls.rank[rootB]:
		ls.parent[rootB] = rootA
	default:
		ls.parent[rootB] = rootA
		ls.rank[rootA]++
	}
}

// groups returns the limbs as slices of segment names. Limbs appear in
// order of their earliest-added member; members keep insertion order.
func (ls *limbSet) groups() [][]string {
	byRoot := make(map[string][]string)
	var rootOrder []string
	for _, seg := range ls.order {
		root := ls.find(seg)
		if _, ok := byRoot[root]; !ok {
			rootOrder = append(rootOrder, root)
		}
		byRoot[root] = append(byRoot[root], seg)
	}
	out := make([][]string, 0, len(rootOrder))
	for _, root := range rootOrder {
		out = append(out, byRoot[root])
	}
	return out
}

// BuildLimbs partitions a conductor's segments into maximal unbranching
// chains. Junctions are visited in file order; a junction with no
// segments for this conductor is a no-op. The partition, viewed as a
// set of sets, is independent of junction visit order.
func (t *Topology) BuildLimbs(conductor string) [][]string {
	ls := newLimbSet()
	for _, segments := range t.junctionSegments(conductor) {
		switch {
		case len(segments) == 0:
			continue

		case len(segments) <= 2:
			// Pass-through junction: the segments meeting here belong
			// to one chain.
			t.sink.Infof("junction chains segment(s) %v", segments)
			for _, seg := range segments {
				ls.add(seg)
			}
			for i := 1; i < len(segments); i++ {
				ls.union(segments[0], segments[i])
			}

		default:
			// Branch point: each segment stands alone here; chaining
			// across the junction is not allowed.
			t.sink.Infof("junction branches segments %v", segments)
			for _, seg := range segments {
				ls.add(seg)
			}
		}
	}
	return ls.groups()
}
