package harness

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// junctionDeck builds a topology buffer containing one junction block
// per entry, each listing its segments for conductor "wire1".
func junctionDeck(junctions [][]string) *Topology {
	var lines []string
	for _, segs := range junctions {
		lines = append(lines, "!JUNCTION AND NODE")
		for _, seg := range segs {
			lines = append(lines, seg+" wire1")
		}
		lines = append(lines, "")
	}
	return newTestTopology(lines...)
}

func TestBuildLimbsChainsThroughPassJunctions(t *testing.T) {
	topo := junctionDeck([][]string{
		{"seg_a", "seg_b"},
		{"seg_b", "seg_c"},
	})

	got := canonical(topo.BuildLimbs("wire1"))
	want := [][]string{{"seg_a", "seg_b", "seg_c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildLimbs = %v, want %v", got, want)
	}
}

func TestBuildLimbsSplitsAtBranchPoints(t *testing.T) {
	// seg_a and seg_b chain at the first junction; the second junction
	// connects three segments and must not merge any of them.
	topo := junctionDeck([][]string{
		{"seg_a", "seg_b"},
		{"seg_b", "seg_c", "seg_d"},
	})

	got := canonical(topo.BuildLimbs("wire1"))
	want := [][]string{{"seg_a", "seg_b"}, {"seg_c"}, {"seg_d"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildLimbs = %v, want %v", got, want)
	}
}

func TestBuildLimbsChainContinuesPastBranch(t *testing.T) {
	// seg_d stands alone at the branch but chains onward through its
	// other junction.
	topo := junctionDeck([][]string{
		{"seg_b", "seg_c", "seg_d"},
		{"seg_d", "seg_e"},
	})

	got := canonical(topo.BuildLimbs("wire1"))
	want := [][]string{{"seg_b"}, {"seg_c"}, {"seg_d", "seg_e"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildLimbs = %v, want %v", got, want)
	}
}

func TestBuildLimbsEmptyTopology(t *testing.T) {
	topo := junctionDeck(nil)
	if limbs := topo.BuildLimbs("wire1"); len(limbs) != 0 {
		t.Errorf("expected no limbs, got %v", limbs)
	}
}

func TestLimbPartitionOrderIndependent(t *testing.T) {
	junctions := [][]string{
		{"seg_a", "seg_b"},
		{"seg_b", "seg_c", "seg_d"},
		{"seg_d", "seg_e"},
		{"seg_e", "seg_f"},
		{"seg_c"},
	}
	want := canonical(junctionDeck(junctions).BuildLimbs("wire1"))

	properties := gopter.NewProperties(nil)
	properties.Property("partition does not depend on junction order", prop.ForAll(
		func(seed int64) bool {
			shuffled := append([][]string{}, junctions...)
			r := rand.New(rand.NewSource(seed))
			r.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			got := canonical(junctionDeck(shuffled).BuildLimbs("wire1"))
			return reflect.DeepEqual(got, want)
		},
		gen.Int64(),
	))
	properties.TestingRun(t)
}

func TestLimbPartitionCoversEverySegment(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("every segment lands in exactly one limb", prop.ForAll(
		func(pairs []int) bool {
			names := []string{"seg_a", "seg_b", "seg_c", "seg_d", "seg_e"}
			var junctions [][]string
			seen := map[string]bool{}
			for i := 0; i+1 < len(pairs); i += 2 {
				a := names[abs(pairs[i])%len(names)]
				b := names[abs(pairs[i+1])%len(names)]
				junctions = append(junctions, []string{a, b})
				seen[a], seen[b] = true, true
			}

			limbs := junctionDeck(junctions).BuildLimbs("wire1")
			count := map[string]int{}
			for _, limb := range limbs {
				for _, seg := range limb {
					count[seg]++
				}
			}
			if len(count) != len(seen) {
				return false
			}
			for seg := range seen {
				if count[seg] != 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))
	properties.TestingRun(t)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
