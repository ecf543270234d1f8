// Package coupled drives probing passes over a coupled EMA3D/MHARNESS
// simulation: a mesh description (.emin) plus an input deck (.inp).
package coupled

import (
	"fmt"
	"sort"

	"github.com/emalab/ematools/pkg/diag"
	"github.com/emalab/ematools/pkg/emin"
	"github.com/emalab/ematools/pkg/harness"
	"github.com/emalab/ematools/pkg/inp"
)

// Sim pairs the two files of a coupled simulation.
type Sim struct {
	Mesh *emin.Model
	Deck *inp.Deck

	sink diag.Sink
}

// New builds a Sim. A nil sink discards diagnostics.
func New(mesh *emin.Model, deck *inp.Deck, sink diag.Sink) *Sim {
	if sink == nil {
		sink = diag.Nop()
	}
	return &Sim{Mesh: mesh, Deck: deck, sink: sink}
}

// Summary reports the outcome of a probing pass per conductor.
type Summary struct {
	Probed  map[string][]harness.Midpoint
	Failed  map[string]error
	ordered []string
}

// Conductors returns every attempted conductor in processing order.
func (s *Summary) Conductors() []string { return s.ordered }

// AllSucceeded reports whether every conductor was probed.
func (s *Summary) AllSucceeded() bool { return len(s.Failed) == 0 }

// ProbeMidpointCurrents places a current probe at the midpoint of every
// unbranching chain of each requested conductor. An empty conductor
// list probes all conductors found in the deck. Conductors are
// processed sequentially so insertion points stay deterministic, and a
// failure on one conductor never aborts the others.
func (s *Sim) ProbeMidpointCurrents(conductors []string) (*Summary, error) {
	topo := harness.NewTopology(s.Deck.Buffer(), s.sink)

	if len(conductors) == 0 {
		byConductor := topo.Conductors()
		if len(byConductor) == 0 {
			return nil, fmt.Errorf("coupled: no conductors found in input deck")
		}
		for name := range byConductor {
			conductors = append(conductors, name)
		}
		sort.Strings(conductors)
	}

	summary := &Summary{
		Probed:  make(map[string][]harness.Midpoint),
		Failed:  make(map[string]error),
		ordered: conductors,
	}

	for _, conductor := range conductors {
		s.sink.Infof("probing conductor %s", conductor)
		midpoints, err := s.probeConductor(topo, conductor)
		if err != nil {
			s.sink.Warnf("failed to add probes to conductor %s: %v", conductor, err)
			summary.Failed[conductor] = err
			continue
		}
		summary.Probed[conductor] = midpoints
	}
	return summary, nil
}

func (s *Sim) probeConductor(topo *harness.Topology, conductor string) ([]harness.Midpoint, error) {
	midpoints, err := topo.MidpointProbes(conductor, s.Mesh)
	if err != nil {
		return nil, err
	}
	for _, mp := range midpoints {
		if err := s.Deck.InsertCurrentProbe(mp.Segment, conductor, mp.Index, inp.ProbeOptions{}); err != nil {
			return nil, err
		}
		s.sink.Infof("conductor %s: added current probe to segment %s at index %d",
			conductor, mp.Segment, mp.Index)
	}
	return midpoints, nil
}

// Save writes both files back to their origins.
func (s *Sim) Save() error {
	if err := s.Mesh.Save(""); err != nil {
		return err
	}
	return s.Deck.Save("")
}
