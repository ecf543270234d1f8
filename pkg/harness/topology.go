// Package harness implements the midpoint-probe placement pipeline for
// MHARNESS cable models: it parses the harness topology out of a
// simulation input deck, groups wire segments into unbranching chains
// ("limbs"), orders each chain by physical connectivity, and locates the
// mesh node nearest each chain's electrical midpoint.
package harness

import (
	"strings"

	"github.com/emalab/ematools/pkg/diag"
	"github.com/emalab/ematools/pkg/textbuf"
)

// Card markers delimiting topology blocks in the input deck. Every block
// is terminated by the first blank line after its marker.
const (
	segmentMarker  = "!SEGMENT"
	complexMarker  = "!!COMPLEX"
	junctionMarker = "!JUNCTION AND NODE"
)

// Topology reads harness connectivity out of an input-deck buffer.
type Topology struct {
	buf  *textbuf.Buffer
	sink diag.Sink
}

// NewTopology wraps an input-deck buffer. A nil sink discards diagnostics.
func NewTopology(buf *textbuf.Buffer, sink diag.Sink) *Topology {
	if sink == nil {
		sink = diag.Nop()
	}
	return &Topology{buf: buf, sink: sink}
}

// blockEnd returns the index of the blank line terminating the block
// whose marker sits at index i0, or the buffer length if unterminated.
func (t *Topology) blockEnd(i0 int) int {
	i1 := t.buf.FindNext(i0, "", textbuf.Search{Exact: true})
	if i1 < 0 {
		return t.buf.Len()
	}
	return i1
}

// Conductors scans every segment-definition block and returns the
// mapping from conductor name to the segments it runs through, in file
// order. Malformed blocks are reported and skipped; the scan never
// aborts on one bad block.
func (t *Topology) Conductors() map[string][]string {
	conductors := make(map[string][]string)
	for _, i0 := range t.buf.FindAll(segmentMarker, textbuf.Search{}) {
		t.parseSegmentBlock(i0, conductors)
	}
	return conductors
}

func (t *Topology) parseSegmentBlock(i0 int, conductors map[string][]string) {
	i1 := t.blockEnd(i0)
	if i0+2 >= t.buf.Len() {
		t.sink.Warnf("truncated segment block at line %d", i0+1)
		return
	}

	if kind := strings.TrimSpace(t.buf.Line(i0 + 1)); kind != complexMarker {
		t.sink.Warnf("unsupported segment type at line %d: %q", i0+2, kind)
	}

	// Header carries "name startJunction endJunction".
	fields := strings.Fields(t.buf.Line(i0 + 2))
	if len(fields) != 3 {
		t.sink.Warnf("failed to unpack line %d: %q", i0+3, t.buf.Line(i0+2))
		return
	}
	segment := fields[0]

	// Remaining records name the conductors running through the segment.
	for j := i0 + 3; j < i1; j++ {
		rec := strings.Fields(t.buf.Line(j))
		if len(rec) == 0 {
			continue
		}
		conductors[rec[0]] = append(conductors[rec[0]], segment)
	}
}

// junctionSegments returns, for each junction block in file order, the
// names of this conductor's segments connected there. Junctions with no
// matching segments yield empty slices.
func (t *Topology) junctionSegments(conductor string) [][]string {
	var junctions [][]string
	for _, i0 := range t.buf.FindAll(junctionMarker, textbuf.Search{Exact: true}) {
		i1 := t.blockEnd(i0)
		var segments []string
		for _, j := range t.buf.FindAll(conductor, textbuf.Search{Start: i0, End: i1}) {
			fields := strings.Fields(t.buf.Line(j))
			if len(fields) == 0 {
				continue
			}
			segments = append(segments, fields[0])
		}
		junctions = append(junctions, segments)
	}
	return junctions
}

// BuildGraph returns the segment-adjacency graph for one conductor: two
// segments are neighbors when they meet at any junction. The result is
// symmetric, deduplicated, and free of self-loops.
func (t *Topology) BuildGraph(conductor string) Graph {
	g := make(Graph)
	for _, segments := range t.junctionSegments(conductor) {
		g.connectAll(segments)
	}
	return g
}

// Graph maps each segment to its directly connected segments.
type Graph map[string][]string

// Neighbors returns the segments adjacent to seg.
func (g Graph) Neighbors(seg string) []string { return g[seg] }

// connectAll records every pairwise adjacency among segments meeting at
// one junction.
func (g Graph) connectAll(segments []string) {
	for _, a := range segments {
		for _, b := range segments {
			if a == b {
				continue
			}
			if !contains(g[a], b) {
				g[a] = append(g[a], b)
			}
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
