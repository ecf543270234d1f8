// Package emin edits and queries .emin mesh-description files: segment
// mesh geometry for the probing pipeline, material property editing,
// and surface-current direction restriction.
package emin

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/emalab/ematools/pkg/diag"
	"github.com/emalab/ematools/pkg/harness"
	"github.com/emalab/ematools/pkg/textbuf"
)

const segmentMarker = "!MHARNESS SEGMENT"

// Vacuum material constants used when converting relative properties.
const (
	vacuumPermittivity = 8.85418782e-12
	vacuumPermeability = 1.25663706e-6
)

// Model wraps an .emin buffer. It implements harness.GeometryResolver.
type Model struct {
	buf  *textbuf.Buffer
	sink diag.Sink
}

// Load reads an .emin file. A missing path is a hard failure.
func Load(path string, sink diag.Sink) (*Model, error) {
	buf, err := textbuf.Load(path)
	if err != nil {
		return nil, err
	}
	return NewModel(buf, sink), nil
}

// NewModel wraps an existing buffer. A nil sink discards diagnostics.
func NewModel(buf *textbuf.Buffer, sink diag.Sink) *Model {
	if sink == nil {
		sink = diag.Nop()
	}
	return &Model{buf: buf, sink: sink}
}

// Buffer exposes the underlying line buffer.
func (m *Model) Buffer() *textbuf.Buffer { return m.buf }

// Save writes the buffer to path, or back to its origin when empty.
func (m *Model) Save(path string) error { return m.buf.Save(path) }

// normalizeSegment strips the topology-disambiguation suffix appended
// to segment names in the input deck ("seg_2" refers to mesh segment
// "seg").
func normalizeSegment(segment string) string {
	if i := strings.IndexByte(segment, '_'); i >= 0 {
		return segment[:i]
	}
	return segment
}

// segmentBlock locates the entry range of a segment's definition block:
// the first entry index and the terminating blank line.
func (m *Model) segmentBlock(segment string) (i0, i1 int, ok bool) {
	name := normalizeSegment(segment)
	for _, i := range m.buf.FindAll(segmentMarker, textbuf.Search{}) {
		if i+1 >= m.buf.Len() {
			continue
		}
		fields := strings.Fields(m.buf.Line(i + 1))
		if len(fields) == 0 || fields[0] != name {
			continue
		}
		i0 = i + 2
		i1 = m.buf.FindNext(i0-1, "", textbuf.Search{Exact: true})
		if i1 < 0 {
			i1 = m.buf.Len()
		}
		return i0, i1, true
	}
	m.sink.Warnf("segment %s not found in mesh description", name)
	return 0, 0, false
}

// SegmentCells returns the number of mesh cells in a segment: the
// entry count between the block start and its blank-line terminator.
func (m *Model) SegmentCells(segment string) (int, bool) {
	i0, i1, ok := m.segmentBlock(segment)
	if !ok {
		return 0, false
	}
	return i1 - i0, true
}

// SegmentEndpoints returns the segment's first and last usable mesh
// nodes. The final entry is a terminator whose cell direction is
// ambiguous in the source format, so the end node comes from the
// second-to-last entry.
func (m *Model) SegmentEndpoints(segment string) (start, end harness.Endpoint, ok bool) {
	i0, i1, ok := m.segmentBlock(segment)
	if !ok {
		return harness.Endpoint{}, harness.Endpoint{}, false
	}
	if i1-i0 < 2 {
		m.sink.Warnf("segment %s has too few mesh entries (%d) to resolve endpoints",
			normalizeSegment(segment), i1-i0)
		return harness.Endpoint{}, harness.Endpoint{}, false
	}
	start, ok = m.parseEntry(i0)
	if !ok {
		return harness.Endpoint{}, harness.Endpoint{}, false
	}
	end, ok = m.parseEntry(i1 - 2)
	if !ok {
		return harness.Endpoint{}, harness.Endpoint{}, false
	}
	return start, end, true
}

// parseEntry reads one mesh entry line: three integer node coordinates
// followed by a cell direction marker.
func (m *Model) parseEntry(i int) (harness.Endpoint, bool) {
	fields := strings.Fields(m.buf.Line(i))
	if len(fields) < 3 {
		m.sink.Warnf("malformed mesh entry at line %d: %q", i+1, m.buf.Line(i))
		return harness.Endpoint{}, false
	}
	var coords [3]int
	for j := 0; j < 3; j++ {
		v, err := strconv.Atoi(fields[j])
		if err != nil {
			m.sink.Warnf("malformed mesh entry at line %d: %q", i+1, m.buf.Line(i))
			return harness.Endpoint{}, false
		}
		coords[j] = v
	}
	ep := harness.Endpoint{Point: harness.Point{X: coords[0], Y: coords[1], Z: coords[2]}}
	if len(fields) > 3 {
		ep.Dir = fields[3]
	}
	return ep, true
}

// FindEminFile resolves an .emin file from a path that may name either
// the file itself or a directory containing one. Multiple candidates
// produce a warning and the first match wins; none is a hard failure.
func FindEminFile(path string, sink diag.Sink) (string, error) {
	if sink == nil {
		sink = diag.Nop()
	}
	if strings.HasSuffix(path, ".emin") {
		return path, nil
	}
	matches, err := filepath.Glob(filepath.Join(path, "*.emin"))
	if err != nil {
		return "", fmt.Errorf("emin: bad search path %s: %w", path, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("emin: no emin file found in %s", path)
	}
	if len(matches) > 1 {
		sink.Warnf("multiple emin files found in %s; selecting %s", path, matches[0])
	}
	return matches[0], nil
}
