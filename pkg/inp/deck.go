// Package inp edits .inp simulation input decks: timestep inspection
// and insertion of cable current/voltage probe definitions at the
// output section anchor. Inserted probe blocks can be parsed back out
// for listing and verification.
package inp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emalab/ematools/pkg/diag"
	"github.com/emalab/ematools/pkg/textbuf"
)

// probeAnchor marks the section where probe definitions are inserted,
// offset by a fixed number of header lines.
const (
	probeAnchor       = "Section 14: OUTPUT / PROBES"
	probeAnchorOffset = 2
)

// ProbeType selects the probe record kind.
type ProbeType string

const (
	CurrentProbe ProbeType = "CABLE CURRENT"
	VoltageProbe ProbeType = "CABLE VOLTAGE"
)

// Deck wraps an .inp buffer along with its parsed timestep settings.
type Deck struct {
	buf  *textbuf.Buffer
	sink diag.Sink

	// Timestep settings parsed from the !TIME STEP card. Zero when the
	// card uses an unsupported compute mode.
	Timestep float64
	NSteps   float64
	EndTime  float64
}

// Load reads an .inp file. A missing path is a hard failure.
func Load(path string, sink diag.Sink) (*Deck, error) {
	buf, err := textbuf.Load(path)
	if err != nil {
		return nil, err
	}
	return NewDeck(buf, sink), nil
}

// NewDeck wraps an existing buffer and parses its timestep card.
// A nil sink discards diagnostics.
func NewDeck(buf *textbuf.Buffer, sink diag.Sink) *Deck {
	if sink == nil {
		sink = diag.Nop()
	}
	d := &Deck{buf: buf, sink: sink}
	d.parseTimesteps()
	return d
}

// Buffer exposes the underlying line buffer.
func (d *Deck) Buffer() *textbuf.Buffer { return d.buf }

// Save writes the buffer to path, or back to its origin when empty.
func (d *Deck) Save(path string) error { return d.buf.Save(path) }

func (d *Deck) parseTimesteps() {
	i := d.buf.Find("!TIME STEP", textbuf.Search{})
	if i < 0 || i+2 >= d.buf.Len() {
		d.sink.Warnf("no usable time step card found")
		return
	}
	mode := strings.TrimSpace(d.buf.Line(i + 1))
	if mode != "!!NOTCOMPUTE" {
		d.sink.Warnf("timestep mode %q is not supported", mode)
		return
	}
	fields := strings.Fields(d.buf.Line(i + 2))
	if len(fields) != 2 {
		d.sink.Warnf("failed to unpack timestep record: %q", d.buf.Line(i+2))
		return
	}
	dt, err1 := strconv.ParseFloat(fields[0], 64)
	n, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil {
		d.sink.Warnf("failed to unpack timestep record: %q", d.buf.Line(i+2))
		return
	}
	d.Timestep = dt
	d.NSteps = n
	d.EndTime = dt * n
}

// ProbeOptions carries optional probe parameters. Zero values fall back
// to the deck's timestep settings and an auto-generated name.
type ProbeOptions struct {
	Name  string
	Start float64
	End   float64
	Step  float64
}

// InsertProbe appends a probe-definition block at the output-section
// anchor. Whitespace in segment and conductor names is replaced with
// underscores to keep the record single-token per field.
func (d *Deck) InsertProbe(typ ProbeType, segment, conductor string, index int, opt ProbeOptions) error {
	segment = strings.ReplaceAll(segment, " ", "_")
	conductor = strings.ReplaceAll(conductor, " ", "_")

	kind := "current"
	if typ == VoltageProbe {
		kind = "voltage"
	}
	name := opt.Name
	if name == "" {
		name = fmt.Sprintf("%s_%s_%s_%d", kind, segment, conductor, index)
	}
	end := opt.End
	if end == 0 {
		end = d.EndTime
	}
	step := opt.Step
	if step == 0 {
		step = d.Timestep
	}

	anchor := d.buf.Find(probeAnchor, textbuf.Search{})
	if anchor < 0 {
		return fmt.Errorf("inp: output/probes section anchor not found")
	}

	block := []string{
		"",
		"!PROBE",
		fmt.Sprintf("!!%s", typ),
		fmt.Sprintf("%s.dat", name),
		fmt.Sprintf("%.10E    %.10E    %.10E", opt.Start, end, step),
		fmt.Sprintf("%s      %s      %d", segment, conductor, index),
	}
	d.buf.Insert(anchor+probeAnchorOffset, block...)
	return nil
}

// InsertCurrentProbe places a cable current probe on a conductor within
// a segment at the given 1-indexed mesh node.
func (d *Deck) InsertCurrentProbe(segment, conductor string, index int, opt ProbeOptions) error {
	return d.InsertProbe(CurrentProbe, segment, conductor, index, opt)
}

// InsertVoltageProbe places a cable voltage probe.
func (d *Deck) InsertVoltageProbe(segment, conductor string, index int, opt ProbeOptions) error {
	return d.InsertProbe(VoltageProbe, segment, conductor, index, opt)
}
