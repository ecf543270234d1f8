package inp

import (
	"math"
	"testing"

	"github.com/emalab/ematools/pkg/diag"
	"github.com/emalab/ematools/pkg/textbuf"
)

func testDeck() *Deck {
	return NewDeck(textbuf.FromLines([]string{
		"some header",
		"!TIME STEP",
		"!!NOTCOMPUTE",
		"1.0E-9 1000",
		"",
		"Section 14: OUTPUT / PROBES",
		"---------------------------",
		"",
		"Section 15: WHATEVER FOLLOWS",
		"",
	}), diag.Nop())
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-15*math.Max(math.Abs(a), math.Abs(b))
}

func TestParseTimesteps(t *testing.T) {
	d := testDeck()
	if !approx(d.Timestep, 1e-9) {
		t.Errorf("Timestep = %g, want 1e-9", d.Timestep)
	}
	if d.NSteps != 1000 {
		t.Errorf("NSteps = %g, want 1000", d.NSteps)
	}
	if !approx(d.EndTime, 1e-6) {
		t.Errorf("EndTime = %g, want 1e-6", d.EndTime)
	}
}

func TestParseTimestepsUnsupportedMode(t *testing.T) {
	d := NewDeck(textbuf.FromLines([]string{
		"!TIME STEP",
		"!!COMPUTE",
		"0.9",
		"",
	}), diag.Nop())
	if d.Timestep != 0 || d.NSteps != 0 {
		t.Errorf("unsupported mode parsed anyway: dt=%g n=%g", d.Timestep, d.NSteps)
	}
}

func TestInsertProbeRoundTrip(t *testing.T) {
	d := testDeck()

	// Whitespace in names becomes underscores.
	if err := d.InsertCurrentProbe("seg", "wire 1", 6, ProbeOptions{}); err != nil {
		t.Fatalf("InsertCurrentProbe failed: %v", err)
	}

	probes := d.Probes()
	if len(probes) != 1 {
		t.Fatalf("got %d probes, want 1", len(probes))
	}
	p := probes[0]
	if p.Type != CurrentProbe {
		t.Errorf("Type = %q, want %q", p.Type, CurrentProbe)
	}
	if p.Name != "current_seg_wire_1_6" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Segment != "seg" || p.Conductor != "wire_1" || p.Index != 6 {
		t.Errorf("target = %s/%s/%d", p.Segment, p.Conductor, p.Index)
	}
	// Time bounds default to the deck's timestep settings.
	if p.Start != 0 || !approx(p.End, 1e-6) || !approx(p.Step, 1e-9) {
		t.Errorf("time bounds = %g..%g step %g", p.Start, p.End, p.Step)
	}
}

func TestInsertProbePlacement(t *testing.T) {
	d := testDeck()
	if err := d.InsertVoltageProbe("seg", "wire", 3, ProbeOptions{Name: "tap"}); err != nil {
		t.Fatalf("InsertVoltageProbe failed: %v", err)
	}

	// The block lands two lines below the section anchor, preceded by a
	// separating blank.
	buf := d.Buffer()
	anchor := buf.Find("Section 14", textbuf.Search{})
	if buf.Line(anchor+2) != "" || buf.Line(anchor+3) != "!PROBE" {
		t.Errorf("unexpected layout below anchor: %v", buf.Range(anchor, anchor+4))
	}
	if buf.Line(anchor+4) != "!!CABLE VOLTAGE" {
		t.Errorf("type line = %q", buf.Line(anchor+4))
	}
	if buf.Line(anchor+5) != "tap.dat" {
		t.Errorf("file line = %q", buf.Line(anchor+5))
	}
}

func TestInsertProbeExplicitOptions(t *testing.T) {
	d := testDeck()
	err := d.InsertCurrentProbe("seg", "wire", 2, ProbeOptions{
		Name:  "custom",
		Start: 1e-8,
		End:   5e-7,
		Step:  2e-9,
	})
	if err != nil {
		t.Fatalf("InsertCurrentProbe failed: %v", err)
	}

	p := d.Probes()[0]
	if p.Name != "custom" {
		t.Errorf("Name = %q, want custom", p.Name)
	}
	if !approx(p.Start, 1e-8) || !approx(p.End, 5e-7) || !approx(p.Step, 2e-9) {
		t.Errorf("time bounds = %g..%g step %g", p.Start, p.End, p.Step)
	}
}

func TestInsertProbeMissingAnchor(t *testing.T) {
	d := NewDeck(textbuf.FromLines([]string{"no sections here", ""}), diag.Nop())
	if err := d.InsertCurrentProbe("seg", "wire", 1, ProbeOptions{}); err == nil {
		t.Error("expected error when the output section anchor is missing")
	}
}

func TestProbesMultiple(t *testing.T) {
	d := testDeck()
	if err := d.InsertCurrentProbe("seg_a", "wire", 2, ProbeOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := d.InsertVoltageProbe("seg_b", "wire", 4, ProbeOptions{}); err != nil {
		t.Fatal(err)
	}

	probes := d.Probes()
	if len(probes) != 2 {
		t.Fatalf("got %d probes, want 2", len(probes))
	}
	// Later insertions land closer to the anchor.
	if probes[0].Segment != "seg_b" || probes[1].Segment != "seg_a" {
		t.Errorf("probe order: %s, %s", probes[0].Segment, probes[1].Segment)
	}
}

func TestProbesSkipsMalformedBlock(t *testing.T) {
	d := NewDeck(textbuf.FromLines([]string{
		"!PROBE",
		"garbage that is not a type",
		"x",
		"y",
		"z",
		"",
	}), diag.Nop())
	if probes := d.Probes(); len(probes) != 0 {
		t.Errorf("expected no probes, got %v", probes)
	}
}
