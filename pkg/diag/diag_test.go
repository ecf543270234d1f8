package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestSinkWarnf(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf, false)

	s.Warnf("segment %s not found", "seg_a")
	got := buf.String()
	if !strings.HasPrefix(got, "warning: ") {
		t.Errorf("warning not prefixed: %q", got)
	}
	if !strings.Contains(got, "segment seg_a not found") {
		t.Errorf("message mangled: %q", got)
	}
}

func TestSinkInfofVerbosity(t *testing.T) {
	var buf bytes.Buffer

	NewSink(&buf, false).Infof("quiet")
	if buf.Len() != 0 {
		t.Errorf("non-verbose sink emitted info: %q", buf.String())
	}

	NewSink(&buf, true).Infof("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("verbose sink dropped info: %q", buf.String())
	}
}

func TestNopSink(t *testing.T) {
	// Must not panic or write anywhere.
	s := Nop()
	s.Warnf("ignored %d", 1)
	s.Infof("ignored")
}
