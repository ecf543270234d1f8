package emin

import (
	"strconv"
	"strings"
	"testing"

	"github.com/emalab/ematools/pkg/diag"
	"github.com/emalab/ematools/pkg/textbuf"
)

func materialModel() *Model {
	block := []string{
		"* MATERIAL : copper",
		"!MATERIAL",
		"copper",
		"!!ISOTROPIC",
		"1.0000000000E+00    2.0000000000E+00    3.0000000000E+00    4.0000000000E+00",
	}
	var lines []string
	lines = append(lines, block...)
	lines = append(lines, "")
	lines = append(lines, block...)
	lines = append(lines, "")
	return NewModel(textbuf.FromLines(lines), diag.Nop())
}

func propertyValues(t *testing.T, m *Model, line int) []float64 {
	t.Helper()
	fields := strings.Fields(m.Buffer().Line(line))
	if len(fields) != 4 {
		t.Fatalf("property record has %d fields: %q", len(fields), m.Buffer().Line(line))
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			t.Fatalf("bad property value %q: %v", f, err)
		}
		vals[i] = v
	}
	return vals
}

func TestModifyIsotropicMaterial(t *testing.T) {
	m := materialModel()

	err := m.ModifyIsotropicMaterial("copper", MaterialProps{
		Sig: Float(5.8e7),
	})
	if err != nil {
		t.Fatalf("ModifyIsotropicMaterial failed: %v", err)
	}

	// Both occurrences carry the new conductivity; untouched values
	// survive.
	for _, line := range []int{4, 10} {
		vals := propertyValues(t, m, line)
		if vals[0] != 5.8e7 {
			t.Errorf("line %d: sig = %g, want 5.8e7", line, vals[0])
		}
		if vals[1] != 2.0 || vals[2] != 3.0 || vals[3] != 4.0 {
			t.Errorf("line %d: untouched values changed: %v", line, vals)
		}
	}
}

func TestModifyIsotropicMaterialRelativeOverrides(t *testing.T) {
	m := materialModel()

	err := m.ModifyIsotropicMaterial("copper", MaterialProps{
		Eps:    Float(99),
		EpsRel: Float(4.3),
		MuRel:  Float(2),
	})
	if err != nil {
		t.Fatalf("ModifyIsotropicMaterial failed: %v", err)
	}

	vals := propertyValues(t, m, 4)
	if want := 4.3 * vacuumPermittivity; vals[1] != want {
		t.Errorf("eps = %g, want %g (relative wins over absolute)", vals[1], want)
	}
	if want := 2 * vacuumPermeability; vals[2] != want {
		t.Errorf("mu = %g, want %g", vals[2], want)
	}
}

func TestModifyIsotropicMaterialUnknownName(t *testing.T) {
	m := materialModel()
	if err := m.ModifyIsotropicMaterial("gold", MaterialProps{Sig: Float(1)}); err == nil {
		t.Error("expected error for unknown material")
	}
}

func sourceModel(entries ...string) *Model {
	lines := []string{
		"!CURRENT DENSITY SOURCE",
		"!!SURFACE",
		"source info",
		"more info",
	}
	lines = append(lines, entries...)
	lines = append(lines, "")
	return NewModel(textbuf.FromLines(lines), diag.Nop())
}

func TestRestrictSurfaceCurrent(t *testing.T) {
	m := sourceModel(
		"1 1 1 1.0 0.0 0.0",
		"1 2 1 0.0 1.0 0.0",
		"1 3 1 2.5 0.0 0.0",
	)

	if err := m.RestrictSurfaceCurrent("x"); err != nil {
		t.Fatalf("RestrictSurfaceCurrent failed: %v", err)
	}

	buf := m.Buffer()
	if buf.Line(4) != "1 1 1 1.0 0.0 0.0" || buf.Line(5) != "1 3 1 2.5 0.0 0.0" {
		t.Errorf("unexpected kept entries: %v", buf.Range(4, 5))
	}
	// The dropped entry leaves the block one line shorter, still
	// blank-terminated.
	if buf.Line(6) != "" {
		t.Errorf("block no longer blank-terminated: %q", buf.Line(6))
	}
}

func TestRestrictSurfaceCurrentBadDirection(t *testing.T) {
	m := sourceModel("1 1 1 1.0 0.0 0.0")
	if err := m.RestrictSurfaceCurrent("w"); err == nil {
		t.Error("expected error for invalid direction")
	}
}

func TestRestrictSurfaceCurrentNoSource(t *testing.T) {
	m := NewModel(textbuf.FromLines([]string{"nothing here", ""}), diag.Nop())
	if err := m.RestrictSurfaceCurrent("x"); err == nil {
		t.Error("expected error when no source block exists")
	}
}
