package emin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emalab/ematools/pkg/textbuf"
)

// MaterialProps holds optional isotropic material overrides. Nil fields
// keep the value already in the file. Relative permittivity and
// permeability override their absolute counterparts.
type MaterialProps struct {
	Sig    *float64 // electric conductivity
	Eps    *float64 // permittivity
	Mu     *float64 // permeability
	Sigm   *float64 // magnetic conductivity
	EpsRel *float64 // relative permittivity (overrides Eps)
	MuRel  *float64 // relative permeability (overrides Mu)
}

// Float is a convenience for building MaterialProps literals.
func Float(v float64) *float64 { return &v }

// propertyOffset is the fixed distance from a material's comment header
// to its property record.
const propertyOffset = 4

// ModifyIsotropicMaterial rewrites the property record of every
// occurrence of the named isotropic material.
func (m *Model) ModifyIsotropicMaterial(name string, props MaterialProps) error {
	if props.Eps != nil && props.EpsRel != nil {
		m.sink.Warnf("permittivity specified as both absolute and relative; absolute value discarded")
	}
	if props.Mu != nil && props.MuRel != nil {
		m.sink.Warnf("permeability specified as both absolute and relative; absolute value discarded")
	}
	if props.EpsRel != nil {
		props.Eps = Float(*props.EpsRel * vacuumPermittivity)
	}
	if props.MuRel != nil {
		props.Mu = Float(*props.MuRel * vacuumPermeability)
	}

	indices := m.buf.FindAll(fmt.Sprintf("* MATERIAL : %s", name), textbuf.Search{})
	if len(indices) == 0 {
		return fmt.Errorf("emin: material %s not found", name)
	}

	// Property values are shared across occurrences: read the first
	// record, apply overrides, then stamp the same text everywhere.
	text := ""
	for _, index := range indices {
		i := index + propertyOffset
		if i >= m.buf.Len() {
			return fmt.Errorf("emin: truncated material block for %s", name)
		}
		if text == "" {
			fields := strings.Fields(m.buf.Line(i))
			if len(fields) != 4 {
				return fmt.Errorf("emin: malformed property record for %s: %q", name, m.buf.Line(i))
			}
			vals := make([]float64, 4)
			for j, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return fmt.Errorf("emin: malformed property record for %s: %w", name, err)
				}
				vals[j] = v
			}
			for j, override := range []*float64{props.Sig, props.Eps, props.Mu, props.Sigm} {
				if override != nil {
					vals[j] = *override
				}
			}
			formatted := make([]string, 4)
			for j, v := range vals {
				formatted[j] = fmt.Sprintf("%.10E", v)
			}
			text = strings.Join(formatted, "    ")
		}
		m.buf.ReplaceLine(i, text)
	}
	return nil
}

// sourcePointOffset is the fixed distance from a current-source marker
// to the start of its point list.
const sourcePointOffset = 4

var directionColumns = map[string]int{"x": 3, "y": 4, "z": 5}

// RestrictSurfaceCurrent limits a surface current-source definition to
// a single direction by dropping point entries with a zero component in
// that direction. The solver GUI cannot express directed surface
// currents, so this is applied as a post-processing step.
func (m *Model) RestrictSurfaceCurrent(direction string) error {
	column, ok := directionColumns[strings.ToLower(direction)]
	if !ok {
		return fmt.Errorf(`emin: direction must be "x", "y", or "z" (provided %q)`, direction)
	}

	i := m.buf.Find("!CURRENT DENSITY SOURCE", textbuf.Search{})
	if i < 0 {
		return fmt.Errorf("emin: no current density source found")
	}
	i0 := i + sourcePointOffset
	i1 := m.buf.FindNext(i0, "", textbuf.Search{Exact: true}) - 1
	if i1 < i0 {
		return fmt.Errorf("emin: malformed current density source block")
	}

	var kept []string
	for j := i0; j <= i1; j++ {
		fields := strings.Fields(m.buf.Line(j))
		if len(fields) <= column {
			m.sink.Warnf("malformed source entry at line %d: %q", j+1, m.buf.Line(j))
			continue
		}
		v, err := strconv.ParseFloat(fields[column], 64)
		if err != nil {
			m.sink.Warnf("malformed source entry at line %d: %q", j+1, m.buf.Line(j))
			continue
		}
		if v != 0 {
			kept = append(kept, m.buf.Line(j))
		}
	}

	m.buf.Replace(i0, i1, kept...)
	if len(kept) == 0 {
		m.sink.Warnf("no %s-directed source elements found; source definition emptied", direction)
	}
	return nil
}
