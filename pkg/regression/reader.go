// Package regression implements the solver regression-testing harness:
// result readers, comparison metrics, pass criteria, reporting, and
// plotting, assembled into suites described by a YAML configuration.
// Each capability is a small interface so suites can mix concrete
// implementations per test.
package regression

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Series is one labeled result curve: the independent variable plus the
// mean trace and its min/max envelope.
type Series struct {
	Label string
	X     []float64
	YMin  []float64
	YMax  []float64
	Y     []float64
}

// DataReader loads result curves from a solver output file.
type DataReader interface {
	Load(path string) ([]Series, error)
}

// SimplePlotReader reads simple_plot.dat-style files: whitespace-
// separated columns of x followed by (min, max, mean) triples, one
// triple per species.
type SimplePlotReader struct{}

// Load parses the file into one Series per species.
func (SimplePlotReader) Load(path string) ([]Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regression: failed to read %s: %w", path, err)
	}

	var rows [][]float64
	for lineNo, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("regression: bad value at %s:%d: %w", path, lineNo+1, err)
			}
			row[i] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("regression: ragged columns at %s:%d", path, lineNo+1)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("regression: no data in %s", path)
	}

	cols := len(rows[0])
	if cols < 4 || (cols-1)%3 != 0 {
		return nil, fmt.Errorf("regression: %s has %d columns; expected 1 + 3 per species", path, cols)
	}
	species := (cols - 1) / 3

	out := make([]Series, species)
	for s := 0; s < species; s++ {
		ser := Series{
			X:    make([]float64, len(rows)),
			YMin: make([]float64, len(rows)),
			YMax: make([]float64, len(rows)),
			Y:    make([]float64, len(rows)),
		}
		if species > 1 {
			ser.Label = fmt.Sprintf("species%d", s)
		}
		base := 1 + 3*s
		for i, row := range rows {
			ser.X[i] = row[0]
			ser.YMin[i] = row[base]
			ser.YMax[i] = row[base+1]
			ser.Y[i] = row[base+2]
		}
		out[s] = ser
	}
	return out, nil
}
