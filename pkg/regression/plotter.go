package regression

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emalab/ematools/pkg/plot"
)

// Plotter renders result plots for an evaluated test.
type Plotter interface {
	Plot(t *Test) error
}

// SVGPlotter writes a results chart (sim and ref traces with min/max
// envelopes) plus a percent-error chart per test into OutDir.
type SVGPlotter struct {
	OutDir string
	XLabel string
	YLabel string
}

func (p SVGPlotter) Plot(t *Test) error {
	if err := os.MkdirAll(p.OutDir, 0o755); err != nil {
		return fmt.Errorf("regression: failed to create plot directory: %w", err)
	}
	base := strings.ReplaceAll(t.Name, " ", "_")

	results := plot.New(t.Name)
	results.XLabel = p.XLabel
	results.YLabel = p.YLabel
	results.AddBand(t.Sim.X, t.Sim.YMin, t.Sim.YMax, "#1f77b4")
	results.AddLine("Simulation", t.Sim.X, t.Sim.Y, "#1f77b4")
	results.AddBand(t.Ref.X, t.Ref.YMin, t.Ref.YMax, "#ff7f0e")
	results.AddLine("Reference", t.Ref.X, t.Ref.Y, "#ff7f0e")
	if err := results.SaveSVG(filepath.Join(p.OutDir, base+"_results.svg")); err != nil {
		return err
	}

	errPercent := RelativeError(t.Sim.Y, t.Ref.Y)
	for i := range errPercent {
		errPercent[i] *= 100
	}
	errChart := plot.New(t.Name + " (error)")
	errChart.XLabel = p.XLabel
	errChart.YLabel = "Error (%)"
	errChart.AddLine("Error", t.Sim.X, errPercent, "")
	return errChart.SaveSVG(filepath.Join(p.OutDir, base+"_error.svg"))
}
