package regression

import "math"

// PassFunc derives the per-point pass threshold from the reference
// trace. Signal regions near zero are numerically noisy, so thresholds
// may relax there.
type PassFunc interface {
	Threshold(ref []float64) []float64
}

// FlatPassFunc applies one baseline threshold everywhere.
type FlatPassFunc struct {
	Baseline float64
}

func (f FlatPassFunc) Threshold(ref []float64) []float64 {
	out := make([]float64, len(ref))
	for i := range out {
		out[i] = f.Baseline
	}
	return out
}

// LinearBufferPassFunc relaxes the threshold linearly as the reference
// amplitude drops toward the noise cutoff. Above ten times the cutoff
// the baseline applies; below the cutoff every point passes.
type LinearBufferPassFunc struct {
	Baseline float64
	Cutoff   float64
}

func (f LinearBufferPassFunc) Threshold(ref []float64) []float64 {
	rampStop := f.Cutoff
	rampStart := f.Cutoff * 10

	out := make([]float64, len(ref))
	for i, y := range ref {
		a := math.Abs(y)
		switch {
		case a > rampStart:
			out[i] = f.Baseline
		case a > rampStop:
			frac := (rampStart - a) / (rampStart - rampStop)
			out[i] = f.Baseline + frac*(1-f.Baseline)
		default:
			out[i] = 1
		}
	}
	return out
}
