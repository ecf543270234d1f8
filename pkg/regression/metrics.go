package regression

import "math"

// Metric compares a simulation trace against a reference trace and
// decides, pointwise, whether the comparison clears a threshold.
type Metric interface {
	// Compute returns the pointwise comparison value.
	Compute(sim, ref []float64) []float64
	// Pass evaluates the comparison values against per-point thresholds.
	Pass(values, thresholds []float64) []bool
}

// TanhErrorMetric reports tanh of the relative error, compressing large
// excursions into the (-1, 1) range. A point passes when the absolute
// compressed error stays under its threshold.
type TanhErrorMetric struct{}

func (TanhErrorMetric) Compute(sim, ref []float64) []float64 {
	out := make([]float64, len(sim))
	for i := range sim {
		out[i] = math.Tanh((sim[i] - ref[i]) / ref[i])
	}
	return out
}

func (TanhErrorMetric) Pass(values, thresholds []float64) []bool {
	out := make([]bool, len(values))
	for i := range values {
		out[i] = math.Abs(values[i]) < thresholds[i]
	}
	return out
}

// QualityMetric reports the feature-selective quality factor
// 1 - (sim-ref)^2/(sim+ref)^2, which is 1 for perfect agreement.
// A point passes when the quality reaches its threshold.
type QualityMetric struct{}

func (QualityMetric) Compute(sim, ref []float64) []float64 {
	out := make([]float64, len(sim))
	for i := range sim {
		num := sim[i] - ref[i]
		den := sim[i] + ref[i]
		out[i] = 1 - (num*num)/(den*den)
	}
	return out
}

func (QualityMetric) Pass(values, thresholds []float64) []bool {
	out := make([]bool, len(values))
	for i := range values {
		out[i] = values[i] >= thresholds[i]
	}
	return out
}

// RelativeError returns the plain pointwise relative error, used by the
// plotter's error panel.
func RelativeError(sim, ref []float64) []float64 {
	out := make([]float64, len(sim))
	for i := range sim {
		out[i] = (sim[i] - ref[i]) / ref[i]
	}
	return out
}
