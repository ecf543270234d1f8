package regression

import "fmt"

// Test compares one simulation series against its reference using an
// injected metric and pass function.
type Test struct {
	Name   string
	Sim    Series
	Ref    Series
	Metric Metric
	Pass   PassFunc

	// Results is populated by Evaluate.
	Results *Results
}

// Results holds the pointwise outcome of an evaluation.
type Results struct {
	Values     []float64
	Thresholds []float64
	Passed     []bool
	Failures   []int
	AllPassed  bool
}

// Evaluate validates the time bases, computes the metric against the
// per-point thresholds, and records the outcome.
func (t *Test) Evaluate() error {
	if err := validateTimeSteps(t.Sim.X, t.Ref.X); err != nil {
		return fmt.Errorf("regression: test %s: %w", t.Name, err)
	}
	if t.Metric == nil || t.Pass == nil {
		return fmt.Errorf("regression: test %s: metric and pass function are required", t.Name)
	}

	values := t.Metric.Compute(t.Sim.Y, t.Ref.Y)
	thresholds := t.Pass.Threshold(t.Ref.Y)
	passed := t.Metric.Pass(values, thresholds)

	res := &Results{
		Values:     values,
		Thresholds: thresholds,
		Passed:     passed,
		AllPassed:  true,
	}
	for i, ok := range passed {
		if !ok {
			res.AllPassed = false
			res.Failures = append(res.Failures, i)
		}
	}
	t.Results = res
	return nil
}

// validateTimeSteps checks that two time bases are identical; comparing
// traces sampled on different grids is a configuration error.
func validateTimeSteps(t0, t1 []float64) error {
	if len(t0) != len(t1) {
		return fmt.Errorf("time step arrays differ in size (%d vs %d)", len(t0), len(t1))
	}
	for i := range t0 {
		if t0[i] != t1[i] {
			return fmt.Errorf("time step arrays differ at index %d (%g vs %g)", i, t0[i], t1[i])
		}
	}
	return nil
}
