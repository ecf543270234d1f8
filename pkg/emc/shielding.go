// Package emc computes shielding effectiveness from time-domain
// measurement data.
package emc

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/emalab/ematools/pkg/signal"
)

// Shielding computes shielding effectiveness in dB from a measurement
// time series and a reference series sharing the same time steps:
// SE(f) = 20 log10 |Xref(f) / X(f)|.
func Shielding(t, x, xref []float64) ([]float64, []float64, error) {
	if len(x) != len(t) {
		return nil, nil, fmt.Errorf("emc: size of x (%d) must match size of t (%d)", len(x), len(t))
	}
	if len(xref) != len(x) {
		return nil, nil, fmt.Errorf("emc: size of xref (%d) must match size of x (%d)", len(xref), len(x))
	}

	f, xf, err := signal.RFFT(t, x)
	if err != nil {
		return nil, nil, err
	}
	_, rf, err := signal.RFFT(t, xref)
	if err != nil {
		return nil, nil, err
	}

	se := make([]float64, len(f))
	for i := range f {
		se[i] = 20 * math.Log10(cmplx.Abs(rf[i]/xf[i]))
	}
	return f, se, nil
}
