// Package signal provides the small set of time-series utilities the
// post-processing tools need: real-input FFT, trimming, padding, and
// linear resampling. Arrays are plain float64 slices.
package signal

import (
	"fmt"
	"math"
	"math/cmplx"
)

// RFFT computes the spectrum of a real time series sampled at the
// instants t. The result is normalized so each bin reports the true
// amplitude of its frequency (forward normalization times two), and
// covers the non-negative frequencies 0..n/2.
func RFFT(t, x []float64) ([]float64, []complex128, error) {
	return RFFTWindowed(t, x, "")
}

// Window functions accepted by RFFTWindowed.
var windows = map[string]func(n int) []float64{
	"hann": hannWindow,
}

// RFFTWindowed is RFFT with an optional window function applied first.
// An unrecognized window name produces a plain rectangular window.
func RFFTWindowed(t, x []float64, window string) ([]float64, []complex128, error) {
	if len(t) != len(x) {
		return nil, nil, fmt.Errorf("signal: size of x (%d) must match size of t (%d)", len(x), len(t))
	}
	if len(t) < 2 {
		return nil, nil, fmt.Errorf("signal: need at least two samples")
	}

	data := make([]float64, len(x))
	copy(data, x)
	if window != "" {
		wf, ok := windows[window]
		if !ok {
			return nil, nil, fmt.Errorf("signal: invalid window type %q", window)
		}
		for i, w := range wf(len(data)) {
			data[i] *= w
		}
	}

	n := len(data)
	dt := t[1] - t[0]
	full := fft(toComplex(data))

	nOut := n/2 + 1
	freqs := make([]float64, nOut)
	spectrum := make([]complex128, nOut)
	for k := 0; k < nOut; k++ {
		freqs[k] = float64(k) / (float64(n) * dt)
		// Forward normalization, doubled to recover one-sided amplitude.
		spectrum[k] = full[k] * complex(2/float64(n), 0)
	}
	return freqs, spectrum, nil
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

func toComplex(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	return out
}

// fft computes the discrete Fourier transform, using an iterative
// radix-2 decimation when the length is a power of two and falling back
// to the direct transform otherwise. Inputs here are short measurement
// records, so the direct path is acceptable off the fast path.
func fft(x []complex128) []complex128 {
	n := len(x)
	if n == 0 {
		return nil
	}
	if n&(n-1) != 0 {
		return dft(x)
	}

	out := make([]complex128, n)
	copy(out, x)

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			out[i], out[j] = out[j], out[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		angle := -2 * math.Pi / float64(size)
		wStep := cmplx.Exp(complex(0, angle))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := 0; k < size/2; k++ {
				a := out[start+k]
				b := out[start+k+size/2] * w
				out[start+k] = a + b
				out[start+k+size/2] = a - b
				w *= wStep
			}
		}
	}
	return out
}

func dft(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			angle := -2 * math.Pi * float64(k) * float64(j) / float64(n)
			sum += x[j] * cmplx.Exp(complex(0, angle))
		}
		out[k] = sum
	}
	return out
}

// TrimToTime cuts both arrays at the sample nearest the cutoff time.
func TrimToTime(t, x []float64, cutoff float64) ([]float64, []float64, error) {
	if len(t) != len(x) {
		return nil, nil, fmt.Errorf("signal: size of x (%d) must match size of t (%d)", len(x), len(t))
	}
	if cutoff < 0 {
		return nil, nil, fmt.Errorf("signal: cutoff time (%g) must not be negative", cutoff)
	}
	index := 0
	best := math.Inf(1)
	for i, v := range t {
		if d := math.Abs(v - cutoff); d < best {
			best = d
			index = i
		}
	}
	return t[:index], x[:index], nil
}

// PadToLength extends x to size entries by appending val.
func PadToLength(x []float64, size int, val float64) ([]float64, error) {
	if size < len(x) {
		return nil, fmt.Errorf("signal: target size %d is smaller than input size %d", size, len(x))
	}
	out := make([]float64, size)
	copy(out, x)
	for i := len(x); i < size; i++ {
		out[i] = val
	}
	return out, nil
}

// PadToTime extends both the time steps and the data out to the desired
// end time, padding the data with val.
func PadToTime(t, x []float64, endtime, val float64) ([]float64, []float64, error) {
	if len(t) < 2 {
		return nil, nil, fmt.Errorf("signal: need at least two samples")
	}
	dt := t[1] - t[0]
	var padded []float64
	for v := t[0]; v <= endtime+dt/2; v += dt {
		padded = append(padded, v)
	}
	xPadded, err := PadToLength(x, len(padded), val)
	if err != nil {
		return nil, nil, err
	}
	return padded, xPadded, nil
}

// Resample interpolates the series onto a uniform grid with the given
// step, covering the original time span.
func Resample(t, x []float64, step float64) ([]float64, []float64, error) {
	if len(t) != len(x) || len(t) < 2 {
		return nil, nil, fmt.Errorf("signal: need matching arrays of at least two samples")
	}
	if step <= 0 {
		return nil, nil, fmt.Errorf("signal: step (%g) must be positive", step)
	}
	var samples []float64
	for v := t[0]; v <= t[len(t)-1]+step/2; v += step {
		samples = append(samples, v)
	}
	out, err := ResampleAt(t, x, samples)
	if err != nil {
		return nil, nil, err
	}
	return samples, out, nil
}

// ResampleAt linearly interpolates the series at arbitrary sample
// points. Points outside the original span clamp to the edge values.
func ResampleAt(t, x, samples []float64) ([]float64, error) {
	if len(t) != len(x) || len(t) < 2 {
		return nil, fmt.Errorf("signal: need matching arrays of at least two samples")
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = interp(t, x, s)
	}
	return out, nil
}

func interp(t, x []float64, s float64) float64 {
	if s <= t[0] {
		return x[0]
	}
	if s >= t[len(t)-1] {
		return x[len(x)-1]
	}
	// t is monotonically increasing; find the bracketing interval.
	lo, hi := 0, len(t)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if t[mid] <= s {
			lo = mid
		} else {
			hi = mid
		}
	}
	frac := (s - t[lo]) / (t[hi] - t[lo])
	return x[lo] + frac*(x[hi]-x[lo])
}
