package quantum

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// forwardOrtho computes the orthonormal (norm-preserving) forward DFT:
// the library's unnormalized transform scaled by 1/sqrt(n).
func forwardOrtho(in []complex128) []complex128 {
	out := fft.FFT(in)
	scale := complex(1.0/math.Sqrt(float64(len(in))), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// inverseOrtho is the exact adjoint of forwardOrtho. fft.IFFT already
// divides by n, so scaling by sqrt(n) leaves the net 1/sqrt(n).
func inverseOrtho(in []complex128) []complex128 {
	out := fft.IFFT(in)
	scale := complex(math.Sqrt(float64(len(in))), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// fftFreq returns sample frequencies in the transform's native bin order:
// zero and positive frequencies first, then the wrapped negative half.
// freqs = [0, 1, ..., n/2-1, -n/2, ..., -1] / (n*d)
func fftFreq(n int, d float64) []float64 {
	freqs := make([]float64, n)
	scale := 1.0 / (float64(n) * d)
	for i := 0; i < n; i++ {
		if i < (n+1)/2 {
			freqs[i] = float64(i) * scale
		} else {
			freqs[i] = float64(i-n) * scale
		}
	}
	return freqs
}

// fftShift rotates a slice by n/2 so the zero bin lands at the midpoint.
// For even n the shift is its own inverse, which the centered Wigner
// transform relies on.
func fftShift(in []complex128) []complex128 {
	n := len(in)
	out := make([]complex128, n)
	for i := range out {
		out[i] = in[(i+n/2)%n]
	}
	return out
}

func fftShiftFloats(in []float64) []float64 {
	n := len(in)
	out := make([]float64, n)
	for i := range out {
		out[i] = in[(i+n/2)%n]
	}
	return out
}

// wrapIndex maps i into [0, n) with periodic boundary treatment.
func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
