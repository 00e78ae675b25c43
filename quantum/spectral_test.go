package quantum

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestOrthoRoundTrip(t *testing.T) {
	const n = 128
	in := make([]complex128, n)
	for i := range in {
		// Deterministic, non-symmetric signal bounded away from zero.
		in[i] = complex(math.Sin(0.37*float64(i))+2.0, math.Cos(1.13*float64(i)))
	}

	out := inverseOrtho(forwardOrtho(in))

	var maxRel float64
	for i := range in {
		rel := cmplx.Abs(out[i]-in[i]) / cmplx.Abs(in[i])
		if rel > maxRel {
			maxRel = rel
		}
	}
	if maxRel > 1e-9 {
		t.Errorf("round trip relative error = %g, want <= 1e-9", maxRel)
	}
}

func TestOrthoPreservesNorm(t *testing.T) {
	const n = 64
	in := make([]complex128, n)
	for i := range in {
		in[i] = complex(float64(i%7)-3.0, float64(i%5)-2.0)
	}
	sumSq := func(v []complex128) float64 {
		var s float64
		for _, c := range v {
			s += real(c)*real(c) + imag(c)*imag(c)
		}
		return s
	}

	fwd := forwardOrtho(in)
	if diff := math.Abs(sumSq(fwd) - sumSq(in)); diff > 1e-9 {
		t.Errorf("forward transform changed norm by %g", diff)
	}
}

func TestFFTFreq(t *testing.T) {
	want := []float64{0, 0.125, 0.25, 0.375, -0.5, -0.375, -0.25, -0.125}
	got := fftFreq(8, 1.0)
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Fatalf("fftFreq(8, 1)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Spacing scales as 1/(n*d).
	got = fftFreq(4, 0.5)
	if math.Abs(got[1]-0.5) > 1e-15 {
		t.Errorf("fftFreq(4, 0.5)[1] = %v, want 0.5", got[1])
	}
}

func TestFFTShift(t *testing.T) {
	in := []complex128{0, 1, 2, 3, 4, 5, 6, 7}
	got := fftShift(in)
	want := []complex128{4, 5, 6, 7, 0, 1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fftShift[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Even-length shift is its own inverse.
	back := fftShift(got)
	for i := range in {
		if back[i] != in[i] {
			t.Fatalf("double shift[%d] = %v, want %v", i, back[i], in[i])
		}
	}
}

func TestWrapIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 8, 0},
		{7, 8, 7},
		{8, 8, 0},
		{9, 8, 1},
		{-1, 8, 7},
		{-8, 8, 0},
		{-9, 8, 7},
	}
	for _, tt := range tests {
		if got := wrapIndex(tt.i, tt.n); got != tt.want {
			t.Errorf("wrapIndex(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}
