package quantum

import (
	"math"
	"math/cmplx"
)

// Wigner computes the Wigner quasi-probability map of the current state.
//
// For each position i the point correlation g[y] = ψ[i+y]·conj(ψ[i-y]) is
// formed over the centered offset range y ∈ [-n/2, n/2) with indices
// wrapped modulo n (periodic boundary treatment; valid because the
// potential confines the packet well inside the domain). A centered
// orthonormal transform along the offset axis (shift, transform, shift)
// turns the offset into momentum.
//
// The discrete map is normalized as W = (dx·√n/π)·Re(Fₒ), equivalent to
// (dx/π) times the unnormalized DFT, so that summing a momentum column
// times the momentum cell width recovers |ψ(x)|² and the full phase-space
// sum times the cell area recovers the total probability. The imaginary
// residue of the transform is discarded; it is zero up to rounding for a
// Hermitian correlation.
//
// The returned meshes and map share one shape and orientation: row r is
// momentum bin r and column c is position sample c, so X[r][c] = x[c],
// P[r][c] = p[r] and W[r][c] = W(x[c], p[r]).
func (s *System) Wigner() (X, P, W [][]float64) {
	n := s.n
	half := n / 2
	scale := s.dx * math.Sqrt(float64(n)) / math.Pi

	// Position-major intermediate: wxp[i][m] = W(x[i], p[m]).
	wxp := make([][]float64, n)
	g := make([]complex128, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			y := j - half
			g[j] = s.psi[wrapIndex(i+y, n)] * cmplx.Conj(s.psi[wrapIndex(i-y, n)])
		}
		sp := fftShift(forwardOrtho(fftShift(g)))
		row := make([]float64, n)
		for m := 0; m < n; m++ {
			row[m] = real(sp[m]) * scale
		}
		wxp[i] = row
	}

	// Momentum axis: p = π · fftshift(fftfreq(n, dx)), ascending.
	p := fftShiftFloats(fftFreq(n, s.dx))
	for m := range p {
		p[m] *= math.Pi
	}

	// Transpose into the momentum-major layout shared with the meshes.
	X = make([][]float64, n)
	P = make([][]float64, n)
	W = make([][]float64, n)
	for r := 0; r < n; r++ {
		xr := make([]float64, n)
		pr := make([]float64, n)
		wr := make([]float64, n)
		for c := 0; c < n; c++ {
			xr[c] = s.x[c]
			pr[c] = p[r]
			wr[c] = wxp[c][r]
		}
		X[r], P[r], W[r] = xr, pr, wr
	}
	return X, P, W
}
