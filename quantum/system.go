// Package quantum implements a 1-D split-operator spectral solver for the
// time-dependent Schrödinger equation (ħ = m = 1) together with the Wigner
// phase-space transform of its state.
package quantum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// System evolves a complex wavefunction sampled on a periodic spatial grid
// using symmetric (Strang) splitting: half-step potential phase, full-step
// kinetic phase in momentum space, half-step potential phase. The state is
// owned by exactly one System and mutated in place by Step.
type System struct {
	n  int
	l  float64
	dt float64
	dx float64

	x   []float64    // position samples over [-L/2, L/2)
	k   []float64    // momentum grid in FFT bin order; p = k since ħ = m = 1
	v   []float64    // potential V(x)
	psi []complex128 // current wavefunction

	uV []complex128 // half-step potential phase exp(-i V dt/2)
	uT []complex128 // full-step kinetic phase exp(-i k^2 dt/2)
}

// New constructs a System on an n-point grid spanning [-L/2, L/2). n must
// be positive and even; the centered Wigner transform needs the even half
// split. dt must be finite; zero dt is a legal no-op evolution.
func New(n int, l, dt float64) (*System, error) {
	if n <= 0 || n%2 != 0 {
		return nil, fmt.Errorf("grid size n must be positive and even, got %d", n)
	}
	if l <= 0 {
		return nil, fmt.Errorf("domain width L must be positive, got %g", l)
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, errors.New("time step dt must be finite")
	}

	s := &System{n: n, l: l, dt: dt, dx: l / float64(n)}

	// Endpoint-exclusive sample positions, spacing dx.
	s.x = make([]float64, n)
	floats.Span(s.x, -l/2.0, l/2.0-s.dx)

	// Momentum grid stays in the transform's native bin order because the
	// kinetic phase is applied bin-for-bin after the forward transform.
	s.k = fftFreq(n, s.dx)
	floats.Scale(2.0*math.Pi, s.k)

	s.psi = make([]complex128, n)
	s.v = make([]float64, n)
	s.uV = make([]complex128, n)
	s.uT = make([]complex128, n)
	for i := 0; i < n; i++ {
		s.uV[i] = 1
		s.uT[i] = cmplx.Exp(complex(0, -0.5*s.k[i]*s.k[i]*dt))
	}
	return s, nil
}

// SetDoubleWell installs the symmetric double well
// V(x) = h*((x/(sep/2))^2 - 1)^2 and refreshes the half-step potential
// phase. The wells sit at x = ±sep/2 with barrier height h at x = 0.
func (s *System) SetDoubleWell(barrierHeight, separation float64) error {
	if separation <= 0 {
		return fmt.Errorf("well separation must be positive, got %g", separation)
	}
	x0 := separation / 2.0
	for i, x := range s.x {
		r := x / x0
		s.v[i] = barrierHeight * (r*r - 1) * (r*r - 1)
		s.uV[i] = cmplx.Exp(complex(0, -0.5*s.v[i]*s.dt))
	}
	return nil
}

// SetGaussian installs the normalized Gaussian wave packet
// ψ(x) = (2πσ²)^(-1/4) · exp(-(x-x0)²/(4σ²)) · exp(i p0 x).
func (s *System) SetGaussian(x0, p0, sigma float64) error {
	if sigma <= 0 {
		return fmt.Errorf("packet width sigma must be positive, got %g", sigma)
	}
	amp := math.Pow(2.0*math.Pi*sigma*sigma, -0.25)
	for i, x := range s.x {
		env := amp * math.Exp(-((x-x0)*(x-x0))/(4.0*sigma*sigma))
		s.psi[i] = complex(env, 0) * cmplx.Exp(complex(0, p0*x))
	}
	return nil
}

// Step advances the wavefunction by one time step in place. Every factor
// is a unit-modulus phase and the transform pair is orthonormal, so total
// probability is conserved up to floating-point error.
func (s *System) Step() {
	for i := range s.psi {
		s.psi[i] *= s.uV[i]
	}
	phi := forwardOrtho(s.psi)
	for i := range phi {
		phi[i] *= s.uT[i]
	}
	phi = inverseOrtho(phi)
	for i := range phi {
		s.psi[i] = phi[i] * s.uV[i]
	}
}

// Norm returns the total probability sum(|ψ|²)·dx.
func (s *System) Norm() float64 {
	var sum float64
	for _, c := range s.psi {
		re, im := real(c), imag(c)
		sum += re*re + im*im
	}
	return sum * s.dx
}

// N returns the grid size.
func (s *System) N() int { return s.n }

// Dx returns the spatial sample spacing.
func (s *System) Dx() float64 { return s.dx }

// X returns a copy of the position samples.
func (s *System) X() []float64 {
	out := make([]float64, s.n)
	copy(out, s.x)
	return out
}

// Psi returns a copy of the current wavefunction.
func (s *System) Psi() []complex128 {
	out := make([]complex128, s.n)
	copy(out, s.psi)
	return out
}

// Density returns |ψ(x)|² per sample.
func (s *System) Density() []float64 {
	out := make([]float64, s.n)
	for i, c := range s.psi {
		re, im := real(c), imag(c)
		out[i] = re*re + im*im
	}
	return out
}

// Potential returns a copy of V(x).
func (s *System) Potential() []float64 {
	out := make([]float64, s.n)
	copy(out, s.v)
	return out
}
