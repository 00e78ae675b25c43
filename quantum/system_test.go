package quantum

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		l, dt   float64
		wantErr bool
	}{
		{"valid", 64, 12.0, 0.1, false},
		{"zero dt is a no-op, not an error", 64, 12.0, 0.0, false},
		{"negative dt (imaginary-time style) is finite", 64, 12.0, -0.1, false},
		{"zero n", 0, 12.0, 0.1, true},
		{"negative n", -4, 12.0, 0.1, true},
		{"odd n", 65, 12.0, 0.1, true},
		{"zero L", 64, 0.0, 0.1, true},
		{"negative L", 64, -1.0, 0.1, true},
		{"NaN dt", 64, 12.0, math.NaN(), true},
		{"Inf dt", 64, 12.0, math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.n, tt.l, tt.dt)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%d, %g, %g) error = %v, wantErr %v", tt.n, tt.l, tt.dt, err, tt.wantErr)
			}
		})
	}
}

func TestGridSpacing(t *testing.T) {
	s, err := New(128, 12.0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	x := s.X()
	if math.Abs(x[0]-(-6.0)) > 1e-12 {
		t.Errorf("x[0] = %v, want -6", x[0])
	}
	// Endpoint-exclusive: last sample one spacing short of L/2.
	if math.Abs(x[127]-(6.0-s.Dx())) > 1e-12 {
		t.Errorf("x[n-1] = %v, want %v", x[127], 6.0-s.Dx())
	}
	if math.Abs(s.Dx()-12.0/128.0) > 1e-15 {
		t.Errorf("dx = %v, want %v", s.Dx(), 12.0/128.0)
	}
}

func TestOperatorsAreUnitaryPhases(t *testing.T) {
	s, err := New(64, 12.0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetDoubleWell(3.0, 4.0); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < s.n; i++ {
		if d := math.Abs(cmplx.Abs(s.uV[i]) - 1.0); d > 1e-12 {
			t.Fatalf("|uV[%d]| deviates from 1 by %g", i, d)
		}
		if d := math.Abs(cmplx.Abs(s.uT[i]) - 1.0); d > 1e-12 {
			t.Fatalf("|uT[%d]| deviates from 1 by %g", i, d)
		}
	}
}

func TestDoubleWellShape(t *testing.T) {
	s, err := New(128, 12.0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetDoubleWell(3.0, 4.0); err != nil {
		t.Fatal(err)
	}
	v := s.Potential()
	x := s.X()
	// Barrier height at the origin, minima at x = ±separation/2.
	mid := len(x) / 2
	if math.Abs(x[mid]) > 1e-12 {
		t.Fatalf("expected a sample at x=0, got %v", x[mid])
	}
	if math.Abs(v[mid]-3.0) > 1e-9 {
		t.Errorf("V(0) = %v, want 3.0", v[mid])
	}
	for i, xv := range x {
		if math.Abs(xv-2.0) < s.Dx()/2 {
			if v[i] > 0.02 {
				t.Errorf("V(%.3f) = %v, want near 0 at the well minimum", xv, v[i])
			}
		}
	}

	if err := s.SetDoubleWell(3.0, 0.0); err == nil {
		t.Error("expected error for zero separation")
	}
}

func TestGaussianIsNormalized(t *testing.T) {
	s, err := New(128, 12.0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetGaussian(2.0, -1.0, 0.5); err != nil {
		t.Fatal(err)
	}
	if d := math.Abs(s.Norm() - 1.0); d > 1e-6 {
		t.Errorf("initial norm deviates from 1 by %g", d)
	}

	if err := s.SetGaussian(2.0, -1.0, 0.0); err == nil {
		t.Error("expected error for zero sigma")
	}
}

func TestZeroDtStepIsNoOp(t *testing.T) {
	s, err := New(64, 12.0, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetDoubleWell(3.0, 4.0); err != nil {
		t.Fatal(err)
	}
	if err := s.SetGaussian(2.0, -1.0, 0.5); err != nil {
		t.Fatal(err)
	}
	before := s.Psi()
	s.Step()
	after := s.Psi()
	for i := range before {
		if cmplx.Abs(after[i]-before[i]) > 1e-12 {
			t.Fatalf("psi[%d] changed by %g under dt=0", i, cmplx.Abs(after[i]-before[i]))
		}
	}
}

func TestNormConservation(t *testing.T) {
	s, err := New(128, 12.0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetDoubleWell(3.0, 4.0); err != nil {
		t.Fatal(err)
	}
	if err := s.SetGaussian(2.0, -1.0, 0.5); err != nil {
		t.Fatal(err)
	}

	norm0 := s.Norm()
	for i := 0; i < 300; i++ {
		s.Step()
	}
	if drift := math.Abs(s.Norm() - norm0); drift > 1e-6 {
		t.Errorf("norm drifted by %g over 300 steps, want < 1e-6", drift)
	}
}

func TestStepMovesPacket(t *testing.T) {
	// A packet with p0 = -1 should move its density peak toward smaller x.
	s, err := New(128, 12.0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetDoubleWell(3.0, 4.0); err != nil {
		t.Fatal(err)
	}
	if err := s.SetGaussian(2.0, -1.0, 0.5); err != nil {
		t.Fatal(err)
	}

	peakX := func() float64 {
		d := s.Density()
		best := 0
		for i := range d {
			if d[i] > d[best] {
				best = i
			}
		}
		return s.X()[best]
	}

	x0 := peakX()
	for i := 0; i < 8; i++ {
		s.Step()
	}
	if x1 := peakX(); x1 >= x0 {
		t.Errorf("density peak did not move left: %v -> %v", x0, x1)
	}
}
