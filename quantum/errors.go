package quantum

import "fmt"

// DivergenceError reports the wavefunction norm drifting beyond tolerance
// across steps, typically an unstable dt relative to the potential
// curvature. The computation is deterministic, so the fault reproduces on
// retry and is never retried internally.
type DivergenceError struct {
	Frame int     // recorded frame at which the drift was detected
	Norm  float64 // observed total probability
	Ref   float64 // total probability at the start of the segment
	Tol   float64 // configured allowed drift
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("norm diverged at frame %d: %.9g (reference %.9g, tolerance %g)",
		e.Frame, e.Norm, e.Ref, e.Tol)
}
