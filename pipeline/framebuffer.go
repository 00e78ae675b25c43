// Package pipeline drives the spectral engine and Wigner transform across
// one or more grid resolutions and collects the down-sampled frames into an
// immutable FrameBuffer for playback.
package pipeline

import (
	"errors"
	"fmt"
)

// ShapeError reports a consumer expecting a display resolution the
// precompute pass did not produce, or a frame that does not match the
// buffer's mesh.
type ShapeError struct {
	WantRows, WantCols int
	GotRows, GotCols   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch: want %dx%d, got %dx%d",
		e.WantRows, e.WantCols, e.GotRows, e.GotCols)
}

// FrameBuffer is the ordered sequence of down-sampled Wigner frames for a
// run, plus the fixed mesh coordinates shared by every frame. Frames are
// immutable once appended; consumers read them by index, clamped, so a
// timeline may scrub past either end without error.
type FrameBuffer struct {
	meshX, meshP [][]float64
	frames       [][][]float64
	timePerFrame float64
	rows, cols   int
}

// NewFrameBuffer creates an empty buffer over the given mesh coordinates.
// The meshes fix the shape every appended frame must match. timePerFrame
// is the simulation time covered by one frame (dt · steps per frame).
func NewFrameBuffer(meshX, meshP [][]float64, timePerFrame float64) (*FrameBuffer, error) {
	if len(meshX) == 0 || len(meshX[0]) == 0 {
		return nil, errors.New("mesh coordinates must be non-empty")
	}
	rows, cols := len(meshX), len(meshX[0])
	if len(meshP) != rows || len(meshP[0]) != cols {
		return nil, &ShapeError{WantRows: rows, WantCols: cols, GotRows: len(meshP), GotCols: len(meshP[0])}
	}
	return &FrameBuffer{
		meshX:        meshX,
		meshP:        meshP,
		timePerFrame: timePerFrame,
		rows:         rows,
		cols:         cols,
	}, nil
}

// Append adds the next frame in order. The frame must match the mesh
// shape.
func (b *FrameBuffer) Append(frame [][]float64) error {
	if len(frame) != b.rows {
		return &ShapeError{WantRows: b.rows, WantCols: b.cols, GotRows: len(frame)}
	}
	for _, row := range frame {
		if len(row) != b.cols {
			return &ShapeError{WantRows: b.rows, WantCols: b.cols, GotRows: len(frame), GotCols: len(row)}
		}
	}
	b.frames = append(b.frames, frame)
	return nil
}

// Len returns the number of frames.
func (b *FrameBuffer) Len() int { return len(b.frames) }

// Rows returns the display-resolution row count (momentum axis).
func (b *FrameBuffer) Rows() int { return b.rows }

// Cols returns the display-resolution column count (position axis).
func (b *FrameBuffer) Cols() int { return b.cols }

// TimePerFrame returns the simulation time covered by one frame.
func (b *FrameBuffer) TimePerFrame() float64 { return b.timePerFrame }

// Frame returns frame i with i clamped into [0, Len-1]. Callers must treat
// the returned values as read-only.
func (b *FrameBuffer) Frame(i int) [][]float64 {
	return b.frames[b.clamp(i)]
}

// TimeAt returns the simulation time of the clamped frame index.
func (b *FrameBuffer) TimeAt(i int) float64 {
	return float64(b.clamp(i)) * b.timePerFrame
}

// MeshX returns the fixed position mesh. Read-only.
func (b *FrameBuffer) MeshX() [][]float64 { return b.meshX }

// MeshP returns the fixed momentum mesh. Read-only.
func (b *FrameBuffer) MeshP() [][]float64 { return b.meshP }

// EnsureShape verifies the buffer holds frames at the display resolution a
// consumer expects.
func (b *FrameBuffer) EnsureShape(rows, cols int) error {
	if rows != b.rows || cols != b.cols {
		return &ShapeError{WantRows: rows, WantCols: cols, GotRows: b.rows, GotCols: b.cols}
	}
	return nil
}

func (b *FrameBuffer) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(b.frames) {
		return len(b.frames) - 1
	}
	return i
}
