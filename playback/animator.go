// Package playback exposes a completed frame buffer to a display loop
// through an explicit animator object. Whatever owns the render loop calls
// Advance with its current frame index; there is no ambient handler
// registry to install into or clean up.
package playback

import (
	"errors"
	"fmt"

	"github.com/quantaviz/go-wigner/pipeline"
)

// Animator owns one completed frame buffer and converts frames into the
// scaled height fields a display surface applies to its grid vertices.
type Animator struct {
	buf        *pipeline.FrameBuffer
	zScale     float64
	rows, cols int
	heights    []float32 // staging buffer, reused across Advance calls
}

// NewAnimator wraps a non-empty frame buffer. zScale exaggerates surface
// height; the frame values themselves are never modified.
func NewAnimator(buf *pipeline.FrameBuffer, zScale float64) (*Animator, error) {
	if buf == nil || buf.Len() == 0 {
		return nil, errors.New("animator requires a non-empty frame buffer")
	}
	rows, cols := buf.Rows(), buf.Cols()
	return &Animator{
		buf:     buf,
		zScale:  zScale,
		rows:    rows,
		cols:    cols,
		heights: make([]float32, rows*cols),
	}, nil
}

// Advance returns the row-major height field z = zScale·W for the clamped
// frame index. The returned slice is reused by the next call; consumers
// that keep heights across frames must copy.
func (a *Animator) Advance(frame int) []float32 {
	w := a.buf.Frame(frame)
	i := 0
	for _, row := range w {
		for _, v := range row {
			a.heights[i] = float32(a.zScale * v)
			i++
		}
	}
	return a.heights
}

// Frame returns the clamped raw frame values. Read-only.
func (a *Animator) Frame(frame int) [][]float64 { return a.buf.Frame(frame) }

// Len returns the number of frames.
func (a *Animator) Len() int { return a.buf.Len() }

// Rows returns the height-field row count (momentum axis).
func (a *Animator) Rows() int { return a.rows }

// Cols returns the height-field column count (position axis).
func (a *Animator) Cols() int { return a.cols }

// VertexCount returns the number of grid vertices a surface consuming the
// height field must have.
func (a *Animator) VertexCount() int { return a.rows * a.cols }

// TimeAt returns the simulation time of the clamped frame index.
func (a *Animator) TimeAt(frame int) float64 { return a.buf.TimeAt(frame) }

// TimeLabel formats the simulation-time overlay for a frame index.
func (a *Animator) TimeLabel(frame int) string {
	return fmt.Sprintf("t = %.3f (arb. units)", a.buf.TimeAt(frame))
}
