// Package telemetry computes per-frame summary statistics for a completed
// run and writes structured output for offline validation.
package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/quantaviz/go-wigner/pipeline"
)

// FrameStats summarizes one Wigner frame.
type FrameStats struct {
	Frame int     `csv:"frame"`
	Time  float64 `csv:"time"`
	Min   float64 `csv:"min"`
	Max   float64 `csv:"max"`
	Mean  float64 `csv:"mean"`
	// Mass is sum(W)·dx·dp over the display mesh, the discrete phase-space
	// integral. On a down-sampled mesh it tracks, rather than equals, the
	// full-resolution total probability.
	Mass float64 `csv:"mass"`
}

// Collect computes stats for every frame in the buffer. The cell area is
// derived from the buffer's mesh coordinate extents.
func Collect(buf *pipeline.FrameBuffer) []FrameStats {
	dA := cellArea(buf)
	out := make([]FrameStats, 0, buf.Len())
	flat := make([]float64, 0, buf.Rows()*buf.Cols())

	for i := 0; i < buf.Len(); i++ {
		flat = flat[:0]
		for _, row := range buf.Frame(i) {
			flat = append(flat, row...)
		}
		out = append(out, FrameStats{
			Frame: i,
			Time:  buf.TimeAt(i),
			Min:   floats.Min(flat),
			Max:   floats.Max(flat),
			Mean:  stat.Mean(flat, nil),
			Mass:  floats.Sum(flat) * dA,
		})
	}
	return out
}

// cellArea estimates dx·dp from the mesh extents. Mean spacing is used
// because up-sampled meshes repeat coordinates.
func cellArea(buf *pipeline.FrameBuffer) float64 {
	x := buf.MeshX()
	p := buf.MeshP()
	rows, cols := buf.Rows(), buf.Cols()
	if rows < 2 || cols < 2 {
		return 0
	}
	dx := (x[0][cols-1] - x[0][0]) / float64(cols-1)
	dp := (p[rows-1][0] - p[0][0]) / float64(rows-1)
	return dx * dp
}
