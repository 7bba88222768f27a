package renderer

import "time"

// RenderStats contains statistics about a completed render
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	TotalRows   int           // Number of scanlines rendered
	NumWorkers  int           // Workers used for the render
	Elapsed     time.Duration // Wall-clock render time
}

// PixelsPerSecond returns the render throughput, or 0 for an instant render
func (rs RenderStats) PixelsPerSecond() float64 {
	if rs.Elapsed <= 0 {
		return 0
	}
	return float64(rs.TotalPixels) / rs.Elapsed.Seconds()
}
