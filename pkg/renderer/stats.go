package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height   int           // Image dimensions
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Samples taken for every pixel
	Tiles           int           // Number of tiles the image was split into
	Workers         int           // Number of parallel workers
	Duration        time.Duration // Wall-clock render time
}

// SamplesPerSecond returns the camera ray throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}
