package renderer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated while rendering.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Rays           prometheus.Counter
	Pixels         prometheus.Counter
	Tiles          prometheus.Counter
	RenderDuration prometheus.Histogram
}

// NewMetrics creates the render collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Rays: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pathtracer_rays_total",
			Help: "Number of camera rays traced.",
		}),
		Pixels: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pathtracer_pixels_total",
			Help: "Number of pixels rendered.",
		}),
		Tiles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pathtracer_tiles_total",
			Help: "Number of image tiles completed.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathtracer_render_duration_seconds",
			Help:    "Wall-clock duration of complete renders.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.Rays, m.Pixels, m.Tiles, m.RenderDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeTile(pixels, rays int) {
	if m == nil {
		return
	}
	m.Tiles.Inc()
	m.Pixels.Add(float64(pixels))
	m.Rays.Add(float64(rays))
}

func (m *Metrics) observeRender(d time.Duration) {
	if m == nil {
		return
	}
	m.RenderDuration.Observe(d.Seconds())
}
