package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Limits on request parameters
const (
	maxWidth   = 1920
	maxSamples = 1000
	maxDepth   = 200

	// maxRenderSamples bounds width*height*samples for one request
	maxRenderSamples = 16_000_000
	renderTimeout    = 2 * time.Minute
)

// Server renders scenes on demand over HTTP
type Server struct {
	addr     string
	workers  int
	logger   logrus.FieldLogger
	registry *prometheus.Registry
	metrics  *renderer.Metrics
	mux      *http.ServeMux
}

// NewServer creates a new web server listening on addr. workers bounds the
// parallelism of each render (0 = CPU count).
func NewServer(addr string, workers int, logger logrus.FieldLogger) (*Server, error) {
	registry := prometheus.NewRegistry()
	metrics, err := renderer.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	s := &Server{
		addr:     addr,
		workers:  workers,
		logger:   logger,
		registry: registry,
		metrics:  metrics,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/scenes", s.handleScenes)
	s.mux.HandleFunc("GET /api/render", s.handleRender)
	s.mux.HandleFunc("GET /api/inspect", s.handleInspect)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return s, nil
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting web server on %s", s.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// sceneRequest holds the query parameters shared by render and inspect
type sceneRequest struct {
	Scene   string
	Width   int // 0 keeps the scene default
	Samples int
	Depth   int
	Seed    uint64
	Aspect  float64 // 0 keeps the scene default
}

// parseSceneRequest parses the scene query parameters and builds the scene with overrides applied
func parseSceneRequest(values url.Values) (*scene.Scene, sceneRequest, error) {
	req := sceneRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, maxWidth); err != nil {
		return nil, req, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, req, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, req, err
	}
	if req.Aspect, err = parseFloatParam(values, "aspect", 0, 0.25, 4); err != nil {
		return nil, req, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, req, fmt.Errorf("invalid seed: %s", value)
		}
	} else {
		req.Seed = 42
	}

	s, err := scene.New(req.Scene, req.Seed)
	if err != nil {
		return nil, req, err
	}
	if req.Width > 0 {
		s.CameraConfig.ImageWidth = req.Width
	}
	if req.Samples > 0 {
		s.CameraConfig.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		s.CameraConfig.MaxDepth = req.Depth
	}
	if req.Aspect > 0 {
		s.CameraConfig.AspectRatio = float32(req.Aspect)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return nil, req, err
	}
	return s, req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
