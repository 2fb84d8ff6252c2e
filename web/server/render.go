package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// handleRender renders the requested scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sceneObj, req, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	cfg := sceneObj.CameraConfig
	if total := cfg.ImageWidth * cfg.ImageHeight() * cfg.SamplesPerPixel; total > maxRenderSamples {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %dx%d at %d samples is %d samples, limit is %d",
			cfg.ImageWidth, cfg.ImageHeight(), cfg.SamplesPerPixel, total, maxRenderSamples))
		return
	}

	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = string(output.FormatPNG)
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	log := s.logger.WithFields(logrus.Fields{
		"scene":   sceneObj.Name,
		"width":   sceneObj.CameraConfig.ImageWidth,
		"samples": sceneObj.CameraConfig.SamplesPerPixel,
		"seed":    req.Seed,
	})

	camera := renderer.NewCamera(sceneObj.CameraConfig)
	camera.Seed = req.Seed
	camera.Workers = s.workers
	camera.Logger = log
	camera.Metrics = s.metrics

	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	img, stats, err := camera.Render(ctx, sceneObj.World)
	switch {
	case err == nil:
	case r.Context().Err() != nil:
		log.WithError(err).Warn("Render abandoned by client")
		return
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("render exceeded %v", renderTimeout))
		return
	default:
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, img, format); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	contentType := "image/png"
	if format == output.FormatPPM {
		contentType = "image/x-portable-pixmap"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
