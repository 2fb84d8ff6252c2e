package renderer

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Render traces the world into a new image. The configuration is validated and
// the derived camera state recomputed before any pixel is touched; an invalid
// configuration returns an error wrapping ErrInvalidConfig and no image.
//
// Tiles are rendered in parallel, each with its own sampler seeded from
// (Seed, tile ID), so a fixed seed reproduces the image regardless of Workers.
// Cancelling ctx stops the render between rows and returns ctx.Err().
func (c *Camera) Render(ctx context.Context, world geometry.Hittable) (*Image, RenderStats, error) {
	if err := c.Initialize(); err != nil {
		return nil, RenderStats{}, err
	}

	logger := c.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}

	width, height := c.Config.ImageWidth, c.imageHeight
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	tiles := NewTileGrid(width, height, c.TileSize, c.Seed)
	img := NewImage(width, height)

	logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d: %d tiles on %d workers",
		width, height, c.Config.SamplesPerPixel, c.Config.MaxDepth, len(tiles), workers)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return c.renderTile(gctx, tile, world, img)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, RenderStats{}, err
	}
	// A cancellation that landed after the last tile was scheduled
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	duration := time.Since(start)
	c.Metrics.observeRender(duration)

	stats := RenderStats{
		Width:           width,
		Height:          height,
		TotalPixels:     width * height,
		TotalSamples:    width * height * c.Config.SamplesPerPixel,
		SamplesPerPixel: c.Config.SamplesPerPixel,
		Tiles:           len(tiles),
		Workers:         workers,
		Duration:        duration,
	}
	logger.Printf("Render complete in %v (%.0f samples/sec)", duration.Round(time.Millisecond), stats.SamplesPerSecond())

	return img, stats, nil
}

// renderTile renders the pixels within the tile bounds. Tiles never overlap,
// so concurrent tiles write disjoint parts of img.
func (c *Camera) renderTile(ctx context.Context, tile Tile, world geometry.Hittable, img *Image) error {
	sampler := c.SamplerFactory(tile.Seed)
	spp := c.Config.SamplesPerPixel

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			var pixelColor core.Vec3
			for sample := 0; sample < spp; sample++ {
				ray := c.GetRay(i, j, sampler)
				pixelColor = pixelColor.Add(c.Integrator.RayColor(ray, c.Config.MaxDepth, world, sampler))
			}
			img.Set(i, j, pixelColor.Multiply(c.pixelSamplesScale))
		}
	}

	pixels := tile.Bounds.Dx() * tile.Bounds.Dy()
	c.Metrics.observeTile(pixels, pixels*spp)
	return nil
}
