package renderer

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// parallelEpsilon bounds the squared sine of the angle between the up vector
// and the view direction; below it the camera basis is degenerate
const parallelEpsilon = 1e-10

// ErrInvalidConfig is returned when a camera configuration cannot produce an image
var ErrInvalidConfig = errors.New("invalid camera configuration")

// CameraConfig contains the user-facing camera parameters
type CameraConfig struct {
	AspectRatio     float32   // Ratio of image width over height
	ImageWidth      int       // Rendered image width in pixels
	SamplesPerPixel int       // Count of random samples for each pixel
	MaxDepth        int       // Maximum number of ray bounces into the scene
	VFov            float32   // Vertical view angle in degrees
	LookFrom        core.Vec3 // Point the camera is looking from
	LookAt          core.Vec3 // Point the camera is looking at
	VUp             core.Vec3 // Camera-relative "up" direction
	DefocusAngle    float32   // Variation angle of rays through each pixel, in degrees (0 = pinhole)
	FocusDist       float32   // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDist:       10,
	}
}

// ImageHeight returns the image height implied by the width and aspect ratio
func (c CameraConfig) ImageHeight() int {
	if c.AspectRatio <= 0 {
		return 0
	}
	return int(float32(c.ImageWidth) / c.AspectRatio)
}

// Validate reports the first reason the configuration cannot be rendered
func (c CameraConfig) Validate() error {
	switch {
	case c.ImageWidth <= 0:
		return fmt.Errorf("%w: image width must be positive, got %d", ErrInvalidConfig, c.ImageWidth)
	case !(c.AspectRatio > 0):
		return fmt.Errorf("%w: aspect ratio must be positive, got %g", ErrInvalidConfig, c.AspectRatio)
	case c.ImageHeight() < 1:
		return fmt.Errorf("%w: width %d at aspect ratio %g gives no rows", ErrInvalidConfig, c.ImageWidth, c.AspectRatio)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("%w: vertical field of view must be in (0, 180) degrees, got %g", ErrInvalidConfig, c.VFov)
	case !(c.FocusDist > 0):
		return fmt.Errorf("%w: focus distance must be positive, got %g", ErrInvalidConfig, c.FocusDist)
	case c.DefocusAngle < 0:
		return fmt.Errorf("%w: defocus angle must not be negative, got %g", ErrInvalidConfig, c.DefocusAngle)
	case c.LookFrom.Subtract(c.LookAt).LengthSquared() == 0:
		return fmt.Errorf("%w: look-from and look-at are the same point %v", ErrInvalidConfig, c.LookFrom)
	case c.VUp.Normalize().Cross(c.LookFrom.Subtract(c.LookAt).Normalize()).LengthSquared() < parallelEpsilon:
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidConfig, c.VUp)
	}
	return nil
}

// Camera generates rays for rendering and drives the render loop.
// The exported fields may be changed between renders; derived state is
// recomputed at the start of every Render call.
type Camera struct {
	Config CameraConfig

	Integrator     integrator.Integrator          // Light transport, defaults to path tracing under the default sky
	SamplerFactory func(seed uint64) core.Sampler // Creates the per-tile random source
	Seed           uint64                         // Base seed; each tile derives its own stream from it
	Workers        int                            // Parallel tile workers (0 = use CPU count)
	TileSize       int                            // Tile edge in pixels (0 = DefaultTileSize)
	Logger         core.Logger
	Metrics        *Metrics // Optional

	// Derived state
	imageHeight       int
	pixelSamplesScale float32   // Color scale factor for a sum of pixel samples
	center            core.Vec3 // Camera center
	pixel00Loc        core.Vec3 // Location of pixel 0, 0
	pixelDeltaU       core.Vec3 // Offset to pixel to the right
	pixelDeltaV       core.Vec3 // Offset to pixel below
	u, v, w           core.Vec3 // Camera frame basis vectors
	defocusDiskU      core.Vec3 // Defocus disk horizontal radius
	defocusDiskV      core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera with default collaborators
func NewCamera(config CameraConfig) *Camera {
	return &Camera{
		Config:         config,
		Integrator:     integrator.NewPathTracingIntegrator(integrator.DefaultSky()),
		SamplerFactory: defaultSamplerFactory,
		Seed:           42,
		Logger:         core.NopLogger{},
	}
}

// Initialize validates the configuration and computes the derived camera state
func (c *Camera) Initialize() error {
	cfg := c.Config
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.Integrator == nil {
		c.Integrator = integrator.NewPathTracingIntegrator(integrator.DefaultSky())
	}
	if c.SamplerFactory == nil {
		c.SamplerFactory = defaultSamplerFactory
	}

	c.imageHeight = cfg.ImageHeight()
	c.pixelSamplesScale = 1.0 / float32(cfg.SamplesPerPixel)
	c.center = cfg.LookFrom

	// Determine viewport dimensions
	theta := degreesToRadians(cfg.VFov)
	h := math32.Tan(theta / 2)
	viewportHeight := 2 * h * cfg.FocusDist
	viewportWidth := viewportHeight * (float32(cfg.ImageWidth) / float32(c.imageHeight))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	c.w = cfg.LookFrom.Subtract(cfg.LookAt).Normalize()
	c.u = cfg.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	// Horizontal and vertical delta vectors from pixel to pixel
	c.pixelDeltaU = viewportU.Divide(float32(cfg.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float32(c.imageHeight))

	// Location of the upper left pixel
	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(cfg.FocusDist)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	// Camera defocus disk basis vectors
	defocusRadius := cfg.FocusDist * math32.Tan(degreesToRadians(cfg.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)

	return nil
}

// GetRay constructs a camera ray originating from the defocus disk and directed at a
// randomly sampled point around the pixel location i, j.
// The camera must have been initialized by Initialize or Render.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := core.SampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float32(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float32(j) + offset.Y))

	rayOrigin := c.center
	if c.Config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// defocusDiskSample returns a random point in the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// ImageHeight returns the height computed by the last Initialize or Render
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

func defaultSamplerFactory(seed uint64) core.Sampler {
	return core.NewRandomSampler(seed)
}

func degreesToRadians(degrees float32) float32 {
	return degrees * math32.Pi / 180
}
