package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// EnvPrefix prefixes environment overrides, e.g. PATHTRACER_SAMPLES=200
const EnvPrefix = "PATHTRACER"

// ErrInvalidConfig is returned when the loaded options are inconsistent
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every render option. Zero Width, Samples and Depth keep the
// scene's own values.
type Config struct {
	Scene       string `mapstructure:"scene"`
	Output      string `mapstructure:"output"`
	Format      string `mapstructure:"format"` // ppm or png; empty infers from Output
	Width       int    `mapstructure:"width"`
	Samples     int    `mapstructure:"samples"`
	Depth       int    `mapstructure:"depth"`
	Seed        uint64 `mapstructure:"seed"`
	Workers     int    `mapstructure:"workers"`
	TileSize    int    `mapstructure:"tile-size"`
	MetricsFile string `mapstructure:"metrics-file"`
	LogLevel    string `mapstructure:"log-level"`

	Camera  CameraOverrides    `mapstructure:"camera"`
	Spheres []scene.SphereSpec `mapstructure:"spheres"` // Custom scene; replaces Scene when set
}

// CameraOverrides replaces individual fields of a scene's camera. Unset fields keep the scene value.
type CameraOverrides struct {
	AspectRatio  *float32  `mapstructure:"aspect_ratio"`
	VFov         *float32  `mapstructure:"vfov"`
	LookFrom     []float32 `mapstructure:"look_from"`
	LookAt       []float32 `mapstructure:"look_at"`
	VUp          []float32 `mapstructure:"vup"`
	DefocusAngle *float32  `mapstructure:"defocus_angle"`
	FocusDist    *float32  `mapstructure:"focus_dist"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scene", "default")
	v.SetDefault("output", "output/render.ppm")
	v.SetDefault("format", "")
	v.SetDefault("width", 0)
	v.SetDefault("samples", 0)
	v.SetDefault("depth", 0)
	v.SetDefault("seed", 42)
	v.SetDefault("workers", 0)
	v.SetDefault("tile-size", renderer.DefaultTileSize)
	v.SetDefault("metrics-file", "")
	v.SetDefault("log-level", "info")
}

// RegisterFlags adds the command line flags understood by Load
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("scene", "default", fmt.Sprintf("Scene to render (%s)", strings.Join(scene.Names(), ", ")))
	fs.StringP("output", "o", "output/render.ppm", "Output image file")
	fs.String("format", "", "Output format: ppm or png (default: from the output file extension)")
	fs.Int("width", 0, "Image width in pixels (0 = scene default)")
	fs.Int("samples", 0, "Samples per pixel (0 = scene default)")
	fs.Int("depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.Uint64("seed", 42, "Random seed; the same seed reproduces the same image")
	fs.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.Int("tile-size", renderer.DefaultTileSize, "Tile edge in pixels")
	fs.String("metrics-file", "", "Write Prometheus metrics to this file after rendering")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
}

// Load reads configuration with precedence flags > environment > config file > defaults.
// path may be empty; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks option ranges and names
func (c *Config) Validate() error {
	if c.Width < 0 || c.Samples < 0 || c.Depth < 0 {
		return fmt.Errorf("%w: width, samples and depth must not be negative", ErrInvalidConfig)
	}
	if c.Workers < 0 || c.TileSize < 0 {
		return fmt.Errorf("%w: workers and tile-size must not be negative", ErrInvalidConfig)
	}
	if len(c.Spheres) == 0 && !slices.Contains(scene.Names(), strings.ToLower(c.Scene)) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, scene.ErrUnknownScene, c.Scene)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidConfig)
	}
	if _, err := c.OutputFormat(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for name, vec := range map[string][]float32{"look_from": c.Camera.LookFrom, "look_at": c.Camera.LookAt, "vup": c.Camera.VUp} {
		if vec != nil && len(vec) != 3 {
			return fmt.Errorf("%w: camera.%s needs 3 components, got %d", ErrInvalidConfig, name, len(vec))
		}
	}
	return nil
}

// OutputFormat returns the explicit format, or the one implied by the output extension
func (c *Config) OutputFormat() (output.Format, error) {
	if c.Format != "" {
		return output.ParseFormat(c.Format)
	}
	return output.FormatFromPath(c.Output)
}

// Level returns the parsed log level
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// WorkerCount resolves the worker count, defaulting to the number of CPUs
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// BuildScene creates the configured scene and applies the render overrides to its camera
func (c *Config) BuildScene() (*scene.Scene, error) {
	var (
		s   *scene.Scene
		err error
	)
	if len(c.Spheres) > 0 {
		s, err = scene.FromSpheres("custom", c.Spheres, renderer.DefaultCameraConfig())
	} else {
		s, err = scene.New(c.Scene, c.Seed)
	}
	if err != nil {
		return nil, err
	}

	s.CameraConfig = c.ApplyCamera(s.CameraConfig)
	return s, nil
}

// ApplyCamera returns base with every configured override applied
func (c *Config) ApplyCamera(base renderer.CameraConfig) renderer.CameraConfig {
	if c.Width > 0 {
		base.ImageWidth = c.Width
	}
	if c.Samples > 0 {
		base.SamplesPerPixel = c.Samples
	}
	if c.Depth > 0 {
		base.MaxDepth = c.Depth
	}

	o := c.Camera
	if o.AspectRatio != nil {
		base.AspectRatio = *o.AspectRatio
	}
	if o.VFov != nil {
		base.VFov = *o.VFov
	}
	if len(o.LookFrom) == 3 {
		base.LookFrom.X, base.LookFrom.Y, base.LookFrom.Z = o.LookFrom[0], o.LookFrom[1], o.LookFrom[2]
	}
	if len(o.LookAt) == 3 {
		base.LookAt.X, base.LookAt.Y, base.LookAt.Z = o.LookAt[0], o.LookAt[1], o.LookAt[2]
	}
	if len(o.VUp) == 3 {
		base.VUp.X, base.VUp.Y, base.VUp.Z = o.VUp[0], o.VUp[1], o.VUp[2]
	}
	if o.DefocusAngle != nil {
		base.DefocusAngle = *o.DefocusAngle
	}
	if o.FocusDist != nil {
		base.FocusDist = *o.FocusDist
	}
	return base
}
