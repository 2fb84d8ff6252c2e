package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := executeCommand(ctx, newRootCommand()); err != nil {
		stop()
		os.Exit(1)
	}
}

// executeCommand runs cmd and logs any error it returns, including flag parse
// errors that cobra reports before RunE, to the command's stderr
func executeCommand(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		logger := logrus.New()
		logger.SetOutput(cmd.ErrOrStderr())
		logger.WithError(err).Error("Command failed")
	}
	return err
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		listScenes bool
	)

	cmd := &cobra.Command{
		Use:   "pathtracer",
		Short: "Render a scene of spheres with stochastic path tracing",
		Long: `Render a scene of spheres with stochastic path tracing.

Options are read from defaults, then a config file (--config), then
PATHTRACER_* environment variables, then command line flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listScenes {
				printScenes(cmd.OutOrStdout())
				return nil
			}

			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())

			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger.SetLevel(cfg.Level())

			if err := run(cmd.Context(), cfg, logger); err != nil {
				return fmt.Errorf("rendering: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (YAML, JSON or TOML)")
	cmd.Flags().BoolVar(&listScenes, "list-scenes", false, "List the built-in scenes and exit")
	config.RegisterFlags(cmd.Flags())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func newServeCommand() *cobra.Command {
	var (
		addr     string
		workers  int
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders and pixel inspection over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			logger.SetLevel(level)

			srv, err := server.NewServer(addr, workers, logger.WithField("component", "server"))
			if err != nil {
				return err
			}
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel tiles per render (0 = CPU count)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-16s %s\n", info.ID, info.Description)
	}
}

// run renders the configured scene and writes the image and, optionally, metrics
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	s, err := cfg.BuildScene()
	if err != nil {
		return err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	log := logger.WithFields(logrus.Fields{
		"scene":   s.Name,
		"spheres": s.SphereCount(),
		"width":   s.CameraConfig.ImageWidth,
		"height":  s.CameraConfig.ImageHeight(),
	})

	camera := renderer.NewCamera(s.CameraConfig)
	camera.Seed = cfg.Seed
	camera.Workers = cfg.WorkerCount()
	camera.TileSize = cfg.TileSize
	camera.Logger = log

	var registry *prometheus.Registry
	if cfg.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		if camera.Metrics, err = renderer.NewMetrics(registry); err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
	}

	img, stats, err := camera.Render(ctx, s.World)
	if err != nil {
		return err
	}

	if err := writeImage(cfg.Output, img, format); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"output":   cfg.Output,
		"samples":  stats.TotalSamples,
		"duration": stats.Duration,
	}).Info("Render saved")

	if registry != nil {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		log.WithField("metrics", cfg.MetricsFile).Debug("Metrics written")
	}
	return nil
}

func writeImage(path string, img *renderer.Image, format output.Format) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := output.Write(file, img, format); err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}
