package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
}

// options are the resolved command line settings
type options struct {
	scene      string
	width      int
	height     int
	maxDepth   int
	workers    int
	tileSize   int
	outputDir  string
	list       bool
	sequential bool
}

// parseOptions reads flags from args, defaulting to the environment config
func parseOptions(args []string, cfg *config.Config, out io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&opts.scene, "scene", cfg.Scene, "Scene to render (see -list)")
	fs.IntVar(&opts.width, "width", cfg.Width, "Image width in pixels")
	fs.IntVar(&opts.height, "height", cfg.Height, "Image height in pixels")
	fs.IntVar(&opts.maxDepth, "depth", cfg.MaxDepth, "Maximum reflection/refraction recursion depth")
	fs.IntVar(&opts.workers, "workers", cfg.Workers, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&opts.tileSize, "tile-size", cfg.TileSize, "Tile size in pixels for parallel rendering")
	fs.StringVar(&opts.outputDir, "output", cfg.OutputDir, "Output directory")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.sequential, "sequential", false, "Render on a single goroutine")
	help := fs.Bool("help", false, "Show help information")

	fs.Usage = func() {
		fmt.Fprintln(out, "Whitted Raytracer")
		fmt.Fprintln(out, "Usage: raytracer [options]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options also read RAYTRACER_* environment variables.")
		fmt.Fprintln(out, "Output will be saved to <output>/<scene>/render_<timestamp>.png")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if *help {
		fs.Usage()
		return options{}, flag.ErrHelp
	}

	check := config.Config{
		Port:     cfg.Port,
		Width:    opts.width,
		Height:   opts.height,
		MaxDepth: opts.maxDepth,
		Workers:  opts.workers,
		TileSize: opts.tileSize,
	}
	if err := check.Validate(); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts, err := parseOptions(args, cfg, out)
	if err != nil {
		return err
	}

	if opts.list {
		printScenes(out)
		return nil
	}

	s, err := createScene(opts.scene, opts.width, opts.height, opts.maxDepth)
	if err != nil {
		return err
	}

	logger := slog.Default().With("scene", s.Name)
	logger.Info("starting render", "width", opts.width, "height", opts.height, "maxDepth", opts.maxDepth)

	start := time.Now()
	var canvas *core.Canvas
	if opts.sequential {
		canvas, err = s.Camera.Render(s.World)
	} else {
		tr := renderer.NewTileRenderer(s.Camera, s.World, renderer.RenderConfig{
			TileSize:   opts.tileSize,
			NumWorkers: opts.workers,
		}, core.NewSlogLogger(logger))
		canvas, _, err = tr.Render(ctx, nil)
	}
	if err != nil {
		return err
	}

	img := canvas.ToImage()
	logger.Info("render completed",
		"duration", time.Since(start),
		"averageLuminance", fmt.Sprintf("%.3f", renderer.CalculateAverageLuminance(img)))

	filename := createOutputPath(opts.outputDir, s.Name, time.Now())
	if err := savePNG(filename, img); err != nil {
		return err
	}

	fmt.Fprintf(out, "Render saved as %s\n", filename)
	return nil
}

// createScene builds the named scene and applies the recursion depth
func createScene(name string, width, height, maxDepth int) (*scene.Scene, error) {
	s, err := scene.New(name, width, height)
	if err != nil {
		return nil, err
	}
	s.Camera.MaxDepth = maxDepth
	return s, nil
}

// createOutputPath returns <outputDir>/<scene>/render_<timestamp>.png
func createOutputPath(outputDir, sceneName string, at time.Time) string {
	timestamp := at.Format("20060102_150405")
	return filepath.Join(outputDir, sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

// savePNG encodes img to filename, creating parent directories
func savePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return file.Close()
}

func printScenes(out io.Writer) {
	fmt.Fprintln(out, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(out, "  %-14s %s\n", info.Name, info.Description)
	}
}
