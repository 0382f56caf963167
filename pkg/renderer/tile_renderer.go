package renderer

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// DefaultTileSize is the tile edge length in pixels
const DefaultTileSize = 32

// NewDefaultLogger returns a logger writing through the default slog logger
func NewDefaultLogger() core.Logger {
	return core.NewSlogLogger(slog.Default())
}

// RenderConfig contains configuration for tiled parallel rendering
type RenderConfig struct {
	TileSize   int // Size of each tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   DefaultTileSize,
		NumWorkers: 0,
	}
}

// TileCompletion describes a finished tile for progress callbacks
type TileCompletion struct {
	TileX     int             // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds within the full image
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Completion order (1-based)
	TotalTiles int // Total number of tiles in the image
}

// TileRenderer renders a world through a camera by splitting the image
// into tiles and tracing them concurrently. Each tile is traced exactly as
// Camera.Render would, so the output is identical.
type TileRenderer struct {
	camera *Camera
	world  *world.World
	config RenderConfig
	logger core.Logger
}

// NewTileRenderer creates a tile renderer. A nil logger uses NewDefaultLogger.
func NewTileRenderer(camera *Camera, w *world.World, config RenderConfig, logger core.Logger) *TileRenderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &TileRenderer{
		camera: camera,
		world:  w,
		config: config,
		logger: logger,
	}
}

// Render traces every tile and returns the finished canvas. onTile, if
// non-nil, is called once per finished tile; calls never overlap. Rendering
// stops at the first error or when ctx is cancelled.
func (tr *TileRenderer) Render(ctx context.Context, onTile func(TileCompletion)) (*core.Canvas, RenderStats, error) {
	start := time.Now()
	width, height := tr.camera.HSize(), tr.camera.VSize()

	canvas := core.NewCanvas(width, height)
	tiles := NewTileGrid(width, height, tr.config.TileSize)
	pool := newWorkerPool(ctx, tr.config.NumWorkers)

	tr.logger.Printf("Rendering %dx%d in %d tiles using %d workers...\n",
		width, height, len(tiles), pool.NumWorkers())

	var (
		mu        sync.Mutex
		completed int
	)

	for _, tile := range tiles {
		submitted := pool.Submit(func(ctx context.Context) error {
			if err := tr.renderTile(ctx, tile.Bounds, canvas); err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			completed++
			if onTile != nil {
				onTile(TileCompletion{
					TileX:      tile.Bounds.Min.X / tr.config.TileSize,
					TileY:      tile.Bounds.Min.Y / tr.config.TileSize,
					Bounds:     tile.Bounds,
					TileImage:  canvas.SubImage(tile.Bounds),
					TileNumber: completed,
					TotalTiles: len(tiles),
				})
			}
			return nil
		})
		if !submitted {
			break
		}
	}

	if err := pool.Wait(); err != nil {
		tr.logger.Printf("Render stopped after %d of %d tiles: %v\n", completed, len(tiles), err)
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}
	// Submit stops early on cancellation without a task observing it
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	stats := RenderStats{
		TotalPixels: width * height,
		TotalTiles:  len(tiles),
		NumWorkers:  pool.NumWorkers(),
		Duration:    time.Since(start),
	}
	tr.logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Duration, stats.PixelsPerSecond())

	return canvas, stats, nil
}

// renderTile traces the pixels within bounds into canvas. Tiles never
// overlap, so concurrent calls write disjoint pixels.
func (tr *TileRenderer) renderTile(ctx context.Context, bounds image.Rectangle, canvas *core.Canvas) error {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// check once per row
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color, err := tr.camera.colorForPixel(tr.world, x, y)
			if err != nil {
				return err
			}
			canvas.Set(x, y, color)
		}
	}
	return nil
}
