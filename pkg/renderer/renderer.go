package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for parallel rendering
type RenderConfig struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0,
	}
}

// TileCompletionResult describes a finished tile for progress callbacks
type TileCompletionResult struct {
	TileID     int
	TileNumber int // Completion order (1-based)
	TotalTiles int
	Stats      RenderStats
}

// Renderer renders a whole frame by splitting it into tiles and tracing them in parallel
type Renderer struct {
	raytracer *Raytracer
	config    RenderConfig
	logger    core.Logger
}

// NewRenderer creates a renderer for the scene
func NewRenderer(s *scene.Scene, config RenderConfig, logger core.Logger) (*Renderer, error) {
	raytracer, err := NewRaytracer(s)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{
		raytracer: raytracer,
		config:    config,
		logger:    logger,
	}, nil
}

// Raytracer returns the underlying raytracer
func (r *Renderer) Raytracer() *Raytracer {
	return r.raytracer
}

// Render traces every pixel and returns the finished frame buffer.
// The scene is only read, so Render may be called repeatedly; each call allocates a fresh buffer.
func (r *Renderer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*FrameBuffer, RenderStats, error) {
	camera := r.raytracer.Camera()
	fb := NewFrameBuffer(camera.Width, camera.Height)
	tiles := NewTileGrid(camera.Width, camera.Height, r.config.TileSize)
	pool := NewWorkerPool(r.raytracer, r.config.NumWorkers)

	r.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		camera.Width, camera.Height, len(tiles), pool.GetNumWorkers())

	tasks := make([]TileTask, len(tiles))
	for i, tile := range tiles {
		tasks[i] = TileTask{Tile: tile, FrameBuffer: fb}
	}

	var completed atomic.Int64
	onResult := func(result TileResult) {
		n := int(completed.Add(1))
		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileID:     result.TaskID,
				TileNumber: n,
				TotalTiles: len(tiles),
				Stats:      result.Stats,
			})
		}
	}

	startTime := time.Now()
	results, err := pool.Run(ctx, tasks, onResult)
	if err != nil {
		r.logger.Printf("Render failed after %d/%d tiles: %v\n", completed.Load(), len(tiles), err)
		return nil, RenderStats{}, err
	}

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	for _, result := range results {
		stats.Merge(result.Stats)
	}
	stats.Duration = time.Since(startTime)

	r.logger.Printf("Render completed in %v (%d hits, %d misses, %.2f rays/pixel, luminance %.3f)\n",
		stats.Duration, stats.Hits, stats.Misses, stats.AverageRaysPerPixel(), fb.AverageLuminance())

	return fb, stats, nil
}
