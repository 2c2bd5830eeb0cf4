package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile        *Tile
	FrameBuffer *FrameBuffer // Shared buffer; each task writes only inside its tile
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool renders tile tasks on a bounded number of goroutines.
// The first failing task cancels the rest.
type WorkerPool struct {
	renderer   *TileRenderer
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers (0 = CPU count)
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		renderer:   NewTileRenderer(raytracer),
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders all tasks and returns one result per task, indexed by task position.
// onResult, if set, is called from worker goroutines as tiles finish.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask, onResult func(TileResult)) ([]TileResult, error) {
	results := make([]TileResult, len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for i, task := range tasks {
		i, task := i, task // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			stats, err := wp.renderer.RenderTileBounds(ctx, task.Tile.Bounds, task.FrameBuffer)
			if err != nil {
				return err
			}
			stats.Tiles = 1

			// Each goroutine owns results[i]
			results[i] = TileResult{TaskID: task.Tile.ID, Stats: stats}
			if onResult != nil {
				onResult(results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
