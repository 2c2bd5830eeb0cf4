package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

type options struct {
	sceneType string
	width     int
	height    int
	fov       float64
	depth     int
	workers   int
	tileSize  int
	output    string
}

func main() {
	opts := options{}
	flag.StringVar(&opts.sceneType, "scene", "default", "Scene to render (see -help)")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.Float64Var(&opts.fov, "fov", 0, "Field of view in degrees (0 = scene default)")
	flag.IntVar(&opts.depth, "depth", -1, "Maximum reflection depth (-1 = scene default)")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	flag.IntVar(&opts.tileSize, "tile", renderer.DefaultRenderConfig().TileSize, "Tile size in pixels")
	flag.StringVar(&opts.output, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// createScene builds the named scene with command line overrides applied
func createScene(opts options) (*scene.Scene, error) {
	if opts.sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}

	s, err := scene.Lookup(opts.sceneType, geometry.CameraConfig{
		Width:  opts.width,
		Height: opts.height,
		FOV:    opts.fov,
	})
	if err != nil {
		return nil, err
	}

	if opts.depth >= 0 {
		return s.WithMaxDepth(opts.depth)
	}
	return s, nil
}

// tileProgress logs render progress roughly every tenth of the tiles
func tileProgress(logger core.Logger) func(renderer.TileCompletionResult) {
	return func(result renderer.TileCompletionResult) {
		step := max(result.TotalTiles/10, 1)
		if result.TileNumber%step != 0 && result.TileNumber != result.TotalTiles {
			return
		}
		logger.Printf("Tile %d/%d completed (%.0f%%)\n", result.TileNumber, result.TotalTiles,
			100*float64(result.TileNumber)/float64(result.TotalTiles))
	}
}

func outputPath(opts options, now time.Time) string {
	if opts.output != "" {
		return opts.output
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", opts.sceneType, fmt.Sprintf("render_%s.png", timestamp))
}

func run(opts options) error {
	logger := renderer.NewDefaultLogger()

	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d primitives, depth %d)...\n",
		opts.sceneType, selectedScene.GetPrimitiveCount(), selectedScene.MaxDepth)

	r, err := renderer.NewRenderer(selectedScene, renderer.RenderConfig{
		TileSize:   opts.tileSize,
		NumWorkers: opts.workers,
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fb, _, err := r.Render(ctx, tileProgress(logger))
	if err != nil {
		return err
	}

	filename := outputPath(opts, time.Now())
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, fb.ToImage()); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}
