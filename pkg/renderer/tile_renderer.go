package renderer

import (
	"context"
	"image"
)

// Tile is a rectangular block of sampling coordinates rendered as one unit of work
type Tile struct {
	ID     int
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1) in sampling coordinates
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = max(width, height)
	}

	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders rectangular regions of the image
type TileRenderer struct {
	raytracer *Raytracer
}

// NewTileRenderer creates a tile renderer backed by the raytracer
func NewTileRenderer(raytracer *Raytracer) *TileRenderer {
	return &TileRenderer{raytracer: raytracer}
}

// RenderTileBounds renders every pixel in bounds into fb.
// Tiles never overlap, so concurrent calls with distinct bounds are safe.
// The context is checked once per row.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, fb *FrameBuffer) (RenderStats, error) {
	var stats RenderStats

	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			color, path, err := tr.raytracer.renderPixel(px, py)
			if err != nil {
				return stats, err
			}
			fb.SetSample(px, py, color)
			stats.AddPath(path)
		}
	}

	return stats, nil
}
