package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultTileSize is the tile edge used when Camera.TileSize is unset
const DefaultTileSize = 32

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, in row-major tile order
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Seed   uint64          // Seed of the tile's private random stream
}

// NewTile creates a new tile whose random stream is derived from the base seed and tile ID
func NewTile(id int, bounds image.Rectangle, baseSeed uint64) Tile {
	return Tile{
		ID:     id,
		Bounds: bounds,
		Seed:   core.DeriveSeed(baseSeed, id),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, baseSeed uint64) []Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	tileID := 0
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), baseSeed))
			tileID++
		}
	}

	return tiles
}
