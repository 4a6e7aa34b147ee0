// Package parallel provides the tile and worker infrastructure used by the
// tiled rasterizer.
//
// The render target is split into 64x64 pixel tiles. Tiles never overlap, so
// each one can be rasterized on its own goroutine without synchronizing
// buffer writes. Tiles only describe screen regions; they own no pixels.
//
// Thread safety: TileGrid is NOT thread-safe. Mark dirty tiles on one
// goroutine, then hand the tiles to a WorkerPool.
package parallel

import "image"

// Tile size constants. Both are multiples of the rasterizer's 2x2 blocks.
const (
	TileWidth  = 64
	TileHeight = 64
)

// Tile is one rectangular region of the render target.
type Tile struct {
	// X and Y are the tile column and row.
	X, Y int

	// Rect is the pixel region covered by the tile, clipped to the target.
	Rect image.Rectangle

	// Dirty is set when at least one primitive of the current batch
	// overlaps the tile.
	Dirty bool
}
