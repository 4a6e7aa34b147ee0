package parallel

import "image"

// TileGrid partitions a width x height target into tiles.
// Edge tiles are smaller when the target is not a multiple of the tile size.
type TileGrid struct {
	tiles  []Tile
	tilesX int
	tilesY int
	width  int
	height int
}

// NewTileGrid creates a grid covering a width x height target.
// Non-positive dimensions give an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	g := &TileGrid{}
	g.Resize(width, height)
	return g
}

// Resize rebuilds the grid for new dimensions. It is a no-op if the
// dimensions are unchanged.
func (g *TileGrid) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		*g = TileGrid{}
		return
	}
	if g.width == width && g.height == height {
		return
	}

	g.width, g.height = width, height
	g.tilesX = (width + TileWidth - 1) / TileWidth
	g.tilesY = (height + TileHeight - 1) / TileHeight
	g.tiles = make([]Tile, g.tilesX*g.tilesY)

	for ty := range g.tilesY {
		for tx := range g.tilesX {
			r := image.Rect(tx*TileWidth, ty*TileHeight, (tx+1)*TileWidth, (ty+1)*TileHeight)
			g.tiles[ty*g.tilesX+tx] = Tile{
				X:    tx,
				Y:    ty,
				Rect: r.Intersect(image.Rect(0, 0, width, height)),
			}
		}
	}
}

// MarkRectDirty marks every tile overlapping r, a pixel rectangle.
func (g *TileGrid) MarkRectDirty(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, g.width, g.height))
	if r.Empty() {
		return
	}
	tx0, ty0 := r.Min.X/TileWidth, r.Min.Y/TileHeight
	tx1, ty1 := (r.Max.X-1)/TileWidth, (r.Max.Y-1)/TileHeight
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			g.tiles[ty*g.tilesX+tx].Dirty = true
		}
	}
}

// DirtyTiles returns pointers to the dirty tiles in row-major order.
func (g *TileGrid) DirtyTiles() []*Tile {
	var out []*Tile
	for i := range g.tiles {
		if g.tiles[i].Dirty {
			out = append(out, &g.tiles[i])
		}
	}
	return out
}

// ClearDirty resets the dirty flag of every tile.
func (g *TileGrid) ClearDirty() {
	for i := range g.tiles {
		g.tiles[i].Dirty = false
	}
}

// TileAt returns the tile at tile coordinates (tx, ty), or nil.
func (g *TileGrid) TileAt(tx, ty int) *Tile {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return nil
	}
	return &g.tiles[ty*g.tilesX+tx]
}

// TileCount returns the number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tile columns.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tile rows.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}
