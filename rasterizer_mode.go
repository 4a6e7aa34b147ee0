package swr

// RasterizerMode controls how a batch of primitives is scan converted.
//
// Both modes produce identical buffers and statistics. The mode is chosen
// per Rasterizer with WithRasterizerMode.
type RasterizerMode int

const (
	// RasterizerSweep converts primitives one after another on the calling
	// goroutine (default).
	RasterizerSweep RasterizerMode = iota

	// RasterizerTiled sets up the batch on the calling goroutine, then
	// rasterizes 64x64 pixel tiles in parallel. Each tile walks the batch
	// in submission order, so overlapping primitives resolve as in
	// RasterizerSweep. Fragment shaders must be safe for concurrent use.
	RasterizerTiled
)

// String returns the rasterizer mode name.
func (m RasterizerMode) String() string {
	switch m {
	case RasterizerSweep:
		return "Sweep"
	case RasterizerTiled:
		return "Tiled"
	default:
		return "Unknown"
	}
}
