package swr

import "github.com/go-gl/mathgl/mgl32"

// Option configures a Rasterizer or a Context during creation.
//
// Example:
//
//	// Sequential scan conversion, pixel centers at (0.5, 0.5)
//	ctx, err := swr.NewContext(640, 480)
//
//	// Tiled scan conversion on 4 workers, with pipeline timing
//	ctx, err := swr.NewContext(640, 480,
//	    swr.WithRasterizerMode(swr.RasterizerTiled),
//	    swr.WithWorkers(4),
//	    swr.WithProfiling(true))
type Option func(*options)

type options struct {
	mode        RasterizerMode
	workers     int
	pixelCenter mgl32.Vec2
	profiling   bool
}

func defaultOptions() options {
	return options{
		mode:        RasterizerSweep,
		workers:     0, // GOMAXPROCS
		pixelCenter: mgl32.Vec2{0.5, 0.5},
	}
}

// WithRasterizerMode selects the scan converter.
func WithRasterizerMode(m RasterizerMode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithWorkers sets the number of goroutines used by RasterizerTiled.
// Zero or a negative count uses GOMAXPROCS. Ignored by RasterizerSweep.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPixelCenter sets the sample position inside each pixel. Components are
// clamped to [0,1]. The default samples at pixel centers, (0.5, 0.5).
func WithPixelCenter(x, y float32) Option {
	return func(o *options) {
		o.pixelCenter = mgl32.Vec2{min(max(x, 0), 1), min(max(y, 0), 1)}
	}
}

// WithProfiling enables the Cycles counters. Timing every fragment is
// expensive, so it is off by default.
func WithProfiling(enabled bool) Option {
	return func(o *options) {
		o.profiling = enabled
	}
}
