package swr

import (
	"fmt"
	"image"
	"time"

	"github.com/flubbe/swr-sub001/internal/parallel"
)

type primitiveKind uint8

const (
	primitivePoint primitiveKind = iota
	primitiveLine
	primitiveTriangle
)

// primitive is a queued point, line or triangle.
type primitive struct {
	kind        primitiveKind
	frontFacing bool
	states      *RenderStates
	v           [3]*Vertex
}

// job is a primitive that passed setup, together with its clipped pixel
// bounds. index points into the setup slice of its kind.
type job struct {
	kind   primitiveKind
	states *RenderStates
	index  int
	bounds image.Rectangle
}

// scanner converts the jobs of a batch into fragments.
type scanner interface {
	scan(r *Rasterizer)
	close()
}

// Rasterizer converts queued primitives into fragments, runs the fragment
// pipeline and writes the results to a color and a depth buffer.
//
// Primitives are queued with AddPoint, AddLine and AddTriangle and drawn in
// submission order by DrawPrimitives.
//
// Thread safety: Rasterizer is NOT safe for concurrent use.
type Rasterizer struct {
	color  *ColorBuffer
	depth  *DepthBuffer
	width  int
	height int
	opts   options

	queue []primitive
	stats Stats
	scan  scanner

	// per-batch setup results, reused across batches
	jobs   []job
	tris   []triangleSetup
	lines  []lineSetup
	points []pointSetup
}

// NewRasterizer creates a rasterizer drawing into color and depth.
// Both buffers must have the same dimensions, which become the raster
// extent.
func NewRasterizer(color *ColorBuffer, depth *DepthBuffer, opts ...Option) (*Rasterizer, error) {
	if color == nil || depth == nil {
		return nil, ErrInvalidDimensions
	}
	if color.Width() != depth.Width() || color.Height() != depth.Height() {
		return nil, ErrDimensionMismatch
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Rasterizer{
		color:  color,
		depth:  depth,
		width:  color.Width(),
		height: color.Height(),
		opts:   o,
	}
	switch o.mode {
	case RasterizerTiled:
		r.scan = newTiledScanner(o.workers, r.width, r.height)
	default:
		r.opts.mode = RasterizerSweep
		r.scan = &sweepScanner{}
	}

	Logger().Debug("rasterizer created",
		"width", r.width, "height", r.height, "mode", r.opts.mode.String())
	return r, nil
}

// Mode returns the scan conversion mode.
func (r *Rasterizer) Mode() RasterizerMode {
	return r.opts.mode
}

// SetDimensions sets the raster extent used by the next DrawPrimitives.
// Queued primitives stay queued. The attached buffers must already have
// the new dimensions.
func (r *Rasterizer) SetDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if r.color.Width() != width || r.color.Height() != height ||
		r.depth.Width() != width || r.depth.Height() != height {
		return fmt.Errorf("%w: raster %dx%d, color %dx%d, depth %dx%d", ErrDimensionMismatch,
			width, height, r.color.Width(), r.color.Height(), r.depth.Width(), r.depth.Height())
	}
	r.width, r.height = width, height
	Logger().Debug("rasterizer resized", "width", width, "height", height)
	return nil
}

// AddPoint queues a point.
func (r *Rasterizer) AddPoint(states *RenderStates, v *Vertex) {
	r.queue = append(r.queue, primitive{kind: primitivePoint, states: states, v: [3]*Vertex{v}})
}

// AddLine queues a line from v0 to v1.
func (r *Rasterizer) AddLine(states *RenderStates, v0, v1 *Vertex) {
	r.queue = append(r.queue, primitive{kind: primitiveLine, states: states, v: [3]*Vertex{v0, v1}})
}

// AddTriangle queues a triangle. frontFacing is used for face culling and
// passed on to the fragment shader.
func (r *Rasterizer) AddTriangle(states *RenderStates, frontFacing bool, v0, v1, v2 *Vertex) {
	r.queue = append(r.queue, primitive{
		kind:        primitiveTriangle,
		frontFacing: frontFacing,
		states:      states,
		v:           [3]*Vertex{v0, v1, v2},
	})
}

// Pending returns the number of queued primitives.
func (r *Rasterizer) Pending() int {
	return len(r.queue)
}

// Reset drops all queued primitives without drawing them.
func (r *Rasterizer) Reset() {
	clear(r.queue)
	r.queue = r.queue[:0]
}

// DrawPrimitives rasterizes the queued primitives in submission order and
// clears the queue. An empty queue is a no-op.
func (r *Rasterizer) DrawPrimitives() {
	if len(r.queue) == 0 {
		return
	}
	if debugChecks {
		r.checkTargets()
	}

	var start time.Time
	if r.opts.profiling {
		start = time.Now()
	}

	r.stats.Rasterizer.Batches++
	r.setupBatch()
	if len(r.jobs) > 0 {
		r.scan.scan(r)
	}

	if r.opts.profiling {
		r.stats.Rasterizer.Cycles += time.Since(start)
	}
	Logger().Debug("batch drawn",
		"primitives", len(r.queue), "jobs", len(r.jobs), "fragments", r.stats.Fragment.Count)

	r.Reset()
	clear(r.jobs)
	r.jobs = r.jobs[:0]
}

// Stats returns the accumulated counters.
func (r *Rasterizer) Stats() Stats {
	return r.stats
}

// ResetCounters zeroes all counters.
func (r *Rasterizer) ResetCounters() {
	r.stats.ResetCounters()
}

// ResetFragmentCounters zeroes the fragment counters.
func (r *Rasterizer) ResetFragmentCounters() {
	r.stats.ResetFragmentCounters()
}

// ResetRasterizerCounters zeroes the rasterizer counters.
func (r *Rasterizer) ResetRasterizerCounters() {
	r.stats.ResetRasterizerCounters()
}

// Close stops the worker goroutines of a tiled rasterizer. The rasterizer
// stays usable; later batches run on the calling goroutine.
func (r *Rasterizer) Close() {
	r.scan.close()
}

// collect merges the counters of a pipeline into the rasterizer totals.
func (r *Rasterizer) collect(p *pipeline) {
	r.stats.Fragment.add(&p.stats)
	r.stats.Rasterizer.Blocks += p.blocks
	p.stats = FragmentStats{}
	p.blocks = 0
}

func (r *Rasterizer) checkTargets() {
	if r.color.Width() != r.width || r.color.Height() != r.height ||
		r.depth.Width() != r.width || r.depth.Height() != r.height {
		panic(fmt.Sprintf("swr: raster %dx%d does not match buffers (color %dx%d, depth %dx%d)",
			r.width, r.height, r.color.Width(), r.color.Height(), r.depth.Width(), r.depth.Height()))
	}
}

// sweepScanner rasterizes every job over the whole target on the calling
// goroutine.
type sweepScanner struct {
	pipe pipeline
}

func (s *sweepScanner) scan(r *Rasterizer) {
	s.pipe.bind(r)
	target := image.Rect(0, 0, r.width, r.height)
	for i := range r.jobs {
		s.pipe.run(r, &r.jobs[i], target)
	}
	r.collect(&s.pipe)
}

func (s *sweepScanner) close() {}

// tiledScanner rasterizes dirty tiles on a worker pool. Every tile owns a
// pipeline, so counters are merged after the pool returns.
type tiledScanner struct {
	pool  *parallel.WorkerPool
	grid  *parallel.TileGrid
	pipes []pipeline
	work  []func()
}

func newTiledScanner(workers, width, height int) *tiledScanner {
	return &tiledScanner{
		pool: parallel.NewWorkerPool(workers),
		grid: parallel.NewTileGrid(width, height),
	}
}

func (t *tiledScanner) scan(r *Rasterizer) {
	t.grid.Resize(r.width, r.height)
	t.grid.ClearDirty()
	for i := range r.jobs {
		t.grid.MarkRectDirty(r.jobs[i].bounds)
	}
	tiles := t.grid.DirtyTiles()
	if len(tiles) == 0 {
		return
	}

	if cap(t.pipes) < len(tiles) {
		t.pipes = make([]pipeline, len(tiles))
	}
	t.pipes = t.pipes[:len(tiles)]
	t.work = t.work[:0]
	for i, tile := range tiles {
		p := &t.pipes[i]
		p.bind(r)
		rect := tile.Rect
		t.work = append(t.work, func() {
			for j := range r.jobs {
				if r.jobs[j].bounds.Overlaps(rect) {
					p.run(r, &r.jobs[j], rect)
				}
			}
		})
	}
	t.pool.ExecuteAll(t.work)

	for i := range t.pipes {
		r.collect(&t.pipes[i])
	}
	clear(t.work)
}

func (t *tiledScanner) close() {
	t.pool.Close()
}
