package swr

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// pipeline scan converts jobs and runs the fragment stage. Each goroutine
// of a tiled rasterizer owns one pipeline; the sweep rasterizer uses one.
type pipeline struct {
	color   *ColorBuffer
	depth   *DepthBuffer
	cx, cy  float32 // sample offset inside a pixel
	fx, fy  int64   // cx, cy in 26.6
	profile bool
	scissor image.Rectangle // canonical scissor box of the current job

	stats  FragmentStats
	blocks uint64

	frag     Fragment
	out      FragmentOutput
	varyings [MaxVaryings]Varying
	quad     [4][MaxVaryings]mgl32.Vec4
}

func (p *pipeline) bind(r *Rasterizer) {
	p.color = r.color
	p.depth = r.depth
	p.cx, p.cy = r.opts.pixelCenter[0], r.opts.pixelCenter[1]
	p.fx, p.fy = int64(toFixed(p.cx)), int64(toFixed(p.cy))
	p.profile = r.opts.profiling
}

// run rasterizes the part of j that lies inside clip.
func (p *pipeline) run(r *Rasterizer, j *job, clip image.Rectangle) {
	b := j.bounds.Intersect(clip)
	if b.Empty() {
		return
	}
	p.frag.states = j.states
	p.scissor = j.states.ScissorBox.Canon()
	p.frag.Uniforms = j.states.Uniforms
	p.frag.PointCoord = mgl32.Vec2{}

	switch j.kind {
	case primitiveTriangle:
		p.triangle(&r.tris[j.index], j.states, b)
	case primitiveLine:
		p.line(&r.lines[j.index], j.states, b)
	case primitivePoint:
		p.point(&r.points[j.index], j.states, b)
	}
}

// interpolate writes the varyings of one sample to out. linear holds the
// window-space weights, persp the perspective-corrected ones.
func interpolate(out []mgl32.Vec4, quals []Interpolation, vs []*Vertex, provoking *Vertex, linear, persp []float32) {
	for j, q := range quals {
		var w []float32
		switch q {
		case Flat:
			out[j] = provoking.Varyings[j]
			continue
		case NoPerspective:
			w = linear
		default:
			w = persp
		}
		var acc mgl32.Vec4
		for i, v := range vs {
			acc = acc.Add(v.Varyings[j].Mul(w[i]))
		}
		out[j] = acc
	}
}

// clipped reports whether an interpolated clip distance is negative.
func clipped(n int, vs []*Vertex, persp []float32) bool {
	for d := range n {
		var sum float32
		for i, v := range vs {
			sum += v.ClipDistances[d] * persp[i]
		}
		if sum < 0 {
			return true
		}
	}
	return false
}

func (p *pipeline) triangle(t *triangleSetup, s *RenderStates, b image.Rectangle) {
	n := len(s.Program.info.Varyings)
	p.frag.FrontFacing = t.frontFacing
	p.frag.Varyings = p.varyings[:n]

	for by := b.Min.Y &^ 1; by < b.Max.Y; by += 2 {
		for bx := b.Min.X &^ 1; bx < b.Max.X; bx += 2 {
			p.block(t, s, b, bx, by)
		}
	}
}

// block rasterizes the 2x2 block with top-left pixel (bx, by). Varyings are
// interpolated for all four pixels, covered or not, so that every covered
// pixel gets finite-difference derivatives.
func (p *pipeline) block(t *triangleSetup, s *RenderStates, b image.Rectangle, bx, by int) {
	var (
		lambda [4][3]float32
		mask   uint8
	)
	for k := range 4 {
		x, y := bx+k&1, by+k>>1
		sx := int64(x)<<6 + p.fx
		sy := int64(y)<<6 + p.fy
		e0 := t.edges[0].eval(sx, sy)
		e1 := t.edges[1].eval(sx, sy)
		e2 := t.edges[2].eval(sx, sy)
		lambda[k] = [3]float32{
			float32(float64(e0) / t.area),
			float32(float64(e1) / t.area),
			float32(float64(e2) / t.area),
		}
		if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		if e0 < t.edges[0].bias || e1 < t.edges[1].bias || e2 < t.edges[2].bias {
			continue
		}
		mask |= 1 << k
	}
	if mask == 0 {
		return
	}

	info := &s.Program.info
	var z, q [4]float32
	var persp [4][3]float32
	for k := range 4 {
		l := &lambda[k]
		z[k] = t.w[0].z + l[1]*(t.w[1].z-t.w[0].z) + l[2]*(t.w[2].z-t.w[0].z)
		q[k] = t.w[0].invW + l[1]*(t.w[1].invW-t.w[0].invW) + l[2]*(t.w[2].invW-t.w[0].invW)
		if q[k] != 0 {
			for i := range 3 {
				persp[k][i] = l[i] * t.w[i].invW / q[k]
			}
		}
	}
	if info.ClipDistances > 0 {
		for k := range 4 {
			if mask&(1<<k) != 0 && clipped(info.ClipDistances, t.v[:], persp[k][:]) {
				mask &^= 1 << k
			}
		}
		if mask == 0 {
			return
		}
	}
	p.blocks++

	n := len(info.Varyings)
	if n > 0 {
		for k := range 4 {
			interpolate(p.quad[k][:n], info.Varyings, t.v[:], t.provoking, lambda[k][:], persp[k][:])
		}
	}

	for k := range 4 {
		if mask&(1<<k) == 0 {
			continue
		}
		row, col := k>>1, k&1
		for j := range n {
			p.varyings[j] = Varying{
				Value: p.quad[k][j],
				DFdx:  p.quad[row*2+1][j].Sub(p.quad[row*2][j]),
				DFdy:  p.quad[2+col][j].Sub(p.quad[col][j]),
			}
		}
		x, y := bx+col, by+row
		p.frag.Coord = mgl32.Vec4{float32(x) + p.cx, float32(y) + p.cy, z[k], q[k]}
		p.shade(s, x, y)
	}
}

// line rasterizes a line with one sample per column (x-major) or row
// (y-major). The span is half-open along the major axis.
func (p *pipeline) line(l *lineSetup, s *RenderStates, b image.Rectangle) {
	info := &s.Program.info
	n := len(info.Varyings)
	p.frag.FrontFacing = l.frontFacing
	p.frag.Varyings = p.varyings[:n]

	w0, w1 := l.w[0], l.w[1]
	xMajor := abs32(w1.x-w0.x) >= abs32(w1.y-w0.y)
	a0, a1, m0, m1 := w0.x, w1.x, w0.y, w1.y
	ca, cm := p.cx, p.cy
	lo, hi := b.Min.X, b.Max.X
	if !xMajor {
		a0, a1, m0, m1 = w0.y, w1.y, w0.x, w1.x
		ca, cm = p.cy, p.cx
		lo, hi = b.Min.Y, b.Max.Y
	}

	// Samples in [a0, a1) when walking up the axis, (a1, a0] when walking
	// down: the start vertex is drawn, the end vertex is not.
	var first, last int
	if a0 <= a1 {
		first = int(math.Ceil(float64(a0 - ca)))
		last = int(math.Ceil(float64(a1 - ca)))
	} else {
		first = int(math.Floor(float64(a1-ca))) + 1
		last = int(math.Floor(float64(a0-ca))) + 1
	}
	first, last = max(first, lo), min(last, hi)
	for i := first; i < last; i++ {
		t := (float32(i) + ca - a0) / (a1 - a0)
		m := m0 + t*(m1-m0)
		j := int(math.Floor(float64(m - cm + 0.5)))
		x, y := i, j
		if !xMajor {
			x, y = j, i
		}
		if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
			continue
		}

		linear := [2]float32{1 - t, t}
		z := w0.z + t*(w1.z-w0.z)
		q := w0.invW + t*(w1.invW-w0.invW)
		var persp [2]float32
		if q != 0 {
			persp = [2]float32{linear[0] * w0.invW / q, linear[1] * w1.invW / q}
		}
		if info.ClipDistances > 0 && clipped(info.ClipDistances, l.v[:], persp[:]) {
			continue
		}

		if n > 0 {
			interpolate(p.quad[0][:n], info.Varyings, l.v[:], l.v[1], linear[:], persp[:])
			for k := range n {
				p.varyings[k] = Varying{Value: p.quad[0][k]}
			}
		}
		p.frag.Coord = mgl32.Vec4{float32(x) + p.cx, float32(y) + p.cy, z, q}
		p.shade(s, x, y)
	}
}

// point rasterizes a square point sprite centered on the vertex.
func (p *pipeline) point(pt *pointSetup, s *RenderStates, b image.Rectangle) {
	n := len(s.Program.info.Varyings)
	p.frag.FrontFacing = pt.frontFacing
	p.frag.Varyings = p.varyings[:n]
	for k := range n {
		p.varyings[k] = Varying{Value: pt.v.Varyings[k]}
	}

	h := pt.size / 2
	left, top := pt.w.x-h, pt.w.y-h
	x0 := max(int(math.Ceil(float64(left-p.cx))), b.Min.X)
	x1 := min(int(math.Ceil(float64(pt.w.x+h-p.cx))), b.Max.X)
	y0 := max(int(math.Ceil(float64(top-p.cy))), b.Min.Y)
	y1 := min(int(math.Ceil(float64(pt.w.y+h-p.cy))), b.Max.Y)

	for y := y0; y < y1; y++ {
		sy := float32(y) + p.cy
		for x := x0; x < x1; x++ {
			sx := float32(x) + p.cx
			p.frag.Coord = mgl32.Vec4{sx, sy, pt.w.z, pt.w.invW}
			p.frag.PointCoord = mgl32.Vec2{(sx - left) / pt.size, (sy - top) / pt.size}
			p.shade(s, x, y)
		}
	}
}
