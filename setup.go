package swr

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/fixed"
)

// guardBand bounds window coordinates, in pixels, so that edge functions
// on 26.6 coordinates stay inside int64.
const guardBand = 1 << 20

// windowVertex is a vertex after perspective divide and viewport mapping.
type windowVertex struct {
	x, y float32 // pixels, y down
	z    float32 // window depth
	invW float32
}

// project maps a clip-space position to window coordinates. It fails for
// non-finite positions, w <= 0 and positions outside the guard band.
func (r *Rasterizer) project(p mgl32.Vec4) (windowVertex, bool) {
	for _, c := range p {
		if !finite(c) {
			return windowVertex{}, false
		}
	}
	if !(p[3] > 0) {
		return windowVertex{}, false
	}
	invW := 1 / p[3]
	wv := windowVertex{
		x:    (p[0]*invW*0.5 + 0.5) * float32(r.width),
		y:    (0.5 - p[1]*invW*0.5) * float32(r.height),
		z:    p[2]*invW*0.5 + 0.5,
		invW: invW,
	}
	if !finite(wv.x) || !finite(wv.y) || !finite(wv.z) || !finite(invW) ||
		abs32(wv.x) > guardBand || abs32(wv.y) > guardBand {
		return windowVertex{}, false
	}
	return wv, true
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func abs32(f float32) float32 {
	return float32(math.Abs(float64(f)))
}

func toFixed(f float32) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(f) * 64))
}

// pixelBounds returns a conservative pixel rectangle around the window
// positions min and max.
func pixelBounds(minX, minY, maxX, maxY float32) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(minX)))-1,
		int(math.Floor(float64(minY)))-1,
		int(math.Floor(float64(maxX)))+2,
		int(math.Floor(float64(maxY)))+2,
	)
}

// clipBounds intersects b with the target and with the scissor box widened
// to the 2x2 block grid. Pixels between the scissor box and its widened
// rectangle are removed by the fragment scissor test.
func (r *Rasterizer) clipBounds(s *RenderStates, b image.Rectangle) image.Rectangle {
	b = b.Intersect(image.Rect(0, 0, r.width, r.height))
	if s.Scissor {
		sb := s.ScissorBox.Canon()
		b = b.Intersect(image.Rect(sb.Min.X&^1, sb.Min.Y&^1, (sb.Max.X+1)&^1, (sb.Max.Y+1)&^1))
	}
	return b
}

// clippedAway reports whether all vertices lie on the negative side of the
// same clip distance.
func clippedAway(n int, vs ...*Vertex) bool {
	for d := range n {
		out := true
		for _, v := range vs {
			if !(v.ClipDistances[d] < 0) {
				out = false
				break
			}
		}
		if out {
			return true
		}
	}
	return false
}

func culled(mode gputypes.CullMode, frontFacing bool) bool {
	switch mode {
	case gputypes.CullModeFront:
		return frontFacing
	case gputypes.CullModeBack:
		return !frontFacing
	default:
		return false
	}
}

// setupBatch sets up every queued primitive and fills r.jobs.
func (r *Rasterizer) setupBatch() {
	r.jobs = r.jobs[:0]
	r.tris = r.tris[:0]
	r.lines = r.lines[:0]
	r.points = r.points[:0]

	st := &r.stats.Rasterizer
	for i := range r.queue {
		pr := &r.queue[i]
		switch pr.kind {
		case primitivePoint:
			st.Points++
			if pr.states.Program == nil || !r.setupPoint(pr.states, pr.v[0], true) {
				st.Rejected++
			}
		case primitiveLine:
			st.Lines++
			if pr.states.Program == nil || !r.setupLine(pr.states, pr.v[0], pr.v[1], true) {
				st.Rejected++
			}
		case primitiveTriangle:
			st.Triangles++
			r.setupTriangleMode(pr)
		}
	}
}

// setupTriangleMode culls a triangle and sets it up according to the
// polygon mode.
func (r *Rasterizer) setupTriangleMode(pr *primitive) {
	s := pr.states
	st := &r.stats.Rasterizer
	if s.Program == nil {
		st.Rejected++
		return
	}
	if s.Culling && culled(s.CullMode, pr.frontFacing) {
		st.Culled++
		return
	}

	v0, v1, v2 := pr.v[0], pr.v[1], pr.v[2]
	var ok bool
	switch s.PolygonMode {
	case PolygonLine:
		a := r.setupLine(s, v0, v1, pr.frontFacing)
		b := r.setupLine(s, v1, v2, pr.frontFacing)
		c := r.setupLine(s, v2, v0, pr.frontFacing)
		ok = a || b || c
	case PolygonPoint:
		a := r.setupPoint(s, v0, pr.frontFacing)
		b := r.setupPoint(s, v1, pr.frontFacing)
		c := r.setupPoint(s, v2, pr.frontFacing)
		ok = a || b || c
	default:
		ok = r.setupTriangle(s, pr.frontFacing, v0, v1, v2)
	}
	if !ok {
		st.Rejected++
	}
}

// edge is the edge function E(x, y) = a*x + b*y + c over 26.6 window
// coordinates. A sample is inside when E >= bias, which gives a top-left
// fill rule.
type edge struct {
	a, b, c int64
	bias    int64
}

func (e *edge) eval(x, y int64) int64 {
	return e.a*x + e.b*y + e.c
}

// newEdge returns the edge function from p to q. For a triangle of positive
// area the interior is E > 0; samples exactly on the edge belong to top and
// left edges only.
func newEdge(p, q fixed.Point26_6) edge {
	px, py := int64(p.X), int64(p.Y)
	dx, dy := int64(q.X)-px, int64(q.Y)-py
	e := edge{
		a: -dy,
		b: dx,
		c: dy*px - dx*py,
	}
	if !(dy < 0 || (dy == 0 && dx > 0)) {
		e.bias = 1
	}
	return e
}

// triangleSetup holds a triangle ready for scan conversion. Vertices are
// ordered so that the area is positive; edge i is opposite vertex i.
type triangleSetup struct {
	v           [3]*Vertex
	w           [3]windowVertex
	edges       [3]edge
	area        float64
	provoking   *Vertex
	frontFacing bool
}

func (r *Rasterizer) setupTriangle(s *RenderStates, frontFacing bool, v0, v1, v2 *Vertex) bool {
	info := &s.Program.info
	if clippedAway(info.ClipDistances, v0, v1, v2) {
		return false
	}

	t := triangleSetup{
		v:           [3]*Vertex{v0, v1, v2},
		provoking:   v2,
		frontFacing: frontFacing,
	}
	var p [3]fixed.Point26_6
	for i, v := range t.v {
		wv, ok := r.project(v.Position)
		if !ok {
			return false
		}
		t.w[i] = wv
		p[i] = fixed.Point26_6{X: toFixed(wv.x), Y: toFixed(wv.y)}
	}

	e01 := newEdge(p[0], p[1])
	area := e01.eval(int64(p[2].X), int64(p[2].Y))
	if area == 0 {
		return false
	}
	if area < 0 {
		t.v[1], t.v[2] = t.v[2], t.v[1]
		t.w[1], t.w[2] = t.w[2], t.w[1]
		p[1], p[2] = p[2], p[1]
		area = -area
	}
	t.edges = [3]edge{
		newEdge(p[1], p[2]),
		newEdge(p[2], p[0]),
		newEdge(p[0], p[1]),
	}
	t.area = float64(area)

	minX := min(t.w[0].x, t.w[1].x, t.w[2].x)
	minY := min(t.w[0].y, t.w[1].y, t.w[2].y)
	maxX := max(t.w[0].x, t.w[1].x, t.w[2].x)
	maxY := max(t.w[0].y, t.w[1].y, t.w[2].y)
	bounds := r.clipBounds(s, pixelBounds(minX, minY, maxX, maxY))
	if bounds.Empty() {
		return true
	}

	r.tris = append(r.tris, t)
	r.jobs = append(r.jobs, job{kind: primitiveTriangle, states: s, index: len(r.tris) - 1, bounds: bounds})
	return true
}

// lineSetup holds a line ready for scan conversion.
type lineSetup struct {
	v           [2]*Vertex
	w           [2]windowVertex
	frontFacing bool
}

func (r *Rasterizer) setupLine(s *RenderStates, v0, v1 *Vertex, frontFacing bool) bool {
	if clippedAway(s.Program.info.ClipDistances, v0, v1) {
		return false
	}
	l := lineSetup{v: [2]*Vertex{v0, v1}, frontFacing: frontFacing}
	for i, v := range l.v {
		wv, ok := r.project(v.Position)
		if !ok {
			return false
		}
		l.w[i] = wv
	}
	if l.w[0].x == l.w[1].x && l.w[0].y == l.w[1].y {
		return false
	}

	bounds := r.clipBounds(s, pixelBounds(
		min(l.w[0].x, l.w[1].x), min(l.w[0].y, l.w[1].y),
		max(l.w[0].x, l.w[1].x), max(l.w[0].y, l.w[1].y)))
	if bounds.Empty() {
		return true
	}
	r.lines = append(r.lines, l)
	r.jobs = append(r.jobs, job{kind: primitiveLine, states: s, index: len(r.lines) - 1, bounds: bounds})
	return true
}

// pointSetup holds a point ready for scan conversion.
type pointSetup struct {
	v           *Vertex
	w           windowVertex
	size        float32
	frontFacing bool
}

func (r *Rasterizer) setupPoint(s *RenderStates, v *Vertex, frontFacing bool) bool {
	if clippedAway(s.Program.info.ClipDistances, v) {
		return false
	}
	wv, ok := r.project(v.Position)
	if !ok {
		return false
	}
	size := v.PointSize
	if !(size >= 1) || !finite(size) {
		size = 1
	}
	size = min(size, guardBand)

	h := size / 2
	bounds := r.clipBounds(s, pixelBounds(wv.x-h, wv.y-h, wv.x+h, wv.y+h))
	if bounds.Empty() {
		return true
	}
	r.points = append(r.points, pointSetup{v: v, w: wv, size: size, frontFacing: frontFacing})
	r.jobs = append(r.jobs, job{kind: primitivePoint, states: s, index: len(r.points) - 1, bounds: bounds})
	return true
}
