package swr

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// testProgram passes attribute 0 through as the position and attributes
// 1..n as varyings. The first varying, or color when there are none, is
// written as the fragment color.
type testProgram struct {
	varyings    []Interpolation
	clip        int
	attachments int
	writesDepth bool
	color       mgl32.Vec4

	// optional hooks; must be safe for concurrent use in tiled tests
	vertex   func(in *VertexInput, out *Vertex)
	fragment func(f *Fragment, out *FragmentOutput) FragmentResult
}

func (p *testProgram) PreLink(info *LinkInfo) {
	info.Varyings = p.varyings
	info.ClipDistances = p.clip
	if p.attachments != 0 {
		info.ColorAttachments = p.attachments
	}
	info.WritesDepth = p.writesDepth
}

func (p *testProgram) VertexShader(in *VertexInput, out *Vertex) {
	if p.vertex != nil {
		p.vertex(in, out)
		return
	}
	out.Position = in.Attributes[0]
	for i := range p.varyings {
		out.Varyings[i] = in.Attributes[1+i]
	}
}

func (p *testProgram) FragmentShader(f *Fragment, out *FragmentOutput) FragmentResult {
	if p.fragment != nil {
		return p.fragment(f, out)
	}
	if len(f.Varyings) > 0 {
		out.Color[0] = f.Varyings[0].Value
	} else {
		out.Color[0] = p.color
	}
	return Accept
}

func mustLink(t *testing.T, p Program) *LinkedProgram {
	t.Helper()
	lp, err := Link(p)
	if err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	return lp
}

func newTestRasterizer(t *testing.T, w, h int, opts ...Option) *Rasterizer {
	t.Helper()
	cb, err := NewColorBuffer(w, h)
	if err != nil {
		t.Fatalf("NewColorBuffer() error = %v", err)
	}
	db, err := NewDepthBuffer(w, h)
	if err != nil {
		t.Fatalf("NewDepthBuffer() error = %v", err)
	}
	r, err := NewRasterizer(cb, db, opts...)
	if err != nil {
		t.Fatalf("NewRasterizer() error = %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

// statesFor returns default states with lp bound.
func statesFor(lp *LinkedProgram) *RenderStates {
	s := DefaultRenderStates()
	s.Program = lp
	return &s
}

// pixelVertex returns a vertex whose window position is (px, py) on a
// w x h target, with clip-space w component cw and window depth 0.5.
func pixelVertex(px, py float32, w, h int, cw float32) *Vertex {
	xn := px/float32(w)*2 - 1
	yn := 1 - py/float32(h)*2
	return &Vertex{Position: mgl32.Vec4{xn * cw, yn * cw, 0, cw}}
}

// fullScreen queues two triangles covering a w x h target.
func fullScreen(r *Rasterizer, s *RenderStates, w, h int) {
	fw, fh := float32(w), float32(h)
	a := pixelVertex(0, 0, w, h, 1)
	b := pixelVertex(fw, 0, w, h, 1)
	c := pixelVertex(fw, fh, w, h, 1)
	d := pixelVertex(0, fh, w, h, 1)
	r.AddTriangle(s, true, a, b, c)
	r.AddTriangle(s, true, a, c, d)
}

func checkPartition(t *testing.T, s FragmentStats) {
	t.Helper()
	sum := s.DiscardScissor + s.DiscardDepth + s.DiscardShader + s.DiscardAlpha + s.Blending + s.Written
	if s.Count != sum {
		t.Errorf("Count = %d, want sum of outcomes %d (%+v)", s.Count, sum, s)
	}
}
