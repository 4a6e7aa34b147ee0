package swr

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewBuffersInvalid(t *testing.T) {
	if _, err := NewColorBuffer(0, 4); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewColorBuffer(0, 4) error = %v, want %v", err, ErrInvalidDimensions)
	}
	if _, err := NewDepthBuffer(4, -1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewDepthBuffer(4, -1) error = %v, want %v", err, ErrInvalidDimensions)
	}
}

func TestColorBuffer(t *testing.T) {
	b, err := NewColorBuffer(3, 5)
	if err != nil {
		t.Fatal(err)
	}
	b.Clear(mgl32.Vec4{0, 0.5, 1, 1})
	want := color.RGBA{R: 0, G: 128, B: 255, A: 255}
	for y := range 5 {
		for x := range 3 {
			if got := b.At(x, y); got != want {
				t.Fatalf("At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	b.Set(2, 4, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	b.Set(3, 0, color.RGBA{R: 9})
	if got := b.At(2, 4); got != (color.RGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("At(2, 4) = %v", got)
	}
	if got := b.At(-1, 0); got != (color.RGBA{}) {
		t.Errorf("At(-1, 0) = %v, want zero", got)
	}

	img := b.ToImage()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 5 {
		t.Errorf("ToImage() bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 4); got != (color.RGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("ToImage().RGBAAt(2, 4) = %v", got)
	}

	if err := b.Resize(4, 2); err != nil {
		t.Fatal(err)
	}
	if b.Width() != 4 || b.Height() != 2 || len(b.Pix()) != 32 {
		t.Errorf("Resize() = %dx%d with %d bytes", b.Width(), b.Height(), len(b.Pix()))
	}
	if got := b.At(1, 1); got != (color.RGBA{}) {
		t.Errorf("At(1, 1) after Resize = %v, want zero", got)
	}
}

func TestDepthBuffer(t *testing.T) {
	d, err := NewDepthBuffer(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.At(2, 2); got != 1 {
		t.Errorf("initial depth = %v, want 1", got)
	}
	d.Set(2, 2, 0.3)
	d.Set(9, 9, 0.3)
	if got := d.At(2, 2); got != 0.3 {
		t.Errorf("At(2, 2) = %v, want 0.3", got)
	}
	d.Clear(0)
	if got := d.At(2, 2); got != 0 {
		t.Errorf("At(2, 2) after Clear(0) = %v, want 0", got)
	}
	if err := d.Resize(8, 1); err != nil {
		t.Fatal(err)
	}
	if got := d.At(7, 0); got != 1 {
		t.Errorf("At(7, 0) after Resize = %v, want 1", got)
	}
}

func TestOptions(t *testing.T) {
	o := defaultOptions()
	for _, opt := range []Option{
		WithRasterizerMode(RasterizerTiled),
		WithWorkers(3),
		WithPixelCenter(-1, 0.25),
		WithProfiling(true),
	} {
		opt(&o)
	}
	if o.mode != RasterizerTiled || o.workers != 3 || !o.profiling {
		t.Errorf("options = %+v", o)
	}
	if o.pixelCenter != (mgl32.Vec2{0, 0.25}) {
		t.Errorf("pixelCenter = %v, want (0, 0.25)", o.pixelCenter)
	}
}

func TestPixelCenterShiftsCoverage(t *testing.T) {
	// A sample at the pixel corner puts the left column on the triangle's
	// left edge, which owns it.
	r := newTestRasterizer(t, 8, 8, WithPixelCenter(0, 0))
	s := statesFor(mustLink(t, &testProgram{}))
	r.AddTriangle(s, true, pixelVertex(0, 0, 8, 8, 1), pixelVertex(8, 0, 8, 8, 1), pixelVertex(0, 8, 8, 8, 1))
	r.DrawPrimitives()
	// samples (x, y) with x + y < 8
	if got := r.Stats().Fragment.Count; got != 36 {
		t.Errorf("Count = %d, want 36", got)
	}
}
