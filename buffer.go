package swr

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	swrcolor "github.com/flubbe/swr-sub001/internal/color"
)

// ColorBuffer is an RGBA8 render target stored row-major, 4 bytes per pixel,
// with row 0 at the top.
type ColorBuffer struct {
	width  int
	height int
	pix    []uint8
}

// NewColorBuffer allocates a cleared color buffer.
func NewColorBuffer(width, height int) (*ColorBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &ColorBuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}, nil
}

// Width returns the buffer width in pixels.
func (b *ColorBuffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *ColorBuffer) Height() int { return b.height }

// Pix returns the underlying pixel bytes.
func (b *ColorBuffer) Pix() []uint8 { return b.pix }

// Resize reallocates the buffer. The contents are cleared.
func (b *ColorBuffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	b.width, b.height = width, height
	n := width * height * 4
	if cap(b.pix) >= n {
		b.pix = b.pix[:n]
		clear(b.pix)
	} else {
		b.pix = make([]uint8, n)
	}
	return nil
}

// Clear fills every pixel with c. Components are clamped to [0,1].
func (b *ColorBuffer) Clear(c mgl32.Vec4) {
	if len(b.pix) == 0 {
		return
	}
	swrcolor.PackVec4(b.pix[:4], c)
	for i := 4; i < len(b.pix); i *= 2 {
		copy(b.pix[i:], b.pix[:i])
	}
}

// At returns the color at (x, y). Out-of-bounds reads return transparent
// black.
func (b *ColorBuffer) At(x, y int) color.RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	i := (y*b.width + x) * 4
	return color.RGBA{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}
}

// Set writes the color at (x, y). Out-of-bounds writes are ignored.
func (b *ColorBuffer) Set(x, y int, c color.RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	i := (y*b.width + x) * 4
	b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3] = c.R, c.G, c.B, c.A
}

// ToImage copies the buffer into a new *image.RGBA.
func (b *ColorBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}

// DepthBuffer stores one float32 depth per pixel in window depth range
// [0,1], row 0 at the top.
type DepthBuffer struct {
	width  int
	height int
	data   []float32
}

// NewDepthBuffer allocates a depth buffer cleared to 1.
func NewDepthBuffer(width, height int) (*DepthBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	d := &DepthBuffer{width: width, height: height, data: make([]float32, width*height)}
	d.Clear(1)
	return d, nil
}

// Width returns the buffer width in pixels.
func (d *DepthBuffer) Width() int { return d.width }

// Height returns the buffer height in pixels.
func (d *DepthBuffer) Height() int { return d.height }

// Resize reallocates the buffer and clears it to 1.
func (d *DepthBuffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	d.width, d.height = width, height
	n := width * height
	if cap(d.data) >= n {
		d.data = d.data[:n]
	} else {
		d.data = make([]float32, n)
	}
	d.Clear(1)
	return nil
}

// Clear fills the buffer with v.
func (d *DepthBuffer) Clear(v float32) {
	for i := range d.data {
		d.data[i] = v
	}
}

// At returns the depth at (x, y), or 1 outside the buffer.
func (d *DepthBuffer) At(x, y int) float32 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 1
	}
	return d.data[y*d.width+x]
}

// Set writes the depth at (x, y). Out-of-bounds writes are ignored.
func (d *DepthBuffer) Set(x, y int, v float32) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return
	}
	d.data[y*d.width+x] = v
}
