// Package texture provides the textures and samplers read by fragment
// shaders.
//
// A Texture is an immutable-while-drawing stack of RGBA8 mip levels. A
// Sampler2D binds a texture to a wrap mode per axis and to magnification and
// minification filters. Sampling is a pure function of the texture contents
// and its arguments and never reads outside the texel arrays, whatever the
// texture coordinates.
package texture

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Common errors for texture operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrDataTooSmall is returned when pixel data is smaller than width*height*4.
	ErrDataTooSmall = errors.New("texture: data buffer too small")

	// ErrInvalidLevel is returned for a mip level that does not exist.
	ErrInvalidLevel = errors.New("texture: invalid mip level")

	// ErrOutOfBounds is returned when a sub-image does not fit the level.
	ErrOutOfBounds = errors.New("texture: region out of bounds")
)

// Option configures a Texture during creation.
type Option func(*Texture)

// WithSRGB marks the texel data as sRGB encoded. Samplers decode the color
// channels to linear before filtering; alpha is always linear.
func WithSRGB() Option {
	return func(t *Texture) {
		t.srgb = true
	}
}

// Texture is a 2D RGBA8 image with an optional mipmap chain.
type Texture struct {
	id     uint32
	levels []*image.RGBA // level 0 is the full-resolution image
	srgb   bool
}

// New creates a texture from any image. The image is converted to RGBA8 and
// becomes mip level 0.
func New(id uint32, img image.Image, opts ...Option) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidDimensions
	}
	base := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(base, base.Bounds(), img, b.Min, draw.Src)
	return newTexture(id, base, opts), nil
}

// NewRGBA creates a texture from tightly packed RGBA8 rows.
func NewRGBA(id uint32, width, height int, pix []uint8, opts ...Option) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(pix) < width*height*4 {
		return nil, ErrDataTooSmall
	}
	base := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(base.Pix, pix)
	return newTexture(id, base, opts), nil
}

func newTexture(id uint32, base *image.RGBA, opts []Option) *Texture {
	t := &Texture{id: id, levels: []*image.RGBA{base}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the caller-assigned texture id.
func (t *Texture) ID() uint32 {
	return t.id
}

// Width returns the width of level 0.
func (t *Texture) Width() int {
	return t.levels[0].Rect.Dx()
}

// Height returns the height of level 0.
func (t *Texture) Height() int {
	return t.levels[0].Rect.Dy()
}

// Levels returns the number of mip levels, at least 1.
func (t *Texture) Levels() int {
	return len(t.levels)
}

// Level returns mip level n, or nil if it does not exist.
func (t *Texture) Level(n int) *image.RGBA {
	if n < 0 || n >= len(t.levels) {
		return nil
	}
	return t.levels[n]
}

// SRGB reports whether the texel colors are sRGB encoded.
func (t *Texture) SRGB() bool {
	return t.srgb
}

// GenerateMipmaps rebuilds levels 1..n from level 0. Each level halves the
// previous one (rounding down, never below 1) and is filtered with a
// bilinear kernel. The chain ends at a 1x1 level.
func (t *Texture) GenerateMipmaps() {
	t.levels = t.levels[:1]
	prev := t.levels[0]
	for prev.Rect.Dx() > 1 || prev.Rect.Dy() > 1 {
		w := max(1, prev.Rect.Dx()/2)
		h := max(1, prev.Rect.Dy()/2)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(next, next.Rect, prev, prev.Rect, draw.Src, nil)
		t.levels = append(t.levels, next)
		prev = next
	}
}

// SetSubImage replaces the region of mip level "level" starting at (x, y)
// with img. Other levels are left untouched; call GenerateMipmaps to rebuild
// them.
func (t *Texture) SetSubImage(level, x, y int, img image.Image) error {
	dst := t.Level(level)
	if dst == nil {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	b := img.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	if !r.In(dst.Rect) {
		return ErrOutOfBounds
	}
	draw.Draw(dst, r, img, b.Min, draw.Src)
	return nil
}
