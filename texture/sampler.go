package texture

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/flubbe/swr-sub001/internal/color"
)

// Filter selects how texels are combined into a sample.
type Filter uint8

const (
	// FilterNearest returns the texel containing the sample point.
	FilterNearest Filter = iota

	// FilterLinear blends the four nearest texels bilinearly.
	FilterLinear

	// FilterDithered picks a single texel after adding a per-pixel ordered
	// offset. Averaged over a 2x2 pixel block it approximates FilterLinear
	// at the cost of one texel read.
	FilterDithered
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "Nearest"
	case FilterLinear:
		return "Linear"
	case FilterDithered:
		return "Dithered"
	default:
		return "Unknown"
	}
}

// missing is returned when sampling without a texture.
var missing = mgl32.Vec4{0, 0, 0, 1}

// ditherOffsets are sub-texel offsets indexed by (y&1)*2 + (x&1).
var ditherOffsets = [4]mgl32.Vec2{
	{0.25, 0.00},
	{0.50, 0.75},
	{0.75, 0.50},
	{0.00, 0.25},
}

// Footprint describes where a sample is taken on screen: the texture
// coordinate derivatives along window x and y, and the pixel position used
// by the dithered filter. The zero Footprint selects level 0 and the
// magnification filter.
type Footprint struct {
	DUVdx, DUVdy mgl32.Vec2
	X, Y         int
}

// Sampler2D reads a Texture with a wrap mode per axis and filters for
// magnification and minification.
type Sampler2D struct {
	Texture   *Texture
	WrapU     gputypes.AddressMode
	WrapV     gputypes.AddressMode
	MagFilter Filter
	MinFilter Filter
}

// NewSampler2D returns a sampler with repeat wrapping and nearest filtering.
func NewSampler2D(t *Texture) *Sampler2D {
	return &Sampler2D{
		Texture:   t,
		WrapU:     gputypes.AddressModeRepeat,
		WrapV:     gputypes.AddressModeRepeat,
		MagFilter: FilterNearest,
		MinFilter: FilterNearest,
	}
}

// TextureID returns the id of the bound texture, or 0 without one.
func (s *Sampler2D) TextureID() uint32 {
	if s == nil || s.Texture == nil {
		return 0
	}
	return s.Texture.id
}

// SampleAt samples level 0 at uv with the magnification filter.
// A nil sampler or a sampler without texture returns opaque black.
func (s *Sampler2D) SampleAt(uv mgl32.Vec2) mgl32.Vec4 {
	return s.Sample(uv, Footprint{})
}

// Sample samples uv, choosing the mip level from the footprint's
// derivatives. A level of detail at or below zero uses the magnification
// filter on level 0; otherwise the minification filter runs on the nearest
// mip level.
func (s *Sampler2D) Sample(uv mgl32.Vec2, fp Footprint) mgl32.Vec4 {
	if s == nil || s.Texture == nil {
		return missing
	}
	level, filter := 0, s.MagFilter
	if lod := s.lod(fp); lod > 0 {
		filter = s.MinFilter
		level = min(int(lod+0.5), s.Texture.Levels()-1)
	}

	u := reduceCoord(s.WrapU, uv[0])
	v := reduceCoord(s.WrapV, uv[1])

	switch filter {
	case FilterLinear:
		return s.linear(level, u, v)
	case FilterDithered:
		off := ditherOffsets[(fp.Y&1)*2+(fp.X&1)]
		return s.dithered(level, u, v, off)
	default:
		return s.nearest(level, u, v)
	}
}

// lod returns log2 of the larger footprint axis in level-0 texels.
func (s *Sampler2D) lod(fp Footprint) float32 {
	w := float32(s.Texture.Width())
	h := float32(s.Texture.Height())
	dx := mgl32.Vec2{fp.DUVdx[0] * w, fp.DUVdx[1] * h}
	dy := mgl32.Vec2{fp.DUVdy[0] * w, fp.DUVdy[1] * h}
	rho2 := max(dx.Dot(dx), dy.Dot(dy))
	if !(rho2 > 0) || math.IsInf(float64(rho2), 0) {
		return 0
	}
	return 0.5 * float32(math.Log2(float64(rho2)))
}

func (s *Sampler2D) nearest(level int, u, v float32) mgl32.Vec4 {
	img := s.Texture.levels[level]
	w, h := img.Rect.Dx(), img.Rect.Dy()
	x := wrapIndex(s.WrapU, int(math.Floor(float64(u*float32(w)))), w)
	y := wrapIndex(s.WrapV, int(math.Floor(float64(v*float32(h)))), h)
	return s.texel(level, x, y)
}

func (s *Sampler2D) dithered(level int, u, v float32, off mgl32.Vec2) mgl32.Vec4 {
	img := s.Texture.levels[level]
	w, h := img.Rect.Dx(), img.Rect.Dy()
	fx := u*float32(w) - 0.5 + off[0]
	fy := v*float32(h) - 0.5 + off[1]
	x := wrapIndex(s.WrapU, int(math.Floor(float64(fx))), w)
	y := wrapIndex(s.WrapV, int(math.Floor(float64(fy))), h)
	return s.texel(level, x, y)
}

func (s *Sampler2D) linear(level int, u, v float32) mgl32.Vec4 {
	img := s.Texture.levels[level]
	w, h := img.Rect.Dx(), img.Rect.Dy()

	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5
	x0f := float32(math.Floor(float64(fx)))
	y0f := float32(math.Floor(float64(fy)))
	tx, ty := fx-x0f, fy-y0f
	x0, y0 := int(x0f), int(y0f)

	x1 := wrapIndex(s.WrapU, x0+1, w)
	y1 := wrapIndex(s.WrapV, y0+1, h)
	x0 = wrapIndex(s.WrapU, x0, w)
	y0 = wrapIndex(s.WrapV, y0, h)

	c00 := s.texel(level, x0, y0)
	c10 := s.texel(level, x1, y0)
	c01 := s.texel(level, x0, y1)
	c11 := s.texel(level, x1, y1)

	top := c00.Mul(1 - tx).Add(c10.Mul(tx))
	bottom := c01.Mul(1 - tx).Add(c11.Mul(tx))
	return top.Mul(1 - ty).Add(bottom.Mul(ty))
}

// texel decodes the texel at (x, y) of a level. x and y must be in range.
func (s *Sampler2D) texel(level, x, y int) mgl32.Vec4 {
	img := s.Texture.levels[level]
	i := y*img.Stride + x*4
	p := img.Pix[i : i+4 : i+4]
	if !s.Texture.srgb {
		return color.UnpackVec4(p)
	}
	return mgl32.Vec4{
		color.DecodeSRGB8(p[0]),
		color.DecodeSRGB8(p[1]),
		color.DecodeSRGB8(p[2]),
		float32(p[3]) / 255,
	}
}
