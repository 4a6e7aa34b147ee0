// Package color converts between the float colors produced by shaders and
// the 8-bit RGBA texels stored in color buffers and textures.
package color

import "github.com/go-gl/mathgl/mgl32"

// ColorF32 represents a color with float32 components, nominally in [0,1].
// Alpha is always linear.
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 represents a color with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}

// Vec4 returns c as a shader vector (r, g, b, a).
func (c ColorF32) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// FromVec4 builds a ColorF32 from a shader vector (r, g, b, a).
func FromVec4(v mgl32.Vec4) ColorF32 {
	return ColorF32{R: v[0], G: v[1], B: v[2], A: v[3]}
}

// Clamp restricts every component of c to [0,1]. NaN components become 0.
func (c ColorF32) Clamp() ColorF32 {
	return ColorF32{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
