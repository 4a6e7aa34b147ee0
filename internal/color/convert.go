package color

import "github.com/go-gl/mathgl/mgl32"

// U8ToF32 converts ColorU8 to ColorF32.
// Each uint8 component [0,255] is mapped to float32 [0,1].
func U8ToF32(c ColorU8) ColorF32 {
	return ColorF32{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// F32ToU8 converts ColorF32 to ColorU8.
// Each component is clamped to [0,1] and rounded to the nearest step.
func F32ToU8(c ColorF32) ColorU8 {
	return ColorU8{
		R: clampAndRound(c.R),
		G: clampAndRound(c.G),
		B: clampAndRound(c.B),
		A: clampAndRound(c.A),
	}
}

// UnpackVec4 reads four RGBA8 bytes starting at p[0] as a normalized vector.
func UnpackVec4(p []uint8) mgl32.Vec4 {
	_ = p[3]
	return mgl32.Vec4{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}

// PackVec4 writes v as four RGBA8 bytes starting at p[0].
func PackVec4(p []uint8, v mgl32.Vec4) {
	_ = p[3]
	p[0] = clampAndRound(v[0])
	p[1] = clampAndRound(v[1])
	p[2] = clampAndRound(v[2])
	p[3] = clampAndRound(v[3])
}

// clampAndRound clamps a float32 to [0,1] and converts to uint8 with rounding.
// NaN maps to 0.
func clampAndRound(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
