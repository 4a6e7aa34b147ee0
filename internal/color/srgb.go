package color

import "math"

// srgbDecode maps an sRGB-encoded byte to its linear value.
var srgbDecode [256]float32

func init() {
	for i := range srgbDecode {
		srgbDecode[i] = SRGBToLinear(float32(i) / 255)
	}
}

// SRGBToLinear converts an sRGB component in [0,1] to linear.
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear component in [0,1] to sRGB.
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}

// DecodeSRGB8 converts an sRGB byte to linear using a lookup table.
func DecodeSRGB8(s uint8) float32 {
	return srgbDecode[s]
}
