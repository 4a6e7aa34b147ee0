package texture

import (
	"math"

	"github.com/gogpu/gputypes"
)

// reduceCoord maps a normalized coordinate to a range whose integer texel
// index cannot overflow. Repeat and mirrored repeat have period 1 and 2, so
// reducing modulo 2 keeps the result unchanged; clamping modes only need
// values slightly outside [0,1]. NaN and infinities map to 0.
func reduceCoord(mode gputypes.AddressMode, u float32) float32 {
	if math.IsNaN(float64(u)) || math.IsInf(float64(u), 0) {
		return 0
	}
	switch mode {
	case gputypes.AddressModeRepeat, gputypes.AddressModeMirrorRepeat:
		return u - 2*float32(math.Floor(float64(u/2)))
	default:
		return min(max(u, -1), 2)
	}
}

// wrapIndex maps texel index i into [0, n) according to mode.
func wrapIndex(mode gputypes.AddressMode, i, n int) int {
	switch mode {
	case gputypes.AddressModeRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case gputypes.AddressModeMirrorRepeat:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default:
		return min(max(i, 0), n-1)
	}
}
