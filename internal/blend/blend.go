// Package blend implements the fixed-function blend equation used by the
// rasterizer's output stage.
//
// All operations work on straight (non-premultiplied) float colors. The
// result of a blend is
//
//	result = op(src*srcFactor, dst*dstFactor)
//
// evaluated separately for the RGB triple and for alpha.
package blend

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Apply blends src over dst using the color component for RGB and the alpha
// component for A. constant is the blend constant used by the Constant factors.
func Apply(color, alpha gputypes.BlendComponent, src, dst, constant mgl32.Vec4) mgl32.Vec4 {
	var out mgl32.Vec4
	for i := range 3 {
		s := src[i] * factor(color.SrcFactor, i, src, dst, constant)
		d := dst[i] * factor(color.DstFactor, i, src, dst, constant)
		out[i] = combine(color.Operation, src[i], dst[i], s, d)
	}
	s := src[3] * factor(alpha.SrcFactor, 3, src, dst, constant)
	d := dst[3] * factor(alpha.DstFactor, 3, src, dst, constant)
	out[3] = combine(alpha.Operation, src[3], dst[3], s, d)
	return out
}

// factor returns the weight of channel i for the given blend factor.
// Unknown factors behave like One.
func factor(f gputypes.BlendFactor, i int, src, dst, constant mgl32.Vec4) float32 {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorOne:
		return 1
	case gputypes.BlendFactorSrc:
		return src[i]
	case gputypes.BlendFactorOneMinusSrc:
		return 1 - src[i]
	case gputypes.BlendFactorSrcAlpha:
		return src[3]
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - src[3]
	case gputypes.BlendFactorDst:
		return dst[i]
	case gputypes.BlendFactorOneMinusDst:
		return 1 - dst[i]
	case gputypes.BlendFactorDstAlpha:
		return dst[3]
	case gputypes.BlendFactorOneMinusDstAlpha:
		return 1 - dst[3]
	case gputypes.BlendFactorSrcAlphaSaturated:
		if i == 3 {
			return 1
		}
		return min(src[3], 1-dst[3])
	case gputypes.BlendFactorConstant:
		return constant[i]
	case gputypes.BlendFactorOneMinusConstant:
		return 1 - constant[i]
	default:
		return 1
	}
}

// combine applies the blend operation. Min and Max ignore the factors.
func combine(op gputypes.BlendOperation, src, dst, s, d float32) float32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return s - d
	case gputypes.BlendOperationReverseSubtract:
		return d - s
	case gputypes.BlendOperationMin:
		return min(src, dst)
	case gputypes.BlendOperationMax:
		return max(src, dst)
	default:
		return s + d
	}
}
