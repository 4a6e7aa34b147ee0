package swr

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/flubbe/swr-sub001/texture"
)

// PolygonMode selects how triangles are rasterized.
type PolygonMode uint8

const (
	// PolygonFill fills the triangle interior.
	PolygonFill PolygonMode = iota

	// PolygonLine draws the three edges as lines.
	PolygonLine

	// PolygonPoint draws the three vertices as points.
	PolygonPoint
)

// String returns the polygon mode name.
func (m PolygonMode) String() string {
	switch m {
	case PolygonFill:
		return "Fill"
	case PolygonLine:
		return "Line"
	case PolygonPoint:
		return "Point"
	default:
		return "Unknown"
	}
}

// BlendState configures the blend stage. Color applies to RGB, Alpha to A.
type BlendState struct {
	Color    gputypes.BlendComponent
	Alpha    gputypes.BlendComponent
	Constant mgl32.Vec4
}

// RenderStates is the fixed-function and binding state attached to every
// queued primitive.
//
// The rasterizer keeps a pointer to the RenderStates passed with each
// primitive. The pointed-to value must not change until the batch has been
// drawn; Context takes care of that by snapshotting its state.
type RenderStates struct {
	DepthTest  bool
	DepthFunc  gputypes.CompareFunction
	DepthWrite bool

	Blend      bool
	BlendState BlendState

	Culling   bool
	CullMode  gputypes.CullMode
	FrontFace gputypes.FrontFace

	// ScissorBox is in buffer coordinates, origin top-left,
	// Max exclusive.
	Scissor    bool
	ScissorBox image.Rectangle

	AlphaTest bool
	AlphaFunc gputypes.CompareFunction
	AlphaRef  float32

	Texturing      bool
	PolygonMode    PolygonMode
	ColorWriteMask gputypes.ColorWriteMask

	Program  *LinkedProgram
	Uniforms Uniforms
	Samplers [MaxTextureUnits]*texture.Sampler2D
}

// DefaultRenderStates returns the initial pipeline state: depth test off
// with function Less and writes enabled, blending off with a source-alpha
// equation, culling off with back faces selected and counter-clockwise
// front faces, scissor and alpha test off, filled polygons and all color
// channels written.
func DefaultRenderStates() RenderStates {
	return RenderStates{
		DepthFunc:  gputypes.CompareFunctionLess,
		DepthWrite: true,
		BlendState: BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
		},
		CullMode:       gputypes.CullModeBack,
		FrontFace:      gputypes.FrontFaceCCW,
		AlphaFunc:      gputypes.CompareFunctionAlways,
		PolygonMode:    PolygonFill,
		ColorWriteMask: gputypes.ColorWriteMaskAll,
	}
}

// Clone returns a copy of s that shares no uniform or sampler storage with
// s. Textures are shared: their texels are read when the primitives are
// drawn.
func (s *RenderStates) Clone() RenderStates {
	c := *s
	c.Uniforms = s.Uniforms.clone()
	for i, smp := range s.Samplers {
		if smp != nil {
			cp := *smp
			c.Samplers[i] = &cp
		}
	}
	return c
}
