package swr

import "github.com/go-gl/mathgl/mgl32"

// Pipeline limits.
const (
	MaxVaryings         = 16
	MaxClipDistances    = 8
	MaxAttributes       = 16
	MaxTextureUnits     = 8
	MaxColorAttachments = 1
	MaxUniforms         = 256
)

// Vertex is the output of the vertex stage and the input of the rasterizer.
//
// Position is in clip space. The rasterizer reads vertices through the
// pointers passed to AddPoint, AddLine and AddTriangle and never modifies
// them; they must stay valid until DrawPrimitives returns.
type Vertex struct {
	Position      mgl32.Vec4
	PointSize     float32
	Varyings      [MaxVaryings]mgl32.Vec4
	ClipDistances [MaxClipDistances]float32
}
