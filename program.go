package swr

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/flubbe/swr-sub001/texture"
)

// Interpolation is the qualifier of a varying.
type Interpolation uint8

const (
	// Smooth varyings are interpolated perspective-correctly.
	Smooth Interpolation = iota

	// Flat varyings take the value of the provoking vertex, which is the
	// last vertex of the primitive.
	Flat

	// NoPerspective varyings are interpolated linearly in window space.
	NoPerspective
)

// String returns the qualifier name.
func (i Interpolation) String() string {
	switch i {
	case Smooth:
		return "Smooth"
	case Flat:
		return "Flat"
	case NoPerspective:
		return "NoPerspective"
	default:
		return "Unknown"
	}
}

// FragmentResult is returned by a fragment shader.
type FragmentResult uint8

const (
	// Accept passes the fragment on to the alpha test.
	Accept FragmentResult = iota

	// Discard drops the fragment.
	Discard
)

// LinkInfo is filled in by Program.PreLink to declare the program's
// interface.
type LinkInfo struct {
	// Varyings lists the qualifier of each varying the vertex shader
	// writes, in slot order.
	Varyings []Interpolation

	// ClipDistances is the number of clip distances the vertex shader
	// writes.
	ClipDistances int

	// ColorAttachments is the number of color outputs written by the
	// fragment shader.
	ColorAttachments int

	// WritesDepth reports that the fragment shader sets FragmentOutput.Depth.
	WritesDepth bool
}

// VertexInput is passed to Program.VertexShader.
type VertexInput struct {
	VertexID   int
	InstanceID int

	// Attributes holds the attribute values for this vertex. Slots without
	// a bound buffer read (0, 0, 0, 1).
	Attributes [MaxAttributes]mgl32.Vec4
	Uniforms   Uniforms
}

// Varying is an interpolated varying with its window-space derivatives.
type Varying struct {
	Value mgl32.Vec4
	DFdx  mgl32.Vec4
	DFdy  mgl32.Vec4
}

// Fragment is passed to Program.FragmentShader.
type Fragment struct {
	// Coord holds the window position of the sample, the interpolated
	// window depth and the interpolated 1/w.
	Coord       mgl32.Vec4
	FrontFacing bool

	// PointCoord is the position inside a point sprite in [0,1]². Zero for
	// lines and triangles.
	PointCoord mgl32.Vec2
	Varyings   []Varying
	Uniforms   Uniforms

	states *RenderStates
}

// Sampler returns the sampler bound to unit, or nil when texturing is
// disabled or unit is out of range.
func (f *Fragment) Sampler(unit int) *texture.Sampler2D {
	if f.states == nil || !f.states.Texturing || unit < 0 || unit >= MaxTextureUnits {
		return nil
	}
	return f.states.Samplers[unit]
}

// Sample reads the sampler bound to unit at the texture coordinate held in
// the first two components of v. The derivatives of v select the mipmap
// level. Returns opaque black when no sampler is available.
func (f *Fragment) Sample(unit int, v Varying) mgl32.Vec4 {
	return f.Sampler(unit).Sample(v.Value.Vec2(), texture.Footprint{
		DUVdx: v.DFdx.Vec2(),
		DUVdy: v.DFdy.Vec2(),
		X:     int(f.Coord[0]),
		Y:     int(f.Coord[1]),
	})
}

// FragmentOutput receives the fragment shader results. Depth holds the
// interpolated window depth on entry; it is written to the depth buffer
// only when the program declares WritesDepth.
type FragmentOutput struct {
	Color [MaxColorAttachments]mgl32.Vec4
	Depth float32
}

// Program is a shader program: a vertex shader, a fragment shader and the
// interface between them.
//
// In RasterizerTiled mode FragmentShader is called from several goroutines
// at once and must not modify shared state.
type Program interface {
	// PreLink declares the program interface.
	PreLink(info *LinkInfo)

	// VertexShader computes one output vertex.
	VertexShader(in *VertexInput, out *Vertex)

	// FragmentShader shades one fragment.
	FragmentShader(frag *Fragment, out *FragmentOutput) FragmentResult
}

// LinkedProgram is a Program whose interface has been validated.
type LinkedProgram struct {
	program Program
	info    LinkInfo
}

// Link validates the interface declared by p.
func Link(p Program) (*LinkedProgram, error) {
	if p == nil {
		return nil, ErrNilProgram
	}
	info := LinkInfo{ColorAttachments: 1}
	p.PreLink(&info)

	var err error
	switch {
	case len(info.Varyings) > MaxVaryings:
		err = &LinkError{Err: ErrTooManyVaryings, Got: len(info.Varyings), Limit: MaxVaryings}
	case info.ClipDistances < 0 || info.ClipDistances > MaxClipDistances:
		err = &LinkError{Err: ErrTooManyClipDistances, Got: info.ClipDistances, Limit: MaxClipDistances}
	case info.ColorAttachments < 0 || info.ColorAttachments > MaxColorAttachments:
		err = &LinkError{Err: ErrInvalidAttachment, Got: info.ColorAttachments, Limit: MaxColorAttachments}
	}
	if err != nil {
		Logger().Warn("program link failed", "err", err)
		return nil, err
	}
	info.Varyings = append([]Interpolation(nil), info.Varyings...)
	return &LinkedProgram{program: p, info: info}, nil
}

// Program returns the underlying program.
func (lp *LinkedProgram) Program() Program { return lp.program }

// Info returns the validated interface.
func (lp *LinkedProgram) Info() LinkInfo {
	info := lp.info
	info.Varyings = append([]Interpolation(nil), lp.info.Varyings...)
	return info
}
