package swr

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/flubbe/swr-sub001/texture"
)

// Context is a small immediate-mode pipeline on top of a Rasterizer. It
// owns the render targets, tracks the current render states and bindings,
// runs the vertex shader, assembles and clips primitives and queues them.
//
// Primitives are drawn when Flush is called, and before any operation that
// changes the targets.
//
// Thread safety: Context is NOT safe for concurrent use.
type Context struct {
	color *ColorBuffer
	depth *DepthBuffer
	rast  *Rasterizer

	states RenderStates

	// snapshot is the copy of states handed to queued primitives. It is
	// dropped whenever states changes.
	snapshot *RenderStates

	attribs [MaxAttributes][]mgl32.Vec4
	verts   vertexArena

	clearColor mgl32.Vec4
	clearDepth float32
}

// NewContext creates a context with width x height targets.
func NewContext(width, height int, opts ...Option) (*Context, error) {
	cb, err := NewColorBuffer(width, height)
	if err != nil {
		return nil, err
	}
	db, err := NewDepthBuffer(width, height)
	if err != nil {
		return nil, err
	}
	r, err := NewRasterizer(cb, db, opts...)
	if err != nil {
		return nil, err
	}
	return &Context{
		color:      cb,
		depth:      db,
		rast:       r,
		states:     DefaultRenderStates(),
		clearDepth: 1,
	}, nil
}

// ColorBuffer returns the color target. Call Flush before reading it.
func (c *Context) ColorBuffer() *ColorBuffer { return c.color }

// DepthBuffer returns the depth target. Call Flush before reading it.
func (c *Context) DepthBuffer() *DepthBuffer { return c.depth }

// Rasterizer returns the underlying rasterizer.
func (c *Context) Rasterizer() *Rasterizer { return c.rast }

// States returns a copy of the current render states.
func (c *Context) States() RenderStates { return c.states.Clone() }

// Stats returns the rasterizer counters.
func (c *Context) Stats() Stats { return c.rast.Stats() }

// ResetCounters zeroes the rasterizer counters.
func (c *Context) ResetCounters() { c.rast.ResetCounters() }

// Flush draws all queued primitives.
func (c *Context) Flush() {
	c.rast.DrawPrimitives()
	c.verts.reset()
}

// Close flushes and stops the rasterizer workers.
func (c *Context) Close() {
	c.Flush()
	c.rast.Close()
}

func (c *Context) changed() {
	c.snapshot = nil
}

// current returns the render states for primitives queued now.
func (c *Context) current() *RenderStates {
	if c.snapshot == nil {
		s := c.states.Clone()
		c.snapshot = &s
	}
	return c.snapshot
}

// SetViewport flushes and resizes both targets. Their contents are cleared.
func (c *Context) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	c.Flush()
	if err := c.color.Resize(width, height); err != nil {
		return err
	}
	if err := c.depth.Resize(width, height); err != nil {
		return err
	}
	return c.rast.SetDimensions(width, height)
}

// SetClearColor sets the value used by ClearColorBuffer.
func (c *Context) SetClearColor(col mgl32.Vec4) { c.clearColor = col }

// SetClearDepth sets the value used by ClearDepthBuffer. It is clamped to
// [0,1].
func (c *Context) SetClearDepth(d float32) { c.clearDepth = min(max(d, 0), 1) }

// ClearColorBuffer flushes and fills the color target with the clear color.
func (c *Context) ClearColorBuffer() {
	c.Flush()
	c.color.Clear(c.clearColor)
}

// ClearDepthBuffer flushes and fills the depth target with the clear depth.
func (c *Context) ClearDepthBuffer() {
	c.Flush()
	c.depth.Clear(c.clearDepth)
}

// SetDepthTest enables or disables the depth test.
func (c *Context) SetDepthTest(enabled bool) {
	c.states.DepthTest = enabled
	c.changed()
}

// SetDepthFunc sets the depth comparison.
func (c *Context) SetDepthFunc(fn gputypes.CompareFunction) {
	c.states.DepthFunc = fn
	c.changed()
}

// SetDepthWrite enables or disables depth writes.
func (c *Context) SetDepthWrite(enabled bool) {
	c.states.DepthWrite = enabled
	c.changed()
}

// SetBlend enables or disables blending.
func (c *Context) SetBlend(enabled bool) {
	c.states.Blend = enabled
	c.changed()
}

// SetBlendFunc sets the blend equation.
func (c *Context) SetBlendFunc(b BlendState) {
	c.states.BlendState = b
	c.changed()
}

// SetCulling enables or disables face culling.
func (c *Context) SetCulling(enabled bool) {
	c.states.Culling = enabled
	c.changed()
}

// SetCullMode selects the faces removed by culling.
func (c *Context) SetCullMode(mode gputypes.CullMode) {
	c.states.CullMode = mode
	c.changed()
}

// SetFrontFace sets the winding of front faces in normalized device
// coordinates.
func (c *Context) SetFrontFace(ff gputypes.FrontFace) {
	c.states.FrontFace = ff
	c.changed()
}

// SetScissor enables the scissor test with box, or disables it when
// enabled is false. The box is in buffer coordinates, origin top-left.
func (c *Context) SetScissor(enabled bool, box image.Rectangle) {
	c.states.Scissor = enabled
	c.states.ScissorBox = box.Canon()
	c.changed()
}

// SetAlphaTest configures the alpha test.
func (c *Context) SetAlphaTest(enabled bool, fn gputypes.CompareFunction, ref float32) {
	c.states.AlphaTest = enabled
	c.states.AlphaFunc = fn
	c.states.AlphaRef = ref
	c.changed()
}

// SetPolygonMode sets how triangles are rasterized.
func (c *Context) SetPolygonMode(m PolygonMode) {
	c.states.PolygonMode = m
	c.changed()
}

// SetColorWriteMask selects the color channels written.
func (c *Context) SetColorWriteMask(mask gputypes.ColorWriteMask) {
	c.states.ColorWriteMask = mask
	c.changed()
}

// SetTexturing enables or disables sampler access from fragment shaders.
func (c *Context) SetTexturing(enabled bool) {
	c.states.Texturing = enabled
	c.changed()
}

// BindProgram links p and makes it current. On error the current program
// is left unchanged.
func (c *Context) BindProgram(p Program) (*LinkedProgram, error) {
	lp, err := Link(p)
	if err != nil {
		return nil, err
	}
	c.UseProgram(lp)
	return lp, nil
}

// UseProgram makes an already linked program current. nil unbinds.
func (c *Context) UseProgram(lp *LinkedProgram) {
	c.states.Program = lp
	c.changed()
}

// SetUniform stores v at loc.
func (c *Context) SetUniform(loc int, v any) error {
	if err := c.states.Uniforms.set(loc, v); err != nil {
		return err
	}
	c.changed()
	return nil
}

// BindSampler binds a copy of s to a texture unit. nil unbinds. Later
// changes to s take effect after binding it again. The texture itself is
// not copied; change its texels only after Flush.
func (c *Context) BindSampler(unit int, s *texture.Sampler2D) error {
	if unit < 0 || unit >= MaxTextureUnits {
		return fmt.Errorf("%w: %d", ErrInvalidTextureUnit, unit)
	}
	if s != nil {
		cp := *s
		s = &cp
	}
	c.states.Samplers[unit] = s
	c.changed()
	return nil
}

// BindAttribute binds a per-vertex attribute buffer to slot. nil unbinds;
// unbound slots read (0, 0, 0, 1). The buffer is read during draw calls
// only and may be changed afterwards.
func (c *Context) BindAttribute(slot int, data []mgl32.Vec4) error {
	if slot < 0 || slot >= MaxAttributes {
		return fmt.Errorf("%w: %d", ErrInvalidAttribute, slot)
	}
	c.attribs[slot] = data
	return nil
}

// vertexArena hands out vertices whose addresses stay valid until reset.
type vertexArena struct {
	slabs [][]Vertex
	cur   int
}

const slabSize = 1024

func (a *vertexArena) alloc() *Vertex {
	for {
		if a.cur == len(a.slabs) {
			a.slabs = append(a.slabs, make([]Vertex, 0, slabSize))
		}
		s := a.slabs[a.cur]
		if len(s) < cap(s) {
			s = s[:len(s)+1]
			a.slabs[a.cur] = s
			v := &s[len(s)-1]
			*v = Vertex{}
			return v
		}
		a.cur++
	}
}

func (a *vertexArena) reset() {
	for i := range a.slabs {
		a.slabs[i] = a.slabs[i][:0]
	}
	a.cur = 0
}
