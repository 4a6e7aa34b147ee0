package swr

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// defaultAttribute is read from attribute slots without a buffer.
var defaultAttribute = mgl32.Vec4{0, 0, 0, 1}

// DrawArrays draws count consecutive vertices starting at first.
func (c *Context) DrawArrays(topology gputypes.PrimitiveTopology, first, count int) error {
	if first < 0 || count < 0 {
		return fmt.Errorf("%w: first %d, count %d", ErrIndexOutOfRange, first, count)
	}
	if err := c.checkDraw(topology, first+count-1); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	s := c.current()
	verts := make([]*Vertex, count)
	for i := range verts {
		verts[i] = c.runVertexShader(s, first+i)
	}
	c.assemble(s, topology, verts)
	return nil
}

// DrawElements draws the vertices referenced by indices. Each distinct
// index runs the vertex shader once per call.
func (c *Context) DrawElements(topology gputypes.PrimitiveTopology, indices []uint32) error {
	maxIndex := -1
	for _, i := range indices {
		maxIndex = max(maxIndex, int(i))
	}
	if err := c.checkDraw(topology, maxIndex); err != nil {
		return err
	}
	if len(indices) == 0 {
		return nil
	}
	s := c.current()
	cache := make(map[uint32]*Vertex, len(indices))
	verts := make([]*Vertex, len(indices))
	for k, i := range indices {
		v, ok := cache[i]
		if !ok {
			v = c.runVertexShader(s, int(i))
			cache[i] = v
		}
		verts[k] = v
	}
	c.assemble(s, topology, verts)
	return nil
}

// checkDraw validates a draw call reading vertices up to maxIndex.
func (c *Context) checkDraw(topology gputypes.PrimitiveTopology, maxIndex int) error {
	if c.states.Program == nil {
		Logger().Warn("draw call without program")
		return ErrNoProgram
	}
	switch topology {
	case gputypes.PrimitiveTopologyPointList,
		gputypes.PrimitiveTopologyLineList,
		gputypes.PrimitiveTopologyLineStrip,
		gputypes.PrimitiveTopologyTriangleList,
		gputypes.PrimitiveTopologyTriangleStrip:
	default:
		return fmt.Errorf("%w: %v", ErrInvalidTopology, topology)
	}
	for slot, buf := range c.attribs {
		if buf != nil && maxIndex >= len(buf) {
			return fmt.Errorf("%w: index %d, attribute %d has %d entries",
				ErrIndexOutOfRange, maxIndex, slot, len(buf))
		}
	}
	return nil
}

func (c *Context) runVertexShader(s *RenderStates, id int) *Vertex {
	in := VertexInput{VertexID: id, Uniforms: s.Uniforms}
	for slot, buf := range c.attribs {
		if buf != nil {
			in.Attributes[slot] = buf[id]
		} else {
			in.Attributes[slot] = defaultAttribute
		}
	}
	v := c.verts.alloc()
	v.PointSize = 1
	s.Program.program.VertexShader(&in, v)
	return v
}

// assemble groups shaded vertices into primitives, clips them and queues
// the results.
func (c *Context) assemble(s *RenderStates, topology gputypes.PrimitiveTopology, v []*Vertex) {
	switch topology {
	case gputypes.PrimitiveTopologyPointList:
		for _, p := range v {
			c.queuePoint(s, p)
		}
	case gputypes.PrimitiveTopologyLineList:
		for i := 0; i+1 < len(v); i += 2 {
			c.queueLine(s, v[i], v[i+1])
		}
	case gputypes.PrimitiveTopologyLineStrip:
		for i := 0; i+1 < len(v); i++ {
			c.queueLine(s, v[i], v[i+1])
		}
	case gputypes.PrimitiveTopologyTriangleList:
		for i := 0; i+2 < len(v); i += 3 {
			c.queueTriangle(s, v[i], v[i+1], v[i+2])
		}
	case gputypes.PrimitiveTopologyTriangleStrip:
		for i := 0; i+2 < len(v); i++ {
			if i&1 == 0 {
				c.queueTriangle(s, v[i], v[i+1], v[i+2])
			} else {
				c.queueTriangle(s, v[i+1], v[i], v[i+2])
			}
		}
	}
}

func (c *Context) queuePoint(s *RenderStates, v *Vertex) {
	if insideViewVolume(v.Position) {
		c.rast.AddPoint(s, v)
	}
}

func (c *Context) queueLine(s *RenderStates, v0, v1 *Vertex) {
	a, b, ok := c.clipLine(s, v0, v1)
	if ok {
		c.rast.AddLine(s, a, b)
	}
}

func (c *Context) queueTriangle(s *RenderStates, v0, v1, v2 *Vertex) {
	poly := c.clipTriangle(s, v0, v1, v2)
	if len(poly) < 3 {
		return
	}
	front := signedArea(poly) > 0
	if s.FrontFace == gputypes.FrontFaceCW {
		front = !front
	}
	for i := 1; i+1 < len(poly); i++ {
		c.rast.AddTriangle(s, front, poly[0], poly[i], poly[i+1])
	}
}

// signedArea returns twice the signed area of a polygon in normalized
// device coordinates. Counter-clockwise polygons are positive.
func signedArea(poly []*Vertex) float32 {
	var a float32
	for i, v := range poly {
		w := poly[(i+1)%len(poly)]
		x0, y0 := v.Position[0]/v.Position[3], v.Position[1]/v.Position[3]
		x1, y1 := w.Position[0]/w.Position[3], w.Position[1]/w.Position[3]
		a += x0*y1 - x1*y0
	}
	return a
}
