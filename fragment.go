package swr

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/flubbe/swr-sub001/internal/blend"
	"github.com/flubbe/swr-sub001/internal/color"
)

// shade runs the per-fragment pipeline for the fragment in p.frag at pixel
// (x, y): scissor, depth test, fragment shader, alpha test, blend and color
// write, depth write.
func (p *pipeline) shade(s *RenderStates, x, y int) {
	if !p.profile {
		p.process(s, x, y)
		return
	}
	start := time.Now()
	p.process(s, x, y)
	p.stats.Cycles += time.Since(start)
}

func (p *pipeline) process(s *RenderStates, x, y int) {
	p.stats.Count++

	if s.Scissor {
		sb := p.scissor
		if x < sb.Min.X || x >= sb.Max.X || y < sb.Min.Y || y >= sb.Max.Y {
			p.stats.DiscardScissor++
			return
		}
	}

	di := y*p.depth.width + x
	z := p.frag.Coord[2]
	if s.DepthTest && !compare(s.DepthFunc, z, p.depth.data[di]) {
		p.stats.DiscardDepth++
		return
	}

	prog := s.Program
	p.out = FragmentOutput{Depth: z}
	if prog.program.FragmentShader(&p.frag, &p.out) == Discard {
		p.stats.DiscardShader++
		return
	}

	src := color.FromVec4(p.out.Color[0]).Clamp().Vec4()
	if s.AlphaTest && !compare(s.AlphaFunc, src[3], s.AlphaRef) {
		p.stats.DiscardAlpha++
		return
	}

	ci := (y*p.color.width + x) * 4
	dst := p.color.pix[ci : ci+4 : ci+4]
	if s.Blend {
		bs := &s.BlendState
		src = blend.Apply(bs.Color, bs.Alpha, src, color.UnpackVec4(dst), bs.Constant)
		p.stats.Blending++
	} else {
		p.stats.Written++
	}
	writeColor(dst, src, s.ColorWriteMask)

	if s.DepthTest && s.DepthWrite {
		if prog.info.WritesDepth {
			z = min(max(p.out.Depth, 0), 1)
		}
		p.depth.data[di] = z
	}
}

// compare evaluates fn(a, b). Unknown functions behave like Less.
func compare(fn gputypes.CompareFunction, a, b float32) bool {
	switch fn {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionEqual:
		return a == b
	case gputypes.CompareFunctionLessEqual:
		return a <= b
	case gputypes.CompareFunctionGreater:
		return a > b
	case gputypes.CompareFunctionNotEqual:
		return a != b
	case gputypes.CompareFunctionGreaterEqual:
		return a >= b
	case gputypes.CompareFunctionAlways:
		return true
	default:
		return a < b
	}
}

// writeColor packs c into dst, keeping the channels excluded by mask.
func writeColor(dst []uint8, c mgl32.Vec4, mask gputypes.ColorWriteMask) {
	if mask == gputypes.ColorWriteMaskAll {
		color.PackVec4(dst, c)
		return
	}
	var px [4]uint8
	color.PackVec4(px[:], c)
	if mask&gputypes.ColorWriteMaskRed != 0 {
		dst[0] = px[0]
	}
	if mask&gputypes.ColorWriteMaskGreen != 0 {
		dst[1] = px[1]
	}
	if mask&gputypes.ColorWriteMaskBlue != 0 {
		dst[2] = px[2]
	}
	if mask&gputypes.ColorWriteMaskAlpha != 0 {
		dst[3] = px[3]
	}
}
