// Package swr is a software rasterizer: it turns clip-space points, lines
// and triangles into shaded pixels of an RGBA8 color buffer and a float32
// depth buffer.
//
// # Overview
//
// The package has two layers. Rasterizer is the back end: it takes vertices
// that have already been transformed and clipped, scan converts them and
// runs the per-fragment pipeline. Context is a small immediate-mode front
// end on top of it that tracks render states, runs vertex shaders, clips
// against the view volume and queues the results.
//
// # Quick Start
//
//	ctx, err := swr.NewContext(640, 480)
//	if err != nil {
//	    return err
//	}
//	defer ctx.Close()
//
//	if _, err := ctx.BindProgram(myProgram{}); err != nil {
//	    return err
//	}
//	ctx.BindAttribute(0, positions)
//	ctx.SetDepthTest(true)
//	ctx.ClearColorBuffer()
//	ctx.ClearDepthBuffer()
//	ctx.DrawArrays(gputypes.PrimitiveTopologyTriangleList, 0, len(positions))
//	ctx.Flush()
//
//	img := ctx.ColorBuffer().ToImage()
//
// # Fragment Pipeline
//
// Every covered sample runs through the following stages, in order. A
// fragment rejected by a stage increments exactly one discard counter and
// leaves both buffers untouched:
//
//   - scissor test
//   - depth test against the interpolated depth
//   - fragment shader (may discard)
//   - alpha test
//   - blend or plain write, restricted to the color write mask
//   - depth write
//
// # Coordinate System
//
// Normalized device coordinates are y-up; buffer coordinates have the origin
// at the top-left pixel and y increases down. Window depth maps z in [-1,1]
// to [0,1]. Pixels are sampled at their center unless WithPixelCenter says
// otherwise.
//
// # Rasterization Rules
//
// Triangle vertices are snapped to 1/64 pixel and tested with exact integer
// edge functions under a top-left fill rule, so triangles sharing an edge
// cover every pixel on it exactly once. Triangles are traversed in 2x2 pixel
// blocks; varyings are evaluated for the whole block so fragment shaders get
// finite-difference derivatives.
package swr
