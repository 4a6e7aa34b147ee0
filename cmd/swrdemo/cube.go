package main

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/flubbe/swr-sub001"
)

// Uniform locations used by cubeProgram.
const (
	uniformMVP   = 0
	uniformModel = 1
	uniformLight = 2
)

// cubeProgram draws a textured cube lit by a directional light. Each face
// is lit uniformly through a flat varying.
//
// Attributes: 0 position, 1 texture coordinate, 2 normal.
type cubeProgram struct{}

func (cubeProgram) PreLink(info *swr.LinkInfo) {
	info.Varyings = []swr.Interpolation{swr.Smooth, swr.Flat}
}

func (cubeProgram) VertexShader(in *swr.VertexInput, out *swr.Vertex) {
	mvp := in.Uniforms.Mat4(uniformMVP)
	model := in.Uniforms.Mat4(uniformModel)
	light := in.Uniforms.Vec3(uniformLight).Normalize()

	out.Position = mvp.Mul4x1(in.Attributes[0])
	n := in.Attributes[2]
	n[3] = 0
	normal := model.Mul4x1(n).Vec3().Normalize()
	k := 0.25 + 0.75*max(normal.Dot(light), 0)

	out.Varyings[0] = in.Attributes[1]
	out.Varyings[1] = mgl32.Vec4{k, k, k, 1}
}

func (cubeProgram) FragmentShader(f *swr.Fragment, out *swr.FragmentOutput) swr.FragmentResult {
	c := f.Sample(0, f.Varyings[0])
	k := f.Varyings[1].Value[0]
	out.Color[0] = mgl32.Vec4{c[0] * k, c[1] * k, c[2] * k, 1}
	return swr.Accept
}

// cubeFace lists the corners of a face counter-clockwise as seen from
// outside the cube.
type cubeFace struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}

var cubeFaces = []cubeFace{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
}

// mesh is an indexed triangle list with one slice per attribute.
type mesh struct {
	positions []mgl32.Vec4
	uvs       []mgl32.Vec4
	normals   []mgl32.Vec4
	indices   []uint32
}

func cubeMesh() mesh {
	uv := [4]mgl32.Vec4{{0, 1, 0, 0}, {1, 1, 0, 0}, {1, 0, 0, 0}, {0, 0, 0, 0}}
	var m mesh
	for _, f := range cubeFaces {
		base := uint32(len(m.positions))
		for i, c := range f.corners {
			m.positions = append(m.positions, c.Vec4(1))
			m.uvs = append(m.uvs, uv[i])
			m.normals = append(m.normals, f.normal.Vec4(0))
		}
		m.indices = append(m.indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// checkerImage returns a size x size image with checks x checks squares.
func checkerImage(size, checks int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 235, G: 200, B: 120, A: 255}
	dark := color.RGBA{R: 60, G: 90, B: 160, A: 255}
	cell := max(size/checks, 1)
	for y := range size {
		for x := range size {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
