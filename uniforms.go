package swr

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms holds program constants indexed by location.
//
// Supported value types are mgl32.Mat4, mgl32.Vec4, mgl32.Vec3, mgl32.Vec2,
// float32 and int32. Accessors return the zero value for unset locations
// and for values of a different type.
type Uniforms []any

func (u Uniforms) clone() Uniforms {
	if u == nil {
		return nil
	}
	c := make(Uniforms, len(u))
	copy(c, u)
	return c
}

func (u Uniforms) get(loc int) any {
	if loc < 0 || loc >= len(u) {
		return nil
	}
	return u[loc]
}

// set stores v at loc, growing the slice as needed. Locations lie in
// [0, MaxUniforms).
func (u *Uniforms) set(loc int, v any) error {
	if loc < 0 || loc >= MaxUniforms {
		return fmt.Errorf("%w: %d", ErrInvalidLocation, loc)
	}
	switch v.(type) {
	case mgl32.Mat4, mgl32.Vec4, mgl32.Vec3, mgl32.Vec2, float32, int32:
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedUniform, v)
	}
	if loc >= len(*u) {
		grown := make(Uniforms, loc+1)
		copy(grown, *u)
		*u = grown
	}
	(*u)[loc] = v
	return nil
}

// Mat4 returns the matrix at loc, or the zero matrix.
func (u Uniforms) Mat4(loc int) mgl32.Mat4 {
	m, _ := u.get(loc).(mgl32.Mat4)
	return m
}

// Vec4 returns the vector at loc, or the zero vector.
func (u Uniforms) Vec4(loc int) mgl32.Vec4 {
	v, _ := u.get(loc).(mgl32.Vec4)
	return v
}

// Vec3 returns the vector at loc, or the zero vector.
func (u Uniforms) Vec3(loc int) mgl32.Vec3 {
	v, _ := u.get(loc).(mgl32.Vec3)
	return v
}

// Vec2 returns the vector at loc, or the zero vector.
func (u Uniforms) Vec2(loc int) mgl32.Vec2 {
	v, _ := u.get(loc).(mgl32.Vec2)
	return v
}

// Float returns the scalar at loc, or 0.
func (u Uniforms) Float(loc int) float32 {
	f, _ := u.get(loc).(float32)
	return f
}

// Int returns the integer at loc, or 0.
func (u Uniforms) Int(loc int) int32 {
	i, _ := u.get(loc).(int32)
	return i
}
