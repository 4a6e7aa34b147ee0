package swr

import (
	"errors"
	"fmt"
)

// Configuration errors. They are reported by the call that caused them;
// nothing is reported from inside a draw.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("swr: invalid dimensions")

	// ErrDimensionMismatch is returned when the color buffer, the depth
	// buffer and the raster extent do not agree.
	ErrDimensionMismatch = errors.New("swr: color and depth buffer dimensions differ")

	// ErrNilProgram is returned when linking a nil program.
	ErrNilProgram = errors.New("swr: nil program")

	// ErrTooManyVaryings is returned when a program declares more than
	// MaxVaryings varyings.
	ErrTooManyVaryings = errors.New("swr: too many varyings")

	// ErrTooManyClipDistances is returned when a program declares more than
	// MaxClipDistances clip distances.
	ErrTooManyClipDistances = errors.New("swr: too many clip distances")

	// ErrInvalidAttachment is returned when a program writes a color
	// attachment that does not exist.
	ErrInvalidAttachment = errors.New("swr: invalid color attachment")

	// ErrNoProgram is returned by draw calls without a bound program.
	ErrNoProgram = errors.New("swr: no program bound")

	// ErrInvalidTopology is returned for an unsupported primitive topology.
	ErrInvalidTopology = errors.New("swr: unsupported primitive topology")

	// ErrIndexOutOfRange is returned when a draw call reads past the end of
	// a bound attribute buffer.
	ErrIndexOutOfRange = errors.New("swr: vertex index out of range")

	// ErrInvalidAttribute is returned for an attribute slot outside
	// [0, MaxAttributes).
	ErrInvalidAttribute = errors.New("swr: invalid attribute slot")

	// ErrInvalidLocation is returned for a uniform location outside
	// [0, MaxUniforms).
	ErrInvalidLocation = errors.New("swr: invalid uniform location")

	// ErrUnsupportedUniform is returned for a uniform value of an
	// unsupported type.
	ErrUnsupportedUniform = errors.New("swr: unsupported uniform type")

	// ErrInvalidTextureUnit is returned for a texture unit outside
	// [0, MaxTextureUnits).
	ErrInvalidTextureUnit = errors.New("swr: invalid texture unit")
)

// LinkError describes a program whose declared interface exceeds the
// pipeline limits. It wraps one of ErrTooManyVaryings,
// ErrTooManyClipDistances or ErrInvalidAttachment.
type LinkError struct {
	Err   error
	Got   int
	Limit int
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%v: declared %d, limit %d", e.Err, e.Got, e.Limit)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}
