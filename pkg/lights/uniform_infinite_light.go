package lights

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// UniformInfiniteLight represents a uniform infinite area light (constant emission in all directions)
type UniformInfiniteLight struct {
	Emission core.Vec3
}

// NewUniformInfiniteLight creates a new uniform infinite light
func NewUniformInfiniteLight(emission core.Vec3) *UniformInfiniteLight {
	return &UniformInfiniteLight{Emission: emission}
}

// Emit returns the same color for every direction
func (l *UniformInfiniteLight) Emit(ray core.Ray) core.Vec3 {
	return l.Emission
}
