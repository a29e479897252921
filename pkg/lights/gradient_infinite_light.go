package lights

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// GradientInfiniteLight blends from bottomColor (straight down) to topColor (straight up)
type GradientInfiniteLight struct {
	TopColor    core.Vec3
	BottomColor core.Vec3
}

// NewGradientInfiniteLight creates a new gradient infinite light
func NewGradientInfiniteLight(topColor, bottomColor core.Vec3) *GradientInfiniteLight {
	return &GradientInfiniteLight{TopColor: topColor, BottomColor: bottomColor}
}

// Emit interpolates linearly on the Y component of the unit ray direction
func (l *GradientInfiniteLight) Emit(ray core.Ray) core.Vec3 {
	direction := ray.Direction.Normalize()
	t := 0.5 * (direction.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return l.BottomColor.Multiply(1.0 - t).Add(l.TopColor.Multiply(t))
}
