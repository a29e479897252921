package material

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// turbulenceDepth is the number of noise octaves summed for marble turbulence
const turbulenceDepth = 7

// NoiseTexture is a marble-like pattern: a sine wave along Z phase-shifted by Perlin turbulence
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a marble texture over the given noise field
func NewNoiseTexture(noise *Perlin, scale float64) *NoiseTexture {
	return &NoiseTexture{Noise: noise, Scale: scale}
}

// Evaluate returns a gray level in [0, 1] at point
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	level := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.Noise.Turbulence(point, turbulenceDepth)))
	return core.NewVec3(level, level, level)
}
