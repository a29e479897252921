package geometry

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// mediumExitOffset separates the exit search from the entry crossing
const mediumExitOffset = 0.0001

// ConstantMedium is a homogeneous participating medium (smoke, fog) filling a boundary shape.
//
// The boundary must be convex: a ray is assumed to cross it exactly twice, so media
// inside concave shapes or shapes with holes are rendered incorrectly.
type ConstantMedium struct {
	Boundary      Hittable
	Density       float64 // Scattering events per unit length
	PhaseFunction material.Material
}

// NewConstantMedium fills boundary with a medium of the given density and color
func NewConstantMedium(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewIsotropic(albedo),
	}
}

// NewTexturedConstantMedium fills boundary with a medium whose color comes from a texture
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.ColorSource) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
	}
}

// Hit samples an exponentially distributed free path inside the medium.
// It reports a hit at the scattering point, or a miss when the ray leaves the medium first.
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	entry, isHit := m.Boundary.Hit(ray, core.UniverseInterval, sampler)
	if !isHit {
		return nil, false
	}

	exit, isHit := m.Boundary.Hit(ray, core.NewInterval(entry.T+mediumExitOffset, math.Inf(1)), sampler)
	if !isHit {
		return nil, false
	}

	tEnter := math.Max(entry.T, rayT.Min)
	tExit := math.Min(exit.T, rayT.Max)
	if tEnter >= tExit {
		return nil, false
	}

	// Rays starting inside the medium begin scattering at their origin
	tEnter = math.Max(tEnter, 0)

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (tExit - tEnter) * rayLength
	hitDistance := -math.Log(sampler.Get1D()) / m.Density

	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := tEnter + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,                  // also arbitrary
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's bounding box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
