package material

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	return &Metal{Albedo: albedo, Fuzzness: core.Clamp(fuzzness, 0.0, 1.0)}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Roughness tilts the mirror normal rather than the reflected ray
	normal := perturbNormal(hit.Normal, m.Fuzzness, sampler)
	reflected := core.Reflect(rayIn.Direction, normal)

	scattered := core.NewRayAtTime(hit.Point, reflected, rayIn.Time)

	// Reflections pointing into the surface are absorbed
	scatters := reflected.Dot(normal) > 0

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, scatters
}

// perturbNormal offsets a unit normal by fuzz times a random unit vector and renormalizes it
func perturbNormal(normal core.Vec3, fuzz float64, sampler core.Sampler) core.Vec3 {
	if fuzz <= 0 {
		return normal
	}
	perturbed := normal.Add(core.RandomUnitVector(sampler).Multiply(fuzz))
	if perturbed.NearZero() {
		return normal
	}
	return perturbed.Normalize()
}
