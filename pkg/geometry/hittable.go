package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Hittable is anything a ray can intersect: primitives, groups, transforms and BVH nodes
type Hittable interface {
	// Hit returns the nearest intersection with t strictly inside rayT.
	// The sampler is only consumed by stochastic primitives such as participating media.
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
