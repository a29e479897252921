package geometry

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Translate displaces a hittable by a fixed offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so that it appears moved by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// ToLocal maps a world-space point into the object's space
func (tr *Translate) ToLocal(p core.Vec3) core.Vec3 {
	return p.Subtract(tr.Offset)
}

// ToWorld maps an object-space point into world space
func (tr *Translate) ToWorld(p core.Vec3) core.Vec3 {
	return p.Add(tr.Offset)
}

// Hit moves the ray into object space, intersects, and moves the hit point back
func (tr *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	localRay := core.NewRayAtTime(tr.ToLocal(ray.Origin), ray.Direction, ray.Time)

	hit, isHit := tr.Object.Hit(localRay, rayT, sampler)
	if !isHit {
		return nil, false
	}

	hit.Point = tr.ToWorld(hit.Point)
	return hit, true
}

// BoundingBox returns the translated bounding box
func (tr *Translate) BoundingBox() core.AABB {
	return tr.bbox
}

// RotateY rotates a hittable about the world Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object so that it appears rotated by angle degrees about the Y axis
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Re-enclose all 8 rotated corners of the child's box
	box := object.BoundingBox()
	corners := make([]core.Vec3, 0, 8)
	for _, x := range []float64{box.X.Min, box.X.Max} {
		for _, y := range []float64{box.Y.Min, box.Y.Max} {
			for _, z := range []float64{box.Z.Min, box.Z.Max} {
				corners = append(corners, r.ToWorld(core.NewVec3(x, y, z)))
			}
		}
	}
	r.bbox = core.NewAABBFromPoints(corners...)

	return r
}

// ToLocal rotates a world-space vector by -angle into object space
func (r *RotateY) ToLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// ToWorld rotates an object-space vector by +angle into world space
func (r *RotateY) ToWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, intersects, and rotates the point and normal back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	localRay := core.NewRayAtTime(r.ToLocal(ray.Origin), r.ToLocal(ray.Direction), ray.Time)

	hit, isHit := r.Object.Hit(localRay, rayT, sampler)
	if !isHit {
		return nil, false
	}

	// Rotation preserves t and the front/back orientation
	hit.Point = r.ToWorld(hit.Point)
	hit.Normal = r.ToWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the axis-aligned box enclosing the rotated child box
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
