package core

import "math"

// minAABBExtent is the thinnest extent an AABB may have along any axis
const minAABBExtent = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis.
// Boxes built by the constructors are padded so that no axis is thinner than minAABBExtent.
type AABB struct {
	X, Y, Z Interval
}

var (
	// EmptyAABB encloses nothing and is the identity for Union
	EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}
	// UniverseAABB encloses all of space
	UniverseAABB = AABB{X: UniverseInterval, Y: UniverseInterval, Z: UniverseInterval}
)

// NewAABB creates an AABB from three axis intervals
func NewAABB(x, y, z Interval) AABB {
	return AABB{X: x, Y: y, Z: z}.padToMinimums()
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return EmptyAABB
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return NewAABB(
		NewInterval(min.X, max.X),
		NewInterval(min.Y, max.Y),
		NewInterval(min.Z, max.Z),
	)
}

// padToMinimums widens any axis thinner than minAABBExtent, symmetrically
func (aabb AABB) padToMinimums() AABB {
	if aabb.X.Size() < minAABBExtent {
		aabb.X = aabb.X.Expand(minAABBExtent)
	}
	if aabb.Y.Size() < minAABBExtent {
		aabb.Y = aabb.Y.Expand(minAABBExtent)
	}
	if aabb.Z.Size() < minAABBExtent {
		aabb.Z = aabb.Z.Expand(minAABBExtent)
	}
	return aabb
}

// AxisInterval returns the interval along axis 0=X, 1=Y, 2=Z
func (aabb AABB) AxisInterval(axis int) Interval {
	switch axis {
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	default:
		return aabb.X
	}
}

// Hit tests if a ray intersects with this AABB within rayT using the slab method
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		slab := aabb.AxisInterval(axis)
		origin := ray.Origin.Axis(axis)
		invDirection := 1.0 / ray.Direction.Axis(axis)

		// Ray is parallel to this slab: (bound - origin) * inf could be 0 * inf
		if math.IsInf(invDirection, 0) {
			if origin < slab.Min || origin > slab.Max {
				return false
			}
			continue
		}

		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > rayT.Min {
			rayT.Min = t0
		}
		if t1 < rayT.Max {
			rayT.Max = t1
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		X: MergeIntervals(aabb.X, other.X),
		Y: MergeIntervals(aabb.Y, other.Y),
		Z: MergeIntervals(aabb.Z, other.Z),
	}
}

// Translate returns the AABB displaced by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Shift(offset.X),
		Y: aabb.Y.Shift(offset.Y),
		Z: aabb.Z.Shift(offset.Z),
	}
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min().Add(aabb.Max()).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties go to the later axis.
func (aabb AABB) LongestAxis() int {
	if aabb.X.Size() > aabb.Y.Size() {
		if aabb.X.Size() > aabb.Z.Size() {
			return 0
		}
		return 2
	}
	if aabb.Y.Size() > aabb.Z.Size() {
		return 1
	}
	return 2
}

// IsEmpty returns true if any axis has min > max
func (aabb AABB) IsEmpty() bool {
	return aabb.X.Min > aabb.X.Max || aabb.Y.Min > aabb.Y.Max || aabb.Z.Min > aabb.Z.Max
}
