package core

import (
	"math"
	"math/rand"
	"testing"
)

// bruteForceSlabHit intersects a ray with a box by clipping [tMin, tMax] axis by axis,
// resolving parallel axes with an explicit containment check
func bruteForceSlabHit(box AABB, ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		slab := box.AxisInterval(axis)
		o := ray.Origin.Axis(axis)
		d := ray.Direction.Axis(axis)
		if d == 0 {
			if o < slab.Min || o > slab.Max {
				return false
			}
			continue
		}
		lo := (slab.Min - o) / d
		hi := (slab.Max - o) / d
		tMin = math.Max(tMin, math.Min(lo, hi))
		tMax = math.Min(tMax, math.Max(lo, hi))
		if tMax <= tMin {
			return false
		}
	}
	return true
}

func TestAABB_PadsDegenerateAxes(t *testing.T) {
	// A flat box in the XZ plane
	box := NewAABBFromPoints(NewVec3(0, 1, 0), NewVec3(2, 1, 3))

	if box.Y.Size() < minAABBExtent {
		t.Errorf("Expected Y to be padded to at least %v, got %v", minAABBExtent, box.Y.Size())
	}
	if math.Abs(box.Y.Min+box.Y.Max-2) > 1e-12 {
		t.Errorf("Padding should be symmetric around y=1, got %v", box.Y)
	}
	if box.X.Size() != 2 || box.Z.Size() != 3 {
		t.Errorf("Non-degenerate axes should be untouched, got %v", box)
	}
}

func TestAABB_Hit_AxisAlignedRays(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	flat := NewAABBFromPoints(NewVec3(-1, 0, -1), NewVec3(1, 0, 1))

	tests := []struct {
		name     string
		box      AABB
		ray      Ray
		expected bool
	}{
		{"through center", box, NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"pointing away", box, NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), false},
		{"parallel outside", box, NewRay(NewVec3(0, 2, -5), NewVec3(0, 0, 1)), false},
		{"parallel on max face", box, NewRay(NewVec3(0, 1, -5), NewVec3(0, 0, 1)), true},
		{"parallel on min face", box, NewRay(NewVec3(-1, 0, -5), NewVec3(0, 0, 1)), true},
		{"along an edge", box, NewRay(NewVec3(1, 1, -5), NewVec3(0, 0, 1)), true},
		{"in plane of flat box", flat, NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"on padded boundary", flat, NewRay(NewVec3(0, flat.Y.Max, -5), NewVec3(0, 0, 1)), true},
		{"just outside padding", flat, NewRay(NewVec3(0, flat.Y.Max+1e-6, -5), NewVec3(0, 0, 1)), false},
		{"across flat box", flat, NewRay(NewVec3(0, 5, 0), NewVec3(0, -1, 0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.box.Hit(tt.ray, NewInterval(0.001, math.Inf(1)))
			if got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
			if brute := bruteForceSlabHit(tt.box, tt.ray, 0.001, math.Inf(1)); brute != got {
				t.Errorf("Slab test disagrees with brute force: got %t, brute force %t", got, brute)
			}
		})
	}
}

func TestAABB_Hit_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	box := NewAABBFromPoints(NewVec3(-1, -2, -0.5), NewVec3(1.5, 2, 0.5))
	axes := []Vec3{NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)}

	for i := 0; i < 5000; i++ {
		origin := NewVec3(random.Float64()*6-3, random.Float64()*6-3, random.Float64()*6-3)
		// Snap some origins exactly onto box planes
		if i%4 == 0 {
			origin.Y = box.Y.Max
		}
		direction := axes[i%3]
		if i%2 == 1 {
			direction = direction.Negate()
		}
		ray := NewRay(origin, direction)

		got := box.Hit(ray, NewInterval(0, 100))
		expected := bruteForceSlabHit(box, ray, 0, 100)
		if got != expected {
			t.Fatalf("ray %v dir %v: expected %t, got %t", origin, direction, expected, got)
		}
	}
}

func TestAABB_UnionAndLongestAxis(t *testing.T) {
	a := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABBFromPoints(NewVec3(2, -1, 0), NewVec3(3, 0.5, 1))

	union := EmptyAABB.Union(a).Union(b)
	if union.Min() != NewVec3(0, -1, 0) || union.Max() != NewVec3(3, 1, 1) {
		t.Errorf("Unexpected union %v", union)
	}
	if union.LongestAxis() != 0 {
		t.Errorf("Expected X to be longest, got %d", union.LongestAxis())
	}

	cube := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if cube.LongestAxis() != 2 {
		t.Errorf("Ties should go to the later axis, got %d", cube.LongestAxis())
	}
	tieXY := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(2, 2, 1))
	if tieXY.LongestAxis() != 1 {
		t.Errorf("Expected Y for an X/Y tie, got %d", tieXY.LongestAxis())
	}
}

func TestAABB_Translate(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 2, 3)).Translate(NewVec3(10, 0, -1))
	if box.Min() != NewVec3(10, 0, -1) || box.Max() != NewVec3(11, 2, 2) {
		t.Errorf("Unexpected translated box %v", box)
	}
}
