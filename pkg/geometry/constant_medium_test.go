package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

func TestConstantMedium_Transmittance(t *testing.T) {
	// Slab of thickness L between z=0 and z=L
	const thickness = 2.0
	boundary := NewBox(core.NewVec3(-50, -50, 0), core.NewVec3(50, 50, thickness), DummyMaterial{})

	tests := []struct {
		name    string
		density float64
	}{
		{"thin", 0.1},
		{"medium", 0.5},
		{"dense", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			medium := NewConstantMedium(boundary, tt.density, core.NewVec3(1, 1, 1))
			sampler := core.NewSeededSampler(42)

			const samples = 100000
			passed := 0
			for i := 0; i < samples; i++ {
				ray := core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1))
				if _, isHit := medium.Hit(ray, defaultRange, sampler); !isHit {
					passed++
				}
			}

			fraction := float64(passed) / samples
			expected := math.Exp(-tt.density * thickness)
			if math.Abs(fraction-expected) > 0.01 {
				t.Errorf("Expected pass-through fraction %.4f, got %.4f", expected, fraction)
			}
		})
	}
}

func TestConstantMedium_HitInsideBoundary(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, 0), 1, DummyMaterial{})
	medium := NewConstantMedium(boundary, 5, core.NewVec3(0.2, 0.4, 0.6))
	sampler := core.NewSeededSampler(42)

	// Unnormalized direction: distances are measured along the ray, not in t
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 2))
	for i := 0; i < 1000; i++ {
		hit, isHit := medium.Hit(ray, defaultRange, sampler)
		if !isHit {
			continue
		}
		if hit.Point.Z < -1-1e-9 || hit.Point.Z > 1+1e-9 {
			t.Fatalf("Scatter point %v outside the boundary", hit.Point)
		}
		if _, ok := hit.Material.(*material.Isotropic); !ok {
			t.Fatalf("Expected isotropic phase function, got %T", hit.Material)
		}
		if !hit.FrontFace {
			t.Fatal("Medium hits are recorded as front face")
		}
	}
}

func TestConstantMedium_RayStartingInside(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, 0), 10, DummyMaterial{})
	medium := NewConstantMedium(boundary, 100, core.NewVec3(1, 1, 1))
	sampler := core.NewSeededSampler(1)

	// Dense medium: the scatter point should be right next to the origin
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	hit, isHit := medium.Hit(ray, defaultRange, sampler)
	if !isHit {
		t.Fatal("Expected scattering inside a dense medium")
	}
	if hit.T < defaultRange.Min || hit.T > 1 {
		t.Errorf("Expected scattering shortly after the origin, got t=%v", hit.T)
	}
}

func TestConstantMedium_MissesWhenBoundaryMissed(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, 0), 1, DummyMaterial{})
	medium := NewConstantMedium(boundary, 100, core.NewVec3(1, 1, 1))

	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	if _, isHit := medium.Hit(ray, defaultRange, core.NewSeededSampler(1)); isHit {
		t.Error("Expected miss when the ray never enters the boundary")
	}

	// Medium entirely beyond the queried range
	ray = core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	if _, isHit := medium.Hit(ray, core.NewInterval(0.001, 2), core.NewSeededSampler(1)); isHit {
		t.Error("Expected miss when the medium lies past the range")
	}

	if medium.BoundingBox() != boundary.BoundingBox() {
		t.Error("Medium bounding box should match its boundary")
	}
}
