package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestQuad_Hit(t *testing.T) {
	// Unit square in the XY plane at z=0, normal +Z
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), DummyMaterial{})

	tests := []struct {
		name       string
		origin     core.Vec3
		direction  core.Vec3
		expectHit  bool
		expectedUV core.Vec2
		front      bool
	}{
		{"center from front", core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1), true, core.NewVec2(0.5, 0.5), true},
		{"center from back", core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1), true, core.NewVec2(0.5, 0.5), false},
		{"corner region", core.NewVec3(0.9, 0.1, 1), core.NewVec3(0, 0, -1), true, core.NewVec2(0.9, 0.1), true},
		{"on edge", core.NewVec3(1, 0.5, 1), core.NewVec3(0, 0, -1), true, core.NewVec2(1, 0.5), true},
		{"outside", core.NewVec3(1.5, 0.5, 1), core.NewVec3(0, 0, -1), false, core.Vec2{}, false},
		{"parallel", core.NewVec3(0.5, 0.5, 1), core.NewVec3(1, 0, 0), false, core.Vec2{}, false},
		{"pointing away", core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, 1), false, core.Vec2{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := quad.Hit(core.NewRay(tt.origin, tt.direction), defaultRange, nil)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.UV.X-tt.expectedUV.X) > 1e-9 || math.Abs(hit.UV.Y-tt.expectedUV.Y) > 1e-9 {
				t.Errorf("Expected uv %v, got %v", tt.expectedUV, hit.UV)
			}
			if hit.FrontFace != tt.front {
				t.Errorf("Expected front face %t, got %t", tt.front, hit.FrontFace)
			}
			if hit.Normal.Dot(tt.direction) >= 0 {
				t.Errorf("Normal %v should face against the ray", hit.Normal)
			}
		})
	}
}

func TestQuad_Parallelogram(t *testing.T) {
	// Sheared quad: the point (0.2, 0.9) lies inside its bounding box but outside the parallelogram
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0), DummyMaterial{})

	if _, isHit := quad.Hit(core.NewRay(core.NewVec3(0.2, 0.9, 1), core.NewVec3(0, 0, -1)), defaultRange, nil); isHit {
		t.Error("Expected miss outside the parallelogram")
	}
	if _, isHit := quad.Hit(core.NewRay(core.NewVec3(1.2, 0.9, 1), core.NewVec3(0, 0, -1)), defaultRange, nil); !isHit {
		t.Error("Expected hit inside the parallelogram")
	}

	box := quad.BoundingBox()
	if box.X.Min != 0 || box.X.Max != 2 || box.Y.Min != 0 || box.Y.Max != 1 {
		t.Errorf("Expected box spanning both diagonals, got %v", box)
	}
	if box.Z.Size() <= 0 {
		t.Errorf("Flat quad should have a padded Z extent, got %v", box.Z)
	}
}

func TestNewBox_OutwardNormals(t *testing.T) {
	box := NewBox(core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1), DummyMaterial{})
	if box.Len() != 6 {
		t.Fatalf("Expected 6 faces, got %d", box.Len())
	}

	// Every face normal points away from the box center
	for i, object := range box.Objects() {
		face := object.(*Quad)
		center := face.Corner.Add(face.U.Multiply(0.5)).Add(face.V.Multiply(0.5))
		if face.Normal.Dot(center) <= 0 {
			t.Errorf("Face %d normal %v points inward", i, face.Normal)
		}
	}

	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}
	for _, dir := range directions {
		ray := core.NewRay(dir.Multiply(5), dir.Negate())
		hit, isHit := box.Hit(ray, defaultRange, nil)
		if !isHit {
			t.Fatalf("Expected hit from %v", dir)
		}
		if math.Abs(hit.T-4) > 1e-9 {
			t.Errorf("From %v: expected t=4, got %v", dir, hit.T)
		}
		if !hit.FrontFace || !vecNear(hit.Normal, dir, 1e-12) {
			t.Errorf("From %v: expected front face with normal %v, got %v (front=%t)", dir, dir, hit.Normal, hit.FrontFace)
		}
	}
}
