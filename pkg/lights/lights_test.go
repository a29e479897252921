package lights

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestGradientInfiniteLight_Emit(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1, 1, 1)
	light := NewGradientInfiniteLight(top, bottom)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 3, 0), top},
		{"straight down", core.NewVec3(0, -0.5, 0), bottom},
		{"horizon", core.NewVec3(2, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := light.Emit(core.NewRay(core.NewVec3(1, 2, 3), tt.direction))
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestUniformInfiniteLight_Emit(t *testing.T) {
	var background Background = NewUniformInfiniteLight(core.NewVec3(0.2, 0.3, 0.4))
	for _, dir := range []core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)} {
		if got := background.Emit(core.NewRay(core.Vec3{}, dir)); got != core.NewVec3(0.2, 0.3, 0.4) {
			t.Errorf("Direction %v: expected uniform color, got %v", dir, got)
		}
	}
}
