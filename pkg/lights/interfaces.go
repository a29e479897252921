package lights

import "github.com/df07/go-weekend-raytracer/pkg/core"

// Background is the radiance arriving along rays that escape the scene
type Background interface {
	// Emit evaluates emission in the direction of the given ray
	Emit(ray core.Ray) core.Vec3
}
