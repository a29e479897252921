package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewBouncingSpheresScene creates a 23x23 grid of small randomized spheres around three
// large ones. Diffuse spheres move upward during the exposure for motion blur, and the
// camera uses a wide aperture focused on the large spheres.
func NewBouncingSpheresScene(opts Options, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         500,
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		DefocusAngle:  0.6,
		FocusDistance: 10.0,
	}

	samplingConfig := SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene(defaultCameraConfig, samplingConfig, skyBackground(), cameraOverrides...)
	random := opts.random()
	randomColor := func() core.Vec3 {
		return core.NewVec3(random.Float64(), random.Float64(), random.Float64())
	}

	checker := material.NewCheckerColors(1.0, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	spheres := geometry.NewHittableList()
	for a := -11; a <= 11; a++ {
		for b := -11; b <= 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMaterial < 0.8:
				albedo := randomColor().MultiplyVec(randomColor())
				center1 := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				spheres.Add(geometry.NewMovingSphere(center, center1, 0.2, material.NewLambertian(albedo)))
			case chooseMaterial < 0.95:
				albedo := randomColor()
				fuzz := 0.2 * random.Float64()
				spheres.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				spheres.Add(geometry.NewSphere(center, 0.2, material.NewFrostedDielectric(1.5, 0.1)))
			}
		}
	}
	s.Add(geometry.NewBVHFromList(spheres))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	opts.logf("bouncing spheres: %d small spheres", spheres.Len())
	return s
}
