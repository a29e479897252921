package scene

import (
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/loaders"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// EarthTextureFile is the equirectangular image wrapped around the globe scenes
const EarthTextureFile = "earthmap.jpg"

// outdoorCamera is the shared view of the texture showcase scenes
func outdoorCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         500,
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		FocusDistance: 10.0,
	}
}

// loadImageTexture loads an sRGB image from the asset directory as a linear texture
func loadImageTexture(opts Options, name string) (*material.ImageTexture, error) {
	data, err := loaders.LoadImage(opts.assetPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", name, err)
	}
	opts.logf("loaded texture %s (%dx%d)", name, data.Width, data.Height)
	return material.NewImageTextureFromSRGB(data.Width, data.Height, data.Pixels), nil
}

// NewCheckeredSpheresScene creates two spheres sharing one solid checker texture
func NewCheckeredSpheresScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newScene(outdoorCamera(), SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}, skyBackground(), cameraOverrides...)

	checker := material.NewTexturedLambertian(
		material.NewCheckerColors(1.0, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1, 0), 1, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	return s
}

// NewEarthScene creates a globe textured with the earth image from the asset directory
func NewEarthScene(opts Options, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := outdoorCamera()
	cameraConfig.Center = core.NewVec3(0, 0, 12)

	s := newScene(cameraConfig, SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}, skyBackground(), cameraOverrides...)

	earth, err := loadImageTexture(opts, EarthTextureFile)
	if err != nil {
		return nil, err
	}
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earth)))

	return s, nil
}

// NewPerlinSpheresScene creates a marble sphere on a marble ground
func NewPerlinSpheresScene(opts Options, cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newScene(outdoorCamera(), SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}, skyBackground(), cameraOverrides...)
	addMarbleSpheres(s, opts)
	return s
}

// NewSimpleLightScene lights the marble spheres with an emissive sphere and an emissive quad
func NewSimpleLightScene(opts Options, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := outdoorCamera()
	cameraConfig.Center = core.NewVec3(26, 3, 6)
	cameraConfig.LookAt = core.NewVec3(0, 2, 0)

	s := newScene(cameraConfig, SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}, darkBackground(), cameraOverrides...)
	addMarbleSpheres(s, opts)

	light := material.NewEmissive(core.NewVec3(4, 4, 4))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), light),
	)

	return s
}

func addMarbleSpheres(s *Scene, opts Options) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(material.NewPerlin(opts.random()), 4))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
}

// NewQuadsScene creates five colored quads facing the camera from the sides of a cube,
// the back one carrying the earth texture
func NewQuadsScene(opts Options, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0, 9),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         500,
		AspectRatio:   1.0,
		VFov:          80.0,
		FocusDistance: 10.0,
	}

	s := newScene(defaultCameraConfig, SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}, skyBackground(), cameraOverrides...)

	earth, err := loadImageTexture(opts, EarthTextureFile)
	if err != nil {
		return nil, err
	}

	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	s.Add(
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), material.NewTexturedLambertian(earth)),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)

	return s, nil
}
