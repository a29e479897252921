package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const cornellSize = 555.0

// cornellCamera looks into the open front of the box
func cornellCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   1.0,
		VFov:          40.0,
		FocusDistance: 10.0,
	}
}

// cornellMaterials are the classic wall colors
type cornellMaterials struct {
	red, white, green material.Material
}

func newCornellMaterials() cornellMaterials {
	return cornellMaterials{
		red:   material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05)),
		white: material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)),
		green: material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15)),
	}
}

// addCornellWalls adds the five walls of the box; the front (z=0) stays open
func addCornellWalls(s *Scene, m cornellMaterials) {
	s.Add(
		// Right wall (green) - YZ plane at x=555
		geometry.NewQuad(core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, cornellSize, 0), core.NewVec3(0, 0, cornellSize), m.green),
		// Left wall (red) - YZ plane at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, cornellSize, 0), core.NewVec3(0, 0, cornellSize), m.red),
		// Floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, 0, cornellSize), m.white),
		// Ceiling
		geometry.NewQuad(core.NewVec3(cornellSize, cornellSize, cornellSize), core.NewVec3(-cornellSize, 0, 0), core.NewVec3(0, 0, -cornellSize), m.white),
		// Back wall
		geometry.NewQuad(core.NewVec3(0, 0, cornellSize), core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, cornellSize, 0), m.white),
	)
}

// cornellBlocks returns the tall and short boxes, rotated and moved into place
func cornellBlocks(white material.Material) (tall, short geometry.Hittable) {
	tall = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tall = geometry.NewRotateY(tall, 15)
	tall = geometry.NewTranslate(tall, core.NewVec3(265, 0, 295))

	short = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short = geometry.NewRotateY(short, -18)
	short = geometry.NewTranslate(short, core.NewVec3(130, 0, 65))

	return tall, short
}

// NewCornellScene creates a classic Cornell box scene with quad walls, a ceiling light and two rotated blocks
func NewCornellScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newScene(cornellCamera(), SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50}, darkBackground(), cameraOverrides...)

	m := newCornellMaterials()
	addCornellWalls(s, m)

	light := material.NewEmissive(core.NewVec3(15, 15, 15))
	s.Add(geometry.NewQuad(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), light))

	tall, short := cornellBlocks(m.white)
	s.Add(tall, short)

	return s
}

// NewCornellSmokeScene replaces the Cornell blocks with black and white smoke and widens the light
func NewCornellSmokeScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newScene(cornellCamera(), SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50}, darkBackground(), cameraOverrides...)

	m := newCornellMaterials()
	addCornellWalls(s, m)

	light := material.NewEmissive(core.NewVec3(7, 7, 7))
	s.Add(geometry.NewQuad(core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305), light))

	tall, short := cornellBlocks(m.white)
	s.Add(
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	return s
}
