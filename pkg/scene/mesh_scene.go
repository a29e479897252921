package scene

import (
	_ "embed"
	"math"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/loaders"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

//go:embed assets/icosahedron.obj
var icosahedronOBJ string

// Mesh room dimensions
const (
	meshRoomWidth  = 1050.0
	meshRoomHeight = 600.0
	meshRoomDepth  = 800.0
	meshTargetSize = 300.0 // Largest extent of a mesh once placed in the room
)

// NewCornellMeshScene places the built-in icosahedron mesh in the mirror-floored room
func NewCornellMeshScene(opts Options, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	mesh, err := loaders.ParseOBJ(strings.NewReader(icosahedronOBJ))
	if err != nil {
		return nil, err
	}
	return NewMeshScene(mesh, opts, cameraOverrides...), nil
}

// NewOBJScene loads a Wavefront OBJ file and places it in the mirror-floored room
func NewOBJScene(filename string, opts Options, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	mesh, err := loaders.LoadOBJ(filename)
	if err != nil {
		return nil, err
	}
	return NewMeshScene(mesh, opts, cameraOverrides...), nil
}

// NewMeshScene creates a wide Cornell-style room with a mirror floor and places the mesh,
// scaled to fit and turned 40 degrees about Y, on the floor at the center of the room
func NewMeshScene(mesh *loaders.MeshData, opts Options, cameraOverrides ...geometry.CameraConfig) *Scene {
	centerX := meshRoomWidth / 2
	centerY := meshRoomHeight / 2

	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(centerX, centerY, -800),
		LookAt:        core.NewVec3(centerX, centerY, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         700,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		FocusDistance: 10.0,
	}

	s := newScene(defaultCameraConfig, SamplingConfig{SamplesPerPixel: 50, MaxDepth: 20}, skyBackground(), cameraOverrides...)

	m := newCornellMaterials()
	light := material.NewEmissive(core.NewVec3(15, 15, 15))
	mirror := material.NewMetal(core.NewVec3(0.4, 0.4, 0.4), 0.01)

	s.Add(
		// Right wall (green)
		geometry.NewQuad(core.NewVec3(meshRoomWidth, 0, 0), core.NewVec3(0, meshRoomHeight, 0), core.NewVec3(0, 0, meshRoomDepth), m.green),
		// Left wall (red)
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, meshRoomHeight, 0), core.NewVec3(0, 0, meshRoomDepth), m.red),
		// Ceiling light
		geometry.NewQuad(core.NewVec3(centerX+260, meshRoomHeight-1, centerY+105), core.NewVec3(-520, 0, 0), core.NewVec3(0, 0, -210), light),
		// Mirror floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(meshRoomWidth, 0, 0), core.NewVec3(0, 0, meshRoomDepth), mirror),
		// Ceiling
		geometry.NewQuad(core.NewVec3(meshRoomWidth, meshRoomHeight, meshRoomDepth), core.NewVec3(-meshRoomWidth, 0, 0), core.NewVec3(0, 0, -meshRoomDepth), m.white),
		// Back wall
		geometry.NewQuad(core.NewVec3(0, 0, meshRoomDepth), core.NewVec3(meshRoomWidth, 0, 0), core.NewVec3(0, meshRoomHeight, 0), m.white),
	)

	if mesh.TriangleCount() == 0 {
		opts.logf("mesh scene: mesh has no triangles")
		return s
	}

	triangles := geometry.NewTriangleMesh(fitVertices(mesh.Vertices, meshTargetSize), mesh.Faces,
		material.NewMetal(core.NewVec3(0.1, 0.1, 0.1), 0.0), nil)
	opts.logf("mesh scene: %d triangles", triangles.GetTriangleCount())

	s.Add(geometry.NewTranslate(
		geometry.NewRotateY(triangles, 40),
		core.NewVec3(centerX, 0, meshRoomDepth/2),
	))

	return s
}

// fitVertices scales vertices uniformly so the largest extent equals size, centered on the
// origin in X and Z with the lowest point at y=0
func fitVertices(vertices []core.Vec3, size float64) []core.Vec3 {
	bbox := core.NewAABBFromPoints(vertices...)

	extent := math.Max(bbox.X.Size(), math.Max(bbox.Y.Size(), bbox.Z.Size()))
	scale := 1.0
	if extent > 0 {
		scale = size / extent
	}

	center := bbox.Center()
	offset := core.NewVec3(center.X, bbox.Y.Min, center.Z)

	fitted := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		fitted[i] = v.Subtract(offset).Multiply(scale)
	}
	return fitted
}
