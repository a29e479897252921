package scene

import (
	"math/rand"
	"path/filepath"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/lights"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	Objects        *geometry.HittableList // Top-level objects in the scene
	Background     lights.Background      // Radiance returned for rays that escape the scene
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
	BVH            *geometry.BVH // Acceleration structure for ray-object intersection
}

// SamplingConfig contains a scene's default sampling settings
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Options carries the inputs scene constructors may need beyond camera overrides
type Options struct {
	AssetDir string      // Directory holding textures and meshes
	Seed     int64       // Seed for randomly generated scene content
	Logger   core.Logger // Optional; nil discards messages
}

// DefaultOptions returns options reading assets from ./assets
func DefaultOptions() Options {
	return Options{AssetDir: "assets", Seed: 42}
}

// assetPath resolves a file name against the asset directory
func (o Options) assetPath(name string) string {
	return filepath.Join(o.AssetDir, name)
}

// random returns a generator for scene content seeded from the options
func (o Options) random() *rand.Rand {
	return rand.New(rand.NewSource(o.Seed))
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Infof(format, args...)
	}
}

// newScene creates an empty scene, applying the first camera override on top of the defaults
func newScene(defaultCameraConfig geometry.CameraConfig, samplingConfig SamplingConfig, background lights.Background, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		Objects:        geometry.NewHittableList(),
		Background:     background,
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, object := range objects {
		s.Objects.Add(object)
	}
}

// Preprocess prepares the scene for rendering by building the BVH over its objects
func (s *Scene) Preprocess() {
	s.BVH = geometry.NewBVHFromList(s.Objects)
}

// Hit finds the closest intersection in the scene. Preprocess must have been called.
func (s *Scene) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	return s.BVH.Hit(ray, rayT, sampler)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, object := range s.Objects.Objects() {
		count += countPrimitives(object)
	}
	return count
}

// countPrimitives counts primitives in a single object, descending into composites
func countPrimitives(object geometry.Hittable) int {
	switch obj := object.(type) {
	case *geometry.TriangleMesh:
		return obj.GetTriangleCount()
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Objects() {
			count += countPrimitives(child)
		}
		return count
	case *geometry.BVH:
		if obj.Root == nil {
			return 0
		}
		return countPrimitives(obj.Root)
	case *geometry.BVHNode:
		if obj.Left == obj.Right {
			return countPrimitives(obj.Left)
		}
		return countPrimitives(obj.Left) + countPrimitives(obj.Right)
	case *geometry.Translate:
		return countPrimitives(obj.Object)
	case *geometry.RotateY:
		return countPrimitives(obj.Object)
	case *geometry.ConstantMedium:
		return countPrimitives(obj.Boundary)
	default:
		return 1
	}
}

// NewGroundQuad creates a large quad to replace infinite ground planes
// Creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, material material.Material) *geometry.Quad {
	// Create corner at bottom-left of the quad
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0) which normalizes to (0,1,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, material)
}

// skyBackground is the light blue background used by the outdoor scenes
func skyBackground() lights.Background {
	return lights.NewUniformInfiniteLight(core.NewVec3(0.7, 0.8, 1.0))
}

// darkBackground is used by scenes lit only by emissive objects
func darkBackground() lights.Background {
	return lights.NewUniformInfiniteLight(core.NewVec3(0, 0, 0))
}
