package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Scene types
const (
	TypeBuiltIn = "builtin"
	TypeOBJ     = "obj"
)

const builtInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Unique identifier, used to select the scene
	Name        string // Scene name
	DisplayName string // Display name, includes the variant if any
	Description string // Optional description
	Group       string // Grouping category
	Type        string // TypeBuiltIn or TypeOBJ
	FilePath    string // Path to the OBJ file (obj type only)
	Variant     string // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string
	Scenes []SceneInfo
}

// sceneFactory builds a scene from options and an optional camera override
type sceneFactory func(opts Options, cameraOverrides ...geometry.CameraConfig) (*Scene, error)

// infallible adapts constructors that cannot fail
func infallible(build func(opts Options, cameraOverrides ...geometry.CameraConfig) *Scene) sceneFactory {
	return func(opts Options, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
		return build(opts, cameraOverrides...), nil
	}
}

type builtInScene struct {
	info  SceneInfo
	build sceneFactory
}

var builtInScenes = []builtInScene{
	{
		info: SceneInfo{ID: "default", Name: "Default Scene", Description: "Diffuse, hollow glass and fuzzy metal spheres on a ground sphere"},
		build: infallible(func(_ Options, overrides ...geometry.CameraConfig) *Scene {
			return NewDefaultScene(overrides...)
		}),
	},
	{
		info: SceneInfo{ID: "three-spheres", Name: "Three Spheres", Description: "Diffuse ground, mirror and glass spheres under a uniform sky"},
		build: infallible(func(_ Options, overrides ...geometry.CameraConfig) *Scene {
			return NewThreeSpheresScene(overrides...)
		}),
	},
	{
		info:  SceneInfo{ID: "bouncing-spheres", Name: "Bouncing Spheres", Description: "Random sphere field with motion blur and depth of field"},
		build: infallible(NewBouncingSpheresScene),
	},
	{
		info: SceneInfo{ID: "checkered-spheres", Name: "Checkered Spheres", Description: "Two spheres sharing a solid checker texture"},
		build: infallible(func(_ Options, overrides ...geometry.CameraConfig) *Scene {
			return NewCheckeredSpheresScene(overrides...)
		}),
	},
	{
		info:  SceneInfo{ID: "earth", Name: "Earth", Description: "Globe with an image texture (needs assets/" + EarthTextureFile + ")"},
		build: NewEarthScene,
	},
	{
		info:  SceneInfo{ID: "perlin-spheres", Name: "Perlin Spheres", Description: "Marble noise texture on a sphere and the ground"},
		build: infallible(NewPerlinSpheresScene),
	},
	{
		info:  SceneInfo{ID: "quads", Name: "Quads", Description: "Five colored quads (needs assets/" + EarthTextureFile + ")"},
		build: NewQuadsScene,
	},
	{
		info:  SceneInfo{ID: "simple-light", Name: "Simple Light", Description: "Marble spheres lit by an emissive sphere and quad"},
		build: infallible(NewSimpleLightScene),
	},
	{
		info: SceneInfo{ID: "cornell-box", Name: "Cornell Box", Description: "Cornell box with two rotated blocks"},
		build: infallible(func(_ Options, overrides ...geometry.CameraConfig) *Scene {
			return NewCornellScene(overrides...)
		}),
	},
	{
		info: SceneInfo{ID: "cornell-smoke", Name: "Cornell Smoke", Description: "Cornell box with black and white smoke blocks"},
		build: infallible(func(_ Options, overrides ...geometry.CameraConfig) *Scene {
			return NewCornellSmokeScene(overrides...)
		}),
	},
	{
		info:  SceneInfo{ID: "final", Name: "Final Scene", Description: "Every primitive, material and texture (needs assets/" + EarthTextureFile + ")"},
		build: NewFinalScene,
	},
	{
		info:  SceneInfo{ID: "cornell-mesh", Name: "Cornell Mesh", Description: "Triangle mesh in a mirror-floored room"},
		build: NewCornellMeshScene,
	},
}

// ListBuiltInScenes returns the scenes compiled into the program, in registration order
func ListBuiltInScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	for i, s := range builtInScenes {
		info := s.info
		info.DisplayName = info.Name
		info.Group = builtInGroup
		info.Type = TypeBuiltIn
		scenes[i] = info
	}
	return scenes
}

// ListOBJScenes scans assetDir for .obj files and returns them as scenes
func ListOBJScenes(assetDir string) ([]SceneInfo, error) {
	if _, err := os.Stat(assetDir); err != nil {
		// No asset directory, no mesh scenes
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(assetDir, "*.obj"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan asset directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseOBJMetadata(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse metadata for %s: %w", filePath, err)
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseOBJMetadata extracts metadata from the header comments of an OBJ file
func ParseOBJMetadata(filePath string) (SceneInfo, error) {
	// Extract filename without extension for fallback values
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          TypeOBJ + ":" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Mesh Scenes",
		Type:        TypeOBJ,
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	// Read header comments to extract metadata
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		key, value, found := strings.Cut(content, ":")
		value = strings.TrimSpace(value)
		if !found || value == "" {
			continue
		}

		switch key {
		case "Scene":
			sceneInfo.Name = value
		case "Variant":
			sceneInfo.Variant = value
		case "Description":
			sceneInfo.Description = value
		case "Group":
			sceneInfo.Group = value
		}
	}

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns both built-in and OBJ scenes, grouped by category.
// Built-in scenes come first, other groups follow alphabetically.
func ListAllScenes(assetDir string) ([]SceneGroup, error) {
	objScenes, err := ListOBJScenes(assetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list OBJ scenes: %w", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range append(ListBuiltInScenes(), objScenes...) {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	groups := []SceneGroup{{Name: builtInGroup, Scenes: groupMap[builtInGroup]}}
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return groups, nil
}

// NewSceneByID builds the scene registered under id. Ids of the form "obj:<name>" load
// <name>.obj from the asset directory.
func NewSceneByID(id string, opts Options, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if name, ok := strings.CutPrefix(id, TypeOBJ+":"); ok {
		return NewOBJScene(filepath.Join(opts.AssetDir, name+".obj"), opts, cameraOverrides...)
	}

	for _, s := range builtInScenes {
		if s.info.ID == id {
			scene, err := s.build(opts, cameraOverrides...)
			if err != nil {
				return nil, fmt.Errorf("failed to build scene %q: %w", id, err)
			}
			return scene, nil
		}
	}

	return nil, fmt.Errorf("unknown scene %q", id)
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
