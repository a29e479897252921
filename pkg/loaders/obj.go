package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// MeshData contains the triangles read from a Wavefront OBJ file.
// Faces holds zero-based vertex indices, three per triangle.
type MeshData struct {
	Vertices []core.Vec3
	Faces    []int
}

// TriangleCount returns the number of triangles in the mesh
func (m *MeshData) TriangleCount() int {
	return len(m.Faces) / 3
}

// LoadOBJ reads vertex positions and faces from a Wavefront OBJ file
func LoadOBJ(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	mesh, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ParseOBJ reads vertex positions and faces from an OBJ stream.
// Polygons with more than three vertices are split into a triangle fan.
// Normals, texture coordinates, groups and materials are ignored.
func ParseOBJ(r io.Reader) (*MeshData, error) {
	mesh := &MeshData{}
	lineNum := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			if len(lineTokens) < 4 {
				return nil, fmt.Errorf("line %d: expected at least 3 vertices for face; got %d", lineNum, len(lineTokens)-1)
			}

			indices := make([]int, len(lineTokens)-1)
			for arg := range indices {
				index, err := parseFaceIndex(lineTokens[arg+1], len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: face argument %d: %w", lineNum, arg, err)
				}
				indices[arg] = index
			}

			for i := 1; i+1 < len(indices); i++ {
				mesh.Faces = append(mesh.Faces, indices[0], indices[i], indices[i+1])
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}
	return mesh, nil
}

// parseVec3 parses the three coordinates following a keyword
func parseVec3(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var coords [3]float64
	for i := range coords {
		coord, err := strconv.ParseFloat(lineTokens[i+1], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		coords[i] = coord
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseFaceIndex converts a face token ("7", "7/1", "7//3", "-1") to a zero-based vertex index.
// Negative indices count back from the most recently defined vertex.
func parseFaceIndex(token string, vertexCount int) (int, error) {
	vertexToken, _, _ := strings.Cut(token, "/")
	if vertexToken == "" {
		return 0, fmt.Errorf("missing vertex index in %q", token)
	}

	index, err := strconv.Atoi(vertexToken)
	if err != nil {
		return 0, fmt.Errorf("invalid vertex index %q: %w", vertexToken, err)
	}

	switch {
	case index > 0:
		index--
	case index < 0:
		index += vertexCount
	default:
		return 0, fmt.Errorf("vertex index 0 is not valid")
	}

	if index < 0 || index >= vertexCount {
		return 0, fmt.Errorf("vertex index %s out of range (%d vertices defined)", vertexToken, vertexCount)
	}
	return index, nil
}
