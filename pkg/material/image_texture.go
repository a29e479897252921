package material

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// debugCyan is returned by textures that have no pixel data
var debugCyan = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major linear colors: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture from linear pixel colors
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromSRGB creates an image texture from display-encoded pixels in [0, 1],
// linearizing each channel by squaring it (the inverse of the square-root output encoding)
func NewImageTextureFromSRGB(width, height int, pixels []core.Vec3) *ImageTexture {
	linear := make([]core.Vec3, len(pixels))
	for i, p := range pixels {
		linear[i] = p.MultiplyVec(p)
	}
	return NewImageTexture(width, height, linear)
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering.
// UV coordinates outside [0, 1] are clamped to the image border.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return debugCyan
	}

	u := core.Clamp(uv.X, 0.0, 1.0)
	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	v := 1.0 - core.Clamp(uv.Y, 0.0, 1.0)

	// u or v of exactly 1 would index one past the last pixel
	x := core.Clamp(int(u*float64(t.Width)), 0, t.Width-1)
	y := core.Clamp(int(v*float64(t.Height)), 0, t.Height-1)

	return t.Pixels[y*t.Width+x]
}
