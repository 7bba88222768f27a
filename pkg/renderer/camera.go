package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera maps raster coordinates to world-space rays through a pinhole
// projection. The camera sits at the world origin looking down -Z.
type Camera struct {
	invWidth  float64
	invHeight float64
	aspect    float64
	angle     float64 // tangent of half the vertical field of view
}

// NewCamera creates a pinhole camera for the given raster size and
// field of view in degrees
func NewCamera(width, height int, fovDegrees float64) *Camera {
	return &Camera{
		invWidth:  1.0 / float64(width),
		invHeight: 1.0 / float64(height),
		aspect:    float64(width) / float64(height),
		angle:     math.Tan(math.Pi * 0.5 * fovDegrees / 180.0),
	}
}

// GetRay generates the primary ray through the center of pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	xx := (2*((float64(x)+0.5)*c.invWidth) - 1) * c.angle * c.aspect
	yy := (1 - 2*((float64(y)+0.5)*c.invHeight)) * c.angle

	direction := core.NewVec3(xx, yy, -1).Normalize()
	return core.NewRay(core.NewVec3(0, 0, 0), direction)
}
