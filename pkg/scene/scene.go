package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene holds an ordered sphere list and the render defaults that suit it.
// The sphere order matters: the tracer scans it in declared order, so ties
// in the nearest-hit search resolve to the earliest sphere. Scenes are
// built once and read-only during rendering.
type Scene struct {
	Spheres []*geometry.Sphere
	Width   int
	Height  int
	FOV     float64
}

// AddSphere appends a sphere to the scene in declaration order
func (s *Scene) AddSphere(center core.Vec3, radius float64, surfaceColor core.Vec3, reflection, transparency float64) {
	s.Spheres = append(s.Spheres, geometry.NewSphere(center, radius, surfaceColor, reflection, transparency))
}

// AddLight appends an emissive sphere acting as a light source
func (s *Scene) AddLight(center core.Vec3, radius float64, emission core.Vec3) {
	s.Spheres = append(s.Spheres, geometry.NewLightSphere(center, radius, emission))
}
