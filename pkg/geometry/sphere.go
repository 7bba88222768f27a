package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere is the only primitive the tracer renders. Material behavior is
// fully determined by the four numeric fields, so there is no material
// interface: the shader branches on Transparency and Reflection directly.
type Sphere struct {
	Center       core.Vec3
	Radius       float64
	SqrRadius    float64 // always Radius * Radius
	SurfaceColor core.Vec3
	Emission     core.Vec3
	Transparency float64 // [0, 1]
	Reflection   float64 // [0, 1]
}

// NewSphere creates a non-emissive sphere with the given material scalars
func NewSphere(center core.Vec3, radius float64, surfaceColor core.Vec3, reflection, transparency float64) *Sphere {
	return &Sphere{
		Center:       center,
		Radius:       radius,
		SqrRadius:    radius * radius,
		SurfaceColor: surfaceColor,
		Transparency: transparency,
		Reflection:   reflection,
	}
}

// NewLightSphere creates an emissive sphere acting as a light source
func NewLightSphere(center core.Vec3, radius float64, emission core.Vec3) *Sphere {
	return &Sphere{
		Center:    center,
		Radius:    radius,
		SqrRadius: radius * radius,
		Emission:  emission,
	}
}

// IsLight reports whether the sphere acts as a light source during shading.
// Only the red channel is consulted, matching the reference renderer; a
// sphere emitting only green or blue casts no light.
func (s *Sphere) IsLight() bool {
	return s.Emission.X > 0
}

// Intersect tests the ray against the sphere and returns the two
// intersection distances (t0 <= t1) along the ray, or ok=false on a miss.
//
// Known limitation kept from the reference geometry: when the sphere
// center projects behind the ray origin (tca < 0) this reports a miss,
// even if the origin is inside the sphere and the far surface lies ahead.
func (s *Sphere) Intersect(ray core.Ray) (t0, t1 float64, ok bool) {
	// Vector from ray origin to sphere center
	l := s.Center.Subtract(ray.Origin)

	// Distance from ray origin to the center's projection onto the ray
	tca := l.Dot(ray.Direction)
	if tca < 0 {
		return 0, 0, false
	}

	// Squared distance from the center to the ray, perpendicular to it
	d2 := l.Dot(l) - tca*tca
	if d2 > s.SqrRadius {
		return 0, 0, false
	}

	// Distance from the projection point to either intersection
	thc := math.Sqrt(s.SqrRadius - d2)
	return tca - thc, tca + thc, true
}
