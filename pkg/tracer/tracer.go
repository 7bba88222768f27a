package tracer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

const (
	// DefaultMaxDepth bounds the reflection/refraction recursion. Depth is
	// the sole termination guarantee, so every recursive call increments it.
	DefaultMaxDepth = 5

	// bias offsets secondary ray origins along the surface normal to avoid
	// immediate self-intersection from floating-point rounding.
	bias = 1e-4

	// ior is the fixed index of refraction for transparent spheres
	ior = 1.1
)

// Config contains tracing configuration
type Config struct {
	MaxDepth   int       // Maximum recursion depth for specular rays
	Background core.Vec3 // Color returned when a ray hits nothing
}

// DefaultConfig returns the reference renderer's values: depth 5 and a
// uniform light-gray sky
func DefaultConfig() Config {
	return Config{
		MaxDepth:   DefaultMaxDepth,
		Background: core.NewVec3Uniform(2.0),
	}
}

// Tracer computes the radiance arriving along rays through a fixed scene.
// The sphere list is read-only for the tracer's lifetime, so a single
// Tracer may be shared by concurrent callers.
type Tracer struct {
	spheres []*geometry.Sphere
	config  Config
}

// New creates a tracer over an ordered sphere list
func New(spheres []*geometry.Sphere, config Config) *Tracer {
	return &Tracer{spheres: spheres, config: config}
}

// Trace computes the radiance for a ray using the default configuration.
// It is the standalone entry point for synthetic scenes in tests.
func Trace(ray core.Ray, spheres []*geometry.Sphere, depth int) core.Vec3 {
	return New(spheres, DefaultConfig()).Trace(ray, depth)
}

// mix linearly blends a and b by t
func mix(a, b, t float64) float64 {
	return b*t + a*(1-t)
}

// nearestHit finds the closest sphere the ray hits in front of its origin.
// Spheres are scanned in declared scene order and the first strictly
// smaller distance wins, so ties are deterministic.
func (tr *Tracer) nearestHit(ray core.Ray) (float64, *geometry.Sphere) {
	tNear := math.Inf(1)
	var nearSphere *geometry.Sphere

	for _, sphere := range tr.spheres {
		t0, t1, ok := sphere.Intersect(ray)
		if !ok {
			continue
		}
		// Origin inside this sphere: the near root is behind the origin,
		// so the far root is the effective hit distance.
		if t0 < 0 {
			t0 = t1
		}
		if t0 < tNear {
			tNear = t0
			nearSphere = sphere
		}
	}

	return tNear, nearSphere
}

// Trace returns the linear RGB radiance arriving along the ray. Recursion
// is bounded by the configured max depth.
func (tr *Tracer) Trace(ray core.Ray, depth int) core.Vec3 {
	tNear, sphere := tr.nearestHit(ray)
	if sphere == nil {
		return tr.config.Background
	}

	hitPoint := ray.At(tNear)
	normal := hitPoint.Subtract(sphere.Center).Normalize()

	// A positive dot product means the ray is exiting the sphere from
	// inside; flip the normal so it faces the ray.
	isInside := false
	if ray.Direction.Dot(normal) > 0 {
		normal = normal.Negate()
		isInside = true
	}

	var surfaceColor core.Vec3
	if depth < tr.config.MaxDepth && (sphere.Transparency > 0 || sphere.Reflection > 0) {
		surfaceColor = tr.shadeSpecular(ray, sphere, hitPoint, normal, isInside, depth)
	} else {
		surfaceColor = tr.shadeDiffuse(sphere, hitPoint, normal)
	}

	// A sphere is both a lit surface and, if emissive, a visible light
	return surfaceColor.Add(sphere.Emission)
}

// shadeSpecular handles reflective and transparent spheres: a mirror
// reflection ray, an optional Snell refraction ray, and a Fresnel blend of
// the two recursive results.
func (tr *Tracer) shadeSpecular(ray core.Ray, sphere *geometry.Sphere, hitPoint, normal core.Vec3, isInside bool, depth int) core.Vec3 {
	facingRatio := -ray.Direction.Dot(normal)
	fresnel := mix(math.Pow(1-facingRatio, 3), 1.0, 0.1)

	reflectDir := ray.Direction.Subtract(normal.Multiply(2 * ray.Direction.Dot(normal))).Normalize()
	reflectRay := core.NewRay(hitPoint.Add(normal.Multiply(bias)), reflectDir)
	reflection := tr.Trace(reflectRay, depth+1)

	var refraction core.Vec3
	if sphere.Transparency > 0 {
		eta := 1 / ior
		if isInside {
			eta = ior
		}
		cosi := -normal.Dot(ray.Direction)
		k := 1 - eta*eta*(1-cosi*cosi)
		// Negative discriminant means total internal reflection: the
		// refraction term is dropped instead of producing a NaN direction.
		if k >= 0 {
			refractDir := ray.Direction.Multiply(eta).
				Add(normal.Multiply(eta*cosi - math.Sqrt(k))).
				Normalize()
			refractRay := core.NewRay(hitPoint.Subtract(normal.Multiply(bias)), refractDir)
			refraction = tr.Trace(refractRay, depth+1)
		}
	}

	return reflection.Multiply(fresnel).
		Add(refraction.Multiply((1 - fresnel) * sphere.Transparency)).
		MultiplyVec(sphere.SurfaceColor)
}

// shadeDiffuse handles direct illumination: one hard shadow ray per
// emissive sphere, with a light fully blocked by any occluder.
func (tr *Tracer) shadeDiffuse(sphere *geometry.Sphere, hitPoint, normal core.Vec3) core.Vec3 {
	var surfaceColor core.Vec3

	for i, light := range tr.spheres {
		if !light.IsLight() {
			continue
		}

		lightDir := light.Center.Subtract(hitPoint).Normalize()
		shadowRay := core.NewRay(hitPoint.Add(normal.Multiply(bias)), lightDir)

		transmission := 1.0
		for j, other := range tr.spheres {
			if i == j {
				continue
			}
			if _, _, ok := other.Intersect(shadowRay); ok {
				transmission = 0
				break
			}
		}

		surfaceColor = surfaceColor.Add(
			sphere.SurfaceColor.
				Multiply(transmission * math.Max(0, normal.Dot(lightDir))).
				MultiplyVec(light.Emission))
	}

	return surfaceColor
}
