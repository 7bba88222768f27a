package tracer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

func TestTrace_EmptyScene(t *testing.T) {
	background := DefaultConfig().Background

	rays := []struct {
		name string
		ray  core.Ray
	}{
		{"down -z", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))},
		{"up +y", core.NewRay(core.NewVec3(1, 2, 3), core.NewVec3(0, 1, 0))},
		{"diagonal", core.NewRay(core.NewVec3(-5, 0, 10), core.NewVec3(1, 1, 1).Normalize())},
	}

	for _, tt := range rays {
		t.Run(tt.name, func(t *testing.T) {
			for depth := 0; depth <= 10; depth++ {
				got := Trace(tt.ray, nil, depth)
				if got != background {
					t.Errorf("depth %d: expected background %v, got %v", depth, background, got)
				}
			}
		})
	}
}

func TestTrace_DirectlyVisibleLightReturnsEmission(t *testing.T) {
	emission := core.NewVec3(3, 2.5, 2)
	spheres := []*geometry.Sphere{
		geometry.NewLightSphere(core.NewVec3(0, 0, -10), 2, emission),
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := Trace(ray, spheres, 0)

	// The light's own diffuse term is zero (its normal faces away from its
	// center), so the result is exactly the emission.
	const tolerance = 1e-9
	if got.Subtract(emission).Length() > tolerance {
		t.Errorf("Expected emission %v, got %v", emission, got)
	}
}

// mirrorBounceScene builds two fully reflective spheres facing each other
// along -z with a light that illuminates their inner faces from the side.
// A ray fired between them bounces until the depth bound cuts it off.
func mirrorBounceScene() []*geometry.Sphere {
	white := core.NewVec3(0.95, 0.95, 0.95)
	return []*geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, white, 1, 0),  // inner face z=-6
		geometry.NewSphere(core.NewVec3(0, 0, -11), 1, white, 1, 0), // inner face z=-10
		geometry.NewLightSphere(core.NewVec3(0, 8, -8), 0.5, core.NewVec3(3, 3, 3)),
	}
}

func TestTrace_RecursionStopsAtMaxDepth(t *testing.T) {
	spheres := mirrorBounceScene()

	// Fired between the mirrors: hits the far sphere, reflects to the near
	// one, and so on. Every bounce is head-on, so fresnel is exactly 0.1
	// and each specular level scales the result by 0.1 * 0.95. The
	// recursion terminates with the diffuse shade of the inner face hit at
	// depth == MaxDepth, which is the same point for equal-parity depths.
	ray := core.NewRay(core.NewVec3(0, 0, -7), core.NewVec3(0, 0, -1))

	traceAtDepth := func(maxDepth int) core.Vec3 {
		config := DefaultConfig()
		config.MaxDepth = maxDepth
		return New(spheres, config).Trace(ray, 0)
	}

	r3 := traceAtDepth(3)
	r5 := traceAtDepth(5)

	if r3.Luminance() <= 0 {
		t.Fatalf("Expected positive radiance from the lit terminal face, got %v", r3)
	}

	// Two extra bounces attenuate by exactly (0.1 * 0.95)^2
	scale := math.Pow(0.1*0.95, 2)
	expected := r3.Multiply(scale)
	if r5.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected r5 = r3 * %g = %v, got %v", scale, expected, r5)
	}

	// The default configuration is the depth-5 trace
	if got := Trace(ray, spheres, 0); got != r5 {
		t.Errorf("Expected default trace %v to equal MaxDepth=5 trace %v", got, r5)
	}
}

func TestTrace_AtMaxDepthTakesDiffuseBranch(t *testing.T) {
	spheres := mirrorBounceScene()
	ray := core.NewRay(core.NewVec3(0, 0, -7), core.NewVec3(0, 0, -1))

	tr := New(spheres, DefaultConfig())

	// Starting at the depth bound, a fully reflective sphere must shade
	// diffusely: the result is the same whether it is allowed 0 further
	// bounces or arrived there naturally.
	config := DefaultConfig()
	config.MaxDepth = 0
	noBounces := New(spheres, config).Trace(ray, 0)

	atBound := tr.Trace(ray, DefaultMaxDepth)
	if atBound != noBounces {
		t.Errorf("Expected diffuse-only shading at max depth: got %v, want %v", atBound, noBounces)
	}
}

func TestTrace_ShadowOcclusion(t *testing.T) {
	surfaceColor := core.NewVec3(1, 0.5, 0.25)
	emission := core.NewVec3(3, 3, 3)

	shaded := geometry.NewSphere(core.NewVec3(0, 0, -10), 2, surfaceColor, 0, 0)
	light := geometry.NewLightSphere(core.NewVec3(0, 0, -2), 0.5, emission)
	occluder := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, core.NewVec3(0.5, 0.5, 0.5), 0, 0)

	// Tangent ray hitting the shaded sphere at (0, 0, -8), whose normal
	// points straight at the light.
	ray := core.NewRay(core.NewVec3(3, 0, -8), core.NewVec3(-1, 0, 0))

	t.Run("occluded", func(t *testing.T) {
		got := Trace(ray, []*geometry.Sphere{shaded, light, occluder}, 0)
		if got != (core.Vec3{}) {
			t.Errorf("Expected fully shadowed black, got %v", got)
		}
	})

	t.Run("unoccluded", func(t *testing.T) {
		got := Trace(ray, []*geometry.Sphere{shaded, light}, 0)

		// Normal and light direction align exactly, so the diffuse term is
		// surfaceColor * emission.
		expected := surfaceColor.MultiplyVec(emission)
		const tolerance = 1e-9
		if got.Subtract(expected).Length() > tolerance {
			t.Errorf("Expected %v, got %v", expected, got)
		}
		if got.Luminance() <= 0 {
			t.Errorf("Expected strictly positive diffuse term, got %v", got)
		}
	})
}

func TestTrace_GreenOnlyEmitterCastsNoLight(t *testing.T) {
	// Only the red emission channel marks a sphere as a light source;
	// a green-only emitter illuminates nothing.
	shaded := geometry.NewSphere(core.NewVec3(0, 0, -10), 2, core.NewVec3(1, 1, 1), 0, 0)
	greenEmitter := geometry.NewLightSphere(core.NewVec3(0, 0, -2), 0.5, core.NewVec3(0, 5, 0))

	ray := core.NewRay(core.NewVec3(3, 0, -8), core.NewVec3(-1, 0, 0))
	got := Trace(ray, []*geometry.Sphere{shaded, greenEmitter}, 0)

	if got != (core.Vec3{}) {
		t.Errorf("Expected no illumination from a green-only emitter, got %v", got)
	}
}

func TestTrace_TotalInternalReflectionNoNaN(t *testing.T) {
	glass := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, core.NewVec3(1, 1, 1), 0, 0.5)
	spheres := []*geometry.Sphere{glass}

	// From just inside the surface at a grazing exit angle: the refraction
	// discriminant goes negative, which is treated as total internal
	// reflection instead of producing a NaN direction.
	ray := core.NewRay(core.NewVec3(0.99, 0, 0), core.NewVec3(-0.01, 1, 0).Normalize())
	got := Trace(ray, spheres, 0)

	for _, c := range []float64{got.X, got.Y, got.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			t.Fatalf("Expected finite radiance under total internal reflection, got %v", got)
		}
	}
}

func TestTrace_NearestHitOrder(t *testing.T) {
	near := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, core.NewVec3(1, 0, 0), 0, 0)
	far := geometry.NewSphere(core.NewVec3(0, 0, -10), 1, core.NewVec3(0, 1, 0), 0, 0)
	light := geometry.NewLightSphere(core.NewVec3(0, 0, 20), 1, core.NewVec3(3, 3, 3))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// The near sphere wins regardless of declaration order
	a := Trace(ray, []*geometry.Sphere{near, far, light}, 0)
	b := Trace(ray, []*geometry.Sphere{far, near, light}, 0)

	if a != b {
		t.Errorf("Nearest-hit result depends on declaration order: %v vs %v", a, b)
	}
	if a.X <= 0 || a.Y != 0 {
		t.Errorf("Expected the red near sphere to be shaded, got %v", a)
	}
}

func TestTrace_InsideSphereUsesFarIntersection(t *testing.T) {
	// Ray origin inside a sphere with the center ahead: the near root is
	// behind the origin, so the far surface is the hit.
	glass := geometry.NewSphere(core.NewVec3(0, 0, -2), 5, core.NewVec3(0.2, 0.4, 0.6), 0, 0)
	light := geometry.NewLightSphere(core.NewVec3(0, 0, -20), 1, core.NewVec3(3, 3, 3))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := Trace(ray, []*geometry.Sphere{glass, light}, 0)

	// Hit the back wall from inside: the flipped normal faces the origin,
	// away from the light, so the diffuse term is zero, and the result is
	// not the background.
	if got == DefaultConfig().Background {
		t.Fatalf("Expected a hit from inside the sphere, got background")
	}
	if got != (core.Vec3{}) {
		t.Errorf("Expected black back wall, got %v", got)
	}
}

func TestMix(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"all a", 2, 8, 0, 2},
		{"all b", 2, 8, 1, 8},
		{"blend", 0, 1, 0.1, 0.1},
		{"midpoint", 4, 6, 0.5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mix(tt.a, tt.b, tt.t); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("mix(%g, %g, %g) = %g, want %g", tt.a, tt.b, tt.t, got, tt.expected)
			}
		})
	}
}
