package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewDefaultScene creates the classic five-spheres-and-a-light scene: a
// huge gray ground sphere, a glass-and-mirror centerpiece, three mirror
// spheres around it, and one light high behind the camera's view.
func NewDefaultScene() *Scene {
	s := &Scene{
		Width:  640,
		Height: 480,
		FOV:    30.0,
	}

	// Ground: a sphere so large its visible cap reads as a flat floor
	s.AddSphere(core.NewVec3(0, -10004, -20), 10000, core.NewVec3(0.20, 0.20, 0.20), 0, 0)

	s.AddSphere(core.NewVec3(0, 0, -20), 4, core.NewVec3(1.00, 0.32, 0.36), 1, 0.5)
	s.AddSphere(core.NewVec3(5, -1, -15), 2, core.NewVec3(0.90, 0.76, 0.46), 1, 0)
	s.AddSphere(core.NewVec3(5, 0, -25), 3, core.NewVec3(0.65, 0.77, 0.97), 1, 0)
	s.AddSphere(core.NewVec3(-5.5, 0, -15), 3, core.NewVec3(0.90, 0.90, 0.90), 1, 0)

	s.AddLight(core.NewVec3(0, 20, -30), 3, core.NewVec3(3, 3, 3))

	return s
}

// NewMirrorBoxScene creates two fully reflective spheres facing each other
// with a light off to the side, so primary rays bounce between the mirrors
// until the depth bound cuts the recursion off.
func NewMirrorBoxScene() *Scene {
	s := &Scene{
		Width:  400,
		Height: 300,
		FOV:    45.0,
	}

	s.AddSphere(core.NewVec3(0, 0, -8), 2, core.NewVec3(0.95, 0.95, 0.95), 1, 0)
	s.AddSphere(core.NewVec3(0, 0, -16), 2, core.NewVec3(0.95, 0.95, 0.95), 1, 0)
	s.AddSphere(core.NewVec3(0, -10004, -12), 10000, core.NewVec3(0.25, 0.25, 0.25), 0, 0)

	s.AddLight(core.NewVec3(15, 12, -12), 2, core.NewVec3(2.5, 2.5, 2.5))

	return s
}
