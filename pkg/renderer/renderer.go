package renderer

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

// Config contains rendering configuration
type Config struct {
	Width      int           // Raster width in pixels
	Height     int           // Raster height in pixels
	FOV        float64       // Vertical field of view in degrees
	NumWorkers int           // Parallel workers (0 = use CPU count)
	Trace      tracer.Config // Tracing configuration
}

// DefaultConfig returns the reference renderer's values
func DefaultConfig() Config {
	return Config{
		Width:      640,
		Height:     480,
		FOV:        30.0,
		NumWorkers: 0,
		Trace:      tracer.DefaultConfig(),
	}
}

// Renderer drives the per-pixel image loop: it maps every raster
// coordinate to a camera ray, traces it, and stores the resulting color in
// a flat row-major buffer.
type Renderer struct {
	tracer *tracer.Tracer
	camera *Camera
	config Config
}

// NewRenderer creates a renderer for a fixed sphere list and configuration
func NewRenderer(spheres []*geometry.Sphere, config Config) *Renderer {
	return &Renderer{
		tracer: tracer.New(spheres, config.Trace),
		camera: NewCamera(config.Width, config.Height, config.FOV),
		config: config,
	}
}

// RenderImage renders the full scene and returns a flat row-major buffer
// of unclamped linear RGB values (pixel (x, y) at index y*width + x).
// Rows are rendered in parallel; the result is identical to a serial
// render because each pixel depends only on its own primary ray.
func (r *Renderer) RenderImage(ctx context.Context) ([]core.Vec3, RenderStats, error) {
	start := time.Now()
	pixels := make([]core.Vec3, r.config.Width*r.config.Height)

	pool := NewWorkerPool(r.config.NumWorkers, r.config.Height)
	pool.Start(func(y int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.renderRow(pixels, y)
		return nil
	})

	for y := 0; y < r.config.Height; y++ {
		pool.SubmitRow(y)
	}
	pool.Stop()

	stats := RenderStats{
		TotalPixels: len(pixels),
		NumWorkers:  pool.GetNumWorkers(),
	}
	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Err != nil && firstErr == nil {
			firstErr = result.Err
		}
		stats.TotalRows++
	}
	stats.Elapsed = time.Since(start)

	if firstErr != nil {
		return nil, stats, firstErr
	}
	return pixels, stats, nil
}

// renderRow traces every pixel of scanline y into the shared buffer.
// Rows are disjoint, so concurrent calls for distinct y are safe.
func (r *Renderer) renderRow(pixels []core.Vec3, y int) {
	rowStart := y * r.config.Width
	for x := 0; x < r.config.Width; x++ {
		ray := r.camera.GetRay(x, y)
		pixels[rowStart+x] = r.tracer.Trace(ray, 0)
	}
}

// RenderRGBA renders the scene and quantizes it to an 8-bit image
func (r *Renderer) RenderRGBA(ctx context.Context) (*image.RGBA, RenderStats, error) {
	pixels, stats, err := r.RenderImage(ctx)
	if err != nil {
		return nil, stats, err
	}

	return BufferToRGBA(pixels, r.config.Width, r.config.Height), stats, nil
}

// BufferToRGBA quantizes a flat row-major linear buffer to an 8-bit image
func BufferToRGBA(pixels []core.Vec3, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, vec3ToRGBA(pixels[y*width+x]))
		}
	}
	return img
}

// vec3ToRGBA quantizes an unclamped linear color to 8 bits per channel.
// Each channel maps through min(1, c) * 255 with no gamma correction,
// matching the reference renderer's linear output.
func vec3ToRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}

// RenderImage renders a scene with default tracing settings and returns
// the flat row-major linear RGB buffer. It is the standalone image-loop
// entry point for callers that manage their own encoding.
func RenderImage(spheres []*geometry.Sphere, width, height int, fovDegrees float64) []core.Vec3 {
	config := DefaultConfig()
	config.Width = width
	config.Height = height
	config.FOV = fovDegrees

	// Rendering only fails on cancellation, which context.Background cannot do
	pixels, _, _ := NewRenderer(spheres, config).RenderImage(context.Background())
	return pixels
}
