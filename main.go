package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene type: 'default' or 'mirror-box'")
	width := flag.Int("width", 0, "Image width (0 = scene default)")
	height := flag.Int("height", 0, "Image height (0 = scene default)")
	fov := flag.Float64("fov", 0, "Vertical field of view in degrees (0 = scene default)")
	maxDepth := flag.Int("depth", tracer.DefaultMaxDepth, "Maximum ray recursion depth")
	workers := flag.Int("workers", 0, "Parallel render workers (0 = CPU count)")
	format := flag.String("format", "png", "Output format: 'png' or 'ppm'")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default    - Mirror and glass spheres over a gray ground")
		fmt.Println("  mirror-box - Two facing mirrors exercising the recursion bound")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.<format>")
		return
	}

	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(*sceneType)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	config := renderConfig(selectedScene, *width, *height, *fov, *maxDepth, *workers)
	fmt.Printf("Rendering '%s' at %dx%d (fov %.1f, depth %d)...\n",
		*sceneType, config.Width, config.Height, config.FOV, config.Trace.MaxDepth)

	// Create output directory for this scene type
	outputDir := filepath.Join("output", *sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	r := renderer.NewRenderer(selectedScene.Spheres, config)

	startTime := time.Now()
	pixels, stats, err := r.RenderImage(context.Background())
	if err != nil {
		fmt.Printf("Render error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render completed in %v (%d pixels, %d workers, %.0f px/s)\n",
		time.Since(startTime), stats.TotalPixels, stats.NumWorkers, stats.PixelsPerSecond())

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, *format))

	if err := writeImage(filename, *format, pixels, config.Width, config.Height); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene creates a built-in scene by name
func createScene(sceneType string) (*scene.Scene, error) {
	switch sceneType {
	case "default":
		return scene.NewDefaultScene(), nil
	case "mirror-box":
		return scene.NewMirrorBoxScene(), nil
	default:
		return nil, fmt.Errorf("unknown scene type: %q", sceneType)
	}
}

// renderConfig combines the scene's defaults with command line overrides
func renderConfig(s *scene.Scene, width, height int, fov float64, maxDepth, workers int) renderer.Config {
	config := renderer.DefaultConfig()
	config.Width = s.Width
	config.Height = s.Height
	config.FOV = s.FOV
	config.NumWorkers = workers
	config.Trace.MaxDepth = maxDepth

	if width > 0 {
		config.Width = width
	}
	if height > 0 {
		config.Height = height
	}
	if fov > 0 {
		config.FOV = fov
	}
	return config
}

// writeImage encodes the pixel buffer in the requested format
func writeImage(filename, format string, pixels []core.Vec3, width, height int) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	switch format {
	case "ppm":
		return renderer.WritePPM(file, pixels, width, height)
	case "png":
		img := renderer.BufferToRGBA(pixels, width, height)
		return png.Encode(file, img)
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}
