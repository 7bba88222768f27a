package server

import (
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a validated render request from the client
type RenderRequest struct {
	Scene    string  // Scene name (e.g., "default")
	Width    int     // Image width
	Height   int     // Image height
	FOV      float64 // Vertical field of view in degrees
	MaxDepth int     // Maximum ray recursion depth
	Workers  int     // Parallel workers (0 = CPU count)
}

// Start starts the web server
func (s *Server) Start() error {
	mux := http.NewServeMux()
	s.RegisterHandlers(mux)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, mux)
}

// RegisterHandlers attaches the API endpoints to a mux
func (s *Server) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj := s.createScene(req.Scene)
	if sceneObj == nil {
		http.Error(w, "Unknown scene: "+req.Scene, http.StatusBadRequest)
		return
	}

	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.FOV = req.FOV
	config.NumWorkers = req.Workers
	config.Trace.MaxDepth = req.MaxDepth

	// The request context cancels the render if the client disconnects
	startTime := time.Now()
	img, stats, err := renderer.NewRenderer(sceneObj.Spheres, config).RenderRGBA(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		return
	}
	log.Printf("Rendered '%s' at %dx%d in %v (%d workers)",
		req.Scene, req.Width, req.Height, time.Since(startTime), stats.NumWorkers)

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		log.Printf("Error encoding PNG response: %v", err)
	}
}

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	// Parse scene name (string parameter, validated against known scenes later)
	if sceneName := r.URL.Query().Get("scene"); sceneName != "" {
		req.Scene = sceneName
	} else {
		req.Scene = "default"
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(r.URL.Query(), "width", 640, 16, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(r.URL.Query(), "height", 480, 16, 2000); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(r.URL.Query(), "fov", 30.0, 1.0, 179.0); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(r.URL.Query(), "maxDepth", tracer.DefaultMaxDepth, 0, 32); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(r.URL.Query(), "workers", 0, 0, 256); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene creates a scene based on the scene name
func (s *Server) createScene(sceneName string) *scene.Scene {
	switch sceneName {
	case "default":
		return scene.NewDefaultScene()
	case "mirror-box":
		return scene.NewMirrorBoxScene()
	default:
		return nil
	}
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj := s.createScene(sceneName)
	if sceneObj == nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Unknown scene: " + sceneName})
		return
	}

	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":    sceneObj.Width,
			"height":   sceneObj.Height,
			"fov":      sceneObj.FOV,
			"maxDepth": tracer.DefaultMaxDepth,
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": 16, "max": 2000},
			"height":   map[string]int{"min": 16, "max": 2000},
			"fov":      map[string]float64{"min": 1, "max": 179},
			"maxDepth": map[string]int{"min": 0, "max": 32},
			"workers":  map[string]int{"min": 0, "max": 256},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
