package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

// DefaultTileSize is the tile edge used for streamed renders
const DefaultTileSize = 32

// Server handles web requests for the diffuse raytracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server that also serves the JSON scenes in scenesDir
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string  `json:"scene"`       // Scene ID ("default" or "file:<name>")
	Width       int     `json:"width"`       // Image width; height follows the camera aspect ratio
	MaxSamples  int     `json:"maxSamples"`  // Maximum samples per pixel
	MaxPasses   int     `json:"maxPasses"`   // Maximum number of passes
	MaxDepth    int     `json:"maxDepth"`    // Maximum bounces per path
	Scatter     string  `json:"scatter"`     // Diffuse scatter policy
	Reflectance float64 `json:"reflectance"` // Fraction of light kept per bounce
	Seed        int64   `json:"seed"`        // Base seed for the tile streams
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scene and the scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		log.Printf("Error listing scenes: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	integratorConfig := sceneObj.IntegratorConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           sceneObj.SamplingConfig.Width,
			"height":          sceneObj.SamplingConfig.Height,
			"samplesPerPixel": sceneObj.SamplingConfig.SamplesPerPixel,
			"maxDepth":        integratorConfig.MaxDepth,
			"scatter":         integratorConfig.Policy.String(),
			"reflectance":     integratorConfig.Reflectance,
		},
		"sceneFile": sceneObj.ToFile(),
		"limits": map[string]interface{}{
			"width":       map[string]int{"min": widthLimit.min, "max": widthLimit.max},
			"maxSamples":  map[string]int{"min": samplesLimit.min, "max": samplesLimit.max},
			"maxPasses":   map[string]int{"min": passesLimit.min, "max": passesLimit.max},
			"maxDepth":    map[string]int{"min": depthLimit.min, "max": depthLimit.max},
			"reflectance": map[string]float64{"min": 0.01, "max": 1},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

type intLimit struct{ min, max int }

var (
	widthLimit   = intLimit{16, 2000}
	samplesLimit = intLimit{1, 10000}
	passesLimit  = intLimit{1, 100}
	depthLimit   = intLimit{1, 500}
)

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	defaults := integrator.DefaultConfig()
	var err error
	if req.Width, err = parseIntParam(query, "width", 400, widthLimit.min, widthLimit.max); err != nil {
		return nil, err
	}
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", 50, samplesLimit.min, samplesLimit.max); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", 5, passesLimit.min, passesLimit.max); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", defaults.MaxDepth, depthLimit.min, depthLimit.max); err != nil {
		return nil, err
	}
	if req.Reflectance, err = parseFloatParam(query, "reflectance", defaults.Reflectance, 0.01, 1); err != nil {
		return nil, err
	}

	req.Scatter = defaults.Policy.String()
	if scatter := query.Get("scatter"); scatter != "" {
		if _, err := integrator.ParseScatterPolicy(scatter); err != nil {
			return nil, err
		}
		req.Scatter = scatter
	}

	req.Seed = 42
	if seed := query.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", seed)
		}
	}

	// Performance warning
	if req.Width > 800 && req.MaxSamples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
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
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves a scene ID. Arbitrary file paths are not accepted over HTTP.
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	if sceneName != "default" && !isFileSceneID(sceneName) {
		return nil, fmt.Errorf("unknown scene: %s", sceneName)
	}
	return scene.Load(sceneName, s.scenesDir)
}

func isFileSceneID(id string) bool {
	return strings.HasPrefix(id, "file:") && len(id) > len("file:")
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
