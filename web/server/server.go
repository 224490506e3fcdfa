package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/output"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// SineSceneName selects the calibration pattern instead of a ray traced scene
const SineSceneName = "sine"

// Server handles web requests for the mirror raytracer
type Server struct {
	port      int
	scenesDir string
	staticDir string
}

// NewServer creates a new web server; scenesDir holds JSON scene files
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir, staticDir: "static/"}
}

// FrameRequest represents a single frame or animation request from the client
type FrameRequest struct {
	Scene  string  `json:"scene"`  // Scene name or JSON file name
	Width  int     `json:"width"`  // Image width (0 = scene default)
	Height int     `json:"height"` // Image height (0 = scene default)
	Depth  int     `json:"depth"`  // Maximum reflection depth (0 = scene default)
	Time   float64 `json:"time"`   // Frame time, or first frame time for animations
	End    float64 `json:"end"`    // Last frame time (animations only)
	Frames int     `json:"frames"` // Number of frames (animations only)
	Thumb  int     `json:"thumb"`  // Fit output within this many pixels (0 = full size)
}

// Handler returns the HTTP handler serving the API and static files
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/api/animate", s.handleAnimate)
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
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in, file and calibration scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes(s.scenesDir, renderer.NewDefaultLogger())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	scenes = append(scenes, scene.SceneInfo{
		ID:          SineSceneName,
		DisplayName: "Sine Pattern",
		Description: "Scrolling red/blue calibration pattern",
		Type:        "builtin",
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scenes)
}

// handleFrame renders one frame and responds with a PNG
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseFrameRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	rend, err := s.createRenderer(req, renderer.NopLogger{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	pixels, width, height, err := rend.Render(req.Time)
	if err != nil {
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusUnprocessableEntity)
		return
	}
	frame, err := core.NewFrame(pixels, width, height, req.Time)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := encodeFrame(frame, req.Thumb)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// parseFrameRequest parses request parameters
func (s *Server) parseFrameRequest(r *http.Request) (*FrameRequest, error) {
	req := &FrameRequest{}
	query := r.URL.Query()

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	} else {
		req.Scene = "default"
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 2, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 1, 50); err != nil {
		return nil, err
	}
	if req.Time, err = parseFloatParam(query, "t", 0, -1e6, 1e6); err != nil {
		return nil, err
	}
	if req.End, err = parseFloatParam(query, "end", req.Time+2*math.Pi, -1e6, 1e6); err != nil {
		return nil, err
	}
	if req.Frames, err = parseIntParam(query, "frames", 30, 1, 1000); err != nil {
		return nil, err
	}
	if req.Thumb, err = parseIntParam(query, "thumb", 0, 8, 2000); err != nil {
		return nil, err
	}

	if (req.Width == 0) != (req.Height == 0) {
		return nil, fmt.Errorf("width and height must be given together")
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Frames > 100 {
		log.Printf("Render warning: Large animation may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation.
// The default is returned unvalidated when the parameter is absent.
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
		if err != nil || math.IsNaN(parsed) {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createRenderer builds the renderer for a request
func (s *Server) createRenderer(req *FrameRequest, logger core.Logger) (core.Renderer, error) {
	if req.Scene == SineSceneName {
		return renderer.NewSineRenderer(req.Width, req.Height), nil
	}

	sc, err := scene.CreateNamed(req.Scene, s.scenesDir)
	if err != nil {
		return nil, err
	}

	rt := renderer.NewRaytracer(sc, req.Width, req.Height)
	rt.MergeConfig(renderer.Config{MaxDepth: req.Depth})
	rt.SetLogger(logger)
	return rt, nil
}

// encodeFrame encodes a frame as PNG, scaled down to fit within thumb pixels when thumb > 0
func encodeFrame(frame *core.Frame, thumb int) ([]byte, error) {
	if thumb > 0 {
		return output.EncodeImage(output.Thumbnail(frame, uint(thumb), uint(thumb)))
	}
	return output.EncodePNG(frame)
}

// frameToBase64PNG converts a frame to base64-encoded PNG
func frameToBase64PNG(frame *core.Frame, thumb int) (string, error) {
	data, err := encodeFrame(frame, thumb)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
