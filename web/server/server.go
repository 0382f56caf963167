package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits shared by the render endpoints and the scene details response
const (
	minImageSize = 1
	maxImageSize = 2000
	minMaxDepth  = 0
	maxMaxDepth  = 10
)

// Server handles web requests for the raytracer
type Server struct {
	config *config.Config
	router *mux.Router
}

// NewServer creates a web server with all routes registered
func NewServer(cfg *config.Config) *Server {
	s := &Server{config: cfg, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/scenes", s.handleScenes).Methods("GET")
	api.HandleFunc("/scenes/{name}", s.handleSceneDetails).Methods("GET")
	api.HandleFunc("/render", s.handleRender).Methods("GET")
	api.HandleFunc("/render/ws", s.handleRenderWebSocket).Methods("GET")
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MaxDepth int    `json:"maxDepth"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int   `json:"totalPixels"`
	TotalTiles  int   `json:"totalTiles"`
	NumWorkers  int   `json:"numWorkers"`
	ElapsedMs   int64 `json:"elapsedMs"`
}

// CameraInfo describes the camera of a built scene
type CameraInfo struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FieldOfView float64 `json:"fieldOfView"`
	PixelSize   float64 `json:"pixelSize"`
	MaxDepth    int     `json:"maxDepth"`
}

// Limit is an inclusive integer range
type Limit struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SceneDetails is the response for /api/scenes/{name}
type SceneDetails struct {
	scene.SceneInfo
	Objects int              `json:"objects"`
	Camera  CameraInfo       `json:"camera"`
	Limits  map[string]Limit `json:"limits"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the available scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"scenes": scene.List()})
}

// handleSceneDetails returns metadata and default camera settings for a scene
func (s *Server) handleSceneDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := scene.New(name, req.Width, req.Height)
	if errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusNotFound, "Unknown scene: "+name)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var info scene.SceneInfo
	for _, candidate := range scene.List() {
		if candidate.Name == name {
			info = candidate
		}
	}

	camera := sceneObj.Camera
	writeJSON(w, http.StatusOK, SceneDetails{
		SceneInfo: info,
		Objects:   len(sceneObj.World.Objects()),
		Camera: CameraInfo{
			Width:       camera.HSize(),
			Height:      camera.VSize(),
			FieldOfView: camera.FieldOfView(),
			PixelSize:   camera.PixelSize(),
			MaxDepth:    req.MaxDepth,
		},
		Limits: map[string]Limit{
			"width":    {Min: minImageSize, Max: maxImageSize},
			"height":   {Min: minImageSize, Max: maxImageSize},
			"maxDepth": {Min: minMaxDepth, Max: maxMaxDepth},
		},
	})
}

// parseRenderRequest parses query parameters, defaulting to the server config
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: s.config.Scene}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", s.config.Width, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", s.config.Height, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", s.config.MaxDepth, minMaxDepth, maxMaxDepth); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1000*1000 && req.MaxDepth > 5 {
		slog.Warn("large image with deep recursion may render slowly",
			"width", req.Width, "height", req.Height, "maxDepth", req.MaxDepth)
	}

	return req, nil
}

// createScene builds the requested scene with the requested recursion depth
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.New(req.Scene, req.Width, req.Height)
	if err != nil {
		return nil, err
	}
	sceneObj.Camera.MaxDepth = req.MaxDepth
	return sceneObj, nil
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

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
