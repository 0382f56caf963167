package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           8080,
		Scene:          "default",
		Width:          32,
		Height:         16,
		MaxDepth:       3,
		Workers:        2,
		TileSize:       8,
		AllowedOrigins: []string{"localhost:3000"},
	}
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, NewServer(testConfig()), "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, NewServer(testConfig()), "/api/scenes")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var body struct {
		Scenes []scene.SceneInfo `json:"scenes"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(body.Scenes) != len(scene.List()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.List()), len(body.Scenes))
	}
}

func TestHandleSceneDetails(t *testing.T) {
	rec := get(t, NewServer(testConfig()), "/api/scenes/glass?width=100&height=50")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var details SceneDetails
	if err := json.NewDecoder(rec.Body).Decode(&details); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if details.Name != "glass" {
		t.Errorf("Expected scene glass, got %q", details.Name)
	}
	if details.Camera.Width != 100 || details.Camera.Height != 50 {
		t.Errorf("Expected camera 100x50, got %dx%d", details.Camera.Width, details.Camera.Height)
	}
	if details.Camera.MaxDepth != 3 {
		t.Errorf("Expected max depth from config (3), got %d", details.Camera.MaxDepth)
	}
	if details.Objects == 0 {
		t.Error("Expected the glass scene to contain objects")
	}
	if got := details.Limits["width"]; got.Max != maxImageSize {
		t.Errorf("Expected width limit %d, got %d", maxImageSize, got.Max)
	}
}

func TestHandleSceneDetails_Unknown(t *testing.T) {
	rec := get(t, NewServer(testConfig()), "/api/scenes/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestHandleRender_PNG(t *testing.T) {
	rec := get(t, NewServer(testConfig()), "/api/render?scene=default-world&width=20&height=10&maxDepth=2")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	if err := validateRenderID(rec.Header().Get("X-Render-Id")); err != nil {
		t.Errorf("Expected a render typeid header: %v", err)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("Expected 20x10 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestHandleRender_InvalidParams(t *testing.T) {
	s := NewServer(testConfig())

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"width not a number", "width=abc", http.StatusBadRequest},
		{"width too large", "width=5000", http.StatusBadRequest},
		{"height zero", "height=0", http.StatusBadRequest},
		{"depth negative", "maxDepth=-1", http.StatusBadRequest},
		{"depth too deep", "maxDepth=11", http.StatusBadRequest},
		{"unknown scene", "scene=missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/render?"+tt.query)
			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestHandleRender_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/render", nil)
	rec := httptest.NewRecorder()
	NewServer(testConfig()).Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"missing uses default", "", 7, false},
		{"in range", "5", 5, false},
		{"at minimum", "1", 1, false},
		{"at maximum", "10", 10, false},
		{"below minimum", "0", 0, true},
		{"above maximum", "11", 0, true},
		{"not a number", "x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			if tt.value != "" {
				values.Set("n", tt.value)
			}
			got, err := parseIntParam(values, "n", 7, 1, 10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRenderIDs(t *testing.T) {
	id := newRenderID()
	if !strings.HasPrefix(id, PrefixRender+"_") {
		t.Errorf("Expected render prefix, got %q", id)
	}
	if err := validateRenderID(id); err != nil {
		t.Errorf("Expected valid render ID, got %v", err)
	}
	if id == newRenderID() {
		t.Error("Expected unique render IDs")
	}
	if err := validateRenderID("not-a-typeid"); err == nil {
		t.Error("Expected an error for a malformed ID")
	}
	if newConnectionID() == newConnectionID() {
		t.Error("Expected unique connection IDs")
	}
}

func TestHandleRenderWebSocket(t *testing.T) {
	srv := httptest.NewServer(NewServer(testConfig()).Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/render/ws?scene=default&width=16&height=8"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	var (
		messages []StreamMessage
		tiles    int
	)
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				t.Fatalf("Unexpected read error: %v", err)
			}
			break
		}
		var msg StreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Bad message %s: %v", data, err)
		}
		messages = append(messages, msg)
		if msg.Type == MessageTile {
			tiles++
		}
	}

	if len(messages) < 2 {
		t.Fatalf("Expected at least start and complete messages, got %d", len(messages))
	}

	first := messages[0]
	if first.Type != MessageStart {
		t.Errorf("Expected first message %q, got %q", MessageStart, first.Type)
	}
	if err := validateRenderID(first.RenderID); err != nil {
		t.Errorf("Expected render typeid, got %v", err)
	}
	if first.Request == nil || first.Request.Width != 16 || first.Request.Height != 8 {
		t.Errorf("Expected echoed 16x8 request, got %+v", first.Request)
	}

	// 16x8 with tile size 8 is two tiles
	if tiles != 2 {
		t.Errorf("Expected 2 tile messages, got %d", tiles)
	}

	last := messages[len(messages)-1]
	if last.Type != MessageComplete {
		t.Fatalf("Expected last message %q, got %q (%s)", MessageComplete, last.Type, last.Error)
	}
	if last.RenderID != first.RenderID {
		t.Errorf("Expected render ID %q on completion, got %q", first.RenderID, last.RenderID)
	}
	if last.Stats == nil || last.Stats.TotalPixels != 16*8 {
		t.Errorf("Expected stats for 128 pixels, got %+v", last.Stats)
	}

	raw, err := base64.StdEncoding.DecodeString(last.ImageData)
	if err != nil {
		t.Fatalf("Bad base64 image: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Bad PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("Expected 16x8 frame, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestHandleRenderWebSocket_InvalidParams(t *testing.T) {
	srv := httptest.NewServer(NewServer(testConfig()).Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/render/ws?width=0"
	_, resp, err := websocket.Dial(ctx, wsURL, nil)
	if err == nil {
		t.Fatal("Expected dial to fail for invalid parameters")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %+v", resp)
	}
}
