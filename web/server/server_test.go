package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

func newTestServer() http.Handler {
	return NewServer(0, "../../scenes").Handler()
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected body %s", rec.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var scenes []scene.SceneInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	ids := make(map[string]string)
	for _, info := range scenes {
		ids[info.ID] = info.Type
	}
	for id, kind := range map[string]string{"default": "builtin", SineSceneName: "builtin", "carousel": "file"} {
		if ids[id] != kind {
			t.Errorf("Expected scene %s of type %s, got %q", id, kind, ids[id])
		}
	}
}

func TestHandleFrame(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedWidth  int
		expectedHeight int
	}{
		{"default size", "scene=single-sphere", http.StatusOK, 400, 300},
		{"custom size", "scene=default&width=40&height=30&t=1.5", http.StatusOK, 40, 30},
		{"thumbnail", "scene=empty&width=80&height=60&thumb=20", http.StatusOK, 20, 15},
		{"sine", "scene=sine&width=16&height=8", http.StatusOK, 16, 8},
		{"json scene", "scene=carousel&width=24&height=16", http.StatusOK, 24, 16},
		{"unknown scene", "scene=nonexistent", http.StatusNotFound, 0, 0},
		{"bad width", "width=abc&height=10", http.StatusBadRequest, 0, 0},
		{"width without height", "width=100", http.StatusBadRequest, 0, 0},
		{"depth out of range", "depth=500", http.StatusBadRequest, 0, 0},
	}

	handler := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, handler, "/api/frame?"+tt.query)
			if rec.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			if rec.Header().Get("Content-Type") != "image/png" {
				t.Errorf("Expected image/png, got %s", rec.Header().Get("Content-Type"))
			}
			img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
			if err != nil {
				t.Fatalf("Invalid PNG: %v", err)
			}
			if img.Bounds().Dx() != tt.expectedWidth || img.Bounds().Dy() != tt.expectedHeight {
				t.Errorf("Expected %dx%d, got %v", tt.expectedWidth, tt.expectedHeight, img.Bounds())
			}
		})
	}
}

func TestHandleFrame_ScenesOutsideDirectory(t *testing.T) {
	outside := t.TempDir()
	path := filepath.Join(outside, "outside.json")
	if err := os.WriteFile(path, []byte(`{"name": "Outside", "camera": {"direction": [0, 0, 1]}}`), 0644); err != nil {
		t.Fatal(err)
	}
	absScenes, err := filepath.Abs("../../scenes")
	if err != nil {
		t.Fatal(err)
	}
	rel, err := filepath.Rel(absScenes, filepath.Join(outside, "outside"))
	if err != nil {
		t.Fatal(err)
	}

	handler := newTestServer()
	for _, name := range []string{path, rel, "../scenes/carousel"} {
		for _, endpoint := range []string{"/api/frame", "/api/inspect"} {
			target := endpoint + "?width=4&height=4&x=0&y=0&scene=" + url.QueryEscape(name)
			if rec := get(t, handler, target); rec.Code != http.StatusNotFound {
				t.Errorf("%s scene=%s: expected 404, got %d", endpoint, name, rec.Code)
			}
		}
	}
}

func TestHandleAnimate(t *testing.T) {
	rec := get(t, newTestServer(), "/api/animate?scene=sine&width=8&height=4&frames=3&t=0&end=2")
	if rec.Header().Get("Content-Type") != "text/event-stream" {
		t.Errorf("Expected SSE content type, got %s", rec.Header().Get("Content-Type"))
	}

	body := rec.Body.String()
	if n := strings.Count(body, "event: frame\n"); n != 3 {
		t.Errorf("Expected 3 frame events, got %d:\n%s", n, body)
	}
	if !strings.Contains(body, "event: start\n") || !strings.Contains(body, "event: complete\n") {
		t.Errorf("Expected start and complete events:\n%s", body)
	}
	if strings.Contains(body, "event: error\n") {
		t.Errorf("Unexpected error event:\n%s", body)
	}

	// The last frame carries the end time and is flagged as last
	var last FrameUpdate
	for _, line := range strings.Split(body, "\n") {
		if data, ok := strings.CutPrefix(line, "data: "); ok && strings.Contains(data, `"frameNumber"`) {
			if err := json.Unmarshal([]byte(data), &last); err != nil {
				t.Fatalf("Invalid frame JSON: %v", err)
			}
		}
	}
	if !last.IsLast || last.FrameNumber != 3 || last.Time != 2 || last.ImageData == "" || last.RenderID == "" {
		t.Errorf("Unexpected last frame %+v", last)
	}
}

func TestHandleAnimate_Errors(t *testing.T) {
	handler := newTestServer()
	for _, query := range []string{"scene=nonexistent", "frames=0"} {
		body := get(t, handler, "/api/animate?"+query).Body.String()
		if !strings.Contains(body, "event: error\n") {
			t.Errorf("%s: expected error event, got:\n%s", query, body)
		}
	}
}

func TestHandleInspect(t *testing.T) {
	handler := newTestServer()

	rec := get(t, handler, "/api/inspect?scene=single-sphere&width=2&height=2&x=1&y=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !response.Hit || response.GeometryType != "sphere" || response.PrimitiveIndex != 0 {
		t.Errorf("Expected sphere hit, got %+v", response)
	}
	if response.SurfaceColor != "#18393e" || math.Abs(response.Distance-70) > 1e-9 {
		t.Errorf("Unexpected surface %+v", response)
	}

	rec = get(t, handler, "/api/inspect?scene=empty&width=2&height=2&x=0&y=0")
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if response.Hit || response.PixelColor != "#87ceeb" {
		t.Errorf("Expected sky, got %+v", response)
	}

	query := url.Values{"scene": {"default"}, "x": {"9999"}}
	if rec := get(t, handler, "/api/inspect?"+query.Encode()); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out of range pixel, got %d", rec.Code)
	}
}
