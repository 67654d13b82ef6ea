package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/selection"
)

// testCatalog creates a small two-category catalog
func testCatalog() *catalog.Catalog {
	c := catalog.New()
	for i := range 8 {
		c.Add("城市光影", selection.Photo{
			Filename: fmt.Sprintf("台北%02d-%d.jpg", i%4, i),
			Color:    selection.RGB(uint8(i*30), 40, 200-uint8(i*20)),
		})
	}
	for i := range 5 {
		c.Add("大地映像", selection.Photo{
			Filename: fmt.Sprintf("合歡山%d-%d.jpg", i, i),
			Color:    selection.RGB(20, uint8(100+i*30), 20),
		})
	}
	return c
}

// testVideos creates a video catalog holding the featured video and three others
func testVideos() *catalog.VideoCatalog {
	return &catalog.VideoCatalog{Categories: map[string][]catalog.Video{
		"commercial": {
			{URL: "https://www.youtube.com/embed/X_-eCxOpJd8", Title: "商業空間 空拍紀實", Duration: "01:30"},
			{URL: "https://www.youtube.com/embed/aaa", Title: "A", Duration: "02:00"},
		},
		"aerial": {
			{URL: "https://www.youtube.com/embed/bbb", Title: "B", Duration: "03:00"},
			{URL: "https://www.youtube.com/embed/ccc", Title: "C", Duration: "04:00"},
		},
	}}
}

// testGallery returns the embedded gallery config
func testGallery() *config.GalleryConfig {
	g := config.DefaultGallery()
	return &g
}

// testLibrary creates a library around the test catalogs
func testLibrary() *Library {
	return NewStaticLibrary(testCatalog(), testVideos())
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
