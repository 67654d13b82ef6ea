package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/selection"
)

// maxCount caps count and limit query parameters.
const maxCount = 200

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// queryInt reads a non-negative integer query parameter, def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return min(n, maxCount), nil
}

// requestRand returns the request's random source, pinned by ?seed= when given.
func requestRand(r *http.Request) (*rand.Rand, error) {
	s := r.URL.Query().Get("seed")
	if s == "" {
		return selection.NewRand(rand.Uint64()), nil
	}
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, errors.New("invalid seed")
	}
	return selection.NewRand(seed), nil
}

// parseColor parses "r,g,b".
func parseColor(s string) (selection.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return selection.Color{}, errors.New("color must be r,g,b")
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return selection.Color{}, fmt.Errorf("color channel %d must be 0-255", i)
		}
		rgb[i] = uint8(v)
	}
	return selection.RGB(rgb[0], rgb[1], rgb[2]), nil
}

// PhotoView is a photo as returned by the API.
type PhotoView struct {
	Filename string          `json:"filename"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Color    selection.Color `json:"color"`
	URL      string          `json:"url"`
}

func photoView(p selection.Photo) PhotoView {
	return PhotoView{
		Filename: p.Filename,
		Title:    catalog.BaseLocationName(p.Filename),
		Category: p.Category,
		Color:    p.Color,
		URL:      "/public/photos/" + url.PathEscape(p.Category) + "/" + url.PathEscape(p.Filename),
	}
}

func photoViews(photos []selection.Photo) []PhotoView {
	out := make([]PhotoView, 0, len(photos))
	for _, p := range photos {
		out = append(out, photoView(p))
	}
	return out
}
