package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/kozaktomas/portfolio/internal/database"
	"github.com/kozaktomas/portfolio/internal/selection"
)

const defaultNearLimit = 12

// NearestFinder answers nearest-color queries from a database.
type NearestFinder interface {
	NearestByColor(ctx context.Context, c selection.Color, limit int) ([]database.ColorMatch, error)
}

// PhotosHandler handles photo search endpoints
type PhotosHandler struct {
	library *Library
	finder  NearestFinder // optional, falls back to the in-memory index
}

// NewPhotosHandler creates a new photos handler. finder may be nil.
func NewPhotosHandler(lib *Library, finder NearestFinder) *PhotosHandler {
	return &PhotosHandler{library: lib, finder: finder}
}

// NearResponse lists photos closest to a color
type NearResponse struct {
	Color   selection.Color `json:"color"`
	Matches []NearMatch     `json:"matches"`
}

// NearMatch is one search hit
type NearMatch struct {
	Photo    PhotoView `json:"photo"`
	Distance float64   `json:"distance"`
}

// Near finds photos whose dominant color is closest to ?color=r,g,b.
func (h *PhotosHandler) Near(w http.ResponseWriter, r *http.Request) {
	c, err := parseColor(r.URL.Query().Get("color"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", defaultNearLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var matches []database.ColorMatch
	if h.finder != nil {
		matches, err = h.finder.NearestByColor(r.Context(), c, limit)
	} else {
		matches, err = h.library.Snapshot().Index.Search(c, limit)
		if errors.Is(err, database.ErrIndexEmpty) {
			matches, err = nil, nil
		}
	}
	if err != nil {
		log.Printf("Color search for %s failed: %v", c, err)
		respondError(w, http.StatusInternalServerError, "color search failed")
		return
	}

	resp := NearResponse{Color: c, Matches: make([]NearMatch, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, NearMatch{Photo: photoView(m.Photo), Distance: m.Distance})
	}
	respondJSON(w, http.StatusOK, resp)
}
