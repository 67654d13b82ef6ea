package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/selection"
)

// defaultGalleryCount applies to categories missing from the gallery config.
const defaultGalleryCount = 6

// GalleryHandler serves the photos a category gallery shows
type GalleryHandler struct {
	library *Library
	gallery *config.GalleryConfig
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(lib *Library, gallery *config.GalleryConfig) *GalleryHandler {
	return &GalleryHandler{library: lib, gallery: gallery}
}

// GalleryResponse is a gallery selection
type GalleryResponse struct {
	Category string                    `json:"category"`
	Policy   selection.DiversityPolicy `json:"policy"`
	Photos   []PhotoView               `json:"photos"`
}

// Get selects photos for a category by the category's diversity policy.
func (h *GalleryHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	cfg, ok := h.gallery.Category(name)
	if !ok {
		cfg = config.CategoryConfig{Name: name, Policy: selection.Balanced, Count: defaultGalleryCount}
	}

	count, err := queryInt(r, "count", cfg.Count)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rng, err := requestRand(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	photos, err := h.library.Snapshot().Catalog.Category(name)
	if errors.Is(err, catalog.ErrUnknownCategory) {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read catalog")
		return
	}

	selected, err := selection.Select(cfg.Policy, photos, count, selection.Options{
		ColorThreshold: h.gallery.Thresholds.Gallery,
		Rand:           rng,
	})
	if err != nil {
		log.Printf("Gallery selection for %s failed: %v", sanitizeForLog(name), err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, GalleryResponse{
		Category: name,
		Policy:   cfg.Policy,
		Photos:   photoViews(selected),
	})
}
