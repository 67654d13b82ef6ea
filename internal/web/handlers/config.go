package handlers

import (
	"net/http"

	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/selection"
)

// ConfigHandler handles configuration endpoints
type ConfigHandler struct {
	library *Library
	gallery *config.GalleryConfig
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(lib *Library, gallery *config.GalleryConfig) *ConfigHandler {
	return &ConfigHandler{library: lib, gallery: gallery}
}

// CategoryInfo describes a gallery category
type CategoryInfo struct {
	Name   string                    `json:"name"`
	Policy selection.DiversityPolicy `json:"policy"`
	Count  int                       `json:"count"`
	Photos int                       `json:"photos"`
}

// ConfigResponse represents the configuration response
type ConfigResponse struct {
	Categories     []CategoryInfo `json:"categories"`
	GalleryColor   float64        `json:"gallery_color_threshold"`
	SlideColor     float64        `json:"slide_color_threshold"`
	CoverCategory  string         `json:"cover_category"`
	PlaylistRandom int            `json:"playlist_random"`
}

// Get returns the gallery configuration with current photo counts
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.library.Snapshot().Catalog

	categories := make([]CategoryInfo, 0, len(h.gallery.Categories))
	for _, cat := range h.gallery.Categories {
		info := CategoryInfo{Name: cat.Name, Policy: cat.Policy, Count: cat.Count}
		if photos, err := c.Category(cat.Name); err == nil {
			info.Photos = len(photos)
		}
		categories = append(categories, info)
	}

	respondJSON(w, http.StatusOK, ConfigResponse{
		Categories:     categories,
		GalleryColor:   h.gallery.Thresholds.Gallery,
		SlideColor:     h.gallery.Thresholds.Slide,
		CoverCategory:  h.gallery.Magazine.CoverCategory,
		PlaylistRandom: h.gallery.Videos.Random,
	})
}
