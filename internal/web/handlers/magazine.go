package handlers

import (
	"log"
	"net/http"

	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/magazine"
)

// MagazineHandler serves the slideshow issue
type MagazineHandler struct {
	library *Library
	gallery *config.GalleryConfig
}

// NewMagazineHandler creates a new magazine handler
func NewMagazineHandler(lib *Library, gallery *config.GalleryConfig) *MagazineHandler {
	return &MagazineHandler{library: lib, gallery: gallery}
}

// SlideView is one slide of an issue
type SlideView struct {
	Layout magazine.Layout `json:"layout"`
	Photos []PhotoView     `json:"photos"`
}

// MagazineResponse is a whole issue
type MagazineResponse struct {
	ID     string      `json:"id"`
	Year   int         `json:"year"`
	Mode   string      `json:"mode"`
	Cover  *PhotoView  `json:"cover,omitempty"`
	Slides []SlideView `json:"slides"`
}

// Get builds an issue from every catalog photo.
func (h *MagazineHandler) Get(w http.ResponseWriter, r *http.Request) {
	mode, err := magazine.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rng, err := requestRand(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	issue, err := magazine.Build(h.library.Snapshot().Catalog.Flatten(), mode, magazine.Options{
		CoverCategory:  h.gallery.Magazine.CoverCategory,
		ColorThreshold: h.gallery.Thresholds.Slide,
		Weights:        h.gallery.Magazine.SlideWeights,
		Rand:           rng,
	})
	if err != nil {
		log.Printf("Magazine build failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to build magazine")
		return
	}

	resp := MagazineResponse{
		ID:     issue.ID,
		Year:   issue.Year,
		Mode:   issue.Mode,
		Slides: make([]SlideView, 0, len(issue.Slides)),
	}
	if issue.Cover != nil {
		cover := photoView(*issue.Cover)
		resp.Cover = &cover
	}
	for _, s := range issue.Slides {
		resp.Slides = append(resp.Slides, SlideView{Layout: s.Layout, Photos: photoViews(s.Photos)})
	}
	respondJSON(w, http.StatusOK, resp)
}
