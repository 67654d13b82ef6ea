package handlers

import (
	"net/http"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/config"
)

// VideosHandler serves the video playlist
type VideosHandler struct {
	library *Library
	gallery *config.GalleryConfig
}

// NewVideosHandler creates a new videos handler
func NewVideosHandler(lib *Library, gallery *config.GalleryConfig) *VideosHandler {
	return &VideosHandler{library: lib, gallery: gallery}
}

// VideoView is a video as returned by the API
type VideoView struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// PlaylistResponse is the featured video followed by random others
type PlaylistResponse struct {
	Videos []VideoView `json:"videos"`
}

// Playlist returns the featured video and random picks from the catalog.
func (h *VideosHandler) Playlist(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "count", h.gallery.Videos.Random)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rng, err := requestRand(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	videos := catalog.Playlist(h.library.Snapshot().Videos.All(), h.gallery.Videos.Featured, n, rng)
	resp := PlaylistResponse{Videos: make([]VideoView, 0, len(videos))}
	for _, v := range videos {
		resp.Videos = append(resp.Videos, VideoView{ID: v.ID(), URL: v.URL, Title: v.Title, Duration: v.Duration})
	}
	respondJSON(w, http.StatusOK, resp)
}
