package handlers

import (
	"log"
	"net/http"
	"time"
)

// CatalogHandler handles catalog maintenance endpoints
type CatalogHandler struct {
	library *Library
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(lib *Library) *CatalogHandler {
	return &CatalogHandler{library: lib}
}

// CatalogStatus reports the loaded catalog
type CatalogStatus struct {
	Photos     int       `json:"photos"`
	Categories []string  `json:"categories"`
	Videos     int       `json:"videos"`
	Version    int       `json:"version"`
	LoadedAt   time.Time `json:"loaded_at"`
}

func catalogStatus(snap Snapshot) CatalogStatus {
	return CatalogStatus{
		Photos:     snap.Catalog.Len(),
		Categories: snap.Catalog.Categories(),
		Videos:     len(snap.Videos.All()),
		Version:    snap.Version,
		LoadedAt:   snap.LoadedAt,
	}
}

// Status returns what is currently loaded
func (h *CatalogHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, catalogStatus(h.library.Snapshot()))
}

// Reload reads the catalog again from its store
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.library.Reload(r.Context()); err != nil {
		log.Printf("Catalog reload failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to reload catalog")
		return
	}
	respondJSON(w, http.StatusOK, catalogStatus(h.library.Snapshot()))
}
