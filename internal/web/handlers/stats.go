package handlers

import (
	"net/http"
	"sync"

	"github.com/kozaktomas/portfolio/internal/palette"
)

// statsCache holds stats computed for one library version
type statsCache struct {
	mu      sync.RWMutex
	data    *StatsResponse
	version int
}

func (c *statsCache) get(version int) (*StatsResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil || c.version != version {
		return nil, false
	}
	return c.data, true
}

func (c *statsCache) set(version int, data *StatsResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.version = version
}

// StatsHandler handles color statistics endpoints
type StatsHandler struct {
	library *Library
	cache   statsCache
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(lib *Library) *StatsHandler {
	return &StatsHandler{library: lib}
}

// CategoryStats is the tone distribution of one category
type CategoryStats struct {
	Name  string        `json:"name"`
	Stats palette.Stats `json:"stats"`
}

// StatsResponse represents the statistics response
type StatsResponse struct {
	TotalPhotos     int                      `json:"total_photos"`
	Categories      []CategoryStats          `json:"categories"`
	Overall         palette.Stats            `json:"overall"`
	Recommendations []palette.Recommendation `json:"recommendations"`
}

// BuildStats analyzes every category and the whole catalog.
func BuildStats(snap Snapshot) *StatsResponse {
	resp := &StatsResponse{
		TotalPhotos:     snap.Catalog.Len(),
		Categories:      []CategoryStats{},
		Recommendations: []palette.Recommendation{},
	}
	for _, name := range snap.Catalog.Categories() {
		photos, err := snap.Catalog.Category(name)
		if err != nil {
			continue
		}
		resp.Categories = append(resp.Categories, CategoryStats{Name: name, Stats: palette.Analyze(photos)})
	}
	resp.Overall = palette.Analyze(snap.Catalog.Flatten())
	if recs := palette.Recommend(resp.Overall); recs != nil {
		resp.Recommendations = recs
	}
	return resp
}

// Get returns tone statistics, cached until the catalog is reloaded.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.library.Snapshot()
	if cached, ok := h.cache.get(snap.Version); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	resp := BuildStats(snap)
	h.cache.set(snap.Version, resp)
	respondJSON(w, http.StatusOK, resp)
}
