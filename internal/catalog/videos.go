package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
)

// Video is a single embeddable video.
type Video struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// ID returns the video's identifier, the last path segment of its URL.
func (v Video) ID() string {
	return VideoID(v.URL)
}

// VideoCatalog groups videos by category.
type VideoCatalog struct {
	Categories map[string][]Video `json:"categories"`
}

// ParseVideos reads a videos.json document.
func ParseVideos(r io.Reader) (*VideoCatalog, error) {
	var vc VideoCatalog
	if err := json.NewDecoder(r).Decode(&vc); err != nil {
		return nil, fmt.Errorf("decoding video catalog: %w", err)
	}
	if vc.Categories == nil {
		vc.Categories = make(map[string][]Video)
	}
	return &vc, nil
}

// LoadVideos reads a video catalog from path.
func LoadVideos(path string) (*VideoCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening video catalog: %w", err)
	}
	defer f.Close()
	return ParseVideos(f)
}

// All returns every video, categories in name order.
func (vc *VideoCatalog) All() []Video {
	names := make([]string, 0, len(vc.Categories))
	for name := range vc.Categories {
		names = append(names, name)
	}
	slices.Sort(names)

	var out []Video
	for _, name := range names {
		out = append(out, vc.Categories[name]...)
	}
	return out
}

// VideoID extracts the identifier from an embed URL such as
// https://www.youtube.com/embed/X_-eCxOpJd8?rel=0.
func VideoID(url string) string {
	if url == "" {
		return ""
	}
	parts := strings.Split(url, "/")
	last := parts[len(parts)-1]
	id, _, _ := strings.Cut(last, "?")
	return id
}

// Playlist returns the featured video followed by up to n random others.
// The catalog's first copy of the featured video wins over the fallback
// record; further copies are left out.
func Playlist(videos []Video, featured Video, n int, r *rand.Rand) []Video {
	featuredID := featured.ID()

	var others []Video
	found := false
	for _, v := range videos {
		if featuredID != "" && v.ID() == featuredID {
			if !found {
				featured = v
				found = true
			}
			continue
		}
		others = append(others, v)
	}

	r.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	if n < 0 {
		n = 0
	}
	others = others[:min(n, len(others))]

	out := make([]Video, 0, len(others)+1)
	if featured.URL != "" {
		out = append(out, featured)
	}
	return append(out, others...)
}
