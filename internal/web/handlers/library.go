package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/database"
)

// Library holds the catalog state shared by all handlers. Handlers read a
// snapshot; Reload swaps in a new one.
type Library struct {
	store      catalog.Store
	videosPath string

	mu       sync.RWMutex
	catalog  *catalog.Catalog
	videos   *catalog.VideoCatalog
	index    *database.ColorIndex
	version  int
	loadedAt time.Time
}

// NewLibrary creates a library that loads photos from store and videos from
// videosPath. Call Reload before serving.
func NewLibrary(store catalog.Store, videosPath string) *Library {
	return &Library{
		store:      store,
		videosPath: videosPath,
		catalog:    catalog.New(),
		videos:     &catalog.VideoCatalog{Categories: map[string][]catalog.Video{}},
		index:      database.NewColorIndex(),
	}
}

// NewStaticLibrary creates a library around already loaded catalogs.
func NewStaticLibrary(c *catalog.Catalog, v *catalog.VideoCatalog) *Library {
	l := NewLibrary(nil, "")
	l.set(c, v)
	return l
}

// Reload reads the catalog and videos again. A missing videos file yields an
// empty playlist; a failing catalog keeps the previous state.
func (l *Library) Reload(ctx context.Context) error {
	if l.store == nil {
		return errors.New("library has no catalog store")
	}
	c, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if removed := c.RemoveDuplicates(); len(removed) > 0 {
		log.Printf("Catalog lists %d duplicate photos, keeping the first of each: %s", len(removed), sanitizeForLog(fmt.Sprint(removed)))
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	videos := &catalog.VideoCatalog{Categories: map[string][]catalog.Video{}}
	if l.videosPath != "" {
		v, err := catalog.LoadVideos(l.videosPath)
		switch {
		case err == nil:
			videos = v
		case errors.Is(err, os.ErrNotExist):
			log.Printf("Video catalog %s not found, playlist will only hold the featured video", l.videosPath)
		default:
			return err
		}
	}

	l.set(c, videos)
	log.Printf("Catalog loaded: %d photos in %d categories", c.Len(), len(c.Categories()))
	return nil
}

func (l *Library) set(c *catalog.Catalog, v *catalog.VideoCatalog) {
	if v == nil {
		v = &catalog.VideoCatalog{Categories: map[string][]catalog.Video{}}
	}
	index := database.NewColorIndex()
	index.Build(c.Flatten())

	l.mu.Lock()
	defer l.mu.Unlock()
	l.catalog = c
	l.videos = v
	l.index = index
	l.version++
	l.loadedAt = time.Now()
}

// Snapshot is a consistent view of the library. Catalog.Category returns
// copies, so handlers may reorder what they get.
type Snapshot struct {
	Catalog  *catalog.Catalog
	Videos   *catalog.VideoCatalog
	Index    *database.ColorIndex
	Version  int
	LoadedAt time.Time
}

// Snapshot returns the current state.
func (l *Library) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Snapshot{
		Catalog:  l.catalog,
		Videos:   l.videos,
		Index:    l.index,
		Version:  l.version,
		LoadedAt: l.loadedAt,
	}
}
