package database

import (
	"context"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/selection"
)

// PhotoReader provides read-only access to the stored catalog
type PhotoReader interface {
	// LoadCatalog returns the whole catalog, categories and photos in stored order
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)
	// Count returns the total number of photos stored
	Count(ctx context.Context) (int, error)
	// CountByCategory counts photos of the given categories; missing categories count 0
	CountByCategory(ctx context.Context, categories []string) (map[string]int, error)
	// NearestByColor returns photos ordered by RGB distance to c, absent colors excluded
	NearestByColor(ctx context.Context, c selection.Color, limit int) ([]ColorMatch, error)
}

// PhotoWriter provides write access to the stored catalog
type PhotoWriter interface {
	PhotoReader

	// ReplaceCatalog stores c, removing everything stored before
	ReplaceCatalog(ctx context.Context, c *catalog.Catalog) error
}
