package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/selection"
)

//go:embed gallery.yaml
var galleryYAML []byte

type Config struct {
	Catalog  CatalogConfig
	Database DatabaseConfig
	Web      WebConfig
	Gallery  GalleryConfig
}

type CatalogConfig struct {
	Path        string // photos.json (default public/photos.json)
	VideosPath  string // videos.json (default public/videos.json)
	PublicDir   string // directory served at /public (default public)
	SourceDir   string // source folders for catalog build (default source_photos)
	Concurrency int    // image workers for catalog build (default 4)
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL, optional
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type WebConfig struct {
	Port           int      // default 8080
	Host           string   // default 0.0.0.0
	AllowedOrigins []string // CORS whitelist, localhost is always allowed
	AdminToken     string   // bearer token for catalog reload, route disabled when empty
}

// GalleryConfig is the YAML policy for galleries, the magazine, the playlist
// and catalog builds.
type GalleryConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
	Thresholds ThresholdConfig  `yaml:"thresholds"`
	Magazine   MagazineConfig   `yaml:"magazine"`
	Videos     VideosConfig     `yaml:"videos"`
	Build      BuildConfig      `yaml:"build"`
}

type CategoryConfig struct {
	Name   string                    `yaml:"name"`
	Policy selection.DiversityPolicy `yaml:"policy"`
	Count  int                       `yaml:"count"`
}

type ThresholdConfig struct {
	Gallery float64 `yaml:"gallery"`
	Slide   float64 `yaml:"slide"`
}

type MagazineConfig struct {
	CoverCategory string                 `yaml:"cover_category"`
	SlideWeights  []selection.SizeWeight `yaml:"slide_weights"`
}

type VideosConfig struct {
	Featured catalog.Video `yaml:"featured"`
	Random   int           `yaml:"random"`
}

type BuildConfig struct {
	AssetFolders   []string `yaml:"asset_folders"`
	PortfolioWidth int      `yaml:"portfolio_width"`
	AssetWidth     int      `yaml:"asset_width"`
	Watermark      string   `yaml:"watermark"`
	Quality        int      `yaml:"quality"`
}

// Category returns the configuration of a named category.
func (g *GalleryConfig) Category(name string) (CategoryConfig, bool) {
	for _, c := range g.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryConfig{}, false
}

// CategoryNames returns the configured categories in order.
func (g *GalleryConfig) CategoryNames() []string {
	names := make([]string, 0, len(g.Categories))
	for _, c := range g.Categories {
		names = append(names, c.Name)
	}
	return names
}

// Validate rejects policies the selection engine cannot run.
func (g *GalleryConfig) Validate() error {
	if len(g.Categories) == 0 {
		return errors.New("no categories configured")
	}
	seen := make(map[string]bool, len(g.Categories))
	for _, c := range g.Categories {
		if c.Name == "" {
			return errors.New("category without name")
		}
		if seen[c.Name] {
			return fmt.Errorf("category %q configured twice", c.Name)
		}
		seen[c.Name] = true
		if c.Count < 0 {
			return fmt.Errorf("category %q: negative count %d", c.Name, c.Count)
		}
	}
	if g.Thresholds.Gallery < 0 || g.Thresholds.Slide < 0 {
		return errors.New("color thresholds must not be negative")
	}
	for _, w := range g.Magazine.SlideWeights {
		if w.Weight < 0 {
			return fmt.Errorf("slide size %d: negative weight", w.Size)
		}
	}
	if g.Videos.Random < 0 {
		return errors.New("videos.random must not be negative")
	}
	return nil
}

// ParseGallery decodes a gallery policy document.
func ParseGallery(data []byte) (GalleryConfig, error) {
	var g GalleryConfig
	if err := yaml.Unmarshal(data, &g); err != nil {
		return GalleryConfig{}, fmt.Errorf("parsing gallery config: %w", err)
	}
	if err := g.Validate(); err != nil {
		return GalleryConfig{}, fmt.Errorf("invalid gallery config: %w", err)
	}
	return g, nil
}

// DefaultGallery returns the embedded gallery policy.
func DefaultGallery() GalleryConfig {
	g, err := ParseGallery(galleryYAML)
	if err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to load embedded gallery.yaml: " + err.Error())
	}
	return g
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := strings.TrimSpace(os.Getenv(key)); s != "" {
		return s
	}
	return defaultVal
}

// envList reads a comma-separated environment variable.
func envList(key string) []string {
	var out []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Load reads the configuration from the environment. The gallery policy is
// the embedded default unless GALLERY_CONFIG names a YAML file.
func Load() (*Config, error) {
	gallery := DefaultGallery()
	if path := os.Getenv("GALLERY_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading GALLERY_CONFIG: %w", err)
		}
		if gallery, err = ParseGallery(data); err != nil {
			return nil, err
		}
	}

	return &Config{
		Catalog: CatalogConfig{
			Path:        envString("CATALOG_PATH", "public/photos.json"),
			VideosPath:  envString("VIDEOS_PATH", "public/videos.json"),
			PublicDir:   envString("PUBLIC_DIR", "public"),
			SourceDir:   envString("SOURCE_DIR", "source_photos"),
			Concurrency: envInt("BUILD_CONCURRENCY", 4),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Web: WebConfig{
			Port:           envInt("WEB_PORT", 8080),
			Host:           envString("WEB_HOST", "0.0.0.0"),
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
			AdminToken:     os.Getenv("WEB_ADMIN_TOKEN"),
		},
		Gallery: gallery,
	}, nil
}
