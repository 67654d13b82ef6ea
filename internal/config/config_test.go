package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kozaktomas/portfolio/internal/selection"
)

func TestDefaultGallery(t *testing.T) {
	g := DefaultGallery()

	names := g.CategoryNames()
	if len(names) != 2 || names[0] != "城市光影" || names[1] != "大地映像" {
		t.Errorf("unexpected categories %v", names)
	}

	city, ok := g.Category("城市光影")
	if !ok {
		t.Fatal("expected 城市光影 to be configured")
	}
	if city.Policy != selection.Balanced || city.Count != 6 {
		t.Errorf("unexpected city config %+v", city)
	}

	land, _ := g.Category("大地映像")
	if land.Policy != selection.ColorCoordinated {
		t.Errorf("expected coordinated policy for 大地映像, got %s", land.Policy)
	}

	if g.Thresholds.Gallery != selection.DefaultGalleryThreshold {
		t.Errorf("expected gallery threshold %v, got %v", selection.DefaultGalleryThreshold, g.Thresholds.Gallery)
	}
	if g.Thresholds.Slide != selection.DefaultSlideThreshold {
		t.Errorf("expected slide threshold %v, got %v", selection.DefaultSlideThreshold, g.Thresholds.Slide)
	}
	if g.Magazine.CoverCategory != "大地映像" {
		t.Errorf("unexpected cover category %q", g.Magazine.CoverCategory)
	}
	if len(g.Magazine.SlideWeights) != 3 {
		t.Errorf("expected 3 slide weights, got %v", g.Magazine.SlideWeights)
	}
	if g.Videos.Featured.ID() != "X_-eCxOpJd8" || g.Videos.Random != 2 {
		t.Errorf("unexpected video config %+v", g.Videos)
	}
	if g.Build.Watermark != "©LCT" || g.Build.PortfolioWidth != 1280 || g.Build.AssetWidth != 300 {
		t.Errorf("unexpected build config %+v", g.Build)
	}
}

func TestGalleryConfig_CategoryMissing(t *testing.T) {
	g := DefaultGallery()
	if _, ok := g.Category("nope"); ok {
		t.Error("expected unknown category to be reported missing")
	}
}

func TestParseGallery_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no categories", "thresholds:\n  gallery: 10\n"},
		{"unknown policy", "categories:\n  - name: a\n    policy: rainbow\n"},
		{"duplicate category", "categories:\n  - name: a\n  - name: a\n"},
		{"negative count", "categories:\n  - name: a\n    count: -1\n"},
		{"negative threshold", "categories:\n  - name: a\nthresholds:\n  gallery: -5\n"},
		{"negative weight", "categories:\n  - name: a\nmagazine:\n  slide_weights:\n    - size: 2\n      weight: -1\n"},
		{"not yaml", "categories: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGallery([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 7},
		{"valid", "12", 12},
		{"zero falls back", "0", 7},
		{"negative falls back", "-3", 7},
		{"garbage falls back", "abc", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORTFOLIO_TEST_INT", tt.value)
			if got := envInt("PORTFOLIO_TEST_INT", 7); got != tt.want {
				t.Errorf("envInt = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CATALOG_PATH", "VIDEOS_PATH", "PUBLIC_DIR", "SOURCE_DIR", "DATABASE_URL", "WEB_PORT", "WEB_HOST", "WEB_ADMIN_TOKEN", "GALLERY_CONFIG"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Catalog.Path != "public/photos.json" {
		t.Errorf("unexpected catalog path %q", cfg.Catalog.Path)
	}
	if cfg.Web.Port != 8080 || cfg.Web.Host != "0.0.0.0" {
		t.Errorf("unexpected web config %+v", cfg.Web)
	}
	if cfg.Database.MaxOpenConns != 25 || cfg.Database.MaxIdleConns != 5 {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if len(cfg.Gallery.Categories) != 2 {
		t.Errorf("expected embedded gallery config, got %+v", cfg.Gallery)
	}
	if cfg.Web.AdminToken != "" {
		t.Errorf("expected reload route disabled by default, got token %q", cfg.Web.AdminToken)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	dir := t.TempDir()
	galleryPath := filepath.Join(dir, "gallery.yaml")
	yaml := "categories:\n  - name: 夜景\n    policy: coordinated\n    count: 3\nthresholds:\n  gallery: 50\n  slide: 40\n"
	if err := os.WriteFile(galleryPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("CATALOG_PATH", "/data/photos.json")
	t.Setenv("WEB_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio")
	t.Setenv("GALLERY_CONFIG", galleryPath)
	t.Setenv("WEB_ADMIN_TOKEN", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Catalog.Path != "/data/photos.json" {
		t.Errorf("unexpected catalog path %q", cfg.Catalog.Path)
	}
	if cfg.Web.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Web.Port)
	}
	if cfg.Database.URL != "postgres://localhost/portfolio" {
		t.Errorf("unexpected database URL %q", cfg.Database.URL)
	}
	if cfg.Web.AdminToken != "s3cret" {
		t.Errorf("unexpected admin token %q", cfg.Web.AdminToken)
	}
	c, ok := cfg.Gallery.Category("夜景")
	if !ok || c.Policy != selection.ColorCoordinated || c.Count != 3 {
		t.Errorf("unexpected gallery category %+v", c)
	}
	if cfg.Gallery.Thresholds.Gallery != 50 {
		t.Errorf("expected threshold 50, got %v", cfg.Gallery.Thresholds.Gallery)
	}
}

func TestLoad_MissingGalleryFile(t *testing.T) {
	t.Setenv("GALLERY_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing gallery config")
	}
}

func TestEnvList(t *testing.T) {
	t.Setenv("WEB_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	got := envList("WEB_ALLOWED_ORIGINS")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", got)
	}

	t.Setenv("WEB_ALLOWED_ORIGINS", "")
	if got := envList("WEB_ALLOWED_ORIGINS"); got != nil {
		t.Errorf("expected no origins, got %v", got)
	}
}
