// Package catalog holds the portfolio's photo and video catalogs and their
// on-disk JSON format.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kozaktomas/portfolio/internal/selection"
)

// AssetsKey is the catalog key that holds site assets rather than portfolio photos.
const AssetsKey = "assets"

// ErrUnknownCategory is returned when a category is not in the catalog.
var ErrUnknownCategory = errors.New("unknown category")

// entry is a photo as stored in photos.json.
type entry struct {
	Filename string          `json:"filename"`
	Color    selection.Color `json:"color"`
}

// Catalog maps portfolio categories, in file order, to their photos.
type Catalog struct {
	order  []string
	photos map[string][]selection.Photo
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{photos: make(map[string][]selection.Photo)}
}

// Add appends photos to category, creating it if needed.
func (c *Catalog) Add(category string, photos ...selection.Photo) {
	if _, ok := c.photos[category]; !ok {
		c.order = append(c.order, category)
		c.photos[category] = []selection.Photo{}
	}
	for _, p := range photos {
		p.Category = category
		c.photos[category] = append(c.photos[category], p)
	}
}

// Categories returns category names in catalog order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Has reports whether category exists.
func (c *Catalog) Has(category string) bool {
	_, ok := c.photos[category]
	return ok
}

// Category returns a copy of the photos of one category.
// Callers may reorder or consume the returned slice freely.
func (c *Catalog) Category(name string) ([]selection.Photo, error) {
	photos, ok := c.photos[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	out := make([]selection.Photo, len(photos))
	copy(out, photos)
	return out, nil
}

// Flatten returns a copy of every photo, category by category.
func (c *Catalog) Flatten() []selection.Photo {
	out := make([]selection.Photo, 0, c.Len())
	for _, name := range c.order {
		out = append(out, c.photos[name]...)
	}
	return out
}

// Len returns the total number of photos.
func (c *Catalog) Len() int {
	n := 0
	for _, photos := range c.photos {
		n += len(photos)
	}
	return n
}

// Parse reads a photos.json document. Category order is preserved and the
// assets key is skipped.
func Parse(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("catalog must be a JSON object")
	}

	c := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading category name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		if name == AssetsKey {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("reading %s: %w", AssetsKey, err)
			}
			continue
		}

		var entries []entry
		if err := dec.Decode(&entries); err != nil {
			return nil, fmt.Errorf("reading category %q: %w", name, err)
		}
		c.Add(name)
		for _, e := range entries {
			if e.Filename == "" {
				return nil, fmt.Errorf("category %q: photo without filename", name)
			}
			c.Add(name, selection.Photo{Filename: e.Filename, Color: e.Color})
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading catalog end: %w", err)
	}
	return c, nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// MarshalJSON encodes the catalog in photos.json layout, keeping category order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("encoding category name: %w", err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		entries := make([]entry, 0, len(c.photos[name]))
		for _, p := range c.photos[name] {
			entries = append(entries, entry{Filename: p.Filename, Color: p.Color})
		}
		value, err := json.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("encoding category %q: %w", name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteFile writes the catalog as indented JSON to path.
func (c *Catalog) WriteFile(path string) error {
	data, err := c.MarshalJSON()
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("indenting catalog: %w", err)
	}
	out.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// RemoveDuplicates drops repeated filenames within each category, keeping the
// first entry, and returns the removed entries as "category/filename".
func (c *Catalog) RemoveDuplicates() []string {
	var removed []string
	for _, name := range c.order {
		photos := c.photos[name]
		seen := make(map[string]bool, len(photos))
		kept := photos[:0]
		for _, p := range photos {
			if seen[p.Filename] {
				removed = append(removed, name+"/"+p.Filename)
				continue
			}
			seen[p.Filename] = true
			kept = append(kept, p)
		}
		c.photos[name] = kept
	}
	return removed
}

// Validate checks that every photo has a filename that is unique within its
// category. Color ranges are enforced when decoding.
func (c *Catalog) Validate() error {
	for _, name := range c.order {
		seen := make(map[string]bool, len(c.photos[name]))
		for _, p := range c.photos[name] {
			if p.Filename == "" {
				return fmt.Errorf("category %q: photo without filename", name)
			}
			if seen[p.Filename] {
				return fmt.Errorf("category %q: duplicate filename %q", name, p.Filename)
			}
			seen[p.Filename] = true
		}
	}
	return nil
}
