package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/database"
	"github.com/kozaktomas/portfolio/internal/selection"
)

// PhotoRepository stores the photo catalog in PostgreSQL. Colors live in a
// pgvector column so nearest-color queries run in the database.
type PhotoRepository struct {
	pool *Pool
}

var (
	_ database.PhotoWriter = (*PhotoRepository)(nil)
	_ catalog.Store        = (*PhotoRepository)(nil)
)

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(pool *Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

func colorParam(c selection.Color) any {
	if !c.Valid {
		return nil
	}
	return pgvector.NewVector(c.Vector())
}

func colorFromVector(vec *pgvector.Vector) (selection.Color, error) {
	if vec == nil {
		return selection.Color{}, nil
	}
	s := vec.Slice()
	if len(s) != 3 {
		return selection.Color{}, fmt.Errorf("color vector has %d dimensions", len(s))
	}
	var rgb [3]uint8
	for i, v := range s {
		if v < 0 || v > 255 {
			return selection.Color{}, fmt.Errorf("color channel %d out of range: %v", i, v)
		}
		rgb[i] = uint8(v + 0.5)
	}
	return selection.RGB(rgb[0], rgb[1], rgb[2]), nil
}

// ReplaceCatalog stores c, removing everything stored before.
func (r *PhotoRepository) ReplaceCatalog(ctx context.Context, c *catalog.Catalog) error {
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM photos"); err != nil {
		return fmt.Errorf("clear photos: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories"); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}

	for i, name := range c.Categories() {
		if _, err := tx.ExecContext(ctx, "INSERT INTO categories (name, position) VALUES ($1, $2)", name, i); err != nil {
			return fmt.Errorf("insert category %s: %w", name, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO photos (id, category, position, filename, color)
		VALUES ($1, $2, $3, $4, $5::vector)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, name := range c.Categories() {
		photos, err := c.Category(name)
		if err != nil {
			return err
		}
		for i, p := range photos {
			if _, err := stmt.ExecContext(ctx, uuid.New(), name, i, p.Filename, colorParam(p.Color)); err != nil {
				return fmt.Errorf("insert photo %s/%s: %w", name, p.Filename, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog: %w", err)
	}
	return nil
}

// LoadCatalog returns the stored catalog in stored order.
func (r *PhotoRepository) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	c := catalog.New()

	rows, err := r.pool.Query(ctx, "SELECT name FROM categories ORDER BY position")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Add(name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	rows.Close()

	photos, err := r.queryPhotos(ctx, `
		SELECT p.id, p.category, p.position, p.filename, p.color, p.created_at
		FROM photos p
		JOIN categories c ON c.name = p.category
		ORDER BY c.position, p.position
	`)
	if err != nil {
		return nil, err
	}
	for _, p := range photos {
		c.Add(p.Category, p.Photo())
	}
	return c, nil
}

// Load implements catalog.Store.
func (r *PhotoRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	return r.LoadCatalog(ctx)
}

// Save implements catalog.Store.
func (r *PhotoRepository) Save(ctx context.Context, c *catalog.Catalog) error {
	return r.ReplaceCatalog(ctx, c)
}

// Count returns the total number of photos stored
func (r *PhotoRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM photos").Scan(&count); err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}

// CountByCategory counts photos of the given categories.
func (r *PhotoRepository) CountByCategory(ctx context.Context, categories []string) (map[string]int, error) {
	counts := make(map[string]int, len(categories))
	for _, name := range categories {
		counts[name] = 0
	}
	if len(categories) == 0 {
		return counts, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT category, COUNT(*)
		FROM photos
		WHERE category = ANY($1)
		GROUP BY category
	`, pq.Array(categories))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[name] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}
	return counts, nil
}

// NearestByColor returns photos ordered by Euclidean RGB distance to c.
func (r *PhotoRepository) NearestByColor(ctx context.Context, c selection.Color, limit int) ([]database.ColorMatch, error) {
	if !c.Valid {
		return nil, errors.New("search color is absent")
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT category, filename, color, color <-> $1::vector AS distance
		FROM photos
		WHERE color IS NOT NULL
		ORDER BY color <-> $1::vector, category, position
		LIMIT $2
	`, pgvector.NewVector(c.Vector()), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []database.ColorMatch
	for rows.Next() {
		var m database.ColorMatch
		var vec *pgvector.Vector
		if err := rows.Scan(&m.Photo.Category, &m.Photo.Filename, &vec, &m.Distance); err != nil {
			return nil, fmt.Errorf("scan color match: %w", err)
		}
		if m.Photo.Color, err = colorFromVector(vec); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate color matches: %w", err)
	}
	return matches, nil
}

func (r *PhotoRepository) queryPhotos(ctx context.Context, query string, args ...any) ([]database.StoredPhoto, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []database.StoredPhoto
	for rows.Next() {
		var p database.StoredPhoto
		var vec *pgvector.Vector
		if err := rows.Scan(&p.ID, &p.Category, &p.Position, &p.Filename, &vec, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		if p.Color, err = colorFromVector(vec); err != nil {
			return nil, fmt.Errorf("photo %s: %w", p.ID, err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return photos, nil
}
