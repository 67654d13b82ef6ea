package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/kozaktomas/portfolio/internal/selection"
)

// StoredPhoto represents a catalog photo stored in the database
type StoredPhoto struct {
	ID        uuid.UUID
	Category  string
	Position  int // order within the category
	Filename  string
	Color     selection.Color
	CreatedAt time.Time
}

// Photo returns the selection record of a stored photo.
func (p StoredPhoto) Photo() selection.Photo {
	return selection.Photo{Filename: p.Filename, Color: p.Color, Category: p.Category}
}

// ColorMatch is a photo found by color proximity.
type ColorMatch struct {
	Photo    selection.Photo `json:"photo"`
	Distance float64         `json:"distance"`
}
