package selection

import (
	"encoding/json"
	"fmt"
	"math"
)

// AbsentDistance is what Distance reports when either color is missing.
const AbsentDistance = 1000.0

// Color is the dominant RGB color of a photo. The zero value is an absent color.
type Color struct {
	R, G, B uint8
	Valid   bool
}

// Gray is the neutral stand-in for an absent color.
var Gray = RGB(128, 128, 128)

// RGB returns a present color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// OrGray returns c, or Gray when c is absent.
func (c Color) OrGray() Color {
	if !c.Valid {
		return Gray
	}
	return c
}

// Vector returns the color as a float32 vector for index and SQL storage.
func (c Color) Vector() []float32 {
	return []float32{float32(c.R), float32(c.G), float32(c.B)}
}

func (c Color) String() string {
	if !c.Valid {
		return "none"
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// MarshalJSON encodes the color as [r,g,b], or null when absent.
func (c Color) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal([3]int{int(c.R), int(c.G), int(c.B)})
}

// UnmarshalJSON accepts null or a triple of integers in [0,255].
func (c *Color) UnmarshalJSON(data []byte) error {
	var channels []float64
	if err := json.Unmarshal(data, &channels); err != nil {
		return fmt.Errorf("decoding color: %w", err)
	}
	if channels == nil {
		*c = Color{}
		return nil
	}
	if len(channels) != 3 {
		return fmt.Errorf("color must have 3 channels, got %d", len(channels))
	}
	var rgb [3]uint8
	for i, v := range channels {
		if v < 0 || v > 255 || v != math.Trunc(v) {
			return fmt.Errorf("color channel %d out of range: %v", i, v)
		}
		rgb[i] = uint8(v)
	}
	*c = RGB(rgb[0], rgb[1], rgb[2])
	return nil
}

// Distance is the Euclidean distance between two colors in RGB space.
// An absent color is maximally dissimilar to everything.
func Distance(a, b Color) float64 {
	if !a.Valid || !b.Valid {
		return AbsentDistance
	}
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Similar reports whether both colors are present and closer than threshold.
func Similar(a, b Color, threshold float64) bool {
	if !a.Valid || !b.Valid {
		return false
	}
	return Distance(a, b) < threshold
}
