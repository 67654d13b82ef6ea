// Package palette measures the colors of portfolio photos: dominant color
// extraction and the tone distribution of a catalog.
package palette

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/kozaktomas/portfolio/internal/selection"
)

// NeutralSaturation is the saturation below which a color counts as neutral.
const NeutralSaturation = 0.15

// DominantColor returns the average color of img, computed by scaling it down
// to a single pixel. An empty image yields an absent color.
func DominantColor(img image.Image) selection.Color {
	if img == nil || img.Bounds().Empty() {
		return selection.Color{}
	}
	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	px := dst.RGBAAt(0, 0)
	return selection.RGB(px.R, px.G, px.B)
}

// Tone is a coarse hue family.
type Tone int

const (
	Neutral Tone = iota
	Warm
	Yellow
	Green
	Blue
	Purple
)

// Tones lists every tone in display order.
var Tones = []Tone{Warm, Yellow, Green, Blue, Purple, Neutral}

var toneNames = map[Tone]string{
	Neutral: "neutral",
	Warm:    "warm",
	Yellow:  "yellow",
	Green:   "green",
	Blue:    "blue",
	Purple:  "purple",
}

func (t Tone) String() string {
	if name, ok := toneNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tone(%d)", int(t))
}

// MarshalText encodes the tone by name so it can key JSON objects.
func (t Tone) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseTone parses a tone name.
func ParseTone(s string) (Tone, error) {
	for t, name := range toneNames {
		if name == s {
			return t, nil
		}
	}
	return Neutral, fmt.Errorf("unknown tone %q", s)
}

func (t *Tone) UnmarshalText(text []byte) error {
	parsed, err := ParseTone(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Classify assigns a color to its tone by HSV hue. Desaturated and absent
// colors are neutral.
func Classify(c selection.Color) Tone {
	if !c.Valid {
		return Neutral
	}
	h, s, _ := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsv()
	if s < NeutralSaturation {
		return Neutral
	}

	switch {
	case h < 40 || h >= 340:
		return Warm
	case h < 70:
		return Yellow
	case h < 160:
		return Green
	case h < 260:
		return Blue
	default:
		return Purple
	}
}

// Stats counts photos per tone.
type Stats struct {
	Total  int          `json:"total"`
	Counts map[Tone]int `json:"counts"`
}

// Analyze classifies every photo.
func Analyze(photos []selection.Photo) Stats {
	stats := Stats{Counts: make(map[Tone]int, len(Tones))}
	for _, t := range Tones {
		stats.Counts[t] = 0
	}
	for _, p := range photos {
		stats.Counts[Classify(p.Color)]++
		stats.Total++
	}
	return stats
}

// Percent returns the share of tone in percent, 0 for an empty set.
func (s Stats) Percent(t Tone) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Counts[t]) / float64(s.Total) * 100
}
