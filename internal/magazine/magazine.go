// Package magazine paginates the whole catalog into a slideshow issue.
package magazine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/portfolio/internal/selection"
)

// Mode selects how slide sizes are chosen.
type Mode int

const (
	// ModeSpread draws a random layout per slide.
	ModeSpread Mode = iota
	// ModeVertical packs two photos per slide for portrait screens.
	ModeVertical
)

// VerticalSlideSize is the batch size used in ModeVertical.
const VerticalSlideSize = 2

func (m Mode) String() string {
	if m == ModeVertical {
		return "vertical"
	}
	return "spread"
}

// ParseMode parses a mode name; an empty string means ModeSpread.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "spread":
		return ModeSpread, nil
	case "vertical":
		return ModeVertical, nil
	default:
		return ModeSpread, fmt.Errorf("unknown magazine mode %q", s)
	}
}

// Slide is one page of the issue.
type Slide struct {
	Layout Layout            `json:"layout"`
	Photos []selection.Photo `json:"photos"`
}

// Issue is a full slideshow: a cover followed by packed slides.
type Issue struct {
	ID     string           `json:"id"`
	Year   int              `json:"year"`
	Mode   string           `json:"mode"`
	Cover  *selection.Photo `json:"cover,omitempty"`
	Slides []Slide          `json:"slides"`
}

// Options configures Build.
type Options struct {
	// CoverCategory is preferred for the cover photo.
	CoverCategory  string
	ColorThreshold float64
	// Weights, when set, draw spread slide sizes from a weighted
	// distribution instead of a uniform layout pick.
	Weights []selection.SizeWeight
	Rand    *rand.Rand
	Now     func() time.Time
}

// Build shuffles pool and packs it into slides. The cover photo is drawn from
// CoverCategory when that category has photos and also appears in the slides.
func Build(pool []selection.Photo, mode Mode, opts Options) (*Issue, error) {
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	issue := &Issue{
		ID:     uuid.NewString(),
		Year:   now().Year(),
		Mode:   mode.String(),
		Slides: []Slide{},
	}

	shuffled := selection.Shuffle(pool, r)
	if len(shuffled) == 0 {
		return issue, nil
	}
	cover := pickCover(shuffled, opts.CoverCategory, r)
	issue.Cover = &cover

	var weighted selection.SizePicker
	if len(opts.Weights) > 0 {
		weighted = selection.WeightedSizePicker(r, opts.Weights)
	}

	var requested []Layout
	pick := func() int {
		layout := LayoutSplit
		if mode == ModeSpread {
			if weighted != nil {
				layout = LayoutForSize(weighted(), r)
			} else {
				layout = PickLayout(r)
			}
		}
		requested = append(requested, layout)
		return layout.Capacity()
	}

	batches, err := selection.PackBatches(shuffled, pick, selection.Options{
		ColorThreshold: opts.ColorThreshold,
		Rand:           r,
	})
	if err != nil {
		return nil, fmt.Errorf("packing slides: %w", err)
	}

	for i, batch := range batches {
		issue.Slides = append(issue.Slides, Slide{
			Layout: FinalLayout(requested[i], len(batch)),
			Photos: batch,
		})
	}
	return issue, nil
}

func pickCover(pool []selection.Photo, category string, r *rand.Rand) selection.Photo {
	var preferred []selection.Photo
	if category != "" {
		for _, p := range pool {
			if p.Category == category {
				preferred = append(preferred, p)
			}
		}
	}
	if len(preferred) > 0 {
		return preferred[r.IntN(len(preferred))]
	}
	return pool[r.IntN(len(pool))]
}
