// Package selection picks display photos from a catalog pool while keeping
// the result visually varied: no two photos from the same location prefix and
// no two photos of near-identical color, relaxing both rules when the pool is
// too small or too uniform to satisfy them.
package selection

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Default color thresholds used by the portfolio front end.
const (
	DefaultGalleryThreshold = 120.0
	DefaultSlideThreshold   = 100.0
)

var (
	// ErrNegativeCount is returned when a caller asks for fewer than zero photos.
	ErrNegativeCount = errors.New("count must not be negative")
	// ErrNilSizePicker is returned by PackBatches when no size policy is given.
	ErrNilSizePicker = errors.New("size picker is required")
)

// Options tunes a single selection or packing call.
type Options struct {
	// ColorThreshold is the RGB distance below which two colors count as similar.
	// Zero means the caller's default for that operation.
	ColorThreshold float64
	// Rand drives every random decision. Nil means a freshly seeded generator.
	Rand *rand.Rand
}

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (o Options) threshold(def float64) float64 {
	if o.ColorThreshold > 0 {
		return o.ColorThreshold
	}
	return def
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns a shuffled copy of photos.
func Shuffle(photos []Photo, r *rand.Rand) []Photo {
	out := make([]Photo, len(photos))
	copy(out, photos)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// picker accumulates a selection and answers the constraint questions about it.
type picker struct {
	limit     int
	selected  []Photo
	filenames map[string]struct{}
	prefixes  map[string]struct{}
}

func newPicker(limit int) *picker {
	return &picker{
		limit:     limit,
		selected:  make([]Photo, 0, limit),
		filenames: make(map[string]struct{}, limit),
		prefixes:  make(map[string]struct{}, limit),
	}
}

func (p *picker) full() bool {
	return len(p.selected) >= p.limit
}

func (p *picker) has(ph Photo) bool {
	_, ok := p.filenames[ph.Filename]
	return ok
}

func (p *picker) prefixUsed(ph Photo) bool {
	_, ok := p.prefixes[ph.Prefix()]
	return ok
}

func (p *picker) colorConflict(ph Photo, threshold float64) bool {
	for _, s := range p.selected {
		if Similar(s.Color, ph.Color, threshold) {
			return true
		}
	}
	return false
}

func (p *picker) take(ph Photo) {
	p.selected = append(p.selected, ph)
	p.filenames[ph.Filename] = struct{}{}
	p.prefixes[ph.Prefix()] = struct{}{}
}

// pass walks candidates in order and takes every unused one accepted by accept.
func (p *picker) pass(candidates []Photo, accept func(Photo) bool) {
	for _, c := range candidates {
		if p.full() {
			return
		}
		if p.has(c) || !accept(c) {
			continue
		}
		p.take(c)
	}
}

// relax runs the prefix-only pass followed by the fill pass.
func (p *picker) relax(candidates []Photo) {
	p.pass(candidates, func(c Photo) bool { return !p.prefixUsed(c) })
	p.pass(candidates, func(Photo) bool { return true })
}

func checkCount(count int) error {
	if count < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	return nil
}

// SelectDiverse returns up to count photos from pool with distinct filenames.
//
// The pool is shuffled once and then scanned in three passes: first accepting
// only photos with an unused location prefix and a color not similar to any
// picked photo, then dropping the color rule, then taking anything left. The
// pool itself is not modified.
func SelectDiverse(pool []Photo, count int, opts Options) ([]Photo, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	threshold := opts.threshold(DefaultGalleryThreshold)
	candidates := Shuffle(pool, opts.rng())

	p := newPicker(min(count, len(pool)))
	p.pass(candidates, func(c Photo) bool {
		return !p.prefixUsed(c) && !p.colorConflict(c, threshold)
	})
	p.relax(candidates)
	return p.selected, nil
}
