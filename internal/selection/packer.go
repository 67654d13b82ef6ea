package selection

import (
	"math/rand/v2"
	"slices"
)

// SizePicker returns the target size of the next batch.
type SizePicker func() int

// SizeWeight is one entry of a weighted batch size distribution.
type SizeWeight struct {
	Size   int     `yaml:"size" json:"size"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// DefaultSlideWeights favors three and four photo slides over single ones.
var DefaultSlideWeights = []SizeWeight{
	{Size: 1, Weight: 0.2},
	{Size: 3, Weight: 0.4},
	{Size: 4, Weight: 0.4},
}

// FixedSizePicker always asks for n photos.
func FixedSizePicker(n int) SizePicker {
	return func() int { return n }
}

// WeightedSizePicker draws sizes from weights using r.
// Entries with a non-positive weight are never drawn.
func WeightedSizePicker(r *rand.Rand, weights []SizeWeight) SizePicker {
	var total float64
	for _, w := range weights {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	return func() int {
		if total == 0 {
			return 1
		}
		x := r.Float64() * total
		last := 1
		for _, w := range weights {
			if w.Weight <= 0 {
				continue
			}
			last = w.Size
			if x < w.Weight {
				return w.Size
			}
			x -= w.Weight
		}
		return last
	}
}

// PackBatches partitions pool into consecutive batches for slide layouts.
//
// pick is called exactly once per batch, in order, for its target size. The
// first remaining photo always anchors the batch; the rest of the pool is then
// scanned left to right for photos that share neither a location prefix nor a
// similar color with the batch, and if that leaves the batch short a second
// scan ignores color. Short batches are emitted as they are. Every photo of
// pool lands in exactly one batch, and pool itself is not modified.
func PackBatches(pool []Photo, pick SizePicker, opts Options) ([][]Photo, error) {
	if pick == nil {
		return nil, ErrNilSizePicker
	}
	threshold := opts.threshold(DefaultSlideThreshold)

	remaining := make([]int, len(pool))
	for i := range remaining {
		remaining[i] = i
	}

	strict := func(batch []Photo, c Photo) bool {
		return !prefixConflict(batch, c) && !colorConflict(batch, c, threshold)
	}
	prefixOnly := func(batch []Photo, c Photo) bool {
		return !prefixConflict(batch, c)
	}

	var batches [][]Photo
	for len(remaining) > 0 {
		target := max(pick(), 1)

		batch := make([]Photo, 0, target)
		batch = append(batch, pool[remaining[0]])
		remaining = remaining[1:]

		batch, remaining = fillBatch(pool, batch, remaining, target, strict)
		if len(batch) < target {
			batch, remaining = fillBatch(pool, batch, remaining, target, prefixOnly)
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// fillBatch moves accepted photos from remaining into batch without advancing
// past a successful pick.
func fillBatch(pool, batch []Photo, remaining []int, target int, accept func([]Photo, Photo) bool) ([]Photo, []int) {
	i := 0
	for len(batch) < target && i < len(remaining) {
		c := pool[remaining[i]]
		if accept(batch, c) {
			batch = append(batch, c)
			remaining = slices.Delete(remaining, i, i+1)
			continue
		}
		i++
	}
	return batch, remaining
}

func prefixConflict(batch []Photo, c Photo) bool {
	prefix := c.Prefix()
	for _, b := range batch {
		if b.Prefix() == prefix {
			return true
		}
	}
	return false
}

func colorConflict(batch []Photo, c Photo, threshold float64) bool {
	for _, b := range batch {
		if Similar(b.Color, c.Color, threshold) {
			return true
		}
	}
	return false
}
