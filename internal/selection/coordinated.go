package selection

import (
	"cmp"
	"slices"
)

// SelectCoordinated returns up to count photos that share a color mood.
//
// A random seed photo is picked, the rest of the pool is ranked by color
// distance to it, and the closest photos with an unused location prefix are
// taken. When that cannot fill the selection the usual relaxation passes
// complete it. The result is shuffled so the seed is not always first.
func SelectCoordinated(pool []Photo, count int, opts Options) ([]Photo, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	if count == 0 || len(pool) == 0 {
		return []Photo{}, nil
	}

	r := opts.rng()
	candidates := Shuffle(pool, r)
	seed := candidates[0]

	p := newPicker(min(count, len(pool)))
	p.take(seed)

	// Ties keep the shuffled order, so photos without a color rank last in random order.
	ranked := slices.Clone(candidates[1:])
	slices.SortStableFunc(ranked, func(a, b Photo) int {
		return cmp.Compare(Distance(seed.Color, a.Color), Distance(seed.Color, b.Color))
	})
	p.pass(ranked, func(c Photo) bool { return !p.prefixUsed(c) })

	if !p.full() {
		p.relax(candidates)
	}

	r.Shuffle(len(p.selected), func(i, j int) {
		p.selected[i], p.selected[j] = p.selected[j], p.selected[i]
	})
	return p.selected, nil
}
