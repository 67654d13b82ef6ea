package selection

import (
	"errors"
	"fmt"
	"testing"
)

func photo(filename string, c Color) Photo {
	return Photo{Filename: filename, Color: c}
}

// randomPool builds a pool with repeated prefixes, duplicate filenames and absent colors.
func randomPool(seed uint64, size int) []Photo {
	r := NewRand(seed)
	pool := make([]Photo, 0, size)
	for i := range size {
		name := fmt.Sprintf("P%03d-%d.jpg", r.IntN(6), i)
		if i > 0 && r.IntN(10) == 0 {
			name = pool[r.IntN(len(pool))].Filename
		}
		var c Color
		if r.IntN(5) != 0 {
			c = RGB(uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)))
		}
		pool = append(pool, photo(name, c))
	}
	return pool
}

func assertDistinctFromPool(t *testing.T, pool, got []Photo) {
	t.Helper()
	inPool := make(map[string]bool, len(pool))
	for _, p := range pool {
		inPool[p.Filename] = true
	}
	seen := make(map[string]bool, len(got))
	for _, p := range got {
		if !inPool[p.Filename] {
			t.Errorf("selected photo %q is not in the pool", p.Filename)
		}
		if seen[p.Filename] {
			t.Errorf("photo %q selected twice", p.Filename)
		}
		seen[p.Filename] = true
	}
}

func TestSelectDiverse_BoundsAndUniqueness(t *testing.T) {
	for seed := range uint64(50) {
		pool := randomPool(seed, int(seed%20))
		for _, count := range []int{0, 1, 3, 6, 25} {
			got, err := SelectDiverse(pool, count, Options{Rand: NewRand(seed)})
			if err != nil {
				t.Fatalf("seed %d count %d: unexpected error: %v", seed, count, err)
			}
			if len(got) > min(count, len(pool)) {
				t.Errorf("seed %d: got %d photos, want at most %d", seed, len(got), min(count, len(pool)))
			}
			assertDistinctFromPool(t, pool, got)
		}
	}
}

func TestSelectDiverse_StrictPassSuffices(t *testing.T) {
	pool := []Photo{
		photo("AAAA-1.jpg", RGB(0, 0, 0)),
		photo("BBBB-1.jpg", RGB(255, 0, 0)),
		photo("CCCC-1.jpg", RGB(0, 255, 0)),
		photo("DDDD-1.jpg", RGB(0, 0, 255)),
		photo("EEEE-1.jpg", RGB(255, 255, 255)),
	}

	for seed := range uint64(20) {
		got, err := SelectDiverse(pool, 4, Options{ColorThreshold: 120, Rand: NewRand(seed)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("expected 4 photos, got %d", len(got))
		}
		prefixes := make(map[string]bool)
		for i, p := range got {
			if prefixes[p.Prefix()] {
				t.Errorf("duplicate prefix %q", p.Prefix())
			}
			prefixes[p.Prefix()] = true
			for _, q := range got[i+1:] {
				if Similar(p.Color, q.Color, 120) {
					t.Errorf("similar colors selected: %v and %v", p.Color, q.Color)
				}
			}
		}
	}
}

func TestSelectDiverse_MixedPrefixesAndReds(t *testing.T) {
	pool := []Photo{
		photo("AAAA-red.jpg", RGB(255, 0, 0)),
		photo("AAAA-red2.jpg", RGB(250, 5, 5)),
		photo("AAAA-blue.jpg", RGB(0, 0, 255)),
		photo("BBBB-green.jpg", RGB(0, 255, 0)),
		photo("BBBB-green2.jpg", RGB(10, 250, 5)),
	}

	for seed := range uint64(50) {
		got, err := SelectDiverse(pool, 3, Options{ColorThreshold: 100, Rand: NewRand(seed)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("seed %d: expected 3 photos, got %d", seed, len(got))
		}
		// Only two prefixes exist, so the constraint passes pick the first two
		// photos and the fill pass adds the third.
		if got[0].Prefix() == got[1].Prefix() {
			t.Errorf("seed %d: first two picks share prefix %q", seed, got[0].Prefix())
		}
		if Similar(got[0].Color, got[1].Color, 100) {
			t.Errorf("seed %d: first two picks have similar colors", seed)
		}
	}
}

func TestSelectDiverse_TwoDistinctPrefixesNeverRepeat(t *testing.T) {
	pool := []Photo{
		photo("AAAA-red.jpg", RGB(255, 0, 0)),
		photo("AAAA-red2.jpg", RGB(250, 5, 5)),
		photo("AAAA-blue.jpg", RGB(0, 0, 255)),
		photo("BBBB-green.jpg", RGB(0, 255, 0)),
		photo("BBBB-green2.jpg", RGB(10, 250, 5)),
	}

	for seed := range uint64(50) {
		got, err := SelectDiverse(pool, 2, Options{ColorThreshold: 100, Rand: NewRand(seed)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		aaaa, reds := 0, 0
		for _, p := range got {
			if p.Prefix() == "AAAA" {
				aaaa++
			}
			if p.Filename == "AAAA-red.jpg" || p.Filename == "AAAA-red2.jpg" {
				reds++
			}
		}
		if aaaa > 1 {
			t.Errorf("seed %d: got %d AAAA photos", seed, aaaa)
		}
		if reds > 1 {
			t.Errorf("seed %d: both red AAAA photos selected", seed)
		}
	}
}

func TestSelectDiverse_FillPassWithUniformPool(t *testing.T) {
	pool := []Photo{
		photo("SAME-1.jpg", RGB(100, 100, 100)),
		photo("SAME-2.jpg", RGB(100, 100, 100)),
		photo("SAME-3.jpg", RGB(100, 100, 100)),
		photo("SAME-4.jpg", RGB(100, 100, 100)),
	}

	got, err := SelectDiverse(pool, 3, Options{Rand: NewRand(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 photos from the fill pass, got %d", len(got))
	}
}

func TestSelectDiverse_DuplicateFilenamesCollapse(t *testing.T) {
	pool := []Photo{
		photo("AAAA-1.jpg", RGB(1, 1, 1)),
		photo("AAAA-1.jpg", RGB(1, 1, 1)),
		photo("AAAA-1.jpg", RGB(1, 1, 1)),
	}

	got, err := SelectDiverse(pool, 3, Options{Rand: NewRand(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 unique photo, got %d", len(got))
	}
}

func TestSelectDiverse_EmptyPool(t *testing.T) {
	got, err := SelectDiverse(nil, 6, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty selection, got %d", len(got))
	}
}

func TestSelectDiverse_NegativeCount(t *testing.T) {
	_, err := SelectDiverse(randomPool(1, 5), -1, Options{})
	if !errors.Is(err, ErrNegativeCount) {
		t.Errorf("expected ErrNegativeCount, got %v", err)
	}
}

func TestSelectDiverse_DoesNotModifyPool(t *testing.T) {
	pool := randomPool(9, 12)
	before := make([]Photo, len(pool))
	copy(before, pool)

	if _, err := SelectDiverse(pool, 6, Options{Rand: NewRand(9)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range pool {
		if pool[i] != before[i] {
			t.Fatalf("pool modified at index %d", i)
		}
	}
}

func TestSelectDiverse_SeedIsDeterministic(t *testing.T) {
	pool := randomPool(4, 15)

	a, _ := SelectDiverse(pool, 6, Options{Rand: NewRand(42)})
	b, _ := SelectDiverse(pool, 6, Options{Rand: NewRand(42)})

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("selection differs at %d: %q vs %q", i, a[i].Filename, b[i].Filename)
		}
	}
}

func TestSelectDiverse_AbsentColorsAreColorSafe(t *testing.T) {
	pool := []Photo{
		photo("AAAA-1.jpg", Color{}),
		photo("BBBB-1.jpg", Color{}),
		photo("CCCC-1.jpg", Color{}),
	}

	got, err := SelectDiverse(pool, 3, Options{ColorThreshold: 1e6, Rand: NewRand(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected all 3 colorless photos, got %d", len(got))
	}
}
