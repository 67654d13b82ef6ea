package selection

import (
	"errors"
	"testing"
)

func TestSelectCoordinated_BoundsAndUniqueness(t *testing.T) {
	for seed := range uint64(50) {
		pool := randomPool(seed, int(seed%20))
		for _, count := range []int{0, 1, 4, 6, 30} {
			got, err := SelectCoordinated(pool, count, Options{Rand: NewRand(seed)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) > min(count, len(pool)) {
				t.Errorf("seed %d: got %d photos, want at most %d", seed, len(got), min(count, len(pool)))
			}
			assertDistinctFromPool(t, pool, got)
		}
	}
}

func TestSelectCoordinated_PrefersCloseColors(t *testing.T) {
	// Two color families with unique prefixes; whichever seed is drawn, the
	// other two picks must come from its family.
	pool := []Photo{
		photo("WRM1-a.jpg", RGB(250, 120, 40)),
		photo("WRM2-a.jpg", RGB(240, 130, 50)),
		photo("WRM3-a.jpg", RGB(230, 110, 30)),
		photo("COL1-a.jpg", RGB(20, 60, 220)),
		photo("COL2-a.jpg", RGB(30, 70, 230)),
		photo("COL3-a.jpg", RGB(10, 50, 210)),
	}

	for seed := range uint64(30) {
		got, err := SelectCoordinated(pool, 3, Options{Rand: NewRand(seed)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 photos, got %d", len(got))
		}
		family := got[0].Filename[:3]
		for _, p := range got[1:] {
			if p.Filename[:3] != family {
				t.Errorf("seed %d: mixed color families %q and %q", seed, got[0].Filename, p.Filename)
			}
		}
	}
}

func TestSelectCoordinated_SkipsConflictingPrefix(t *testing.T) {
	pool := []Photo{
		photo("AAAA-1.jpg", RGB(200, 0, 0)),
		photo("AAAA-2.jpg", RGB(201, 0, 0)),
		photo("BBBB-1.jpg", RGB(100, 0, 0)),
	}

	for seed := range uint64(30) {
		got, err := SelectCoordinated(pool, 2, Options{Rand: NewRand(seed)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 photos, got %d", len(got))
		}
		if got[0].Prefix() == got[1].Prefix() {
			t.Errorf("seed %d: closer photo with used prefix was taken over a valid farther one", seed)
		}
	}
}

func TestSelectCoordinated_FallsBackToFill(t *testing.T) {
	pool := []Photo{
		photo("SAME-1.jpg", RGB(10, 10, 10)),
		photo("SAME-2.jpg", RGB(200, 200, 200)),
		photo("SAME-3.jpg", Color{}),
	}

	got, err := SelectCoordinated(pool, 3, Options{Rand: NewRand(11)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 photos after relaxation, got %d", len(got))
	}
}

func TestSelectCoordinated_SeedNotAlwaysFirst(t *testing.T) {
	pool := []Photo{
		photo("AAAA-1.jpg", RGB(10, 10, 10)),
		photo("BBBB-1.jpg", RGB(20, 20, 20)),
		photo("CCCC-1.jpg", RGB(30, 30, 30)),
	}

	firsts := make(map[string]bool)
	for seed := range uint64(40) {
		got, _ := SelectCoordinated(pool, 3, Options{Rand: NewRand(seed)})
		firsts[got[0].Filename] = true
	}
	if len(firsts) < 2 {
		t.Errorf("expected the first photo to vary across seeds, got %v", firsts)
	}
}

func TestSelectCoordinated_NegativeCount(t *testing.T) {
	_, err := SelectCoordinated(randomPool(2, 4), -3, Options{})
	if !errors.Is(err, ErrNegativeCount) {
		t.Errorf("expected ErrNegativeCount, got %v", err)
	}
}
