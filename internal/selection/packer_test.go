package selection

import (
	"errors"
	"testing"
)

func TestPackBatches_IsPartition(t *testing.T) {
	for seed := range uint64(60) {
		pool := randomPool(seed, int(seed%25))
		r := NewRand(seed)
		calls := 0
		pick := WeightedSizePicker(r, DefaultSlideWeights)
		counting := func() int {
			calls++
			return pick()
		}

		batches, err := PackBatches(pool, counting, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls > len(pool) {
			t.Errorf("seed %d: %d iterations for %d photos", seed, calls, len(pool))
		}
		if calls != len(batches) {
			t.Errorf("seed %d: picker called %d times for %d batches", seed, calls, len(batches))
		}

		counts := make(map[Photo]int)
		for _, p := range pool {
			counts[p]++
		}
		for _, b := range batches {
			if len(b) == 0 {
				t.Errorf("seed %d: empty batch", seed)
			}
			for _, p := range b {
				counts[p]--
			}
		}
		for p, n := range counts {
			if n != 0 {
				t.Errorf("seed %d: photo %q count off by %d", seed, p.Filename, n)
			}
		}
	}
}

func TestPackBatches_GracefulDegradation(t *testing.T) {
	pool := []Photo{
		photo("AAAA-1.jpg", RGB(255, 0, 0)),
		photo("BBBB-1.jpg", RGB(250, 0, 0)),
	}

	batches, err := PackBatches(pool, FixedSizePicker(4), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("expected a single batch, got %d", len(batches))
	}
	if len(batches[0]) != 2 {
		t.Errorf("expected batch of 2, got %d", len(batches[0]))
	}
}

func TestPackBatches_StrictBeforeRelaxed(t *testing.T) {
	pool := []Photo{
		photo("AAAA-1.jpg", RGB(255, 0, 0)),
		photo("BBBB-1.jpg", RGB(250, 5, 5)),  // similar color to anchor
		photo("AAAA-2.jpg", RGB(0, 255, 0)),  // same prefix as anchor
		photo("CCCC-1.jpg", RGB(0, 0, 255)),  // fits strictly
		photo("DDDD-1.jpg", RGB(0, 250, 10)), // fits strictly
	}

	batches, err := PackBatches(pool, FixedSizePicker(3), Options{ColorThreshold: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := batches[0]
	want := []string{"AAAA-1.jpg", "CCCC-1.jpg", "DDDD-1.jpg"}
	if len(first) != len(want) {
		t.Fatalf("expected first batch of %d, got %d", len(want), len(first))
	}
	for i, name := range want {
		if first[i].Filename != name {
			t.Errorf("first batch[%d] = %q; want %q", i, first[i].Filename, name)
		}
	}

	// BBBB-1 anchors the second batch; AAAA-2 fits it strictly.
	if len(batches) != 2 || len(batches[1]) != 2 {
		t.Fatalf("expected second batch of 2, got %v", batches)
	}
	if batches[1][0].Filename != "BBBB-1.jpg" || batches[1][1].Filename != "AAAA-2.jpg" {
		t.Errorf("unexpected second batch: %v", batches[1])
	}
}

func TestPackBatches_RelaxesColorWhenShort(t *testing.T) {
	pool := []Photo{
		photo("AAAA-1.jpg", RGB(255, 0, 0)),
		photo("BBBB-1.jpg", RGB(254, 0, 0)),
		photo("CCCC-1.jpg", RGB(253, 0, 0)),
	}

	batches, err := PackBatches(pool, FixedSizePicker(3), Options{ColorThreshold: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batches) != 1 || len(batches[0]) != 3 {
		t.Errorf("expected one batch of 3 after relaxing color, got %v", batches)
	}
}

func TestPackBatches_SamePrefixNeverShared(t *testing.T) {
	pool := []Photo{
		photo("AAAA-1.jpg", RGB(255, 0, 0)),
		photo("AAAA-2.jpg", RGB(0, 255, 0)),
		photo("AAAA-3.jpg", RGB(0, 0, 255)),
	}

	batches, err := PackBatches(pool, FixedSizePicker(4), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batches) != 3 {
		t.Errorf("expected 3 single-photo batches, got %d", len(batches))
	}
}

func TestPackBatches_NonPositiveSizeStillProgresses(t *testing.T) {
	pool := randomPool(3, 7)

	batches, err := PackBatches(pool, FixedSizePicker(0), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batches) != len(pool) {
		t.Errorf("expected %d single batches, got %d", len(pool), len(batches))
	}
}

func TestPackBatches_DoesNotModifyPool(t *testing.T) {
	pool := randomPool(8, 10)
	before := make([]Photo, len(pool))
	copy(before, pool)

	if _, err := PackBatches(pool, FixedSizePicker(3), Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range pool {
		if pool[i] != before[i] {
			t.Fatalf("pool modified at index %d", i)
		}
	}
}

func TestPackBatches_NilPicker(t *testing.T) {
	_, err := PackBatches(randomPool(1, 3), nil, Options{})
	if !errors.Is(err, ErrNilSizePicker) {
		t.Errorf("expected ErrNilSizePicker, got %v", err)
	}
}

func TestPackBatches_EmptyPool(t *testing.T) {
	batches, err := PackBatches(nil, FixedSizePicker(3), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batches) != 0 {
		t.Errorf("expected no batches, got %d", len(batches))
	}
}

func TestWeightedSizePicker(t *testing.T) {
	pick := WeightedSizePicker(NewRand(99), DefaultSlideWeights)
	seen := make(map[int]int)
	for range 1000 {
		seen[pick()]++
	}

	for size := range seen {
		if size != 1 && size != 3 && size != 4 {
			t.Errorf("unexpected size %d", size)
		}
	}
	for _, size := range []int{1, 3, 4} {
		if seen[size] == 0 {
			t.Errorf("size %d never drawn", size)
		}
	}
	if seen[1] > seen[3] || seen[1] > seen[4] {
		t.Errorf("size 1 should be the least likely, got %v", seen)
	}
}

func TestWeightedSizePicker_NoWeights(t *testing.T) {
	pick := WeightedSizePicker(NewRand(1), nil)
	if got := pick(); got != 1 {
		t.Errorf("expected 1 with no weights, got %d", got)
	}
}
