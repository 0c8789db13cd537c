package music

import (
	"errors"
	"sort"
	"testing"
)

// TestSeededRandomDeterminism verifies identical seeds yield identical streams
func TestSeededRandomDeterminism(t *testing.T) {
	a := NewSeededRandom(12345)
	b := NewSeededRandom(12345)

	for i := 0; i < 1000; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("Streams diverged at draw %d: %v != %v", i, va, vb)
		}
	}
}

// TestSeededRandomDifferentSeeds verifies distinct seeds diverge
func TestSeededRandomDifferentSeeds(t *testing.T) {
	a := NewSeededRandom(1)
	b := NewSeededRandom(2)

	same := true
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected different seeds to produce different streams")
	}
}

// TestSeededRandomZeroSeed verifies the zero seed is remapped and produces output
func TestSeededRandomZeroSeed(t *testing.T) {
	r := NewSeededRandom(0)
	v := r.Next()
	if v < 0 || v >= 1 {
		t.Errorf("Expected value in [0,1), got %v", v)
	}
	// A stuck generator repeats forever; check the stream moves
	if r.Next() == v && r.Next() == v {
		t.Error("Expected zero-seeded generator to advance")
	}
}

// TestNextRange verifies Next stays in [0, 1)
func TestNextRange(t *testing.T) {
	r := NewSeededRandom(77)
	for i := 0; i < 10000; i++ {
		v := r.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("Draw %d out of range: %v", i, v)
		}
	}
}

// TestNextIntRange verifies NextInt covers [min, max] inclusive
func TestNextIntRange(t *testing.T) {
	r := NewSeededRandom(99)
	seen := make(map[int]bool)

	for i := 0; i < 10000; i++ {
		v := r.NextInt(-3, 3)
		if v < -3 || v > 3 {
			t.Fatalf("Draw %d out of range: %d", i, v)
		}
		seen[v] = true
	}

	// Both endpoints should be reachable over this many draws
	if !seen[-3] || !seen[3] {
		t.Errorf("Expected both endpoints to occur, saw %v", seen)
	}
}

// TestNextIntReversedBounds verifies swapped bounds still work
func TestNextIntReversedBounds(t *testing.T) {
	r := NewSeededRandom(5)
	for i := 0; i < 100; i++ {
		v := r.NextInt(10, 2)
		if v < 2 || v > 10 {
			t.Fatalf("Draw %d out of range: %d", i, v)
		}
	}
}

// TestNextIntSingleValue verifies a degenerate range returns that value
func TestNextIntSingleValue(t *testing.T) {
	r := NewSeededRandom(8)
	for i := 0; i < 10; i++ {
		if v := r.NextInt(4, 4); v != 4 {
			t.Fatalf("Expected 4, got %d", v)
		}
	}
}

// TestPick verifies Pick selects a member of the slice
func TestPick(t *testing.T) {
	r := NewSeededRandom(3)
	list := []string{"a", "b", "c"}

	for i := 0; i < 100; i++ {
		v, err := Pick(r, list)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if v != "a" && v != "b" && v != "c" {
			t.Fatalf("Picked value %q not in list", v)
		}
	}
}

// TestPickSingleElement verifies a one-element slice always returns it
func TestPickSingleElement(t *testing.T) {
	r := NewSeededRandom(3)
	v, err := Pick(r, []int{42})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("Expected 42, got %d", v)
	}
}

// TestPickEmpty verifies Pick reports ErrEmptyCollection
func TestPickEmpty(t *testing.T) {
	r := NewSeededRandom(3)
	_, err := Pick(r, []int{})
	if !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("Expected ErrEmptyCollection, got %v", err)
	}
}

// TestShufflePermutation verifies Shuffle preserves elements and leaves
// the input untouched
func TestShufflePermutation(t *testing.T) {
	r := NewSeededRandom(17)
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	orig := make([]int, len(in))
	copy(orig, in)

	out := Shuffle(r, in)

	for i := range in {
		if in[i] != orig[i] {
			t.Fatal("Expected input slice to be unmodified")
		}
	}

	if len(out) != len(in) {
		t.Fatalf("Expected %d elements, got %d", len(in), len(out))
	}
	sorted := make([]int, len(out))
	copy(sorted, out)
	sort.Ints(sorted)
	for i := range sorted {
		if sorted[i] != i+1 {
			t.Fatalf("Shuffle is not a permutation: %v", out)
		}
	}
}

// TestShuffleDeterminism verifies identical seeds shuffle identically
func TestShuffleDeterminism(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	a := Shuffle(NewSeededRandom(42), in)
	b := Shuffle(NewSeededRandom(42), in)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Shuffles diverged at %d: %v vs %v", i, a, b)
		}
	}
}
