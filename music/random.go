package music

import "errors"

// ErrEmptyCollection is returned by Pick on an empty slice
var ErrEmptyCollection = errors.New("pick from empty collection")

// SeededRandom is a deterministic xorshift32 generator
// Identical seed and call sequence always produce identical output,
// so a generated track is fully described by (track id, seed)
type SeededRandom struct {
	state uint32
}

// NewSeededRandom creates a generator from an integer seed
// A zero seed is remapped; xorshift has a fixed point at zero
func NewSeededRandom(seed int) *SeededRandom {
	s := uint32(seed)
	if s == 0 {
		s = 0x9e3779b9
	}
	return &SeededRandom{state: s}
}

// Next returns a float in [0, 1) and advances the state
func (r *SeededRandom) Next() float64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 17
	r.state ^= r.state << 5
	return float64(r.state) / (1 << 32)
}

// NextInt returns an integer in [min, max] inclusive
func (r *SeededRandom) NextInt(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + int(r.Next()*float64(max-min+1))
}

// Pick selects one element uniformly
func Pick[T any](r *SeededRandom, list []T) (T, error) {
	var zero T
	if len(list) == 0 {
		return zero, ErrEmptyCollection
	}
	return list[r.NextInt(0, len(list)-1)], nil
}

// Shuffle returns a new Fisher-Yates shuffled copy; the input is untouched
func Shuffle[T any](r *SeededRandom, list []T) []T {
	out := make([]T, len(list))
	copy(out, list)
	for i := len(out) - 1; i > 0; i-- {
		j := r.NextInt(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
