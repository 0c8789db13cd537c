package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/neonhall/chipwave/parameter"
)

// rampCurve selects gain interpolation shape
type rampCurve int

const (
	rampLinear rampCurve = iota
	rampExponential
)

// Bus is a gain stage over a voice mixer, the per-track equivalent of a
// master gain node. Gain changes are ramped sample-accurately to stay
// click-free. A bus can be told to close once its fade-out lands, which
// makes downstream mixers drop it
type Bus struct {
	mu sync.Mutex

	source beep.Streamer
	rate   beep.SampleRate

	gain        float64
	target      float64
	curve       rampCurve
	rampStep    float64 // linear: additive; exponential: multiplicative
	rampRemain  int     // samples left in the ramp
	closeOnRamp bool
	closed      bool
}

// NewBus wraps source with a gain stage starting at the ramp floor
func NewBus(source beep.Streamer, rate beep.SampleRate) *Bus {
	return &Bus{
		source: source,
		rate:   rate,
		gain:   parameter.RampFloor,
		target: parameter.RampFloor,
	}
}

// Gain returns the current gain value
func (b *Bus) Gain() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gain
}

// RampLinear schedules a linear gain ramp to target over the duration
func (b *Bus) RampLinear(target float64, over time.Duration) {
	b.setRamp(target, over, rampLinear, false)
}

// RampExponential schedules an exponential gain ramp to target
// Exponential ramps cannot cross zero; targets below the floor are clamped
func (b *Bus) RampExponential(target float64, over time.Duration) {
	b.setRamp(target, over, rampExponential, false)
}

// FadeOutAndClose ramps to the floor and closes the bus when the ramp
// completes, releasing it from downstream mixers
func (b *Bus) FadeOutAndClose(over time.Duration) {
	b.setRamp(parameter.RampFloor, over, rampExponential, true)
}

func (b *Bus) setRamp(target float64, over time.Duration, curve rampCurve, thenClose bool) {
	if target < parameter.RampFloor {
		target = parameter.RampFloor
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.rate.N(over)
	if n < 1 {
		n = 1
	}

	b.target = target
	b.curve = curve
	b.rampRemain = n
	b.closeOnRamp = thenClose

	switch curve {
	case rampExponential:
		start := b.gain
		if start < parameter.RampFloor {
			start = parameter.RampFloor
		}
		b.rampStep = math.Pow(target/start, 1/float64(n))
	default:
		b.rampStep = (target - b.gain) / float64(n)
	}
}

// Closed reports whether the bus has been released
func (b *Bus) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Stream implements beep.Streamer
func (b *Bus) Stream(samples [][2]float64) (int, bool) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return 0, false
	}
	b.mu.Unlock()

	n, ok := b.source.Stream(samples)

	b.mu.Lock()
	for i := 0; i < n; i++ {
		if b.rampRemain > 0 {
			if b.curve == rampExponential {
				b.gain *= b.rampStep
			} else {
				b.gain += b.rampStep
			}
			b.rampRemain--
			if b.rampRemain == 0 {
				b.gain = b.target
				if b.closeOnRamp {
					b.closed = true
				}
			}
		}
		samples[i][0] *= b.gain
		samples[i][1] *= b.gain
	}
	closed := b.closed
	b.mu.Unlock()

	if closed {
		return n, false
	}
	return n, ok
}

// Err implements beep.Streamer
func (b *Bus) Err() error {
	return b.source.Err()
}
