package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/neonhall/chipwave/parameter"
)

// onesStreamer emits a constant unit signal forever
type onesStreamer struct{}

func (onesStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i][0] = 1
		samples[i][1] = 1
	}
	return len(samples), true
}

func (onesStreamer) Err() error { return nil }

func pull(s beep.Streamer, n int) [][2]float64 {
	out := make([][2]float64, n)
	pos := 0
	for pos < n {
		k, ok := s.Stream(out[pos:])
		pos += k
		if !ok || k == 0 {
			break
		}
	}
	return out
}

// TestBusStartsAtFloor verifies a fresh bus is effectively silent
func TestBusStartsAtFloor(t *testing.T) {
	b := NewBus(onesStreamer{}, 1000)
	out := pull(b, 10)
	for i, s := range out {
		if math.Abs(s[0]) > parameter.RampFloor*1.01 {
			t.Fatalf("Sample %d: expected floor gain, got %v", i, s[0])
		}
	}
}

// TestBusLinearRamp verifies the gain lands on target after the ramp
func TestBusLinearRamp(t *testing.T) {
	b := NewBus(onesStreamer{}, 1000)
	b.RampLinear(0.8, 100*time.Millisecond) // 100 samples at 1kHz

	out := pull(b, 200)

	if g := b.Gain(); math.Abs(g-0.8) > 1e-9 {
		t.Errorf("Expected gain 0.8 after ramp, got %v", g)
	}
	if got := out[199][0]; math.Abs(got-0.8) > 1e-9 {
		t.Errorf("Expected post-ramp sample at 0.8, got %v", got)
	}
	// Mid-ramp samples must be strictly between floor and target
	mid := out[50][0]
	if mid <= parameter.RampFloor || mid >= 0.8 {
		t.Errorf("Expected mid-ramp sample inside (floor, 0.8), got %v", mid)
	}
}

// TestBusExponentialRamp verifies a click-free exponential rise to target
func TestBusExponentialRamp(t *testing.T) {
	b := NewBus(onesStreamer{}, 1000)
	b.RampExponential(0.5, 100*time.Millisecond)

	out := pull(b, 150)

	if g := b.Gain(); math.Abs(g-0.5) > 1e-9 {
		t.Errorf("Expected gain 0.5 after ramp, got %v", g)
	}
	// Monotonic rise
	prev := -1.0
	for i := 0; i < 100; i++ {
		if out[i][0] < prev-1e-12 {
			t.Fatalf("Sample %d: gain decreased during rise (%v -> %v)", i, prev, out[i][0])
		}
		prev = out[i][0]
	}
}

// TestBusRampTargetBelowFloorClamped verifies exponential targets clamp
// to the floor instead of crossing zero
func TestBusRampTargetBelowFloorClamped(t *testing.T) {
	b := NewBus(onesStreamer{}, 1000)
	b.RampExponential(0.5, 10*time.Millisecond)
	pull(b, 20)

	b.RampExponential(0, 10*time.Millisecond)
	pull(b, 20)

	if g := b.Gain(); math.Abs(g-parameter.RampFloor) > 1e-12 {
		t.Errorf("Expected gain clamped to floor, got %v", g)
	}
}

// TestBusFadeOutAndClose verifies the bus releases itself once the
// fade-out lands
func TestBusFadeOutAndClose(t *testing.T) {
	b := NewBus(onesStreamer{}, 1000)
	b.RampExponential(0.5, 10*time.Millisecond)
	pull(b, 20)

	b.FadeOutAndClose(50 * time.Millisecond) // 50 samples

	out := make([][2]float64, 40)
	if n, ok := b.Stream(out); n != 40 || !ok {
		t.Fatalf("Expected full stream mid-fade, got n=%d ok=%v", n, ok)
	}
	if b.Closed() {
		t.Fatal("Expected bus open before the fade lands")
	}

	// Crossing the ramp end closes the bus on that same call
	if _, ok := b.Stream(out[:20]); ok {
		t.Error("Expected ok=false once the fade lands")
	}
	if !b.Closed() {
		t.Error("Expected bus closed after the fade lands")
	}
	if n, ok := b.Stream(out); n != 0 || ok {
		t.Errorf("Expected drained bus, got n=%d ok=%v", n, ok)
	}
}

// TestMixerDropsClosedBus verifies a closed bus leaves the mix
func TestMixerDropsClosedBus(t *testing.T) {
	m := newSafeMixer()
	b := NewBus(onesStreamer{}, 1000)
	m.Add(b)

	b.FadeOutAndClose(10 * time.Millisecond) // 10 samples
	pull(m, 64)

	if m.Len() != 0 {
		t.Errorf("Expected closed bus dropped from mix, got %d live", m.Len())
	}
}

// TestMixerSumsAndDropsDrained verifies summing and single-use note cleanup
func TestMixerSumsAndDropsDrained(t *testing.T) {
	m := newSafeMixer()
	m.Add(newBufferStreamer(floatBuffer{1, 1, 1, 1}, 0.5))
	m.Add(newBufferStreamer(floatBuffer{1, 1}, 0.25))

	out := pull(m, 8)

	if math.Abs(out[0][0]-0.75) > 1e-9 {
		t.Errorf("Expected summed 0.75, got %v", out[0][0])
	}
	if math.Abs(out[2][0]-0.5) > 1e-9 {
		t.Errorf("Expected 0.5 after short note drained, got %v", out[2][0])
	}
	if out[6][0] != 0 {
		t.Errorf("Expected silence after both drained, got %v", out[6][0])
	}
	if m.Len() != 0 {
		t.Errorf("Expected all drained notes dropped, got %d live", m.Len())
	}
}
