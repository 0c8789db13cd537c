package audio

import (
	"math"
	"testing"

	"github.com/neonhall/chipwave/music"
)

// TestImpulseResponseShape verifies length, decay and energy normalization
func TestImpulseResponseShape(t *testing.T) {
	ir := buildImpulseResponse(8000, 0.5, 2.5)

	if len(ir) != 4000 {
		t.Fatalf("Expected 4000 samples, got %d", len(ir))
	}

	energy := 0.0
	for _, v := range ir {
		energy += v * v
	}
	if math.Abs(energy-1.0) > 1e-9 {
		t.Errorf("Expected unit energy, got %v", energy)
	}

	// The tail must carry far less energy than the head
	rms := func(seg floatBuffer) float64 {
		sum := 0.0
		for _, v := range seg {
			sum += v * v
		}
		return math.Sqrt(sum / float64(len(seg)))
	}
	head := rms(ir[:400])
	tail := rms(ir[3600:])
	if tail >= head/10 {
		t.Errorf("Expected decaying tail, head RMS %v tail RMS %v", head, tail)
	}
}

// TestConvolverIdentity verifies a unit-impulse IR passes the signal
// through with exactly one block of latency
func TestConvolverIdentity(t *testing.T) {
	const block = 64
	c := newConvolver(floatBuffer{1}, block)

	in := make(floatBuffer, 3*block)
	for i := range in {
		in[i] = float64(i%17) - 8
	}

	out := c.process(in)
	if len(out) != len(in) {
		t.Fatalf("Expected %d output samples, got %d", len(in), len(out))
	}

	for i := 0; i < block; i++ {
		if math.Abs(out[i]) > 1e-9 {
			t.Fatalf("Sample %d: expected latency silence, got %v", i, out[i])
		}
	}
	for i := block; i < len(out); i++ {
		if math.Abs(out[i]-in[i-block]) > 1e-9 {
			t.Fatalf("Sample %d: expected %v, got %v", i, in[i-block], out[i])
		}
	}
}

// TestConvolverDelayedImpulse verifies a shifted-delta IR shifts the
// signal by the IR delay plus the block latency
func TestConvolverDelayedImpulse(t *testing.T) {
	const block = 64
	const shift = 10
	ir := make(floatBuffer, shift+1)
	ir[shift] = 1
	c := newConvolver(ir, block)

	in := make(floatBuffer, 4*block)
	in[0] = 1

	out := c.process(in)
	for i, v := range out {
		want := 0.0
		if i == block+shift {
			want = 1
		}
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("Sample %d: expected %v, got %v", i, want, v)
		}
	}
}

// TestConvolverLongIR verifies multi-partition convolution across
// streaming chunk boundaries
func TestConvolverLongIR(t *testing.T) {
	const block = 32
	ir := make(floatBuffer, 3*block) // three partitions
	ir[0] = 0.5
	ir[block+5] = 0.25
	ir[2*block+7] = 0.125

	c := newConvolver(ir, block)

	in := make(floatBuffer, 6*block)
	in[3] = 1

	// Feed in uneven chunks to cross block boundaries
	var out floatBuffer
	out = append(out, c.process(in[:50])...)
	out = append(out, c.process(in[50:130])...)
	out = append(out, c.process(in[130:])...)

	expect := map[int]float64{
		block + 3:               0.5,
		block + 3 + block + 5:   0.25,
		block + 3 + 2*block + 7: 0.125,
	}
	for i, v := range out {
		if math.Abs(v-expect[i]) > 1e-9 {
			t.Fatalf("Sample %d: expected %v, got %v", i, expect[i], v)
		}
	}
}

// TestFeedbackDelayEcho verifies the echo spacing and decaying feedback
func TestFeedbackDelayEcho(t *testing.T) {
	const rate = 1000 // ring of 375 samples
	d := newFeedbackDelay(rate, 0.3)
	ring := len(d.ring)

	if ring != 375 {
		t.Fatalf("Expected 375-sample ring at 1kHz, got %d", ring)
	}

	var out floatBuffer
	for i := 0; i < 3*ring+1; i++ {
		in := 0.0
		if i == 0 {
			in = 1
		}
		out = append(out, d.process(in))
	}

	for i, v := range out {
		want := 0.0
		switch i {
		case ring:
			want = 1
		case 2 * ring:
			want = 0.3
		case 3 * ring:
			want = 0.09
		}
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("Sample %d: expected %v, got %v", i, want, v)
		}
	}
}

// TestEffectsChainPassthrough verifies a dry config leaves the signal alone
func TestEffectsChainPassthrough(t *testing.T) {
	b := NewBus(onesStreamer{}, 1000)
	b.RampLinear(0.5, 0) // lands immediately on the first sample
	chain := newEffectsChain(b, music.EffectConfig{}, 1000)

	out := pull(chain, 64)
	for i := 1; i < len(out); i++ {
		if math.Abs(out[i][0]-0.5) > 1e-9 {
			t.Fatalf("Sample %d: expected dry 0.5, got %v", i, out[i][0])
		}
	}
}

// TestEffectsChainReverbAddsTail verifies the wet send adds energy after
// the dry signal
func TestEffectsChainReverbAddsTail(t *testing.T) {
	const rate = 4000
	mix := newSafeMixer()
	mix.Add(newBufferStreamer(floatBuffer{1, 1, 1, 1}, 1))
	b := NewBus(mix, rate)
	b.RampLinear(1, 0)

	chain := newEffectsChain(b, music.EffectConfig{Reverb: 0.5}, rate)

	// Well past the convolver latency the tail should still ring
	out := pull(chain, convolverBlock*3)
	tailEnergy := 0.0
	for _, s := range out[convolverBlock+8:] {
		tailEnergy += s[0] * s[0]
	}
	if tailEnergy == 0 {
		t.Error("Expected a reverb tail after the dry burst")
	}
}

// TestEffectsChainDistortionBounds verifies the drive insert saturates
// instead of clipping hard
func TestEffectsChainDistortionBounds(t *testing.T) {
	b := NewBus(onesStreamer{}, 1000)
	b.RampLinear(1, 0)
	chain := newEffectsChain(b, music.EffectConfig{Distortion: 0.5}, 1000)

	out := pull(chain, 64)
	for i, s := range out {
		if math.Abs(s[0]) >= 1 {
			t.Fatalf("Sample %d: expected tanh-bounded output, got %v", i, s[0])
		}
	}
}
