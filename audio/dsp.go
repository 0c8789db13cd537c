package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"

	"github.com/neonhall/chipwave/core"
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator renders a fixed-frequency waveform
func oscillator(wave core.Waveform, freq float64, samples, sampleRate int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(sampleRate)

	for i := 0; i < samples; i++ {
		buf[i] = waveSample(wave, phase)
		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// sweepOscillator renders a waveform whose frequency glides from start to
// end with an exponential contour
func sweepOscillator(wave core.Waveform, startFreq, endFreq float64, samples, sampleRate int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	ratio := endFreq / startFreq

	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := startFreq * math.Pow(ratio, t)
		buf[i] = waveSample(wave, phase)
		phase += freq / float64(sampleRate)
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

func waveSample(wave core.Waveform, phase float64) float64 {
	switch wave {
	case core.WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case core.WaveSawtooth:
		return 2.0*phase - 1.0
	case core.WaveTriangle:
		if phase < 0.5 {
			return 4.0*phase - 1.0
		}
		return 3.0 - 4.0*phase
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// noiseBuffer renders white noise; IR and percussion textures are effect
// material, not part of the reproducible composition, so math/rand is fine
func noiseBuffer(samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	for i := range buf {
		buf[i] = rand.Float64()*2 - 1
	}
	return buf
}

// applyExpDecay shapes the buffer with e^(-k*t), t in [0,1]
func applyExpDecay(buf floatBuffer, k float64) {
	n := len(buf)
	for i := range buf {
		t := float64(i) / float64(n)
		buf[i] *= math.Exp(-k * t)
	}
}

// applyExpRise shapes the buffer with a rising exponential envelope,
// normalized to end at 1
func applyExpRise(buf floatBuffer, k float64) {
	n := len(buf)
	scale := 1.0 / (math.Exp(k) - 1)
	for i := range buf {
		t := float64(i) / float64(n)
		buf[i] *= (math.Exp(k*t) - 1) * scale
	}
}

// applyAttackRelease applies a linear attack and release in place
func applyAttackRelease(buf floatBuffer, attackSamples, releaseSamples int) {
	total := len(buf)
	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := range buf {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// applyLeadEnvelope: linear attack, sustain plateau through most of the
// note, then exponential release
func applyLeadEnvelope(buf floatBuffer, attackFrac, sustainAmp, sustainFrac float64) {
	total := len(buf)
	attackEnd := int(attackFrac * float64(total))
	sustainEnd := int(sustainFrac * float64(total))
	if sustainEnd < attackEnd {
		sustainEnd = attackEnd
	}

	for i := range buf {
		var vol float64
		switch {
		case i < attackEnd:
			vol = sustainAmp * float64(i) / float64(attackEnd)
		case i < sustainEnd:
			vol = sustainAmp
		default:
			t := float64(i-sustainEnd) / float64(total-sustainEnd)
			vol = sustainAmp * math.Exp(-6*t)
		}
		buf[i] *= vol
	}
}

// biquad is an RBJ-cookbook second-order filter applied in place
func biquad(buf floatBuffer, kind core.FilterKind, cutoff, q float64, sampleRate int) {
	if cutoff <= 0 || q <= 0 {
		return
	}
	// Clamp below Nyquist to keep coefficients stable
	nyquist := float64(sampleRate) / 2
	if cutoff >= nyquist {
		cutoff = nyquist * 0.99
	}

	w := 2 * math.Pi * cutoff / float64(sampleRate)
	cosw := math.Cos(w)
	sinw := math.Sin(w)
	alpha := sinw / (2 * q)

	var b0, b1, b2, a0, a1, a2 float64
	switch kind {
	case core.FilterHighpass:
		b0 = (1 + cosw) / 2
		b1 = -(1 + cosw)
		b2 = (1 + cosw) / 2
	case core.FilterBandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
	default: // lowpass
		b0 = (1 - cosw) / 2
		b1 = 1 - cosw
		b2 = (1 - cosw) / 2
	}
	a0 = 1 + alpha
	a1 = -2 * cosw
	a2 = 1 - alpha

	var x1, x2, y1, y2 float64
	for i, x0 := range buf {
		y0 := (b0*x0 + b1*x1 + b2*x2 - a1*y1 - a2*y2) / a0
		x2, x1 = x1, x0
		y2, y1 = y1, y0
		buf[i] = y0
	}
}

// onePoleSweep runs a one-pole lowpass whose normalized cutoff coefficient
// glides from start to end across the buffer; the lead's "closing" timbre
// and the riser's opening sweep both use it
func onePoleSweep(buf floatBuffer, startCoeff, endCoeff float64) {
	state := 0.0
	n := len(buf)
	for i := range buf {
		t := float64(i) / float64(n)
		coeff := startCoeff + (endCoeff-startCoeff)*t
		state += coeff * (buf[i] - state)
		buf[i] = state
	}
}

// softClip applies tanh saturation scaled by drive
func softClip(buf floatBuffer, drive float64) {
	if drive <= 0 {
		return
	}
	g := 1 + drive*4
	for i := range buf {
		buf[i] = math.Tanh(buf[i] * g)
	}
}

// normalizePeak scales the buffer so its absolute peak is target
func normalizePeak(buf floatBuffer, target float64) {
	peak := 0.0
	for _, v := range buf {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}
	scale := target / peak
	for i := range buf {
		buf[i] *= scale
	}
}

// mixInto adds b into a at the given scale, extending a if needed
func mixInto(a, b floatBuffer, scale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * scale
	}
	return a
}

// bufferStreamer plays a mono buffer once, then reports drained
// Each synthesized note is one of these: a short-lived, single-use node
// dropped by the mixer as soon as its envelope completes
type bufferStreamer struct {
	buf    floatBuffer
	pos    int
	volume float64
}

func newBufferStreamer(buf floatBuffer, volume float64) *bufferStreamer {
	return &bufferStreamer{buf: buf, volume: volume}
}

func (s *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	n := 0
	for i := range samples {
		if s.pos >= len(s.buf) {
			break
		}
		v := s.buf[s.pos] * s.volume
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *bufferStreamer) Err() error { return nil }

var _ beep.Streamer = (*bufferStreamer)(nil)
