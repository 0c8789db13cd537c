package audio

import (
	"math"

	"github.com/gopxl/beep"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/neonhall/chipwave/music"
	"github.com/neonhall/chipwave/parameter"
)

// buildImpulseResponse synthesizes a room impulse: decaying noise shaped
// as (1 - t)^exponent, approximating an exponential-decay room tail
func buildImpulseResponse(sampleRate int, seconds, exponent float64) floatBuffer {
	length := int(seconds * float64(sampleRate))
	ir := noiseBuffer(length)
	for i := range ir {
		t := float64(i) / float64(length)
		ir[i] *= math.Pow(1-t, exponent)
	}
	// Keep the wet path from dwarfing the dry signal
	normalizePeak(ir, 1.0)
	energy := 0.0
	for _, v := range ir {
		energy += v * v
	}
	if energy > 0 {
		scale := 1 / math.Sqrt(energy)
		for i := range ir {
			ir[i] *= scale
		}
	}
	return ir
}

// convolver performs uniformly partitioned overlap-add FFT convolution,
// the streaming equivalent of a convolution node. The wet path carries a
// fixed one-block latency, which reads as reverb predelay
type convolver struct {
	block int
	fft   *fourier.FFT

	partitions [][]complex128 // IR partition spectra
	history    [][]complex128 // recent input block spectra, newest first

	inBuf   floatBuffer // input accumulation, len < block
	outQ    floatBuffer // ready output FIFO
	overlap floatBuffer // tail of the previous IFFT

	scratchSeq   []float64
	scratchCoeff []complex128
	accum        []complex128
}

func newConvolver(ir floatBuffer, block int) *convolver {
	n := 2 * block
	fft := fourier.NewFFT(n)
	bins := n/2 + 1

	numParts := (len(ir) + block - 1) / block
	c := &convolver{
		block:        block,
		fft:          fft,
		partitions:   make([][]complex128, numParts),
		history:      make([][]complex128, numParts),
		overlap:      make(floatBuffer, block),
		scratchSeq:   make([]float64, n),
		scratchCoeff: make([]complex128, bins),
		accum:        make([]complex128, bins),
	}

	seq := make([]float64, n)
	for p := 0; p < numParts; p++ {
		for i := range seq {
			seq[i] = 0
		}
		start := p * block
		end := start + block
		if end > len(ir) {
			end = len(ir)
		}
		copy(seq, ir[start:end])
		spec := make([]complex128, bins)
		fft.Coefficients(spec, seq)
		c.partitions[p] = spec
		c.history[p] = make([]complex128, bins)
	}

	// Prime the FIFO so output is causal with exactly one block of latency
	c.outQ = make(floatBuffer, block)
	return c
}

// process convolves in, returning exactly len(in) wet samples
func (c *convolver) process(in floatBuffer) floatBuffer {
	c.inBuf = append(c.inBuf, in...)
	for len(c.inBuf) >= c.block {
		c.processBlock(c.inBuf[:c.block])
		c.inBuf = c.inBuf[c.block:]
	}

	// The primed latency block guarantees the FIFO holds enough
	out := make(floatBuffer, len(in))
	n := copy(out, c.outQ)
	c.outQ = c.outQ[n:]
	return out
}

func (c *convolver) processBlock(in floatBuffer) {
	n := 2 * c.block

	// Rotate history: newest spectrum in front
	last := c.history[len(c.history)-1]
	copy(c.history[1:], c.history[:len(c.history)-1])
	c.history[0] = last

	for i := range c.scratchSeq {
		c.scratchSeq[i] = 0
	}
	copy(c.scratchSeq, in)
	c.fft.Coefficients(c.history[0], c.scratchSeq)

	for i := range c.accum {
		c.accum[i] = 0
	}
	for p, part := range c.partitions {
		h := c.history[p]
		for i := range c.accum {
			c.accum[i] += h[i] * part[i]
		}
	}

	c.fft.Sequence(c.scratchSeq, c.accum)
	inv := 1 / float64(n)

	blockOut := make(floatBuffer, c.block)
	for i := 0; i < c.block; i++ {
		blockOut[i] = c.scratchSeq[i]*inv + c.overlap[i]
		c.overlap[i] = c.scratchSeq[c.block+i] * inv
	}
	c.outQ = append(c.outQ, blockOut...)
}

// feedbackDelay is a mono delay line with feedback below unity, so each
// echo decays rather than running away
type feedbackDelay struct {
	ring     floatBuffer
	pos      int
	feedback float64
}

func newFeedbackDelay(sampleRate int, feedback float64) *feedbackDelay {
	n := int(parameter.DelayTime.Seconds() * float64(sampleRate))
	if n < 1 {
		n = 1
	}
	return &feedbackDelay{
		ring:     make(floatBuffer, n),
		feedback: feedback,
	}
}

// process returns the wet sample for one dry input sample
func (d *feedbackDelay) process(in float64) float64 {
	wet := d.ring[d.pos]
	d.ring[d.pos] = in + wet*d.feedback
	d.pos++
	if d.pos >= len(d.ring) {
		d.pos = 0
	}
	return wet
}

// effectsChain wraps a track bus with its wet sends. Reverb and delay are
// parallel sends: the dry signal passes through untouched and the wet
// signals are summed on top. Distortion, when configured, is an insert on
// the dry path. The chain is built fresh per track start and dies with
// its bus
type effectsChain struct {
	src *Bus

	reverbWet float64
	delayWet  float64
	drive     float64

	conv  *convolver
	delay *feedbackDelay

	mono floatBuffer
}

const convolverBlock = 1024

func newEffectsChain(src *Bus, fx music.EffectConfig, sampleRate int) *effectsChain {
	c := &effectsChain{
		src:       src,
		reverbWet: fx.Reverb,
		delayWet:  fx.Delay,
		drive:     fx.Distortion,
	}
	if fx.Reverb > 0 {
		ir := buildImpulseResponse(sampleRate, parameter.ReverbImpulseSeconds, parameter.ReverbDecayExponent)
		c.conv = newConvolver(ir, convolverBlock)
	}
	if fx.Delay > 0 {
		c.delay = newFeedbackDelay(sampleRate, parameter.DelayFeedback)
	}
	return c
}

// Stream implements beep.Streamer
func (c *effectsChain) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.src.Stream(samples)
	if n == 0 {
		return n, ok
	}

	if c.drive > 0 {
		g := 1 + c.drive*4
		for i := 0; i < n; i++ {
			samples[i][0] = math.Tanh(samples[i][0] * g)
			samples[i][1] = math.Tanh(samples[i][1] * g)
		}
	}

	if c.conv == nil && c.delay == nil {
		return n, ok
	}

	if cap(c.mono) < n {
		c.mono = make(floatBuffer, n)
	}
	mono := c.mono[:n]
	for i := 0; i < n; i++ {
		mono[i] = (samples[i][0] + samples[i][1]) * 0.5
	}

	if c.conv != nil {
		wet := c.conv.process(mono)
		for i := 0; i < n; i++ {
			samples[i][0] += wet[i] * c.reverbWet
			samples[i][1] += wet[i] * c.reverbWet
		}
	}

	if c.delay != nil {
		for i := 0; i < n; i++ {
			wet := c.delay.process(mono[i]) * c.delayWet
			samples[i][0] += wet
			samples[i][1] += wet
		}
	}

	return n, ok
}

// Err implements beep.Streamer
func (c *effectsChain) Err() error {
	return c.src.Err()
}

var _ beep.Streamer = (*effectsChain)(nil)
