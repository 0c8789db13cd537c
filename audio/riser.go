package audio

import (
	"github.com/neonhall/chipwave/core"
	"github.com/neonhall/chipwave/parameter"
)

// buildRiser renders the multi-bar transition cue: a filtered-noise sweep
// opening towards the phrase boundary, layered with a pitch-rising
// sawtooth, both under rising exponential envelopes
func buildRiser(rate int, barSeconds float64) floatBuffer {
	samples := int(float64(parameter.RiserBars) * barSeconds * float64(rate))
	if samples <= 0 {
		return nil
	}

	sweep := noiseBuffer(samples)
	onePoleSweep(sweep, onePoleCoeff(200, rate), onePoleCoeff(8000, rate))
	applyExpRise(sweep, 4)

	saw := sweepOscillator(core.WaveSawtooth, parameter.RiserSawStart, parameter.RiserSawEnd, samples, rate)
	applyExpRise(saw, 4)

	buf := make(floatBuffer, samples)
	buf = mixInto(buf, sweep, parameter.RiserNoiseLevel)
	buf = mixInto(buf, saw, parameter.RiserSawLevel)
	return buf
}
