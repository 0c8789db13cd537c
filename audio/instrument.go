package audio

import (
	"math"

	"github.com/neonhall/chipwave/core"
	"github.com/neonhall/chipwave/music"
	"github.com/neonhall/chipwave/parameter"
)

// instrument is one synthesis strategy; the per-beat dispatcher walks the
// track's instrument list and invokes each strategy in declared order
type instrument interface {
	synthesize(s *session, cfg music.InstrumentConfig)
}

// instruments maps each kind to its strategy, replacing dispatch-by-tag
var instruments = [core.InstrumentKindCount]instrument{
	core.InstrBass:  bassVoice{},
	core.InstrLead:  leadVoice{},
	core.InstrPad:   padVoice{},
	core.InstrArp:   arpVoice{},
	core.InstrDrums: drumVoice{},
	core.InstrFX:    fxVoice{},
}

// bassRoots is the fixed chord-root cycle indexed by bar
var bassRoots = [4]int{0, 0, 3, 4}

func octaveScale(octave int) float64 {
	return math.Pow(2, float64(octave))
}

// onePoleCoeff maps a cutoff frequency to a one-pole smoothing coefficient
func onePoleCoeff(cutoff float64, sampleRate int) float64 {
	c := 1 - math.Exp(-2*math.Pi*cutoff/float64(sampleRate))
	if c > 1 {
		c = 1
	}
	return c
}

// --- bass ---

type bassVoice struct{}

func (bassVoice) synthesize(s *session, cfg music.InstrumentConfig) {
	driving := s.track.Mood == core.MoodIntense || s.track.Mood == core.MoodEnergetic
	if !driving && s.beatInBar%2 != 0 {
		return
	}

	root := bassRoots[s.barInPhrase%len(bassRoots)]
	freq := s.gen.FrequencyForDegree(root, cfg.Octave)

	decay := parameter.BassDecayMin + s.rng.Next()*(parameter.BassDecayMax-parameter.BassDecayMin)
	buf := oscillator(cfg.Waveform, freq, int(decay*float64(s.rate)), s.rate)
	applyExpDecay(buf, 6)

	if cfg.Filter != nil {
		biquad(buf, cfg.Filter.Kind, cfg.Filter.Cutoff, cfg.Filter.Q, s.rate)
	}
	s.play(buf, cfg.Volume*0.9)
}

// --- lead ---

type leadVoice struct{}

func (leadVoice) synthesize(s *session, cfg music.InstrumentConfig) {
	if len(s.phrase) == 0 {
		return
	}
	// Phrases are consumed faster than they regenerate; wrapping back to
	// the top is expected repetition, not a bug
	if s.phraseNoteIndex >= len(s.phrase) {
		s.phraseNoteIndex = 0
	}
	note := s.phrase[s.phraseNoteIndex]
	s.phraseNoteIndex++

	durSec := note.Duration * s.secondsPerBeat()
	freq := note.Frequency * octaveScale(cfg.Octave)
	buf := oscillator(cfg.Waveform, freq, int(durSec*float64(s.rate)), s.rate)
	applyLeadEnvelope(buf, parameter.LeadAttackFrac, parameter.LeadSustainAmp, parameter.LeadSustainFrac)

	if cfg.Filter != nil {
		if s.track.Effects.FilterSweep {
			// Downward sweep closes the filter over the note
			start := onePoleCoeff(cfg.Filter.Cutoff, s.rate)
			end := onePoleCoeff(cfg.Filter.Cutoff*0.25, s.rate)
			onePoleSweep(buf, start, end)
		} else {
			biquad(buf, cfg.Filter.Kind, cfg.Filter.Cutoff, cfg.Filter.Q, s.rate)
		}
	}
	s.play(buf, cfg.Volume*note.Velocity)
}

// --- pad ---

type padVoice struct{}

func (padVoice) synthesize(s *session, cfg music.InstrumentConfig) {
	if s.beatInBar != 0 {
		return
	}

	root := bassRoots[s.barInPhrase%len(bassRoots)]
	barSec := float64(parameter.BeatsPerBar) * s.secondsPerBeat()
	samples := int(barSec * float64(s.rate))

	degrees := [3]int{root, root + 2, root + 4}
	cents := [3]float64{0, parameter.PadDetuneCents, -parameter.PadDetuneCents}

	var mix floatBuffer
	for i, deg := range degrees {
		freq := s.gen.FrequencyForDegree(deg, cfg.Octave) * math.Pow(2, cents[i]/1200)
		voice := oscillator(cfg.Waveform, freq, samples, s.rate)
		mix = mixInto(mix, voice, 1.0/3)
	}
	applyAttackRelease(mix, samples/10, samples/4)

	if cfg.Filter != nil {
		biquad(mix, cfg.Filter.Kind, cfg.Filter.Cutoff, cfg.Filter.Q, s.rate)
	}
	s.play(mix, cfg.Volume*0.7)
}

// --- arp ---

// arpDegrees is the fixed up-down pattern indexed by beat within the bar
var arpDegrees = [4]int{0, 2, 4, 2}

type arpVoice struct{}

func (arpVoice) synthesize(s *session, cfg music.InstrumentConfig) {
	deg := arpDegrees[s.beatInBar%len(arpDegrees)]
	freq := s.gen.FrequencyForDegree(deg, cfg.Octave)

	buf := oscillator(cfg.Waveform, freq, int(parameter.ArpDecay*float64(s.rate)), s.rate)
	applyExpDecay(buf, 8)
	s.play(buf, cfg.Volume*0.7)
}

// --- drums ---

type drumVoice struct{}

func (drumVoice) synthesize(s *session, cfg music.InstrumentConfig) {
	switch s.beatInBar {
	case 0, 2:
		s.play(generateKick(s.rate), cfg.Volume)
	case 1, 3:
		s.play(generateSnare(s.rate), cfg.Volume*0.8)
	}

	// Closed hat every beat, open hat accent on beat 2
	s.play(generateHihat(s.rate, false), cfg.Volume*0.4)
	if s.beatInBar == 1 {
		s.play(generateHihat(s.rate, true), cfg.Volume*0.3)
	}
}

func generateKick(rate int) floatBuffer {
	body := sweepOscillator(core.WaveSine, parameter.KickStartFreq, parameter.KickEndFreq,
		int(parameter.KickDecay*float64(rate)), rate)
	applyExpDecay(body, 5)
	softClip(body, 0.25)

	click := oscillator(core.WaveTriangle, 2000, int(parameter.ClickDecay*float64(rate)), rate)
	applyExpDecay(click, 10)

	return mixInto(body, click, 0.4)
}

func generateSnare(rate int) floatBuffer {
	samples := int(parameter.SnareDecay * float64(rate))

	tone := oscillator(core.WaveTriangle, 200, samples, rate)
	applyExpDecay(tone, 10)

	wires := noiseBuffer(samples)
	biquad(wires, core.FilterBandpass, 2000, 1.5, rate)
	applyExpDecay(wires, 8)

	buf := mixInto(tone, wires, 1.0)
	normalizePeak(buf, 0.9)
	return buf
}

func generateHihat(rate int, open bool) floatBuffer {
	decay := parameter.HihatDecay
	if open {
		decay = parameter.OpenHatDecay
	}
	buf := noiseBuffer(int(decay * float64(rate)))
	biquad(buf, core.FilterHighpass, 7000, 0.707, rate)
	applyExpDecay(buf, 12)
	normalizePeak(buf, 0.8)
	return buf
}

// --- fx ---

type fxVoice struct{}

func (fxVoice) synthesize(s *session, cfg music.InstrumentConfig) {
	if s.beatInBar != 0 {
		return
	}
	if s.rng.Next() >= 0.3 {
		return
	}

	freq := 880 + s.rng.Next()*440
	buf := oscillator(cfg.Waveform, freq, int(1.2*float64(s.rate)), s.rate)
	applyExpDecay(buf, 4)
	attack := int(parameter.FXAttack * float64(s.rate))
	applyAttackRelease(buf, attack, 0)
	s.play(buf, cfg.Volume*0.5)
}
