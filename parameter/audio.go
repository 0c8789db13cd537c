package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2

	// AudioBufferDuration determines output latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Musical Structure
const (
	BeatsPerBar   = 4
	BarsPerPhrase = 4

	// RiserPhraseInterval: a riser fires on every phrase where
	// phraseIndex % RiserPhraseInterval == RiserPhraseInterval-1
	RiserPhraseInterval = 4
)

// Engine Gain Staging
const (
	// TrackGainScale: playing gain target is TrackGainScale * intensity
	TrackGainScale = 0.5

	DefaultStartFade = 2 * time.Second
	DefaultStopFade  = 1 * time.Second

	// SwitchStopFade is the fast fade used when a new track preempts
	// a playing one
	SwitchStopFade = 100 * time.Millisecond

	PauseFade  = 100 * time.Millisecond
	ResumeFade = 200 * time.Millisecond

	// RampFloor is the near-zero floor for exponential gain ramps;
	// exponential curves cannot reach zero
	RampFloor = 0.0001
)

// Effects
const (
	// ReverbImpulseSeconds is the synthetic room impulse length
	ReverbImpulseSeconds = 2.5

	// ReverbDecayExponent shapes the impulse as (1-t)^exponent
	ReverbDecayExponent = 2.5

	// DelayTime is intentionally constant rather than tempo-scaled;
	// the fixed 0.375s slap is part of the house sound
	DelayTime = 375 * time.Millisecond

	DelayFeedback = 0.3
)

// Riser
const (
	RiserBars       = 2
	RiserNoiseLevel = 0.3
	RiserSawLevel   = 0.15
	RiserSawStart   = 110.0 // Hz
	RiserSawEnd     = 880.0 // Hz
)

// Voice Envelopes (seconds)
const (
	BassDecayMin = 0.2
	BassDecayMax = 0.4

	LeadAttackFrac  = 0.05 // of note duration
	LeadSustainFrac = 0.7
	LeadSustainAmp  = 0.8

	ArpDecay = 0.15

	FXAttack = 0.05

	PadDetuneCents = 5.0
)

// Drum Kit
const (
	KickStartFreq = 150.0
	KickEndFreq   = 40.0
	KickDecay     = 0.25
	SnareDecay    = 0.18
	HihatDecay    = 0.05
	OpenHatDecay  = 0.25
	ClickDecay    = 0.02
)
