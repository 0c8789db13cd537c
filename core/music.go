package core

// InstrumentKind identifies synthesis strategies
type InstrumentKind int

const (
	InstrBass InstrumentKind = iota
	InstrLead
	InstrPad
	InstrArp
	InstrDrums
	InstrFX
	InstrumentKindCount
)

func (k InstrumentKind) String() string {
	names := [...]string{"bass", "lead", "pad", "arp", "drums", "fx"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// IsPitched returns true for instruments that consume melodic material
func (k InstrumentKind) IsPitched() bool {
	return k != InstrDrums && k != InstrFX
}

// Waveform identifies oscillator shapes
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
)

func (w Waveform) String() string {
	names := [...]string{"sine", "square", "sawtooth", "triangle"}
	if int(w) < len(names) {
		return names[w]
	}
	return "unknown"
}

// Mood drives phrase style selection and bass density
type Mood int

const (
	MoodChill Mood = iota
	MoodMysterious
	MoodPlayful
	MoodHeroic
	MoodEnergetic
	MoodIntense
)

func (m Mood) String() string {
	names := [...]string{"chill", "mysterious", "playful", "heroic", "energetic", "intense"}
	if int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}

// PhraseStyle selects the melodic generation algorithm
type PhraseStyle int

const (
	StyleMelodic PhraseStyle = iota
	StyleRhythmic
	StyleAmbient
)

func (s PhraseStyle) String() string {
	names := [...]string{"melodic", "rhythmic", "ambient"}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// PhraseStyleForMood maps track mood to generation style
// Intense/energetic tracks get dense rhythmic phrases, calm tracks
// get sparse ambient ones, everything else walks melodically
func PhraseStyleForMood(m Mood) PhraseStyle {
	switch m {
	case MoodIntense, MoodEnergetic:
		return StyleRhythmic
	case MoodChill, MoodMysterious:
		return StyleAmbient
	default:
		return StyleMelodic
	}
}

// ArpPattern selects chord-tone traversal order
type ArpPattern int

const (
	ArpUp ArpPattern = iota
	ArpDown
	ArpUpDown
	ArpRandom
)

func (p ArpPattern) String() string {
	names := [...]string{"up", "down", "updown", "random"}
	if int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// BassStyle selects bass line generation
type BassStyle int

const (
	BassDriving BassStyle = iota
	BassWalking
	BassSimple
)

func (s BassStyle) String() string {
	names := [...]string{"driving", "walking", "simple"}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// FilterKind identifies biquad filter responses
type FilterKind int

const (
	FilterLowpass FilterKind = iota
	FilterHighpass
	FilterBandpass
)

func (f FilterKind) String() string {
	names := [...]string{"lowpass", "highpass", "bandpass"}
	if int(f) < len(names) {
		return names[f]
	}
	return "unknown"
}

// PlayState tracks the engine's scheduler state machine
type PlayState int

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

func (s PlayState) String() string {
	names := [...]string{"stopped", "playing", "paused"}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}
