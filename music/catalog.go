package music

import (
	"sort"

	"github.com/neonhall/chipwave/core"
)

// FilterConfig describes an optional per-instrument biquad filter
type FilterConfig struct {
	Kind   core.FilterKind
	Cutoff float64 // Hz
	Q      float64
}

// EnvelopeConfig is advisory ADSR data; actual envelopes are synthesized
// per voice kind
type EnvelopeConfig struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// InstrumentConfig declares one voice of a track
type InstrumentConfig struct {
	Kind     core.InstrumentKind
	Waveform core.Waveform
	Octave   int
	Volume   float64 // 0-1 linear gain
	Filter   *FilterConfig
	Envelope *EnvelopeConfig
}

// EffectConfig declares a track's wet-mix levels
type EffectConfig struct {
	Reverb      float64 // 0-1 wet send
	Delay       float64 // 0-1 wet send
	FilterSweep bool
	Distortion  float64
}

// TrackDefinition is an immutable per-track record; all reference fields
// point into the theory tables
type TrackDefinition struct {
	Name        string
	BPM         float64
	Scale       string
	RootNote    string
	Progression string
	Mood        core.Mood
	Intensity   float64
	Instruments []InstrumentConfig
	Effects     EffectConfig
}

// TrackPair holds the two tracks assigned to one game
type TrackPair struct {
	Primary   string
	Secondary string
}

// trackTable is built once at process start and never mutated
var trackTable = map[string]*TrackDefinition{
	"hub_main": {
		Name: "hub_main", BPM: 95, Scale: "major", RootNote: "C4",
		Progression: "uplifting", Mood: core.MoodPlayful, Intensity: 0.6,
		Instruments: []InstrumentConfig{
			{Kind: core.InstrBass, Waveform: core.WaveTriangle, Octave: -2, Volume: 0.8},
			{Kind: core.InstrLead, Waveform: core.WaveSquare, Octave: 0, Volume: 0.5,
				Filter: &FilterConfig{Kind: core.FilterLowpass, Cutoff: 2400, Q: 1.0}},
			{Kind: core.InstrDrums, Waveform: core.WaveSine, Octave: 0, Volume: 0.7},
			{Kind: core.InstrFX, Waveform: core.WaveSine, Octave: 1, Volume: 0.3},
		},
		Effects: EffectConfig{Reverb: 0.25, Delay: 0.15},
	},
	"hub_night": {
		Name: "hub_night", BPM: 80, Scale: "dorian", RootNote: "A3",
		Progression: "drifting", Mood: core.MoodChill, Intensity: 0.4,
		Instruments: []InstrumentConfig{
			{Kind: core.InstrBass, Waveform: core.WaveSine, Octave: -2, Volume: 0.7},
			{Kind: core.InstrPad, Waveform: core.WaveSawtooth, Octave: -1, Volume: 0.4,
				Filter: &FilterConfig{Kind: core.FilterLowpass, Cutoff: 1200, Q: 0.7}},
			{Kind: core.InstrLead, Waveform: core.WaveSine, Octave: 1, Volume: 0.35},
		},
		Effects: EffectConfig{Reverb: 0.5, Delay: 0.3},
	},
	"puzzle_focus": {
		Name: "puzzle_focus", BPM: 75, Scale: "dorian", RootNote: "A3",
		Progression: "circular", Mood: core.MoodMysterious, Intensity: 0.35,
		Instruments: []InstrumentConfig{
			{Kind: core.InstrBass, Waveform: core.WaveSine, Octave: -1, Volume: 0.6},
			{Kind: core.InstrPad, Waveform: core.WaveTriangle, Octave: 0, Volume: 0.45},
			{Kind: core.InstrArp, Waveform: core.WaveSquare, Octave: 1, Volume: 0.3,
				Envelope: &EnvelopeConfig{Attack: 0.005, Decay: 0.1, Sustain: 0.3, Release: 0.1}},
		},
		Effects: EffectConfig{Reverb: 0.4, Delay: 0.25},
	},
	"drift_ambient": {
		Name: "drift_ambient", BPM: 60, Scale: "lydian", RootNote: "F3",
		Progression: "drifting", Mood: core.MoodChill, Intensity: 0.3,
		Instruments: []InstrumentConfig{
			{Kind: core.InstrPad, Waveform: core.WaveSine, Octave: 0, Volume: 0.5},
			{Kind: core.InstrLead, Waveform: core.WaveTriangle, Octave: 1, Volume: 0.3},
			{Kind: core.InstrFX, Waveform: core.WaveSine, Octave: 1, Volume: 0.25},
		},
		Effects: EffectConfig{Reverb: 0.6, Delay: 0.35},
	},
	"runner_rush": {
		Name: "runner_rush", BPM: 140, Scale: "mixolydian", RootNote: "E3",
		Progression: "heroic", Mood: core.MoodEnergetic, Intensity: 0.8,
		Instruments: []InstrumentConfig{
			{Kind: core.InstrBass, Waveform: core.WaveSawtooth, Octave: -2, Volume: 0.85,
				Filter: &FilterConfig{Kind: core.FilterLowpass, Cutoff: 800, Q: 2.0}},
			{Kind: core.InstrLead, Waveform: core.WaveSquare, Octave: 0, Volume: 0.5,
				Filter: &FilterConfig{Kind: core.FilterLowpass, Cutoff: 3200, Q: 1.2}},
			{Kind: core.InstrArp, Waveform: core.WaveSawtooth, Octave: 1, Volume: 0.35},
			{Kind: core.InstrDrums, Waveform: core.WaveSine, Octave: 0, Volume: 0.9},
		},
		Effects: EffectConfig{Reverb: 0.15, Delay: 0.2, FilterSweep: true},
	},
	"combat_surge": {
		Name: "combat_surge", BPM: 150, Scale: "phrygian", RootNote: "D3",
		Progression: "tense", Mood: core.MoodIntense, Intensity: 0.95,
		Instruments: []InstrumentConfig{
			{Kind: core.InstrBass, Waveform: core.WaveSawtooth, Octave: -2, Volume: 0.9,
				Filter: &FilterConfig{Kind: core.FilterLowpass, Cutoff: 600, Q: 3.0}},
			{Kind: core.InstrLead, Waveform: core.WaveSawtooth, Octave: 0, Volume: 0.45,
				Filter: &FilterConfig{Kind: core.FilterLowpass, Cutoff: 4000, Q: 1.5}},
			{Kind: core.InstrDrums, Waveform: core.WaveSine, Octave: 0, Volume: 1.0},
			{Kind: core.InstrFX, Waveform: core.WaveSquare, Octave: 1, Volume: 0.2},
		},
		Effects: EffectConfig{Reverb: 0.1, Delay: 0.1, FilterSweep: true, Distortion: 0.3},
	},
	"boss_onslaught": {
		Name: "boss_onslaught", BPM: 160, Scale: "harmonic_minor", RootNote: "C3",
		Progression: "tense", Mood: core.MoodIntense, Intensity: 1.0,
		Instruments: []InstrumentConfig{
			{Kind: core.InstrBass, Waveform: core.WaveSquare, Octave: -2, Volume: 1.0},
			{Kind: core.InstrLead, Waveform: core.WaveSawtooth, Octave: 0, Volume: 0.5},
			{Kind: core.InstrArp, Waveform: core.WaveSquare, Octave: 1, Volume: 0.4},
			{Kind: core.InstrDrums, Waveform: core.WaveSine, Octave: 0, Volume: 1.0},
		},
		Effects: EffectConfig{Reverb: 0.2, Delay: 0.15, Distortion: 0.4},
	},
	"caverns_echo": {
		Name: "caverns_echo", BPM: 70, Scale: "pentatonic_minor", RootNote: "G3",
		Progression: "mysterious", Mood: core.MoodMysterious, Intensity: 0.4,
		Instruments: []InstrumentConfig{
			{Kind: core.InstrBass, Waveform: core.WaveSine, Octave: -1, Volume: 0.6},
			{Kind: core.InstrPad, Waveform: core.WaveSine, Octave: 0, Volume: 0.5},
			{Kind: core.InstrFX, Waveform: core.WaveSine, Octave: 2, Volume: 0.3},
		},
		Effects: EffectConfig{Reverb: 0.7, Delay: 0.45},
	},
	"victory_lap": {
		Name: "victory_lap", BPM: 120, Scale: "major", RootNote: "G4",
		Progression: "heroic", Mood: core.MoodHeroic, Intensity: 0.7,
		Instruments: []InstrumentConfig{
			{Kind: core.InstrBass, Waveform: core.WaveTriangle, Octave: -1, Volume: 0.8},
			{Kind: core.InstrLead, Waveform: core.WaveSquare, Octave: 0, Volume: 0.55},
			{Kind: core.InstrPad, Waveform: core.WaveSawtooth, Octave: -1, Volume: 0.35,
				Filter: &FilterConfig{Kind: core.FilterLowpass, Cutoff: 1800, Q: 0.8}},
			{Kind: core.InstrDrums, Waveform: core.WaveSine, Octave: 0, Volume: 0.8},
		},
		Effects: EffectConfig{Reverb: 0.3, Delay: 0.2},
	},
}

// hubVariants indexes hub tracks by variation number
var hubVariants = []string{"hub_main", "hub_night"}

// defaultGamePair is returned for unmapped game ids
var defaultGamePair = TrackPair{Primary: "hub_main", Secondary: "hub_night"}

// gameTracks assigns each game id its track pair
var gameTracks = map[string]TrackPair{
	"stellar-sweeper": {Primary: "puzzle_focus", Secondary: "drift_ambient"},
	"neon-runner":     {Primary: "runner_rush", Secondary: "combat_surge"},
	"depth-charge":    {Primary: "caverns_echo", Secondary: "puzzle_focus"},
	"core-breaker":    {Primary: "combat_surge", Secondary: "boss_onslaught"},
	"prism-golf":      {Primary: "hub_main", Secondary: "victory_lap"},
}

// GetTrackDefinition looks up a track by name
// Unknown names report ok=false instead of failing hard
func GetTrackDefinition(name string) (*TrackDefinition, bool) {
	t, ok := trackTable[name]
	return t, ok
}

// GetTracksForGame returns the track pair for a game id, falling back to
// the default hub pair for unmapped ids; it never fails
func GetTracksForGame(gameID string) TrackPair {
	if pair, ok := gameTracks[gameID]; ok {
		return pair
	}
	return defaultGamePair
}

// GetHubTrack returns the hub track for a variation index
// Out-of-range variations wrap, so any integer is a valid variation
func GetHubTrack(variation int) string {
	if variation < 0 {
		variation = -variation
	}
	return hubVariants[variation%len(hubVariants)]
}

// AllTrackNames returns every catalog track name, sorted
func AllTrackNames() []string {
	names := make([]string, 0, len(trackTable))
	for name := range trackTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
