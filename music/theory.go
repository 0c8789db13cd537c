package music

import "math"

// noteNames in chromatic order starting from C
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteFrequencies maps note names ("A3", "C#4") to frequencies in Hz
// A4 = 440Hz, equal temperament, octaves 0-8
var NoteFrequencies = make(map[string]float64, 12*9)

func init() {
	// MIDI note 12 is C0; A4 (midi 69) anchors the tuning
	for midi := 12; midi < 12+12*9; midi++ {
		octave := midi/12 - 1
		name := noteNames[midi%12]
		freq := 440.0 * math.Pow(2, (float64(midi)-69.0)/12.0)
		NoteFrequencies[name+itoa(octave)] = freq
	}
}

func itoa(n int) string {
	return string(rune('0' + n))
}

// NoteFrequency returns the frequency for a note name
func NoteFrequency(name string) (float64, bool) {
	f, ok := NoteFrequencies[name]
	return f, ok
}

// Scales maps scale names to semitone offsets from the root
// First offset is always 0; offsets are non-negative
var Scales = map[string][]int{
	"major":            {0, 2, 4, 5, 7, 9, 11},
	"minor":            {0, 2, 3, 5, 7, 8, 10},
	"dorian":           {0, 2, 3, 5, 7, 9, 10},
	"phrygian":         {0, 1, 3, 5, 7, 8, 10},
	"lydian":           {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":       {0, 2, 4, 5, 7, 9, 10},
	"harmonic_minor":   {0, 2, 3, 5, 7, 8, 11},
	"pentatonic_major": {0, 2, 4, 7, 9},
	"pentatonic_minor": {0, 3, 5, 7, 10},
	"blues":            {0, 3, 5, 6, 7, 10},
}

// Scale returns the interval set for a scale name
func Scale(name string) ([]int, bool) {
	s, ok := Scales[name]
	return s, ok
}

// ChordTypes maps chord names to semitone offsets from the chord root
var ChordTypes = map[string][]int{
	"major": {0, 4, 7},
	"minor": {0, 3, 7},
	"dim":   {0, 3, 6},
	"aug":   {0, 4, 8},
	"sus2":  {0, 2, 7},
	"sus4":  {0, 5, 7},
	"maj7":  {0, 4, 7, 11},
	"min7":  {0, 3, 7, 10},
	"dom7":  {0, 4, 7, 10},
}

// Progressions maps progression names to roman-numeral chord tokens
// Tokens select chord roots per bar; they are only looked up, never parsed
var Progressions = map[string][]string{
	"uplifting":  {"I", "V", "vi", "IV"},
	"melancholy": {"vi", "IV", "I", "V"},
	"tense":      {"i", "bVII", "bVI", "V"},
	"mysterious": {"i", "bVI", "bIII", "bVII"},
	"heroic":     {"I", "IV", "V", "IV"},
	"drifting":   {"I", "iii", "vi", "IV"},
	"circular":   {"i", "iv", "bVII", "i"},
}

// Progression returns the chord token list for a progression name
func Progression(name string) ([]string, bool) {
	p, ok := Progressions[name]
	return p, ok
}
