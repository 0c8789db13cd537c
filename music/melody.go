package music

import (
	"fmt"
	"math"

	"github.com/neonhall/chipwave/core"
)

// Note is one generated melodic event
// Frequency already accounts for the note's own OctaveShift; the shift is
// kept so consumers can inspect or re-derive the contour
type Note struct {
	Frequency   float64 // Hz
	Duration    float64 // beats
	Velocity    float64 // 0-1
	OctaveShift int
}

// Generator produces melodic phrases, arpeggios and bass lines from a
// seeded random source quantized to one scale
type Generator struct {
	rng   *SeededRandom
	scale []int
	root  float64
}

// NewGenerator creates a generator for a scale rooted at a named note
func NewGenerator(seed int, scaleName, rootNote string) (*Generator, error) {
	scale, ok := Scale(scaleName)
	if !ok {
		return nil, fmt.Errorf("unknown scale %q", scaleName)
	}
	root, ok := NoteFrequency(rootNote)
	if !ok {
		return nil, fmt.Errorf("unknown root note %q", rootNote)
	}
	return &Generator{
		rng:   NewSeededRandom(seed),
		scale: scale,
		root:  root,
	}, nil
}

// ScaleLength returns the number of degrees in the generator's scale
func (g *Generator) ScaleLength() int {
	return len(g.scale)
}

// FrequencyForDegree maps a scale degree to a frequency
// Degrees outside [0, scaleLength) wrap around the scale while climbing or
// descending octaves, so arbitrarily high or low virtual degrees stay in key
func (g *Generator) FrequencyForDegree(degree, octaveShift int) float64 {
	n := len(g.scale)
	octave := degree / n
	idx := degree % n
	if idx < 0 {
		idx += n
		octave--
	}
	semitone := g.scale[idx]
	return g.root * math.Pow(2, (float64(semitone)+12*float64(octave+octaveShift))/12.0)
}

// GeneratePhrase produces a finite phrase covering bars*beatsPerBar beats
// Exhausted phrases are regenerated by the caller, not looped; that is the
// mechanism providing variation over time
func (g *Generator) GeneratePhrase(bars, beatsPerBar int, style core.PhraseStyle) []Note {
	totalBeats := float64(bars * beatsPerBar)

	switch style {
	case core.StyleAmbient:
		return g.ambientPhrase(totalBeats)
	case core.StyleRhythmic:
		return g.rhythmicPhrase(totalBeats)
	default:
		return g.melodicPhrase(totalBeats)
	}
}

// ambientPhrase: sparse long notes, one slot every 4 beats
func (g *Generator) ambientPhrase(totalBeats float64) []Note {
	var notes []Note
	durations := []float64{2, 4}

	for beat := 0.0; beat < totalBeats; beat += 4 {
		dur, _ := Pick(g.rng, durations)
		degree := g.rng.NextInt(0, len(g.scale)-1)
		shift := g.rng.NextInt(-1, 1)
		notes = append(notes, Note{
			Frequency:   g.FrequencyForDegree(degree, shift),
			Duration:    dur,
			Velocity:    0.4 + 0.2*g.rng.Next(),
			OctaveShift: shift,
		})
	}
	return notes
}

// rhythmicPhrase: dense short notes, ~60% of beat slots sound
func (g *Generator) rhythmicPhrase(totalBeats float64) []Note {
	var notes []Note
	durations := []float64{0.25, 0.5, 0.5, 1}

	for beat := 0.0; beat < totalBeats; beat++ {
		if g.rng.Next() >= 0.6 {
			continue // rest by omission
		}
		dur, _ := Pick(g.rng, durations)
		degree := g.rng.NextInt(0, len(g.scale)-1)
		notes = append(notes, Note{
			Frequency: g.FrequencyForDegree(degree, 0),
			Duration:  dur,
			Velocity:  0.5 + 0.4*g.rng.Next(),
		})
	}
	return notes
}

// melodicPhrase: a random walk, mostly stepwise with occasional leaps,
// clamped to [-2, scaleLength+2]
func (g *Generator) melodicPhrase(totalBeats float64) []Note {
	var notes []Note
	durations := []float64{0.5, 1, 1, 2}
	steps := []int{-2, -1, 1, 2}

	degree := g.rng.NextInt(0, 2)
	for total := 0.0; total < totalBeats; {
		if g.rng.Next() < 0.7 {
			step, _ := Pick(g.rng, steps)
			degree += step
		} else {
			degree += g.rng.NextInt(-4, 4)
		}
		if degree < -2 {
			degree = -2
		}
		if degree > len(g.scale)+2 {
			degree = len(g.scale) + 2
		}

		dur, _ := Pick(g.rng, durations)
		notes = append(notes, Note{
			Frequency: g.FrequencyForDegree(degree, 0),
			Duration:  dur,
			Velocity:  0.5 + 0.3*g.rng.Next(),
		})
		total += dur
	}
	return notes
}

// arpChordDegrees is the fixed chord-tone index set walked by arpeggios
var arpChordDegrees = [4]int{0, 2, 4, 5}

// GenerateArpeggio walks the chord tones at sixteenth-note resolution
// About 80% of slots sound; the rest are rests for rhythmic interest
func (g *Generator) GenerateArpeggio(bars, beatsPerBar int, pattern core.ArpPattern) []Note {
	var notes []Note
	steps := bars * beatsPerBar * 4
	updown := [6]int{0, 1, 2, 3, 2, 1}

	for i := 0; i < steps; i++ {
		var idx int
		switch pattern {
		case core.ArpUp:
			idx = i % 4
		case core.ArpDown:
			idx = 3 - i%4
		case core.ArpUpDown:
			idx = updown[i%6]
		default:
			idx = g.rng.NextInt(0, 3)
		}

		if g.rng.Next() >= 0.8 {
			continue
		}
		notes = append(notes, Note{
			Frequency: g.FrequencyForDegree(arpChordDegrees[idx], 0),
			Duration:  0.25,
			Velocity:  0.4 + 0.3*g.rng.Next(),
		})
	}
	return notes
}

// GenerateBassLine produces a bar-aligned bass figure
func (g *Generator) GenerateBassLine(bars, beatsPerBar int, style core.BassStyle) []Note {
	var notes []Note
	totalBeats := bars * beatsPerBar

	switch style {
	case core.BassDriving:
		// 8th-note root pulses with alternating accents
		for i := 0; i < totalBeats*2; i++ {
			vel := 0.9
			if i%2 == 1 {
				vel = 0.6
			}
			notes = append(notes, Note{
				Frequency: g.FrequencyForDegree(0, 0),
				Duration:  0.5,
				Velocity:  vel,
			})
		}

	case core.BassWalking:
		// one note per beat stepping through the lower tetrachord
		for i := 0; i < totalBeats; i++ {
			notes = append(notes, Note{
				Frequency: g.FrequencyForDegree(i%4, 0),
				Duration:  1,
				Velocity:  0.7,
			})
		}

	default: // BassSimple
		// root on beats 1 and 3, held 2 beats each
		for i := 0; i < totalBeats; i++ {
			if i%2 != 0 {
				continue
			}
			notes = append(notes, Note{
				Frequency: g.FrequencyForDegree(0, 0),
				Duration:  2,
				Velocity:  0.8,
			})
		}
	}
	return notes
}
