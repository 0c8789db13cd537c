package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/neonhall/chipwave/core"
	"github.com/neonhall/chipwave/music"
	"github.com/neonhall/chipwave/parameter"
)

// session is the per-track runtime owned exclusively by the engine: the
// melody generator, the voice bus, the effects chain, and the beat/bar/
// phrase counters. A session is built on track start and discarded on
// stop; nothing is reused across tracks
type session struct {
	track *music.TrackDefinition
	gen   *music.Generator
	rng   *music.SeededRandom

	voices *safeMixer
	bus    *Bus
	chain  *effectsChain

	rate    int
	beatDur time.Duration

	beatInBar       int
	barInPhrase     int
	phraseIndex     int
	phrase          []music.Note
	phraseNoteIndex int
}

func (s *session) secondsPerBeat() float64 {
	return 60.0 / s.track.BPM
}

// play attaches a one-shot note buffer to the session's voice bus
func (s *session) play(buf floatBuffer, volume float64) {
	if len(buf) == 0 {
		return
	}
	s.voices.Add(newBufferStreamer(buf, volume))
}

// Engine is the procedural music engine: a state machine over
// {stopped, playing, paused} driving per-beat synthesis of the current
// track. All failures are absorbed here; music is an enhancement, so the
// engine degrades to silence rather than propagating errors to the host
type Engine struct {
	mu sync.Mutex

	ctx   *Context
	sched Scheduler

	state  core.PlayState
	seed   int
	sess   *session
	cancel CancelHandle

	lastWarning string
}

// NewEngine creates an engine over the injected context
// A nil context yields a fully inert engine: every method is a safe no-op,
// so audio failure never affects the host application
func NewEngine(ctx *Context, sched Scheduler) *Engine {
	if sched == nil {
		sched = NewTickerScheduler()
	}
	return &Engine{
		ctx:   ctx,
		sched: sched,
		seed:  1,
	}
}

// SetSeed sets the seed used by the next StartTrack
// The pair (track name, seed) fully determines the generated music
func (e *Engine) SetSeed(seed int) {
	e.mu.Lock()
	e.seed = seed
	e.mu.Unlock()
}

// Seed returns the seed the next StartTrack will use
func (e *Engine) Seed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seed
}

// StartTrack begins playing the named track, fading in over fade
// (the default fade when fade <= 0). Unknown names warn and leave the
// current state untouched. A playing track is stopped first with a fast
// fade so the two graphs never audibly overlap
func (e *Engine) StartTrack(name string, fade time.Duration) {
	if e.ctx == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	track, ok := music.GetTrackDefinition(name)
	if !ok {
		e.lastWarning = fmt.Sprintf("unknown track %q", name)
		return
	}

	gen, err := music.NewGenerator(e.seed, track.Scale, track.RootNote)
	if err != nil {
		e.lastWarning = fmt.Sprintf("track %q: %v", name, err)
		return
	}

	if e.state != core.StateStopped {
		e.stopLocked(parameter.SwitchStopFade)
	}

	rate := int(e.ctx.rate)
	sess := &session{
		track:   track,
		gen:     gen,
		rng:     music.NewSeededRandom(e.seed ^ 0x5f3759df),
		voices:  newSafeMixer(),
		rate:    rate,
		beatDur: time.Duration(float64(time.Minute) / track.BPM),
	}
	sess.bus = NewBus(sess.voices, e.ctx.rate)
	sess.chain = newEffectsChain(sess.bus, track.Effects, rate)
	sess.phrase = gen.GeneratePhrase(parameter.BarsPerPhrase, parameter.BeatsPerBar,
		core.PhraseStyleForMood(track.Mood))

	if fade <= 0 {
		fade = parameter.DefaultStartFade
	}
	sess.bus.RampExponential(parameter.TrackGainScale*track.Intensity, fade)

	e.ctx.Play(sess.chain)
	e.sess = sess
	e.state = core.StatePlaying
	e.cancel = e.sched.ScheduleRepeating(sess.beatDur, e.onBeat)

	// Fire the first beat now so sound starts without waiting an interval
	e.dispatchBeatLocked()
}

// StopTrack fades out and tears the session down; node cleanup completes
// when the fade lands. No-op when already stopped
func (e *Engine) StopTrack(fade time.Duration) {
	if e.ctx == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == core.StateStopped {
		return
	}
	if fade <= 0 {
		fade = parameter.DefaultStopFade
	}
	e.stopLocked(fade)
}

// stopLocked cancels the beat timer and begins the fade-out; the bus
// releases itself (and the whole effects chain with it) once the fade
// completes, so a short overlap with a successor track stays under the
// fade curve
func (e *Engine) stopLocked(fade time.Duration) {
	if e.cancel != nil {
		e.cancel.Cancel()
		e.cancel = nil
	}
	if e.sess != nil {
		e.sess.bus.FadeOutAndClose(fade)
		e.sess = nil
	}
	e.state = core.StateStopped
}

// Pause suspends the beat timer and ducks the gain; counters are
// retained, not reset. Idempotent
func (e *Engine) Pause() {
	if e.ctx == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != core.StatePlaying {
		return
	}
	if e.cancel != nil {
		e.cancel.Cancel()
		e.cancel = nil
	}
	e.sess.bus.RampLinear(parameter.RampFloor, parameter.PauseFade)
	e.state = core.StatePaused
}

// Resume restores the gain and restarts the beat timer; playback picks up
// from the retained beat/bar/phrase position. Idempotent
func (e *Engine) Resume() {
	if e.ctx == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != core.StatePaused {
		return
	}
	sess := e.sess
	sess.bus.RampExponential(parameter.TrackGainScale*sess.track.Intensity, parameter.ResumeFade)
	e.cancel = e.sched.ScheduleRepeating(sess.beatDur, e.onBeat)
	e.state = core.StatePlaying
}

// onBeat is the per-beat dispatch invoked by the scheduler
func (e *Engine) onBeat() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatchBeatLocked()
}

func (e *Engine) dispatchBeatLocked() {
	if e.state != core.StatePlaying || e.sess == nil {
		return
	}
	s := e.sess

	// Instruments fire strictly in the track's declared order
	for _, cfg := range s.track.Instruments {
		if voice := instruments[cfg.Kind]; voice != nil {
			voice.synthesize(s, cfg)
		}
	}

	s.beatInBar++
	if s.beatInBar < parameter.BeatsPerBar {
		return
	}
	s.beatInBar = 0

	s.barInPhrase++
	if s.barInPhrase < parameter.BarsPerPhrase {
		return
	}
	s.barInPhrase = 0

	s.phraseIndex++
	s.phrase = s.gen.GeneratePhrase(parameter.BarsPerPhrase, parameter.BeatsPerBar,
		core.PhraseStyleForMood(s.track.Mood))
	s.phraseNoteIndex = 0

	if s.phraseIndex%parameter.RiserPhraseInterval == parameter.RiserPhraseInterval-1 {
		barSec := float64(parameter.BeatsPerBar) * s.secondsPerBeat()
		s.play(buildRiser(s.rate, barSec), 1.0)
	}
}

// CurrentTrack returns the playing track's name, or "" when stopped
func (e *Engine) CurrentTrack() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return ""
	}
	return e.sess.track.Name
}

// IsPlaying reports whether a track is actively playing
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == core.StatePlaying
}

// IsPaused reports whether playback is paused
func (e *Engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == core.StatePaused
}

// BeatIndex returns the beat position within the current bar
func (e *Engine) BeatIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return 0
	}
	return e.sess.beatInBar
}

// BarIndex returns the bar position within the current phrase
func (e *Engine) BarIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return 0
	}
	return e.sess.barInPhrase
}

// PhraseIndex returns the monotonic phrase counter
func (e *Engine) PhraseIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return 0
	}
	return e.sess.phraseIndex
}

// CurrentPhrase returns a copy of the phrase buffer, for inspection
func (e *Engine) CurrentPhrase() []music.Note {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return nil
	}
	out := make([]music.Note, len(e.sess.phrase))
	copy(out, e.sess.phrase)
	return out
}

// LastWarning returns the most recent absorbed configuration warning
func (e *Engine) LastWarning() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastWarning
}
