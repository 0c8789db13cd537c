package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// safeMixer sums attached streamers, dropping each one as it drains
// Unlike beep.Mixer it is safe to Add from the scheduler goroutine while
// the output goroutine streams; it never ends, zero-filling when idle
type safeMixer struct {
	mu      sync.Mutex
	voices  []beep.Streamer
	scratch [][2]float64
}

func newSafeMixer() *safeMixer {
	return &safeMixer{}
}

// Add attaches a streamer to the mix
func (m *safeMixer) Add(s beep.Streamer) {
	m.mu.Lock()
	m.voices = append(m.voices, s)
	m.mu.Unlock()
}

// Len returns the number of live streamers
func (m *safeMixer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Stream implements beep.Streamer; always fills the whole slice
func (m *safeMixer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if cap(m.scratch) < len(samples) {
		m.scratch = make([][2]float64, len(samples))
	}
	scratch := m.scratch[:len(samples)]

	live := m.voices[:0]
	for _, v := range m.voices {
		pos := 0
		drained := false
		for pos < len(scratch) {
			n, ok := v.Stream(scratch[pos:])
			for i := 0; i < n; i++ {
				samples[pos+i][0] += scratch[pos+i][0]
				samples[pos+i][1] += scratch[pos+i][1]
			}
			pos += n
			if !ok {
				drained = true
				break
			}
			if n == 0 {
				break
			}
		}
		if !drained {
			live = append(live, v)
		}
	}
	// Zero the dropped tail so old pointers are collectable
	for i := len(live); i < len(m.voices); i++ {
		m.voices[i] = nil
	}
	m.voices = live

	return len(samples), true
}

// Err implements beep.Streamer
func (m *safeMixer) Err() error { return nil }

var _ beep.Streamer = (*safeMixer)(nil)
