package audio

import (
	"github.com/gopxl/beep"

	"github.com/neonhall/chipwave/parameter"
)

// Context is the injected audio context: a sample rate plus the master
// output mixer the host routes to its device. The engine holds no global
// audio state, so independent contexts can coexist (one per test)
type Context struct {
	rate   beep.SampleRate
	master *safeMixer
}

// NewContext creates a context at the given sample rate
// Zero or negative rates fall back to the default hardware rate
func NewContext(sampleRate int) *Context {
	if sampleRate <= 0 {
		sampleRate = parameter.AudioSampleRate
	}
	return &Context{
		rate:   beep.SampleRate(sampleRate),
		master: newSafeMixer(),
	}
}

// SampleRate returns the context's sample rate
func (c *Context) SampleRate() beep.SampleRate {
	return c.rate
}

// Master returns the output bus streamer for the host to play
func (c *Context) Master() beep.Streamer {
	return c.master
}

// Active returns the number of live streamers on the master mix
func (c *Context) Active() int {
	return c.master.Len()
}

// Play attaches a streamer to the master mix
func (c *Context) Play(s beep.Streamer) {
	c.master.Add(s)
}

// Render pulls n stereo samples from the master mix without a device,
// driving all attached streamers; used for offline rendering and tests
func (c *Context) Render(n int) [][2]float64 {
	out := make([][2]float64, n)
	pulled := 0
	for pulled < n {
		k, ok := c.master.Stream(out[pulled:])
		pulled += k
		if !ok || k == 0 {
			break
		}
	}
	return out
}
