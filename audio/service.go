package audio

import (
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/neonhall/chipwave/parameter"
	"github.com/neonhall/chipwave/service"
)

// MusicService wraps the Engine as a shell service and owns the speaker
// device. When the device cannot be opened the service disables itself
// and the engine runs inert: the rest of the application sees silence,
// never an error
type MusicService struct {
	cfg      *Config
	engine   *Engine
	ctx      *Context
	disabled atomic.Bool
}

// NewMusicService creates an unstarted music service
func NewMusicService() *MusicService {
	return &MusicService{}
}

// Name implements service.Service
func (s *MusicService) Name() string {
	return "music"
}

// Dependencies implements service.Service
func (s *MusicService) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: string - optional JSON config path overlaid on env config
func (s *MusicService) Init(args ...any) error {
	cfg := LoadConfig()
	if len(args) > 0 {
		if path, ok := args[0].(string); ok && path != "" {
			// A bad config file falls back to env/defaults
			_ = LoadConfigFile(path, cfg)
		}
	}
	s.cfg = cfg

	if !cfg.Enabled {
		s.disabled.Store(true)
		s.engine = NewEngine(nil, nil)
		return nil
	}

	s.ctx = NewContext(cfg.SampleRate)
	s.engine = NewEngine(s.ctx, nil)
	s.engine.SetSeed(cfg.Seed)
	return nil
}

// Start implements service.Service
// Opens the speaker; device failure degrades to silence, not an error
func (s *MusicService) Start() error {
	if s.disabled.Load() || s.ctx == nil {
		return nil
	}

	rate := s.ctx.SampleRate()
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		s.disabled.Store(true)
		s.engine = NewEngine(nil, nil)
		s.ctx = nil
		return nil
	}

	master := s.ctx.Master()
	vol := s.cfg.MasterVolume
	speaker.Play(&volumeStreamer{src: master, gain: vol})
	return nil
}

// Stop implements service.Service
func (s *MusicService) Stop() error {
	if s.engine != nil {
		s.engine.StopTrack(parameter.SwitchStopFade)
	}
	if !s.disabled.Load() && s.ctx != nil {
		// Let the fade land before the device closes
		time.Sleep(parameter.SwitchStopFade)
		speaker.Clear()
	}
	return nil
}

// IsDisabled returns true when audio is unavailable
func (s *MusicService) IsDisabled() bool {
	return s.disabled.Load()
}

// Engine returns the engine; inert but never nil after Init
func (s *MusicService) Engine() *Engine {
	return s.engine
}

// volumeStreamer applies the configured master volume outside the
// engine's own gain staging
type volumeStreamer struct {
	src  beep.Streamer
	gain float64
}

func (v *volumeStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := v.src.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] *= v.gain
		samples[i][1] *= v.gain
	}
	return n, ok
}

func (v *volumeStreamer) Err() error { return v.src.Err() }

var _ service.Service = (*MusicService)(nil)
