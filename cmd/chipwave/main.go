package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"
	flag "github.com/spf13/pflag"

	"github.com/neonhall/chipwave/audio"
	"github.com/neonhall/chipwave/music"
	"github.com/neonhall/chipwave/parameter"
)

var (
	trackFlag  = flag.String("track", "", "Track to play on startup")
	gameFlag   = flag.String("game", "", "Play the primary track mapped to this game id")
	seedFlag   = flag.Int("seed", 0, "Generation seed (0 = keep configured seed)")
	listFlag   = flag.Bool("list", false, "List catalog tracks and exit")
	dumpFlag   = flag.String("dump", "", "Dump a track definition and exit")
	configFlag = flag.String("config", "", "JSON config file (watched for changes)")
)

func main() {
	flag.Parse()

	if *listFlag {
		for _, name := range music.AllTrackNames() {
			track, _ := music.GetTrackDefinition(name)
			fmt.Printf("%-16s %5.0f bpm  %-16s %-3s  %s\n",
				name, track.BPM, track.Scale, track.RootNote, track.Mood)
		}
		return
	}

	if *dumpFlag != "" {
		track, ok := music.GetTrackDefinition(*dumpFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown track %q\n", *dumpFlag)
			os.Exit(1)
		}
		spew.Dump(track)
		return
	}

	svc := audio.NewMusicService()
	if err := svc.Init(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "music init failed: %v (continuing silent)\n", err)
	}
	if err := svc.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "music start failed: %v (continuing silent)\n", err)
	}
	defer svc.Stop()

	engine := svc.Engine()
	if *seedFlag != 0 {
		engine.SetSeed(*seedFlag)
	}

	startName := *trackFlag
	if startName == "" {
		if *gameFlag != "" {
			startName = music.GetTracksForGame(*gameFlag).Primary
		} else {
			startName = music.GetHubTrack(0)
		}
	}

	if *configFlag != "" {
		watchConfig(*configFlag, engine)
	}

	if err := runUI(engine, startName); err != nil {
		fmt.Fprintf(os.Stderr, "ui error: %v\n", err)
		os.Exit(1)
	}
}

// watchConfig applies the seed from edited config files; volume and
// device settings need a restart
func watchConfig(path string, engine *audio.Engine) {
	configs := make(chan *audio.Config, 1)
	errs := make(chan error, 1)
	done := make(chan struct{})
	if err := audio.WatchConfig(path, configs, errs, done); err != nil {
		fmt.Fprintf(os.Stderr, "config watch unavailable: %v\n", err)
		return
	}
	go func() {
		for {
			select {
			case cfg := <-configs:
				engine.SetSeed(cfg.Seed)
			case <-errs:
			}
		}
	}()
}

func runUI(engine *audio.Engine, startName string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// Restore the terminal even if the UI crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nCRASHED: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	names := music.AllTrackNames()
	selected := 0
	for i, n := range names {
		if n == startName {
			selected = i
		}
	}

	engine.StartTrack(startName, parameter.DefaultStartFade)

	for {
		draw(screen, engine, names, selected)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
				if selected > 0 {
					selected--
				}
			case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
				if selected < len(names)-1 {
					selected++
				}
			case ev.Key() == tcell.KeyEnter:
				engine.StartTrack(names[selected], parameter.DefaultStartFade)
			case ev.Rune() == ' ':
				if engine.IsPaused() {
					engine.Resume()
				} else {
					engine.Pause()
				}
			case ev.Rune() == 's':
				engine.StopTrack(parameter.DefaultStopFade)
			case ev.Rune() == 'r':
				engine.SetSeed(engine.Seed() + 1)
				if name := engine.CurrentTrack(); name != "" {
					engine.StartTrack(name, parameter.SwitchStopFade)
				}
			}
		}
	}
}

func draw(screen tcell.Screen, engine *audio.Engine, names []string, selected int) {
	screen.Clear()

	header := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	normal := tcell.StyleDefault
	active := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	cursor := tcell.StyleDefault.Reverse(true)

	putString(screen, 0, 0, header, "chipwave - procedural arcade music")

	state := "stopped"
	if engine.IsPlaying() {
		state = "playing"
	} else if engine.IsPaused() {
		state = "paused"
	}
	status := fmt.Sprintf("[%s] track=%s seed=%d beat=%d bar=%d phrase=%d",
		state, engine.CurrentTrack(), engine.Seed(),
		engine.BeatIndex(), engine.BarIndex(), engine.PhraseIndex())
	putString(screen, 0, 1, normal, status)
	if warn := engine.LastWarning(); warn != "" {
		putString(screen, 0, 2, tcell.StyleDefault.Foreground(tcell.ColorRed), warn)
	}

	for i, name := range names {
		style := normal
		if name == engine.CurrentTrack() {
			style = active
		}
		if i == selected {
			style = cursor
		}
		putString(screen, 2, 4+i, style, name)
	}

	putString(screen, 0, 5+len(names), normal,
		"enter: play  space: pause  s: stop  r: reseed  q: quit")
	screen.Show()
}

func putString(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
