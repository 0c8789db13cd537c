package audio

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig reloads the JSON config whenever the file changes, sending
// fresh configs on configs and read failures on errs until done closes
func WatchConfig(path string, configs chan<- *Config, errs chan<- error, done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("can't create watcher: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// Editors commonly rename over the file instead of writing it
				if event.Op&(fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				cfg := LoadConfig()
				if err := LoadConfigFile(path, cfg); err != nil {
					select {
					case errs <- err:
					case <-done:
						return
					}
					continue
				}
				select {
				case configs <- cfg:
				case <-done:
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	if err := watcher.Add(path); err != nil {
		return err
	}
	return nil
}
