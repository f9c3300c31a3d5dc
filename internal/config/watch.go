package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors produce on save.
const reloadDelay = 100 * time.Millisecond

// Watch re-reads the config file at path whenever it changes and passes the
// result to onChange. The parent directory is watched so that editors which
// replace the file on save are picked up. Watch returns once the watcher is
// running; it stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(Config, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("abs path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(reloadDelay)
				} else {
					timer.Reset(reloadDelay)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				cfg, err := Load(abs)
				onChange(cfg, err)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onChange(Config{}, fmt.Errorf("watch: %w", err))
			}
		}
	}()
	return nil
}
