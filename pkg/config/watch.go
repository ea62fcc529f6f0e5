package config

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the bursts of events editors emit on save.
const reloadDelay = 100 * time.Millisecond

// Watch rebuilds the scene at path whenever the file changes and passes
// the result to onChange. Reload failures are logged and the previous
// scene stays in use. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *log.Logger, onChange func(*Scene)) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch scene: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so files replaced by rename keep being seen.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch scene: %w", err)
	}

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			s, err := LoadScene(target, logger)
			if err != nil {
				logger.Error("scene reload failed", "path", target, "err", err)
				continue
			}
			logger.Info("scene reloaded", "path", target)
			onChange(s)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}
