// internal/platform/fsx/logfile.go
package fsx

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is used when a zero poll interval is passed.
const DefaultPollInterval = 100 * time.Millisecond

// FirstExisting returns the first candidate that exists as a regular file.
func FirstExisting(candidates []string) (string, bool) {
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// WaitForAny polls the candidates until one of them exists or timeout elapses.
// The candidates are always checked at least once.
func WaitForAny(ctx context.Context, candidates []string, timeout, interval time.Duration) (string, bool) {
	ok := poll(ctx, timeout, interval, func() bool {
		_, found := FirstExisting(candidates)
		return found
	})
	if !ok {
		return "", false
	}
	return FirstExisting(candidates)
}

// Truncate empties the file at path without removing it.
func Truncate(path string) error {
	return os.Truncate(path, 0)
}

// Size returns the size of the file at path.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// WaitForGrowth waits until the file at path has a non-zero size or timeout
// elapses. Write events from an fsnotify watcher on the parent directory wake
// the check early; a poll ticker covers filesystems without inotify support.
// The size is always checked once more at the deadline.
func WaitForGrowth(ctx context.Context, path string, timeout, interval time.Duration) bool {
	grown := func() bool {
		size, err := Size(path)
		return err == nil && size > 0
	}

	if grown() {
		return true
	}

	var events <-chan fsnotify.Event
	if w, err := fsnotify.NewWatcher(); err == nil {
		defer w.Close()
		if err := w.Add(filepath.Dir(path)); err == nil {
			events = w.Events
		}
	}

	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return grown()
		case <-deadline.C:
			return grown()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(ev.Name) == filepath.Clean(path) && grown() {
				return true
			}
		case <-ticker.C:
			if grown() {
				return true
			}
		}
	}
}

// poll evaluates cond every interval until it holds, timeout elapses or ctx is done.
func poll(ctx context.Context, timeout, interval time.Duration, cond func() bool) bool {
	if cond() {
		return true
	}
	if timeout <= 0 {
		return false
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return cond()
		case <-deadline.C:
			return cond()
		case <-ticker.C:
			if cond() {
				return true
			}
		}
	}
}
