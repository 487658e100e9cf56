package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/planner/pkg/clock"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventDayChanged indicates the record for Event.Date was rewritten.
	EventDayChanged EventType = iota

	// EventMetaChanged indicates the anchor, notes or templates changed.
	EventMetaChanged

	// EventInvalidated signals a change that could not be pinned to one
	// record; callers should reload everything they hold.
	EventInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	// Date is set for EventDayChanged.
	Date string
	// Key is set for EventMetaChanged.
	Key string
}

func eventForKey(key string) Event {
	switch {
	case key == "":
		return Event{Type: EventInvalidated}
	case strings.HasPrefix(key, dayPrefix):
		return Event{Type: EventDayChanged, Date: strings.TrimPrefix(key, dayPrefix)}
	default:
		return Event{Type: EventMetaChanged, Key: key}
	}
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	root, recursive := p.b.watchRoot()
	if root == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	dirs := []string{root}
	if recursive {
		if dirs, err = collectDirs(root); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: enumerate directories: %w", err)
		}
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next one
				// triggers a reload anyway.
			}
		}

		throttle := newEventThrottle(clock.Real(), 100*time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "store: watcher: %v\n", err)
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if recursive && evt.Op&fsnotify.Create == fsnotify.Create {
					// New key namespaces show up as directories.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								fmt.Fprintf(os.Stderr, "store: watch %s: %v\n", absDir, err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						throttle.Enqueue(Event{Type: EventInvalidated}, send)
						continue
					}
				}

				key, ok := p.b.keyForPath(evt.Name)
				if !ok {
					continue
				}
				throttle.Enqueue(eventForKey(key), send)
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// eventThrottle coalesces rapid change notifications so a burst of writes
// produces one event per record.
type eventThrottle struct {
	mu      sync.Mutex
	clock   clock.Clock
	timer   clock.Timer
	pending map[Event]struct{}
	order   []Event
	delay   time.Duration
}

func newEventThrottle(c clock.Clock, delay time.Duration) *eventThrottle {
	return &eventThrottle{
		clock:   c,
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if _, seen := t.pending[ev]; !seen {
		t.pending[ev] = struct{}{}
		t.order = append(t.order, ev)
	}

	if t.timer == nil {
		t.timer = t.clock.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	order := t.order
	t.order = nil
	t.pending = make(map[Event]struct{})
	t.timer = nil
	t.mu.Unlock()

	for _, ev := range order {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
