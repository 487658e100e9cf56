package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/list"
	"tableflip.dev/planner/pkg/reconcile"
	"tableflip.dev/planner/pkg/scheduler"
)

// Session keeps today and tomorrow in memory for long-running front ends.
// Mutations and reconciliation take effect at once; writes to the store are
// debounced so a burst of edits costs one write per record.
type Session struct {
	svc *Service

	mu       sync.Mutex
	today    *day.Record
	tomorrow *day.Record
	dirty    map[string]bool
	err      error

	commits *scheduler.Debouncer
}

// Open loads today and tomorrow into a new Session. quiet is the debounce
// window for writes.
func (s *Service) Open(ctx context.Context, quiet time.Duration) (*Session, error) {
	ss := &Session{
		svc:     s,
		dirty:   make(map[string]bool),
		commits: scheduler.NewDebouncer(s.clock(), quiet),
	}
	if err := ss.Reload(ctx); err != nil {
		return nil, err
	}
	return ss, nil
}

// Reload drops the in-memory records and reads them back from the store.
// Pending writes are committed first.
func (ss *Session) Reload(ctx context.Context) error {
	if err := ss.Flush(); err != nil {
		return err
	}
	anchor, err := ss.svc.Anchor(ctx)
	if err != nil {
		return err
	}
	today := ss.svc.Persistence.Load(ctx, anchor)
	tomorrow := ss.svc.Persistence.Load(ctx, day.Next(anchor))

	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.today, ss.tomorrow = today, tomorrow
	if reconcile.Day(ss.today, ss.tomorrow) {
		ss.markLocked(ss.tomorrow)
	}
	return nil
}

// Today returns a copy of today's record.
func (ss *Session) Today() *day.Record {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.today.Clone()
}

// Tomorrow returns a copy of tomorrow's record.
func (ss *Session) Tomorrow() *day.Record {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.tomorrow.Clone()
}

// Record returns a copy of the record offset days from today. Only 0 and 1
// are held by a session.
func (ss *Session) Record(offset int) *day.Record {
	if offset == 1 {
		return ss.Tomorrow()
	}
	return ss.Today()
}

// Do runs fn against list key of the record offset days out. When fn reports
// a change the record is reconciled and scheduled for writing. The notes key
// is not a day list and is refused.
func (ss *Session) Do(offset int, key string, fn func(l *list.List) bool) bool {
	if key == NotesList {
		return false
	}
	return ss.doRecord(offset, func(rec *day.Record) bool {
		return fn(list.Open(rec, key))
	})
}

func (ss *Session) doRecord(offset int, fn func(rec *day.Record) bool) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	rec := ss.today
	if offset == 1 {
		rec = ss.tomorrow
	}
	if !fn(rec) {
		return false
	}
	ss.changedLocked(rec)
	return true
}

// notes runs a change to the global notes. They live outside the day
// records and are written straight through.
func (ss *Session) notes(fn func(ctx context.Context) (bool, error)) bool {
	changed, err := fn(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "app: notes: %v\n", err)
		return false
	}
	return changed
}

// Add parses input into list key.
func (ss *Session) Add(offset int, key, input string) bool {
	if key == NotesList {
		return ss.notes(func(ctx context.Context) (bool, error) { return ss.svc.addNotes(ctx, input) })
	}
	return ss.doRecord(offset, func(rec *day.Record) bool {
		return list.Open(rec, key).ApplyBatch(input, ss.svc.tagsFor(rec, key))
	})
}

// AddBullets adds input to the bullet list key, creating it when needed. It
// does nothing when key already holds a checklist.
func (ss *Session) AddBullets(offset int, key, input string) bool {
	if key == NotesList {
		return ss.Add(offset, key, input)
	}
	if ss.svc.chain().Has(key) {
		return false
	}
	var conflict bool
	return ss.doRecord(offset, func(rec *day.Record) bool {
		return addBullets(rec, key, input, &conflict)
	})
}

// Check sets the done state of the item at index.
func (ss *Session) Check(offset int, key string, index int, done bool) bool {
	return ss.Do(offset, key, func(l *list.List) bool {
		return l.Kind() != day.KindBullets && l.SetDone(index, done)
	})
}

// Move files the item at index under folder.
func (ss *Session) Move(offset int, key string, index int, folder string) bool {
	return ss.Do(offset, key, func(l *list.List) bool { return l.Move(index, folder) })
}

// Edit replaces the text of the item at index.
func (ss *Session) Edit(offset int, key string, index int, text string) bool {
	if key == NotesList {
		return ss.notes(func(ctx context.Context) (bool, error) { return ss.svc.editNote(ctx, index, text) })
	}
	return ss.Do(offset, key, func(l *list.List) bool { return l.Edit(index, text) })
}

// Remove deletes the item at index.
func (ss *Session) Remove(offset int, key string, index int) bool {
	if key == NotesList {
		return ss.notes(func(ctx context.Context) (bool, error) { return ss.svc.removeNote(ctx, index) })
	}
	return ss.Do(offset, key, func(l *list.List) bool { return l.Remove(index) })
}

// Clear archives done items of list key.
func (ss *Session) Clear(offset int, key string) int {
	n := 0
	ss.Do(offset, key, func(l *list.List) bool {
		n = l.ClearDone()
		return n > 0
	})
	return n
}

// Cascade closes elapsed time blocks of today as of hour.
func (ss *Session) Cascade(hour int) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if !ss.svc.chain().Cascade(ss.today, hour) {
		return false
	}
	ss.changedLocked(ss.today)
	return true
}

// Tick cascades at the service clock's hour.
func (ss *Session) Tick() bool {
	ss.mu.Lock()
	date := ss.today.Date
	ss.mu.Unlock()
	return ss.Cascade(ss.svc.Hour(date))
}

func (ss *Session) changedLocked(rec *day.Record) {
	ss.markLocked(rec)
	if rec == ss.today && reconcile.Day(ss.today, ss.tomorrow) {
		ss.markLocked(ss.tomorrow)
	}
}

func (ss *Session) markLocked(rec *day.Record) {
	ss.dirty[rec.Date] = true
	ss.commits.Schedule(ss.commit)
}

// commit writes every dirty record. Errors are kept for Flush and Close.
func (ss *Session) commit() {
	ss.mu.Lock()
	var recs []*day.Record
	for _, rec := range []*day.Record{ss.today, ss.tomorrow} {
		if ss.dirty[rec.Date] {
			recs = append(recs, rec.Clone())
		}
	}
	ss.dirty = make(map[string]bool)
	ss.mu.Unlock()

	for _, rec := range recs {
		if err := ss.svc.Persistence.Save(context.Background(), rec); err != nil {
			fmt.Fprintf(os.Stderr, "app: save %s: %v\n", rec.Date, err)
			ss.mu.Lock()
			ss.err = err
			ss.dirty[rec.Date] = true
			ss.mu.Unlock()
		}
	}
}

// Pending reports whether writes are waiting for the quiet period to end.
func (ss *Session) Pending() bool {
	return ss.commits.Pending()
}

// Flush writes pending changes now and returns the last write error.
func (ss *Session) Flush() error {
	ss.commits.Flush()
	ss.mu.Lock()
	defer ss.mu.Unlock()
	err := ss.err
	ss.err = nil
	return err
}

// Close flushes pending writes and stops the session.
func (ss *Session) Close() error {
	err := ss.Flush()
	ss.commits.Stop()
	return err
}
