package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/planner/pkg/blocks"
	"tableflip.dev/planner/pkg/clock"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/list"
	"tableflip.dev/planner/pkg/parse"
	"tableflip.dev/planner/pkg/reconcile"
	"tableflip.dev/planner/pkg/store"
)

// NotesList is the list key that addresses the global notes instead of a
// list on a day record.
const NotesList = "notes"

// Service is the planner context. It owns the anchor date and wraps the store
// so the CLI and the interactive shell share one set of operations.
type Service struct {
	Persistence store.Persistence
	// Clock defaults to the system clock.
	Clock clock.Clock
	// Blocks defaults to blocks.Default.
	Blocks blocks.Chain
	// ArchiveDir receives an export document for every ended day when set.
	ArchiveDir string
}

var (
	errNoPersistence = errors.New("app: no persistence configured")
	// ErrNoSuchItem is returned when an index does not address an item.
	ErrNoSuchItem = errors.New("app: no such item")
	// ErrNoSuchTemplate is returned when applying an unknown template.
	ErrNoSuchTemplate = errors.New("app: no such template")
	// ErrNotCheckable is returned when checking a bullet or a note.
	ErrNotCheckable = errors.New("app: bullets and notes can not be checked")
)

func (s *Service) clock() clock.Clock {
	if s.Clock == nil {
		return clock.Real()
	}
	return s.Clock
}

func (s *Service) chain() blocks.Chain {
	if len(s.Blocks) == 0 {
		return blocks.Default()
	}
	return s.Blocks
}

// Chain returns the configured time-block chain.
func (s *Service) Chain() blocks.Chain { return s.chain() }

// Anchor returns the planner's "today". The first call on an empty store pins
// it to the clock's date.
func (s *Service) Anchor(ctx context.Context) (string, error) {
	if s.Persistence == nil {
		return "", errNoPersistence
	}
	if date, ok := s.Persistence.Anchor(ctx); ok {
		return date, nil
	}
	date := day.ID(s.clock().Now())
	if err := s.Persistence.SetAnchor(ctx, date); err != nil {
		return "", err
	}
	return date, nil
}

// Date resolves an offset from the anchor into a date id.
func (s *Service) Date(ctx context.Context, offset int) (string, error) {
	anchor, err := s.Anchor(ctx)
	if err != nil {
		return "", err
	}
	return day.Add(anchor, offset), nil
}

// Day loads the record offset days from the anchor.
func (s *Service) Day(ctx context.Context, offset int) (*day.Record, error) {
	date, err := s.Date(ctx, offset)
	if err != nil {
		return nil, err
	}
	return s.Persistence.Load(ctx, date), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// update runs fn against the record offset days out and saves it when fn
// reports a change. Changes to today are reconciled into tomorrow.
func (s *Service) update(ctx context.Context, offset int, fn func(rec *day.Record) bool) (*day.Record, bool, error) {
	rec, err := s.Day(ctx, offset)
	if err != nil {
		return nil, false, err
	}
	if !fn(rec) {
		return rec, false, nil
	}
	if err := s.Persistence.Save(ctx, rec); err != nil {
		return nil, false, err
	}
	if offset == 0 {
		if _, err := s.reconcileFrom(ctx, rec); err != nil {
			return nil, false, err
		}
	}
	return rec, true, nil
}

// Tags reports whether input for key is parsed for #folder tags. Time blocks
// take their input literally.
func (s *Service) Tags(key string) bool {
	return !s.chain().Has(key)
}

// tagsFor is Tags for a list of rec. Bullet lists have no folders.
func (s *Service) tagsFor(rec *day.Record, key string) bool {
	if l, ok := rec.Lists[key]; ok && l.Kind == day.KindBullets {
		return false
	}
	return s.Tags(key)
}

// Add parses input and applies it to list key.
func (s *Service) Add(ctx context.Context, offset int, key, input string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, errors.New("app: list name required")
	}
	if key == NotesList {
		return s.addNotes(ctx, input)
	}
	_, changed, err := s.update(ctx, offset, func(rec *day.Record) bool {
		return list.Open(rec, key).ApplyBatch(input, s.tagsFor(rec, key))
	})
	return changed, err
}

// AddBullets adds input to the day-scoped bullet list key, creating the list
// when needed. Bullet lists are never carried into tomorrow.
func (s *Service) AddBullets(ctx context.Context, offset int, key, input string) (bool, error) {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return false, errors.New("app: list name required")
	case key == NotesList:
		return s.addNotes(ctx, input)
	case s.chain().Has(key):
		return false, fmt.Errorf("app: time block %s is a checklist", key)
	}
	conflict := false
	_, changed, err := s.update(ctx, offset, func(rec *day.Record) bool {
		return addBullets(rec, key, input, &conflict)
	})
	if err == nil && conflict {
		return false, fmt.Errorf("app: list %s is a checklist", key)
	}
	return changed, err
}

func addBullets(rec *day.Record, key, input string, conflict *bool) bool {
	l, exists := rec.Lists[key]
	if exists && l.Kind != day.KindBullets {
		*conflict = true
		return false
	}
	if !exists {
		rec.ListOf(key, day.KindBullets)
	}
	return list.Open(rec, key).ApplyBatch(input, false) || !exists
}

func (s *Service) addNotes(ctx context.Context, input string) (bool, error) {
	if s.Persistence == nil {
		return false, errNoPersistence
	}
	notes := s.Persistence.Notes(ctx)
	changed := false
	for _, line := range parse.Split(input) {
		it := day.Item{Text: line}
		if hasText(notes, it.Text) {
			continue
		}
		notes = append(notes, it)
		changed = true
	}
	if !changed {
		return false, nil
	}
	return true, s.Persistence.SetNotes(ctx, notes)
}

// editNote replaces the text of note index. Empty text removes the note.
func (s *Service) editNote(ctx context.Context, index int, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.removeNote(ctx, index)
	}
	return s.changeNotes(ctx, index, func(notes []day.Item) ([]day.Item, bool) {
		if notes[index].Text == text {
			return notes, false
		}
		for i, it := range notes {
			if i != index && day.Normalize(it.Text) == day.Normalize(text) {
				return notes, false
			}
		}
		notes[index].Text = text
		return notes, true
	})
}

// removeNote deletes note index.
func (s *Service) removeNote(ctx context.Context, index int) (bool, error) {
	return s.changeNotes(ctx, index, func(notes []day.Item) ([]day.Item, bool) {
		return append(notes[:index], notes[index+1:]...), true
	})
}

func (s *Service) changeNotes(ctx context.Context, index int, fn func([]day.Item) ([]day.Item, bool)) (bool, error) {
	if s.Persistence == nil {
		return false, errNoPersistence
	}
	notes := s.Persistence.Notes(ctx)
	if index < 0 || index >= len(notes) {
		return false, ErrNoSuchItem
	}
	notes, changed := fn(notes)
	if !changed {
		return false, nil
	}
	return true, s.Persistence.SetNotes(ctx, notes)
}

// Notes returns the global notes.
func (s *Service) Notes(ctx context.Context) ([]day.Item, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Notes(ctx), nil
}

func (s *Service) item(ctx context.Context, offset int, key string, fn func(l *list.List) bool) error {
	found := true
	_, _, err := s.update(ctx, offset, func(rec *day.Record) bool {
		if _, ok := rec.Lists[key]; !ok {
			found = false
			return false
		}
		return fn(list.Open(rec, key))
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrNoSuchItem
	}
	return nil
}

func inRange(l *list.List, index int) bool {
	return index >= 0 && index < len(l.Items())
}

// Check sets the done state of the item at index. Bullets and notes have no
// done state.
func (s *Service) Check(ctx context.Context, offset int, key string, index int, done bool) error {
	if key == NotesList {
		return ErrNotCheckable
	}
	var missing, bullets bool
	err := s.item(ctx, offset, key, func(l *list.List) bool {
		if l.Kind() == day.KindBullets {
			bullets = true
			return false
		}
		missing = !inRange(l, index)
		return l.SetDone(index, done)
	})
	switch {
	case err != nil:
		return err
	case bullets:
		return ErrNotCheckable
	case missing:
		return ErrNoSuchItem
	}
	return nil
}

// Move files the item at index under folder.
func (s *Service) Move(ctx context.Context, offset int, key string, index int, folder string) error {
	if key == NotesList {
		return errors.New("app: notes have no folders")
	}
	var missing bool
	err := s.item(ctx, offset, key, func(l *list.List) bool {
		missing = !inRange(l, index)
		return l.Move(index, folder)
	})
	if err == nil && missing {
		return ErrNoSuchItem
	}
	return err
}

// Edit replaces the text of the item at index. For notes, empty text removes
// the note.
func (s *Service) Edit(ctx context.Context, offset int, key string, index int, text string) error {
	if key == NotesList {
		_, err := s.editNote(ctx, index, text)
		return err
	}
	var missing bool
	err := s.item(ctx, offset, key, func(l *list.List) bool {
		missing = !inRange(l, index)
		return l.Edit(index, text)
	})
	if err == nil && missing {
		return ErrNoSuchItem
	}
	return err
}

// Remove deletes the item at index.
func (s *Service) Remove(ctx context.Context, offset int, key string, index int) error {
	if key == NotesList {
		_, err := s.removeNote(ctx, index)
		return err
	}
	var missing bool
	err := s.item(ctx, offset, key, func(l *list.List) bool {
		missing = !inRange(l, index)
		return l.Remove(index)
	})
	if err == nil && missing {
		return ErrNoSuchItem
	}
	return err
}

// DeleteFolder removes a folder header, moving its items to Unfiled.
func (s *Service) DeleteFolder(ctx context.Context, offset int, key, folder string) (bool, error) {
	_, changed, err := s.update(ctx, offset, func(rec *day.Record) bool {
		return list.Open(rec, key).DeleteFolder(folder)
	})
	return changed, err
}

// Clear archives the done items of list key and returns how many went.
func (s *Service) Clear(ctx context.Context, offset int, key string) (int, error) {
	n := 0
	_, _, err := s.update(ctx, offset, func(rec *day.Record) bool {
		if _, ok := rec.Lists[key]; !ok {
			return false
		}
		n = list.Open(rec, key).ClearDone()
		return n > 0
	})
	return n, err
}

// Smoke sets the smoke flag on list key.
func (s *Service) Smoke(ctx context.Context, offset int, key string, on bool) (int, error) {
	rec, _, err := s.update(ctx, offset, func(rec *day.Record) bool {
		before, was := rec.Smokes, rec.List(key).Smoke
		rec.SetSmoke(key, on)
		return before != rec.Smokes || was != on
	})
	if err != nil {
		return 0, err
	}
	return rec.Smokes, nil
}

// Collapse sets the manual collapse flag of a time block.
func (s *Service) Collapse(ctx context.Context, offset int, key string, on bool) error {
	if !s.chain().Has(key) {
		return errors.New("app: " + key + " is not a time block")
	}
	_, _, err := s.update(ctx, offset, func(rec *day.Record) bool {
		if rec.UI.Collapsed[key] == on {
			return false
		}
		s.chain().SetManual(rec, key, on)
		return true
	})
	return err
}

// Templates returns the saved checklist templates.
func (s *Service) Templates(ctx context.Context) (map[string][]day.Item, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Templates(ctx), nil
}

// SaveTemplate stores the current items of list key as template name. Done
// state is kept so templates can be applied with or without it.
func (s *Service) SaveTemplate(ctx context.Context, offset int, key, name string) (int, error) {
	rec, err := s.Day(ctx, offset)
	if err != nil {
		return 0, err
	}
	l, ok := rec.Lists[key]
	if !ok || len(l.Items) == 0 {
		return 0, errors.New("app: list " + key + " is empty")
	}
	items := append([]day.Item{}, l.Items...)
	return len(items), s.Persistence.SaveTemplate(ctx, name, items)
}

// DeleteTemplate removes template name.
func (s *Service) DeleteTemplate(ctx context.Context, name string) error {
	tpl, err := s.Templates(ctx)
	if err != nil {
		return err
	}
	if _, ok := tpl[name]; !ok {
		return ErrNoSuchTemplate
	}
	return s.Persistence.SaveTemplate(ctx, name, nil)
}

// ApplyTemplate adds the items of template name to list key.
func (s *Service) ApplyTemplate(ctx context.Context, offset int, key, name string, preserveDone bool) (int, error) {
	tpl, err := s.Templates(ctx)
	if err != nil {
		return 0, err
	}
	items, ok := tpl[name]
	if !ok {
		return 0, ErrNoSuchTemplate
	}
	n := 0
	_, _, err = s.update(ctx, offset, func(rec *day.Record) bool {
		n = list.Open(rec, key).ApplyTemplate(items, preserveDone)
		return n > 0
	})
	return n, err
}

// Reconcile brings tomorrow in line with today's unfinished items.
func (s *Service) Reconcile(ctx context.Context) (bool, error) {
	today, err := s.Day(ctx, 0)
	if err != nil {
		return false, err
	}
	return s.reconcileFrom(ctx, today)
}

func (s *Service) reconcileFrom(ctx context.Context, today *day.Record) (bool, error) {
	tomorrow := s.Persistence.Load(ctx, day.Next(today.Date))
	if !reconcile.Day(today, tomorrow) {
		return false, nil
	}
	return true, s.Persistence.Save(ctx, tomorrow)
}

// Hour is the cascade hour for date. Days already behind the clock count as
// fully elapsed and days ahead of it as not started.
func (s *Service) Hour(date string) int {
	now := s.clock().Now()
	switch today := day.ID(now); {
	case date < today:
		return 24
	case date > today:
		return 0
	default:
		return now.Hour()
	}
}

// Tick cascades today's time blocks at the clock's hour and reconciles.
func (s *Service) Tick(ctx context.Context) (bool, error) {
	date, err := s.Date(ctx, 0)
	if err != nil {
		return false, err
	}
	return s.TickAt(ctx, s.Hour(date))
}

// TickAt cascades today's time blocks as if it were hour.
func (s *Service) TickAt(ctx context.Context, hour int) (bool, error) {
	_, changed, err := s.update(ctx, 0, func(rec *day.Record) bool {
		return s.chain().Cascade(rec, hour)
	})
	return changed, err
}

func hasText(items []day.Item, text string) bool {
	n := day.Normalize(text)
	if n == "" {
		return true
	}
	for _, it := range items {
		if day.Normalize(it.Text) == n {
			return true
		}
	}
	return false
}
