package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/export"
	"tableflip.dev/planner/pkg/list"
	"tableflip.dev/planner/pkg/reconcile"
)

// Transition describes one end-of-day run.
type Transition struct {
	From string
	To   string
	// Merged counts, per list, the items this run added to To on top of
	// what reconciliation had already carried.
	Merged map[string]int
	// Carried counts, per list, the unfinished items of From present on To.
	Carried map[string]int
	// Archives are the export documents written for From and then To, once
	// the merge has landed on To.
	Archives []string
}

// EndDay closes the anchor day: unfinished work lands on tomorrow, the day is
// archived and the anchor moves forward one day. Running it again on the new
// anchor repeats the process for that day.
func (s *Service) EndDay(ctx context.Context) (Transition, error) {
	from, err := s.Anchor(ctx)
	if err != nil {
		return Transition{}, err
	}
	to := day.Next(from)
	t := Transition{From: from, To: to, Merged: map[string]int{}, Carried: map[string]int{}}

	today := s.Persistence.Load(ctx, from)
	tomorrow := s.Persistence.Load(ctx, to)
	reconcile.Day(today, tomorrow)

	for _, key := range today.ListKeys() {
		src := today.Lists[key]
		if src.Kind != day.KindChecklist {
			continue
		}
		merged, carried := mergeUnfinished(src.Items, tomorrow, key)
		if merged > 0 {
			t.Merged[key] = merged
		}
		if len(carried) > 0 {
			t.Carried[key] = len(carried)
		}
		tomorrow.Carried[key] = carried
	}

	if s.ArchiveDir != "" {
		for _, rec := range []*day.Record{today, tomorrow} {
			path, err := s.archive(ctx, rec)
			if err != nil {
				return Transition{}, err
			}
			t.Archives = append(t.Archives, path)
		}
	}

	if err := s.Persistence.Save(ctx, today); err != nil {
		return Transition{}, err
	}
	if err := s.Persistence.Save(ctx, tomorrow); err != nil {
		return Transition{}, err
	}
	if err := s.Persistence.SetAnchor(ctx, to); err != nil {
		return Transition{}, err
	}
	return t, nil
}

// mergeUnfinished prepends unfinished source items that tomorrow's list lacks
// and returns how many it added plus the composite keys of the unfinished
// items now present there.
func mergeUnfinished(source []day.Item, tomorrow *day.Record, key string) (int, []string) {
	dst := tomorrow.List(key)
	have := make(map[string]bool, len(dst.Items))
	for _, it := range dst.Items {
		have[it.Key()] = true
	}
	detached := tomorrow.Detached[key]

	var add []day.Item
	carried := []string{}
	for _, it := range source {
		k := it.Key()
		if it.Done || day.Normalize(it.Text) == "" || day.Contains(detached, k) || day.Contains(carried, k) {
			continue
		}
		carried = append(carried, k)
		if have[k] {
			continue
		}
		add = append(add, day.Item{Text: it.Text, Folder: it.Folder})
		have[k] = true
	}
	if len(add) > 0 {
		dst.Items = append(add, dst.Items...)
		l := list.Open(tomorrow, key)
		for _, it := range add {
			l.EnsureFolder(it.Folder)
		}
	}
	return len(add), carried
}

func (s *Service) archive(ctx context.Context, rec *day.Record) (string, error) {
	if err := os.MkdirAll(s.ArchiveDir, 0o755); err != nil {
		return "", fmt.Errorf("app: ensure archive dir: %w", err)
	}
	var buf bytes.Buffer
	if err := export.Encode(&buf, export.Build(rec, s.Persistence.Notes(ctx))); err != nil {
		return "", err
	}
	path := filepath.Join(s.ArchiveDir, export.Filename(rec.Date))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("app: write archive: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("app: write archive: %w", err)
	}
	return path, nil
}
