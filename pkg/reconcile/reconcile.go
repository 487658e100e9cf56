// Package reconcile keeps tomorrow's lists in step with today's unfinished
// work.
//
// A pass prepends every unfinished source item the destination lacks, drops
// destination items that an earlier pass injected but which are no longer
// unfinished at the source, and leaves items the user authored on the
// destination alone. CarryMeta records which destination items a pass
// injected; it is replaced wholesale on every pass.
package reconcile

import (
	"tableflip.dev/planner/pkg/day"
)

// Result is the outcome of reconciling one list.
type Result struct {
	Items []day.Item
	// Carried is the new CarryMeta entry for the list.
	Carried []string
	// Detached is the destination's detached set, pruned to keys the source
	// still carries.
	Detached []string
	Changed  bool
}

type candidate struct {
	key  string
	text string
	item day.Item
}

// List reconciles one destination list against its source.
//
// prev is the destination's CarryMeta entry and hasPrev reports whether the
// entry exists at all. Without an entry, destination items that match any
// source item are assumed to come from an earlier carry. detached holds
// carried keys the user has since changed on the destination; those are never
// re-inserted.
func List(source, dest []day.Item, prev []string, hasPrev bool, detached []string) Result {
	carry := make([]candidate, 0, len(source))
	eligible := make(map[string]bool, len(source))
	all := make(map[string]bool, len(source))
	for _, it := range source {
		key := it.Key()
		all[key] = true
		text := day.Normalize(it.Text)
		if it.Done || text == "" || eligible[key] {
			continue
		}
		eligible[key] = true
		carry = append(carry, candidate{key: key, text: text, item: it})
	}

	prevSet := toSet(prev)
	if !hasPrev {
		for _, it := range dest {
			if all[it.Key()] {
				prevSet[it.Key()] = true
			}
		}
	}
	prevTexts := make(map[string]bool, len(prevSet))
	for key := range prevSet {
		text, _ := day.SplitKey(key)
		prevTexts[text] = true
	}
	detachedSet := toSet(detached)

	native := make([]day.Item, 0, len(dest))
	nativeKeys := make(map[string]bool, len(dest))
	nativeTexts := make(map[string]bool, len(dest))
	for _, it := range dest {
		key := it.Key()
		if prevSet[key] && !detachedSet[key] {
			continue
		}
		native = append(native, it)
		nativeKeys[key] = true
		nativeTexts[day.Normalize(it.Text)] = true
	}

	items := make([]day.Item, 0, len(carry)+len(native))
	carried := make([]string, 0, len(carry))
	for _, c := range carry {
		switch {
		case nativeKeys[c.key]:
			continue
		case nativeTexts[c.text] && prevTexts[c.text]:
			// The user re-filed or re-typed an earlier carry on the
			// destination. Keep claiming the key so later passes agree.
			carried = append(carried, c.key)
			continue
		case detachedSet[c.key]:
			continue
		}
		items = append(items, day.Item{Text: c.item.Text, Folder: c.item.Folder})
		carried = append(carried, c.key)
	}
	items = append(items, native...)

	pruned := make([]string, 0, len(detached))
	for _, key := range detached {
		if eligible[key] && !day.Contains(pruned, key) {
			pruned = append(pruned, key)
		}
	}

	return Result{
		Items:    items,
		Carried:  carried,
		Detached: pruned,
		Changed:  !equalItems(items, dest),
	}
}

// Day reconciles every checklist of today into tomorrow and reports whether
// tomorrow changed. Folder headers present on today are copied forward so
// empty folders survive the carry too.
func Day(today, tomorrow *day.Record) bool {
	today.Normalize()
	tomorrow.Normalize()

	changed := false
	for _, key := range today.ListKeys() {
		src := today.Lists[key]
		if src.Kind != day.KindChecklist {
			continue
		}

		prev, hasPrev := tomorrow.Carried[key]
		var dest []day.Item
		if l, ok := tomorrow.Lists[key]; ok {
			dest = l.Items
		}
		res := List(src.Items, dest, prev, hasPrev, tomorrow.Detached[key])

		if res.Changed {
			tomorrow.List(key).Items = res.Items
			changed = true
		}
		if !hasPrev || !equalStrings(prev, res.Carried) {
			tomorrow.Carried[key] = res.Carried
			changed = true
		}
		if !equalStrings(tomorrow.Detached[key], res.Detached) {
			if len(res.Detached) == 0 {
				delete(tomorrow.Detached, key)
			} else {
				tomorrow.Detached[key] = res.Detached
			}
			changed = true
		}

		headers := tomorrow.UI.Folders[key]
		for _, f := range today.UI.Folders[key] {
			if !day.Contains(headers, f) {
				headers = append(headers, f)
				changed = true
			}
		}
		for _, it := range res.Items {
			if !day.Contains(headers, it.Folder) {
				headers = append(headers, it.Folder)
				changed = true
			}
		}
		if len(headers) > 0 {
			tomorrow.UI.Folders[key] = headers
		}
	}
	return changed
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, v := range list {
		set[v] = true
	}
	return set
}

func equalItems(a, b []day.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
