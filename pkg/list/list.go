// Package list applies item and folder operations to one list of a day record.
//
// Items are kept grouped by folder in insertion order, with folders laid out
// in the order of the record's persisted folder headers. Operations never
// fail; anything they cannot interpret leaves the list untouched and reports
// false.
package list

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/folder"
	"tableflip.dev/planner/pkg/parse"
)

// List is a handle on one list key of a record.
type List struct {
	rec *day.Record
	key string
}

// Open binds a handle to rec[key], creating the list if needed and restoring
// any folder headers that items reference but the record lost.
func Open(rec *day.Record, key string) *List {
	rec.Normalize()
	l := &List{rec: rec, key: key}
	for _, it := range l.list().Items {
		l.EnsureFolder(it.Folder)
	}
	return l
}

// Key is the list key this handle edits.
func (l *List) Key() string { return l.key }

// Kind is the kind of the underlying list.
func (l *List) Kind() day.Kind { return l.list().Kind }

// Items returns the live item slice.
func (l *List) Items() []day.Item { return l.list().Items }

// Folders returns the ordered folder headers.
func (l *List) Folders() []string { return l.rec.UI.Folders[l.key] }

func (l *List) list() *day.List { return l.rec.List(l.key) }

// EnsureFolder adds a header for f if it is missing.
func (l *List) EnsureFolder(f string) bool {
	f = folder.Normalize(f)
	if day.Contains(l.rec.UI.Folders[l.key], f) {
		return false
	}
	l.rec.UI.Folders[l.key] = append(l.rec.UI.Folders[l.key], f)
	return true
}

// Add inserts text into folder f unless the same item is already there. The
// new item lands after the last item of f, or where f's header sits when the
// folder is empty.
func (l *List) Add(text, f string, done bool) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	f = folder.Normalize(f)
	if l.indexOfKey(day.Key(text, f)) >= 0 {
		return false
	}
	l.EnsureFolder(f)
	l.insert(day.Item{Text: text, Done: done, Folder: f})
	return true
}

// Move reassigns the item at index to dest. If dest already holds the same
// text, the moved item is dropped instead.
func (l *List) Move(index int, dest string) bool {
	items := l.list().Items
	if index < 0 || index >= len(items) {
		return false
	}
	dest = folder.Normalize(dest)
	it := items[index]
	if it.Folder == dest {
		return false
	}
	l.detach(it)
	l.removeAt(index)
	if l.hasTextIn(it.Text, dest) {
		return true
	}
	it.Folder = dest
	l.EnsureFolder(dest)
	l.insert(it)
	return true
}

// DeleteFolder removes a folder header. The Unfiled folder is only removed
// when empty; any other folder first has its items moved to Unfiled.
func (l *List) DeleteFolder(f string) bool {
	f = folder.Normalize(f)
	if f == folder.Root {
		for _, it := range l.list().Items {
			if it.Folder == folder.Root {
				return false
			}
		}
		return l.dropHeader(f)
	}

	changed := false
	for {
		i := l.firstIn(f)
		if i < 0 {
			break
		}
		l.Move(i, folder.Root)
		changed = true
	}
	return l.dropHeader(f) || changed
}

// Edit replaces the text of the item at index. It refuses edits that would
// collide with another item in the same folder.
func (l *List) Edit(index int, text string) bool {
	items := l.list().Items
	text = strings.TrimSpace(text)
	if index < 0 || index >= len(items) || text == "" {
		return false
	}
	it := items[index]
	if it.Text == text {
		return false
	}
	if j := l.indexOfKey(day.Key(text, it.Folder)); j >= 0 && j != index {
		return false
	}
	l.detach(it)
	items[index].Text = text
	return true
}

// Remove deletes the item at index.
func (l *List) Remove(index int) bool {
	items := l.list().Items
	if index < 0 || index >= len(items) {
		return false
	}
	l.detach(items[index])
	l.removeAt(index)
	return true
}

// SetDone checks or unchecks the item at index.
func (l *List) SetDone(index int, done bool) bool {
	items := l.list().Items
	if index < 0 || index >= len(items) || items[index].Done == done {
		return false
	}
	l.detach(items[index])
	items[index].Done = done
	return true
}

// ClearDone moves checked items into the record's cleared archive and
// returns how many were cleared.
func (l *List) ClearDone() int {
	lst := l.list()
	keep := make([]day.Item, 0, len(lst.Items))
	cleared := 0
	for _, it := range lst.Items {
		if !it.Done {
			keep = append(keep, it)
			continue
		}
		l.rec.Cleared[l.key] = append(l.rec.Cleared[l.key], it.Text)
		cleared++
	}
	lst.Items = keep
	return cleared
}

// ApplyTemplate adds template items whose text is not in the list yet. Done
// state is copied only when preserveDone is set.
func (l *List) ApplyTemplate(items []day.Item, preserveDone bool) int {
	have := make(map[string]bool, len(l.list().Items))
	for _, it := range l.list().Items {
		have[day.Normalize(it.Text)] = true
	}
	added := 0
	for _, it := range items {
		text := capFirst(it.Text)
		n := day.Normalize(text)
		if n == "" || have[n] {
			continue
		}
		if l.Add(text, it.Folder, preserveDone && it.Done) {
			added++
		}
		have[n] = true
	}
	return added
}

// Apply runs one parsed intent against the list.
func (l *List) Apply(in parse.Intent) bool {
	changed := false
	switch in.Kind {
	case parse.KindAdd:
		for _, f := range in.Folders {
			changed = l.Add(capFirst(in.Text), f, false) || changed
		}
	case parse.KindCreateFolder:
		for _, f := range in.Folders {
			changed = l.EnsureFolder(f) || changed
		}
	case parse.KindDeleteFolder:
		for _, f := range in.Folders {
			changed = l.DeleteFolder(f) || changed
		}
	}
	return changed
}

// ApplyBatch parses a multi-line input and applies every intent.
func (l *List) ApplyBatch(text string, tags bool) bool {
	changed := false
	for _, in := range parse.Batch(text, tags) {
		changed = l.Apply(in) || changed
	}
	return changed
}

func (l *List) insert(it day.Item) {
	lst := l.list()
	pos := l.insertPos(it.Folder)
	lst.Items = append(lst.Items, day.Item{})
	copy(lst.Items[pos+1:], lst.Items[pos:])
	lst.Items[pos] = it
}

func (l *List) insertPos(f string) int {
	items := l.list().Items
	last := -1
	for i, it := range items {
		if it.Folder == f {
			last = i
		}
	}
	if last >= 0 {
		return last + 1
	}
	order := l.rec.UI.Folders[l.key]
	at := indexOf(order, f)
	for i, it := range items {
		if indexOf(order, it.Folder) > at {
			return i
		}
	}
	return len(items)
}

func (l *List) removeAt(index int) {
	lst := l.list()
	lst.Items = append(lst.Items[:index], lst.Items[index+1:]...)
}

func (l *List) dropHeader(f string) bool {
	headers := l.rec.UI.Folders[l.key]
	i := indexOf(headers, f)
	if i < 0 {
		return false
	}
	l.rec.UI.Folders[l.key] = append(headers[:i], headers[i+1:]...)
	return true
}

func (l *List) indexOfKey(key string) int {
	for i, it := range l.list().Items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

func (l *List) hasTextIn(text, f string) bool {
	return l.indexOfKey(day.Key(text, f)) >= 0
}

func (l *List) firstIn(f string) int {
	for i, it := range l.list().Items {
		if it.Folder == f {
			return i
		}
	}
	return -1
}

// detach records that the user changed an item the last reconciliation
// carried here, so the next pass leaves it alone.
func (l *List) detach(it day.Item) {
	k := it.Key()
	if !day.Contains(l.rec.Carried[l.key], k) || day.Contains(l.rec.Detached[l.key], k) {
		return
	}
	l.rec.Detached[l.key] = append(l.rec.Detached[l.key], k)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

func capFirst(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
