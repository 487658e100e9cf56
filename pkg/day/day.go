// Package day defines the per-date planner record and its list items.
package day

import (
	"encoding/json"
	"strings"
)

// CurrentSchema is stamped on every record written by this version.
const CurrentSchema = "v1"

// Kind distinguishes checkable lists from plain bullet lists.
type Kind string

const (
	KindChecklist Kind = "checklist"
	KindBullets   Kind = "bullets"
)

// Item is one line of a list. Folder "" is the Unfiled folder.
type Item struct {
	Text   string `json:"text"`
	Done   bool   `json:"done,omitempty"`
	Folder string `json:"folder,omitempty"`
}

// UnmarshalJSON also accepts a bare string, the form older bullet lists and
// notes were saved in.
func (i *Item) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*i = Item{Text: text}
		return nil
	}
	type plain Item
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*i = Item(p)
	return nil
}

// Key is the composite identity of the item.
func (i Item) Key() string {
	return Key(i.Text, i.Folder)
}

// List is a named list owned by a Record.
type List struct {
	Kind  Kind   `json:"type"`
	Items []Item `json:"items"`
	Smoke bool   `json:"smoke,omitempty"`
}

// CarryMeta maps a list key to the composite keys injected by the last
// reconciliation pass. A present key with no values means the list was
// reconciled and nothing was carried.
type CarryMeta map[string][]string

// UIState holds the persisted view flags of a record.
type UIState struct {
	Collapsed     map[string]bool     `json:"collapsed,omitempty"`
	AutoCollapsed map[string]bool     `json:"autoCollapsed,omitempty"`
	Folders       map[string][]string `json:"folders,omitempty"`
}

// Record is everything stored for one calendar date.
type Record struct {
	Schema       string              `json:"schema,omitempty"`
	Date         string              `json:"date"`
	Lists        map[string]*List    `json:"lists"`
	Smokes       int                 `json:"smokes,omitempty"`
	SmokeCounted map[string]bool     `json:"smokeCounted,omitempty"`
	Cleared      map[string][]string `json:"clearedDone,omitempty"`
	Carried      CarryMeta           `json:"carried,omitempty"`
	Detached     map[string][]string `json:"detached,omitempty"`
	UI           UIState             `json:"ui"`
}

// New returns an empty record for date.
func New(date string) *Record {
	r := &Record{Schema: CurrentSchema, Date: date}
	r.Normalize()
	return r
}

// Normalize fills nil maps and repairs list kinds after decoding.
func (r *Record) Normalize() {
	if r.Schema == "" {
		r.Schema = CurrentSchema
	}
	if r.Lists == nil {
		r.Lists = make(map[string]*List)
	}
	for key, l := range r.Lists {
		if l == nil {
			delete(r.Lists, key)
			continue
		}
		if l.Kind == "" {
			l.Kind = KindChecklist
		}
	}
	if r.SmokeCounted == nil {
		r.SmokeCounted = make(map[string]bool)
	}
	if r.Cleared == nil {
		r.Cleared = make(map[string][]string)
	}
	if r.Carried == nil {
		r.Carried = make(CarryMeta)
	}
	if r.Detached == nil {
		r.Detached = make(map[string][]string)
	}
	if r.UI.Collapsed == nil {
		r.UI.Collapsed = make(map[string]bool)
	}
	if r.UI.AutoCollapsed == nil {
		r.UI.AutoCollapsed = make(map[string]bool)
	}
	if r.UI.Folders == nil {
		r.UI.Folders = make(map[string][]string)
	}
}

// List returns the list stored under key, creating an empty checklist when
// it does not exist yet.
func (r *Record) List(key string) *List {
	return r.ListOf(key, KindChecklist)
}

// ListOf returns the list stored under key, creating an empty list of kind
// when it does not exist yet. An existing list keeps its own kind.
func (r *Record) ListOf(key string, kind Kind) *List {
	if r.Lists == nil {
		r.Lists = make(map[string]*List)
	}
	l, ok := r.Lists[key]
	if !ok || l == nil {
		l = &List{Kind: kind, Items: []Item{}}
		r.Lists[key] = l
	}
	return l
}

// ListKeys returns the list keys in sorted order.
func (r *Record) ListKeys() []string {
	return sortedKeys(r.Lists)
}

// SetSmoke flips the smoke flag of a list. The day counter moves at most once
// per list in each direction.
func (r *Record) SetSmoke(key string, on bool) {
	r.Normalize()
	r.List(key).Smoke = on
	counted := r.SmokeCounted[key]
	switch {
	case on && !counted:
		r.Smokes++
		r.SmokeCounted[key] = true
	case !on && counted:
		if r.Smokes > 0 {
			r.Smokes--
		}
		r.SmokeCounted[key] = false
	}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := &Record{
		Schema: r.Schema,
		Date:   r.Date,
		Smokes: r.Smokes,
	}
	if r.Lists != nil {
		cp.Lists = make(map[string]*List, len(r.Lists))
		for k, l := range r.Lists {
			if l == nil {
				continue
			}
			cl := *l
			cl.Items = append([]Item{}, l.Items...)
			cp.Lists[k] = &cl
		}
	}
	cp.SmokeCounted = cloneBools(r.SmokeCounted)
	cp.Cleared = cloneStrings(r.Cleared)
	cp.Carried = CarryMeta(cloneStrings(r.Carried))
	cp.Detached = cloneStrings(r.Detached)
	cp.UI = UIState{
		Collapsed:     cloneBools(r.UI.Collapsed),
		AutoCollapsed: cloneBools(r.UI.AutoCollapsed),
		Folders:       cloneStrings(r.UI.Folders),
	}
	cp.Normalize()
	return cp
}

// Normalize trims and casefolds item text for identity comparisons.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Key builds the composite identity used for dedup and carry tracking.
func Key(text, folder string) string {
	return Normalize(text) + "@" + folder
}

// SplitKey undoes Key. Folder keys never contain "@", so the last one wins.
func SplitKey(key string) (text, folder string) {
	i := strings.LastIndex(key, "@")
	if i < 0 {
		return key, ""
	}
	return key[:i], key[i+1:]
}

// Contains reports whether list holds value.
func Contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func cloneBools(in map[string]bool) map[string]bool {
	if in == nil {
		return nil
	}
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneStrings(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = append([]string{}, v...)
	}
	return out
}
