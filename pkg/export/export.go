// Package export converts day records to and from the portable planner JSON
// document.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"tableflip.dev/planner/pkg/day"
)

// Version is the document version written by Encode.
const Version = 2

// Document is the portable form of one day.
type Document struct {
	Version int                  `json:"version"`
	Date    string               `json:"date,omitempty"`
	Day     Day                  `json:"day"`
	Bullets map[string]*day.List `json:"bullets"`
	Notes   []day.Item           `json:"notes"`
}

// Day holds the checklists of a document, with cleared items merged back in
// as done. On the wire each list sits directly under its key, next to the
// reserved "__smokes" and "__folders" entries.
type Day struct {
	Lists   map[string]*day.List
	Smokes  int
	Folders map[string][]string
}

const (
	smokesKey  = "__smokes"
	foldersKey = "__folders"
	clearedKey = "__clearedDone"
	reserved   = "__"
)

func (d Day) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Lists)+2)
	for key, l := range d.Lists {
		if l != nil && !strings.HasPrefix(key, reserved) {
			out[key] = l
		}
	}
	out[smokesKey] = d.Smokes
	if len(d.Folders) > 0 {
		out[foldersKey] = d.Folders
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat day object. Stored-day metadata such as
// "__carried" is skipped; "__clearedDone" is merged back as done items.
func (d *Day) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = Day{Lists: make(map[string]*day.List)}
	var cleared map[string][]day.Item
	for key, v := range raw {
		switch {
		case key == smokesKey:
			if err := json.Unmarshal(v, &d.Smokes); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case key == foldersKey:
			if err := json.Unmarshal(v, &d.Folders); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case key == clearedKey:
			if err := json.Unmarshal(v, &cleared); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case strings.HasPrefix(key, reserved), !isList(v):
		default:
			var l day.List
			if err := json.Unmarshal(v, &l); err != nil {
				return fmt.Errorf("list %q: %w", key, err)
			}
			if l.Kind == "" {
				l.Kind = day.KindChecklist
			}
			if l.Items == nil {
				l.Items = []day.Item{}
			}
			d.Lists[key] = &l
		}
	}
	for key, items := range cleared {
		if len(items) == 0 {
			continue
		}
		l, ok := d.Lists[key]
		if !ok {
			l = &day.List{Kind: day.KindChecklist, Items: []day.Item{}}
			d.Lists[key] = l
		}
		for _, it := range items {
			it = day.Item{Text: it.Text, Done: true, Folder: it.Folder}
			if day.Normalize(it.Text) != "" && !hasText(l.Items, it.Text) {
				l.Items = append(l.Items, it)
			}
		}
	}
	return nil
}

// isList reports whether v is an object with a "type" or "items" field.
func isList(v json.RawMessage) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(v, &fields); err != nil {
		return false
	}
	_, typed := fields["type"]
	_, items := fields["items"]
	return typed || items
}

// Empty reports whether the document carries no lists at all.
func (d Document) Empty() bool {
	return len(d.Day.Lists) == 0 && len(d.Bullets) == 0
}

// Build produces the document for rec. notes are the global notes.
func Build(rec *day.Record, notes []day.Item) Document {
	rec = rec.Clone()
	doc := Document{
		Version: Version,
		Date:    rec.Date,
		Day: Day{
			Lists:   make(map[string]*day.List),
			Smokes:  rec.Smokes,
			Folders: rec.UI.Folders,
		},
		Bullets: make(map[string]*day.List),
		Notes:   notes,
	}
	if doc.Notes == nil {
		doc.Notes = []day.Item{}
	}
	for _, key := range rec.ListKeys() {
		l := rec.Lists[key]
		if l.Kind == day.KindBullets {
			doc.Bullets[key] = l
			continue
		}
		for _, text := range rec.Cleared[key] {
			it := day.Item{Text: text, Done: true}
			if !hasKey(l.Items, it.Key()) {
				l.Items = append(l.Items, it)
			}
		}
		doc.Day.Lists[key] = l
	}
	// Lists that only exist in the archive still export their cleared items.
	for key, texts := range rec.Cleared {
		if _, ok := rec.Lists[key]; ok || len(texts) == 0 {
			continue
		}
		l := &day.List{Kind: day.KindChecklist, Items: []day.Item{}}
		for _, text := range texts {
			it := day.Item{Text: text, Done: true}
			if !hasKey(l.Items, it.Key()) {
				l.Items = append(l.Items, it)
			}
		}
		doc.Day.Lists[key] = l
	}
	return doc
}

// Filename is the conventional file name for a document dated date.
func Filename(date string) string {
	return date + "-planner.json"
}

var filenamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-planner\.json$`)

// ResolveDate picks the date a decoded document applies to: its own date,
// then the date in its file name, then fallback.
func (d Document) ResolveDate(filename, fallback string) string {
	if d.Date != "" {
		return d.Date
	}
	if m := filenamePattern.FindStringSubmatch(filepath.Base(filename)); m != nil {
		if _, err := day.Parse(m[1]); err == nil {
			return m[1]
		}
	}
	return fallback
}

// Record rebuilds a day record from the document. Cleared items come back as
// done items.
func (d Document) Record() *day.Record {
	rec := day.New(d.Date)
	rec.Smokes = d.Day.Smokes
	for key, l := range d.Day.Lists {
		if l == nil {
			continue
		}
		cp := *l
		cp.Items = append([]day.Item{}, l.Items...)
		if cp.Kind == "" {
			cp.Kind = day.KindChecklist
		}
		rec.Lists[key] = &cp
	}
	for key, l := range d.Bullets {
		if l == nil {
			continue
		}
		rec.Lists[key] = &day.List{Kind: day.KindBullets, Items: append([]day.Item{}, l.Items...)}
	}
	for key, headers := range d.Day.Folders {
		rec.UI.Folders[key] = append([]string{}, headers...)
	}
	for key, l := range rec.Lists {
		if l.Smoke {
			rec.SmokeCounted[key] = true
		}
	}
	return rec
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encode: %w", err)
	}
	return nil
}

// Decode reads a document. Documents newer than Version are refused.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("export: decode: %w", err)
	}
	if doc.Version > Version {
		return Document{}, fmt.Errorf("export: unsupported version %d", doc.Version)
	}
	if doc.Date != "" {
		if _, err := day.Parse(doc.Date); err != nil {
			return Document{}, errors.New("export: document date is not YYYY-MM-DD")
		}
	}
	return doc, nil
}

func hasKey(items []day.Item, key string) bool {
	for _, it := range items {
		if it.Key() == key {
			return true
		}
	}
	return false
}

func hasText(items []day.Item, text string) bool {
	n := day.Normalize(text)
	for _, it := range items {
		if day.Normalize(it.Text) == n {
			return true
		}
	}
	return false
}
