package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"tableflip.dev/planner/pkg/day"
)

// Persistence is the record store. Every write replaces a whole record; the
// last write wins.
type Persistence interface {
	// Load returns the record for date. Missing or unreadable records come
	// back empty so callers can always proceed.
	Load(ctx context.Context, date string) *day.Record
	Save(ctx context.Context, rec *day.Record) error
	// Dates lists the dates with a stored record, oldest first.
	Dates(ctx context.Context) []string

	Anchor(ctx context.Context) (string, bool)
	SetAnchor(ctx context.Context, date string) error

	Notes(ctx context.Context) []day.Item
	SetNotes(ctx context.Context, items []day.Item) error

	Templates(ctx context.Context) map[string][]day.Item
	SaveTemplate(ctx context.Context, name string, items []day.Item) error

	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// AnchorKey holds the date of the current day.
const AnchorKey = "meta:anchor"

const (
	dayPrefix    = "day:"
	notesKey     = "meta:notes"
	templatesKey = "meta:templates"
)

var errNotFound = errors.New("store: not found")

// backend is a flat key/value medium.
type backend interface {
	read(ctx context.Context, key string) ([]byte, error)
	write(ctx context.Context, key string, val []byte) error
	keys(ctx context.Context, prefix string) []string
	// watchRoot is the directory fsnotify should observe and recursive
	// reports whether its subdirectories matter too.
	watchRoot() (dir string, recursive bool)
	// keyForPath maps a changed file back to a key. ok is false for files
	// that do not belong to the store; key is "" when the change cannot be
	// pinned to one key.
	keyForPath(path string) (key string, ok bool)
	close() error
}

// Load opens the configured backend. A nil cfg reads the config file.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	var (
		b   backend
		err error
	)
	switch cfg.Backend() {
	case BackendSQLite:
		b, err = openSQLite(cfg.BasePath())
	case BackendDiskv, "":
		b, err = openDiskv(cfg.BasePath())
	default:
		err = fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
	if err != nil {
		return nil, err
	}
	return &persistence{b: b}, nil
}

type persistence struct {
	b backend
}

func dayKey(date string) string { return dayPrefix + date }

func (p *persistence) Load(ctx context.Context, date string) *day.Record {
	val, err := p.b.read(ctx, dayKey(date))
	if err != nil {
		if !errors.Is(err, errNotFound) {
			fmt.Fprintf(os.Stderr, "store: read %s: %v\n", date, err)
		}
		return day.New(date)
	}
	rec := &day.Record{}
	if err := json.Unmarshal(val, rec); err != nil {
		fmt.Fprintf(os.Stderr, "store: %s is corrupt, starting empty: %v\n", date, err)
		return day.New(date)
	}
	rec.Date = date
	rec.Normalize()
	return rec
}

func (p *persistence) Save(ctx context.Context, rec *day.Record) error {
	if rec == nil || rec.Date == "" {
		return errors.New("store: record date required")
	}
	if _, err := day.Parse(rec.Date); err != nil {
		return fmt.Errorf("store: bad record date: %w", err)
	}
	rec.Normalize()
	rec.Schema = day.CurrentSchema
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", rec.Date, err)
	}
	if err := p.b.write(ctx, dayKey(rec.Date), data); err != nil {
		return fmt.Errorf("store: write %s: %w", rec.Date, err)
	}
	return nil
}

func (p *persistence) Dates(ctx context.Context) []string {
	keys := p.b.keys(ctx, dayPrefix)
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, strings.TrimPrefix(k, dayPrefix))
	}
	sort.Strings(dates)
	return dates
}

func (p *persistence) Anchor(ctx context.Context) (string, bool) {
	var date string
	if !p.readMeta(ctx, AnchorKey, &date) || date == "" {
		return "", false
	}
	if _, err := day.Parse(date); err != nil {
		fmt.Fprintf(os.Stderr, "store: ignoring bad anchor %q\n", date)
		return "", false
	}
	return date, true
}

func (p *persistence) SetAnchor(ctx context.Context, date string) error {
	if _, err := day.Parse(date); err != nil {
		return fmt.Errorf("store: bad anchor: %w", err)
	}
	return p.writeMeta(ctx, AnchorKey, date)
}

func (p *persistence) Notes(ctx context.Context) []day.Item {
	var items []day.Item
	p.readMeta(ctx, notesKey, &items)
	if items == nil {
		items = []day.Item{}
	}
	return items
}

func (p *persistence) SetNotes(ctx context.Context, items []day.Item) error {
	if items == nil {
		items = []day.Item{}
	}
	return p.writeMeta(ctx, notesKey, items)
}

func (p *persistence) Templates(ctx context.Context) map[string][]day.Item {
	tpl := make(map[string][]day.Item)
	p.readMeta(ctx, templatesKey, &tpl)
	if tpl == nil {
		tpl = make(map[string][]day.Item)
	}
	return tpl
}

func (p *persistence) SaveTemplate(ctx context.Context, name string, items []day.Item) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("store: template name required")
	}
	tpl := p.Templates(ctx)
	if len(items) == 0 {
		delete(tpl, name)
	} else {
		tpl[name] = items
	}
	return p.writeMeta(ctx, templatesKey, tpl)
}

func (p *persistence) Close() error {
	return p.b.close()
}

func (p *persistence) readMeta(ctx context.Context, key string, v interface{}) bool {
	val, err := p.b.read(ctx, key)
	if err != nil {
		if !errors.Is(err, errNotFound) {
			fmt.Fprintf(os.Stderr, "store: read %s: %v\n", key, err)
		}
		return false
	}
	if err := json.Unmarshal(val, v); err != nil {
		fmt.Fprintf(os.Stderr, "store: %s is corrupt: %v\n", key, err)
		return false
	}
	return true
}

func (p *persistence) writeMeta(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.b.write(ctx, key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}
