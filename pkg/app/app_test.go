package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/clock"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/export"
	"tableflip.dev/planner/pkg/store"
)

type memoryPersistence struct {
	mu        sync.Mutex
	records   map[string][]byte
	anchor    string
	notes     []day.Item
	templates map[string][]day.Item
	saves     int
}

func newMemoryPersistence(recs ...*day.Record) *memoryPersistence {
	mp := &memoryPersistence{
		records:   make(map[string][]byte),
		templates: make(map[string][]day.Item),
	}
	for _, rec := range recs {
		if err := mp.Save(context.Background(), rec); err != nil {
			panic(err)
		}
	}
	mp.saves = 0
	return mp
}

func (m *memoryPersistence) Load(_ context.Context, date string) *day.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[date]
	if !ok {
		return day.New(date)
	}
	rec := &day.Record{}
	if err := json.Unmarshal(data, rec); err != nil {
		return day.New(date)
	}
	rec.Normalize()
	return rec
}

func (m *memoryPersistence) Save(_ context.Context, rec *day.Record) error {
	if rec == nil || rec.Date == "" {
		return errors.New("missing date")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Date] = data
	m.saves++
	return nil
}

func (m *memoryPersistence) Dates(context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	dates := make([]string, 0, len(m.records))
	for d := range m.records {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func (m *memoryPersistence) Anchor(context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.anchor, m.anchor != ""
}

func (m *memoryPersistence) SetAnchor(_ context.Context, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anchor = date
	return nil
}

func (m *memoryPersistence) Notes(context.Context) []day.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]day.Item{}, m.notes...)
}

func (m *memoryPersistence) SetNotes(_ context.Context, items []day.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append([]day.Item{}, items...)
	return nil
}

func (m *memoryPersistence) Templates(context.Context) map[string][]day.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]day.Item, len(m.templates))
	for k, v := range m.templates {
		out[k] = append([]day.Item{}, v...)
	}
	return out
}

func (m *memoryPersistence) SaveTemplate(_ context.Context, name string, items []day.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(items) == 0 {
		delete(m.templates, name)
		return nil
	}
	m.templates[name] = append([]day.Item{}, items...)
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func (m *memoryPersistence) Close() error { return nil }

func (m *memoryPersistence) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var morning = time.Date(2025, 10, 11, 9, 0, 0, 0, time.Local)

func newService(recs ...*day.Record) (*Service, *memoryPersistence, *clock.Manual) {
	mp := newMemoryPersistence(recs...)
	c := clock.NewManual(morning)
	return &Service{Persistence: mp, Clock: c}, mp, c
}

func texts(rec *day.Record, key string) []string {
	out := []string{}
	if l, ok := rec.Lists[key]; ok {
		for _, it := range l.Items {
			out = append(out, it.Text)
		}
	}
	return out
}

func TestAnchorDefaultsToClock(t *testing.T) {
	svc, mp, c := newService()
	ctx := context.Background()

	got, err := svc.Anchor(ctx)
	if err != nil {
		t.Fatalf("anchor: %v", err)
	}
	if got != "2025-10-11" {
		t.Fatalf("expected 2025-10-11, got %s", got)
	}

	c.Advance(48 * time.Hour)
	if got, _ := svc.Anchor(ctx); got != "2025-10-11" {
		t.Fatalf("expected anchor to stay pinned, got %s", got)
	}
	if mp.anchor != "2025-10-11" {
		t.Fatalf("expected anchor persisted, got %q", mp.anchor)
	}
}

func TestNoPersistence(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Add(context.Background(), 0, "work", "x"); err == nil {
		t.Fatal("expected error without persistence")
	}
}

func TestAddPropagatesTagsAndReconciles(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	changed, err := svc.Add(ctx, 0, "shopping", "milk, eggs, bread #groceries")
	if err != nil || !changed {
		t.Fatalf("add: %v %v", changed, err)
	}

	today, _ := svc.Day(ctx, 0)
	for _, it := range today.Lists["shopping"].Items {
		if it.Folder != "groceries" {
			t.Fatalf("expected %q in groceries, got %q", it.Text, it.Folder)
		}
	}
	if got, want := texts(today, "shopping"), []string{"Milk", "Eggs", "Bread"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	tomorrow, _ := svc.Day(ctx, 1)
	if got := texts(tomorrow, "shopping"); len(got) != 3 {
		t.Fatalf("expected tomorrow to carry 3 items, got %v", got)
	}
}

func TestAddToTimeBlockIgnoresTags(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	if _, err := svc.Add(ctx, 0, "morning", "Gym #legs"); err != nil {
		t.Fatalf("add: %v", err)
	}
	today, _ := svc.Day(ctx, 0)
	items := today.Lists["morning"].Items
	if len(items) != 1 || items[0].Text != "Gym #legs" || items[0].Folder != "" {
		t.Fatalf("expected literal root item, got %+v", items)
	}
}

func TestCheckRemovesCarry(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, "work", "Call dentist; Email")

	if err := svc.Check(ctx, 0, "work", 0, true); err != nil {
		t.Fatalf("check: %v", err)
	}
	tomorrow, _ := svc.Day(ctx, 1)
	if got, want := texts(tomorrow, "work"), []string{"Email"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if err := svc.Check(ctx, 0, "work", 9, true); !errors.Is(err, ErrNoSuchItem) {
		t.Fatalf("expected ErrNoSuchItem, got %v", err)
	}
	if err := svc.Check(ctx, 0, "nope", 0, true); !errors.Is(err, ErrNoSuchItem) {
		t.Fatalf("expected ErrNoSuchItem for unknown list, got %v", err)
	}
}

func TestEditOnTomorrowSurvivesReconcile(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, "shopping", "Buy milk")

	if err := svc.Edit(ctx, 1, "shopping", 0, "Buy oat milk"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := svc.Reconcile(ctx); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	tomorrow, _ := svc.Day(ctx, 1)
	if got, want := texts(tomorrow, "shopping"), []string{"Buy oat milk"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMoveAndDeleteFolder(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, "work", "Report, Email #work")

	if err := svc.Move(ctx, 0, "work", 0, "urgent"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if changed, err := svc.DeleteFolder(ctx, 0, "work", "work"); err != nil || !changed {
		t.Fatalf("delete folder: %v %v", changed, err)
	}
	today, _ := svc.Day(ctx, 0)
	for _, it := range today.Lists["work"].Items {
		if it.Folder == "work" {
			t.Fatalf("expected no items left in work, got %+v", it)
		}
	}
	if day.Contains(today.UI.Folders["work"], "work") {
		t.Fatal("expected work header to be gone")
	}
}

func TestNotes(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	svc.Add(ctx, 0, NotesList, "call mom, water plants")
	svc.Add(ctx, 0, NotesList, "Call mom")
	notes, _ := svc.Notes(ctx)
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %+v", notes)
	}
}

func TestEditNotes(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, NotesList, "call mom, water plants, pay rent")

	if err := svc.Edit(ctx, 0, NotesList, 0, "Call dad"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := svc.Edit(ctx, 0, NotesList, 1, "CALL DAD"); err != nil {
		t.Fatalf("edit to duplicate: %v", err)
	}
	if err := svc.Remove(ctx, 0, NotesList, 2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	notes, _ := svc.Notes(ctx)
	got := []string{}
	for _, it := range notes {
		got = append(got, it.Text)
	}
	if want := []string{"Call dad", "water plants"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if err := svc.Edit(ctx, 0, NotesList, 1, "  "); err != nil {
		t.Fatalf("edit to empty: %v", err)
	}
	if notes, _ := svc.Notes(ctx); len(notes) != 1 || notes[0].Text != "Call dad" {
		t.Fatalf("expected empty edit to remove the note, got %+v", notes)
	}

	if err := svc.Remove(ctx, 0, NotesList, 5); !errors.Is(err, ErrNoSuchItem) {
		t.Fatalf("expected ErrNoSuchItem, got %v", err)
	}
	if err := svc.Edit(ctx, 0, NotesList, -1, "x"); !errors.Is(err, ErrNoSuchItem) {
		t.Fatalf("expected ErrNoSuchItem, got %v", err)
	}
	if err := svc.Check(ctx, 0, NotesList, 0, true); !errors.Is(err, ErrNotCheckable) {
		t.Fatalf("expected ErrNotCheckable, got %v", err)
	}
	if err := svc.Move(ctx, 0, NotesList, 0, "home"); err == nil {
		t.Fatal("expected moving a note to fail")
	}
}

func TestAddBullets(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	changed, err := svc.AddBullets(ctx, 0, "food", "Soup #lunch, Bread")
	if err != nil || !changed {
		t.Fatalf("add bullets: %v %v", changed, err)
	}
	today, _ := svc.Day(ctx, 0)
	food := today.Lists["food"]
	if food == nil || food.Kind != day.KindBullets {
		t.Fatalf("expected a bullets list, got %+v", food)
	}
	got := texts(today, "food")
	sort.Strings(got)
	if want := []string{"Bread", "Soup #lunch"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected literal bullets %v, got %v", want, got)
	}

	// Plain Add on an existing bullets list keeps it bullets and literal.
	if _, err := svc.Add(ctx, 0, "food", "Tea #drinks"); err != nil {
		t.Fatalf("add: %v", err)
	}
	today, _ = svc.Day(ctx, 0)
	if today.Lists["food"].Kind != day.KindBullets {
		t.Fatalf("expected bullets kind kept, got %v", today.Lists["food"].Kind)
	}
	for _, it := range today.Lists["food"].Items {
		if it.Folder != "" {
			t.Fatalf("expected no folders on bullets, got %+v", it)
		}
	}

	if err := svc.Check(ctx, 0, "food", 0, true); !errors.Is(err, ErrNotCheckable) {
		t.Fatalf("expected ErrNotCheckable, got %v", err)
	}
	if tomorrow, _ := svc.Day(ctx, 1); tomorrow.Lists["food"] != nil {
		t.Fatalf("expected bullets to stay on today, got %+v", tomorrow.Lists["food"])
	}

	svc.Add(ctx, 0, "work", "Report")
	if _, err := svc.AddBullets(ctx, 0, "work", "Idea"); err == nil {
		t.Fatal("expected bullets on a checklist to fail")
	}
	if today, _ := svc.Day(ctx, 0); !reflect.DeepEqual(texts(today, "work"), []string{"Report"}) {
		t.Fatalf("expected checklist untouched, got %v", texts(today, "work"))
	}
}

func TestTemplates(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, "gym", "Stretch, Squats")
	svc.Check(ctx, 0, "gym", 0, true)

	if n, err := svc.SaveTemplate(ctx, 0, "gym", "legday"); err != nil || n != 2 {
		t.Fatalf("save template: %d %v", n, err)
	}
	n, err := svc.ApplyTemplate(ctx, 1, "gym", "legday", false)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only the missing item to be added, got %d", n)
	}
	if _, err := svc.ApplyTemplate(ctx, 0, "gym", "armday", false); !errors.Is(err, ErrNoSuchTemplate) {
		t.Fatalf("expected ErrNoSuchTemplate, got %v", err)
	}
}

func TestSaveTemplateFromEmptyListKeepsTemplate(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, "gym", "Stretch")
	if _, err := svc.SaveTemplate(ctx, 0, "gym", "legday"); err != nil {
		t.Fatalf("save template: %v", err)
	}

	if _, err := svc.SaveTemplate(ctx, 0, "reading", "legday"); err == nil {
		t.Fatal("expected saving an empty list to fail")
	}
	tpl, _ := svc.Templates(ctx)
	if len(tpl["legday"]) != 1 {
		t.Fatalf("expected legday kept, got %+v", tpl)
	}

	if err := svc.DeleteTemplate(ctx, "legday"); err != nil {
		t.Fatalf("delete template: %v", err)
	}
	if tpl, _ := svc.Templates(ctx); len(tpl) != 0 {
		t.Fatalf("expected no templates, got %+v", tpl)
	}
	if err := svc.DeleteTemplate(ctx, "legday"); !errors.Is(err, ErrNoSuchTemplate) {
		t.Fatalf("expected ErrNoSuchTemplate, got %v", err)
	}
}

func TestSmokeCounter(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	for _, on := range []bool{true, true, false, true} {
		if _, err := svc.Smoke(ctx, 0, "work", on); err != nil {
			t.Fatalf("smoke: %v", err)
		}
	}
	n, _ := svc.Smoke(ctx, 0, "home", true)
	if n != 2 {
		t.Fatalf("expected 2 smokes, got %d", n)
	}
}

func TestTickCascadesAtBoundary(t *testing.T) {
	svc, _, c := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, "morning", "Gym, Read")
	svc.Check(ctx, 0, "morning", 1, true)

	if changed, _ := svc.Tick(ctx); changed {
		t.Fatal("expected nothing to cascade at 9:00")
	}
	c.Advance(5 * time.Hour)
	if changed, err := svc.Tick(ctx); err != nil || !changed {
		t.Fatalf("expected cascade at 14:00: %v", err)
	}

	today, _ := svc.Day(ctx, 0)
	if got := texts(today, "morning"); !reflect.DeepEqual(got, []string{"Read"}) {
		t.Fatalf("expected Read left in morning, got %v", got)
	}
	if got := texts(today, "daytime"); !reflect.DeepEqual(got, []string{"Gym"}) {
		t.Fatalf("expected Gym in daytime, got %v", got)
	}
	if !svc.Chain().Collapsed(today, "morning") {
		t.Fatal("expected morning collapsed")
	}
}

func TestHour(t *testing.T) {
	svc, _, _ := newService()
	for date, want := range map[string]int{"2025-10-10": 24, "2025-10-11": 9, "2025-10-12": 0} {
		if got := svc.Hour(date); got != want {
			t.Fatalf("%s: expected %d, got %d", date, want, got)
		}
	}
}

func TestCollapse(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	if err := svc.Collapse(ctx, 0, "work", true); err == nil {
		t.Fatal("expected error for non-block list")
	}
	if err := svc.Collapse(ctx, 0, "evening", true); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	today, _ := svc.Day(ctx, 0)
	if !svc.Chain().Collapsed(today, "evening") {
		t.Fatal("expected evening collapsed")
	}
}

func TestEndDay(t *testing.T) {
	svc, mp, _ := newService()
	svc.ArchiveDir = t.TempDir()
	ctx := context.Background()
	svc.Add(ctx, 0, "work", "Report, Email, Lunch")
	svc.Check(ctx, 0, "work", 2, true)
	svc.Clear(ctx, 0, "work")

	tr, err := svc.EndDay(ctx)
	if err != nil {
		t.Fatalf("end day: %v", err)
	}
	if tr.From != "2025-10-11" || tr.To != "2025-10-12" {
		t.Fatalf("unexpected transition %+v", tr)
	}
	if tr.Carried["work"] != 2 {
		t.Fatalf("expected 2 carried, got %+v", tr.Carried)
	}
	if mp.anchor != "2025-10-12" {
		t.Fatalf("expected anchor to advance, got %q", mp.anchor)
	}

	next := mp.Load(ctx, "2025-10-12")
	if got, want := texts(next, "work"), []string{"Report", "Email"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := next.Carried["work"]; len(got) != 2 {
		t.Fatalf("expected carry meta for both items, got %v", got)
	}

	f, err := os.Open(filepath.Join(svc.ArchiveDir, "2025-10-11-planner.json"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()
	doc, err := export.Decode(f)
	if err != nil {
		t.Fatalf("decode archive: %v", err)
	}
	if got := len(doc.Day.Lists["work"].Items); got != 3 {
		t.Fatalf("expected cleared item in archive, got %d items", got)
	}

	if len(tr.Archives) != 2 || filepath.Base(tr.Archives[1]) != "2025-10-12-planner.json" {
		t.Fatalf("expected today and tomorrow archived, got %v", tr.Archives)
	}
	g, err := os.Open(tr.Archives[1])
	if err != nil {
		t.Fatalf("open tomorrow archive: %v", err)
	}
	defer g.Close()
	doc, err = export.Decode(g)
	if err != nil {
		t.Fatalf("decode tomorrow archive: %v", err)
	}
	if doc.Date != "2025-10-12" {
		t.Fatalf("expected tomorrow's date, got %q", doc.Date)
	}
	if got := texts(&day.Record{Lists: doc.Day.Lists}, "work"); !reflect.DeepEqual(got, []string{"Report", "Email"}) {
		t.Fatalf("expected merged items in tomorrow archive, got %v", got)
	}
}

func TestEndDayMergeIsIdempotent(t *testing.T) {
	today := day.New("2025-10-11")
	today.List("work").Items = []day.Item{{Text: "Report"}, {Text: "Email", Done: true}}
	tomorrow := day.New("2025-10-12")
	tomorrow.List("work").Items = []day.Item{{Text: "Standup"}}

	n, carried := mergeUnfinished(today.Lists["work"].Items, tomorrow, "work")
	if n != 1 || !reflect.DeepEqual(carried, []string{"report@"}) {
		t.Fatalf("unexpected first merge %d %v", n, carried)
	}
	n, _ = mergeUnfinished(today.Lists["work"].Items, tomorrow, "work")
	if n != 0 {
		t.Fatalf("expected second merge to add nothing, got %d", n)
	}
	if got, want := texts(tomorrow, "work"), []string{"Report", "Standup"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExportImport(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, "work", "Report #q4")
	svc.Add(ctx, 0, NotesList, "Call mom")

	doc, err := svc.Export(ctx, 0)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	other, mp, _ := newService()
	doc.Date = ""
	date, err := other.Import(ctx, doc, "2025-10-11-planner.json")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if date != "2025-10-11" {
		t.Fatalf("expected date from file name, got %s", date)
	}
	rec := mp.Load(ctx, date)
	if got := rec.Lists["work"].Items; len(got) != 1 || got[0].Folder != "q4" {
		t.Fatalf("unexpected imported items %+v", got)
	}
	if notes, _ := other.Notes(ctx); len(notes) != 1 {
		t.Fatalf("expected notes imported, got %+v", notes)
	}
	tomorrow, _ := other.Day(ctx, 1)
	if got := texts(tomorrow, "work"); len(got) != 1 {
		t.Fatalf("expected import to reconcile tomorrow, got %v", got)
	}
}

const browserExport = `{
  "version": 2,
  "date": "2025-10-11",
  "day": {
    "work": {"type": "checklist", "items": [{"text": "Report"}, {"text": "Email", "done": true}], "smoke": true},
    "__smokes": 2,
    "__carried": {"work": ["report"]}
  },
  "bullets": {"food": {"type": "bullets", "items": [{"text": "Soup"}]}},
  "notes": ["Call mom"]
}`

func TestImportBrowserDocument(t *testing.T) {
	svc, mp, _ := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, "home", "Existing task")

	doc, err := export.Decode(strings.NewReader(browserExport))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := svc.Import(ctx, doc, ""); err != nil {
		t.Fatalf("import: %v", err)
	}

	rec := mp.Load(ctx, "2025-10-11")
	if got, want := texts(rec, "work"), []string{"Report", "Email"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !rec.Lists["work"].Items[1].Done {
		t.Fatal("expected Email done")
	}
	if rec.Smokes != 2 || !rec.Lists["work"].Smoke {
		t.Fatalf("expected smoke state, got %d %v", rec.Smokes, rec.Lists["work"].Smoke)
	}
	if l := rec.Lists["food"]; l == nil || l.Kind != day.KindBullets || len(l.Items) != 1 {
		t.Fatalf("expected food bullets, got %+v", l)
	}
	if notes, _ := svc.Notes(ctx); len(notes) != 1 || notes[0].Text != "Call mom" {
		t.Fatalf("expected string notes imported, got %+v", notes)
	}
}

func TestImportRefusesEmptyDocument(t *testing.T) {
	svc, mp, _ := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, "work", "Existing task")

	for _, in := range []string{
		`{"version":2,"date":"2025-10-11","day":{"__smokes":1},"bullets":{}}`,
		`{"version":2,"date":"2025-10-11","day":{"lists":{"work":{"type":"checklist","items":[]}}}}`,
	} {
		doc, err := export.Decode(strings.NewReader(in))
		if err != nil {
			t.Fatalf("decode %s: %v", in, err)
		}
		if _, err := svc.Import(ctx, doc, ""); err == nil {
			t.Fatalf("expected %s to be refused", in)
		}
	}
	if got := texts(mp.Load(ctx, "2025-10-11"), "work"); len(got) != 1 {
		t.Fatalf("expected stored day untouched, got %v", got)
	}
}

func TestReport(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	svc.Add(ctx, 0, "work", "Report, Email")
	svc.Check(ctx, 0, "work", 0, true)
	svc.Check(ctx, 0, "work", 1, true)
	svc.Clear(ctx, 0, "work")
	svc.Add(ctx, 0, "work", "Review")
	svc.Check(ctx, 0, "work", 0, true)

	res, err := svc.Report(ctx, "2025-10-12", "2025-10-01")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if res.Since != "2025-10-01" || res.Total != 3 {
		t.Fatalf("unexpected report %+v", res)
	}
	if _, err := svc.Report(ctx, "yesterday", "2025-10-01"); err == nil {
		t.Fatal("expected error for bad bounds")
	}
}
