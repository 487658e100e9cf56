package app

import (
	"context"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/list"
)

func TestSessionDebouncesWrites(t *testing.T) {
	svc, mp, c := newService()
	ctx := context.Background()

	ss, err := svc.Open(ctx, 250*time.Millisecond)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	base := mp.saveCount()

	for _, text := range []string{"Report", "Email", "Lunch"} {
		if !ss.Add(0, "work", text) {
			t.Fatalf("expected %s to be added", text)
		}
		c.Advance(100 * time.Millisecond)
	}

	if got := texts(ss.Tomorrow(), "work"); len(got) != 3 {
		t.Fatalf("expected tomorrow reconciled in memory, got %v", got)
	}
	if mp.saveCount() != base {
		t.Fatalf("expected no writes during the burst, got %d", mp.saveCount()-base)
	}

	c.Advance(250 * time.Millisecond)
	if got := mp.saveCount() - base; got != 2 {
		t.Fatalf("expected one write per record, got %d", got)
	}
	if got := texts(mp.Load(ctx, "2025-10-12"), "work"); len(got) != 3 {
		t.Fatalf("expected tomorrow persisted, got %v", got)
	}
}

func TestSessionCloseFlushes(t *testing.T) {
	svc, mp, _ := newService()
	ctx := context.Background()

	ss, err := svc.Open(ctx, time.Minute)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ss.Add(0, "work", "Report")
	if !ss.Pending() {
		t.Fatal("expected a pending write")
	}
	if err := ss.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := texts(mp.Load(ctx, "2025-10-11"), "work"); !reflect.DeepEqual(got, []string{"Report"}) {
		t.Fatalf("expected flushed record, got %v", got)
	}
}

func TestSessionEditsTomorrow(t *testing.T) {
	svc, _, _ := newService()
	ss, err := svc.Open(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer ss.Close()

	ss.Add(0, "shopping", "Buy milk")
	ss.Edit(1, "shopping", 0, "Buy oat milk")
	ss.Add(0, "shopping", "Eggs")

	want := []string{"Eggs", "Buy oat milk"}
	if got := texts(ss.Tomorrow(), "shopping"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSessionTickAndReload(t *testing.T) {
	svc, mp, c := newService()
	ctx := context.Background()
	ss, err := svc.Open(ctx, time.Second)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer ss.Close()

	ss.Add(0, "morning", "Gym")
	c.Advance(5 * time.Hour)
	if !ss.Tick() {
		t.Fatal("expected cascade at 14:00")
	}
	if got := texts(ss.Today(), "daytime"); !reflect.DeepEqual(got, []string{"Gym"}) {
		t.Fatalf("expected Gym in daytime, got %v", got)
	}

	if err := ss.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	rec := mp.Load(ctx, "2025-10-11")
	list.Open(rec, "home").Add("Water plants", "", false)
	if err := mp.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ss.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := texts(ss.Tomorrow(), "home"); !reflect.DeepEqual(got, []string{"Water plants"}) {
		t.Fatalf("expected external edit reconciled on reload, got %v", got)
	}
	if got := texts(ss.Today(), "daytime"); !reflect.DeepEqual(got, []string{"Gym"}) {
		t.Fatalf("expected cascade to survive reload, got %v", got)
	}
}

func TestSessionNotes(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	ss, err := svc.Open(ctx, time.Minute)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer ss.Close()

	if !ss.Add(0, NotesList, "call mom, water plants") {
		t.Fatal("expected notes to be added")
	}
	if !ss.Edit(0, NotesList, 1, "Water the plants") {
		t.Fatal("expected note edit")
	}
	if !ss.Remove(0, NotesList, 0) {
		t.Fatal("expected note removal")
	}
	if ss.Remove(0, NotesList, 4) {
		t.Fatal("expected out of range removal to do nothing")
	}
	if ss.Do(0, NotesList, func(*list.List) bool { return true }) {
		t.Fatal("expected notes to be refused as a day list")
	}
	notes, _ := svc.Notes(ctx)
	if len(notes) != 1 || notes[0].Text != "Water the plants" {
		t.Fatalf("expected one edited note, got %+v", notes)
	}
	if _, ok := ss.Today().Lists[NotesList]; ok {
		t.Fatal("expected no notes list on the day")
	}
}

func TestSessionBullets(t *testing.T) {
	svc, _, _ := newService()
	ss, err := svc.Open(context.Background(), time.Minute)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer ss.Close()

	if !ss.AddBullets(0, "food", "Soup #lunch") {
		t.Fatal("expected bullets to be added")
	}
	food := ss.Today().Lists["food"]
	if food == nil || food.Kind != day.KindBullets {
		t.Fatalf("expected a bullets list, got %+v", food)
	}
	if got := texts(ss.Today(), "food"); !reflect.DeepEqual(got, []string{"Soup #lunch"}) {
		t.Fatalf("expected literal text, got %v", got)
	}
	if ss.Check(0, "food", 0, true) {
		t.Fatal("expected bullets not to be checkable")
	}
	if _, ok := ss.Tomorrow().Lists["food"]; ok {
		t.Fatal("expected bullets to stay on today")
	}

	ss.Add(0, "work", "Report")
	if ss.AddBullets(0, "work", "Idea") {
		t.Fatal("expected bullets on a checklist to do nothing")
	}
}
