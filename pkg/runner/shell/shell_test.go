package shell

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/clock"
	"tableflip.dev/planner/pkg/store"
)

func init() {
	color.NoColor = true
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(store.StaticConfig{Path: filepath.Join(t.TempDir(), "db"), Kind: store.BackendDiskv})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	c := clock.NewManual(time.Date(2025, 10, 11, 9, 0, 0, 0, time.Local))
	return &app.Service{Persistence: p, Clock: c}
}

func TestShellScript(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	script := strings.Join([]string{
		":use shopping",
		"milk, eggs, bread #groceries",
		":x 0",
		":e 1 Free range eggs",
		":bogus",
		":q",
		"never reached",
	}, "\n")

	var out bytes.Buffer
	sh := &Shell{Service: svc, Quiet: time.Hour, In: strings.NewReader(script), Out: &out}
	if err := sh.Do(ctx); err != nil {
		t.Fatalf("shell: %v", err)
	}

	rec, err := svc.Day(ctx, 0)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	items := rec.Lists["shopping"].Items
	if len(items) != 3 {
		t.Fatalf("expected 3 items saved on quit, got %+v", items)
	}
	if !items[0].Done || items[1].Text != "Free range eggs" {
		t.Fatalf("unexpected items %+v", items)
	}
	if _, ok := rec.Lists["never"]; ok {
		t.Fatal("expected input after :q to be ignored")
	}
	if !strings.Contains(out.String(), "?? :bogus") {
		t.Fatalf("expected unknown command notice:\n%s", out.String())
	}

	tomorrow, _ := svc.Day(ctx, 1)
	if got := len(tomorrow.Lists["shopping"].Items); got != 2 {
		t.Fatalf("expected 2 unfinished items on tomorrow, got %d", got)
	}
}

func TestShellTickAtHour(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	script := ":use morning\nGym #not-a-tag\n:tick 14\n"

	var out bytes.Buffer
	sh := &Shell{Service: svc, Quiet: time.Hour, In: strings.NewReader(script), Out: &out}
	if err := sh.Do(ctx); err != nil {
		t.Fatalf("shell: %v", err)
	}
	rec, _ := svc.Day(ctx, 0)
	items := rec.Lists["daytime"].Items
	if len(items) != 1 || items[0].Text != "Gym #not-a-tag" {
		t.Fatalf("expected Gym cascaded to daytime, got %+v", items)
	}
}

func TestShellBulletsAndNotes(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	script := strings.Join([]string{
		":bullets food",
		"Soup #lunch",
		":x 0",
		":use notes",
		"call mom, water plants",
		":e 0 Call dad",
		":rm 1",
	}, "\n")

	var out bytes.Buffer
	sh := &Shell{Service: svc, Quiet: time.Hour, In: strings.NewReader(script), Out: &out}
	if err := sh.Do(ctx); err != nil {
		t.Fatalf("shell: %v", err)
	}

	rec, _ := svc.Day(ctx, 0)
	food := rec.Lists["food"]
	if food == nil || len(food.Items) != 1 || food.Items[0].Text != "Soup #lunch" || food.Items[0].Done {
		t.Fatalf("expected one literal unchecked bullet, got %+v", food)
	}
	if _, ok := rec.Lists["notes"]; ok {
		t.Fatal("expected notes kept off the day")
	}
	notes, _ := svc.Notes(ctx)
	if len(notes) != 1 || notes[0].Text != "Call dad" {
		t.Fatalf("expected one edited note, got %+v", notes)
	}
}
