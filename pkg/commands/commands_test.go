package commands

import (
	"context"
	"path/filepath"
	"testing"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/store"
)

func TestNewRegistersCommands(t *testing.T) {
	cmd := New()
	for _, name := range []string{
		"add", "get", "check", "uncheck", "move", "edit", "rm", "folder", "collapse",
		"clear", "smoke", "template", "reconcile", "tick", "endday", "export",
		"import", "report", "shell", "watch", "info", "version", "completion",
	} {
		if c, _, err := cmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("expected command %q to be registered", name)
		}
	}
}

func TestAddAndCheckThroughCLI(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "db")
	t.Setenv("PLANNER_CONFIG_PATH", dir)
	t.Setenv("PLANNER_PATH", base)
	t.Setenv("PLANNER_BACKEND", store.BackendDiskv)

	for _, args := range [][]string{
		{"add", "work", "Email Bob, Write report #docs"},
		{"check", "work", "0"},
	} {
		cmd := New()
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	p, err := store.Load(store.StaticConfig{Path: base, Kind: store.BackendDiskv})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	defer p.Close()
	svc := &app.Service{Persistence: p}
	rec, err := svc.Day(context.Background(), 0)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	items := rec.Lists["work"].Items
	if len(items) != 2 || !items[0].Done {
		t.Fatalf("expected two items with the first done, got %+v", items)
	}
}

func TestBadIndexIsReported(t *testing.T) {
	t.Setenv("PLANNER_CONFIG_PATH", t.TempDir())
	cmd := New()
	cmd.SetArgs([]string{"check", "work", "first"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a non-numeric index")
	}
}
