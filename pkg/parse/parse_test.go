package parse

import (
	"reflect"
	"testing"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		tags    bool
		kind    Kind
		text    string
		folders []string
	}{
		{name: "plain", in: "Buy milk", tags: true, kind: KindAdd, text: "Buy milk", folders: []string{""}},
		{name: "tagged", in: "Buy milk #Shopping", tags: true, kind: KindAdd, text: "Buy milk", folders: []string{"shopping"}},
		{name: "multi tag", in: "Call #home #work #Home", tags: true, kind: KindAdd, text: "Call", folders: []string{"home", "work"}},
		{name: "tag with spaces", in: "Plan #deep work", tags: true, kind: KindAdd, text: "Plan", folders: []string{"deep-work"}},
		{name: "folder only", in: "#errands", tags: true, kind: KindCreateFolder, folders: []string{"errands"}},
		{name: "delete", in: "-errands", tags: true, kind: KindDeleteFolder, folders: []string{"errands"}},
		{name: "delete hash", in: "- #Deep Work", tags: true, kind: KindDeleteFolder, folders: []string{"deep-work"}},
		{name: "delete unfiled", in: "-unfiled", tags: true, kind: KindDeleteFolder, folders: []string{""}},
		{name: "empty delete target", in: "- --", tags: true, kind: KindNone},
		{name: "bare dash", in: "-", tags: true, kind: KindNone},
		{name: "dash hash", in: "-#", tags: true, kind: KindNone},
		{name: "dash space hash", in: " - # ", tags: true, kind: KindNone},
		{name: "blank", in: "   ", tags: true, kind: KindNone},
		{name: "tags disabled", in: "Gym #health", tags: false, kind: KindAdd, text: "Gym #health", folders: []string{""}},
		{name: "tags disabled dash", in: "-stretch", tags: false, kind: KindAdd, text: "-stretch", folders: []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Line(tt.in, tt.tags)
			if got.Kind != tt.kind {
				t.Fatalf("expected kind %q, got %q", tt.kind, got.Kind)
			}
			if got.Text != tt.text {
				t.Fatalf("expected text %q, got %q", tt.text, got.Text)
			}
			if tt.folders != nil && !reflect.DeepEqual(got.Folders, tt.folders) {
				t.Fatalf("expected folders %v, got %v", tt.folders, got.Folders)
			}
		})
	}
}

func TestBatchPropagatesLastLineTags(t *testing.T) {
	intents := Batch("milk, eggs, bread #shopping", true)
	if len(intents) != 3 {
		t.Fatalf("expected 3 intents, got %d", len(intents))
	}
	want := []string{"milk", "eggs", "bread"}
	for i, in := range intents {
		if in.Kind != KindAdd {
			t.Fatalf("intent %d: expected add, got %q", i, in.Kind)
		}
		if in.Text != want[i] {
			t.Fatalf("intent %d: expected %q, got %q", i, want[i], in.Text)
		}
		if !reflect.DeepEqual(in.Folders, []string{"shopping"}) {
			t.Fatalf("intent %d: expected shopping tag, got %v", i, in.Folders)
		}
	}
}

func TestBatchNoPropagationWhenOtherLinesTagged(t *testing.T) {
	intents := Batch("milk #dairy\neggs\nbread #shopping", true)
	if len(intents) != 3 {
		t.Fatalf("expected 3 intents, got %d", len(intents))
	}
	if !reflect.DeepEqual(intents[1].Folders, []string{""}) {
		t.Fatalf("expected eggs to stay unfiled, got %v", intents[1].Folders)
	}
}

func TestBatchDropsEmptyDeleteTargets(t *testing.T) {
	intents := Batch("milk #dairy; -; - #", true)
	if len(intents) != 1 || intents[0].Text != "milk" {
		t.Fatalf("expected only milk, got %+v", intents)
	}
}

func TestBatchSkipsDeleteCommands(t *testing.T) {
	intents := Batch("milk; -old; eggs #shopping; -stale", true)
	if len(intents) != 4 {
		t.Fatalf("expected 4 intents, got %d", len(intents))
	}
	if intents[0].Folders[0] != "shopping" {
		t.Fatalf("expected milk to pick up shopping, got %v", intents[0].Folders)
	}
	if intents[1].Kind != KindDeleteFolder || intents[1].Folders[0] != "old" {
		t.Fatalf("expected delete of old untouched, got %+v", intents[1])
	}
	if intents[3].Kind != KindDeleteFolder || intents[3].Folders[0] != "stale" {
		t.Fatalf("expected delete of stale untouched, got %+v", intents[3])
	}
}

func TestBatchTagsDisabled(t *testing.T) {
	intents := Batch("Gym, Read #books", false)
	if len(intents) != 2 {
		t.Fatalf("expected 2 intents, got %d", len(intents))
	}
	if intents[0].Folders[0] != "" || intents[1].Text != "Read #books" {
		t.Fatalf("unexpected intents %+v", intents)
	}
}

func TestSplit(t *testing.T) {
	got := Split(" a ,,b\n\n c;d ")
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
