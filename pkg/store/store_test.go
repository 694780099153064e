package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func load(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestSetGetRoundTrip(t *testing.T) {
	p := load(t)

	type blob struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := p.Set("tasks", blob{Name: "report", Count: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got blob
	ok, err := p.Get("tasks", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected key to exist")
	}
	if got.Name != "report" || got.Count != 3 {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestGetAbsentKey(t *testing.T) {
	p := load(t)

	var got map[string]string
	ok, err := p.Get("missing", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected absent key")
	}
}

func TestRemoveAndKeys(t *testing.T) {
	p := load(t)
	ctx := context.Background()

	if err := p.Set("tasks", []string{"a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Set("segments", []string{"b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keys := p.Keys(ctx)
	if len(keys) != 2 || keys[0] != "segments" || keys[1] != "tasks" {
		t.Fatalf("unexpected keys: %v", keys)
	}

	if err := p.Remove("tasks"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if keys := p.Keys(ctx); len(keys) != 1 || keys[0] != "segments" {
		t.Fatalf("unexpected keys after remove: %v", keys)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := load(t)
	dst := load(t)
	ctx := context.Background()

	if err := src.Set("tasks", []string{"a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := src.Set("config", map[string]string{"strategy": "even"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A key absent from the export payload must survive the import.
	if err := dst.Set("capacity", map[string]int{"defaultMinutes": 300}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exported, err := src.Export(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := dst.Import(exported); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var tasks []string
	if ok, err := dst.Get("tasks", &tasks); err != nil || !ok {
		t.Fatalf("expected imported tasks, ok=%v err=%v", ok, err)
	}
	if len(tasks) != 2 || tasks[0] != "a" {
		t.Fatalf("unexpected tasks: %v", tasks)
	}

	var caps map[string]int
	if ok, err := dst.Get("capacity", &caps); err != nil || !ok {
		t.Fatalf("expected untouched capacity key, ok=%v err=%v", ok, err)
	}
	if caps["defaultMinutes"] != 300 {
		t.Fatalf("unexpected capacity: %v", caps)
	}
}

func TestImportRejectsInvalidJSON(t *testing.T) {
	p := load(t)
	if err := p.Import(map[string]json.RawMessage{"tasks": json.RawMessage("{not json")}); err == nil {
		t.Fatalf("expected error for invalid JSON payload")
	}
}

func TestWatchEmitsKeyChange(t *testing.T) {
	p := load(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Set("tasks", []string{"a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Type == EventKeyChanged && ev.Key != "tasks" {
			t.Fatalf("unexpected key: %q", ev.Key)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a change event")
	}
}
