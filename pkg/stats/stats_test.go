package stats

import (
	"testing"

	"tableflip.dev/tempo/pkg/segment"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

func TestEmptySetReportsZeroes(t *testing.T) {
	got := For(nil, nil, timeutil.NewDay(2024, 6, 3))
	if got.TotalMinutes != 0 || got.SessionCount != 0 || got.CompletedCount != 0 {
		t.Fatalf("expected all-zero summary, got %+v", got)
	}
}

func TestDaySummary(t *testing.T) {
	day := timeutil.NewDay(2024, 6, 3)
	tasks := map[string]*task.Task{
		"t-1": {ID: "t-1", Title: "a", Completed: true},
		"t-2": {ID: "t-2", Title: "b"},
	}
	set := segment.Set{
		segment.New("t-1", day, 0, 60),
		segment.New("t-2", day, 60, 30),
		segment.New("t-2", day.AddDays(1), 0, 45),
	}

	got := For(set, tasks, day)
	if got.TotalMinutes != 90 {
		t.Fatalf("expected 90 minutes, got %d", got.TotalMinutes)
	}
	if got.SessionCount != 2 {
		t.Fatalf("expected 2 sessions, got %d", got.SessionCount)
	}
	if got.CompletedCount != 1 {
		t.Fatalf("expected 1 completed session, got %d", got.CompletedCount)
	}
}

func TestRangeSummaryNormalizesBounds(t *testing.T) {
	day := timeutil.NewDay(2024, 6, 3)
	set := segment.Set{
		segment.New("t-1", day, 0, 60),
		segment.New("t-1", day.AddDays(2), 0, 30),
		segment.New("t-1", day.AddDays(9), 0, 15),
	}

	got := ForRange(set, nil, day.AddDays(6), day)
	if got.TotalMinutes != 90 || got.SessionCount != 2 {
		t.Fatalf("expected 90 minutes over 2 sessions, got %+v", got)
	}
}
