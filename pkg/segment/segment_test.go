package segment

import (
	"testing"

	"tableflip.dev/tempo/pkg/timeutil"
)

func TestStableIdentity(t *testing.T) {
	day := timeutil.NewDay(2024, 6, 3)

	a := New("t-1", day, 0, 60)
	b := New("t-1", day, 0, 60)
	if a.ID != b.ID {
		t.Fatalf("identical pairings must share an id: %s vs %s", a.ID, b.ID)
	}

	c := New("t-1", day, 60, 60)
	if a.ID == c.ID {
		t.Fatalf("different offsets must not share an id")
	}
	d := New("t-1", day.AddDays(1), 0, 60)
	if a.ID == d.ID {
		t.Fatalf("different days must not share an id")
	}
}

func TestOverlaps(t *testing.T) {
	day := timeutil.NewDay(2024, 6, 3)

	a := New("t-1", day, 0, 60)
	b := New("t-2", day, 60, 30)
	if a.Overlaps(b) {
		t.Fatalf("adjacent segments do not overlap")
	}

	c := New("t-3", day, 59, 10)
	if !a.Overlaps(c) {
		t.Fatalf("expected overlap at minute 59")
	}

	other := New("t-4", day.AddDays(1), 0, 60)
	if a.Overlaps(other) {
		t.Fatalf("segments on different days never overlap")
	}
}

func TestSetQueries(t *testing.T) {
	day := timeutil.NewDay(2024, 6, 3)
	set := Set{
		New("t-1", day, 0, 60),
		New("t-2", day, 60, 30),
		New("t-1", day.AddDays(1), 0, 45),
	}

	if got := set.MinutesOn(day); got != 90 {
		t.Fatalf("expected 90 minutes on %s, got %d", day, got)
	}
	if got := set.TaskMinutes("t-1"); got != 105 {
		t.Fatalf("expected 105 task minutes, got %d", got)
	}
	if got := len(set.OnDate(day)); got != 2 {
		t.Fatalf("expected 2 segments on %s, got %d", day, got)
	}
	if got := len(set.WithoutTask("t-1")); got != 1 {
		t.Fatalf("expected 1 segment after removing t-1, got %d", got)
	}
	if got := len(set.Between(day, day.AddDays(1))); got != 3 {
		t.Fatalf("expected 3 segments in range, got %d", got)
	}
}

func TestSortIsDeterministic(t *testing.T) {
	day := timeutil.NewDay(2024, 6, 3)
	set := Set{
		New("t-2", day.AddDays(1), 0, 30),
		New("t-1", day, 60, 30),
		New("t-1", day, 0, 60),
	}
	set.Sort()

	if !set[0].Date.Equal(day) || set[0].StartMinute != 0 {
		t.Fatalf("expected earliest segment first, got %+v", set[0])
	}
	if !set[2].Date.Equal(day.AddDays(1)) {
		t.Fatalf("expected latest segment last, got %+v", set[2])
	}
}
