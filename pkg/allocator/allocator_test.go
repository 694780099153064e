package allocator

import (
	"reflect"
	"testing"
	"time"

	"tableflip.dev/tempo/pkg/capacity"
	"tableflip.dev/tempo/pkg/segment"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

var today = timeutil.NewDay(2024, 6, 3)

func newTask(id, title string, minutes int, deadline *timeutil.Day, created time.Time) *task.Task {
	return &task.Task{
		ID:               id,
		Title:            title,
		EstimatedMinutes: minutes,
		Deadline:         deadline,
		CreatedAt:        task.Timestamp{Time: created},
	}
}

func created(hour int) time.Time {
	return time.Date(2024, 6, 1, hour, 0, 0, 0, time.UTC)
}

func TestRecomputeEmptyTaskSet(t *testing.T) {
	res, err := Recompute(nil, nil, capacity.NewCalendar(), Config{Strategy: "even"}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Segments) != 0 {
		t.Fatalf("expected empty segment set, got %d", len(res.Segments))
	}
	if res.Report.Underallocated() {
		t.Fatalf("expected no residuals")
	}
	if len(res.Horizon) != timeutil.DefaultWindowDays {
		t.Fatalf("expected default %d-day horizon, got %d", timeutil.DefaultWindowDays, len(res.Horizon))
	}
}

func TestRecomputeUnknownStrategy(t *testing.T) {
	if _, err := Recompute(nil, nil, capacity.NewCalendar(), Config{Strategy: "chaotic"}, today); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestFrontloadSingleTaskLandsOnDayZero(t *testing.T) {
	deadline := today.AddDays(5)
	tasks := []*task.Task{newTask("t-1", "report", 90, &deadline, created(9))}

	res, err := Recompute(tasks, nil, capacity.NewCalendar(), Config{Strategy: "frontload"}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("expected a single segment, got %d", len(res.Segments))
	}
	s := res.Segments[0]
	if !s.Date.Equal(today) || s.StartMinute != 0 || s.DurationMinutes != 90 {
		t.Fatalf("expected 90 minutes at offset 0 today, got %+v", s)
	}
}

func TestEvenFourDayWindow(t *testing.T) {
	deadline := today.AddDays(3)
	tasks := []*task.Task{newTask("t-1", "study", 120, &deadline, created(9))}

	res, err := Recompute(tasks, nil, capacity.NewCalendar(), Config{Strategy: "even"}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Segments) != 4 {
		t.Fatalf("expected four segments, got %d", len(res.Segments))
	}
	for i, s := range res.Segments {
		if !s.Date.Equal(today.AddDays(i)) {
			t.Fatalf("segment %d: expected date %s, got %s", i, today.AddDays(i), s.Date)
		}
		if s.DurationMinutes != 30 || s.StartMinute != 0 {
			t.Fatalf("segment %d: expected 30 minutes at offset 0, got %+v", i, s)
		}
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	d1 := today.AddDays(2)
	d2 := today.AddDays(6)
	tasks := []*task.Task{
		newTask("t-1", "a", 300, &d1, created(9)),
		newTask("t-2", "b", 500, &d2, created(10)),
		newTask("t-3", "c", 120, nil, created(11)),
	}
	cal := capacity.NewCalendar()
	cal.SetTotal(today.AddDays(1), 120)
	cfg := Config{Strategy: "deadline-weighted"}

	first, err := Recompute(tasks, nil, cal, cfg, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Recompute(tasks, nil, cal, cfg, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Segments, second.Segments) {
		t.Fatalf("recompute is not idempotent:\nfirst:  %+v\nsecond: %+v", first.Segments, second.Segments)
	}
	if !reflect.DeepEqual(first.Report, second.Report) {
		t.Fatalf("reports differ across recomputes")
	}
}

func TestPastDeadlineFullyUnderallocated(t *testing.T) {
	past := today.AddDays(-3)
	tasks := []*task.Task{newTask("t-1", "late", 240, &past, created(9))}

	res, err := Recompute(tasks, nil, capacity.NewCalendar(), Config{Strategy: "frontload"}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Segments) != 0 {
		t.Fatalf("expected no segments for a past deadline, got %d", len(res.Segments))
	}
	if got := res.Report.MinutesFor("t-1"); got != 240 {
		t.Fatalf("expected 240 residual minutes, got %d", got)
	}
}

func TestZeroCapacityDaySkipped(t *testing.T) {
	tasks := []*task.Task{newTask("t-1", "work", 60, nil, created(9))}
	cal := capacity.NewCalendar()
	cal.SetTotal(today, 0)

	res, err := Recompute(tasks, nil, cal, Config{Strategy: "frontload"}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("expected one segment, got %d", len(res.Segments))
	}
	if !res.Segments[0].Date.Equal(today.AddDays(1)) {
		t.Fatalf("expected the zero-capacity day skipped, got %s", res.Segments[0].Date)
	}
}

func TestPackingRespectsOccupiedRanges(t *testing.T) {
	tasks := []*task.Task{newTask("t-1", "deep work", 240, nil, created(9))}
	cal := capacity.NewCalendar()
	cal.SetTotal(today, 480)
	if err := cal.Block(today, capacity.Range{Start: 60, End: 120}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := Recompute(tasks, nil, cal, Config{Strategy: "frontload"}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	onToday := res.Segments.OnDate(today)
	if len(onToday) != 2 {
		t.Fatalf("expected the request split around the block, got %d segments", len(onToday))
	}
	if onToday[0].StartMinute != 0 || onToday[0].DurationMinutes != 60 {
		t.Fatalf("expected 60 minutes before the block, got %+v", onToday[0])
	}
	if onToday[1].StartMinute != 120 || onToday[1].DurationMinutes != 180 {
		t.Fatalf("expected 180 minutes after the block, got %+v", onToday[1])
	}
}

func TestInvariantsAcrossStrategies(t *testing.T) {
	d1 := today.AddDays(1)
	d2 := today.AddDays(4)
	tasks := []*task.Task{
		newTask("t-1", "a", 700, &d1, created(9)),
		newTask("t-2", "b", 300, &d2, created(10)),
		newTask("t-3", "c", 950, nil, created(11)),
	}
	cal := capacity.NewCalendar()
	cal.SetTotal(today.AddDays(2), 60)
	if err := cal.Block(today, capacity.Range{Start: 0, End: 90}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"even", "frontload", "backload", "deadline-weighted"} {
		res, err := Recompute(tasks, nil, cal, Config{Strategy: name}, today)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}

		for _, s := range res.Segments {
			if s.DurationMinutes <= 0 {
				t.Fatalf("%s: zero-length segment %+v", name, s)
			}
			dc := cal.ForDate(s.Date)
			if s.EndMinute() > dc.TotalMinutes {
				t.Fatalf("%s: segment exceeds day window: %+v", name, s)
			}
		}

		for i, a := range res.Segments {
			for _, b := range res.Segments[i+1:] {
				if a.Overlaps(b) {
					t.Fatalf("%s: overlapping segments %+v and %+v", name, a, b)
				}
			}
		}

		for _, tk := range tasks {
			placed := res.Segments.TaskMinutes(tk.ID)
			if placed > tk.EstimatedMinutes {
				t.Fatalf("%s: task %s has %d minutes placed, estimate %d",
					name, tk.ID, placed, tk.EstimatedMinutes)
			}
			if placed+res.Report.MinutesFor(tk.ID) != tk.EstimatedMinutes {
				t.Fatalf("%s: task %s placed+residual != estimate", name, tk.ID)
			}
		}
	}
}

func TestRetainedSegmentsArePreservedAndOccupyCapacity(t *testing.T) {
	retained := segment.Set{segment.New("t-done", today, 0, 480)}
	tasks := []*task.Task{newTask("t-1", "next", 60, nil, created(9))}

	res, err := Recompute(tasks, retained, capacity.NewCalendar(), Config{Strategy: "frontload"}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := res.Segments.Find(retained[0].ID); !ok {
		t.Fatalf("expected retained segment carried into the result")
	}
	fresh := res.Segments.ForTask("t-1")
	if len(fresh) != 1 || !fresh[0].Date.Equal(today.AddDays(1)) {
		t.Fatalf("expected new work pushed past the retained history, got %+v", fresh)
	}
}

func TestHorizonExtendsToFarthestDeadline(t *testing.T) {
	far := today.AddDays(30)
	tasks := []*task.Task{newTask("t-1", "slow burn", 60, &far, created(9))}

	res, err := Recompute(tasks, nil, capacity.NewCalendar(), Config{Strategy: "backload"}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Horizon) != 31 {
		t.Fatalf("expected 31-day horizon, got %d", len(res.Horizon))
	}
	if len(res.Segments) != 1 || !res.Segments[0].Date.Equal(far) {
		t.Fatalf("expected backload onto the deadline day, got %+v", res.Segments)
	}
}
