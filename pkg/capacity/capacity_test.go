package capacity

import (
	"testing"

	"tableflip.dev/tempo/pkg/timeutil"
)

func TestFreeRangesMergesOccupied(t *testing.T) {
	dc := DayCapacity{
		Date:         timeutil.NewDay(2024, 6, 3),
		TotalMinutes: 480,
		OccupiedRanges: []Range{
			{Start: 120, End: 180},
			{Start: 150, End: 200}, // overlaps previous
			{Start: 400, End: 600}, // exceeds the window
		},
	}

	free := dc.FreeRanges()
	want := []Range{{Start: 0, End: 120}, {Start: 200, End: 400}}
	if len(free) != len(want) {
		t.Fatalf("expected %d free ranges, got %d: %v", len(want), len(free), free)
	}
	for i := range want {
		if free[i] != want[i] {
			t.Fatalf("range %d: expected %v, got %v", i, want[i], free[i])
		}
	}
}

func TestFreeMinutesClampsToZero(t *testing.T) {
	dc := DayCapacity{Date: timeutil.NewDay(2024, 6, 3), TotalMinutes: 60}

	if got := FreeMinutes(dc, 0); got != 60 {
		t.Fatalf("expected 60 free minutes, got %d", got)
	}
	if got := FreeMinutes(dc, 45); got != 15 {
		t.Fatalf("expected 15 free minutes, got %d", got)
	}
	if got := FreeMinutes(dc, 500); got != 0 {
		t.Fatalf("over-allocation must clamp to zero, got %d", got)
	}
}

func TestZeroCapacityDay(t *testing.T) {
	dc := DayCapacity{Date: timeutil.NewDay(2024, 6, 3), TotalMinutes: 0}
	if ranges := dc.FreeRanges(); len(ranges) != 0 {
		t.Fatalf("expected no free ranges, got %v", ranges)
	}
	if got := FreeMinutes(dc, 0); got != 0 {
		t.Fatalf("expected zero free minutes, got %d", got)
	}
}

func TestCalendarOverrides(t *testing.T) {
	cal := NewCalendar()
	day := timeutil.NewDay(2024, 6, 3)

	if got := cal.ForDate(day).TotalMinutes; got != DefaultDayMinutes {
		t.Fatalf("expected default %d minutes, got %d", DefaultDayMinutes, got)
	}

	cal.SetTotal(day, 240)
	if got := cal.ForDate(day).TotalMinutes; got != 240 {
		t.Fatalf("expected override 240, got %d", got)
	}

	if err := cal.Block(day, Range{Start: 0, End: 60}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FreeMinutes(cal.ForDate(day), 0); got != 180 {
		t.Fatalf("expected 180 free minutes after block, got %d", got)
	}

	if err := cal.Block(day, Range{Start: 90, End: 30}); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	// Blocking an un-overridden day materializes it with the default total.
	other := day.AddDays(1)
	if err := cal.Block(other, Range{Start: 0, End: 120}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FreeMinutes(cal.ForDate(other), 0); got != DefaultDayMinutes-120 {
		t.Fatalf("expected %d free minutes, got %d", DefaultDayMinutes-120, got)
	}
}
