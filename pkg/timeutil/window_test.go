package timeutil

import (
	"testing"
)

func TestParseWindowDefault(t *testing.T) {
	days, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 14 {
		t.Fatalf("expected 14 days, got %d", days)
	}
	if label != "2w" {
		t.Fatalf("expected label 2w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	days, label, err := ParseWindow("1w3d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 10 {
		t.Fatalf("expected 10 days, got %d", days)
	}
	if label != "1w3d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	if _, _, err := ParseWindow("noop"); err == nil {
		t.Fatalf("expected error for invalid window")
	}
	if _, _, err := ParseWindow("3h"); err == nil {
		t.Fatalf("expected error for sub-day unit")
	}
}

func TestDayArithmetic(t *testing.T) {
	d := NewDay(2020, 2, 28)
	if got := d.AddDays(2).String(); got != "2020-03-01" {
		t.Fatalf("expected leap-year rollover to 2020-03-01, got %s", got)
	}
	if got := DaysBetween(d, d.AddDays(10)); got != 10 {
		t.Fatalf("expected 10 days between, got %d", got)
	}
	if got := DaysBetween(d.AddDays(3), d); got != -3 {
		t.Fatalf("expected -3 days between, got %d", got)
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2020-02-28 was a Friday.
	d := NewDay(2020, 2, 28)
	if got := StartOfWeek(d).String(); got != "2020-02-24" {
		t.Fatalf("expected Monday 2020-02-24, got %s", got)
	}
	monday := NewDay(2020, 2, 24)
	if !StartOfWeek(monday).Equal(monday) {
		t.Fatalf("expected Monday to be its own week start")
	}
}

func TestDayJSONRoundTrip(t *testing.T) {
	d := NewDay(2021, 7, 4)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Day
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("expected %s, got %s", d, back)
	}
}
