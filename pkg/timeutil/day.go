package timeutil

import (
	"encoding/json"
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// Day is a calendar date with no time-of-day component. Days are normalized
// to midnight UTC internally so arithmetic and comparison are exact; the
// planner assumes a single local-time frame.
type Day struct {
	t time.Time
}

// NewDay builds the day for the given calendar components.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a time to its calendar day.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return NewDay(y, m, d)
}

// Today returns the current calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses an ISO date, for example "2020-02-28".
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

func (d Day) IsZero() bool      { return d.t.IsZero() }
func (d Day) Before(o Day) bool { return d.t.Before(o.t) }
func (d Day) After(o Day) bool  { return d.t.After(o.t) }
func (d Day) Equal(o Day) bool  { return d.t.Equal(o.t) }

// AddDays returns the day n days after d; n may be negative.
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// Weekday reports the day of the week.
func (d Day) Weekday() time.Weekday {
	return d.t.Weekday()
}

func (d Day) String() string {
	return d.t.Format(layoutISO)
}

// DaysBetween returns the count of whole days from a to b, negative when b
// precedes a.
func DaysBetween(a, b Day) int {
	return int(b.t.Sub(a.t) / (24 * time.Hour))
}

// Span returns n consecutive days starting at from.
func Span(from Day, n int) []Day {
	if n <= 0 {
		return nil
	}
	days := make([]Day, n)
	for i := range days {
		days[i] = from.AddDays(i)
	}
	return days
}

// StartOfWeek returns the Monday on or before d.
func StartOfWeek(d Day) Day {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", d)), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
