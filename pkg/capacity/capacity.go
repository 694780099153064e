// Package capacity models how many schedulable minutes each calendar day
// offers, and which ranges of the day are already spoken for.
package capacity

import (
	"errors"
	"sort"

	"tableflip.dev/tempo/pkg/timeutil"
)

// DefaultDayMinutes is the schedulable time per day when no override exists.
const DefaultDayMinutes = 480

// ErrInvalidRange is returned for empty or inverted minute ranges.
var ErrInvalidRange = errors.New("capacity: invalid minute range")

// Range is a half-open block of minutes [Start, End) within a day's window.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Minutes returns the length of the range.
func (r Range) Minutes() int {
	return r.End - r.Start
}

func (r Range) valid() bool {
	return r.Start >= 0 && r.End > r.Start
}

// DayCapacity describes one day's schedulable window.
type DayCapacity struct {
	Date           timeutil.Day `json:"date"`
	TotalMinutes   int          `json:"totalMinutes"`
	OccupiedRanges []Range      `json:"occupiedRanges,omitempty"`
}

// FreeRanges returns the gaps of the day not covered by occupied ranges,
// sorted ascending. Occupied ranges may overlap or exceed the window; they
// are merged and clamped first.
func (dc DayCapacity) FreeRanges() []Range {
	if dc.TotalMinutes <= 0 {
		return nil
	}

	occupied := mergeRanges(dc.OccupiedRanges, dc.TotalMinutes)

	var free []Range
	cursor := 0
	for _, r := range occupied {
		if r.Start > cursor {
			free = append(free, Range{Start: cursor, End: r.Start})
		}
		if r.End > cursor {
			cursor = r.End
		}
	}
	if cursor < dc.TotalMinutes {
		free = append(free, Range{Start: cursor, End: dc.TotalMinutes})
	}
	return free
}

// FreeMinutes computes the schedulable minutes left on the day after the
// occupied ranges and allocatedMinutes of existing segments are taken out.
// Never negative; an over-allocated day clamps to zero.
func FreeMinutes(dc DayCapacity, allocatedMinutes int) int {
	free := 0
	for _, r := range dc.FreeRanges() {
		free += r.Minutes()
	}
	free -= allocatedMinutes
	if free < 0 {
		return 0
	}
	return free
}

// mergeRanges sorts, clamps to [0, total), and merges overlapping or
// touching ranges.
func mergeRanges(ranges []Range, total int) []Range {
	clamped := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if !r.valid() {
			continue
		}
		if r.Start >= total {
			continue
		}
		if r.End > total {
			r.End = total
		}
		clamped = append(clamped, r)
	}
	sort.Slice(clamped, func(i, j int) bool {
		if clamped[i].Start != clamped[j].Start {
			return clamped[i].Start < clamped[j].Start
		}
		return clamped[i].End < clamped[j].End
	})

	var merged []Range
	for _, r := range clamped {
		if len(merged) > 0 && r.Start <= merged[len(merged)-1].End {
			if r.End > merged[len(merged)-1].End {
				merged[len(merged)-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Calendar holds per-day capacity overrides on top of a default.
type Calendar struct {
	DefaultMinutes int           `json:"defaultMinutes"`
	Days           []DayCapacity `json:"days,omitempty"`
}

// NewCalendar returns a calendar with the default daily availability.
func NewCalendar() Calendar {
	return Calendar{DefaultMinutes: DefaultDayMinutes}
}

// Clone deep-copies the calendar so callers can mutate one copy without
// touching the other.
func (c Calendar) Clone() Calendar {
	cp := Calendar{DefaultMinutes: c.DefaultMinutes}
	if c.Days != nil {
		cp.Days = make([]DayCapacity, len(c.Days))
		for i, dc := range c.Days {
			dc.OccupiedRanges = append([]Range(nil), dc.OccupiedRanges...)
			cp.Days[i] = dc
		}
	}
	return cp
}

// ForDate resolves the capacity for a day, falling back to the default.
func (c Calendar) ForDate(d timeutil.Day) DayCapacity {
	for _, dc := range c.Days {
		if dc.Date.Equal(d) {
			return dc
		}
	}
	total := c.DefaultMinutes
	if total <= 0 {
		total = DefaultDayMinutes
	}
	return DayCapacity{Date: d, TotalMinutes: total}
}

// SetTotal overrides the total schedulable minutes for a day.
func (c *Calendar) SetTotal(d timeutil.Day, minutes int) {
	for i := range c.Days {
		if c.Days[i].Date.Equal(d) {
			c.Days[i].TotalMinutes = minutes
			return
		}
	}
	c.Days = append(c.Days, DayCapacity{Date: d, TotalMinutes: minutes})
}

// Block reserves a fixed occupied range on a day, for pre-existing non-task
// commitments.
func (c *Calendar) Block(d timeutil.Day, r Range) error {
	if !r.valid() {
		return ErrInvalidRange
	}
	for i := range c.Days {
		if c.Days[i].Date.Equal(d) {
			c.Days[i].OccupiedRanges = append(c.Days[i].OccupiedRanges, r)
			return nil
		}
	}
	dc := c.ForDate(d)
	dc.OccupiedRanges = append(dc.OccupiedRanges, r)
	c.Days = append(c.Days, dc)
	return nil
}
