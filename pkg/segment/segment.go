// Package segment defines the time segments the allocator produces.
package segment

import (
	"crypto/md5"
	"fmt"
	"sort"

	"tableflip.dev/tempo/pkg/timeutil"
)

// Segment is a contiguous block of time assigned to one task on one day.
type Segment struct {
	ID              string       `json:"id"`
	TaskID          string       `json:"taskId"`
	Date            timeutil.Day `json:"date"`
	StartMinute     int          `json:"startMinute"`
	DurationMinutes int          `json:"durationMinutes"`
}

// New builds a segment with its identity derived from the task/day/offset
// pairing, so an unchanged pairing keeps the same id across recomputes.
func New(taskID string, date timeutil.Day, startMinute, durationMinutes int) Segment {
	s := Segment{
		TaskID:          taskID,
		Date:            date,
		StartMinute:     startMinute,
		DurationMinutes: durationMinutes,
	}
	s.ID = deriveID(s)
	return s
}

// EndMinute is the exclusive end offset within the day.
func (s Segment) EndMinute() int {
	return s.StartMinute + s.DurationMinutes
}

// Overlaps reports whether two segments on the same date share any minute.
func (s Segment) Overlaps(o Segment) bool {
	if !s.Date.Equal(o.Date) {
		return false
	}
	return s.StartMinute < o.EndMinute() && o.StartMinute < s.EndMinute()
}

func deriveID(s Segment) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s|%s|%d|%d", s.TaskID, s.Date, s.StartMinute, s.DurationMinutes)))
	return fmt.Sprintf("%x", sum[:8])
}

// Set is an ordered collection of segments.
type Set []Segment

// Sort orders the set by date, then start offset, then task id.
func (set Set) Sort() {
	sort.SliceStable(set, func(i, j int) bool {
		if !set[i].Date.Equal(set[j].Date) {
			return set[i].Date.Before(set[j].Date)
		}
		if set[i].StartMinute != set[j].StartMinute {
			return set[i].StartMinute < set[j].StartMinute
		}
		return set[i].TaskID < set[j].TaskID
	})
}

// OnDate returns the segments scheduled for the given day.
func (set Set) OnDate(d timeutil.Day) Set {
	var out Set
	for _, s := range set {
		if s.Date.Equal(d) {
			out = append(out, s)
		}
	}
	return out
}

// Between returns the segments scheduled in [from, to] inclusive.
func (set Set) Between(from, to timeutil.Day) Set {
	var out Set
	for _, s := range set {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ForTask returns the segments owned by the given task.
func (set Set) ForTask(taskID string) Set {
	var out Set
	for _, s := range set {
		if s.TaskID == taskID {
			out = append(out, s)
		}
	}
	return out
}

// WithoutTask returns the set minus any segments owned by the given task.
func (set Set) WithoutTask(taskID string) Set {
	out := make(Set, 0, len(set))
	for _, s := range set {
		if s.TaskID != taskID {
			out = append(out, s)
		}
	}
	return out
}

// MinutesOn sums segment durations on the given day.
func (set Set) MinutesOn(d timeutil.Day) int {
	total := 0
	for _, s := range set {
		if s.Date.Equal(d) {
			total += s.DurationMinutes
		}
	}
	return total
}

// TaskMinutes sums segment durations owned by the given task.
func (set Set) TaskMinutes(taskID string) int {
	total := 0
	for _, s := range set {
		if s.TaskID == taskID {
			total += s.DurationMinutes
		}
	}
	return total
}

// Find returns the segment with the given id, if present.
func (set Set) Find(id string) (Segment, bool) {
	for _, s := range set {
		if s.ID == id {
			return s, true
		}
	}
	return Segment{}, false
}
