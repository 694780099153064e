// Package stats derives read-only summaries from the current segment set.
package stats

import (
	"tableflip.dev/tempo/pkg/segment"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Summary is the aggregate view of a day's (or range's) segments.
type Summary struct {
	TotalMinutes   int `json:"totalMinutes"`
	SessionCount   int `json:"sessionCount"`
	CompletedCount int `json:"completedCount"`
}

// For summarizes the segments on a single day.
func For(set segment.Set, tasks map[string]*task.Task, date timeutil.Day) Summary {
	return summarize(set.OnDate(date), tasks)
}

// ForRange summarizes the segments in [from, to] inclusive.
func ForRange(set segment.Set, tasks map[string]*task.Task, from, to timeutil.Day) Summary {
	if to.Before(from) {
		from, to = to, from
	}
	return summarize(set.Between(from, to), tasks)
}

func summarize(set segment.Set, tasks map[string]*task.Task) Summary {
	var s Summary
	for _, seg := range set {
		s.TotalMinutes += seg.DurationMinutes
		s.SessionCount++
		if t, ok := tasks[seg.TaskID]; ok && t.Completed {
			s.CompletedCount++
		}
	}
	return s
}
