// Package task defines the planner's task model and input validation.
package task

import (
	"errors"
	"sort"
	"strings"

	"tableflip.dev/tempo/pkg/timeutil"
)

var (
	// ErrEmptyTitle is returned when a task title is empty or whitespace.
	ErrEmptyTitle = errors.New("task: title required")

	// ErrNonPositiveEstimate is returned when the estimated minutes are
	// zero or negative.
	ErrNonPositiveEstimate = errors.New("task: estimated minutes must be positive")
)

// Task is a unit of work to distribute across the horizon.
type Task struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	EstimatedMinutes int           `json:"estimatedMinutes"`
	Deadline         *timeutil.Day `json:"deadline,omitempty"`
	Completed        bool          `json:"completed,omitempty"`
	CreatedAt        Timestamp     `json:"createdAt"`
}

// New builds an unsaved task. The caller assigns the ID.
func New(title string, estimatedMinutes int, deadline *timeutil.Day) *Task {
	return &Task{
		Title:            strings.TrimSpace(title),
		EstimatedMinutes: estimatedMinutes,
		Deadline:         deadline,
	}
}

// Validate rejects tasks that must not reach the allocator.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.EstimatedMinutes <= 0 {
		return ErrNonPositiveEstimate
	}
	return nil
}

// Complete marks the task done. Completed tasks stop receiving segments but
// keep their history.
func (t *Task) Complete() {
	t.Completed = true
}

// Eligible reports whether the task should be considered for allocation.
func (t *Task) Eligible() bool {
	return !t.Completed && t.EstimatedMinutes > 0
}

// SortByCreated orders tasks by creation time ascending, with the ID as the
// tiebreaker so allocation input is deterministic.
func SortByCreated(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		left := tasks[i]
		right := tasks[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.CreatedAt.Time
		rt := right.CreatedAt.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}

// Index maps tasks by ID for read-side lookups.
func Index(tasks []*Task) map[string]*Task {
	byID := make(map[string]*Task, len(tasks))
	for _, t := range tasks {
		if t != nil {
			byID[t.ID] = t
		}
	}
	return byID
}

// DueBefore reports whether the task's deadline falls strictly before day.
// Tasks without a deadline are never due.
func (t *Task) DueBefore(day timeutil.Day) bool {
	return t.Deadline != nil && t.Deadline.Before(day)
}
