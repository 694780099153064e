// Package allocator turns tasks, day capacities, and a distribution
// strategy into the full replacement segment set for the horizon.
package allocator

import (
	"fmt"

	"tableflip.dev/tempo/pkg/capacity"
	"tableflip.dev/tempo/pkg/segment"
	"tableflip.dev/tempo/pkg/strategy"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Config selects the strategy and the default lookahead for a recompute.
type Config struct {
	Strategy      string `json:"strategy"`
	LookaheadDays int    `json:"lookaheadDays,omitempty"`
}

// Residual reports minutes of one task that could not be placed before its
// deadline. A residual is a warning, never an error.
type Residual struct {
	TaskID  string `json:"taskId"`
	Minutes int    `json:"minutes"`
}

// Report carries the non-fatal outcome of a recompute.
type Report struct {
	Residuals []Residual `json:"residuals,omitempty"`
}

// Underallocated reports whether any task has unplaced minutes.
func (r Report) Underallocated() bool {
	return len(r.Residuals) > 0
}

// MinutesFor returns the residual minutes for a task, zero when fully placed.
func (r Report) MinutesFor(taskID string) int {
	for _, res := range r.Residuals {
		if res.TaskID == taskID {
			return res.Minutes
		}
	}
	return 0
}

// Result is the replacement segment set plus its allocation report.
type Result struct {
	Segments segment.Set
	Report   Report
	Horizon  []timeutil.Day
}

// Recompute runs the allocation pipeline: filter eligible tasks, compute the
// horizon, consult the strategy for per-task per-day minutes, then pack each
// day's requests into non-overlapping segments. Identical inputs produce an
// identical result, so recomputing is idempotent and unchanged task/day
// pairings keep their segment ids.
//
// retained segments (history of completed tasks) are carried into the result
// untouched; the minutes they occupy are subtracted from day capacity.
func Recompute(tasks []*task.Task, retained segment.Set, cal capacity.Calendar, cfg Config, today timeutil.Day) (Result, error) {
	strat, err := strategy.ForName(cfg.Strategy)
	if err != nil {
		return Result{}, fmt.Errorf("allocator: %w", err)
	}

	eligible := eligibleTasks(tasks)
	days := horizonDays(eligible, cfg, today)

	dcs := make([]capacity.DayCapacity, len(days))
	free := make([]int, len(days))
	for i, day := range days {
		dc := cal.ForDate(day)
		// History on the day behaves like any other fixed commitment.
		for _, s := range retained.OnDate(day) {
			dc.OccupiedRanges = append(dc.OccupiedRanges, capacity.Range{Start: s.StartMinute, End: s.EndMinute()})
		}
		dcs[i] = dc
		free[i] = capacity.FreeMinutes(dc, 0)
	}

	demands := make([]strategy.Demand, 0, len(eligible))
	for _, t := range eligible {
		demands = append(demands, demandFor(t, today, len(days)))
	}

	allocs := strat.Distribute(demands, free)

	out := make(segment.Set, 0, len(retained)+len(allocs))
	out = append(out, retained...)
	leftovers := make(map[string]int)
	for i, day := range days {
		out = append(out, packDay(day, dcs[i], allocs, i, leftovers)...)
	}
	out.Sort()

	return Result{
		Segments: out,
		Report:   buildReport(demands, allocs, leftovers),
		Horizon:  days,
	}, nil
}

func eligibleTasks(tasks []*task.Task) []*task.Task {
	eligible := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil && t.Eligible() {
			eligible = append(eligible, t)
		}
	}
	task.SortByCreated(eligible)
	return eligible
}

// horizonDays spans today through the later of the farthest deadline or the
// default lookahead window.
func horizonDays(eligible []*task.Task, cfg Config, today timeutil.Day) []timeutil.Day {
	lookahead := cfg.LookaheadDays
	if lookahead <= 0 {
		lookahead = timeutil.DefaultWindowDays
	}
	end := today.AddDays(lookahead - 1)
	for _, t := range eligible {
		if t.Deadline != nil && t.Deadline.After(end) {
			end = *t.Deadline
		}
	}
	return timeutil.Span(today, timeutil.DaysBetween(today, end)+1)
}

func demandFor(t *task.Task, today timeutil.Day, horizon int) strategy.Demand {
	last := horizon - 1
	if t.Deadline != nil {
		last = timeutil.DaysBetween(today, *t.Deadline)
		if last > horizon-1 {
			last = horizon - 1
		}
		if last < -1 {
			last = -1
		}
	}
	return strategy.Demand{
		TaskID:   t.ID,
		Minutes:  t.EstimatedMinutes,
		LastDay:  last,
		Deadline: t.Deadline,
		Created:  t.CreatedAt.Time,
	}
}

// packDay lays the day's requested minutes into the free gaps sequentially,
// in the strategy's processing order. A request larger than its gap splits
// across gaps; minutes with no gap left become leftovers.
func packDay(day timeutil.Day, dc capacity.DayCapacity, allocs []strategy.Allocation, dayIdx int, leftovers map[string]int) segment.Set {
	gaps := dc.FreeRanges()
	if len(gaps) == 0 {
		for _, a := range allocs {
			if m := a.PerDay[dayIdx]; m > 0 {
				leftovers[a.TaskID] += m
			}
		}
		return nil
	}

	var segs segment.Set
	gapIdx := 0
	offset := gaps[0].Start
	for _, a := range allocs {
		m := a.PerDay[dayIdx]
		for m > 0 {
			if gapIdx >= len(gaps) {
				leftovers[a.TaskID] += m
				break
			}
			g := gaps[gapIdx]
			if offset < g.Start {
				offset = g.Start
			}
			avail := g.End - offset
			if avail <= 0 {
				gapIdx++
				continue
			}
			dur := m
			if dur > avail {
				dur = avail
			}
			segs = append(segs, segment.New(a.TaskID, day, offset, dur))
			offset += dur
			m -= dur
			if offset == g.End {
				gapIdx++
			}
		}
	}
	return segs
}

// buildReport merges strategy residuals with packing leftovers, ordered by
// the demand (creation) order for stable output.
func buildReport(demands []strategy.Demand, allocs []strategy.Allocation, leftovers map[string]int) Report {
	byTask := make(map[string]int, len(allocs))
	for _, a := range allocs {
		byTask[a.TaskID] += a.Residual
	}
	for id, m := range leftovers {
		byTask[id] += m
	}

	var report Report
	for _, d := range demands {
		if m := byTask[d.TaskID]; m > 0 {
			report.Residuals = append(report.Residuals, Residual{TaskID: d.TaskID, Minutes: m})
		}
	}
	return report
}
