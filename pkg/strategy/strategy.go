// Package strategy implements the distribution policies that apportion a
// task's remaining minutes across the days of the scheduling horizon.
package strategy

import (
	"fmt"
	"time"

	"tableflip.dev/tempo/pkg/timeutil"
)

// Name identifies a distribution strategy.
type Name string

const (
	Even             Name = "even"
	Frontload        Name = "frontload"
	Backload         Name = "backload"
	DeadlineWeighted Name = "deadline-weighted"
)

// Names lists the known strategies in presentation order.
func Names() []Name {
	return []Name{Even, Frontload, Backload, DeadlineWeighted}
}

// Description returns the one-line meaning shown in the strategy legend.
func (n Name) Description() string {
	switch n {
	case Even:
		return "spread each task equally across its days, remainder earliest"
	case Frontload:
		return "fill the earliest days first"
	case Backload:
		return "fill backward from the deadline"
	case DeadlineWeighted:
		return "most urgent deadlines claim capacity first"
	default:
		return "unknown"
	}
}

// ForName resolves a strategy by its configured name. This is the single
// dispatch point between configuration strings and implementations.
func ForName(name string) (Strategy, error) {
	switch Name(name) {
	case Even:
		return even{}, nil
	case Frontload:
		return frontload{}, nil
	case Backload:
		return backload{}, nil
	case DeadlineWeighted:
		return deadlineWeighted{}, nil
	default:
		return nil, fmt.Errorf("strategy: unknown strategy %q", name)
	}
}

// Demand describes one eligible task's remaining work within the horizon.
type Demand struct {
	TaskID  string
	Minutes int

	// LastDay is the inclusive index of the latest horizon day the task may
	// occupy; -1 when the deadline already passed.
	LastDay int

	Deadline *timeutil.Day
	Created  time.Time
}

// Allocation is the minutes-per-day a strategy requested for one task. The
// slice is indexed by horizon day; Residual counts the minutes that could
// not be placed before the task's deadline.
type Allocation struct {
	TaskID   string
	PerDay   []int
	Residual int
}

// Placed sums the minutes the allocation assigned.
func (a Allocation) Placed() int {
	total := 0
	for _, m := range a.PerDay {
		total += m
	}
	return total
}

// Strategy apportions demands across horizon days. Distribute consumes the
// shared free-capacity vector in place so later demands see what earlier
// ones claimed, and returns allocations in packing order.
type Strategy interface {
	Name() Name
	Distribute(demands []Demand, free []int) []Allocation
}

// lastDay clamps a demand's deadline bound to the horizon.
func lastDay(d Demand, horizon int) int {
	last := d.LastDay
	if last >= horizon {
		last = horizon - 1
	}
	return last
}

// fillForward assigns as much of the demand as each day's free capacity
// allows, earliest day first.
func fillForward(d Demand, free []int) Allocation {
	a := Allocation{TaskID: d.TaskID, PerDay: make([]int, len(free))}
	remaining := d.Minutes
	last := lastDay(d, len(free))
	for i := 0; i <= last && remaining > 0; i++ {
		place := remaining
		if place > free[i] {
			place = free[i]
		}
		if place <= 0 {
			continue
		}
		a.PerDay[i] = place
		free[i] -= place
		remaining -= place
	}
	a.Residual = remaining
	return a
}

// fillBackward mirrors fillForward, starting at the deadline (or horizon
// end) and walking back toward today.
func fillBackward(d Demand, free []int) Allocation {
	a := Allocation{TaskID: d.TaskID, PerDay: make([]int, len(free))}
	remaining := d.Minutes
	for i := lastDay(d, len(free)); i >= 0 && remaining > 0; i-- {
		place := remaining
		if place > free[i] {
			place = free[i]
		}
		if place <= 0 {
			continue
		}
		a.PerDay[i] = place
		free[i] -= place
		remaining -= place
	}
	a.Residual = remaining
	return a
}
