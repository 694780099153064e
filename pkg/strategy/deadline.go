package strategy

import "sort"

type deadlineWeighted struct{}

func (deadlineWeighted) Name() Name { return DeadlineWeighted }

// Distribute processes tasks in ascending deadline order, tasks without a
// deadline last, ties broken by creation time, so urgent tasks claim scarce
// capacity first. Each task then consumes capacity frontload-style.
// Allocations are returned in the processing order, which is also the
// packing order within each day.
func (deadlineWeighted) Distribute(demands []Demand, free []int) []Allocation {
	ordered := make([]Demand, len(demands))
	copy(ordered, demands)
	sort.SliceStable(ordered, func(i, j int) bool {
		return moreUrgent(ordered[i], ordered[j])
	})

	out := make([]Allocation, 0, len(ordered))
	for _, d := range ordered {
		out = append(out, fillForward(d, free))
	}
	return out
}

func moreUrgent(a, b Demand) bool {
	switch {
	case a.Deadline == nil && b.Deadline == nil:
		// fall through to creation order
	case a.Deadline == nil:
		return false
	case b.Deadline == nil:
		return true
	case !a.Deadline.Equal(*b.Deadline):
		return a.Deadline.Before(*b.Deadline)
	}
	if !a.Created.Equal(b.Created) {
		return a.Created.Before(b.Created)
	}
	return a.TaskID < b.TaskID
}
