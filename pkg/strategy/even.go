package strategy

type even struct{}

func (even) Name() Name { return Even }

// Distribute spreads each task's minutes equally across its eligible days,
// assigning remainder minutes to the earliest days. Capacity a day cannot
// absorb becomes residual rather than spilling onto other days.
func (even) Distribute(demands []Demand, free []int) []Allocation {
	out := make([]Allocation, 0, len(demands))
	for _, d := range demands {
		out = append(out, spreadEven(d, free))
	}
	return out
}

func spreadEven(d Demand, free []int) Allocation {
	a := Allocation{TaskID: d.TaskID, PerDay: make([]int, len(free))}
	last := lastDay(d, len(free))
	if last < 0 || d.Minutes <= 0 {
		a.Residual = d.Minutes
		return a
	}

	days := last + 1
	share := d.Minutes / days
	remainder := d.Minutes % days

	placed := 0
	for i := 0; i <= last; i++ {
		want := share
		if i < remainder {
			want++
		}
		if want > free[i] {
			want = free[i]
		}
		if want <= 0 {
			continue
		}
		a.PerDay[i] = want
		free[i] -= want
		placed += want
	}
	a.Residual = d.Minutes - placed
	return a
}
