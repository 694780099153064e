package strategy

type backload struct{}

func (backload) Name() Name { return Backload }

// Distribute mirrors frontload, filling from each task's deadline (or the
// horizon end) backward toward today.
func (backload) Distribute(demands []Demand, free []int) []Allocation {
	out := make([]Allocation, 0, len(demands))
	for _, d := range demands {
		out = append(out, fillBackward(d, free))
	}
	return out
}
