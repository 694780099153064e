package strategy

type frontload struct{}

func (frontload) Name() Name { return Frontload }

// Distribute greedily packs each task into the earliest free days; later
// tasks fill whatever capacity remains.
func (frontload) Distribute(demands []Demand, free []int) []Allocation {
	out := make([]Allocation, 0, len(demands))
	for _, d := range demands {
		out = append(out, fillForward(d, free))
	}
	return out
}
