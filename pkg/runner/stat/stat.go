// Package stat provides the runner that prints plan statistics.
package stat

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Stats prints the aggregate summary for a day or week.
type Stats struct {
	On   timeutil.Day
	Week bool

	Service *plan.Service
}

// Do prints the requested summary.
func (n *Stats) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get stats, no plan service")
	}

	on := n.On
	if on.IsZero() {
		on = timeutil.Today()
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()

	if n.Week {
		start := timeutil.StartOfWeek(on)
		end := start.AddDays(6)
		summary := n.Service.StatsForRange(start, end)
		pp.Stats(fmt.Sprintf("week of %s", start), summary)
		return nil
	}

	summary := n.Service.StatsForDate(on)
	pp.Stats(on.String(), summary)
	return nil
}
