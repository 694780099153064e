// Package get provides the runners that print plan views.
package get

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Get prints the plan for a day or for the surrounding week.
type Get struct {
	On     timeutil.Day
	Week   bool
	ShowID bool

	Service *plan.Service
}

// Do prints the requested plan view plus any underallocation warnings.
func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no plan service")
	}

	on := n.On
	if on.IsZero() {
		on = timeutil.Today()
	}

	week := n.Week
	if !week && n.Service.Config().ViewMode == plan.ViewWeek {
		week = true
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()

	snap := n.Service.Snapshot()
	byID := task.Index(snap.Tasks)

	if week {
		for _, p := range n.Service.PlanForWeek(on) {
			pp.DayPlan(p.Date, p.Segments, p.FreeMinutes, byID)
		}
	} else {
		p := n.Service.PlanForDate(on)
		pp.DayPlan(p.Date, p.Segments, p.FreeMinutes, byID)
	}

	pp.Residuals(snap.Report, byID)
	return nil
}
