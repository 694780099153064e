// Package move provides the runner for explicit segment reschedules.
package move

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Move drags one segment to an explicit day and offset. The plan store
// re-validates the placement before accepting it.
type Move struct {
	SegmentID   string
	To          timeutil.Day
	StartMinute int

	Service *plan.Service
}

// Do executes the reschedule.
func (n *Move) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not move, no plan service")
	}

	to := n.To
	if to.IsZero() {
		to = timeutil.Today()
	}
	if err := n.Service.Reschedule(ctx, n.SegmentID, to, n.StartMinute); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	p := n.Service.PlanForDate(to)
	snap := n.Service.Snapshot()
	pp.DayPlan(p.Date, p.Segments, p.FreeMinutes, task.Index(snap.Tasks))

	return nil
}
