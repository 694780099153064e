// Package complete provides the runner logic for marking tasks complete.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Complete marks a task as completed. Its history stays on the plan.
type Complete struct {
	ID      string
	Service *plan.Service
}

// Do executes the completion operation for the configured task ID.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no plan service")
	}

	if _, err := n.Service.CompleteTask(ctx, n.ID); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()

	today := timeutil.Today()
	p := n.Service.PlanForDate(today)
	snap := n.Service.Snapshot()
	pp.DayPlan(p.Date, p.Segments, p.FreeMinutes, task.Index(snap.Tasks))

	return nil
}
