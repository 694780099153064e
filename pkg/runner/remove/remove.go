// Package remove provides the runner that deletes a task and its segments.
package remove

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Remove deletes a task together with all of its segments.
type Remove struct {
	ID      string
	Service *plan.Service
}

// Do executes the delete operation for the configured task ID.
func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no plan service")
	}

	if err := n.Service.DeleteTask(ctx, n.ID); err != nil {
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
