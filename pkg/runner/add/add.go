// Package add provides the runner that registers a new task.
package add

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Add registers a task and reprints today's plan.
type Add struct {
	Title    string
	Minutes  int
	Deadline *timeutil.Day
	ShowID   bool

	Service *plan.Service
}

// Do executes the add operation.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no plan service")
	}

	if _, err := n.Service.AddTask(ctx, n.Title, n.Minutes, n.Deadline); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()

	today := timeutil.Today()
	p := n.Service.PlanForDate(today)
	snap := n.Service.Snapshot()
	pp.DayPlan(p.Date, p.Segments, p.FreeMinutes, task.Index(snap.Tasks))
	pp.Residuals(snap.Report, task.Index(snap.Tasks))

	return nil
}
