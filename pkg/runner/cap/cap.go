// Package cap provides the runners that adjust day capacity.
package cap

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

// SetMinutes overrides how many schedulable minutes a day offers.
type SetMinutes struct {
	On      timeutil.Day
	Minutes int
	Service *plan.Service
}

// Do applies the override and reprints the day.
func (n *SetMinutes) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not set capacity, no plan service")
	}

	on := n.On
	if on.IsZero() {
		on = timeutil.Today()
	}
	if err := n.Service.SetDayMinutes(ctx, on, n.Minutes); err != nil {
		return err
	}

	printDay(n.Service, on)
	return nil
}

// Block reserves a fixed occupied range on a day for a non-task commitment.
type Block struct {
	On      timeutil.Day
	Start   int
	End     int
	Service *plan.Service
}

// Do applies the block and reprints the day.
func (n *Block) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not block time, no plan service")
	}

	on := n.On
	if on.IsZero() {
		on = timeutil.Today()
	}
	if err := n.Service.BlockTime(ctx, on, n.Start, n.End); err != nil {
		return err
	}

	printDay(n.Service, on)
	return nil
}

func printDay(s *plan.Service, on timeutil.Day) {
	pp := printers.PrettyPrint{}
	pp.NewLine()
	p := s.PlanForDate(on)
	snap := s.Snapshot()
	pp.DayPlan(p.Date, p.Segments, p.FreeMinutes, task.Index(snap.Tasks))
	pp.Residuals(snap.Report, task.Index(snap.Tasks))
}
