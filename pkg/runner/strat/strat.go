// Package strat provides the runner that shows or switches the
// distribution strategy.
package strat

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/printers"
)

// Strategy shows the strategy legend, or switches the active strategy when
// Name is set and reallocates the whole plan.
type Strategy struct {
	Name    string
	Service *plan.Service
}

// Do executes the strategy operation.
func (n *Strategy) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not set strategy, no plan service")
	}

	if n.Name != "" {
		if err := n.Service.SetStrategy(ctx, n.Name); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.StrategyLegend(n.Service.Config().Strategy)
	return nil
}
