// Package view provides the runner that shows or switches the preferred
// plan view.
package view

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/tempo/pkg/plan"
)

// View shows the preferred plan view, or switches it when Mode is set.
type View struct {
	Mode    string
	Service *plan.Service
}

// Do executes the view operation.
func (n *View) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not set view, no plan service")
	}

	if n.Mode != "" {
		if err := n.Service.SetViewMode(ctx, n.Mode); err != nil {
			return err
		}
	}

	fmt.Printf("view: %s\n", n.Service.Config().ViewMode)
	return nil
}
