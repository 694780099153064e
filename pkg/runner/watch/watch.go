// Package watch provides the runner that streams store change events.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/tempo/pkg/store"
)

// Watch prints a line per store change until the context is cancelled.
type Watch struct {
	Out         io.Writer
	Persistence store.Persistence
}

// Do streams change events.
func (n *Watch) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not watch, no persistence")
	}

	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}

	for ev := range events {
		switch ev.Type {
		case store.EventKeyChanged:
			fmt.Fprintf(n.Out, "changed: %s\n", ev.Key)
		default:
			fmt.Fprintln(n.Out, "store changed")
		}
	}
	return nil
}
