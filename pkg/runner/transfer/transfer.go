// Package transfer provides the export and import runners for full-state
// backup and restore through the key-value boundary.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/tempo/pkg/store"
)

// Export writes the full store state as one JSON object keyed by the short
// key names.
type Export struct {
	Out         io.Writer
	Persistence store.Persistence
}

// Do writes the export payload.
func (n *Export) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not export, no persistence")
	}

	data, err := n.Persistence.Export(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(n.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Import reads an export payload and overwrites the matching keys, leaving
// all other keys untouched.
type Import struct {
	In          io.Reader
	Persistence store.Persistence
}

// Do applies the import payload.
func (n *Import) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not import, no persistence")
	}

	var data map[string]json.RawMessage
	if err := json.NewDecoder(n.In).Decode(&data); err != nil {
		return fmt.Errorf("decode import payload: %w", err)
	}

	return n.Persistence.Import(data)
}
