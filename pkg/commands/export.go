package commands

import (
	"context"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/transfer"
	"tableflip.dev/tempo/pkg/store"
)

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full plan state as JSON",
		Example: `
tempo export > plan.json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			p, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}

			n := transfer.Export{
				Out:         os.Stdout,
				Persistence: p,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
