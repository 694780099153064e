package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	var id string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Mark a task complete",
		Example: `
tempo complete t-3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			id = args[0]

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			s, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}

			n := complete.Complete{
				ID:      id,
				Service: s,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
