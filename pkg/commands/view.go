package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/view"
)

func addView(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "view [day|week]",
		Short: "Show or switch the preferred plan view",
		Example: `
tempo view
tempo view week
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			mode := ""
			if len(args) == 1 {
				mode = args[0]
			}
			s, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}

			n := view.View{
				Mode:    mode,
				Service: s,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
