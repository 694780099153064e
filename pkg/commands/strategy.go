package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/strat"
)

func addStrategy(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "strategy [name]",
		Short: "Show or switch the distribution strategy",
		Example: `
tempo strategy
tempo strategy frontload
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			s, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}

			n := strat.Strategy{
				Name:    name,
				Service: s,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
