package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/stat"
)

func addStats(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show planned time, sessions, and completions",
		Example: `
tempo stats
tempo stats --on="2020-02-28" --week
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			on, err := oo.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			s, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}

			n := stat.Stats{
				On:      on,
				Week:    oo.Week,
				Service: s,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, oo)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
