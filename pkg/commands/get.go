package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get the plan for a day or week",
		Example: `
tempo get
tempo get --on="2020-02-28" --week
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

			n := get.Get{
				On:      on,
				Week:    oo.Week,
				ShowID:  oo.ShowID,
				Service: s,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArg(cmd, oo)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
