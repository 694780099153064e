package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/cap"
)

func addCapacity(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Adjust a day's schedulable time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCapacitySet(cmd)
	addCapacityBlock(cmd)

	topLevel.AddCommand(cmd)
}

func addCapacitySet(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	var minutes int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a day's total schedulable minutes",
		Example: `
tempo capacity set --minutes=300 --on="2020-02-28"
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

			n := cap.SetMinutes{
				On:      on,
				Minutes: minutes,
				Service: s,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0,
		"Total schedulable minutes for the day.")
	_ = cmd.MarkFlagRequired("minutes")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addCapacityBlock(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	var start, end int

	cmd := &cobra.Command{
		Use:   "block",
		Short: "Block a fixed range of a day for a non-task commitment",
		Example: `
tempo capacity block --start=60 --end=120 --on="2020-02-28"
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

			n := cap.Block{
				On:      on,
				Start:   start,
				End:     end,
				Service: s,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().IntVar(&start, "start", 0,
		"Start minute of the blocked range.")
	cmd.Flags().IntVar(&end, "end", 0,
		"End minute (exclusive) of the blocked range.")
	_ = cmd.MarkFlagRequired("end")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
