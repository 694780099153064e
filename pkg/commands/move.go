package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	var id string
	var start int

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a segment to an explicit day and offset",
		Example: `
tempo move 171dff69f8b99dca --on="2020-02-28" --start=120
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a segment id")
			}
			id = args[0]

			return nil
		},
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

			n := move.Move{
				SegmentID:   id,
				To:          on,
				StartMinute: start,
				Service:     s,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().IntVar(&start, "start", 0,
		"Minute offset within the day's schedulable window.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
