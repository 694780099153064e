package commands

import (
	"context"
	"errors"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to the plan",
		Example: `
tempo add write the quarterly report -m 120 -d 2020-03-06
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a task title")
			}
			to.Title = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			deadline, err := to.GetDeadline()
			if err != nil {
				return output.HandleError(err)
			}
			s, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}

			n := add.Add{
				Title:    to.Title,
				Minutes:  to.Minutes,
				Deadline: deadline,
				Service:  s,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	options.AddTaskArgs(cmd, to)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
