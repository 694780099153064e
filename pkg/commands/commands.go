package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tempo/pkg/plan"
	"tableflip.dev/tempo/pkg/store"
)

var (
	output = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tempo",
		Short: base.Wrap80("Plan tasks into daily time segments from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addGet(topLevel)
	addComplete(topLevel)
	addDelete(topLevel)
	addMove(topLevel)
	addStats(topLevel)
	addStrategy(topLevel)
	addView(topLevel)
	addCapacity(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addWatch(topLevel)
	addVersion(topLevel)
}

// loadService wires the diskv store into a plan service for one invocation.
func loadService() (*plan.Service, store.Persistence, error) {
	p, err := store.Load(nil)
	if err != nil {
		return nil, nil, err
	}
	s, err := plan.NewService(p)
	if err != nil {
		return nil, nil, err
	}
	return s, p, nil
}
