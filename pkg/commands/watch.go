package commands

import (
	"context"
	"os"
	"os/signal"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/watch"
	"tableflip.dev/tempo/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream store change events until interrupted",
		Example: `
tempo watch
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			p, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			n := watch.Watch{
				Out:         os.Stdout,
				Persistence: p,
			}
			return output.HandleError(n.Do(ctx))
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
