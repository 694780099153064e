package commands

import (
	"context"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/transfer"
	"tableflip.dev/tempo/pkg/store"
)

func addImport(topLevel *cobra.Command) {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a previously exported plan state",
		Example: `
tempo import --file=plan.json
cat plan.json | tempo import
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			in := os.Stdin
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return output.HandleError(err)
				}
				defer f.Close()
				in = f
			}

			p, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}

			n := transfer.Import{
				In:          in,
				Persistence: p,
			}
			return output.HandleError(n.Do(context.Background()))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "",
		"Read the payload from a file instead of stdin.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
