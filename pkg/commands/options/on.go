package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/timeutil"
)

// OnOptions selects the day (and optionally the week) a command acts on.
type OnOptions struct {
	OnString string
	Week     bool
	ShowID   bool
}

// AddOnArgs wires the day selection flags on the provided command.
func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-02-28". Defaults to today.`)
	cmd.Flags().BoolVarP(&o.Week, "week", "w", false,
		"Operate on the whole week containing the date.")
}

// AddShowIDArg wires the segment id visibility flag.
func AddShowIDArg(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().BoolVar(&o.ShowID, "id", false,
		"Show segment ids.")
}

// GetOn parses the day flag; the zero Day means today.
func (o *OnOptions) GetOn() (timeutil.Day, error) {
	if o.OnString == "" {
		return timeutil.Day{}, nil
	}
	return timeutil.ParseDay(o.OnString)
}
