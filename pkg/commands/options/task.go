// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/timeutil"
)

// TaskOptions captures the flags that describe a new task.
type TaskOptions struct {
	Title          string
	Minutes        int
	DeadlineString string
}

// AddTaskArgs wires task-related flags on the provided command.
func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().IntVarP(&o.Minutes, "minutes", "m", 0,
		"Estimated minutes of work remaining.")
	cmd.Flags().StringVarP(&o.DeadlineString, "deadline", "d", "",
		`Optional deadline date, example: --deadline="2020-02-28".`)
	_ = cmd.MarkFlagRequired("minutes")
}

// GetDeadline parses the deadline flag, nil when unset.
func (o *TaskOptions) GetDeadline() (*timeutil.Day, error) {
	if o.DeadlineString == "" {
		return nil, nil
	}
	d, err := timeutil.ParseDay(o.DeadlineString)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
