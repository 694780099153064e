// Package printers renders plans, stats, and warnings for the terminal.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/tempo/pkg/allocator"
	"tableflip.dev/tempo/pkg/segment"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

// PrettyPrint writes colored planner output.
type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

// Title prints a bold, underlined heading.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

// DayPlan prints one day's segments with their owning task titles, followed
// by the day's remaining free minutes.
func (pp *PrettyPrint) DayPlan(date timeutil.Day, segs segment.Set, freeMinutes int, tasks map[string]*task.Task) {
	pp.Title(fmt.Sprintf("%s (%s)", date, date.Weekday()))

	if len(segs) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" nothing planned\n\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)

	for _, s := range segs {
		if pp.ShowID {
			_, _ = y.Print(s.ID)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(s.ID)))
		}
		line := fmt.Sprintf("%s–%s  %s", clock(s.StartMinute), clock(s.EndMinute()), titleFor(s, tasks))
		if tk, ok := tasks[s.TaskID]; ok && tk.Completed {
			_, _ = done.Println(line)
			continue
		}
		_, _ = t.Println(line)
	}

	f := color.New(color.Faint)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Printf("%dm free\n\n", freeMinutes)
}

// Residuals prints the underallocation warnings from the last recompute.
// Underallocation is a warning, never an error.
func (pp *PrettyPrint) Residuals(report allocator.Report, tasks map[string]*task.Task) {
	if !report.Underallocated() {
		return
	}

	w := color.New(color.FgHiYellow)
	for _, r := range report.Residuals {
		title := r.TaskID
		if tk, ok := tasks[r.TaskID]; ok {
			title = tk.Title
		}
		if pp.ShowID {
			_, _ = w.Print(spacing)
		}
		_, _ = w.Printf("! %s: %dm will not fit before its deadline\n", title, r.Minutes)
	}
	fmt.Println("")
}

func titleFor(s segment.Segment, tasks map[string]*task.Task) string {
	if tk, ok := tasks[s.TaskID]; ok {
		return tk.Title
	}
	return s.TaskID
}

// clock renders an offset within the schedulable window as h:mm.
func clock(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
