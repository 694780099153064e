package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tempo/pkg/stats"
	"tableflip.dev/tempo/pkg/strategy"
)

// Stats prints a summary table for a date or range label.
func (pp *PrettyPrint) Stats(label string, s stats.Summary) {
	pp.Title(label)

	tbl := uitable.New()
	tbl.MaxColWidth = 50
	tbl.AddRow("PLANNED", fmt.Sprintf("%dm", s.TotalMinutes))
	tbl.AddRow("SESSIONS", fmt.Sprintf("%d", s.SessionCount))
	tbl.AddRow("COMPLETED", fmt.Sprintf("%d", s.CompletedCount))
	fmt.Println(tbl)
	fmt.Println("")
}

// StrategyLegend prints the available strategies, marking the active one.
func (pp *PrettyPrint) StrategyLegend(active string) {
	tbl := uitable.New()
	tbl.MaxColWidth = 70
	tbl.AddRow("  ", "STRATEGY", "MEANING")
	for _, name := range strategy.Names() {
		marker := "  "
		if string(name) == active {
			marker = color.New(color.FgHiGreen).Sprint("➤ ")
		}
		tbl.AddRow(marker, string(name), name.Description())
	}
	fmt.Println(tbl)
	fmt.Println("")
}
