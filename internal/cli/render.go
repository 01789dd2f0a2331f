package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hostelmeals/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func printTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	var b strings.Builder
	for i, h := range headers {
		b.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	fmt.Println(headerStyle.Render(strings.TrimRight(b.String(), " ")))
	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			line.WriteString(fmt.Sprintf("%-*s  ", widths[i], utils.Ellipsis(cell, 48)))
		}
		fmt.Println(strings.TrimRight(line.String(), " "))
	}
}

// printPageControl renders the numbered page strip the way the dashboard
// tables do: every page 1..n, current page highlighted.
func printPageControl(current, total int) {
	if total <= 0 {
		fmt.Println(dimStyle.Render("no pages"))
		return
	}
	parts := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		label := fmt.Sprintf("%d", i)
		if i == current {
			label = headerStyle.Render("[" + label + "]")
		}
		parts = append(parts, label)
	}
	fmt.Println(dimStyle.Render("page: ") + strings.Join(parts, " "))
}

func printOK(msg string)   { fmt.Println(okStyle.Render(msg)) }
func printWarn(msg string) { fmt.Println(warnStyle.Render(msg)) }
