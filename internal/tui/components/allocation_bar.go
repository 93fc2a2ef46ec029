package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/autosave/internal/tui/tuistyles"
)

// AllocationBar draws a two part split such as 30% NPS / 70% Index Fund
type AllocationBar struct {
	LeftLabel    string
	LeftPercent  int
	RightLabel   string
	RightPercent int
	Width        int
}

// NewAllocationBar creates a bar of default width
func NewAllocationBar(leftLabel string, leftPercent int, rightLabel string, rightPercent int) *AllocationBar {
	return &AllocationBar{
		LeftLabel:    leftLabel,
		LeftPercent:  leftPercent,
		RightLabel:   rightLabel,
		RightPercent: rightPercent,
		Width:        40,
	}
}

// WithWidth sets the bar width
func (a *AllocationBar) WithWidth(width int) *AllocationBar {
	a.Width = width
	return a
}

// filled is the number of cells given to the left part
func (a *AllocationBar) filled() int {
	total := a.LeftPercent + a.RightPercent
	if total <= 0 || a.Width <= 0 {
		return 0
	}
	n := a.Width * a.LeftPercent / total
	if n > a.Width {
		n = a.Width
	}
	return n
}

// Render returns the bar with its legend
func (a *AllocationBar) Render() string {
	left := a.filled()
	right := a.Width - left

	leftStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)
	rightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSecondary)

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(leftStyle.Render(strings.Repeat("█", left)))
	b.WriteString(rightStyle.Render(strings.Repeat("█", right)))
	b.WriteString("]\n")
	b.WriteString(leftStyle.Render(fmt.Sprintf("%s %d%%", a.LeftLabel, a.LeftPercent)))
	b.WriteString(" / ")
	b.WriteString(rightStyle.Render(fmt.Sprintf("%s %d%%", a.RightLabel, a.RightPercent)))
	return b.String()
}
