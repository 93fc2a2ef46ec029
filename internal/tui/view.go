package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/autosave/internal/tui/components"
	"github.com/rgehrsitz/autosave/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case !m.loaded:
		content = tuistyles.InfoStyle.Render("Comparing savings tracks...")
	case m.err != nil:
		content = m.renderError()
	default:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.renderMetrics(),
			"",
			m.renderTabs(),
			m.table.View(),
			"",
			m.renderRecommendation(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		content,
		"",
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("AUTOSAVE - Savings Track Comparison")
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(m.requestPath))
}

func (m Model) renderMetrics() string {
	set := m.set
	winner := set.Winner()

	years := fmt.Sprintf("over %d years", set.YearsToInvest)
	cards := []*components.MetricCard{
		components.NewMetricCard("Spent", tuistyles.FormatCurrency(set.TotalTransactionAmount)),
		components.NewMetricCard("Rounded Up", tuistyles.FormatCurrency(set.TotalCeiling)),
		components.NewMetricCard("Investable", tuistyles.FormatCurrency(set.TotalInvestable)).WithDescription(years),
		components.NewMetricCard(set.TaxAdvantaged.Label+" Gain", tuistyles.FormatCurrency(set.TaxAdvantaged.EffectiveGain)).
			WithDescription("tax benefit "+tuistyles.FormatCurrency(set.TaxAdvantaged.TotalTaxBenefit)).
			Highlighted(winner == &set.TaxAdvantaged),
		components.NewMetricCard(set.Market.Label+" Gain", tuistyles.FormatCurrency(set.Market.EffectiveGain)).
			Highlighted(winner == &set.Market),
	}

	columns := 5
	if m.width > 0 && m.width < 5*28 {
		columns = 3
	}
	return components.MetricGrid(cards, columns)
}

func (m Model) renderTabs() string {
	tabs := []struct {
		track Track
		label string
	}{
		{TrackTaxAdvantaged, m.set.TaxAdvantaged.Label},
		{TrackMarket, m.set.Market.Label},
	}

	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		style := tuistyles.InactiveTabStyle
		if t.track == m.track {
			style = tuistyles.ActiveTabStyle
		}
		rendered = append(rendered, style.Render(t.label+" BY PERIOD"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderRecommendation() string {
	rec := m.set.Recommendation
	bar := components.NewAllocationBar(
		m.set.TaxAdvantaged.Label, rec.TaxAdvantagedPercent,
		m.set.Market.Label, rec.MarketPercent,
	)

	width := m.width - 6
	if width < 40 {
		width = 40
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(tuistyles.MetricLabelStyle.Render("RECOMMENDATION: " + rec.RiskProfile))
	b.WriteString("\n")
	b.WriteString(bar.Render())
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(rec.Narrative))
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render(wrap.Render(rec.Reasoning)))
	return b.String()
}

func (m Model) renderError() string {
	return tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
		tuistyles.InfoStyle.Render("Fix the file and press r to reload.")
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("tab", "switch track"),
		formatShortcut("↑/↓", "scroll"),
		formatShortcut("r", "reload"),
		formatShortcut("q", "quit"),
	}
	return tuistyles.StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}
