package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats a comparison as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing the two tracks
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("SAVINGS TRACK COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Request: %s\n", compSet.ConfigPath))
	}
	sb.WriteString(fmt.Sprintf("Total Spent:      ₹%s\n", tf.formatDecimal(compSet.TotalTransactionAmount)))
	sb.WriteString(fmt.Sprintf("Total Rounded Up: ₹%s\n", tf.formatDecimal(compSet.TotalCeiling)))
	sb.WriteString(fmt.Sprintf("Investable:       ₹%s over %d years\n", tf.formatDecimal(compSet.TotalInvestable), compSet.YearsToInvest))
	sb.WriteString("\n")

	nameWidth := 20
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Track",
		numWidth, "Profit",
		numWidth, "Tax Benefit",
		numWidth, "Effective Gain"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	winner := compSet.Winner()
	for _, ts := range []*TrackSummary{&compSet.TaxAdvantaged, &compSet.Market} {
		sb.WriteString(tf.formatRow(ts, nameWidth, numWidth, ts == winner))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	for _, ts := range []*TrackSummary{&compSet.TaxAdvantaged, &compSet.Market} {
		if len(ts.Savings) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s BY PERIOD\n", strings.ToUpper(ts.Label)))
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, s := range ts.Savings {
			sb.WriteString(fmt.Sprintf("  %s -> %s  amount %10s  profit %10s  tax %10s\n",
				s.Start, s.End, s.Amount.StringFixed(2), s.Profit.StringFixed(2), s.TaxBenefit.StringFixed(2)))
		}
	}

	rec := compSet.Recommendation
	sb.WriteString("\nRECOMMENDATION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Risk Profile: %s (%s %d%% / %s %d%%)\n",
		rec.RiskProfile,
		compSet.TaxAdvantaged.Label, rec.TaxAdvantagedPercent,
		compSet.Market.Label, rec.MarketPercent))
	sb.WriteString(fmt.Sprintf("• %s\n", rec.Narrative))
	sb.WriteString(fmt.Sprintf("• %s\n", rec.Reasoning))
	sb.WriteString("\n")

	return sb.String()
}

func (tf *TableFormatter) formatRow(ts *TrackSummary, nameWidth, numWidth int, isWinner bool) string {
	name := ts.Label
	if isWinner {
		name += " *"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "₹"+tf.formatDecimal(ts.TotalProfit),
		numWidth, "₹"+tf.formatDecimal(ts.TotalTaxBenefit),
		numWidth, "₹"+tf.formatDecimal(ts.EffectiveGain))
}

// formatDecimal formats a decimal for display, in lakhs above 1,00,000
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000000)) {
		return d.Div(decimal.NewFromInt(10000000)).StringFixed(2) + "Cr"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		return d.Div(decimal.NewFromInt(100000)).StringFixed(2) + "L"
	}
	return d.StringFixed(2)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single line summary
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	return fmt.Sprintf("%s: ₹%s | %s: ₹%s | %s %d/%d",
		compSet.TaxAdvantaged.Label, tf.formatDecimal(compSet.TaxAdvantaged.EffectiveGain),
		compSet.Market.Label, tf.formatDecimal(compSet.Market.EffectiveGain),
		compSet.Recommendation.RiskProfile,
		compSet.Recommendation.TaxAdvantagedPercent, compSet.Recommendation.MarketPercent)
}
