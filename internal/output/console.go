package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter renders a report as aligned text
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, report.Title)
	fmt.Fprintln(&buf, strings.Repeat("=", 72))

	switch {
	case report.Returns != nil:
		writeReturns(&buf, report)
	case report.Summary != nil:
		writeSummary(&buf, report)
	case report.HasSplit():
		fmt.Fprintf(&buf, "VALID (%d)\n", len(report.Valid))
		writeRows(&buf, report.Valid)
		fmt.Fprintf(&buf, "\nINVALID (%d)\n", len(report.Invalid))
		writeRows(&buf, report.Invalid)
	default:
		writeRows(&buf, report.Transactions)
	}

	return buf.Bytes(), nil
}

func writeRows(buf *bytes.Buffer, rows []Row) {
	if len(rows) == 0 {
		fmt.Fprintln(buf, "  (none)")
		return
	}
	fmt.Fprintf(buf, "  %-19s %12s %12s %12s\n", "Date", "Amount", "Ceiling", "Remanent")
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 58))
	for _, r := range rows {
		line := fmt.Sprintf("  %-19s %12s %12s %12s", r.Date, r.Amount.StringFixed(2), r.Ceiling.StringFixed(2), r.Remanent.StringFixed(2))
		if r.InGroup != nil && *r.InGroup {
			line += "  [k]"
		}
		if r.Message != "" {
			line += "  " + r.Message
		}
		fmt.Fprintln(buf, line)
	}
}

func writeReturns(buf *bytes.Buffer, report *Report) {
	res := report.Returns
	fmt.Fprintf(buf, "Total Transaction Amount: %s\n", FormatCurrency(res.TotalTransactionAmount))
	fmt.Fprintf(buf, "Total Ceiling:            %s\n", FormatCurrency(res.TotalCeiling))
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "  %-19s %-19s %12s %12s %12s\n", "Start", "End", "Amount", "Profit", "Tax Benefit")
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 78))
	for _, s := range res.Savings {
		fmt.Fprintf(buf, "  %-19s %-19s %12s %12s %12s\n",
			s.Start, s.End, s.Amount.StringFixed(2), s.Profit.StringFixed(2), s.TaxBenefit.StringFixed(2))
	}
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 78))
	fmt.Fprintf(buf, "  %-39s %12s %12s %12s\n", "Total",
		res.TotalInvested().StringFixed(2), res.TotalProfit().StringFixed(2), res.TotalTaxBenefit().StringFixed(2))
}

func writeSummary(buf *bytes.Buffer, report *Report) {
	s := report.Summary
	fmt.Fprintf(buf, "Transactions: %d total, %d valid, %d invalid\n", s.TotalTransactions, s.ValidTransactions, s.InvalidTransactions)
	if s.ValidTransactions > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "Total Spent:        %s\n", FormatCurrency(s.TotalSpent))
		fmt.Fprintf(buf, "Average Spend:      %s\n", FormatCurrency(s.AverageSpend))
		fmt.Fprintf(buf, "Highest Spend:      %s (%s)\n", FormatCurrency(s.HighestSpend), s.HighestSpendDate)
		fmt.Fprintf(buf, "Lowest Spend:       %s (%s)\n", FormatCurrency(s.LowestSpend), s.LowestSpendDate)
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "Savings Potential:  %s\n", FormatCurrency(s.TotalSavingsPotential))
		fmt.Fprintf(buf, "Avg Per Spend:      %s\n", FormatCurrency(s.AverageSavingsPerTransaction))
		fmt.Fprintf(buf, "Monthly Estimate:   %s\n", FormatCurrency(s.MonthlySavingsEstimate))
		fmt.Fprintf(buf, "Annual Projection:  %s\n", FormatCurrency(s.AnnualSavingsProjection))
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Readiness: %d/100 %s\n", s.ReadinessScore, s.ReadinessLabel)
	for _, tip := range s.Tips {
		fmt.Fprintf(buf, "• %s\n", tip)
	}
}
