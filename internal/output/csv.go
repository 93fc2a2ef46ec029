package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVFormatter renders transaction rows or savings buckets as CSV
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var records [][]string
	switch {
	case report.Returns != nil:
		records = append(records, []string{"Start", "End", "Amount", "Profit", "TaxBenefit"})
		for _, s := range report.Returns.Savings {
			records = append(records, []string{s.Start, s.End, s.Amount.StringFixed(2), s.Profit.StringFixed(2), s.TaxBenefit.StringFixed(2)})
		}
	case report.Summary != nil:
		s := report.Summary
		records = [][]string{
			{"Metric", "Value"},
			{"TotalTransactions", strconv.Itoa(s.TotalTransactions)},
			{"ValidTransactions", strconv.Itoa(s.ValidTransactions)},
			{"InvalidTransactions", strconv.Itoa(s.InvalidTransactions)},
			{"TotalSpent", s.TotalSpent.StringFixed(2)},
			{"TotalSavingsPotential", s.TotalSavingsPotential.StringFixed(2)},
			{"MonthlySavingsEstimate", s.MonthlySavingsEstimate.StringFixed(2)},
			{"AnnualSavingsProjection", s.AnnualSavingsProjection.StringFixed(2)},
			{"ReadinessScore", strconv.Itoa(s.ReadinessScore)},
			{"ReadinessLabel", s.ReadinessLabel},
		}
	case report.HasSplit():
		records = append(records, []string{"Status", "Date", "Amount", "Ceiling", "Remanent", "InKPeriod", "Message"})
		for _, r := range report.Valid {
			records = append(records, rowRecord("valid", r))
		}
		for _, r := range report.Invalid {
			records = append(records, rowRecord("invalid", r))
		}
	default:
		records = append(records, []string{"Date", "Amount", "Ceiling", "Remanent"})
		for _, r := range report.Transactions {
			records = append(records, []string{r.Date, r.Amount.StringFixed(2), r.Ceiling.StringFixed(2), r.Remanent.StringFixed(2)})
		}
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func rowRecord(status string, r Row) []string {
	inGroup := ""
	if r.InGroup != nil {
		inGroup = strconv.FormatBool(*r.InGroup)
	}
	return []string{status, r.Date, r.Amount.StringFixed(2), r.Ceiling.StringFixed(2), r.Remanent.StringFixed(2), inGroup, r.Message}
}
