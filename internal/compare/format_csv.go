package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats a comparison as one row per savings bucket and track
type CSVFormatter struct{}

// Format generates CSV output for a comparison
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Track",
		"Start",
		"End",
		"Amount",
		"Profit",
		"Tax Benefit",
		"Effective Gain",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, ts := range []TrackSummary{compSet.TaxAdvantaged, compSet.Market} {
		for _, s := range ts.Savings {
			row := []string{
				ts.Track,
				s.Start,
				s.End,
				s.Amount.StringFixed(2),
				s.Profit.StringFixed(2),
				s.TaxBenefit.StringFixed(2),
				s.EffectiveGain().StringFixed(2),
			}
			if err := writer.Write(row); err != nil {
				return "", err
			}
		}
		total := []string{
			ts.Track,
			"total",
			"",
			compSet.TotalInvestable.StringFixed(2),
			ts.TotalProfit.StringFixed(2),
			ts.TotalTaxBenefit.StringFixed(2),
			ts.EffectiveGain.StringFixed(2),
		}
		if err := writer.Write(total); err != nil {
			return "", err
		}
	}

	rec := compSet.Recommendation
	split := fmt.Sprintf("%s %d%% / %s %d%%",
		compSet.TaxAdvantaged.Track, rec.TaxAdvantagedPercent, compSet.Market.Track, rec.MarketPercent)
	if err := writer.Write([]string{"recommendation", rec.RiskProfile, split, "", "", "", ""}); err != nil {
		return "", err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}
