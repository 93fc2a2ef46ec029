package compare

import (
	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
)

// TrackSummary is the projection of one track with its totals
type TrackSummary struct {
	Track           string                 `json:"track"`
	Label           string                 `json:"label"`
	Savings         []domain.SavingsBucket `json:"savings"`
	TotalProfit     decimal.Decimal        `json:"totalProfit"`
	TotalTaxBenefit decimal.Decimal        `json:"totalTaxBenefit"`
	EffectiveGain   decimal.Decimal        `json:"effectiveGain"`
}

// ComparisonSet is the side by side outcome of the tax-advantaged and the
// market track for one request
type ComparisonSet struct {
	TotalTransactionAmount decimal.Decimal `json:"totalTransactionAmount"`
	TotalCeiling           decimal.Decimal `json:"totalCeiling"`
	// TotalInvestable sums the bucket amounts. Overlapping groups count twice.
	TotalInvestable decimal.Decimal `json:"totalInvestable"`
	YearsToInvest   int             `json:"yearsToInvest"`

	TaxAdvantaged TrackSummary `json:"taxAdvantaged"`
	Market        TrackSummary `json:"market"`

	Recommendation Recommendation `json:"recommendation"`
	ConfigPath     string         `json:"configPath,omitempty"`
}

// Winner returns the track the recommendation favours
func (cs *ComparisonSet) Winner() *TrackSummary {
	if cs.TaxAdvantaged.EffectiveGain.GreaterThan(cs.Market.EffectiveGain) {
		return &cs.TaxAdvantaged
	}
	return &cs.Market
}

// summarize folds the rounded bucket values of one track result
func summarize(track domain.Track, result *domain.ReturnsResult) TrackSummary {
	profit := decimal.Zero
	benefit := decimal.Zero
	for _, s := range result.Savings {
		profit = profit.Add(s.Profit)
		benefit = benefit.Add(s.TaxBenefit)
	}

	return TrackSummary{
		Track:           track.Name,
		Label:           track.Label,
		Savings:         result.Savings,
		TotalProfit:     profit.Round(2),
		TotalTaxBenefit: benefit.Round(2),
		EffectiveGain:   profit.Add(benefit).Round(2),
	}
}
