package compare

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RiskBand is one row of the age based allocation table. A zero MaxAge marks
// the open last band.
type RiskBand struct {
	MaxAge               int
	Label                string
	MarketPercent        int
	TaxAdvantagedPercent int
	reasoning            func(in RecommendationInput) string
}

// RecommendationInput carries everything the recommendation depends on
type RecommendationInput struct {
	Age                int
	YearsToRetirement  int
	AnnualIncome       decimal.Decimal
	TaxAdvantagedGain  decimal.Decimal
	MarketGain         decimal.Decimal
	TaxAdvantagedRate  decimal.Decimal
	MarketRate         decimal.Decimal
	TaxAdvantagedLabel string
	MarketLabel        string
}

// Recommendation is the suggested split between the two tracks
type Recommendation struct {
	Narrative            string `json:"recommendation"`
	RiskProfile          string `json:"riskProfile"`
	MarketPercent        int    `json:"suggestedIndexPercent"`
	TaxAdvantagedPercent int    `json:"suggestedNpsPercent"`
	Reasoning            string `json:"reasoning"`
}

const (
	highIncomeBoost      = 10
	maxTaxAdvantagedPart = 90
)

// DefaultBands is the allocation table used when none is configured
func DefaultBands() []RiskBand {
	return []RiskBand{
		{
			MaxAge: 35, Label: "Aggressive", MarketPercent: 70, TaxAdvantagedPercent: 30,
			reasoning: func(in RecommendationInput) string {
				return fmt.Sprintf("At %d, you have %d years till retirement. "+
					"Your long time horizon allows for higher equity exposure through Index Funds (%s avg return). "+
					"NPS provides stable %s returns with tax savings under Section 80CCD.",
					in.Age, in.YearsToRetirement, percent(in.MarketRate), percent(in.TaxAdvantagedRate))
			},
		},
		{
			MaxAge: 45, Label: "Moderate", MarketPercent: 50, TaxAdvantagedPercent: 50,
			reasoning: func(in RecommendationInput) string {
				return fmt.Sprintf("At %d, a balanced approach works best. "+
					"Split equally between NPS (guaranteed returns + tax deduction up to ₹2L) "+
					"and Index Funds (higher growth potential). Adjust as you approach 50.", in.Age)
			},
		},
		{
			MaxAge: 55, Label: "Conservative", MarketPercent: 30, TaxAdvantagedPercent: 70,
			reasoning: func(in RecommendationInput) string {
				return fmt.Sprintf("At %d, capital preservation becomes important. "+
					"NPS offers stability and tax benefits. Keep some Index Fund exposure for inflation-beating returns.", in.Age)
			},
		},
		{
			Label: "Very Conservative", MarketPercent: 20, TaxAdvantagedPercent: 80,
			reasoning: func(in RecommendationInput) string {
				return fmt.Sprintf("At %d, you're close to retirement. Prioritize NPS for guaranteed returns "+
					"and maximum tax benefits. Minimal Index Fund allocation for liquidity.", in.Age)
			},
		},
	}
}

// RecommendationEngine maps a profile and the two effective gains to an
// allocation and a narrative
type RecommendationEngine struct {
	Bands               []RiskBand
	HighIncomeThreshold decimal.Decimal
}

// NewRecommendationEngine creates an engine with the default band table
func NewRecommendationEngine(highIncomeThreshold decimal.Decimal) *RecommendationEngine {
	return &RecommendationEngine{
		Bands:               DefaultBands(),
		HighIncomeThreshold: highIncomeThreshold,
	}
}

// Band returns the first band whose bound exceeds age
func (re *RecommendationEngine) Band(age int) RiskBand {
	for _, b := range re.Bands {
		if b.MaxAge == 0 || age < b.MaxAge {
			return b
		}
	}
	return re.Bands[len(re.Bands)-1]
}

// Recommend builds the recommendation. Ties go to the market track.
func (re *RecommendationEngine) Recommend(in RecommendationInput) Recommendation {
	band := re.Band(in.Age)

	rec := Recommendation{
		RiskProfile:          band.Label,
		MarketPercent:        band.MarketPercent,
		TaxAdvantagedPercent: band.TaxAdvantagedPercent,
	}
	if band.reasoning != nil {
		rec.Reasoning = band.reasoning(in)
	}

	if in.AnnualIncome.GreaterThan(re.HighIncomeThreshold) {
		rec.TaxAdvantagedPercent = min(rec.TaxAdvantagedPercent+highIncomeBoost, maxTaxAdvantagedPart)
		rec.MarketPercent = 100 - rec.TaxAdvantagedPercent
		rec.Reasoning += " Your income is in the 30% tax bracket - NPS tax deduction is highly valuable."
	}

	taxGain := in.TaxAdvantagedGain.Round(2).String()
	marketGain := in.MarketGain.Round(2).String()
	if in.TaxAdvantagedGain.GreaterThan(in.MarketGain) {
		rec.Narrative = fmt.Sprintf("%s is more beneficial for your profile (effective gain: ₹%s vs ₹%s). "+
			"The tax benefit makes %s the winner despite lower market returns.",
			in.TaxAdvantagedLabel, taxGain, marketGain, in.TaxAdvantagedLabel)
	} else {
		rec.Narrative = fmt.Sprintf("%s generates higher returns for your profile (₹%s vs ₹%s). "+
			"However, consider %s allocation for tax savings.",
			in.MarketLabel, marketGain, taxGain, in.TaxAdvantagedLabel)
	}

	return rec
}

// percent renders a fractional rate as a two place percentage
func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
