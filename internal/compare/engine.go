package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine runs the tax-advantaged and the market track over the same
// request and recommends a split
type CompareEngine struct {
	CalcEngine  *calculation.Engine
	Recommender *RecommendationEngine
}

// NewCompareEngine creates a comparison engine on top of a calculation engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:  calcEngine,
		Recommender: NewRecommendationEngine(calcEngine.Assumptions.HighIncomeThreshold),
	}
}

// Compare projects both configured tracks and builds the comparison set
func (ce *CompareEngine) Compare(ctx context.Context, req domain.ReturnsRequest) (*ComparisonSet, error) {
	a := ce.CalcEngine.Assumptions

	taxTrack, ok := a.Track(a.TaxAdvantagedTrack)
	if !ok {
		return nil, fmt.Errorf("%w: %q", calculation.ErrUnknownTrack, a.TaxAdvantagedTrack)
	}
	marketTrack, ok := a.Track(a.MarketTrack)
	if !ok {
		return nil, fmt.Errorf("%w: %q", calculation.ErrUnknownTrack, a.MarketTrack)
	}

	taxResult, err := ce.CalcEngine.Returns(ctx, req, taxTrack.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate %s returns: %w", taxTrack.Name, err)
	}
	marketResult, err := ce.CalcEngine.Returns(ctx, req, marketTrack.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate %s returns: %w", marketTrack.Name, err)
	}

	set := &ComparisonSet{
		TotalTransactionAmount: taxResult.TotalTransactionAmount,
		TotalCeiling:           taxResult.TotalCeiling,
		TotalInvestable:        calculation.Round2(taxResult.TotalInvested()),
		YearsToInvest:          ce.CalcEngine.Growth.YearsToRetirement(req.Age),
		TaxAdvantaged:          summarize(taxTrack, taxResult),
		Market:                 summarize(marketTrack, marketResult),
	}

	// the market track never earns a tax benefit, its effective gain is its profit
	set.Market.TotalTaxBenefit = decimal.Zero
	set.Market.EffectiveGain = set.Market.TotalProfit

	set.Recommendation = ce.Recommender.Recommend(RecommendationInput{
		Age:                req.Age,
		YearsToRetirement:  set.YearsToInvest,
		AnnualIncome:       req.Profile().AnnualIncome(),
		TaxAdvantagedGain:  set.TaxAdvantaged.EffectiveGain,
		MarketGain:         set.Market.EffectiveGain,
		TaxAdvantagedRate:  taxTrack.Rate,
		MarketRate:         marketTrack.Rate,
		TaxAdvantagedLabel: taxTrack.Label,
		MarketLabel:        marketTrack.Label,
	})

	ce.CalcEngine.Logger.Debugf("compare: %s %s vs %s %s, profile %s",
		taxTrack.Name, set.TaxAdvantaged.EffectiveGain, marketTrack.Name, set.Market.EffectiveGain,
		set.Recommendation.RiskProfile)

	return set, nil
}
