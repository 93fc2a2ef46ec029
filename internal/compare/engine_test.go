package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleRequest(age int, wage int64) domain.ReturnsRequest {
	return domain.ReturnsRequest{
		Age:       age,
		Wage:      decimal.NewFromInt(wage),
		Inflation: decimal.NewFromInt(6),
		Windows: domain.Windows{
			Groups: []domain.GroupWindow{{Start: "2024-01-01 00:00:00", End: "2024-12-31 23:59:00"}},
		},
		Transactions: []domain.Transaction{
			{Date: "2024-01-15 10:30:00", Amount: decimal.RequireFromString("150.75")},
		},
	}
}

func TestCompare_BothTracks(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	set, err := ce.Compare(context.Background(), singleRequest(30, 50000))
	require.NoError(t, err)

	assert.Equal(t, "150.75", set.TotalTransactionAmount.String())
	assert.Equal(t, "200", set.TotalCeiling.String())
	assert.Equal(t, "49.25", set.TotalInvestable.String())
	assert.Equal(t, 30, set.YearsToInvest)

	require.Len(t, set.TaxAdvantaged.Savings, 1)
	require.Len(t, set.Market.Savings, 1)
	assert.Equal(t, domain.TrackNPS, set.TaxAdvantaged.Track)
	assert.Equal(t, domain.TrackIndex, set.Market.Track)
	assert.True(t, set.Market.TotalTaxBenefit.IsZero())
	assert.True(t, set.Market.EffectiveGain.Equal(set.Market.TotalProfit))
	assert.True(t, set.TaxAdvantaged.EffectiveGain.Equal(
		set.TaxAdvantaged.TotalProfit.Add(set.TaxAdvantaged.TotalTaxBenefit)))
	assert.NotEmpty(t, set.Recommendation.Narrative)
	assert.NotEmpty(t, set.Recommendation.Reasoning)
}

func TestCompare_YoungInvestorFavoursMarket(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	set, err := ce.Compare(context.Background(), singleRequest(25, 30000))
	require.NoError(t, err)

	assert.True(t, set.Market.EffectiveGain.GreaterThan(set.TaxAdvantaged.EffectiveGain))
	assert.Same(t, &set.Market, set.Winner())
	assert.Contains(t, set.Recommendation.Narrative, "Index Fund generates higher returns")
}

func TestCompare_RiskProfiles(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	set, err := ce.Compare(context.Background(), singleRequest(28, 50000))
	require.NoError(t, err)
	assert.Equal(t, "Aggressive", set.Recommendation.RiskProfile)
	assert.Equal(t, 70, set.Recommendation.MarketPercent)
	assert.Equal(t, 30, set.Recommendation.TaxAdvantagedPercent)

	set, err = ce.Compare(context.Background(), singleRequest(52, 50000))
	require.NoError(t, err)
	assert.Equal(t, "Conservative", set.Recommendation.RiskProfile)
	assert.Greater(t, set.Recommendation.TaxAdvantagedPercent, set.Recommendation.MarketPercent)
}

func TestCompare_NoGroups(t *testing.T) {
	req := singleRequest(30, 50000)
	req.Groups = nil

	set, err := NewCompareEngine(calculation.NewEngine()).Compare(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, set.TotalInvestable.IsZero())
	assert.Empty(t, set.TaxAdvantaged.Savings)
	assert.Contains(t, set.Recommendation.Narrative, "Index Fund")
}

func TestCompare_MisconfiguredTrack(t *testing.T) {
	a := domain.DefaultAssumptions()
	a.MarketTrack = "crypto"

	_, err := NewCompareEngine(calculation.NewEngineWithAssumptions(a)).Compare(context.Background(), singleRequest(30, 50000))
	require.Error(t, err)
	assert.True(t, errors.Is(err, calculation.ErrUnknownTrack))
}

func TestCompare_MalformedRequest(t *testing.T) {
	req := singleRequest(30, 50000)
	req.Transactions[0].Date = "15/01/2024"

	_, err := NewCompareEngine(calculation.NewEngine()).Compare(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, calculation.ErrMalformedTimestamp))
}
