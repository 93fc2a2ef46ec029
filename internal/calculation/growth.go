package calculation

import (
	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to 2 decimal places. For the positive
// amounts handled here that is half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// GrowthProjector compounds a principal until retirement and deflates it
type GrowthProjector struct {
	RetirementAge int
	MinimumYears  int
}

// NewGrowthProjector creates a projector from the configured assumptions
func NewGrowthProjector(a domain.Assumptions) *GrowthProjector {
	return &GrowthProjector{
		RetirementAge: a.RetirementAge,
		MinimumYears:  a.MinimumYears,
	}
}

// YearsToRetirement is the investment horizon. Past the retirement age the
// horizon is the flat minimum, not the remaining years.
func (g *GrowthProjector) YearsToRetirement(age int) int {
	if age < g.RetirementAge {
		return g.RetirementAge - age
	}
	return g.MinimumYears
}

// Projection is the outcome of growing one principal
type Projection struct {
	Principal   decimal.Decimal
	Years       int
	FutureValue decimal.Decimal
	RealValue   decimal.Decimal
	Profit      decimal.Decimal
}

// Project compounds principal annually at rate and discounts the result by
// the profile's inflation over the same horizon
func (g *GrowthProjector) Project(principal, rate decimal.Decimal, profile domain.Profile) Projection {
	years := g.YearsToRetirement(profile.Age)
	n := decimal.NewFromInt(int64(years))

	growth := decimal.NewFromInt(1).Add(rate).Pow(n)
	futureValue := principal.Mul(growth)

	// Div truncates to DivisionPrecision, so skip it when there is nothing to deflate
	realValue := futureValue
	if !profile.InflationPercent.IsZero() {
		inflation := profile.InflationPercent.Div(hundred)
		deflator := decimal.NewFromInt(1).Add(inflation).Pow(n)
		realValue = futureValue.Div(deflator)
	}

	return Projection{
		Principal:   principal,
		Years:       years,
		FutureValue: futureValue,
		RealValue:   realValue,
		Profit:      Round2(realValue.Sub(principal)),
	}
}
