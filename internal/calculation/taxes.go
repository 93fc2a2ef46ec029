package calculation

import (
	"sort"

	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX BENEFIT ASSUMPTIONS:
//
// 1. Slabs: simplified Indian new-regime table, no cess or surcharge
// 2. Deduction: Section 80CCD style, min(invested, ratio * annual income, cap)
// 3. Only tax-advantaged tracks earn a benefit

// TaxBenefitCalculator computes the tax saved by deducting an investment
type TaxBenefitCalculator struct {
	// Slabs sorted by descending lower bound for top-down peeling
	Slabs          []domain.TaxSlab
	DeductionRatio decimal.Decimal
	DeductionCap   decimal.Decimal
}

// NewTaxBenefitCalculator creates a calculator from the configured rules
func NewTaxBenefitCalculator(rules domain.TaxRules) *TaxBenefitCalculator {
	slabs := make([]domain.TaxSlab, len(rules.Slabs))
	copy(slabs, rules.Slabs)
	sort.SliceStable(slabs, func(i, j int) bool {
		return slabs[i].Min.GreaterThan(slabs[j].Min)
	})

	return &TaxBenefitCalculator{
		Slabs:          slabs,
		DeductionRatio: rules.DeductionRatio,
		DeductionCap:   rules.DeductionCap,
	}
}

// Tax computes progressive income tax by peeling the excess over each slab's
// lower bound, highest slab first
func (c *TaxBenefitCalculator) Tax(income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	tax := decimal.Zero
	for _, slab := range c.Slabs {
		if income.GreaterThan(slab.Min) {
			tax = tax.Add(income.Sub(slab.Min).Mul(slab.Rate))
			income = slab.Min
		}
	}
	return tax
}

// Deduction is the deductible part of an investment
func (c *TaxBenefitCalculator) Deduction(invested, annualIncome decimal.Decimal) decimal.Decimal {
	limit := decimal.Min(annualIncome.Mul(c.DeductionRatio), c.DeductionCap)
	return decimal.Min(invested, limit)
}

// Benefit is the tax saved by deducting the investment from annual income
func (c *TaxBenefitCalculator) Benefit(invested, annualIncome decimal.Decimal) decimal.Decimal {
	deduction := c.Deduction(invested, annualIncome)
	return c.Tax(annualIncome).Sub(c.Tax(annualIncome.Sub(deduction)))
}
