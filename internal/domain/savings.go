package domain

import (
	"github.com/shopspring/decimal"
)

// SavingsBucket is the projected outcome of one group window
type SavingsBucket struct {
	Start      string          `json:"start"`
	End        string          `json:"end"`
	Amount     decimal.Decimal `json:"amount"`
	Profit     decimal.Decimal `json:"profit"`
	TaxBenefit decimal.Decimal `json:"taxBenefit"`
}

// EffectiveGain is the profit plus any tax benefit of the bucket
func (b SavingsBucket) EffectiveGain() decimal.Decimal {
	return b.Profit.Add(b.TaxBenefit)
}

// ReturnsResult aggregates the projection of every bucket for one track
type ReturnsResult struct {
	Track                  string          `json:"track"`
	TotalTransactionAmount decimal.Decimal `json:"totalTransactionAmount"`
	TotalCeiling           decimal.Decimal `json:"totalCeiling"`
	Savings                []SavingsBucket `json:"savingsByDates"`
}

// TotalInvested sums the bucket amounts
func (r *ReturnsResult) TotalInvested() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Savings {
		total = total.Add(s.Amount)
	}
	return total
}

// TotalProfit sums the bucket profits
func (r *ReturnsResult) TotalProfit() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Savings {
		total = total.Add(s.Profit)
	}
	return total
}

// TotalTaxBenefit sums the bucket tax benefits
func (r *ReturnsResult) TotalTaxBenefit() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Savings {
		total = total.Add(s.TaxBenefit)
	}
	return total
}
