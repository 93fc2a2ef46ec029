// Package summary analyses a transaction list for spending patterns and
// savings readiness.
package summary

import (
	"fmt"

	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/rgehrsitz/autosave/internal/validation"
	"github.com/shopspring/decimal"
)

// Readiness labels
const (
	LabelNoData   = "No data"
	LabelNotReady = "Not ready"
)

const (
	baseScore        = 50
	consistencyScale = 20
	savingsScale     = 40
	maxSavingsRatio  = 0.5
	sparseThreshold  = 3
	sparsePenalty    = 15
	// roughly one spend a day
	transactionsPerMonth = 30
)

// Summary is the spending and readiness report of a transaction list
type Summary struct {
	TotalTransactions   int `json:"totalTransactions"`
	ValidTransactions   int `json:"validTransactions"`
	InvalidTransactions int `json:"invalidTransactions"`

	TotalSpent       decimal.Decimal `json:"totalSpent"`
	AverageSpend     decimal.Decimal `json:"averageSpend"`
	HighestSpend     decimal.Decimal `json:"highestSpend"`
	LowestSpend      decimal.Decimal `json:"lowestSpend"`
	HighestSpendDate string          `json:"highestSpendDate,omitempty"`
	LowestSpendDate  string          `json:"lowestSpendDate,omitempty"`

	TotalSavingsPotential        decimal.Decimal `json:"totalSavingsPotential"`
	AverageSavingsPerTransaction decimal.Decimal `json:"averageSavingsPerTransaction"`
	MonthlySavingsEstimate       decimal.Decimal `json:"monthlySavingsEstimate"`
	AnnualSavingsProjection      decimal.Decimal `json:"annualSavingsProjection"`

	ReadinessScore int      `json:"investmentReadinessScore"`
	ReadinessLabel string   `json:"investmentReadinessLabel"`
	Tips           []string `json:"tips"`
}

// Analyzer builds summaries using the simple validator's acceptance rules
type Analyzer struct {
	Validator *validation.Validator
}

// NewAnalyzer creates an analyzer with the default validator
func NewAnalyzer() *Analyzer {
	return &Analyzer{Validator: validation.NewValidator()}
}

// Analyze produces the summary for txns
func (a *Analyzer) Analyze(txns []domain.Transaction) *Summary {
	s := &Summary{
		TotalSpent:                   decimal.Zero,
		AverageSpend:                 decimal.Zero,
		HighestSpend:                 decimal.Zero,
		LowestSpend:                  decimal.Zero,
		TotalSavingsPotential:        decimal.Zero,
		AverageSavingsPerTransaction: decimal.Zero,
		MonthlySavingsEstimate:       decimal.Zero,
		AnnualSavingsProjection:      decimal.Zero,
	}

	if len(txns) == 0 {
		s.ReadinessLabel = LabelNoData
		s.Tips = []string{"Start tracking your expenses to build a savings plan."}
		return s
	}

	res := a.Validator.Validate(decimal.Zero, txns)
	s.TotalTransactions = len(txns)
	s.ValidTransactions = len(res.Valid)
	s.InvalidTransactions = len(res.Invalid)

	if len(res.Valid) == 0 {
		s.ReadinessLabel = LabelNotReady
		s.Tips = []string{"All your transactions are invalid. Check for negative amounts or duplicates."}
		return s
	}

	totalSpent := decimal.Zero
	totalSavings := decimal.Zero
	for i, t := range res.Valid {
		totalSpent = totalSpent.Add(t.Amount)
		totalSavings = totalSavings.Add(calculation.Remanent(t.Amount))

		if i == 0 || t.Amount.GreaterThan(s.HighestSpend) {
			s.HighestSpend = t.Amount
			s.HighestSpendDate = t.Date
		}
		if i == 0 || t.Amount.LessThan(s.LowestSpend) {
			s.LowestSpend = t.Amount
			s.LowestSpendDate = t.Date
		}
	}

	n := decimal.NewFromInt(int64(len(res.Valid)))
	avgSpend := totalSpent.Div(n)
	avgSavings := totalSavings.Div(n)
	monthly := calculation.Round2(avgSavings.Mul(decimal.NewFromInt(transactionsPerMonth)))

	s.TotalSpent = calculation.Round2(totalSpent)
	s.AverageSpend = calculation.Round2(avgSpend)
	s.HighestSpend = calculation.Round2(s.HighestSpend)
	s.LowestSpend = calculation.Round2(s.LowestSpend)
	s.TotalSavingsPotential = calculation.Round2(totalSavings)
	s.AverageSavingsPerTransaction = calculation.Round2(avgSavings)
	s.MonthlySavingsEstimate = monthly
	s.AnnualSavingsProjection = calculation.Round2(monthly.Mul(decimal.NewFromInt(12)))

	s.ReadinessScore = readinessScore(len(res.Valid), len(res.Invalid), avgSavings, avgSpend)
	s.ReadinessLabel = ReadinessLabel(s.ReadinessScore)
	s.Tips = tips(s.ReadinessScore, avgSavings, totalSpent, len(res.Valid), len(res.Invalid))

	return s
}

func readinessScore(valid, invalid int, avgSavings, avgSpend decimal.Decimal) int {
	score := baseScore

	validRatio := float64(valid) / float64(valid+invalid)
	score += int(validRatio * consistencyScale)

	savingsRatio := 0.0
	if avgSpend.IsPositive() {
		savingsRatio = avgSavings.Div(avgSpend).InexactFloat64()
	}
	score += int(min(savingsRatio, maxSavingsRatio) * savingsScale)

	if valid < sparseThreshold {
		score -= sparsePenalty
	}

	return max(0, min(100, score))
}

// ReadinessLabel maps a score to its label
func ReadinessLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent - Ready to invest aggressively"
	case score >= 60:
		return "Good - Can start regular investments"
	case score >= 40:
		return "Moderate - Consider building an emergency fund first"
	case score >= 20:
		return "Low - Focus on reducing expenses"
	default:
		return "Very Low - Need financial planning"
	}
}

func tips(score int, avgSavings, totalSpent decimal.Decimal, valid, invalid int) []string {
	var out []string

	if avgSavings.LessThan(decimal.NewFromInt(20)) {
		out = append(out, "Your average savings per transaction is low. Try rounding up your spends to save more spare change.")
	}
	if invalid > 0 {
		out = append(out, fmt.Sprintf("You have %d invalid transactions. Review and fix them to maximize your investment pool.", invalid))
	}
	if score >= 70 {
		out = append(out, "You're in great shape! Consider splitting investments between NPS (for tax benefits) and Index Funds (for higher growth).")
	}
	if totalSpent.GreaterThan(decimal.NewFromInt(10000)) && avgSavings.GreaterThan(decimal.NewFromInt(30)) {
		out = append(out, "Your spending pattern generates good savings. Automate your investments to stay consistent.")
	}
	if valid >= 5 {
		out = append(out, "Consistent transaction history detected. You qualify for a disciplined savings plan.")
	}

	if len(out) == 0 {
		out = append(out, "Start by tracking all your expenses. Every rupee saved is a rupee invested.")
	}
	return out
}
