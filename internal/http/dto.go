package http

import (
	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/compare"
	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/rgehrsitz/autosave/internal/output"
	"github.com/rgehrsitz/autosave/internal/summary"
	"github.com/rgehrsitz/autosave/internal/validation"
	"github.com/shopspring/decimal"
)

// Requests decode straight into domain types. decimal.Decimal accepts both
// JSON numbers and numeric strings.

type parseRequest struct {
	Expenses []domain.Expense `json:"expenses"`
}

type transactionsRequest struct {
	Wage         decimal.Decimal      `json:"wage"`
	Transactions []domain.Transaction `json:"transactions"`
}

type filterRequest struct {
	domain.Windows
	Wage         decimal.Decimal      `json:"wage"`
	Transactions []domain.Transaction `json:"transactions"`
}

// Responses use float64 so amounts go out as JSON numbers

type transactionJSON struct {
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Ceiling   float64 `json:"ceiling"`
	Remanent  float64 `json:"remanent"`
	InKPeriod *bool   `json:"inKPeriod,omitempty"`
	Message   string  `json:"message,omitempty"`
}

func toTransactionJSON(t domain.Transaction) transactionJSON {
	return transactionJSON{
		Date:     t.Date,
		Amount:   t.Amount.InexactFloat64(),
		Ceiling:  t.Ceiling.InexactFloat64(),
		Remanent: t.Remanent.InexactFloat64(),
	}
}

type parseResponse struct {
	Transactions []transactionJSON `json:"transactions"`
}

func newParseResponse(txns []domain.Transaction) parseResponse {
	resp := parseResponse{Transactions: make([]transactionJSON, 0, len(txns))}
	for _, t := range txns {
		resp.Transactions = append(resp.Transactions, toTransactionJSON(t))
	}
	return resp
}

type splitResponse struct {
	Valid   []transactionJSON `json:"valid"`
	Invalid []transactionJSON `json:"invalid"`
}

func newValidationResponse(res validation.Result) splitResponse {
	resp := splitResponse{
		Valid:   make([]transactionJSON, 0, len(res.Valid)),
		Invalid: make([]transactionJSON, 0, len(res.Invalid)),
	}
	for _, t := range res.Valid {
		resp.Valid = append(resp.Valid, toTransactionJSON(t.Transaction))
	}
	for _, t := range res.Invalid {
		item := toTransactionJSON(t.Transaction)
		item.Message = t.Message
		resp.Invalid = append(resp.Invalid, item)
	}
	return resp
}

func newFilterResponse(res *calculation.Resolution) splitResponse {
	resp := splitResponse{
		Valid:   make([]transactionJSON, 0, len(res.Transactions)),
		Invalid: make([]transactionJSON, 0),
	}
	for _, t := range res.Transactions {
		item := toTransactionJSON(t.Transaction)
		if !t.Valid {
			item.Message = output.FilterMessage(t.Reason)
			resp.Invalid = append(resp.Invalid, item)
			continue
		}
		inGroup := t.InGroup()
		item.InKPeriod = &inGroup
		resp.Valid = append(resp.Valid, item)
	}
	return resp
}

type savingsJSON struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Amount     float64 `json:"amount"`
	Profit     float64 `json:"profit"`
	TaxBenefit float64 `json:"taxBenefit"`
}

func toSavingsJSON(buckets []domain.SavingsBucket) []savingsJSON {
	out := make([]savingsJSON, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, savingsJSON{
			Start:      b.Start,
			End:        b.End,
			Amount:     b.Amount.InexactFloat64(),
			Profit:     b.Profit.InexactFloat64(),
			TaxBenefit: b.TaxBenefit.InexactFloat64(),
		})
	}
	return out
}

type returnsResponse struct {
	TotalTransactionAmount float64       `json:"totalTransactionAmount"`
	TotalCeiling           float64       `json:"totalCeiling"`
	SavingsByDates         []savingsJSON `json:"savingsByDates"`
}

func newReturnsResponse(res *domain.ReturnsResult) returnsResponse {
	return returnsResponse{
		TotalTransactionAmount: res.TotalTransactionAmount.InexactFloat64(),
		TotalCeiling:           res.TotalCeiling.InexactFloat64(),
		SavingsByDates:         toSavingsJSON(res.Savings),
	}
}

type compareResponse struct {
	TotalTransactionAmount float64 `json:"totalTransactionAmount"`
	TotalCeiling           float64 `json:"totalCeiling"`
	TotalInvestable        float64 `json:"totalInvestable"`

	NpsSavings         []savingsJSON `json:"npsSavings"`
	NpsTotalProfit     float64       `json:"npsTotalProfit"`
	NpsTotalTaxBenefit float64       `json:"npsTotalTaxBenefit"`
	NpsEffectiveGain   float64       `json:"npsEffectiveGain"`

	IndexSavings       []savingsJSON `json:"indexSavings"`
	IndexTotalProfit   float64       `json:"indexTotalProfit"`
	IndexEffectiveGain float64       `json:"indexEffectiveGain"`

	Recommendation        string `json:"recommendation"`
	RiskProfile           string `json:"riskProfile"`
	SuggestedNpsPercent   int    `json:"suggestedNpsPercent"`
	SuggestedIndexPercent int    `json:"suggestedIndexPercent"`
	Reasoning             string `json:"reasoning"`
}

func newCompareResponse(set *compare.ComparisonSet) compareResponse {
	return compareResponse{
		TotalTransactionAmount: set.TotalTransactionAmount.InexactFloat64(),
		TotalCeiling:           set.TotalCeiling.InexactFloat64(),
		TotalInvestable:        set.TotalInvestable.InexactFloat64(),

		NpsSavings:         toSavingsJSON(set.TaxAdvantaged.Savings),
		NpsTotalProfit:     set.TaxAdvantaged.TotalProfit.InexactFloat64(),
		NpsTotalTaxBenefit: set.TaxAdvantaged.TotalTaxBenefit.InexactFloat64(),
		NpsEffectiveGain:   set.TaxAdvantaged.EffectiveGain.InexactFloat64(),

		IndexSavings:       toSavingsJSON(set.Market.Savings),
		IndexTotalProfit:   set.Market.TotalProfit.InexactFloat64(),
		IndexEffectiveGain: set.Market.EffectiveGain.InexactFloat64(),

		Recommendation:        set.Recommendation.Narrative,
		RiskProfile:           set.Recommendation.RiskProfile,
		SuggestedNpsPercent:   set.Recommendation.TaxAdvantagedPercent,
		SuggestedIndexPercent: set.Recommendation.MarketPercent,
		Reasoning:             set.Recommendation.Reasoning,
	}
}

type summaryResponse struct {
	TotalTransactions            int      `json:"totalTransactions"`
	ValidTransactions            int      `json:"validTransactions"`
	InvalidTransactions          int      `json:"invalidTransactions"`
	TotalSpent                   float64  `json:"totalSpent"`
	AverageSpend                 float64  `json:"averageSpend"`
	HighestSpend                 float64  `json:"highestSpend"`
	LowestSpend                  float64  `json:"lowestSpend"`
	HighestSpendDate             string   `json:"highestSpendDate,omitempty"`
	LowestSpendDate              string   `json:"lowestSpendDate,omitempty"`
	TotalSavingsPotential        float64  `json:"totalSavingsPotential"`
	AverageSavingsPerTransaction float64  `json:"averageSavingsPerTransaction"`
	MonthlySavingsEstimate       float64  `json:"monthlySavingsEstimate"`
	AnnualSavingsProjection      float64  `json:"annualSavingsProjection"`
	ReadinessScore               int      `json:"investmentReadinessScore"`
	ReadinessLabel               string   `json:"investmentReadinessLabel"`
	Tips                         []string `json:"tips"`
}

func newSummaryResponse(s *summary.Summary) summaryResponse {
	return summaryResponse{
		TotalTransactions:            s.TotalTransactions,
		ValidTransactions:            s.ValidTransactions,
		InvalidTransactions:          s.InvalidTransactions,
		TotalSpent:                   s.TotalSpent.InexactFloat64(),
		AverageSpend:                 s.AverageSpend.InexactFloat64(),
		HighestSpend:                 s.HighestSpend.InexactFloat64(),
		LowestSpend:                  s.LowestSpend.InexactFloat64(),
		HighestSpendDate:             s.HighestSpendDate,
		LowestSpendDate:              s.LowestSpendDate,
		TotalSavingsPotential:        s.TotalSavingsPotential.InexactFloat64(),
		AverageSavingsPerTransaction: s.AverageSavingsPerTransaction.InexactFloat64(),
		MonthlySavingsEstimate:       s.MonthlySavingsEstimate.InexactFloat64(),
		AnnualSavingsProjection:      s.AnnualSavingsProjection.InexactFloat64(),
		ReadinessScore:               s.ReadinessScore,
		ReadinessLabel:               s.ReadinessLabel,
		Tips:                         s.Tips,
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}
