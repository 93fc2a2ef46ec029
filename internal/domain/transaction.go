package domain

import (
	"github.com/shopspring/decimal"
)

// Expense is a raw spending record as captured by the client
type Expense struct {
	Timestamp string          `yaml:"timestamp" json:"timestamp"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
}

// Transaction is a normalized expense with its rounded-up ceiling and the
// remanent (ceiling minus amount) that is earmarked for investment
type Transaction struct {
	Date     string          `yaml:"date" json:"date"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	Ceiling  decimal.Decimal `yaml:"ceiling,omitempty" json:"ceiling"`
	Remanent decimal.Decimal `yaml:"remanent,omitempty" json:"remanent"`
}

// InvalidReason explains why a transaction was excluded from aggregation
type InvalidReason string

const (
	ReasonNegativeAmount InvalidReason = "negative amount"
	ReasonDuplicate      InvalidReason = "duplicate"
)

// Validity is the verdict attached to a transaction after resolution
type Validity struct {
	Valid  bool          `json:"valid"`
	Reason InvalidReason `json:"reason,omitempty"`
}
