package validation

import (
	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
)

// Rejection messages
const (
	MsgNegativeAmount = "Negative amounts are not allowed"
	MsgDuplicate      = "Duplicate transaction"
	MsgAmountTooLarge = "Amount exceeds maximum allowed value"
)

// DefaultMaxAmount is the exclusive upper bound on a single amount
var DefaultMaxAmount = decimal.NewFromInt(500000)

// CheckedTransaction is a copy of an input transaction with the rejection
// message, empty when accepted
type CheckedTransaction struct {
	domain.Transaction
	Message string `json:"message,omitempty"`
}

// Result splits the input into accepted and rejected copies, input order kept
type Result struct {
	Valid   []CheckedTransaction `json:"valid"`
	Invalid []CheckedTransaction `json:"invalid"`
}

// Validator applies the simple acceptance rules in a single pass
type Validator struct {
	MaxAmount decimal.Decimal
}

// NewValidator creates a validator with the default amount bound
func NewValidator() *Validator {
	return &Validator{MaxAmount: DefaultMaxAmount}
}

// Check returns the rejection message for txn, or "" when it is accepted.
// seen holds the dates accepted so far.
func (v *Validator) Check(txn domain.Transaction, seen map[string]struct{}) string {
	if txn.Amount.IsNegative() {
		return MsgNegativeAmount
	}
	if _, dup := seen[txn.Date]; dup {
		return MsgDuplicate
	}
	if txn.Amount.GreaterThanOrEqual(v.MaxAmount) {
		return MsgAmountTooLarge
	}
	return ""
}

// Validate classifies every transaction. Wage is accepted for API
// compatibility and does not affect the outcome.
func (v *Validator) Validate(_ decimal.Decimal, txns []domain.Transaction) Result {
	res := Result{
		Valid:   make([]CheckedTransaction, 0, len(txns)),
		Invalid: make([]CheckedTransaction, 0),
	}
	seen := make(map[string]struct{}, len(txns))

	for _, txn := range txns {
		copied := CheckedTransaction{Transaction: domain.Transaction{
			Date:     txn.Date,
			Amount:   txn.Amount,
			Ceiling:  txn.Ceiling,
			Remanent: txn.Remanent,
		}}

		if msg := v.Check(txn, seen); msg != "" {
			copied.Message = msg
			res.Invalid = append(res.Invalid, copied)
			continue
		}
		seen[txn.Date] = struct{}{}
		res.Valid = append(res.Valid, copied)
	}

	return res
}
