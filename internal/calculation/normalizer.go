package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
)

// Accepted input layouts. Seconds are optional and always dropped on output.
const (
	layoutMinutes = "2006-01-02 15:04"
	layoutSeconds = "2006-01-02 15:04:05"

	// DateLayout is the canonical transaction date format
	DateLayout = layoutSeconds
)

var hundred = decimal.NewFromInt(100)

// ErrMalformedTimestamp matches any *MalformedTimestampError via errors.Is
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// MalformedTimestampError reports a date string that matches neither accepted layout
type MalformedTimestampError struct {
	Value string
	Cause error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q: expected yyyy-MM-dd HH:mm[:ss]", e.Value)
}

func (e *MalformedTimestampError) Unwrap() error {
	return e.Cause
}

func (e *MalformedTimestampError) Is(target error) bool {
	return target == ErrMalformedTimestamp
}

// ParseTimestamp parses a minute or second resolution local datetime. The
// value must be in canonical form: two digit hours, no fractional seconds.
func ParseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range []string{layoutSeconds, layoutMinutes} {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err != nil {
			lastErr = err
			continue
		}
		if t.Format(layout) != value {
			lastErr = fmt.Errorf("not in %q form", layout)
			continue
		}
		return t, nil
	}
	return time.Time{}, &MalformedTimestampError{Value: value, Cause: lastErr}
}

// Ceiling rounds an amount up to the next multiple of 100. Exact multiples
// are returned unchanged.
func Ceiling(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(hundred).Ceil().Mul(hundred)
}

// Remanent is the gap between the ceiling and the amount
func Remanent(amount decimal.Decimal) decimal.Decimal {
	return Ceiling(amount).Sub(amount)
}

// Normalize turns a raw expense into a canonical transaction
func Normalize(expense domain.Expense) (domain.Transaction, error) {
	t, err := ParseTimestamp(expense.Timestamp)
	if err != nil {
		return domain.Transaction{}, err
	}

	ceiling := Ceiling(expense.Amount)
	return domain.Transaction{
		Date:     t.Truncate(time.Minute).Format(DateLayout),
		Amount:   expense.Amount,
		Ceiling:  ceiling,
		Remanent: ceiling.Sub(expense.Amount),
	}, nil
}

// NormalizeAll normalizes a batch. The first malformed timestamp fails the
// whole batch.
func NormalizeAll(expenses []domain.Expense) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0, len(expenses))
	for i, e := range expenses {
		txn, err := Normalize(e)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i, err)
		}
		transactions = append(transactions, txn)
	}
	return transactions, nil
}
