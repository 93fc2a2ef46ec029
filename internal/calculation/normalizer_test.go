package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCeiling(t *testing.T) {
	tests := []struct {
		amount   string
		ceiling  string
		remanent string
	}{
		{"150.75", "200", "49.25"},
		{"200", "200", "0"},
		{"0", "0", "0"},
		{"0.01", "100", "99.99"},
		{"1519", "1600", "81"},
		{"99.99", "100", "0.01"},
		{"100.01", "200", "99.99"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			c := Ceiling(amount)

			assert.True(t, c.Equal(decimal.RequireFromString(tt.ceiling)), "ceiling of %s, got %s", tt.amount, c)
			assert.True(t, Remanent(amount).Equal(decimal.RequireFromString(tt.remanent)), "remanent of %s", tt.amount)
			assert.True(t, c.Mod(hundred).IsZero(), "ceiling must be a multiple of 100")
			assert.True(t, c.GreaterThanOrEqual(amount), "ceiling must not be below the amount")
			assert.True(t, Remanent(amount).LessThan(hundred), "remanent must be below 100")
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "minutes only", value: "2023-10-12 20:15", want: "2023-10-12 20:15:00"},
		{name: "with seconds", value: "2023-10-12 20:15:42", want: "2023-10-12 20:15:42"},
		{name: "iso separator", value: "2023-10-12T20:15:00", wantErr: true},
		{name: "date only", value: "2023-10-12", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "impossible day", value: "2023-11-31 00:00", wantErr: true},
		{name: "single digit hour", value: "2024-01-01 9:05", wantErr: true},
		{name: "fractional seconds", value: "2024-01-01 09:05:00.123", wantErr: true},
		{name: "single digit month", value: "2024-1-01 09:05", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedTimestamp))

				var mte *MalformedTimestampError
				require.True(t, errors.As(err, &mte))
				assert.Equal(t, tt.value, mte.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(DateLayout))
		})
	}
}

func TestNormalize_DropsSeconds(t *testing.T) {
	txn, err := Normalize(domain.Expense{Timestamp: "2024-01-15 10:30:59", Amount: decimal.NewFromFloat(150.75)})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15 10:30:00", txn.Date)
	assert.Equal(t, "200", txn.Ceiling.String())
	assert.Equal(t, "49.25", txn.Remanent.String())
}

func TestNormalize_Idempotent(t *testing.T) {
	expense := domain.Expense{Timestamp: "2023-02-28 15:49:20", Amount: decimal.NewFromInt(375)}

	first, err := Normalize(expense)
	require.NoError(t, err)
	second, err := Normalize(domain.Expense{Timestamp: first.Date, Amount: first.Amount})
	require.NoError(t, err)

	assert.Equal(t, first.Date, second.Date)
	assert.True(t, first.Ceiling.Equal(second.Ceiling))
	assert.True(t, first.Remanent.Equal(second.Remanent))
}

func TestNormalizeAll_FailsWholeBatch(t *testing.T) {
	expenses := []domain.Expense{
		{Timestamp: "2023-10-12 20:15", Amount: decimal.NewFromInt(250)},
		{Timestamp: "12/10/2023", Amount: decimal.NewFromInt(375)},
	}

	txns, err := NormalizeAll(expenses)
	assert.Nil(t, txns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expense 1")
	assert.True(t, errors.Is(err, ErrMalformedTimestamp))
}
