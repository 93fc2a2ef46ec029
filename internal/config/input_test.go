package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const requestYAML = `
age: 29
wage: 50000
inflation: 5.5
q:
  - fixed: 0
    start: "2023-07-01 00:00:00"
    end: "2023-07-31 23:59:00"
p:
  - extra: 25
    start: "2023-10-01 08:00:00"
    end: "2023-12-31 19:59:00"
k:
  - start: "2023-03-01 00:00:00"
    end: "2023-11-30 23:59:00"
  - start: "2023-01-01 00:00:00"
    end: "2023-12-31 23:59:00"
transactions:
  - date: "2023-10-12 20:15:00"
    amount: 250
  - date: "2023-02-28 15:49:00"
    amount: 375
`

func TestLoadRequest_YAML(t *testing.T) {
	req, err := NewInputParser().LoadRequest(writeFile(t, "request.yaml", requestYAML))
	require.NoError(t, err)

	assert.Equal(t, 29, req.Age)
	assert.Equal(t, "50000", req.Wage.String())
	assert.Equal(t, "5.5", req.Inflation.String())
	require.Len(t, req.Fixed, 1)
	require.Len(t, req.Extra, 1)
	require.Len(t, req.Groups, 2)
	assert.Equal(t, "25", req.Extra[0].Extra.String())
	assert.Equal(t, "2023-03-01 00:00:00", req.Groups[0].Start)
	require.Len(t, req.Transactions, 2)
	assert.Equal(t, "375", req.Transactions[1].Amount.String())
}

func TestLoadRequest_JSON(t *testing.T) {
	body := `{"age": 40, "wage": 90000, "inflation": 6,
	  "k": [{"start": "2024-01-01 00:00:00", "end": "2024-12-31 23:59:00"}],
	  "transactions": [{"date": "2024-01-15 10:30:00", "amount": 150.75}]}`

	req, err := NewInputParser().LoadRequest(writeFile(t, "request.json", body))
	require.NoError(t, err)
	assert.Equal(t, 40, req.Age)
	assert.Empty(t, req.Fixed)
	assert.Equal(t, "150.75", req.Transactions[0].Amount.String())
}

func TestLoadRequest_ValidationCollectsErrors(t *testing.T) {
	body := `
age: -1
wage: -10
inflation: -100
q:
  - fixed: -5
    start: ""
    end: "2023-07-31 23:59:00"
k:
  - start: "2023-01-01 00:00:00"
transactions:
  - amount: 10
`
	_, err := NewInputParser().LoadRequest(writeFile(t, "bad.yaml", body))
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{
		"age", "wage", "inflation",
		"q[0].start",
		"k[0].end",
	}, fields)
}

func TestLoadRequest_LeavesItemsToTheEngine(t *testing.T) {
	body := `
age: 29
wage: 50000
inflation: 5.5
q:
  - fixed: -5
    start: "2023-07-01 00:00:00"
    end: "2023-07-31 23:59:00"
transactions:
  - amount: -10
  - date: "2023-07-01 21:59:00"
    amount: 620
`
	req, err := NewInputParser().LoadRequest(writeFile(t, "items.yaml", body))
	require.NoError(t, err)
	assert.Len(t, req.Transactions, 2)
	assert.Equal(t, "-5", req.Fixed[0].Fixed.String())
}

func TestLoadRequest_Errors(t *testing.T) {
	ip := NewInputParser()

	_, err := ip.LoadRequest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = ip.LoadRequest(writeFile(t, "broken.yaml", "age: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadExpenses(t *testing.T) {
	ip := NewInputParser()

	list := `
- timestamp: "2023-10-12 20:15"
  amount: 250
- timestamp: "2023-02-28 15:49:20"
  amount: 375.5
`
	expenses, err := ip.LoadExpenses(writeFile(t, "list.yaml", list))
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "2023-10-12 20:15", expenses[0].Timestamp)
	assert.Equal(t, "375.5", expenses[1].Amount.String())

	wrapped := `{"expenses": [{"timestamp": "2023-10-12 20:15", "amount": 250}]}`
	expenses, err = ip.LoadExpenses(writeFile(t, "wrapped.json", wrapped))
	require.NoError(t, err)
	require.Len(t, expenses, 1)
}

func TestLoadTransactions(t *testing.T) {
	body := `
wage: 50000
transactions:
  - date: "2023-10-12 20:15:00"
    amount: 250
    ceiling: 300
    remanent: 50
`
	wage, txns, err := NewInputParser().LoadTransactions(writeFile(t, "txns.yaml", body))
	require.NoError(t, err)
	assert.Equal(t, "50000", wage.String())
	require.Len(t, txns, 1)
	assert.Equal(t, "300", txns[0].Ceiling.String())
}

func TestLoadAssumptions_Defaults(t *testing.T) {
	a, err := NewInputParser().LoadAssumptions("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAssumptions().RetirementAge, a.RetirementAge)
	assert.Len(t, a.Tracks, 2)
}

func TestLoadAssumptions_Overlay(t *testing.T) {
	body := `
retirement_age: 58
tracks:
  - name: nps
    label: NPS
    rate: 0.08
    tax_advantaged: true
  - name: index
    label: Index Fund
    rate: 0.12
  - name: gold
    label: Gold ETF
    rate: 0.09
`
	a, err := NewInputParser().LoadAssumptions(writeFile(t, "assumptions.yaml", body))
	require.NoError(t, err)

	assert.Equal(t, 58, a.RetirementAge)
	assert.Equal(t, 5, a.MinimumYears)
	assert.Equal(t, []string{"nps", "index", "gold"}, a.TrackNames())
	gold, ok := a.Track("gold")
	require.True(t, ok)
	assert.Equal(t, "0.09", gold.Rate.String())
	assert.Len(t, a.Tax.Slabs, 5)
}

func TestLoadAssumptions_Invalid(t *testing.T) {
	body := `
retirement_age: 0
market_track: bonds
tracks:
  - name: nps
    rate: 0.0711
  - name: nps
    rate: -2
tax:
  deduction_ratio: 1.5
`
	_, err := NewInputParser().LoadAssumptions(writeFile(t, "bad.yaml", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retirement_age")
	assert.Contains(t, err.Error(), "duplicate track")
	assert.Contains(t, err.Error(), "tracks[1].rate")
	assert.Contains(t, err.Error(), "not tax advantaged")
	assert.Contains(t, err.Error(), "market_track")
	assert.Contains(t, err.Error(), "tax.deduction_ratio")
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "age", Message: "must not be negative"}
	assert.Equal(t, "age: must not be negative", err.Error())

	errs := ValidationErrors{err, {Field: "wage", Message: "is required"}}
	assert.Equal(t, "age: must not be negative; wage: is required", errs.Error())
}
