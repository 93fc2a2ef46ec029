package output

import (
	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/rgehrsitz/autosave/internal/summary"
	"github.com/rgehrsitz/autosave/internal/validation"
	"github.com/shopspring/decimal"
)

// Row is one transaction line of a report
type Row struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Ceiling  decimal.Decimal `json:"ceiling"`
	Remanent decimal.Decimal `json:"remanent"`
	InGroup  *bool           `json:"inKPeriod,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// Report is whatever one CLI command produced. Exactly one section is set.
type Report struct {
	Title        string                `json:"-"`
	Transactions []Row                 `json:"transactions,omitempty"`
	Valid        []Row                 `json:"valid,omitempty"`
	Invalid      []Row                 `json:"invalid,omitempty"`
	Returns      *domain.ReturnsResult `json:"returns,omitempty"`
	Summary      *summary.Summary      `json:"summary,omitempty"`
}

// HasSplit reports whether the report carries a valid/invalid split
func (r *Report) HasSplit() bool {
	return r.Valid != nil || r.Invalid != nil
}

func rowOf(t domain.Transaction) Row {
	return Row{Date: t.Date, Amount: t.Amount, Ceiling: t.Ceiling, Remanent: t.Remanent}
}

// NewParseReport wraps normalized transactions
func NewParseReport(txns []domain.Transaction) *Report {
	rows := make([]Row, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, rowOf(t))
	}
	return &Report{Title: "PARSED TRANSACTIONS", Transactions: rows}
}

// NewValidationReport wraps a validator result
func NewValidationReport(res validation.Result) *Report {
	r := &Report{Title: "VALIDATED TRANSACTIONS", Valid: make([]Row, 0, len(res.Valid)), Invalid: make([]Row, 0, len(res.Invalid))}
	for _, t := range res.Valid {
		r.Valid = append(r.Valid, rowOf(t.Transaction))
	}
	for _, t := range res.Invalid {
		row := rowOf(t.Transaction)
		row.Message = t.Message
		r.Invalid = append(r.Invalid, row)
	}
	return r
}

// FilterMessage maps an engine rejection reason to its display message
func FilterMessage(reason domain.InvalidReason) string {
	switch reason {
	case domain.ReasonNegativeAmount:
		return validation.MsgNegativeAmount
	case domain.ReasonDuplicate:
		return validation.MsgDuplicate
	}
	return string(reason)
}

// NewFilterReport wraps an overlay resolution
func NewFilterReport(res *calculation.Resolution) *Report {
	r := &Report{Title: "FILTERED TRANSACTIONS", Valid: make([]Row, 0), Invalid: make([]Row, 0)}
	for _, t := range res.Transactions {
		row := rowOf(t.Transaction)
		if !t.Valid {
			row.Message = FilterMessage(t.Reason)
			r.Invalid = append(r.Invalid, row)
			continue
		}
		inGroup := t.InGroup()
		row.InGroup = &inGroup
		r.Valid = append(r.Valid, row)
	}
	return r
}

// NewReturnsReport wraps one track's returns
func NewReturnsReport(res *domain.ReturnsResult) *Report {
	return &Report{Title: "RETURNS: " + res.Track, Returns: res}
}

// NewSummaryReport wraps a spending summary
func NewSummaryReport(s *summary.Summary) *Report {
	return &Report{Title: "SPENDING SUMMARY", Summary: s}
}

// FormatCurrency formats a decimal as rupees
func FormatCurrency(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}
