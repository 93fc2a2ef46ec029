package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
)

// interval is a closed [start, end] range
type interval struct {
	start time.Time
	end   time.Time
}

func (iv interval) contains(t time.Time) bool {
	return !t.Before(iv.start) && !t.After(iv.end)
}

func parseInterval(start, end string) (interval, error) {
	s, err := ParseTimestamp(start)
	if err != nil {
		return interval{}, err
	}
	e, err := ParseTimestamp(end)
	if err != nil {
		return interval{}, err
	}
	return interval{start: s, end: e}, nil
}

type fixedRule struct {
	interval
	fixed decimal.Decimal
}

type extraRule struct {
	interval
	extra decimal.Decimal
}

// overlay is one step of the remanent fold
type overlay func(at time.Time, remanent decimal.Decimal) decimal.Decimal

// Resolver applies fixed, extra and group windows to transactions. Window
// bounds are parsed once at construction.
type Resolver struct {
	fixed  []fixedRule
	extra  []extraRule
	groups []interval
}

// NewResolver compiles the window lists. Nil lists are treated as empty.
func NewResolver(w domain.Windows) (*Resolver, error) {
	r := &Resolver{
		fixed:  make([]fixedRule, 0, len(w.Fixed)),
		extra:  make([]extraRule, 0, len(w.Extra)),
		groups: make([]interval, 0, len(w.Groups)),
	}

	for i, q := range w.Fixed {
		iv, err := parseInterval(q.Start, q.End)
		if err != nil {
			return nil, fmt.Errorf("q period %d: %w", i, err)
		}
		r.fixed = append(r.fixed, fixedRule{interval: iv, fixed: q.Fixed})
	}
	for i, p := range w.Extra {
		iv, err := parseInterval(p.Start, p.End)
		if err != nil {
			return nil, fmt.Errorf("p period %d: %w", i, err)
		}
		r.extra = append(r.extra, extraRule{interval: iv, extra: p.Extra})
	}
	for i, k := range w.Groups {
		iv, err := parseInterval(k.Start, k.End)
		if err != nil {
			return nil, fmt.Errorf("k period %d: %w", i, err)
		}
		r.groups = append(r.groups, iv)
	}

	return r, nil
}

// FixedOverride returns the fixed amount of the winning q period covering at.
// The latest start wins; on equal starts the earliest listed window wins.
func (r *Resolver) FixedOverride(at time.Time) (decimal.Decimal, bool) {
	best := -1
	for i, q := range r.fixed {
		if !q.contains(at) {
			continue
		}
		if best < 0 || q.start.After(r.fixed[best].start) {
			best = i
		}
	}
	if best < 0 {
		return decimal.Zero, false
	}
	return r.fixed[best].fixed, true
}

// ExtraTotal sums the extra of every p period covering at
func (r *Resolver) ExtraTotal(at time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.extra {
		if p.contains(at) {
			total = total.Add(p.extra)
		}
	}
	return total
}

// GroupsFor returns the indexes of every k period covering at, in input order
func (r *Resolver) GroupsFor(at time.Time) []int {
	var idx []int
	for i, k := range r.groups {
		if k.contains(at) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (r *Resolver) applyFixed(at time.Time, remanent decimal.Decimal) decimal.Decimal {
	if fixed, ok := r.FixedOverride(at); ok {
		return fixed
	}
	return remanent
}

func (r *Resolver) applyExtra(at time.Time, remanent decimal.Decimal) decimal.Decimal {
	return remanent.Add(r.ExtraTotal(at))
}

// Adjust folds the q override and then the p extras over a base remanent
func (r *Resolver) Adjust(at time.Time, remanent decimal.Decimal) decimal.Decimal {
	steps := []overlay{r.applyFixed, r.applyExtra}
	for _, step := range steps {
		remanent = step(at, remanent)
	}
	return remanent
}

// ResolvedTransaction is a transaction after validity and overlay resolution.
// For invalid transactions Remanent holds the unadjusted value.
type ResolvedTransaction struct {
	domain.Transaction
	domain.Validity
	Groups []int `json:"-"`
}

// InGroup reports whether the transaction falls in at least one k period
func (rt ResolvedTransaction) InGroup() bool {
	return len(rt.Groups) > 0
}

// Resolution is the outcome of resolving a transaction list
type Resolution struct {
	Transactions []ResolvedTransaction
	// GroupTotals holds one resolved remanent total per k period, in input order
	GroupTotals  []decimal.Decimal
	TotalAmount  decimal.Decimal
	TotalCeiling decimal.Decimal
}

// Valid returns the accepted transactions in input order
func (res *Resolution) Valid() []ResolvedTransaction {
	var out []ResolvedTransaction
	for _, t := range res.Transactions {
		if t.Valid {
			out = append(out, t)
		}
	}
	return out
}

// Invalid returns the rejected transactions in input order
func (res *Resolution) Invalid() []ResolvedTransaction {
	var out []ResolvedTransaction
	for _, t := range res.Transactions {
		if !t.Valid {
			out = append(out, t)
		}
	}
	return out
}

// Resolve classifies each transaction, applies the overlays to the valid ones
// and accumulates group totals. Ceiling and remanent are always recomputed
// from the amount.
func (r *Resolver) Resolve(transactions []domain.Transaction) (*Resolution, error) {
	res := &Resolution{
		Transactions: make([]ResolvedTransaction, 0, len(transactions)),
		GroupTotals:  make([]decimal.Decimal, len(r.groups)),
		TotalAmount:  decimal.Zero,
		TotalCeiling: decimal.Zero,
	}
	for i := range res.GroupTotals {
		res.GroupTotals[i] = decimal.Zero
	}

	seen := make(map[string]struct{}, len(transactions))
	for i, txn := range transactions {
		ceiling := Ceiling(txn.Amount)
		rt := ResolvedTransaction{
			Transaction: domain.Transaction{
				Date:     txn.Date,
				Amount:   txn.Amount,
				Ceiling:  ceiling,
				Remanent: ceiling.Sub(txn.Amount),
			},
		}

		switch _, dup := seen[txn.Date]; {
		case txn.Amount.IsNegative():
			rt.Reason = domain.ReasonNegativeAmount
		case dup:
			rt.Reason = domain.ReasonDuplicate
		default:
			at, err := ParseTimestamp(txn.Date)
			if err != nil {
				return nil, fmt.Errorf("transaction %d: %w", i, err)
			}
			seen[txn.Date] = struct{}{}
			rt.Valid = true
			rt.Remanent = r.Adjust(at, rt.Remanent)
			rt.Groups = r.GroupsFor(at)

			res.TotalAmount = res.TotalAmount.Add(rt.Amount)
			res.TotalCeiling = res.TotalCeiling.Add(rt.Ceiling)
			for _, g := range rt.Groups {
				res.GroupTotals[g] = res.GroupTotals[g].Add(rt.Remanent)
			}
		}

		res.Transactions = append(res.Transactions, rt)
	}

	return res, nil
}
