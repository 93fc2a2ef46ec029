package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrUnknownTrack is returned when a returns calculation names a track that is
// not configured
var ErrUnknownTrack = errors.New("unknown investment track")

// Engine orchestrates normalization, overlay resolution, growth projection and
// tax benefit for one request at a time. It holds no per-request state.
type Engine struct {
	Assumptions domain.Assumptions
	Growth      *GrowthProjector
	Tax         *TaxBenefitCalculator
	Logger      Logger
}

// NewEngine creates an engine with the default assumptions
func NewEngine() *Engine {
	return NewEngineWithAssumptions(domain.DefaultAssumptions())
}

// NewEngineWithAssumptions creates an engine with configurable rates and tax rules
func NewEngineWithAssumptions(a domain.Assumptions) *Engine {
	return &Engine{
		Assumptions: a,
		Growth:      NewGrowthProjector(a),
		Tax:         NewTaxBenefitCalculator(a.Tax),
		Logger:      NopLogger{},
	}
}

// SetLogger sets the engine logger. Nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Parse normalizes raw expenses into transactions
func (e *Engine) Parse(ctx context.Context, expenses []domain.Expense) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txns, err := NormalizeAll(expenses)
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("parsed %d expenses", len(txns))
	return txns, nil
}

// Filter resolves the windows against the transactions. Consumers use the
// per-transaction InGroup flag rather than the bucket totals.
func (e *Engine) Filter(ctx context.Context, w domain.Windows, txns []domain.Transaction) (*Resolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolver, err := NewResolver(w)
	if err != nil {
		return nil, err
	}
	res, err := resolver.Resolve(txns)
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("filter: %d transactions, %d valid", len(txns), len(res.Valid()))
	return res, nil
}

// Returns projects every group window of the request on the named track
func (e *Engine) Returns(ctx context.Context, req domain.ReturnsRequest, trackName string) (*domain.ReturnsResult, error) {
	track, ok := e.Assumptions.Track(trackName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrack, trackName)
	}
	if req.Inflation.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return nil, fmt.Errorf("inflation must be greater than -100%%, got %s", req.Inflation.String())
	}

	res, err := e.Filter(ctx, req.Windows, req.Transactions)
	if err != nil {
		return nil, err
	}

	profile := req.Profile()
	annualIncome := profile.AnnualIncome()
	years := e.Growth.YearsToRetirement(profile.Age)
	e.Logger.Debugf("returns[%s]: rate %s, %d years, %d buckets", track.Name, track.Rate.String(), years, len(req.Groups))

	result := &domain.ReturnsResult{
		Track:                  track.Name,
		TotalTransactionAmount: Round2(res.TotalAmount),
		TotalCeiling:           Round2(res.TotalCeiling),
		Savings:                make([]domain.SavingsBucket, 0, len(req.Groups)),
	}

	for i, k := range req.Groups {
		principal := res.GroupTotals[i]
		proj := e.Growth.Project(principal, track.Rate, profile)

		benefit := decimal.Zero
		if track.TaxAdvantaged {
			benefit = e.Tax.Benefit(principal, annualIncome)
		}

		result.Savings = append(result.Savings, domain.SavingsBucket{
			Start:      k.Start,
			End:        k.End,
			Amount:     Round2(principal),
			Profit:     proj.Profit,
			TaxBenefit: Round2(benefit),
		})
	}

	return result, nil
}
