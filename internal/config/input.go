package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of request, expense and assumptions files.
// JSON files parse as well since YAML is a superset.
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// expenseFile accepts either a bare list or an object with an expenses key
type expenseFile struct {
	Expenses []domain.Expense `yaml:"expenses"`
}

// transactionFile is the body of validator, filter and summary inputs
type transactionFile struct {
	Wage         decimal.Decimal      `yaml:"wage"`
	Transactions []domain.Transaction `yaml:"transactions"`
}

func (ip *InputParser) read(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return data, nil
}

// LoadRequest loads and validates a returns request
func (ip *InputParser) LoadRequest(filename string) (*domain.ReturnsRequest, error) {
	data, err := ip.read(filename)
	if err != nil {
		return nil, err
	}
	return ip.ParseRequest(data)
}

// ParseRequest decodes and validates a returns request
func (ip *InputParser) ParseRequest(data []byte) (*domain.ReturnsRequest, error) {
	var req domain.ReturnsRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateRequest(&req); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}
	return &req, nil
}

// LoadExpenses loads a raw expense list
func (ip *InputParser) LoadExpenses(filename string) ([]domain.Expense, error) {
	data, err := ip.read(filename)
	if err != nil {
		return nil, err
	}

	var list []domain.Expense
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped expenseFile
	if err := yaml.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return wrapped.Expenses, nil
}

// LoadTransactions loads a wage and transaction list
func (ip *InputParser) LoadTransactions(filename string) (decimal.Decimal, []domain.Transaction, error) {
	data, err := ip.read(filename)
	if err != nil {
		return decimal.Zero, nil, err
	}

	var f transactionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return f.Wage, f.Transactions, nil
}

// LoadAssumptions overlays a file on the default assumptions. An empty
// filename returns the defaults.
func (ip *InputParser) LoadAssumptions(filename string) (domain.Assumptions, error) {
	a := domain.DefaultAssumptions()
	if filename == "" {
		return a, nil
	}

	data, err := ip.read(filename)
	if err != nil {
		return a, err
	}
	if err := yaml.Unmarshal(data, &a); err != nil {
		return a, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateAssumptions(&a); err != nil {
		return a, fmt.Errorf("assumptions validation failed: %w", err)
	}
	return a, nil
}

// ValidateRequest checks the profile and that every window has both bounds.
// Transactions are left to the engine, which marks bad items invalid.
func (ip *InputParser) ValidateRequest(req *domain.ReturnsRequest) error {
	var errs ValidationErrors
	ip.validateProfile(req.Profile(), &errs)
	ip.validateWindows(req.Windows, &errs)
	return errs.err()
}

func (ip *InputParser) validateProfile(p domain.Profile, errs *ValidationErrors) {
	if p.Age < 0 {
		errs.add("age", "must not be negative, got %d", p.Age)
	}
	if p.MonthlyWage.IsNegative() {
		errs.add("wage", "must not be negative, got %s", p.MonthlyWage)
	}
	if p.InflationPercent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		errs.add("inflation", "must be greater than -100, got %s", p.InflationPercent)
	}
}

func (ip *InputParser) validateWindows(w domain.Windows, errs *ValidationErrors) {
	check := func(field string, i int, start, end string) {
		if start == "" {
			errs.add(fmt.Sprintf("%s[%d].start", field, i), "is required")
		}
		if end == "" {
			errs.add(fmt.Sprintf("%s[%d].end", field, i), "is required")
		}
	}
	for i, q := range w.Fixed {
		check("q", i, q.Start, q.End)
	}
	for i, p := range w.Extra {
		check("p", i, p.Start, p.End)
	}
	for i, k := range w.Groups {
		check("k", i, k.Start, k.End)
	}
}

// ValidateAssumptions checks tracks, horizon and tax rules
func (ip *InputParser) ValidateAssumptions(a *domain.Assumptions) error {
	var errs ValidationErrors

	if a.RetirementAge <= 0 {
		errs.add("retirement_age", "must be positive, got %d", a.RetirementAge)
	}
	if a.MinimumYears < 0 {
		errs.add("minimum_years", "must not be negative, got %d", a.MinimumYears)
	}

	names := make(map[string]bool, len(a.Tracks))
	for i, t := range a.Tracks {
		field := fmt.Sprintf("tracks[%d]", i)
		if t.Name == "" {
			errs.add(field+".name", "is required")
		} else if names[t.Name] {
			errs.add(field+".name", "duplicate track %q", t.Name)
		}
		names[t.Name] = true
		if t.Rate.LessThanOrEqual(decimal.NewFromInt(-1)) {
			errs.add(field+".rate", "must be greater than -1, got %s", t.Rate)
		}
	}
	if tr, ok := a.Track(a.TaxAdvantagedTrack); !ok {
		errs.add("tax_advantaged_track", "unknown track %q", a.TaxAdvantagedTrack)
	} else if !tr.TaxAdvantaged {
		errs.add("tax_advantaged_track", "track %q is not tax advantaged", tr.Name)
	}
	if _, ok := a.Track(a.MarketTrack); !ok {
		errs.add("market_track", "unknown track %q", a.MarketTrack)
	}

	if len(a.Tax.Slabs) == 0 {
		errs.add("tax.slabs", "at least one slab is required")
	}
	for i, s := range a.Tax.Slabs {
		if s.Min.IsNegative() {
			errs.add(fmt.Sprintf("tax.slabs[%d].min", i), "must not be negative")
		}
		if s.Rate.IsNegative() || s.Rate.GreaterThan(decimal.NewFromInt(1)) {
			errs.add(fmt.Sprintf("tax.slabs[%d].rate", i), "must be between 0 and 1, got %s", s.Rate)
		}
	}
	if a.Tax.DeductionRatio.IsNegative() || a.Tax.DeductionRatio.GreaterThan(decimal.NewFromInt(1)) {
		errs.add("tax.deduction_ratio", "must be between 0 and 1, got %s", a.Tax.DeductionRatio)
	}
	if a.Tax.DeductionCap.IsNegative() {
		errs.add("tax.deduction_cap", "must not be negative")
	}

	return errs.err()
}
