package domain

import (
	"github.com/shopspring/decimal"
)

// Built-in track identifiers
const (
	TrackNPS   = "nps"
	TrackIndex = "index"
)

// Track is an investment vehicle with a fixed nominal annual rate
type Track struct {
	Name          string          `yaml:"name" json:"name"`
	Label         string          `yaml:"label" json:"label"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	TaxAdvantaged bool            `yaml:"tax_advantaged" json:"tax_advantaged"`
}

// TaxSlab is one marginal bracket. A zero Max marks the open top slab.
type TaxSlab struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxRules holds the slab table and the deduction limits for tax-advantaged
// contributions
type TaxRules struct {
	Slabs          []TaxSlab       `yaml:"slabs" json:"slabs"`
	DeductionRatio decimal.Decimal `yaml:"deduction_ratio" json:"deduction_ratio"`
	DeductionCap   decimal.Decimal `yaml:"deduction_cap" json:"deduction_cap"`
}

// Assumptions are the tunable economic parameters of the engine
type Assumptions struct {
	RetirementAge       int             `yaml:"retirement_age" json:"retirement_age"`
	MinimumYears        int             `yaml:"minimum_years" json:"minimum_years"`
	Tracks              []Track         `yaml:"tracks" json:"tracks"`
	TaxAdvantagedTrack  string          `yaml:"tax_advantaged_track" json:"tax_advantaged_track"`
	MarketTrack         string          `yaml:"market_track" json:"market_track"`
	HighIncomeThreshold decimal.Decimal `yaml:"high_income_threshold" json:"high_income_threshold"`
	Tax                 TaxRules        `yaml:"tax" json:"tax"`
}

// DefaultAssumptions returns the NPS / NIFTY 50 index fund setup with the
// simplified Indian slab table
func DefaultAssumptions() Assumptions {
	return Assumptions{
		RetirementAge: 60,
		MinimumYears:  5,
		Tracks: []Track{
			{Name: TrackNPS, Label: "NPS", Rate: decimal.NewFromFloat(0.0711), TaxAdvantaged: true},
			{Name: TrackIndex, Label: "Index Fund", Rate: decimal.NewFromFloat(0.1449)},
		},
		TaxAdvantagedTrack:  TrackNPS,
		MarketTrack:         TrackIndex,
		HighIncomeThreshold: decimal.NewFromInt(1500000),
		Tax: TaxRules{
			Slabs: []TaxSlab{
				{Min: decimal.Zero, Max: decimal.NewFromInt(700000), Rate: decimal.Zero},
				{Min: decimal.NewFromInt(700000), Max: decimal.NewFromInt(1000000), Rate: decimal.NewFromFloat(0.10)},
				{Min: decimal.NewFromInt(1000000), Max: decimal.NewFromInt(1200000), Rate: decimal.NewFromFloat(0.15)},
				{Min: decimal.NewFromInt(1200000), Max: decimal.NewFromInt(1500000), Rate: decimal.NewFromFloat(0.20)},
				{Min: decimal.NewFromInt(1500000), Max: decimal.Zero, Rate: decimal.NewFromFloat(0.30)},
			},
			DeductionRatio: decimal.NewFromFloat(0.10),
			DeductionCap:   decimal.NewFromInt(200000),
		},
	}
}

// Track looks up a configured track by name
func (a Assumptions) Track(name string) (Track, bool) {
	for _, t := range a.Tracks {
		if t.Name == name {
			return t, true
		}
	}
	return Track{}, false
}

// TrackNames lists the configured track names in order
func (a Assumptions) TrackNames() []string {
	names := make([]string, 0, len(a.Tracks))
	for _, t := range a.Tracks {
		names = append(names, t.Name)
	}
	return names
}
