package domain

import (
	"github.com/shopspring/decimal"
)

// Profile captures the investor attributes that drive projections
type Profile struct {
	Age              int             `yaml:"age" json:"age"`
	MonthlyWage      decimal.Decimal `yaml:"wage" json:"wage"`
	InflationPercent decimal.Decimal `yaml:"inflation" json:"inflation"`
}

// AnnualIncome returns the monthly wage scaled to a year
func (p Profile) AnnualIncome() decimal.Decimal {
	return p.MonthlyWage.Mul(decimal.NewFromInt(12))
}

// ReturnsRequest is the full input of a returns or comparison calculation
type ReturnsRequest struct {
	Age          int             `yaml:"age" json:"age"`
	Wage         decimal.Decimal `yaml:"wage" json:"wage"`
	Inflation    decimal.Decimal `yaml:"inflation" json:"inflation"`
	Windows      `yaml:",inline"`
	Transactions []Transaction `yaml:"transactions" json:"transactions"`
}

// Profile extracts the investor profile from the request
func (r ReturnsRequest) Profile() Profile {
	return Profile{
		Age:              r.Age,
		MonthlyWage:      r.Wage,
		InflationPercent: r.Inflation,
	}
}
