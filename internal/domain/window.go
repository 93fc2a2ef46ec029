package domain

import (
	"github.com/shopspring/decimal"
)

// FixedWindow (q period) replaces the remanent of every transaction it
// covers with a fixed amount. Bounds are inclusive.
type FixedWindow struct {
	Fixed decimal.Decimal `yaml:"fixed" json:"fixed"`
	Start string          `yaml:"start" json:"start"`
	End   string          `yaml:"end" json:"end"`
}

// ExtraWindow (p period) adds an extra amount to the remanent of every
// transaction it covers. Overlapping windows stack.
type ExtraWindow struct {
	Extra decimal.Decimal `yaml:"extra" json:"extra"`
	Start string          `yaml:"start" json:"start"`
	End   string          `yaml:"end" json:"end"`
}

// GroupWindow (k period) defines a savings bucket. Windows may overlap and a
// transaction may fall into several buckets.
type GroupWindow struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Windows bundles the three overlay kinds that shape investable amounts
type Windows struct {
	Fixed  []FixedWindow `yaml:"q" json:"q"`
	Extra  []ExtraWindow `yaml:"p" json:"p"`
	Groups []GroupWindow `yaml:"k" json:"k"`
}
