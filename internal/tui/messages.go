package tui

import (
	"github.com/rgehrsitz/autosave/internal/compare"
)

// Message types for the Bubble Tea update cycle

// ComparisonLoadedMsg carries the outcome of loading and comparing a request
type ComparisonLoadedMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// ReloadMsg asks for the request file to be read again
type ReloadMsg struct{}
