package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/compare"
	"github.com/rgehrsitz/autosave/internal/config"
	"github.com/rgehrsitz/autosave/internal/tui/components"
)

// Track selects which side of the comparison the table shows
type Track int

const (
	TrackTaxAdvantaged Track = iota
	TrackMarket
)

// Next returns the other track
func (t Track) Next() Track {
	if t == TrackTaxAdvantaged {
		return TrackMarket
	}
	return TrackTaxAdvantaged
}

// Model is the whole viewer state
type Model struct {
	requestPath     string
	assumptionsPath string

	width  int
	height int

	set    *compare.ComparisonSet
	track  Track
	table  table.Model
	err    error
	loaded bool
}

// NewModel creates a viewer for the request file. An empty assumptions path
// uses the built-in rates.
func NewModel(requestPath, assumptionsPath string) Model {
	return Model{
		requestPath:     requestPath,
		assumptionsPath: assumptionsPath,
		table:           components.NewBucketTable(nil, tableHeight),
		width:           100,
		height:          30,
	}
}

const tableHeight = 8

// Init loads the request (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadComparisonCmd(m.requestPath, m.assumptionsPath)
}

// loadComparisonCmd reads both files and runs the comparison off the UI loop
func loadComparisonCmd(requestPath, assumptionsPath string) tea.Cmd {
	return func() tea.Msg {
		set, err := LoadComparison(context.Background(), requestPath, assumptionsPath)
		return ComparisonLoadedMsg{Set: set, Err: err}
	}
}

// LoadComparison loads one request file and compares both tracks
func LoadComparison(ctx context.Context, requestPath, assumptionsPath string) (*compare.ComparisonSet, error) {
	parser := config.NewInputParser()

	assumptions, err := parser.LoadAssumptions(assumptionsPath)
	if err != nil {
		return nil, err
	}
	req, err := parser.LoadRequest(requestPath)
	if err != nil {
		return nil, err
	}

	engine := compare.NewCompareEngine(calculation.NewEngineWithAssumptions(assumptions))
	set, err := engine.Compare(ctx, *req)
	if err != nil {
		return nil, err
	}
	set.ConfigPath = requestPath
	return set, nil
}

// activeSummary is the track currently shown in the table
func (m Model) activeSummary() *compare.TrackSummary {
	if m.set == nil {
		return nil
	}
	if m.track == TrackMarket {
		return &m.set.Market
	}
	return &m.set.TaxAdvantaged
}

func (m *Model) refreshTable() {
	if s := m.activeSummary(); s != nil {
		m.table.SetRows(components.BucketRows(s.Savings))
		m.table.SetCursor(0)
	}
}
