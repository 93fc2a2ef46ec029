package components

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/rgehrsitz/autosave/internal/tui/tuistyles"
)

// BucketColumns are the columns of a savings bucket table
func BucketColumns() []table.Column {
	return []table.Column{
		{Title: "Start", Width: 19},
		{Title: "End", Width: 19},
		{Title: "Invested", Width: 14},
		{Title: "Profit", Width: 14},
		{Title: "Tax Benefit", Width: 13},
		{Title: "Effective", Width: 14},
	}
}

// BucketRows renders one row per savings bucket
func BucketRows(buckets []domain.SavingsBucket) []table.Row {
	rows := make([]table.Row, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, table.Row{
			b.Start,
			b.End,
			tuistyles.FormatCurrency(b.Amount),
			tuistyles.FormatCurrency(b.Profit),
			tuistyles.FormatCurrency(b.TaxBenefit),
			tuistyles.FormatCurrency(b.EffectiveGain()),
		})
	}
	return rows
}

// NewBucketTable builds a focused table over buckets
func NewBucketTable(buckets []domain.SavingsBucket, height int) table.Model {
	t := table.New(
		table.WithColumns(BucketColumns()),
		table.WithRows(BucketRows(buckets)),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = tuistyles.TableHeaderStyle
	styles.Selected = tuistyles.TableHighlightStyle
	t.SetStyles(styles)
	return t
}
