package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/domain"
	"github.com/rgehrsitz/autosave/internal/summary"
	"github.com/rgehrsitz/autosave/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(date, amount string) domain.Transaction {
	a := decimal.RequireFromString(amount)
	return domain.Transaction{Date: date, Amount: a, Ceiling: calculation.Ceiling(a), Remanent: calculation.Remanent(a)}
}

func filterReport(t *testing.T) *Report {
	t.Helper()
	res, err := calculation.NewEngine().Filter(context.Background(), domain.Windows{
		Groups: []domain.GroupWindow{{Start: "2023-10-01 00:00:00", End: "2023-10-31 23:59:00"}},
	}, []domain.Transaction{
		txn("2023-10-12 20:15:00", "250"),
		txn("2023-02-28 15:49:00", "375"),
		txn("2023-10-12 20:15:00", "99"),
		txn("2023-03-01 10:00:00", "-5"),
	})
	require.NoError(t, err)
	return NewFilterReport(res)
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{ID: "test-formatter", F: func(r *Report) ([]byte, error) {
		called = true
		return []byte("test output"), nil
	}}

	out, err := f.Format(&Report{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "test-formatter", f.Name())
	assert.Equal(t, []byte("test output"), out)
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "text", "TABLE", "json", "csv"} {
		assert.NotNil(t, GetFormatterByName(name), name)
	}
	assert.Equal(t, "console", GetFormatterByName("text").Name())
	assert.Nil(t, GetFormatterByName("html"))
	assert.Equal(t, []string{"console", "csv", "json", "table", "text"}, AvailableFormatterNames())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "console", NewParseReport([]domain.Transaction{txn("2023-10-12 20:15:00", "250")})))
	assert.Contains(t, buf.String(), "PARSED TRANSACTIONS")
	assert.Contains(t, buf.String(), "300.00")

	err := Write(&buf, "yaml", &Report{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "yaml"`)
}

func TestNewFilterReport(t *testing.T) {
	r := filterReport(t)

	require.Len(t, r.Valid, 2)
	require.Len(t, r.Invalid, 2)
	require.NotNil(t, r.Valid[0].InGroup)
	assert.True(t, *r.Valid[0].InGroup)
	assert.False(t, *r.Valid[1].InGroup)
	assert.Equal(t, validation.MsgDuplicate, r.Invalid[0].Message)
	assert.Equal(t, validation.MsgNegativeAmount, r.Invalid[1].Message)
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(filterReport(t))
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "VALID (2)")
	assert.Contains(t, s, "INVALID (2)")
	assert.Contains(t, s, "[k]")
	assert.Contains(t, s, "Duplicate transaction")
}

func TestConsoleFormatter_Returns(t *testing.T) {
	req := domain.ReturnsRequest{
		Age:  30,
		Wage: decimal.NewFromInt(50000),
		Windows: domain.Windows{
			Groups: []domain.GroupWindow{{Start: "2024-01-01 00:00:00", End: "2024-12-31 23:59:00"}},
		},
		Transactions: []domain.Transaction{{Date: "2024-01-15 10:30:00", Amount: decimal.RequireFromString("150.75")}},
	}
	res, err := calculation.NewEngine().Returns(context.Background(), req, domain.TrackNPS)
	require.NoError(t, err)

	out, err := ConsoleFormatter{}.Format(NewReturnsReport(res))
	require.NoError(t, err)
	assert.Contains(t, string(out), "RETURNS: nps")
	assert.Contains(t, string(out), "Total Ceiling:            ₹200.00")
	assert.Contains(t, string(out), "49.25")
}

func TestJSONFormatter_Split(t *testing.T) {
	out, err := JSONFormatter{}.Format(filterReport(t))
	require.NoError(t, err)

	var decoded struct {
		Valid []struct {
			Date      string `json:"date"`
			InKPeriod bool   `json:"inKPeriod"`
		} `json:"valid"`
		Invalid []struct {
			Message string `json:"message"`
		} `json:"invalid"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Valid, 2)
	assert.True(t, decoded.Valid[0].InKPeriod)
	assert.Equal(t, "Duplicate transaction", decoded.Invalid[0].Message)
}

func TestJSONFormatter_Summary(t *testing.T) {
	s := summary.NewAnalyzer().Analyze(nil)
	out, err := JSONFormatter{Pretty: true}.Format(NewSummaryReport(s))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"investmentReadinessLabel": "No data"`)
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(filterReport(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"valid", "2023-10-12 20:15:00", "250.00", "300.00", "50.00", "true", ""}, records[1])
	assert.Equal(t, "invalid", records[3][0])
	assert.Equal(t, "", records[3][5])
}

func TestCSVFormatter_Parse(t *testing.T) {
	out, err := CSVFormatter{}.Format(NewParseReport([]domain.Transaction{txn("2023-10-12 20:15:00", "250")}))
	require.NoError(t, err)
	assert.Equal(t, "Date,Amount,Ceiling,Remanent\n2023-10-12 20:15:00,250.00,300.00,50.00\n", string(out))
}

func TestWrite_FormatterError(t *testing.T) {
	registry["broken"] = FormatterFunc{ID: "broken", F: func(*Report) ([]byte, error) {
		return nil, errors.New("formatter error")
	}}
	defer delete(registry, "broken")

	err := Write(&bytes.Buffer{}, "broken", &Report{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatter error")
}
