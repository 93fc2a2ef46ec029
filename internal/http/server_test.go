package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/config"
	applog "github.com/rgehrsitz/autosave/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReturnsBody = `{
	"age": 29, "wage": 50000, "inflation": 5.5,
	"q": [{"fixed": 0, "start": "2023-07-01 00:00:00", "end": "2023-07-31 23:59:00"}],
	"p": [{"extra": 25, "start": "2023-10-01 08:00:00", "end": "2023-12-31 19:59:00"}],
	"k": [
		{"start": "2023-03-01 00:00:00", "end": "2023-11-30 23:59:00"},
		{"start": "2023-01-01 00:00:00", "end": "2023-12-31 23:59:00"}
	],
	"transactions": [
		{"date": "2023-10-12 20:15:00", "amount": 250},
		{"date": "2023-02-28 15:49:00", "amount": 375},
		{"date": "2023-07-01 21:59:00", "amount": 620},
		{"date": "2023-12-17 08:09:00", "amount": 480}
	]
}`

func testConfig(rateLimit int) *config.Config {
	return &config.Config{
		Port:            "0",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: time.Second,
		RateLimit:       rateLimit,
	}
}

func newTestServer(t *testing.T, rateLimit int) *Server {
	t.Helper()
	logger := applog.New(applog.Config{Output: io.Discard, Component: applog.ComponentHTTP})
	srv := NewServer(testConfig(rateLimit), NewServices(calculation.NewEngine()), logger, "test")
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(v), rr.Body.String())
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, 0)
	srv.now = func() time.Time { return time.UnixMilli(1700000000000) }

	rr := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp healthResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "UP", resp.Status)
	assert.Equal(t, ServiceName, resp.Service)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, int64(1700000000000), resp.Timestamp)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestParse(t *testing.T) {
	srv := newTestServer(t, 0)
	rr := do(t, srv, http.MethodPost, APIPrefix+"/transactions:parse",
		`{"expenses":[{"timestamp":"2023-10-12 20:15:30","amount":250},{"timestamp":"2023-02-28 15:49","amount":375}]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp parseResponse
	decodeBody(t, rr, &resp)
	require.Len(t, resp.Transactions, 2)
	assert.Equal(t, "2023-10-12 20:15:00", resp.Transactions[0].Date)
	assert.Equal(t, 300.0, resp.Transactions[0].Ceiling)
	assert.Equal(t, 50.0, resp.Transactions[0].Remanent)
	assert.Equal(t, 25.0, resp.Transactions[1].Remanent)
	assert.Contains(t, rr.Body.String(), `"amount":250`)
}

func TestParse_MalformedTimestampIsBadRequest(t *testing.T) {
	srv := newTestServer(t, 0)
	rr := do(t, srv, http.MethodPost, APIPrefix+"/transactions:parse",
		`{"expenses":[{"timestamp":"12/10/2023","amount":250}]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp errorResponse
	decodeBody(t, rr, &resp)
	assert.Contains(t, resp.Error, "12/10/2023")
}

func TestDecodeErrorIsBadRequest(t *testing.T) {
	srv := newTestServer(t, 0)
	rr := do(t, srv, http.MethodPost, APIPrefix+"/transactions:validator", `{"wage":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestValidator(t *testing.T) {
	srv := newTestServer(t, 0)
	rr := do(t, srv, http.MethodPost, APIPrefix+"/transactions:validator", `{"wage":50000,"transactions":[
		{"date":"2023-01-01 10:00:00","amount":120,"ceiling":200,"remanent":80},
		{"date":"2023-01-02 10:00:00","amount":-5,"ceiling":0,"remanent":5},
		{"date":"2023-01-01 10:00:00","amount":60,"ceiling":100,"remanent":40},
		{"date":"2023-01-03 10:00:00","amount":600000,"ceiling":600000,"remanent":0}
	]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp splitResponse
	decodeBody(t, rr, &resp)
	require.Len(t, resp.Valid, 1)
	require.Len(t, resp.Invalid, 3)
	assert.Empty(t, resp.Valid[0].Message)
	assert.Equal(t, "Negative amounts are not allowed", resp.Invalid[0].Message)
	assert.Equal(t, "Duplicate transaction", resp.Invalid[1].Message)
	assert.Equal(t, "Amount exceeds maximum allowed value", resp.Invalid[2].Message)
}

func TestFilter(t *testing.T) {
	srv := newTestServer(t, 0)
	rr := do(t, srv, http.MethodPost, APIPrefix+"/transactions:filter", `{
		"q":[{"fixed":0,"start":"2023-07-01 00:00:00","end":"2023-07-31 23:59:00"}],
		"p":[{"extra":25,"start":"2023-10-01 08:00:00","end":"2023-12-31 19:59:00"}],
		"k":[{"start":"2023-03-01 00:00:00","end":"2023-11-30 23:59:00"}],
		"wage":50000,
		"transactions":[
			{"date":"2023-10-12 20:15:00","amount":250},
			{"date":"2023-02-28 15:49:00","amount":375},
			{"date":"2023-02-28 15:49:00","amount":10},
			{"date":"2023-07-01 21:59:00","amount":-620}
		]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp splitResponse
	decodeBody(t, rr, &resp)
	require.Len(t, resp.Valid, 2)
	require.Len(t, resp.Invalid, 2)

	assert.Equal(t, 75.0, resp.Valid[0].Remanent)
	require.NotNil(t, resp.Valid[0].InKPeriod)
	assert.True(t, *resp.Valid[0].InKPeriod)
	require.NotNil(t, resp.Valid[1].InKPeriod)
	assert.False(t, *resp.Valid[1].InKPeriod)

	assert.Equal(t, "Duplicate transaction", resp.Invalid[0].Message)
	assert.Equal(t, "Negative amounts are not allowed", resp.Invalid[1].Message)
	assert.Nil(t, resp.Invalid[0].InKPeriod)
}

func TestSummary(t *testing.T) {
	srv := newTestServer(t, 0)
	rr := do(t, srv, http.MethodPost, APIPrefix+"/transactions:summary", `{"wage":50000,"transactions":[]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp summaryResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, 0, resp.ReadinessScore)
	assert.Equal(t, "No data", resp.ReadinessLabel)
	assert.Len(t, resp.Tips, 1)
}

func TestReturns(t *testing.T) {
	srv := newTestServer(t, 0)

	for _, path := range []string{"/returns:nps", "/returns:index"} {
		t.Run(path, func(t *testing.T) {
			rr := do(t, srv, http.MethodPost, APIPrefix+path, sampleReturnsBody)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var resp returnsResponse
			decodeBody(t, rr, &resp)
			assert.Equal(t, 1725.0, resp.TotalTransactionAmount)
			assert.Equal(t, 1900.0, resp.TotalCeiling)
			require.Len(t, resp.SavingsByDates, 2)
			assert.Equal(t, 75.0, resp.SavingsByDates[0].Amount)
			assert.Equal(t, 145.0, resp.SavingsByDates[1].Amount)
			assert.Positive(t, resp.SavingsByDates[1].Profit)
			assert.Contains(t, rr.Body.String(), `"taxBenefit":0`)
		})
	}
}

func TestReturns_InvalidProfileIsBadRequest(t *testing.T) {
	srv := newTestServer(t, 0)
	rr := do(t, srv, http.MethodPost, APIPrefix+"/returns:nps", `{"age":-1,"wage":1000,"inflation":5,"transactions":[]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp errorResponse
	decodeBody(t, rr, &resp)
	assert.Contains(t, resp.Error, "age")
}

func TestCompare(t *testing.T) {
	srv := newTestServer(t, 0)
	rr := do(t, srv, http.MethodPost, APIPrefix+"/returns:compare", sampleReturnsBody)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp compareResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, 220.0, resp.TotalInvestable)
	assert.Len(t, resp.NpsSavings, 2)
	assert.Len(t, resp.IndexSavings, 2)
	assert.Equal(t, "Aggressive", resp.RiskProfile)
	assert.Equal(t, 30, resp.SuggestedNpsPercent)
	assert.Equal(t, 70, resp.SuggestedIndexPercent)
	assert.Greater(t, resp.IndexEffectiveGain, resp.NpsEffectiveGain)
	assert.Equal(t, resp.IndexTotalProfit, resp.IndexEffectiveGain)
	assert.NotEmpty(t, resp.Reasoning)
}

func TestPerformance(t *testing.T) {
	srv := newTestServer(t, 0)
	rr := do(t, srv, http.MethodGet, APIPrefix+"/performance", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	decodeBody(t, rr, &resp)
	assert.Contains(t, resp, "time")
	assert.Contains(t, resp, "memory")
	assert.Contains(t, resp, "threads")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, 0)
	rr := do(t, srv, http.MethodGet, APIPrefix+"/transactions:parse", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/health", "").Code)
	}
	rr := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))

	var resp errorResponse
	decodeBody(t, rr, &resp)
	assert.NotEmpty(t, resp.Error)
}

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{name: "direct", remote: "203.0.113.7:1234", want: "203.0.113.7"},
		{name: "untrusted proxy header ignored", remote: "203.0.113.7:1234", xff: "1.2.3.4", want: "203.0.113.7"},
		{name: "trusted proxy", remote: "10.0.0.2:80", xff: "1.2.3.4, 10.0.0.9", want: "1.2.3.4"},
		{name: "garbage header", remote: "10.0.0.2:80", xff: "nope", want: "10.0.0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, extractClientIP(req))
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(&requestError{err: io.EOF}))
	assert.Equal(t, http.StatusBadRequest, statusFor(&calculation.MalformedTimestampError{Value: "x"}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(calculation.ErrUnknownTrack))
}
