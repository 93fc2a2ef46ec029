package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/config"
	"github.com/rgehrsitz/autosave/internal/domain"
	applog "github.com/rgehrsitz/autosave/internal/log"
)

// requestError marks a body that could not be decoded
type requestError struct {
	err error
}

func (e *requestError) Error() string { return "invalid request body: " + e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return &requestError{err: err}
	}
	return nil
}

// statusFor maps input problems to 400 and everything else to 500
func statusFor(err error) int {
	var reqErr *requestError
	var valErrs config.ValidationErrors
	switch {
	case errors.As(err, &reqErr),
		errors.As(err, &valErrs),
		errors.Is(err, calculation.ErrMalformedTimestamp):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	logger := applog.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", applog.FieldOperation, op, applog.FieldError, err.Error())
	} else {
		logger.WarnContext(r.Context(), "request rejected", applog.FieldOperation, op, applog.FieldError, err.Error())
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "UP",
		Service:   ServiceName,
		Version:   s.version,
		Timestamp: s.now().UnixMilli(),
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, applog.OpParse, err)
		return
	}

	txns, err := s.services.Engine.Parse(r.Context(), req.Expenses)
	if err != nil {
		s.writeError(w, r, applog.OpParse, err)
		return
	}
	writeJSON(w, http.StatusOK, newParseResponse(txns))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req transactionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, applog.OpValidate, err)
		return
	}
	writeJSON(w, http.StatusOK, newValidationResponse(s.services.Validator.Validate(req.Wage, req.Transactions)))
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, applog.OpFilter, err)
		return
	}

	res, err := s.services.Engine.Filter(r.Context(), req.Windows, req.Transactions)
	if err != nil {
		s.writeError(w, r, applog.OpFilter, err)
		return
	}
	writeJSON(w, http.StatusOK, newFilterResponse(res))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req transactionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, applog.OpSummary, err)
		return
	}
	writeJSON(w, http.StatusOK, newSummaryResponse(s.services.Analyzer.Analyze(req.Transactions)))
}

func (s *Server) decodeReturnsRequest(w http.ResponseWriter, r *http.Request) (*domain.ReturnsRequest, error) {
	var req domain.ReturnsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}
	if err := s.services.Input.ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Server) handleReturns(track string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := s.decodeReturnsRequest(w, r)
		if err != nil {
			s.writeError(w, r, applog.OpReturns, err)
			return
		}

		res, err := s.services.Engine.Returns(r.Context(), *req, track)
		if err != nil {
			s.writeError(w, r, applog.OpReturns, fmt.Errorf("%s returns: %w", track, err))
			return
		}
		writeJSON(w, http.StatusOK, newReturnsResponse(res))
	}
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeReturnsRequest(w, r)
	if err != nil {
		s.writeError(w, r, applog.OpCompare, err)
		return
	}

	set, err := s.services.Compare.Compare(r.Context(), *req)
	if err != nil {
		s.writeError(w, r, applog.OpCompare, err)
		return
	}
	writeJSON(w, http.StatusOK, newCompareResponse(set))
}

func (s *Server) handlePerformance(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.services.Reporter.Snapshot())
}
