package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Simplici0/clinicprice/internal/pricing"
	"github.com/Simplici0/clinicprice/internal/store"
	"github.com/Simplici0/clinicprice/internal/validate"
)

const maxBodyBytes = 1 << 20

type apiError struct {
	Code   int               `json:"code"`
	Kind   string            `json:"kind,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

type apiResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

func writeRawJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	writeRawJSON(w, status, apiResponse{Status: "ok", Data: data})
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	if status < 400 {
		status = http.StatusInternalServerError
	}
	writeRawJSON(w, status, apiResponse{
		Status:  "error",
		Message: message,
		Error:   &apiError{Code: status, Kind: kind},
	})
}

func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	writeRawJSON(w, http.StatusBadRequest, apiResponse{
		Status:  "error",
		Message: "validation failed",
		Error:   &apiError{Code: http.StatusBadRequest, Kind: "validation", Fields: fields},
	})
}

// statusFor maps engine and store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pricing.ErrUnknownReference):
		return http.StatusConflict
	case errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, pricing.ErrInvalidConfiguration),
		errors.Is(err, pricing.ErrUnsatisfiableMargin),
		errors.Is(err, pricing.ErrDivisionByZero):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		writeError(w, status, "internal", "internal error")
	case http.StatusNotFound:
		writeError(w, status, "not_found", err.Error())
	default:
		writeError(w, status, pricing.ErrorKind(err), err.Error())
	}
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the 400 response itself and reports whether the handler may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", fmt.Sprintf("invalid json body: %v", err))
		return false
	}
	if fields := validate.Struct(dst); fields != nil {
		writeValidationError(w, fields)
		return false
	}
	return true
}
