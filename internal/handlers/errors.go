package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopwise/backend/internal/config"
	"github.com/shopwise/backend/internal/models"
	"github.com/shopwise/backend/internal/services"
)

const maxBodyBytes = 10 << 10

// errorStatuses maps domain errors to HTTP statuses. Order matters only for
// errors that wrap more than one sentinel.
var errorStatuses = []struct {
	err    error
	status int
}{
	{models.ErrValidation, http.StatusBadRequest},
	{models.ErrInvalidCredentials, http.StatusUnauthorized},
	{models.ErrPasswordResetRequired, http.StatusUnauthorized},
	{models.ErrUnauthorized, http.StatusUnauthorized},
	{models.ErrNotConfirmed, http.StatusUnauthorized},
	{models.ErrSecondFactorRequired, http.StatusUnauthorized},
	{models.ErrDuplicateEmail, http.StatusConflict},
	{models.ErrDuplicateProduct, http.StatusConflict},
	{models.ErrAlreadyVerified, http.StatusConflict},
	{models.ErrNotFound, http.StatusNotFound},
	{models.ErrInvalidToken, http.StatusBadRequest},
	{models.ErrExpired, http.StatusBadRequest},
	{models.ErrSamePassword, http.StatusBadRequest},
	{models.ErrInvalidCode, http.StatusBadRequest},
	{models.ErrCooldownActive, http.StatusTooManyRequests},
	{models.ErrGatewayUnavailable, http.StatusBadGateway},
	{models.ErrMailUnavailable, http.StatusBadGateway},
}

// writeError converts err into the JSON error response. Validation and
// not-found errors keep their full text; every other known error is reported
// with its sentinel message so wrapped provider details stay in the log.
func writeError(w http.ResponseWriter, err error) {
	for _, e := range errorStatuses {
		if !errors.Is(err, e.err) {
			continue
		}

		var fieldErrs validator.ValidationErrors
		switch {
		case errors.As(err, &fieldErrs):
			services.SendErrorResponse(w, "Validation failed", e.status, err)
		case e.err == models.ErrValidation || e.err == models.ErrNotFound:
			services.SendErrorResponse(w, err.Error(), e.status, nil)
		default:
			if e.status >= http.StatusInternalServerError {
				log.Printf("[HTTP] upstream failure: %v", err)
			}
			services.SendErrorResponse(w, e.err.Error(), e.status, nil)
		}
		return
	}

	log.Printf("[HTTP] internal error: %v", err)
	if config.IsDevelopment() {
		services.SendDebugErrorResponse(w, "something went wrong", http.StatusInternalServerError, err)
		return
	}
	services.SendErrorResponse(w, "something went wrong", http.StatusInternalServerError, nil)
}

// decodeJSON reads a single JSON object into dst. It writes the error
// response itself and returns false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, tag string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		log.Printf("[%s] Decode error: %v", tag, err)
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		log.Printf("[%s] Multiple JSON objects detected", tag)
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
