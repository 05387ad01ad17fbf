package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/Mivy_Go/internal/logger"
)

// MaxRequestBodyBytes bounds every decoded JSON body
const MaxRequestBodyBytes = 1 << 20

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req CreateTierRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Create tier"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam retrieves a required query parameter from the request.
// If the parameter is missing or empty, it writes an error response and returns false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter, falling back to defaultValue
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetPathParam retrieves a chi URL parameter, writing a 400 when it is empty
func GetPathParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := chi.URLParam(r, paramName)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, paramName))
		return "", false
	}
	return value, true
}

// GetFidParam parses the {fid} URL parameter as a positive integer
func GetFidParam(r *http.Request, w http.ResponseWriter) (int64, bool) {
	fid, err := strconv.ParseInt(chi.URLParam(r, "fid"), 10, 64)
	if err != nil || fid <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidFidParam)
		return 0, false
	}
	return fid, true
}

// GetLimitParam parses an optional non-negative limit query parameter.
// Zero means no limit.
func GetLimitParam(r *http.Request, w http.ResponseWriter) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	return limit, true
}

// LogRequestFields logs common request fields at debug level
func LogRequestFields(log *slog.Logger, keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		log.Warn("LogRequestFields called with odd number of arguments")
		return
	}
	log.Debug("Request details", keyvals...)
}

// handleCreate decodes and validates REQ, runs action, and responds 201 with
// the wrapped result. Service errors are mapped by respondServiceError.
func handleCreate[REQ any, RES any](
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	message string,
	action func(context.Context, REQ) (RES, error),
) {
	var req REQ
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}

	res, err := action(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: message, Data: res})
}
