package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped status
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err, "status", status)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgForbiddenError     = "You do not have access to that"
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."

	// Identity messages
	ErrMsgUserNotFoundError   = "User not found"
	ErrMsgInvalidFidError     = "Invalid farcaster id"
	ErrMsgInvalidAddressError = "Invalid wallet address"

	// Creator messages
	ErrMsgCreatorNotFoundError = "Creator not found"
	ErrMsgCreatorExistsError   = "You already have a creator profile"
	ErrMsgUnknownCategoryError = "Unknown category"

	// Membership messages
	ErrMsgTierNotFoundError       = "Tier not found"
	ErrMsgMembershipNotFoundError = "Membership not found"
	ErrMsgMissingTxHashError      = "Transaction hash is required"
	ErrMsgInvalidExpiryError      = "Expiry must be after start"
	ErrMsgInvalidPriceError       = "Price must not be negative"
	ErrMsgDuplicateTxError        = "Transaction was already used for another membership"

	// Post messages
	ErrMsgPostNotFoundError     = "Post not found"
	ErrMsgContentLockedError    = "This post requires an active membership"
	ErrMsgUnsupportedTypeError  = "Only text posts are supported"
	ErrMsgEmptyPostContentError = "Post content is required"

	// Storage messages
	ErrMsgUploadRejectedError = "Storage gateway rejected the upload"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	// 401
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, domain.ErrMsgUnauthorized

	// 403
	case errors.Is(err, domain.ErrCreatorProfileNotFound):
		return http.StatusForbidden, domain.ErrMsgCreatorProfileNotFound
	case errors.Is(err, domain.ErrContentLocked):
		return http.StatusForbidden, ErrMsgContentLockedError
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrMsgForbiddenError

	// 404
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrCreatorNotFound):
		return http.StatusNotFound, ErrMsgCreatorNotFoundError
	case errors.Is(err, domain.ErrTierNotFound):
		return http.StatusNotFound, ErrMsgTierNotFoundError
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, ErrMsgPostNotFoundError
	case errors.Is(err, domain.ErrMembershipNotFound):
		return http.StatusNotFound, ErrMsgMembershipNotFoundError

	// 409
	case errors.Is(err, domain.ErrCreatorAlreadyExists):
		return http.StatusConflict, ErrMsgCreatorExistsError
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return http.StatusConflict, ErrMsgDuplicateTxError

	// 400
	case errors.Is(err, domain.ErrMissingTxHash):
		return http.StatusBadRequest, ErrMsgMissingTxHashError
	case errors.Is(err, domain.ErrInvalidExpiry):
		return http.StatusBadRequest, ErrMsgInvalidExpiryError
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, ErrMsgInvalidPriceError
	case errors.Is(err, domain.ErrUnknownCategory):
		return http.StatusBadRequest, ErrMsgUnknownCategoryError
	case errors.Is(err, domain.ErrEmptyContent):
		return http.StatusBadRequest, domain.ErrMsgEmptyContent
	case errors.Is(err, domain.ErrEmptyPostContent):
		return http.StatusBadRequest, ErrMsgEmptyPostContentError
	case errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusBadRequest, ErrMsgUnsupportedTypeError
	case errors.Is(err, domain.ErrInvalidFid):
		return http.StatusBadRequest, ErrMsgInvalidFidError
	case errors.Is(err, domain.ErrInvalidAddress):
		return http.StatusBadRequest, ErrMsgInvalidAddressError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary

	// Upstream storage
	case errors.Is(err, domain.ErrStorageUploadRejected):
		return http.StatusBadGateway, ErrMsgUploadRejectedError
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrStorageNotConfigured):
		return http.StatusInternalServerError, domain.ErrMsgStorageNotConfigured

	// 500
	case errors.Is(err, domain.ErrDataIntegrity):
		return http.StatusInternalServerError, domain.ErrMsgDataIntegrity
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
