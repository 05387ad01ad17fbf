package handler

import (
	"net/http"

	"github.com/osse101/Mivy_Go/internal/notification"
)

// NotificationHandlers expose the mini-app notification details store
type NotificationHandlers struct {
	store notification.Store
}

// NewNotificationHandlers creates notification handlers
func NewNotificationHandlers(store notification.Store) *NotificationHandlers {
	return &NotificationHandlers{store: store}
}

// HandleGet returns the details stored for a fid, or null data when none are
// @Summary Get notification details
// @Tags notifications
// @Produce json
// @Param fid path int true "Farcaster id"
// @Success 200 {object} DataResponse{data=notification.Details}
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/notifications/{fid} [get]
func (h *NotificationHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fid, ok := GetFidParam(r, w)
		if !ok {
			return
		}

		details, err := h.store.Get(r.Context(), fid)
		if err != nil {
			respondServiceError(w, r, ErrMsgNotificationFailed, err)
			return
		}
		if details == nil {
			respondJSON(w, http.StatusOK, DataResponse{Message: MsgNoNotificationsForUser, Data: nil})
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: details})
	}
}

// HandlePut stores or replaces the details for a fid
// @Summary Save notification details
// @Tags notifications
// @Accept json
// @Produce json
// @Param fid path int true "Farcaster id"
// @Param request body notification.Details true "Endpoint and token"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ValidationErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/notifications/{fid} [put]
func (h *NotificationHandlers) HandlePut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fid, ok := GetFidParam(r, w)
		if !ok {
			return
		}

		var req notification.Details
		if err := DecodeAndValidateRequest(r, w, &req, "Save notification details"); err != nil {
			return
		}

		if err := h.store.Set(r.Context(), fid, req); err != nil {
			respondServiceError(w, r, ErrMsgNotificationFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNotificationSaved})
	}
}

// HandleDelete removes the details for a fid
// @Summary Delete notification details
// @Tags notifications
// @Produce json
// @Param fid path int true "Farcaster id"
// @Success 200 {object} SuccessResponse
// @Security ApiKeyAuth
// @Router /api/v1/notifications/{fid} [delete]
func (h *NotificationHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fid, ok := GetFidParam(r, w)
		if !ok {
			return
		}

		if err := h.store.Delete(r.Context(), fid); err != nil {
			respondServiceError(w, r, ErrMsgNotificationFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNotificationDeleted})
	}
}

// HandleList returns every stored entry, ordered by fid
// @Summary List notification details
// @Tags notifications
// @Produce json
// @Success 200 {object} DataResponse{data=[]notification.Entry}
// @Security ApiKeyAuth
// @Router /api/v1/notifications [get]
func (h *NotificationHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.store.List(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgNotificationFailed, err)
			return
		}
		if entries == nil {
			entries = []notification.Entry{}
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}
