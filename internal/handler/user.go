package handler

import (
	"net/http"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/identity"
)

// UserHandlers serve user profiles
type UserHandlers struct {
	identity identity.Service
}

// NewUserHandlers creates user handlers
func NewUserHandlers(identitySvc identity.Service) *UserHandlers {
	return &UserHandlers{identity: identitySvc}
}

// MeResponse is the signed-in user with their linked accounts
type MeResponse struct {
	User     *domain.User           `json:"user"`
	Accounts []domain.LinkedAccount `json:"accounts"`
}

// HandleGetByFid returns the user linked to a fid, or null data when none is
// @Summary Get user by fid
// @Tags users
// @Produce json
// @Param fid path int true "Farcaster id"
// @Success 200 {object} DataResponse{data=domain.FidUserView}
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/by-fid/{fid} [get]
func (h *UserHandlers) HandleGetByFid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fid, ok := GetFidParam(r, w)
		if !ok {
			return
		}

		view, err := h.identity.GetByFid(r.Context(), fid)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetUserFailed, err)
			return
		}

		// Absent users are data, not an error
		respondJSON(w, http.StatusOK, DataResponse{Data: view})
	}
}

// HandleGetMe returns the signed-in user
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} DataResponse{data=MeResponse}
// @Failure 401 {object} ErrorResponse
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/users/me [get]
func (h *UserHandlers) HandleGetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := auth.GetAuthUser(r.Context())
		if caller == nil {
			respondError(w, http.StatusUnauthorized, domain.ErrMsgUnauthorized)
			return
		}

		user, err := h.identity.GetUser(r.Context(), caller.ID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetUserFailed, err)
			return
		}
		accounts, err := h.identity.ListLinkedAccounts(r.Context(), caller.ID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetUserFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: MeResponse{User: user, Accounts: accounts}})
	}
}

// HandleUpdateMe applies a partial profile edit
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Param request body domain.ProfileUpdate true "Fields to change"
// @Success 200 {object} DataResponse{data=domain.User}
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/users/me [patch]
func (h *UserHandlers) HandleUpdateMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := auth.GetAuthUser(r.Context())
		if caller == nil {
			respondError(w, http.StatusUnauthorized, domain.ErrMsgUnauthorized)
			return
		}

		var req domain.ProfileUpdate
		if err := DecodeAndValidateRequest(r, w, &req, "Update profile"); err != nil {
			return
		}

		user, err := h.identity.UpdateProfile(r.Context(), caller.ID, req)
		if err != nil {
			respondServiceError(w, r, ErrMsgUpdateUserFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgProfileUpdated, Data: user})
	}
}
