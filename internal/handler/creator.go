package handler

import (
	"net/http"

	"github.com/osse101/Mivy_Go/internal/creator"
	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/membership"
)

// CreatorHandlers serve creator profiles, the category catalog, and tier listings
type CreatorHandlers struct {
	creators    creator.Service
	memberships membership.Service
}

// NewCreatorHandlers creates creator handlers
func NewCreatorHandlers(creators creator.Service, memberships membership.Service) *CreatorHandlers {
	return &CreatorHandlers{creators: creators, memberships: memberships}
}

// HandleCategories lists the category catalog
// @Summary List categories
// @Tags creators
// @Produce json
// @Success 200 {object} DataResponse{data=[]creator.Category}
// @Security ApiKeyAuth
// @Router /api/v1/categories [get]
func (h *CreatorHandlers) HandleCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: h.creators.Categories()})
	}
}

// HandleBecomeCreator creates the caller's creator profile
// @Summary Become a creator
// @Tags creators
// @Accept json
// @Produce json
// @Param request body creator.CreateInput true "Creator profile"
// @Success 201 {object} DataResponse{data=domain.Creator}
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/creators [post]
func (h *CreatorHandlers) HandleBecomeCreator() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleCreate(w, r, ErrMsgBecomeCreatorFailed, MsgCreatorCreated, h.creators.BecomeCreator)
	}
}

// HandleSearch lists creators in a category
// @Summary Search creators by category
// @Tags creators
// @Produce json
// @Param category query string true "Category name"
// @Success 200 {object} DataResponse{data=[]domain.Creator}
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/creators [get]
func (h *CreatorHandlers) HandleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := GetQueryParam(r, w, "category")
		if !ok {
			return
		}

		creators, err := h.creators.SearchByCategory(r.Context(), category)
		if err != nil {
			respondServiceError(w, r, ErrMsgSearchFailed, err)
			return
		}
		if creators == nil {
			creators = []domain.Creator{}
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: creators})
	}
}

// HandleGet returns one creator
// @Summary Get creator
// @Tags creators
// @Produce json
// @Param id path string true "Creator id"
// @Success 200 {object} DataResponse{data=domain.Creator}
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/creators/{id} [get]
func (h *CreatorHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		c, err := h.creators.GetCreator(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get creator", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: c})
	}
}

// HandleListTiers lists a creator's tiers, cheapest first
// @Summary List creator tiers
// @Tags creators
// @Produce json
// @Param id path string true "Creator id"
// @Success 200 {object} DataResponse{data=[]domain.Tier}
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/creators/{id}/tiers [get]
func (h *CreatorHandlers) HandleListTiers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		if _, err := h.creators.GetCreator(r.Context(), id); err != nil {
			respondServiceError(w, r, ErrMsgListTiersFailed, err)
			return
		}

		tiers, err := h.memberships.ListTiers(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgListTiersFailed, err)
			return
		}
		if tiers == nil {
			tiers = []domain.Tier{}
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: tiers})
	}
}
