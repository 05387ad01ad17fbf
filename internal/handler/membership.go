package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/membership"
)

// MembershipHandlers serve tiers and the membership lifecycle
type MembershipHandlers struct {
	svc membership.Service
	now func() time.Time
}

// NewMembershipHandlers creates membership handlers
func NewMembershipHandlers(svc membership.Service) *MembershipHandlers {
	return &MembershipHandlers{svc: svc, now: func() time.Time { return time.Now().UTC() }}
}

// CreateTierRequest defines a tier on the caller's creator profile
type CreateTierRequest struct {
	Name             string          `json:"name" validate:"required,max=64"`
	PriceUSD         decimal.Decimal `json:"price_usd"`
	CanAccessChat    bool            `json:"can_access_chat"`
	ChatRole         string          `json:"chat_role" validate:"chatrole"`
	CanAccessContent bool            `json:"can_access_content"`
}

// ActivateMembershipRequest is a payment confirmation from the payment relay
type ActivateMembershipRequest struct {
	SupporterID string     `json:"supporter_id" validate:"required"`
	TierID      string     `json:"tier_id" validate:"required"`
	TxHash      string     `json:"tx_hash" validate:"txhash"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

// ExpireDueResponse reports a manual sweep
type ExpireDueResponse struct {
	Expired int       `json:"expired"`
	At      time.Time `json:"at"`
}

// HandleCreateTier creates a tier for the caller's creator profile
// @Summary Create tier
// @Tags memberships
// @Accept json
// @Produce json
// @Param request body CreateTierRequest true "Tier definition"
// @Success 201 {object} DataResponse{data=domain.Tier}
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse "Creator profile not found"
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/tiers [post]
func (h *MembershipHandlers) HandleCreateTier() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleCreate(w, r, ErrMsgCreateTierFailed, MsgTierCreated,
			func(ctx context.Context, req CreateTierRequest) (*domain.Tier, error) {
				return h.svc.CreateTier(ctx, membership.CreateTierInput{
					Name:     req.Name,
					PriceUSD: req.PriceUSD,
					Perks: domain.TierPerks{
						CanAccessChat:    req.CanAccessChat,
						ChatRole:         domain.ChatRole(strings.ToLower(req.ChatRole)),
						CanAccessContent: req.CanAccessContent,
					},
				})
			})
	}
}

// HandleActivate records a confirmed payment. Replaying a tx hash returns the
// membership it already produced.
// @Summary Activate membership
// @Tags memberships
// @Accept json
// @Produce json
// @Param request body ActivateMembershipRequest true "Payment confirmation"
// @Success 200 {object} DataResponse{data=domain.Membership}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/memberships/activate [post]
func (h *MembershipHandlers) HandleActivate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ActivateMembershipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Activate membership"); err != nil {
			return
		}

		started := h.now()
		if req.StartedAt != nil {
			started = req.StartedAt.UTC()
		}

		m, err := h.svc.Activate(r.Context(), membership.ActivateInput{
			SupporterID: req.SupporterID,
			TierID:      req.TierID,
			TxHash:      req.TxHash,
			StartedAt:   started,
			ExpiresAt:   req.ExpiresAt.UTC(),
		})
		if err != nil {
			respondServiceError(w, r, ErrMsgActivateFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgMembershipActivated, Data: m})
	}
}

// HandleListMine lists the caller's memberships with their tiers
// @Summary My memberships
// @Tags memberships
// @Produce json
// @Success 200 {object} DataResponse{data=[]domain.MembershipWithTier}
// @Failure 401 {object} ErrorResponse
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/memberships/me [get]
func (h *MembershipHandlers) HandleListMine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := auth.GetAuthUser(r.Context())
		if caller == nil {
			respondError(w, http.StatusUnauthorized, domain.ErrMsgUnauthorized)
			return
		}

		list, err := h.svc.ListSupporterMemberships(r.Context(), caller.ID)
		if err != nil {
			respondServiceError(w, r, ErrMsgListMembershipErr, err)
			return
		}
		if list == nil {
			list = []domain.MembershipWithTier{}
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: list})
	}
}

// HandleExpireDue runs the expiry sweep immediately
// @Summary Expire due memberships
// @Tags admin
// @Produce json
// @Success 200 {object} DataResponse{data=ExpireDueResponse}
// @Security ApiKeyAuth
// @Router /api/v1/admin/memberships/expire-due [post]
func (h *MembershipHandlers) HandleExpireDue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := h.now()
		n, err := h.svc.ExpireDue(r.Context(), now)
		if err != nil {
			respondServiceError(w, r, ErrMsgExpireDueFailed, err)
			return
		}

		logger.FromContext(r.Context()).Info("Manual expiry sweep", "expired", n)
		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgMembershipsExpired,
			Data:    ExpireDueResponse{Expired: n, At: now},
		})
	}
}
