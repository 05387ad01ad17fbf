package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/identity"
	"github.com/osse101/Mivy_Go/internal/logger"
)

// SessionIssuer signs session tokens
type SessionIssuer interface {
	Issue(u auth.User) (*auth.Session, error)
}

// AuthHandlers exchange a verified external identity for a session token.
// The caller is the trusted sign-in front end, authenticated by API key.
type AuthHandlers struct {
	identity identity.Service
	sessions SessionIssuer
}

// NewAuthHandlers creates auth handlers
func NewAuthHandlers(identitySvc identity.Service, sessions SessionIssuer) *AuthHandlers {
	return &AuthHandlers{identity: identitySvc, sessions: sessions}
}

// FarcasterSignInRequest carries the profile the front end read from the hub
type FarcasterSignInRequest struct {
	Fid           int64      `json:"fid" validate:"required,gt=0"`
	Username      string     `json:"username" validate:"required,max=64"`
	PfpURL        string     `json:"pfp_url" validate:"omitempty,url"`
	DisplayName   *string    `json:"display_name,omitempty" validate:"omitempty,max=128"`
	Bio           *string    `json:"bio,omitempty" validate:"omitempty,max=1024"`
	WalletAddress *string    `json:"wallet_address,omitempty" validate:"omitempty,eth_addr"`
	InitializedAt *time.Time `json:"initialized_at,omitempty"`
}

// WalletSignInRequest carries a verified wallet address
type WalletSignInRequest struct {
	Address     string  `json:"address" validate:"required,eth_addr"`
	Username    string  `json:"username,omitempty" validate:"max=64"`
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=128"`
}

// SignInResponse is returned by both sign-in routes
type SignInResponse struct {
	UserID  string        `json:"user_id"`
	Session *auth.Session `json:"session"`
}

// HandleFarcasterSignIn resolves or creates the user for a fid
// @Summary Sign in with Farcaster
// @Description Resolves the user linked to a verified fid, creating it on first sign-in, and issues a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body FarcasterSignInRequest true "Verified farcaster profile"
// @Success 200 {object} DataResponse{data=SignInResponse}
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/auth/farcaster [post]
func (h *AuthHandlers) HandleFarcasterSignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FarcasterSignInRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Farcaster sign-in"); err != nil {
			return
		}

		profile := domain.ProfileFields{
			Username:             req.Username,
			PfpURL:               req.PfpURL,
			DisplayName:          req.DisplayName,
			Bio:                  req.Bio,
			CurrentWalletAddress: req.WalletAddress,
			InitializedAt:        req.InitializedAt,
		}
		h.signIn(w, r, req.Fid, func(ctx context.Context) (string, error) {
			return h.identity.ResolveOrCreateByFid(ctx, req.Fid, profile)
		})
	}
}

// HandleWalletSignIn resolves or creates the user for a wallet address
// @Summary Sign in with a wallet
// @Tags auth
// @Accept json
// @Produce json
// @Param request body WalletSignInRequest true "Verified wallet"
// @Success 200 {object} DataResponse{data=SignInResponse}
// @Failure 400 {object} ValidationErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/auth/wallet [post]
func (h *AuthHandlers) HandleWalletSignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WalletSignInRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Wallet sign-in"); err != nil {
			return
		}

		profile := domain.ProfileFields{Username: req.Username, DisplayName: req.DisplayName}
		h.signIn(w, r, 0, func(ctx context.Context) (string, error) {
			return h.identity.ResolveOrCreateByWallet(ctx, req.Address, profile)
		})
	}
}

func (h *AuthHandlers) signIn(w http.ResponseWriter, r *http.Request, fid int64, resolve func(context.Context) (string, error)) {
	ctx := r.Context()

	userID, err := resolve(ctx)
	if err != nil {
		respondServiceError(w, r, ErrMsgSignInFailed, err)
		return
	}

	user, err := h.identity.GetUser(ctx, userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgSignInFailed, err)
		return
	}

	session, err := h.sessions.Issue(auth.User{
		ID:       user.ID,
		Fid:      fid,
		Username: user.Username,
		Wallet:   user.CurrentWalletAddress,
	})
	if err != nil {
		logger.FromContext(ctx).Error(ErrMsgIssueTokenFail, "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgIssueTokenFail)
		return
	}

	logger.FromContext(ctx).Info("Session issued", "user_id", userID)
	respondJSON(w, http.StatusOK, DataResponse{
		Message: MsgSignedIn,
		Data:    SignInResponse{UserID: userID, Session: session},
	})
}
