package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/domain"
)

const testWallet = "0x52908400098527886E0F7030069857D2E4169EE7"

func TestHandleFarcasterSignIn(t *testing.T) {
	session := &auth.Session{Token: "tok", ExpiresAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), TokenType: "Bearer"}

	tests := []struct {
		name           string
		body           interface{}
		setup          func(*MockIdentityService, *MockSessionIssuer)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success - issues session for resolved user",
			body: FarcasterSignInRequest{Fid: 42, Username: "alice", PfpURL: "https://img.example/a.png"},
			setup: func(id *MockIdentityService, s *MockSessionIssuer) {
				id.On("ResolveOrCreateByFid", mock.Anything, int64(42), mock.MatchedBy(func(p domain.ProfileFields) bool {
					return p.Username == "alice" && p.PfpURL == "https://img.example/a.png"
				})).Return("u1", nil)
				id.On("GetUser", mock.Anything, "u1").Return(&domain.User{ID: "u1", Username: "alice"}, nil)
				s.On("Issue", auth.User{ID: "u1", Fid: 42, Username: "alice"}).Return(session, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"tok"`,
		},
		{
			name:           "Invalid Request - missing fid",
			body:           FarcasterSignInRequest{Username: "alice"},
			setup:          func(*MockIdentityService, *MockSessionIssuer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"fid":"This field is required"`,
		},
		{
			name:           "Invalid Request - malformed JSON",
			body:           "{not json",
			setup:          func(*MockIdentityService, *MockSessionIssuer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Data integrity - dangling link",
			body: FarcasterSignInRequest{Fid: 7, Username: "bob"},
			setup: func(id *MockIdentityService, s *MockSessionIssuer) {
				id.On("ResolveOrCreateByFid", mock.Anything, int64(7), mock.Anything).Return("", domain.ErrDataIntegrity)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "User not found",
		},
		{
			name: "Token signing fails",
			body: FarcasterSignInRequest{Fid: 42, Username: "alice"},
			setup: func(id *MockIdentityService, s *MockSessionIssuer) {
				id.On("ResolveOrCreateByFid", mock.Anything, int64(42), mock.Anything).Return("u1", nil)
				id.On("GetUser", mock.Anything, "u1").Return(&domain.User{ID: "u1", Username: "alice"}, nil)
				s.On("Issue", mock.Anything).Return(nil, errors.New("sign failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgIssueTokenFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := new(MockIdentityService)
			sessions := new(MockSessionIssuer)
			tt.setup(id, sessions)
			h := NewAuthHandlers(id, sessions)

			w := httptest.NewRecorder()
			h.HandleFarcasterSignIn()(w, newRequest(http.MethodPost, "/api/v1/auth/farcaster", tt.body, nil, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			id.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestHandleWalletSignIn(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		id := new(MockIdentityService)
		sessions := new(MockSessionIssuer)
		wallet := testWallet
		id.On("ResolveOrCreateByWallet", mock.Anything, testWallet, mock.Anything).Return("u2", nil)
		id.On("GetUser", mock.Anything, "u2").Return(&domain.User{ID: "u2", Username: testWallet, CurrentWalletAddress: &wallet}, nil)
		sessions.On("Issue", mock.MatchedBy(func(u auth.User) bool {
			return u.ID == "u2" && u.Wallet != nil && *u.Wallet == testWallet
		})).Return(&auth.Session{Token: "wtok"}, nil)

		w := httptest.NewRecorder()
		NewAuthHandlers(id, sessions).HandleWalletSignIn()(w,
			newRequest(http.MethodPost, "/api/v1/auth/wallet", WalletSignInRequest{Address: testWallet}, nil, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"u2"`)
		assert.Contains(t, w.Body.String(), `"token":"wtok"`)
	})

	t.Run("Invalid address", func(t *testing.T) {
		id := new(MockIdentityService)
		w := httptest.NewRecorder()
		NewAuthHandlers(id, new(MockSessionIssuer)).HandleWalletSignIn()(w,
			newRequest(http.MethodPost, "/api/v1/auth/wallet", WalletSignInRequest{Address: "nope"}, nil, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		id.AssertNotCalled(t, "ResolveOrCreateByWallet", mock.Anything, mock.Anything, mock.Anything)
	})
}
