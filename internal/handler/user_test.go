package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/domain"
)

func TestHandleGetByFid(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		id := new(MockIdentityService)
		id.On("GetByFid", mock.Anything, int64(42)).Return(&domain.FidUserView{
			Fid: 42, UserID: "u1", Username: "alice", LinkedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}, nil)

		w := httptest.NewRecorder()
		NewUserHandlers(id).HandleGetByFid()(w, newRequest(http.MethodGet, "/api/v1/users/by-fid/42", nil, map[string]string{"fid": "42"}, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	})

	t.Run("Absent user is null data", func(t *testing.T) {
		id := new(MockIdentityService)
		id.On("GetByFid", mock.Anything, int64(9)).Return(nil, nil)

		w := httptest.NewRecorder()
		NewUserHandlers(id).HandleGetByFid()(w, newRequest(http.MethodGet, "/api/v1/users/by-fid/9", nil, map[string]string{"fid": "9"}, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":null}`, w.Body.String())
	})

	for _, raw := range []string{"abc", "0", "-3", ""} {
		t.Run("Invalid fid "+raw, func(t *testing.T) {
			id := new(MockIdentityService)
			w := httptest.NewRecorder()
			NewUserHandlers(id).HandleGetByFid()(w, newRequest(http.MethodGet, "/api/v1/users/by-fid/x", nil, map[string]string{"fid": raw}, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			id.AssertNotCalled(t, "GetByFid", mock.Anything, mock.Anything)
		})
	}

	t.Run("Dangling link", func(t *testing.T) {
		id := new(MockIdentityService)
		id.On("GetByFid", mock.Anything, int64(5)).Return(nil, domain.ErrDataIntegrity)

		w := httptest.NewRecorder()
		NewUserHandlers(id).HandleGetByFid()(w, newRequest(http.MethodGet, "/", nil, map[string]string{"fid": "5"}, nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})
}

func TestHandleGetMe(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewUserHandlers(new(MockIdentityService)).HandleGetMe()(w, newRequest(http.MethodGet, "/api/v1/users/me", nil, nil, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Returns user and accounts", func(t *testing.T) {
		id := new(MockIdentityService)
		id.On("GetUser", mock.Anything, "u1").Return(&domain.User{ID: "u1", Username: "alice"}, nil)
		id.On("ListLinkedAccounts", mock.Anything, "u1").Return([]domain.LinkedAccount{
			{ID: "l1", UserID: "u1", Account: domain.FarcasterAccount{Fid: 42}},
		}, nil)

		w := httptest.NewRecorder()
		NewUserHandlers(id).HandleGetMe()(w, newRequest(http.MethodGet, "/api/v1/users/me", nil, nil, &auth.User{ID: "u1"}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"alice"`)
		assert.Contains(t, w.Body.String(), `"fid":42`)
	})
}

func TestHandleUpdateMe(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		id := new(MockIdentityService)
		bio := "hello"
		id.On("UpdateProfile", mock.Anything, "u1", mock.MatchedBy(func(u domain.ProfileUpdate) bool {
			return u.Bio != nil && *u.Bio == "hello"
		})).Return(&domain.User{ID: "u1", Bio: &bio}, nil)

		w := httptest.NewRecorder()
		NewUserHandlers(id).HandleUpdateMe()(w,
			newRequest(http.MethodPatch, "/api/v1/users/me", map[string]string{"bio": "hello"}, nil, &auth.User{ID: "u1"}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgProfileUpdated)
	})

	t.Run("Invalid pfp url", func(t *testing.T) {
		id := new(MockIdentityService)
		w := httptest.NewRecorder()
		NewUserHandlers(id).HandleUpdateMe()(w,
			newRequest(http.MethodPatch, "/api/v1/users/me", map[string]string{"pfp_url": "::"}, nil, &auth.User{ID: "u1"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		id.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}
