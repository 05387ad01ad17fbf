package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/creator"
	"github.com/osse101/Mivy_Go/internal/domain"
)

func TestHandleCategories(t *testing.T) {
	creators := new(MockCreatorService)
	creators.On("Categories").Return([]creator.Category{{Name: "Art", Description: "Visual art"}})

	w := httptest.NewRecorder()
	NewCreatorHandlers(creators, new(MockMembershipService)).HandleCategories()(w, newRequest(http.MethodGet, "/api/v1/categories", nil, nil, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Art"`)
}

func TestHandleBecomeCreator(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{"Success", nil, http.StatusCreated, MsgCreatorCreated},
		{"Already a creator", domain.ErrCreatorAlreadyExists, http.StatusConflict, ErrMsgCreatorExistsError},
		{"Unknown category", fmt.Errorf("%w: %q", domain.ErrUnknownCategory, "x"), http.StatusBadRequest, ErrMsgUnknownCategoryError},
		{"Anonymous", domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creators := new(MockCreatorService)
			call := creators.On("BecomeCreator", mock.Anything, mock.MatchedBy(func(in creator.CreateInput) bool {
				return in.Bio == "I paint" && len(in.Categories) == 1
			}))
			if tt.serviceErr != nil {
				call.Return(nil, tt.serviceErr)
			} else {
				call.Return(&domain.Creator{ID: "c1", UserID: "u1", Bio: "I paint"}, nil)
			}

			body := creator.CreateInput{Bio: "I paint", Categories: []string{"Art"}}
			w := httptest.NewRecorder()
			NewCreatorHandlers(creators, new(MockMembershipService)).HandleBecomeCreator()(w,
				newRequest(http.MethodPost, "/api/v1/creators", body, nil, &auth.User{ID: "u1"}))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleSearchCreators(t *testing.T) {
	t.Run("Missing category", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewCreatorHandlers(new(MockCreatorService), nil).HandleSearch()(w, newRequest(http.MethodGet, "/api/v1/creators", nil, nil, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing category query parameter")
	})

	t.Run("Empty result is an empty list", func(t *testing.T) {
		creators := new(MockCreatorService)
		creators.On("SearchByCategory", mock.Anything, "music").Return(nil, nil)

		w := httptest.NewRecorder()
		NewCreatorHandlers(creators, nil).HandleSearch()(w, newRequest(http.MethodGet, "/api/v1/creators?category=music", nil, nil, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})
}

func TestHandleGetCreator_NotFound(t *testing.T) {
	creators := new(MockCreatorService)
	creators.On("GetCreator", mock.Anything, "missing").Return(nil, domain.ErrCreatorNotFound)

	w := httptest.NewRecorder()
	NewCreatorHandlers(creators, nil).HandleGet()(w, newRequest(http.MethodGet, "/", nil, map[string]string{"id": "missing"}, nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleListTiers(t *testing.T) {
	t.Run("Lists tiers of an existing creator", func(t *testing.T) {
		creators := new(MockCreatorService)
		memberships := new(MockMembershipService)
		creators.On("GetCreator", mock.Anything, "c1").Return(&domain.Creator{ID: "c1"}, nil)
		memberships.On("ListTiers", mock.Anything, "c1").Return([]domain.Tier{
			{ID: "t1", CreatorID: "c1", Name: "Fan", PriceUSD: decimal.RequireFromString("5")},
		}, nil)

		w := httptest.NewRecorder()
		NewCreatorHandlers(creators, memberships).HandleListTiers()(w, newRequest(http.MethodGet, "/", nil, map[string]string{"id": "c1"}, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Fan"`)
	})

	t.Run("Unknown creator", func(t *testing.T) {
		creators := new(MockCreatorService)
		memberships := new(MockMembershipService)
		creators.On("GetCreator", mock.Anything, "nope").Return(nil, domain.ErrCreatorNotFound)

		w := httptest.NewRecorder()
		NewCreatorHandlers(creators, memberships).HandleListTiers()(w, newRequest(http.MethodGet, "/", nil, map[string]string{"id": "nope"}, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		memberships.AssertNotCalled(t, "ListTiers", mock.Anything, mock.Anything)
	})
}
