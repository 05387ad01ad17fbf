package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/creator"
	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/feed"
	"github.com/osse101/Mivy_Go/internal/interaction"
	"github.com/osse101/Mivy_Go/internal/membership"
	"github.com/osse101/Mivy_Go/internal/post"
	"github.com/osse101/Mivy_Go/internal/storage"
)

// ============================================================================
// REQUEST HELPERS
// ============================================================================

// newRequest builds a request with chi URL params and an optional session user
func newRequest(method, target string, body interface{}, params map[string]string, user *auth.User) *http.Request {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, target, &buf)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if user != nil {
		ctx = auth.WithUser(ctx, user)
	}
	return req.WithContext(ctx)
}

// ============================================================================
// MOCKS
// ============================================================================

type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) ResolveOrCreateByFid(ctx context.Context, fid int64, profile domain.ProfileFields) (string, error) {
	args := m.Called(ctx, fid, profile)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityService) ResolveOrCreateByWallet(ctx context.Context, address string, profile domain.ProfileFields) (string, error) {
	args := m.Called(ctx, address, profile)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityService) GetByFid(ctx context.Context, fid int64) (*domain.FidUserView, error) {
	args := m.Called(ctx, fid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FidUserView), args.Error(1)
}

func (m *MockIdentityService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockIdentityService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockIdentityService) ListLinkedAccounts(ctx context.Context, userID string) ([]domain.LinkedAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkedAccount), args.Error(1)
}

type MockSessionIssuer struct {
	mock.Mock
}

func (m *MockSessionIssuer) Issue(u auth.User) (*auth.Session, error) {
	args := m.Called(u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

type MockCreatorService struct {
	mock.Mock
}

func (m *MockCreatorService) BecomeCreator(ctx context.Context, input creator.CreateInput) (*domain.Creator, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorService) GetCreator(ctx context.Context, creatorID string) (*domain.Creator, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorService) GetCreatorByUser(ctx context.Context, userID string) (*domain.Creator, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorService) SearchByCategory(ctx context.Context, category string) ([]domain.Creator, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Creator), args.Error(1)
}

func (m *MockCreatorService) Categories() []creator.Category {
	args := m.Called()
	return args.Get(0).([]creator.Category)
}

func (m *MockCreatorService) AdjustPatrons(ctx context.Context, creatorID string, delta int64) error {
	return m.Called(ctx, creatorID, delta).Error(0)
}

func (m *MockCreatorService) AddVolume(ctx context.Context, creatorID string, amount decimal.Decimal) error {
	return m.Called(ctx, creatorID, amount).Error(0)
}

type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) CreateTier(ctx context.Context, input membership.CreateTierInput) (*domain.Tier, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tier), args.Error(1)
}

func (m *MockMembershipService) GetTier(ctx context.Context, tierID string) (*domain.Tier, error) {
	args := m.Called(ctx, tierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tier), args.Error(1)
}

func (m *MockMembershipService) ListTiers(ctx context.Context, creatorID string) ([]domain.Tier, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tier), args.Error(1)
}

func (m *MockMembershipService) Activate(ctx context.Context, input membership.ActivateInput) (*domain.Membership, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipService) Expire(ctx context.Context, membershipID string, at time.Time) error {
	return m.Called(ctx, membershipID, at).Error(0)
}

func (m *MockMembershipService) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockMembershipService) HasActiveMembership(ctx context.Context, viewerID, creatorID, requiredTierID string) (bool, error) {
	args := m.Called(ctx, viewerID, creatorID, requiredTierID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipService) ListSupporterMemberships(ctx context.Context, supporterID string) ([]domain.MembershipWithTier, error) {
	args := m.Called(ctx, supporterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MembershipWithTier), args.Error(1)
}

func (m *MockMembershipService) SetExpiryQueue(q membership.ExpiryQueue) {
	m.Called(q)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, input post.CreateInput) (*domain.Post, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) ListFeed(ctx context.Context, viewerID string, q feed.Query) ([]domain.FeedPost, error) {
	args := m.Called(ctx, viewerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedPost), args.Error(1)
}

func (m *MockFeedService) GetPost(ctx context.Context, viewerID, postID string) (*domain.FeedPost, error) {
	args := m.Called(ctx, viewerID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedPost), args.Error(1)
}

type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) Like(ctx context.Context, postID string) (bool, error) {
	args := m.Called(ctx, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionService) Unlike(ctx context.Context, postID string) (bool, error) {
	args := m.Called(ctx, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionService) Share(ctx context.Context, postID string) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInteractionService) Comment(ctx context.Context, postID string, input interaction.CommentInput) (*domain.Comment, error) {
	args := m.Called(ctx, postID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockInteractionService) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, input storage.UploadInput) (*storage.UploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}
