package feed

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// store is an in-memory backing for the post, creator and user readers
type store struct {
	posts    []domain.Post
	creators map[string]domain.Creator
	users    map[string]domain.User
}

func newStore() *store {
	return &store{
		creators: make(map[string]domain.Creator),
		users:    make(map[string]domain.User),
	}
}

type fakePosts struct{ s *store }

func (f fakePosts) CreatePost(_ context.Context, p domain.Post) (*domain.Post, error) {
	f.s.posts = append(f.s.posts, p)
	return &p, nil
}

func (f fakePosts) GetPostByID(_ context.Context, id string) (*domain.Post, error) {
	for _, p := range f.s.posts {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (f fakePosts) ListPosts(_ context.Context, creatorID string) ([]domain.Post, error) {
	out := make([]domain.Post, 0, len(f.s.posts))
	for _, p := range f.s.posts {
		if creatorID == "" || p.CreatorID == creatorID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCreators struct{ s *store }

func (f fakeCreators) CreateCreator(_ context.Context, c domain.Creator) (*domain.Creator, error) {
	f.s.creators[c.ID] = c
	return &c, nil
}

func (f fakeCreators) GetCreatorByID(_ context.Context, id string) (*domain.Creator, error) {
	if c, ok := f.s.creators[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f fakeCreators) GetCreatorByUserID(_ context.Context, userID string) (*domain.Creator, error) {
	for _, c := range f.s.creators {
		if c.UserID == userID {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f fakeCreators) GetCreatorsByIDs(_ context.Context, ids []string) (map[string]domain.Creator, error) {
	out := make(map[string]domain.Creator, len(ids))
	for _, id := range ids {
		if c, ok := f.s.creators[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (f fakeCreators) SearchByCategory(context.Context, string) ([]domain.Creator, error) {
	return nil, nil
}

func (f fakeCreators) AdjustPatronCount(context.Context, string, int64) error { return nil }

func (f fakeCreators) AddVolume(context.Context, string, decimal.Decimal) error { return nil }

type fakeUsers struct{ s *store }

func (f fakeUsers) GetUsersByIDs(_ context.Context, ids []string) (map[string]domain.User, error) {
	out := make(map[string]domain.User, len(ids))
	for _, id := range ids {
		if u, ok := f.s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type MockMembershipChecker struct {
	mock.Mock
}

func (m *MockMembershipChecker) HasActiveMembership(ctx context.Context, viewerID, creatorID, requiredTierID string) (bool, error) {
	args := m.Called(ctx, viewerID, creatorID, requiredTierID)
	return args.Bool(0), args.Error(1)
}

func newTestService(s *store, checker MembershipChecker) Service {
	return NewService(fakePosts{s}, fakeCreators{s}, fakeUsers{s}, checker)
}
