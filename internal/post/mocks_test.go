package post

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/event"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) ListPosts(ctx context.Context, creatorID string) ([]domain.Post, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).([]domain.Post), args.Error(1)
}

type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) CreateCreator(ctx context.Context, c domain.Creator) (*domain.Creator, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) GetCreatorByID(ctx context.Context, id string) (*domain.Creator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) GetCreatorByUserID(ctx context.Context, userID string) (*domain.Creator, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) GetCreatorsByIDs(ctx context.Context, ids []string) (map[string]domain.Creator, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) SearchByCategory(ctx context.Context, category string) ([]domain.Creator, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) AdjustPatronCount(ctx context.Context, id string, delta int64) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *MockCreatorRepository) AddVolume(ctx context.Context, id string, amount decimal.Decimal) error {
	return m.Called(ctx, id, amount).Error(0)
}

type MockTierRepository struct {
	mock.Mock
}

func (m *MockTierRepository) CreateTier(ctx context.Context, tier domain.Tier) (*domain.Tier, error) {
	args := m.Called(ctx, tier)
	return args.Get(0).(*domain.Tier), args.Error(1)
}

func (m *MockTierRepository) GetTierByID(ctx context.Context, tierID string) (*domain.Tier, error) {
	args := m.Called(ctx, tierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tier), args.Error(1)
}

func (m *MockTierRepository) ListTiersByCreator(ctx context.Context, creatorID string) ([]domain.Tier, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).([]domain.Tier), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}
