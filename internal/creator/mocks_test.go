package creator

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Mivy_Go/internal/domain"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateCreator(ctx context.Context, c domain.Creator) (*domain.Creator, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockRepository) GetCreatorByID(ctx context.Context, id string) (*domain.Creator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockRepository) GetCreatorByUserID(ctx context.Context, userID string) (*domain.Creator, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockRepository) GetCreatorsByIDs(ctx context.Context, ids []string) (map[string]domain.Creator, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]domain.Creator), args.Error(1)
}

func (m *MockRepository) SearchByCategory(ctx context.Context, category string) ([]domain.Creator, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.Creator), args.Error(1)
}

func (m *MockRepository) AdjustPatronCount(ctx context.Context, id string, delta int64) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *MockRepository) AddVolume(ctx context.Context, id string, amount decimal.Decimal) error {
	return m.Called(ctx, id, amount).Error(0)
}
