package membership

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/event"
)

type MockTierRepository struct {
	mock.Mock
}

func (m *MockTierRepository) CreateTier(ctx context.Context, tier domain.Tier) (*domain.Tier, error) {
	args := m.Called(ctx, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) GetMembershipByID(ctx context.Context, id string) (*domain.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) GetMembershipByTxHash(ctx context.Context, txHash string) (*domain.Membership, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) GetActiveMembership(ctx context.Context, supporterID, creatorID string) (*domain.MembershipWithTier, error) {
	args := m.Called(ctx, supporterID, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipWithTier), args.Error(1)
}

func (m *MockMembershipRepository) ListMembershipsBySupporter(ctx context.Context, supporterID string) ([]domain.MembershipWithTier, error) {
	args := m.Called(ctx, supporterID)
	return args.Get(0).([]domain.MembershipWithTier), args.Error(1)
}

func (m *MockMembershipRepository) ActivateMembership(ctx context.Context, membership domain.Membership) (*domain.Membership, *domain.Membership, error) {
	args := m.Called(ctx, membership)
	var created, replaced *domain.Membership
	if v := args.Get(0); v != nil {
		created = v.(*domain.Membership)
	}
	if v := args.Get(1); v != nil {
		replaced = v.(*domain.Membership)
	}
	return created, replaced, args.Error(2)
}

func (m *MockMembershipRepository) ExpireMembership(ctx context.Context, id string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepository) ExpireDue(ctx context.Context, now time.Time) ([]domain.Membership, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Membership), args.Error(1)
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

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

type MockExpiryQueue struct {
	mock.Mock
}

func (m *MockExpiryQueue) ScheduleExpiry(membershipID string, at time.Time) {
	m.Called(membershipID, at)
}
