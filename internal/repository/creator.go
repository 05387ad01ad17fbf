package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// Creator defines persistence for creator profiles
type Creator interface {
	// CreateCreator returns domain.ErrCreatorAlreadyExists when the user already has a profile
	CreateCreator(ctx context.Context, creator domain.Creator) (*domain.Creator, error)
	GetCreatorByID(ctx context.Context, creatorID string) (*domain.Creator, error)
	GetCreatorByUserID(ctx context.Context, userID string) (*domain.Creator, error)
	GetCreatorsByIDs(ctx context.Context, creatorIDs []string) (map[string]domain.Creator, error)
	SearchByCategory(ctx context.Context, category string) ([]domain.Creator, error)

	// Stat counters
	AdjustPatronCount(ctx context.Context, creatorID string, delta int64) error
	AddVolume(ctx context.Context, creatorID string, amount decimal.Decimal) error
}
