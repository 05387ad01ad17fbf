package repository

import (
	"context"
	"time"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// Identity defines persistence for users and their linked external accounts.
// Lookups return (nil, nil) when nothing matches.
type Identity interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)
	UpdateUserProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)

	GetLinkedAccountByFid(ctx context.Context, fid int64) (*domain.LinkedAccount, error)
	GetLinkedAccountByWallet(ctx context.Context, address string) (*domain.LinkedAccount, error)
	ListLinkedAccounts(ctx context.Context, userID string) ([]domain.LinkedAccount, error)

	// CreateUserWithLink writes the user and its first linked account in one
	// transaction. It returns domain.ErrDuplicateLink when the external
	// account is already linked.
	CreateUserWithLink(ctx context.Context, user domain.User, link domain.LinkedAccount) (*domain.User, *domain.LinkedAccount, error)
	TouchLinkSynced(ctx context.Context, linkedAccountID string, at time.Time) error
}
