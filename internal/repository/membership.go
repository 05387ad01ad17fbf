package repository

import (
	"context"
	"time"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// Tier defines persistence for membership tiers
type Tier interface {
	CreateTier(ctx context.Context, tier domain.Tier) (*domain.Tier, error)
	GetTierByID(ctx context.Context, tierID string) (*domain.Tier, error)
	ListTiersByCreator(ctx context.Context, creatorID string) ([]domain.Tier, error)
}

// Membership defines persistence for the membership state machine
type Membership interface {
	GetMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error)
	GetMembershipByTxHash(ctx context.Context, txHash string) (*domain.Membership, error)

	// GetActiveMembership returns the active record for (supporter, creator)
	// joined with its tier. Expiry is not checked here.
	GetActiveMembership(ctx context.Context, supporterID, creatorID string) (*domain.MembershipWithTier, error)
	ListMembershipsBySupporter(ctx context.Context, supporterID string) ([]domain.MembershipWithTier, error)

	// ActivateMembership expires any active record for the same
	// (creator, supporter) at the new start time and inserts the new one,
	// in one transaction. The replaced membership, if any, is returned.
	ActivateMembership(ctx context.Context, membership domain.Membership) (created, replaced *domain.Membership, err error)

	// ExpireMembership transitions one active record. It reports false when
	// the record was already expired.
	ExpireMembership(ctx context.Context, membershipID string, at time.Time) (bool, error)

	// ExpireDue transitions every active record with expires_at <= now and
	// returns the transitioned records.
	ExpireDue(ctx context.Context, now time.Time) ([]domain.Membership, error)
}
