package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChatRole is the role a tier grants in the creator chat
type ChatRole string

const (
	ChatRoleObserver ChatRole = "observer"
	ChatRoleMember   ChatRole = "member"
	ChatRoleVIP      ChatRole = "vip"
)

// Valid reports whether the role is one of the known roles
func (r ChatRole) Valid() bool {
	switch r {
	case ChatRoleObserver, ChatRoleMember, ChatRoleVIP:
		return true
	}
	return false
}

// Tier is a subscription level defined by a creator
type Tier struct {
	ID        string          `json:"id"`
	CreatorID string          `json:"creator_id"`
	Name      string          `json:"name"`
	PriceUSD  decimal.Decimal `json:"price_usd"`
	Perks     TierPerks       `json:"perks"`
	CreatedAt time.Time       `json:"created_at"`
}

// TierPerks describes what a tier unlocks
type TierPerks struct {
	CanAccessChat    bool     `json:"can_access_chat"`
	ChatRole         ChatRole `json:"chat_role"`
	CanAccessContent bool     `json:"can_access_content"`
}

// Covers reports whether holding t grants access to content gated by required.
// A tier covers another when it unlocks content and is priced at least as high.
func (t Tier) Covers(required Tier) bool {
	return t.Perks.CanAccessContent && t.PriceUSD.GreaterThanOrEqual(required.PriceUSD)
}

// MembershipStatusKind discriminates the membership status variant
type MembershipStatusKind string

const (
	MembershipActive  MembershipStatusKind = "active"
	MembershipExpired MembershipStatusKind = "expired"
)

// MembershipStatus is a tagged variant: active{startedAt, expiresAt, txHash}
// or expired{expiredAt}. Only the fields of the current kind are set.
type MembershipStatus struct {
	Kind      MembershipStatusKind `json:"kind"`
	StartedAt *time.Time           `json:"started_at,omitempty"`
	ExpiresAt *time.Time           `json:"expires_at,omitempty"`
	TxHash    string               `json:"tx_hash,omitempty"`
	ExpiredAt *time.Time           `json:"expired_at,omitempty"`
}

// ActiveStatus builds the active variant
func ActiveStatus(startedAt, expiresAt time.Time, txHash string) MembershipStatus {
	return MembershipStatus{
		Kind:      MembershipActive,
		StartedAt: &startedAt,
		ExpiresAt: &expiresAt,
		TxHash:    txHash,
	}
}

// ExpiredStatus builds the expired variant
func ExpiredStatus(expiredAt time.Time) MembershipStatus {
	return MembershipStatus{
		Kind:      MembershipExpired,
		ExpiredAt: &expiredAt,
	}
}

// Membership links a supporter to a creator through a tier
type Membership struct {
	ID          string           `json:"id"`
	SupporterID string           `json:"supporter_id"`
	CreatorID   string           `json:"creator_id"`
	TierID      string           `json:"tier_id"`
	Status      MembershipStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ActiveAt reports whether the membership grants access at the given instant.
// An active record whose expiry has passed is not active, even before the sweep runs.
func (m Membership) ActiveAt(now time.Time) bool {
	if m.Status.Kind != MembershipActive || m.Status.ExpiresAt == nil {
		return false
	}
	return now.Before(*m.Status.ExpiresAt)
}

// Stale reports an active record whose expiry has passed but was never swept
func (m Membership) Stale(now time.Time) bool {
	return m.Status.Kind == MembershipActive && m.Status.ExpiresAt != nil && !now.Before(*m.Status.ExpiresAt)
}

// MembershipWithTier is a membership joined with its tier
type MembershipWithTier struct {
	Membership
	Tier Tier `json:"tier"`
}
