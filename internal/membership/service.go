package membership

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/event"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/repository"
)

// ActivateInput is a confirmed payment for a tier
type ActivateInput struct {
	SupporterID string    `json:"supporter_id" validate:"required"`
	TierID      string    `json:"tier_id" validate:"required"`
	TxHash      string    `json:"tx_hash"`
	StartedAt   time.Time `json:"started_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CreateTierInput defines a new tier for the caller's creator profile
type CreateTierInput struct {
	Name     string           `json:"name" validate:"required,max=64"`
	PriceUSD decimal.Decimal  `json:"price_usd"`
	Perks    domain.TierPerks `json:"perks"`
}

// ExpiryQueue schedules a background expiry of a stale membership
type ExpiryQueue interface {
	ScheduleExpiry(membershipID string, at time.Time)
}

// UserLookup checks that a supporter exists
type UserLookup interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// Service runs the membership state machine and tier management
type Service interface {
	CreateTier(ctx context.Context, input CreateTierInput) (*domain.Tier, error)
	GetTier(ctx context.Context, tierID string) (*domain.Tier, error)
	ListTiers(ctx context.Context, creatorID string) ([]domain.Tier, error)

	// Activate records a confirmed payment. A known tx hash returns the
	// membership it already produced.
	Activate(ctx context.Context, input ActivateInput) (*domain.Membership, error)
	// Expire moves one membership to expired; expiring twice is a no-op
	Expire(ctx context.Context, membershipID string, at time.Time) error
	// ExpireDue sweeps every active membership whose expiry has passed
	ExpireDue(ctx context.Context, now time.Time) (int, error)

	// HasActiveMembership reports whether viewer holds a live membership for
	// creator on a content tier priced at least as high as requiredTierID
	HasActiveMembership(ctx context.Context, viewerID, creatorID, requiredTierID string) (bool, error)
	ListSupporterMemberships(ctx context.Context, supporterID string) ([]domain.MembershipWithTier, error)

	SetExpiryQueue(q ExpiryQueue)
}

type service struct {
	tiers       repository.Tier
	memberships repository.Membership
	creators    repository.Creator
	users       UserLookup
	publisher   event.Publisher
	cache       *StatusCache
	validate    *validator.Validate
	now         func() time.Time

	mu          sync.RWMutex
	expiryQueue ExpiryQueue
}

// NewService creates a new membership service. publisher may be nil.
func NewService(
	tiers repository.Tier,
	memberships repository.Membership,
	creators repository.Creator,
	users UserLookup,
	publisher event.Publisher,
) Service {
	return &service{
		tiers:       tiers,
		memberships: memberships,
		creators:    creators,
		users:       users,
		publisher:   publisher,
		cache:       NewStatusCache(StatusCacheSize, StatusCacheTTL),
		validate:    validator.New(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) SetExpiryQueue(q ExpiryQueue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiryQueue = q
}

func (s *service) CreateTier(ctx context.Context, input CreateTierInput) (*domain.Tier, error) {
	caller := auth.GetAuthUser(ctx)
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if input.PriceUSD.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	if input.Perks.ChatRole == "" {
		input.Perks.ChatRole = domain.ChatRoleObserver
	}
	if !input.Perks.ChatRole.Valid() {
		return nil, fmt.Errorf("%w: chat role %q", domain.ErrInvalidInput, input.Perks.ChatRole)
	}

	creator, err := s.creators.GetCreatorByUserID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	if creator == nil {
		return nil, domain.ErrCreatorProfileNotFound
	}

	tier, err := s.tiers.CreateTier(ctx, domain.Tier{
		CreatorID: creator.ID,
		Name:      strings.TrimSpace(input.Name),
		PriceUSD:  input.PriceUSD,
		Perks:     input.Perks,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgTierCreated, "tier_id", tier.ID, "creator_id", creator.ID, "price_usd", tier.PriceUSD.String())
	return tier, nil
}

func (s *service) GetTier(ctx context.Context, tierID string) (*domain.Tier, error) {
	tier, err := s.tiers.GetTierByID(ctx, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tier: %w", err)
	}
	if tier == nil {
		return nil, domain.ErrTierNotFound
	}
	return tier, nil
}

func (s *service) ListTiers(ctx context.Context, creatorID string) ([]domain.Tier, error) {
	return s.tiers.ListTiersByCreator(ctx, creatorID)
}

func (s *service) Activate(ctx context.Context, input ActivateInput) (*domain.Membership, error) {
	log := logger.FromContext(ctx)

	input.TxHash = strings.TrimSpace(input.TxHash)
	if input.TxHash == "" {
		return nil, domain.ErrMissingTxHash
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if existing, err := s.replayed(ctx, input); existing != nil || err != nil {
		return existing, err
	}

	tier, err := s.GetTier(ctx, input.TierID)
	if err != nil {
		return nil, err
	}

	if input.StartedAt.IsZero() {
		input.StartedAt = s.now()
	}
	if !input.ExpiresAt.After(input.StartedAt) {
		return nil, domain.ErrInvalidExpiry
	}

	supporter, err := s.users.GetUserByID(ctx, input.SupporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get supporter: %w", err)
	}
	if supporter == nil {
		return nil, domain.ErrUserNotFound
	}

	candidate := domain.Membership{
		SupporterID: input.SupporterID,
		CreatorID:   tier.CreatorID,
		TierID:      tier.ID,
		Status:      domain.ActiveStatus(input.StartedAt, input.ExpiresAt, input.TxHash),
	}

	var created, replaced *domain.Membership
	for attempt := 0; ; attempt++ {
		created, replaced, err = s.memberships.ActivateMembership(ctx, candidate)
		if errors.Is(err, domain.ErrMembershipConflict) && attempt < ActivationConflictRetries {
			log.Warn(LogMsgActivationConflict, "supporter_id", input.SupporterID, "creator_id", tier.CreatorID)
			continue
		}
		break
	}
	if errors.Is(err, domain.ErrDuplicateTransaction) {
		// a concurrent request with the same tx hash won
		if existing, rerr := s.replayed(ctx, input); existing != nil || rerr != nil {
			return existing, rerr
		}
	}
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(created.SupporterID, created.CreatorID)

	payload := event.MembershipActivatedPayloadV1{
		MembershipID: created.ID,
		SupporterID:  created.SupporterID,
		CreatorID:    created.CreatorID,
		TierID:       created.TierID,
		PriceUSD:     tier.PriceUSD,
		TxHash:       input.TxHash,
		ExpiresAt:    input.ExpiresAt,
	}
	if replaced != nil {
		payload.ReplacedID = replaced.ID
	}
	s.publish(ctx, event.NewMembershipActivatedEvent(payload))

	log.Info(LogMsgMembershipActivated,
		"membership_id", created.ID,
		"supporter_id", created.SupporterID,
		"creator_id", created.CreatorID,
		"replaced", payload.ReplacedID)
	return created, nil
}

// replayed returns the membership already produced by input.TxHash, or
// ErrDuplicateTransaction when that hash paid for something else
func (s *service) replayed(ctx context.Context, input ActivateInput) (*domain.Membership, error) {
	existing, err := s.memberships.GetMembershipByTxHash(ctx, input.TxHash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up transaction: %w", err)
	}
	if existing == nil {
		return nil, nil
	}
	if existing.SupporterID != input.SupporterID || existing.TierID != input.TierID {
		return nil, domain.ErrDuplicateTransaction
	}
	logger.FromContext(ctx).Info(LogMsgMembershipReplayed, "membership_id", existing.ID, "tx_hash", input.TxHash)
	return existing, nil
}

func (s *service) Expire(ctx context.Context, membershipID string, at time.Time) error {
	m, err := s.memberships.GetMembershipByID(ctx, membershipID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}
	if m == nil {
		return domain.ErrMembershipNotFound
	}
	if m.Status.Kind == domain.MembershipExpired {
		return nil
	}

	changed, err := s.memberships.ExpireMembership(ctx, membershipID, at)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	s.cache.Invalidate(m.SupporterID, m.CreatorID)
	s.publish(ctx, event.NewMembershipExpiredEvent(m.ID, m.SupporterID, m.CreatorID, at))
	logger.FromContext(ctx).Info(LogMsgMembershipExpired, "membership_id", m.ID)
	return nil
}

func (s *service) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.memberships.ExpireDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire due memberships: %w", err)
	}

	for _, m := range expired {
		s.cache.Invalidate(m.SupporterID, m.CreatorID)
		at := now
		if m.Status.ExpiredAt != nil {
			at = *m.Status.ExpiredAt
		}
		s.publish(ctx, event.NewMembershipExpiredEvent(m.ID, m.SupporterID, m.CreatorID, at))
	}

	if len(expired) > 0 {
		logger.FromContext(ctx).Info(LogMsgExpireDueCompleted, "count", len(expired))
	}
	return len(expired), nil
}

func (s *service) HasActiveMembership(ctx context.Context, viewerID, creatorID, requiredTierID string) (bool, error) {
	if viewerID == "" || creatorID == "" || requiredTierID == "" {
		return false, nil
	}
	now := s.now()
	if allowed, ok := s.cache.Get(viewerID, creatorID, requiredTierID, now); ok {
		return allowed, nil
	}

	allowed, until, err := s.checkActive(ctx, viewerID, creatorID, requiredTierID, now)
	if err != nil {
		return false, err
	}
	s.cache.Set(viewerID, creatorID, requiredTierID, allowed, until)
	return allowed, nil
}

// checkActive returns the decision and, for a grant, the time it lapses
func (s *service) checkActive(ctx context.Context, viewerID, creatorID, requiredTierID string, now time.Time) (bool, time.Time, error) {
	required, err := s.tiers.GetTierByID(ctx, requiredTierID)
	if err != nil {
		return false, time.Time{}, fmt.Errorf("failed to get required tier: %w", err)
	}
	// an unknown or foreign tier fails closed
	if required == nil || required.CreatorID != creatorID {
		return false, time.Time{}, nil
	}

	held, err := s.memberships.GetActiveMembership(ctx, viewerID, creatorID)
	if err != nil {
		return false, time.Time{}, fmt.Errorf("failed to get active membership: %w", err)
	}
	if held == nil {
		return false, time.Time{}, nil
	}

	if held.Stale(now) {
		s.scheduleExpiry(ctx, held.Membership, now)
		return false, time.Time{}, nil
	}
	if !held.ActiveAt(now) {
		return false, time.Time{}, nil
	}
	return held.Tier.Covers(*required), *held.Status.ExpiresAt, nil
}

func (s *service) scheduleExpiry(ctx context.Context, m domain.Membership, now time.Time) {
	logger.FromContext(ctx).Debug(LogMsgStaleMembership, "membership_id", m.ID, "expires_at", m.Status.ExpiresAt)

	s.mu.RLock()
	q := s.expiryQueue
	s.mu.RUnlock()
	if q == nil {
		return
	}
	at := now
	if m.Status.ExpiresAt != nil {
		at = *m.Status.ExpiresAt
	}
	q.ScheduleExpiry(m.ID, at)
}

func (s *service) ListSupporterMemberships(ctx context.Context, supporterID string) ([]domain.MembershipWithTier, error) {
	return s.memberships.ListMembershipsBySupporter(ctx, supporterID)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
