package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/event"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/repository"
)

// Service resolves external identity assertions to users
type Service interface {
	// ResolveOrCreateByFid returns the user linked to fid, creating the user
	// and its farcaster link on first sign-in. A repeat sign-in never changes
	// profile fields; it only stamps the link's last_synced_at.
	ResolveOrCreateByFid(ctx context.Context, fid int64, profile domain.ProfileFields) (string, error)

	// ResolveOrCreateByWallet is the same algorithm keyed on a wallet address
	ResolveOrCreateByWallet(ctx context.Context, address string, profile domain.ProfileFields) (string, error)

	// GetByFid returns the projected user view for fid, or nil when no link exists
	GetByFid(ctx context.Context, fid int64) (*domain.FidUserView, error)

	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	ListLinkedAccounts(ctx context.Context, userID string) ([]domain.LinkedAccount, error)
}

type service struct {
	repo      repository.Identity
	publisher event.Publisher
	cache     *lookupCache
	validate  *validator.Validate
	now       func() time.Time
}

// NewService creates a new identity service. publisher may be nil.
func NewService(repo repository.Identity, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		cache:     newLookupCache(LookupCacheSize, LookupCacheTTL),
		validate:  validator.New(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) ResolveOrCreateByFid(ctx context.Context, fid int64, profile domain.ProfileFields) (string, error) {
	if fid <= 0 {
		return "", domain.ErrInvalidFid
	}

	key := fidKey(fid)
	if hit, ok := s.cache.Get(key); ok {
		s.touch(ctx, hit.LinkID)
		return hit.UserID, nil
	}

	userID, err := s.resolveExisting(ctx, key, func() (*domain.LinkedAccount, error) {
		return s.repo.GetLinkedAccountByFid(ctx, fid)
	})
	if err != nil || userID != "" {
		return userID, err
	}

	now := s.now()
	synced := now
	if profile.InitializedAt != nil {
		synced = *profile.InitializedAt
	}
	link := domain.LinkedAccount{
		Account: domain.FarcasterAccount{
			Fid:          fid,
			Username:     nonEmpty(profile.Username),
			PfpURL:       nonEmpty(profile.PfpURL),
			DisplayName:  profile.DisplayName,
			Bio:          profile.Bio,
			LastSyncedAt: &synced,
		},
		LinkedAt: now,
	}

	return s.create(ctx, key, newUser(profile), link, fid, func() (*domain.LinkedAccount, error) {
		return s.repo.GetLinkedAccountByFid(ctx, fid)
	})
}

func (s *service) ResolveOrCreateByWallet(ctx context.Context, address string, profile domain.ProfileFields) (string, error) {
	address = strings.TrimSpace(address)
	if err := s.validate.Var(address, WalletAddressTag); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	key := walletKey(address)
	if hit, ok := s.cache.Get(key); ok {
		return hit.UserID, nil
	}

	lookup := func() (*domain.LinkedAccount, error) {
		return s.repo.GetLinkedAccountByWallet(ctx, address)
	}
	userID, err := s.resolveExisting(ctx, key, lookup)
	if err != nil || userID != "" {
		return userID, err
	}

	if profile.Username == "" {
		profile.Username = address
	}
	if profile.CurrentWalletAddress == nil {
		profile.CurrentWalletAddress = &address
	}
	link := domain.LinkedAccount{
		Account:  domain.WalletAccount{Address: address},
		LinkedAt: s.now(),
	}

	return s.create(ctx, key, newUser(profile), link, 0, lookup)
}

// resolveExisting returns the user id behind an existing link, "" when no
// link exists, or ErrDataIntegrity when the link is dangling.
func (s *service) resolveExisting(ctx context.Context, key string, lookup func() (*domain.LinkedAccount, error)) (string, error) {
	link, err := lookup()
	if err != nil {
		return "", fmt.Errorf("failed to look up linked account: %w", err)
	}
	if link == nil {
		return "", nil
	}

	user, err := s.repo.GetUserByID(ctx, link.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", s.integrityError(ctx, link)
	}

	if link.Account.Protocol() == domain.ProtocolFarcaster {
		s.touch(ctx, link.ID)
	}
	s.cache.Set(key, user.ID, link.ID)
	logger.FromContext(ctx).Debug(LogMsgResolvedExisting, "user_id", user.ID, "key", key)
	return user.ID, nil
}

// create writes the user and its link. When a concurrent sign-in wins the
// unique index, the loser re-reads and returns the winner's user.
func (s *service) create(ctx context.Context, key string, user domain.User, link domain.LinkedAccount, fid int64, lookup func() (*domain.LinkedAccount, error)) (string, error) {
	log := logger.FromContext(ctx)

	created, createdLink, err := s.repo.CreateUserWithLink(ctx, user, link)
	if errors.Is(err, domain.ErrDuplicateLink) {
		log.Info(LogMsgLostCreateRace, "key", key)
		userID, rerr := s.resolveExisting(ctx, key, lookup)
		if rerr != nil {
			return "", rerr
		}
		if userID == "" {
			return "", err
		}
		return userID, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.cache.Set(key, created.ID, createdLink.ID)
	log.Info(LogMsgUserCreated, "user_id", created.ID, "protocol", link.Account.Protocol())

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewUserCreatedEvent(created.ID, string(link.Account.Protocol()), fid))
	}
	return created.ID, nil
}

func (s *service) GetByFid(ctx context.Context, fid int64) (*domain.FidUserView, error) {
	if fid <= 0 {
		return nil, domain.ErrInvalidFid
	}

	link, err := s.repo.GetLinkedAccountByFid(ctx, fid)
	if err != nil {
		return nil, fmt.Errorf("failed to look up linked account: %w", err)
	}
	if link == nil {
		return nil, nil
	}

	user, err := s.repo.GetUserByID(ctx, link.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, s.integrityError(ctx, link)
	}

	return &domain.FidUserView{
		DisplayName:          user.DisplayName,
		Username:             user.Username,
		PfpURL:               user.PfpURL,
		Bio:                  user.Bio,
		CurrentWalletAddress: user.CurrentWalletAddress,
		Fid:                  fid,
		UserID:               user.ID,
		LinkedAt:             link.LinkedAt,
	}, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if err := s.validate.Struct(update); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	user, err := s.repo.UpdateUserProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgProfileUpdated, "user_id", userID)
	return user, nil
}

func (s *service) ListLinkedAccounts(ctx context.Context, userID string) ([]domain.LinkedAccount, error) {
	return s.repo.ListLinkedAccounts(ctx, userID)
}

func (s *service) touch(ctx context.Context, linkID string) {
	if linkID == "" {
		return
	}
	if err := s.repo.TouchLinkSynced(ctx, linkID, s.now()); err != nil {
		logger.FromContext(ctx).Warn(LogMsgTouchSyncedFailed, "link_id", linkID, "error", err)
	}
}

// integrityError logs and reports a link whose user row is missing
func (s *service) integrityError(ctx context.Context, link *domain.LinkedAccount) error {
	err := fmt.Errorf("%w: linked account %s references user %s", domain.ErrDataIntegrity, link.ID, link.UserID)
	logger.FromContext(ctx).Error(LogMsgDanglingLink, "link_id", link.ID, "user_id", link.UserID)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
	return err
}

func newUser(p domain.ProfileFields) domain.User {
	return domain.User{
		Username:             p.Username,
		PfpURL:               p.PfpURL,
		DisplayName:          p.DisplayName,
		Bio:                  p.Bio,
		CurrentWalletAddress: p.CurrentWalletAddress,
		ProfileInitializedAt: p.InitializedAt,
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
