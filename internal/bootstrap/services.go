package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/config"
	"github.com/osse101/Mivy_Go/internal/creator"
	"github.com/osse101/Mivy_Go/internal/event"
	"github.com/osse101/Mivy_Go/internal/feed"
	"github.com/osse101/Mivy_Go/internal/identity"
	"github.com/osse101/Mivy_Go/internal/interaction"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/membership"
	"github.com/osse101/Mivy_Go/internal/notification"
	"github.com/osse101/Mivy_Go/internal/post"
	"github.com/osse101/Mivy_Go/internal/storage"
	"github.com/osse101/Mivy_Go/internal/worker"
)

// Services holds every domain service plus the infrastructure they own
type Services struct {
	Identity      identity.Service
	Creator       creator.Service
	Membership    membership.Service
	Post          post.Service
	Feed          feed.Service
	Interaction   interaction.Service
	Tokens        *auth.TokenManager
	Notifications notification.Store
	Storage       *storage.Client

	ExpiryPool       *worker.Pool
	MembershipWorker *worker.MembershipWorker

	closeNotifications func() error
}

// InitializeServices wires services over the repositories. Events are
// published through publisher; the pool and worker are created but not started.
func InitializeServices(ctx context.Context, cfg *config.Config, repos *Repositories, catalog *creator.Catalog, publisher event.Publisher) (*Services, error) {
	tokens, err := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateTokens, err)
	}

	store, closeStore, err := notification.NewStore(ctx, cfg.RedisURL, cfg.NotificationTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateNotifyDB, err)
	}
	logger.Info(LogMsgNotificationStoreOpen, "redis", cfg.RedisURL != "")

	if cfg.StorageGatewayURL == "" {
		logger.Warn(LogMsgStorageNotConfigured)
	}
	storageClient := storage.NewClient(storage.Config{
		GatewayURL: cfg.StorageGatewayURL,
		Token:      cfg.StorageGatewayToken,
		Timeout:    cfg.StorageTimeout,
	})

	identitySvc := identity.NewService(repos.Identity, publisher)
	creatorSvc := creator.NewService(repos.Creator, catalog)
	membershipSvc := membership.NewService(repos.Tier, repos.Membership, repos.Creator, repos.Identity, publisher)
	feedSvc := feed.NewService(repos.Post, repos.Creator, repos.Identity, membershipSvc)
	postSvc := post.NewService(repos.Post, repos.Creator, repos.Tier, publisher)
	interactionSvc := interaction.NewService(repos.Interaction, feedSvc, publisher)

	// Stale memberships seen on the read path are expired off-request
	pool := worker.NewPool(ExpiryPoolWorkers, ExpiryPoolQueueSize)
	membershipSvc.SetExpiryQueue(worker.NewExpiryQueue(pool, membershipSvc))

	logger.Info(LogMsgServicesInitialized)

	return &Services{
		Identity:           identitySvc,
		Creator:            creatorSvc,
		Membership:         membershipSvc,
		Post:               postSvc,
		Feed:               feedSvc,
		Interaction:        interactionSvc,
		Tokens:             tokens,
		Notifications:      store,
		Storage:            storageClient,
		ExpiryPool:         pool,
		MembershipWorker:   worker.NewMembershipWorker(membershipSvc, cfg.MembershipSweepInterval),
		closeNotifications: closeStore,
	}, nil
}

// Start launches the background workers
func (s *Services) Start() {
	s.ExpiryPool.Start()
	s.MembershipWorker.Start()
}
