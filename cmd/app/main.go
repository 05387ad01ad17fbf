// Command app runs the Mivy HTTP API
//
//	@title						Mivy API
//	@version					1.0
//	@description				Creator subscriptions, gated posts and supporter memberships.
//	@BasePath					/
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/osse101/Mivy_Go/docs"
	"github.com/osse101/Mivy_Go/internal/bootstrap"
	"github.com/osse101/Mivy_Go/internal/config"
	"github.com/osse101/Mivy_Go/internal/database"
	"github.com/osse101/Mivy_Go/internal/handler"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/server"
	"github.com/osse101/Mivy_Go/migrations"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("mivy: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bootstrap.SetupLogger(cfg)

	sentryEnabled, err := bootstrap.InitSentry(cfg)
	if err != nil {
		logger.Error("Sentry disabled", "error", err)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	ctx := context.Background()
	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, dbPool, migrations.FS, database.MigrateUp); err != nil {
			return err
		}
	}

	catalog, err := bootstrap.LoadCategoryCatalog(cfg)
	if err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	kafkaForwarder, err := bootstrap.InitializeKafkaForwarder(cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	services, err := bootstrap.InitializeServices(ctx, cfg, repos, catalog, publisher)
	if err != nil {
		return err
	}

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:         eventBus,
		CreatorService:   services.Creator,
		MembershipWorker: services.MembershipWorker,
		KafkaForwarder:   kafkaForwarder,
	}); err != nil {
		return err
	}

	services.Start()

	srv := server.NewServer(
		server.Config{Port: cfg.Port, APIKey: cfg.APIKey, TrustedProxies: cfg.TrustedProxies},
		dbPool,
		services.Tokens,
		server.Handlers{
			Auth:          handler.NewAuthHandlers(services.Identity, services.Tokens),
			Users:         handler.NewUserHandlers(services.Identity),
			Creators:      handler.NewCreatorHandlers(services.Creator, services.Membership),
			Memberships:   handler.NewMembershipHandlers(services.Membership),
			Posts:         handler.NewPostHandlers(services.Post, services.Feed, services.Interaction),
			Notifications: handler.NewNotificationHandlers(services.Notifications),
			Uploads:       handler.NewUploadHandlers(services.Storage),
			AdminMetrics:  handler.NewAdminMetricsHandler(nil),
		},
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Services:           services,
		ResilientPublisher: publisher,
		KafkaForwarder:     kafkaForwarder,
		SentryEnabled:      sentryEnabled,
	})
	return runErr
}
