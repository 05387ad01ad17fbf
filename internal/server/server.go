package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/database"
	"github.com/osse101/Mivy_Go/internal/handler"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/metrics"
)

// Config holds the HTTP listener and security settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
}

// Handlers groups the route handlers the router mounts
type Handlers struct {
	Auth          *handler.AuthHandlers
	Users         *handler.UserHandlers
	Creators      *handler.CreatorHandlers
	Memberships   *handler.MembershipHandlers
	Posts         *handler.PostHandlers
	Notifications *handler.NotificationHandlers
	Uploads       *handler.UploadHandlers
	AdminMetrics  *handler.AdminMetricsHandler
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, dbPool database.Pool, sessions auth.Verifier, h Handlers) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, dbPool, sessions, h),
			ReadHeaderTimeout: ReadHeaderTimeout,
			WriteTimeout:      WriteTimeout,
			IdleTimeout:       IdleTimeout,
		},
	}
}

// NewRouter builds the chi router with the full middleware stack
func NewRouter(cfg Config, dbPool database.Pool, sessions auth.Verifier, h Handlers) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(auth.SessionMiddleware(sessions))

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/farcaster", h.Auth.HandleFarcasterSignIn())
			r.Post("/wallet", h.Auth.HandleWalletSignIn())
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/by-fid/{fid}", h.Users.HandleGetByFid())
			r.With(auth.RequireSession).Get("/me", h.Users.HandleGetMe())
			r.With(auth.RequireSession).Patch("/me", h.Users.HandleUpdateMe())
		})

		r.Get("/categories", h.Creators.HandleCategories())

		r.Route("/creators", func(r chi.Router) {
			r.Get("/", h.Creators.HandleSearch())
			r.With(auth.RequireSession).Post("/", h.Creators.HandleBecomeCreator())
			r.Get("/{id}", h.Creators.HandleGet())
			r.Get("/{id}/tiers", h.Creators.HandleListTiers())
		})

		r.With(auth.RequireSession).Post("/tiers", h.Memberships.HandleCreateTier())

		r.Route("/memberships", func(r chi.Router) {
			r.Post("/activate", h.Memberships.HandleActivate())
			r.With(auth.RequireSession).Get("/me", h.Memberships.HandleListMine())
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.Posts.HandleList())
			r.Get("/{id}", h.Posts.HandleGet())
			r.Get("/{id}/comments", h.Posts.HandleListComments())

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireSession)
				r.Post("/", h.Posts.HandleCreate())
				r.Post("/{id}/like", h.Posts.HandleLike())
				r.Delete("/{id}/like", h.Posts.HandleUnlike())
				r.Post("/{id}/share", h.Posts.HandleShare())
				r.Post("/{id}/comments", h.Posts.HandleComment())
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.Notifications.HandleList())
			r.Get("/{fid}", h.Notifications.HandleGet())
			r.Put("/{fid}", h.Notifications.HandlePut())
			r.Delete("/{fid}", h.Notifications.HandleDelete())
		})

		r.With(auth.RequireSession).Post("/uploads", h.Uploads.HandleUpload())

		r.Route("/admin", func(r chi.Router) {
			r.Post("/memberships/expire-due", h.Memberships.HandleExpireDue())
			r.Get("/metrics", h.AdminMetrics.HandleGetMetrics())
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Panics are reported to Sentry, then re-raised for net/http to recover
	return sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         SentryFlushTimeout,
	}).Handle(r)
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Honour an upstream request id so traces line up across services
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
