// Package main is the entrypoint for the newsdesk API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/newsdesk/newsdesk/internal/assistant"
	"github.com/newsdesk/newsdesk/internal/cache"
	"github.com/newsdesk/newsdesk/internal/config"
	"github.com/newsdesk/newsdesk/internal/handler"
	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/middleware"
	"github.com/newsdesk/newsdesk/internal/repository"
	"github.com/newsdesk/newsdesk/internal/scraper"
	"github.com/newsdesk/newsdesk/internal/server"
	"github.com/newsdesk/newsdesk/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize session store
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize services
	recorder := metrics.NewNoop()
	accountService := service.NewAccountService(repo, cacheClient, cfg.SessionTTL, recorder)
	savedArticleService := service.NewSavedArticleService(repo, recorder)
	aiClient := assistant.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.AssistantModel)
	chatService := service.NewChatService(repo, aiClient, recorder)
	contentFetcher := scraper.New(cfg.ScrapeTimeout)

	// Initialize handlers
	dev := cfg.IsDevelopment()
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(accountService, logger, dev)
	savedArticleHandler := handler.NewSavedArticleHandler(savedArticleService, logger, dev)
	chatHandler := handler.NewChatHandler(chatService, logger, dev)
	articleHandler := handler.NewArticleHandler(repo, logger, dev)
	scrapeHandler := handler.NewScrapeHandler(contentFetcher, logger)

	// Setup router
	r := setupRouter(routerDeps{
		base:          h,
		health:        healthHandler,
		auth:          authHandler,
		savedArticles: savedArticleHandler,
		chat:          chatHandler,
		articles:      articleHandler,
		scrape:        scrapeHandler,
		sessions:      cacheClient,
		cfg:           cfg,
		logger:        logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	base          *handler.Handler
	health        *handler.HealthHandler
	auth          *handler.AuthHandler
	savedArticles *handler.SavedArticleHandler
	chat          *handler.ChatHandler
	articles      *handler.ArticleHandler
	scrape        *handler.ScrapeHandler
	sessions      middleware.SessionResolver
	cfg           *config.Config
	logger        *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      deps.cfg.IsDevelopment(),
		MaxRequestBodySize: deps.cfg.MaxRequestBodySize,
	}))

	if origins := deps.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	// Content-fetch diagnostic endpoint (no auth required)
	r.Get("/test-scrape", deps.scrape.Scrape)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:   deps.logger,
		Sessions: deps.sessions,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Account endpoints (no session required)
		r.Post("/auth/signup", deps.auth.Signup)
		r.Post("/auth/login", deps.auth.Login)

		// Public article browsing
		r.Get("/articles", deps.articles.List)
		r.Get("/articles/{id}", deps.articles.Get)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Post("/auth/logout", deps.auth.Logout)

			r.Route("/saved-articles", func(r chi.Router) {
				r.Get("/", deps.savedArticles.List)
				r.Post("/", deps.savedArticles.Save)
				r.Delete("/", deps.savedArticles.Remove)
			})

			r.Route("/chat-sessions", func(r chi.Router) {
				r.Get("/", deps.chat.List)
				r.Post("/", deps.chat.Create)
				r.Post("/{id}/messages", deps.chat.SendMessage)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
