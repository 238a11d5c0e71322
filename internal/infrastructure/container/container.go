// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/receitario/v1/internal/application/generation"
	"github.com/receitario/v1/internal/application/importer"
	"github.com/receitario/v1/internal/application/mealplan"
	"github.com/receitario/v1/internal/application/recipe"
	"github.com/receitario/v1/internal/application/site"
	"github.com/receitario/v1/internal/application/social"
	"github.com/receitario/v1/internal/infrastructure/ai/gemini"
	"github.com/receitario/v1/internal/infrastructure/config"
	"github.com/receitario/v1/internal/infrastructure/http/server"
	"github.com/receitario/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/receitario/v1/internal/infrastructure/persistence/gorm"
	"github.com/receitario/v1/internal/infrastructure/persistence/memory"
	"github.com/receitario/v1/internal/infrastructure/persistence/postgres"
	redisCache "github.com/receitario/v1/internal/infrastructure/persistence/redis"
	"github.com/receitario/v1/internal/infrastructure/persistence/sqlite"
	"github.com/receitario/v1/internal/infrastructure/security"
	"github.com/receitario/v1/internal/infrastructure/storage"
	"github.com/receitario/v1/internal/infrastructure/webhooks"
	"github.com/receitario/v1/internal/infrastructure/wordpress"
	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	"github.com/receitario/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ProviderModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MetricsModule provides the Prometheus registry and app metrics
var MetricsModule = fx.Provide(
	prometheus.NewRegistry,
	func(registry *prometheus.Registry) *monitoring.Metrics {
		return monitoring.NewMetrics(registry)
	},
)

// DatabaseModule provides the gorm connection for the configured driver
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		if cfg.Database.Driver == "postgres" {
			return postgres.Connect(cfg, log)
		}

		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.SQLitePath, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup sqlite database: %w", err)
		}
		if cfg.Database.SeedData {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database", zap.String("path", cfg.Database.SQLitePath))
		return db, nil
	},
)

// CacheModule provides Redis when enabled, in-memory otherwise
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if !cfg.Redis.Enabled {
			log.Info("Redis disabled, using in-memory cache")
			return memory.NewCacheRepository(), nil
		}
		client, err := redisCache.NewClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisCache.NewCacheRepository(client, log), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewCategoryRepository,
	gormRepo.NewStoryRepository,
	gormRepo.NewSettingsRepository,
	gormRepo.NewDietPlanRepository,
	gormRepo.NewMealPlanRepository,
	gormRepo.NewSuggestionRepository,
	gormRepo.NewNewsletterRepository,
)

// ProviderModule provides the AI, storage, webhook and WordPress adapters
var ProviderModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.AIProvider {
		return gemini.NewClient(cfg.AI, log)
	},
	func(cfg *config.Config, log *zap.Logger) (outbound.StorageService, error) {
		return storage.NewS3Storage(cfg.AWS, log)
	},
	func(cfg *config.Config, log *zap.Logger) outbound.AffiliateClient {
		return webhooks.NewAffiliateClient(cfg.Webhooks.Timeout, log)
	},
	func(cfg *config.Config, log *zap.Logger) outbound.SocialPublisher {
		return webhooks.NewSocialPublisher(cfg.Webhooks.Timeout, log)
	},
	func(cfg *config.Config, log *zap.Logger) outbound.WordPressClient {
		return wordpress.NewClient(cfg.WordPress.BaseURL, cfg.WordPress.Timeout, log)
	},
	func(cfg *config.Config, log *zap.Logger) *security.AuthService {
		return security.NewAuthService(cfg.Auth, log)
	},
)

// ServiceModule provides the application services
var ServiceModule = fx.Provide(
	recipe.NewRecipeService,
	mealplan.NewService,
	func(
		provider outbound.AIProvider,
		recipeRepo outbound.RecipeRepository,
		storyRepo outbound.StoryRepository,
		settingsRepo outbound.SettingsRepository,
		affiliates outbound.AffiliateClient,
		publisher outbound.SocialPublisher,
		store outbound.StorageService,
		metrics *monitoring.Metrics,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.GenerationService {
		return generation.NewService(provider, recipeRepo, storyRepo, settingsRepo,
			affiliates, publisher, store, metrics, cfg.AI, log)
	},
	func(
		recipeRepo outbound.RecipeRepository,
		settingsRepo outbound.SettingsRepository,
		publisher outbound.SocialPublisher,
		metrics *monitoring.Metrics,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.SocialService {
		return social.NewService(recipeRepo, settingsRepo, publisher, metrics, cfg.App.BaseURL, log)
	},
	func(
		wp outbound.WordPressClient,
		provider outbound.AIProvider,
		recipeRepo outbound.RecipeRepository,
		store outbound.StorageService,
		metrics *monitoring.Metrics,
		cfg *config.Config,
		log *zap.Logger,
	) *importer.Importer {
		return importer.NewImporter(wp, provider, recipeRepo, store, metrics, cfg.Import.ItemDelay, log)
	},
	func(
		settingsRepo outbound.SettingsRepository,
		storyRepo outbound.StoryRepository,
		suggestionRepo outbound.SuggestionRepository,
		newsletterRepo outbound.NewsletterRepository,
		cache outbound.CacheRepository,
		wpImporter *importer.Importer,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.SiteService {
		return site.NewService(settingsRepo, storyRepo, suggestionRepo, newsletterRepo,
			cache, wpImporter, cfg.Redis.SettingsTTL, log)
	},
	func(
		recipes inbound.RecipeService,
		gen inbound.GenerationService,
		soc inbound.SocialService,
		sit inbound.SiteService,
		meals inbound.MealPlanService,
	) server.Services {
		return server.Services{
			Recipes:    recipes,
			Generation: gen,
			Social:     soc,
			Site:       sit,
			MealPlans:  meals,
		}
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	func(
		cfg *config.Config,
		log *zap.Logger,
		services server.Services,
		auth *security.AuthService,
		registry *prometheus.Registry,
	) *server.Server {
		return server.NewServer(cfg, log, services, auth, registry)
	},
)

// LifecycleModule starts and stops the HTTP server with the fx app
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, srv *server.Server, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := srv.Start(); err != nil {
						log.Error("HTTP server stopped unexpectedly", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
		})
	},
)
