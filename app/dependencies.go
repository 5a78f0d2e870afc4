package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/greysolve/outreach-console/config"
	"github.com/greysolve/outreach-console/handlers"
	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/middleware"
	"github.com/greysolve/outreach-console/repositories"
	"github.com/greysolve/outreach-console/repositories/cache"
	"github.com/greysolve/outreach-console/repositories/memory"
	"github.com/greysolve/outreach-console/repositories/postgres"
	"github.com/greysolve/outreach-console/services/activity"
	"github.com/greysolve/outreach-console/services/campaign"
	"github.com/greysolve/outreach-console/services/dashboard"
	"github.com/greysolve/outreach-console/services/dns"
	"github.com/greysolve/outreach-console/services/estimate"
	"github.com/greysolve/outreach-console/services/inventory"
	"github.com/greysolve/outreach-console/services/settings"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// memoryCacheSize bounds the in-process estimate cache used without redis
const memoryCacheSize = 1024

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Redis  *redis.Client
	Logger *zap.Logger

	RepoFactory  *postgres.RepositoryFactory
	Repositories *repositories.Repositories
	PriceBook    pricing.PriceBook

	// Services
	Activity  *activity.Service
	Estimates *estimate.Service
	Campaigns *campaign.Service
	Inventory *inventory.Service
	DNS       *dns.Service
	Settings  *settings.Service
	Dashboard *dashboard.Service

	// Handlers
	HealthHandler    *handlers.HealthHandler
	EstimateHandler  *handlers.EstimateHandler
	CampaignHandler  *handlers.CampaignHandler
	InventoryHandler *handlers.InventoryHandler
	DNSHandler       *handlers.DNSHandler
	ActivityHandler  *handlers.ActivityHandler
	SettingsHandler  *handlers.SettingsHandler
	DashboardHandler *handlers.DashboardHandler

	// Middleware
	AuthMiddleware      *middleware.AuthMiddleware
	CampaignRateLimiter *middleware.RateLimiter
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initRepositories(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	estimates, err := deps.initEstimateCache(ctx, cfg)
	if err != nil {
		_ = deps.Close(ctx)
		return nil, fmt.Errorf("failed to initialize estimate cache: %w", err)
	}

	if err := deps.initPricing(cfg); err != nil {
		_ = deps.Close(ctx)
		return nil, fmt.Errorf("failed to load pricing catalog: %w", err)
	}

	deps.initServices(cfg, estimates)
	deps.initHandlers()
	deps.initMiddleware(cfg)

	logger.Info("all dependencies initialized successfully",
		zap.Bool("postgres", deps.DB != nil),
		zap.Bool("redis", deps.Redis != nil),
		zap.Bool("auth", deps.AuthMiddleware.Enabled()))
	return deps, nil
}

// initRepositories selects PostgreSQL when configured and the seeded memory store otherwise
func (d *Dependencies) initRepositories(ctx context.Context, cfg *config.Config) error {
	if !cfg.Database.Configured() {
		d.Logger.Warn("no database configured, using seeded in-memory repositories")
		d.Repositories = memory.NewRepositories(d.Logger)
		return nil
	}

	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}
	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if err := d.DB.HealthCheck(ctx); err != nil {
		_ = factory.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := factory.Migrate(ctx); err != nil {
			_ = factory.Close()
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	d.Repositories = factory.NewRepositories()
	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))
	return nil
}

func (d *Dependencies) initEstimateCache(ctx context.Context, cfg *config.Config) (cache.EstimateCache, error) {
	if cfg.Redis.Addr == "" {
		return cache.NewMemoryCache(memoryCacheSize, cfg.Redis.TTL), nil
	}

	d.Redis = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rc := cache.NewRedisCache(d.Redis, cfg.Redis.TTL)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	d.Logger.Info("redis estimate cache connected", zap.String("addr", cfg.Redis.Addr))
	return rc, nil
}

func (d *Dependencies) initPricing(cfg *config.Config) error {
	if cfg.Pricing.CatalogFile == "" {
		d.PriceBook = pricing.DefaultPriceBook()
		return nil
	}

	book, err := pricing.LoadPriceBook(cfg.Pricing.CatalogFile)
	if err != nil {
		return err
	}
	d.PriceBook = book
	d.Logger.Info("pricing catalog loaded",
		zap.String("file", cfg.Pricing.CatalogFile),
		zap.String("fingerprint", book.Fingerprint()))
	return nil
}

func (d *Dependencies) initServices(cfg *config.Config, estimates cache.EstimateCache) {
	repos := d.Repositories
	sim := cfg.Simulation

	d.Activity = activity.NewService(repos.Activity, d.Logger)
	d.Estimates = estimate.NewService(d.PriceBook, estimates, d.Logger)
	d.Settings = settings.NewService(repos.Settings, d.Activity, settings.Config{
		AdminRole: cfg.Auth.AdminRole,
		SaveDelay: sim.SettingsSaveDelay,
	}, d.Logger)
	d.Campaigns = campaign.NewService(repos, d.Estimates, d.Settings, d.Activity, sim.CampaignLaunchDelay, d.Logger)
	d.Inventory = inventory.NewService(repos.Inventory, d.Logger)
	d.DNS = dns.NewService(repos.Inventory, d.Activity, dns.Config{
		VerifyDelay:   sim.DNSVerifyDelay,
		DiagnoseDelay: sim.DNSDiagnoseDelay,
	}, d.Logger)
	d.Dashboard = dashboard.NewService(d.Inventory, d.DNS, d.Campaigns, d.Activity, d.Logger)
}

func (d *Dependencies) initHandlers() {
	checks := map[string]handlers.CheckFunc{}
	if d.DB != nil {
		checks["database"] = d.DB.HealthCheck
	}
	if d.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return d.Redis.Ping(ctx).Err()
		}
	}

	d.HealthHandler = handlers.NewHealthHandler(checks, d.Logger)
	d.EstimateHandler = handlers.NewEstimateHandler(d.Estimates, d.Logger)
	d.CampaignHandler = handlers.NewCampaignHandler(d.Campaigns, d.Logger)
	d.InventoryHandler = handlers.NewInventoryHandler(d.Inventory, d.Logger)
	d.DNSHandler = handlers.NewDNSHandler(d.DNS, d.Logger)
	d.ActivityHandler = handlers.NewActivityHandler(d.Activity, d.Logger)
	d.SettingsHandler = handlers.NewSettingsHandler(d.Settings, d.Logger)
	d.DashboardHandler = handlers.NewDashboardHandler(d.Dashboard, d.Logger)
}

func (d *Dependencies) initMiddleware(cfg *config.Config) {
	var validator middleware.TokenValidator
	if cfg.AuthEnabled() {
		validator = middleware.NewJWTValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	} else {
		d.Logger.Warn("AUTH_JWT_SECRET not set, requests run as an anonymous operator")
	}
	d.AuthMiddleware = middleware.NewAuthMiddleware(validator, cfg.Auth.AdminRole, d.Logger)
	d.CampaignRateLimiter = middleware.NewRateLimiter(cfg.RateLimit.CampaignsPerWindow, cfg.RateLimit.Window, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.CampaignRateLimiter != nil {
		d.CampaignRateLimiter.Stop()
	}

	// Pending launches are abandoned; their campaigns stay launching
	if d.Campaigns != nil {
		d.Campaigns.Close()
	}

	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	_ = d.Logger.Sync()

	return errors.Join(errs...)
}
