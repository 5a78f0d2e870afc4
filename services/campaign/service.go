package campaign

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"github.com/greysolve/outreach-console/services"
	"github.com/greysolve/outreach-console/utils"
	"go.uber.org/zap"
)

// Request is the campaign setup form
type Request struct {
	Name               string                     `json:"name" validate:"required,max=255"`
	Client             string                     `json:"client" validate:"required,oneof='Acme Corp' 'TechStart Inc' 'Global Solutions'"`
	DomainRegistrar    string                     `json:"domain_registrar" validate:"required,oneof=Namecheap Cloudflare GoDaddy"`
	DomainPattern      string                     `json:"domain_pattern" validate:"max=255"`
	Keywords           string                     `json:"keywords" validate:"max=1000"`
	NumberOfDomains    int                        `json:"number_of_domains" validate:"min=1,max=100"`
	InboxesPerDomain   int                        `json:"inboxes_per_domain" validate:"min=1,max=10"`
	WorkspaceProvider  pricing.WorkspaceProvider  `json:"workspace_provider" validate:"required,oneof='Google Workspace' 'Wholesale Provider A' 'Wholesale Provider B'"`
	InboxPattern       string                     `json:"inbox_pattern" validate:"max=255"`
	SequencingPlatform pricing.SequencingPlatform `json:"sequencing_platform" validate:"required,oneof=Smartlead Lemlist Instantly"`
	WarmupDays         int                        `json:"warmup_days" validate:"min=7,max=30"`
}

// Estimator prices a validated configuration
type Estimator interface {
	Compute(ctx context.Context, cfg pricing.CampaignConfig) pricing.CostEstimate
}

// SettingsSource provides the current system settings
type SettingsSource interface {
	Current(ctx context.Context) (*models.Settings, error)
}

// Service handles campaign submission and lookup
type Service struct {
	repo        repositories.CampaignRepository
	txMgr       repositories.TransactionManager
	estimator   Estimator
	settings    SettingsSource
	activity    services.ActivityRecorder
	launchDelay time.Duration
	logger      *zap.Logger

	// launches run in the background until the service is closed
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewService creates a campaign service
func NewService(
	repos *repositories.Repositories,
	estimator Estimator,
	settings SettingsSource,
	activity services.ActivityRecorder,
	launchDelay time.Duration,
	logger *zap.Logger,
) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		repo:        repos.Campaigns,
		txMgr:       repos.TxManager,
		estimator:   estimator,
		settings:    settings,
		activity:    activity,
		launchDelay: launchDelay,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Submit stores a campaign and starts its simulated launch
func (s *Service) Submit(ctx context.Context, actor services.Actor, req Request) (*models.Campaign, error) {
	c, current, err := s.prepare(ctx, actor, req, models.CampaignStatusLaunching)
	if err != nil {
		return nil, err
	}

	entry := actor.NewActivity("Campaign Setup", models.ActivityCategoryCampaign, models.ActivityStatusSuccess,
		fmt.Sprintf("Created new campaign %q with %d domains and %d inboxes", c.Name, c.NumberOfDomains, c.TotalInboxes())).
		WithResource("campaign", c.ID.String()).
		WithAffected(c.NumberOfDomains + c.TotalInboxes())

	c, err = s.store(ctx, c, entry, s.costAlert(actor, c, current))
	if err != nil {
		return nil, services.WrapInternal("failed to store campaign", err)
	}

	s.logger.Info("campaign submitted",
		zap.String("campaign_id", c.ID.String()),
		zap.String("client", c.Client),
		zap.Int("domains", c.NumberOfDomains),
		zap.String("total_first_month", c.Estimate.TotalFirstMonth.String()),
		zap.String("user", actor.Name()))

	s.startLaunch(c.ID)
	return c, nil
}

// SaveTemplate stores the form as a reusable template without launching it
func (s *Service) SaveTemplate(ctx context.Context, actor services.Actor, req Request) (*models.Campaign, error) {
	c, _, err := s.prepare(ctx, actor, req, models.CampaignStatusTemplate)
	if err != nil {
		return nil, err
	}

	entry := actor.NewActivity("Campaign Template", models.ActivityCategoryCampaign, models.ActivityStatusInfo,
		fmt.Sprintf("Saved campaign template %q", c.Name)).
		WithResource("campaign", c.ID.String())

	c, err = s.store(ctx, c, entry)
	if err != nil {
		return nil, services.WrapInternal("failed to store campaign template", err)
	}

	s.logger.Info("campaign template saved", zap.String("campaign_id", c.ID.String()), zap.String("user", actor.Name()))
	return c, nil
}

// Get returns one campaign
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrCampaignNotFound
		}
		return nil, services.WrapInternal("failed to get campaign", err)
	}
	return c, nil
}

// List returns campaigns newest first
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Campaign, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	campaigns, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, services.WrapInternal("failed to list campaigns", err)
	}
	return campaigns, nil
}

// CountActive returns the number of launched campaigns
func (s *Service) CountActive(ctx context.Context) (int, error) {
	n, err := s.repo.CountByStatus(ctx, models.CampaignStatusActive)
	if err != nil {
		return 0, services.WrapInternal("failed to count campaigns", err)
	}
	return n, nil
}

// Close stops pending launches and waits for them to finish. Campaigns
// submitted afterwards are stored but stay launching.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// Wait blocks until every launch started so far has finished
func (s *Service) Wait() {
	s.wg.Wait()
}

// store creates c with its activity entries in one transaction and returns
// the stored row. Nil entries are skipped.
func (s *Service) store(ctx context.Context, c *models.Campaign, entries ...*models.ActivityLog) (*models.Campaign, error) {
	return services.InTx(ctx, s.txMgr, func(_ context.Context, tx repositories.Transaction) (*models.Campaign, error) {
		txCtx := tx.Context()
		if err := s.repo.Create(txCtx, c); err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry == nil {
				continue
			}
			if err := s.activity.Record(txCtx, entry); err != nil {
				return nil, err
			}
		}
		return s.repo.GetByID(txCtx, c.ID)
	})
}

func (s *Service) prepare(ctx context.Context, actor services.Actor, req Request, status models.CampaignStatus) (*models.Campaign, *models.Settings, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		if utils.IsValidationError(err) {
			domainErr := services.NewDomainError(services.ErrorTypeValidation, "invalid campaign", err)
			for k, v := range utils.GetValidationFields(err) {
				domainErr.WithDetail(k, v)
			}
			return nil, nil, domainErr
		}
		return nil, nil, services.WrapValidation("invalid campaign", err)
	}

	current, err := s.settings.Current(ctx)
	if err != nil {
		return nil, nil, err
	}
	if limit := current.System.MaxDomainsPerCampaign; req.NumberOfDomains > limit {
		return nil, nil, services.NewDomainError(services.ErrorTypeValidation, "campaign exceeds the maximum domains per campaign", services.ErrTooManyDomains).
			WithDetail("number_of_domains", fmt.Sprintf("number_of_domains must be at most %d", limit))
	}

	c := models.NewCampaign(req.Name, status)
	c.Client = req.Client
	c.DomainRegistrar = req.DomainRegistrar
	c.DomainPattern = req.DomainPattern
	c.Keywords = models.ParseKeywords(req.Keywords)
	c.NumberOfDomains = req.NumberOfDomains
	c.InboxesPerDomain = req.InboxesPerDomain
	c.WorkspaceProvider = req.WorkspaceProvider
	c.InboxPattern = req.InboxPattern
	c.SequencingPlatform = req.SequencingPlatform
	c.WarmupDays = req.WarmupDays
	c.CreatedBy = actor.Name()
	c.Estimate = s.estimator.Compute(ctx, c.PricingConfig())
	return c, current, nil
}

func (s *Service) costAlert(actor services.Actor, c *models.Campaign, current *models.Settings) *models.ActivityLog {
	threshold := current.System.CostThreshold
	if !current.Notifications.NotificationTypes.CostAlerts || !c.Estimate.TotalFirstMonth.GreaterThan(threshold) {
		return nil
	}
	return actor.NewActivity("Cost Alert", models.ActivityCategoryCampaign, models.ActivityStatusWarning,
		fmt.Sprintf("Campaign %q first month cost %s exceeds the %s threshold",
			c.Name, pricing.FormatUSD(c.Estimate.TotalFirstMonth), pricing.FormatUSD(threshold))).
		WithResource("campaign", c.ID.String())
}

func (s *Service) startLaunch(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Warn("campaign launch skipped, service closed", zap.String("campaign_id", id.String()))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if err := services.Simulate(s.ctx, s.launchDelay); err != nil {
			s.logger.Warn("campaign launch interrupted", zap.String("campaign_id", id.String()), zap.Error(err))
			return
		}
		if err := s.repo.UpdateStatus(s.ctx, id, models.CampaignStatusActive); err != nil {
			s.logger.Error("campaign launch failed", zap.String("campaign_id", id.String()), zap.Error(err))
			return
		}
		s.logger.Info("campaign active", zap.String("campaign_id", id.String()))
	}()
}
