package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"github.com/greysolve/outreach-console/services"
	"github.com/greysolve/outreach-console/utils"
	"go.uber.org/zap"
)

// View is the settings document as shown to operators
type View struct {
	Settings     models.Settings      `json:"settings"`
	Integrations []models.Integration `json:"integrations"`
}

// Config holds the settings service options
type Config struct {
	AdminRole string
	SaveDelay time.Duration
}

// Service reads and updates system settings
type Service struct {
	repo     repositories.SettingsRepository
	activity services.ActivityRecorder
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a settings service
func NewService(repo repositories.SettingsRepository, activity services.ActivityRecorder, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		activity: activity,
		cfg:      cfg,
		logger:   logger,
	}
}

// Current returns the unmasked settings for other services
func (s *Service) Current(ctx context.Context) (*models.Settings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to load settings", err)
	}
	return current, nil
}

// Get returns the settings with secrets masked
func (s *Service) Get(ctx context.Context) (*View, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return view(*current), nil
}

// Update validates and stores incoming. Masked secrets keep their stored value.
func (s *Service) Update(ctx context.Context, actor services.Actor, incoming models.Settings) (*View, error) {
	if !actor.HasRole(s.cfg.AdminRole) {
		s.logger.Warn("settings update denied",
			zap.String("user", actor.Name()),
			zap.String("required_role", s.cfg.AdminRole))
		return nil, services.ErrInsufficientPermissions
	}

	if err := validate(&incoming); err != nil {
		return nil, err
	}

	started := time.Now()
	if err := services.Simulate(ctx, s.cfg.SaveDelay); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}

	// Masked secrets resolve against what is stored once the save lands
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	incoming.APIKeys = current.APIKeys.MergeSecrets(incoming.APIKeys)
	incoming.UpdatedAt = time.Now().UTC()
	incoming.UpdatedBy = actor.Name()

	if err := s.repo.Save(ctx, &incoming); err != nil {
		return nil, services.WrapInternal("failed to save settings", err)
	}

	s.logger.Info("settings updated", zap.String("user", actor.Name()))

	entry := actor.NewActivity("Settings Update", models.ActivityCategorySecurity, models.ActivityStatusSuccess,
		describeChanges(*current, incoming)).
		WithResource("system_settings", "system").
		WithDuration(time.Since(started))
	if err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn("settings saved without activity entry", zap.Error(err))
	}

	return view(incoming), nil
}

func view(s models.Settings) *View {
	integrations := s.APIKeys.Integrations()
	s.APIKeys = s.APIKeys.Masked()
	return &View{Settings: s, Integrations: integrations}
}

func validate(s *models.Settings) error {
	fields := map[string]string{}
	if err := utils.ValidateStruct(s); err != nil {
		if !utils.IsValidationError(err) {
			return services.WrapValidation("invalid settings", err)
		}
		fields = utils.GetValidationFields(err)
	}
	if s.System.CostThreshold.IsNegative() {
		fields["system.cost_threshold"] = "system.cost_threshold must be greater than or equal to 0"
	}
	if len(fields) == 0 {
		return nil
	}

	err := services.NewDomainError(services.ErrorTypeValidation, "invalid settings", nil)
	for k, v := range fields {
		err.WithDetail(k, v)
	}
	return err
}

// describeChanges names the settings sections that differ
func describeChanges(before, after models.Settings) string {
	var sections []string
	if after.APIKeys != before.APIKeys {
		sections = append(sections, "API keys")
	}
	if !sameSecurity(before.Security, after.Security) {
		sections = append(sections, "security")
	}
	if after.Notifications != before.Notifications {
		sections = append(sections, "notifications")
	}
	if !sameSystem(before.System, after.System) {
		sections = append(sections, "system preferences")
	}
	if len(sections) == 0 {
		return "Saved system settings with no changes"
	}
	return "Updated system settings: " + joinSections(sections)
}

func sameSecurity(a, b models.SecuritySettings) bool {
	if a.TwoFactorEnabled != b.TwoFactorEnabled ||
		a.SessionTimeout != b.SessionTimeout ||
		a.MaxLoginAttempts != b.MaxLoginAttempts ||
		a.PasswordPolicy != b.PasswordPolicy ||
		a.AuditLogging != b.AuditLogging ||
		len(a.IPWhitelist) != len(b.IPWhitelist) {
		return false
	}
	for i := range a.IPWhitelist {
		if a.IPWhitelist[i] != b.IPWhitelist[i] {
			return false
		}
	}
	return true
}

func sameSystem(a, b models.SystemPreferences) bool {
	if !a.CostThreshold.Equal(b.CostThreshold) {
		return false
	}
	a.CostThreshold = b.CostThreshold
	return a == b
}

func joinSections(sections []string) string {
	out := sections[0]
	for i := 1; i < len(sections); i++ {
		if i == len(sections)-1 {
			out += " and " + sections[i]
		} else {
			out += ", " + sections[i]
		}
	}
	return out
}
