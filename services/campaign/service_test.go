package campaign

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"github.com/greysolve/outreach-console/repositories/memory"
	"github.com/greysolve/outreach-console/services"
	"github.com/greysolve/outreach-console/services/estimate"
	"github.com/greysolve/outreach-console/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// MockActivityRecorder is a mock implementation of services.ActivityRecorder
type MockActivityRecorder struct {
	mock.Mock
}

func (m *MockActivityRecorder) Record(ctx context.Context, entry *models.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type staticSettings struct {
	settings models.Settings
	err      error
}

func (s staticSettings) Current(context.Context) (*models.Settings, error) {
	if s.err != nil {
		return nil, s.err
	}
	cp := s.settings
	return &cp, nil
}

var operator = services.Actor{Email: "ops@greysolve.com", RequestID: "req-1", IPAddress: "10.0.0.1"}

func validRequest() Request {
	return Request{
		Name:               "Q4 B2B Outreach",
		Client:             "Acme Corp",
		DomainRegistrar:    models.RegistrarNamecheap,
		DomainPattern:      "{keyword}-outreach.com",
		Keywords:           "sales, leads, ,growth",
		NumberOfDomains:    5,
		InboxesPerDomain:   3,
		WorkspaceProvider:  pricing.WorkspaceGoogle,
		InboxPattern:       "{first}.{last}",
		SequencingPlatform: pricing.SequencerSmartlead,
		WarmupDays:         14,
	}
}

func newTestService(t *testing.T, recorder services.ActivityRecorder, settings SettingsSource, delay time.Duration) (*Service, *repositories.Repositories) {
	t.Helper()
	repos := memory.NewRepositories(zap.NewNop())
	estimator := estimate.NewService(pricing.DefaultPriceBook(), nil, zap.NewNop())
	svc := NewService(repos, estimator, settings, recorder, delay, zap.NewNop())
	t.Cleanup(svc.Close)
	return svc, repos
}

func action(name string) interface{} {
	return mock.MatchedBy(func(e *models.ActivityLog) bool { return e.Action == name })
}

func TestService_Submit(t *testing.T) {
	defer goleak.VerifyNone(t)

	recorder := new(MockActivityRecorder)
	recorder.On("Record", mock.Anything, action("Campaign Setup")).Return(nil)

	svc, repos := newTestService(t, recorder, staticSettings{settings: models.DefaultSettings()}, 0)

	c, err := svc.Submit(context.Background(), operator, validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusLaunching, c.Status)
	assert.Equal(t, []string{"sales", "leads", "growth"}, c.Keywords)
	assert.Equal(t, "ops@greysolve.com", c.CreatedBy)
	assert.Equal(t, "251.95", c.Estimate.TotalFirstMonth.StringFixed(2))

	svc.Wait()

	stored, err := repos.Campaigns.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusActive, stored.Status)

	n, err := svc.CountActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	recorder.AssertNumberOfCalls(t, "Record", 1)
	entry := recorder.Calls[0].Arguments.Get(1).(*models.ActivityLog)
	assert.Equal(t, models.ActivityCategoryCampaign, entry.Category)
	assert.Equal(t, "campaign", entry.ResourceType)
	assert.Equal(t, c.ID.String(), entry.ResourceID)
	assert.Equal(t, 20, entry.AffectedRecords)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, `Created new campaign "Q4 B2B Outreach" with 5 domains and 15 inboxes`, entry.Details)
}

func TestService_Submit_CostAlert(t *testing.T) {
	defer goleak.VerifyNone(t)

	recorder := new(MockActivityRecorder)
	recorder.On("Record", mock.Anything, action("Campaign Setup")).Return(nil)
	recorder.On("Record", mock.Anything, action("Cost Alert")).Return(nil)

	svc, _ := newTestService(t, recorder, staticSettings{settings: models.DefaultSettings()}, 0)

	req := validRequest()
	req.NumberOfDomains = 10
	req.InboxesPerDomain = 10

	c, err := svc.Submit(context.Background(), operator, req)
	require.NoError(t, err)
	assert.Equal(t, "826.90", c.Estimate.TotalFirstMonth.StringFixed(2))
	svc.Wait()

	recorder.AssertNumberOfCalls(t, "Record", 2)
	alert := recorder.Calls[1].Arguments.Get(1).(*models.ActivityLog)
	assert.Equal(t, models.ActivityStatusWarning, alert.Status)
	assert.Contains(t, alert.Details, "$826.90")
	assert.Contains(t, alert.Details, "$500.00")

	t.Run("alerts disabled", func(t *testing.T) {
		settings := models.DefaultSettings()
		settings.Notifications.NotificationTypes.CostAlerts = false

		quiet := new(MockActivityRecorder)
		quiet.On("Record", mock.Anything, action("Campaign Setup")).Return(nil)

		svc, _ := newTestService(t, quiet, staticSettings{settings: settings}, 0)
		_, err := svc.Submit(context.Background(), operator, req)
		require.NoError(t, err)
		quiet.AssertNumberOfCalls(t, "Record", 1)
	})
}

func TestService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"missing name", func(r *Request) { r.Name = "" }, "name"},
		{"unknown client", func(r *Request) { r.Client = "Initech" }, "client"},
		{"unknown registrar", func(r *Request) { r.DomainRegistrar = "Gandi" }, "domain_registrar"},
		{"zero inboxes", func(r *Request) { r.InboxesPerDomain = 0 }, "inboxes_per_domain"},
		{"too many inboxes", func(r *Request) { r.InboxesPerDomain = 11 }, "inboxes_per_domain"},
		{"unknown workspace", func(r *Request) { r.WorkspaceProvider = "Zoho" }, "workspace_provider"},
		{"unknown sequencer", func(r *Request) { r.SequencingPlatform = "Outreach.io" }, "sequencing_platform"},
		{"short warmup", func(r *Request) { r.WarmupDays = 3 }, "warmup_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := new(MockActivityRecorder)
			svc, _ := newTestService(t, recorder, staticSettings{settings: models.DefaultSettings()}, 0)

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Submit(context.Background(), operator, req)
			require.Error(t, err)
			assert.True(t, services.IsValidationError(err))
			assert.Contains(t, services.GetErrorDetails(err), tt.field)
			recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Submit_MaxDomains(t *testing.T) {
	settings := models.DefaultSettings()
	settings.System.MaxDomainsPerCampaign = 3

	recorder := new(MockActivityRecorder)
	svc, repos := newTestService(t, recorder, staticSettings{settings: settings}, 0)

	_, err := svc.Submit(context.Background(), operator, validRequest())
	require.Error(t, err)
	assert.True(t, services.IsValidationError(err))
	assert.True(t, errors.Is(err, services.ErrTooManyDomains))
	assert.Equal(t, "number_of_domains must be at most 3", services.GetErrorDetails(err)["number_of_domains"])

	list, err := repos.Campaigns.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_Submit_SettingsUnavailable(t *testing.T) {
	recorder := new(MockActivityRecorder)
	svc, _ := newTestService(t, recorder, staticSettings{err: services.ErrDatabaseError}, 0)

	_, err := svc.Submit(context.Background(), operator, validRequest())
	assert.True(t, errors.Is(err, services.ErrDatabaseError))
}

func TestService_Submit_ActivityFailure(t *testing.T) {
	recorder := new(MockActivityRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc, _ := newTestService(t, recorder, staticSettings{settings: models.DefaultSettings()}, 0)

	_, err := svc.Submit(context.Background(), operator, validRequest())
	require.Error(t, err)
	assert.True(t, services.IsInternalError(err))
}

func TestService_Close_InterruptsLaunch(t *testing.T) {
	defer goleak.VerifyNone(t)

	recorder := new(MockActivityRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).Return(nil)

	repos := memory.NewRepositories(zap.NewNop())
	estimator := estimate.NewService(pricing.DefaultPriceBook(), nil, zap.NewNop())
	svc := NewService(repos, estimator, staticSettings{settings: models.DefaultSettings()}, recorder, time.Hour, zap.NewNop())

	c, err := svc.Submit(context.Background(), operator, validRequest())
	require.NoError(t, err)

	svc.Close()

	stored, err := repos.Campaigns.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusLaunching, stored.Status)
}

func TestService_SubmitAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	recorder := new(MockActivityRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).Return(nil)

	repos := memory.NewRepositories(zap.NewNop())
	estimator := estimate.NewService(pricing.DefaultPriceBook(), nil, zap.NewNop())
	svc := NewService(repos, estimator, staticSettings{settings: models.DefaultSettings()}, recorder, 0, zap.NewNop())
	svc.Close()

	c, err := svc.Submit(context.Background(), operator, validRequest())
	require.NoError(t, err)
	svc.Wait()

	stored, err := repos.Campaigns.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusLaunching, stored.Status)

	// Close stays safe while submissions race with it
	svc2 := NewService(memory.NewRepositories(zap.NewNop()), estimator, staticSettings{settings: models.DefaultSettings()}, recorder, time.Hour, zap.NewNop())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc2.Submit(context.Background(), operator, validRequest())
		}()
	}
	svc2.Close()
	wg.Wait()
	svc2.Close()
}

func TestService_SaveTemplate(t *testing.T) {
	defer goleak.VerifyNone(t)

	recorder := new(MockActivityRecorder)
	recorder.On("Record", mock.Anything, action("Campaign Template")).Return(nil)

	svc, _ := newTestService(t, recorder, staticSettings{settings: models.DefaultSettings()}, 0)

	c, err := svc.SaveTemplate(context.Background(), operator, validRequest())
	require.NoError(t, err)
	assert.True(t, c.IsTemplate())

	svc.Wait()

	got, err := svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusTemplate, got.Status)

	n, err := svc.CountActive(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	entry := recorder.Calls[0].Arguments.Get(1).(*models.ActivityLog)
	assert.Equal(t, models.ActivityStatusInfo, entry.Status)
}

func TestService_GetAndList(t *testing.T) {
	recorder := new(MockActivityRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).Return(nil)

	svc, _ := newTestService(t, recorder, staticSettings{settings: models.DefaultSettings()}, 0)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, services.ErrCampaignNotFound))

	for i := 0; i < 3; i++ {
		_, err := svc.SaveTemplate(context.Background(), operator, validRequest())
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), 0, -1)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestRequest_ValidatesWithJSONNames(t *testing.T) {
	req := validRequest()
	req.NumberOfDomains = 101

	err := utils.ValidateStruct(&req)
	require.Error(t, err)
	assert.Contains(t, utils.GetValidationFields(err), "number_of_domains")
}
